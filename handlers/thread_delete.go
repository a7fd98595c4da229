package handlers

import (
	"fmt"

	"gloryboard-bot/bot"
	"gloryboard-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// ThreadDeleteHandler handles the THREAD_DELETE event. A deleted thread that
// held one of our forum posts only needs its bookkeeping removed.
func ThreadDeleteHandler(b *bot.Bot) func(s *discordgo.Session, t *discordgo.ThreadDelete) {
	return func(s *discordgo.Session, t *discordgo.ThreadDelete) {
		if err := b.Engine.ProcessThreadDelete(t.ID); err != nil {
			utils.Error("Starboard", "ThreadDelete", fmt.Sprintf("thread %s: %v", t.ID, err))
		}
	}
}
