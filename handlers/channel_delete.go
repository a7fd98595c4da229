package handlers

import (
	"fmt"

	"gloryboard-bot/bot"
	"gloryboard-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// ChannelDeleteHandler handles the CHANNEL_DELETE event. Covers both a board
// channel dying (configuration and links dropped) and a source channel dying
// (its messages' posts torn down).
func ChannelDeleteHandler(b *bot.Bot) func(s *discordgo.Session, c *discordgo.ChannelDelete) {
	return func(s *discordgo.Session, c *discordgo.ChannelDelete) {
		if err := b.Engine.ProcessChannelDelete(c.ID); err != nil {
			utils.Error("Starboard", "ChannelDelete", fmt.Sprintf("channel %s: %v", c.ID, err))
		}
	}
}
