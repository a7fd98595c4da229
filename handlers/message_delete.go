package handlers

import (
	"fmt"

	"gloryboard-bot/bot"
	"gloryboard-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// MessageDeleteHandler handles the MESSAGE_DELETE event. Deleting a tracked
// source tears its post down; deleting one of our posts drops the link.
func MessageDeleteHandler(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageDelete) {
	return func(s *discordgo.Session, m *discordgo.MessageDelete) {
		if err := b.Engine.ProcessMessageDelete(m.ID); err != nil {
			utils.Error("Starboard", "MessageDelete", fmt.Sprintf("message %s: %v", m.ID, err))
		}
	}
}

// MessageDeleteBulkHandler handles the MESSAGE_DELETE_BULK event.
func MessageDeleteBulkHandler(b *bot.Bot) func(s *discordgo.Session, m *discordgo.MessageDeleteBulk) {
	return func(s *discordgo.Session, m *discordgo.MessageDeleteBulk) {
		for _, id := range m.Messages {
			if err := b.Engine.ProcessMessageDelete(id); err != nil {
				utils.Error("Starboard", "MessageDeleteBulk", fmt.Sprintf("message %s: %v", id, err))
			}
		}
	}
}
