package handlers

import (
	"fmt"

	"gloryboard-bot/bot"
	"gloryboard-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// ReactionAddHandler handles the MESSAGE_REACTION_ADD event. The engine
// decides whether the reactor is itself.
func ReactionAddHandler(b *bot.Bot) func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	return func(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
		processReaction(b, r.GuildID, r.ChannelID, r.MessageID, r.Emoji.APIName(), r.UserID)
	}
}

// ReactionRemoveHandler handles the MESSAGE_REACTION_REMOVE event.
func ReactionRemoveHandler(b *bot.Bot) func(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	return func(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
		processReaction(b, r.GuildID, r.ChannelID, r.MessageID, r.Emoji.APIName(), r.UserID)
	}
}

// ReactionClearHandler handles the MESSAGE_REACTION_REMOVE_ALL event.
func ReactionClearHandler(b *bot.Bot) func(s *discordgo.Session, r *discordgo.MessageReactionRemoveAll) {
	return func(s *discordgo.Session, r *discordgo.MessageReactionRemoveAll) {
		if err := b.Engine.ProcessReactionClear(r.MessageID); err != nil {
			utils.Error("Starboard", "ReactionClear", fmt.Sprintf("message %s: %v", r.MessageID, err))
		}
	}
}

func processReaction(b *bot.Bot, guildID, channelID, messageID, emoji, reactorID string) {
	if guildID == "" {
		// DMs have no boards.
		return
	}
	if err := b.Engine.ProcessReaction(guildID, channelID, messageID, emoji, reactorID); err != nil {
		utils.Error("Starboard", "Reaction", fmt.Sprintf("message %s: %v", messageID, err))
	}
}
