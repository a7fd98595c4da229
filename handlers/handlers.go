package handlers

import (
	"log"

	"gloryboard-bot/bot"

	"github.com/bwmarrin/discordgo"
)

// Register all handlers to the bot.
func Register(b *bot.Bot) {
	// Register event handlers
	b.Session.AddHandler(InteractionCreate(b))
	b.Session.AddHandler(ReactionAddHandler(b))
	b.Session.AddHandler(ReactionRemoveHandler(b))
	b.Session.AddHandler(ReactionClearHandler(b))
	b.Session.AddHandler(MessageDeleteHandler(b))
	b.Session.AddHandler(MessageDeleteBulkHandler(b))
	b.Session.AddHandler(ChannelDeleteHandler(b))
	b.Session.AddHandler(ThreadDeleteHandler(b))

	// Add a ready handler to log when the bot is connected.
	b.Session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		log.Printf("Logged in as: %v#%v", s.State.User.Username, s.State.User.Discriminator)
	})
}
