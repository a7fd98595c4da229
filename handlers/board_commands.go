package handlers

import (
	"fmt"
	"strconv"
	"strings"

	"gloryboard-bot/bot"
	"gloryboard-bot/models"
	"gloryboard-bot/starboard"
	"gloryboard-bot/utils"

	"github.com/bwmarrin/discordgo"
)

// GloryboardCommandHandler dispatches the /gloryboard subcommands. These are
// the only writers of the board registry.
func GloryboardCommandHandler(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate) {
	auth, err := utils.NewAuth()
	if err != nil {
		utils.Error("Gloryboard", "Auth", fmt.Sprintf("failed to load auth config: %v", err))
		respondEphemeral(s, i, "Internal error, try again later.")
		return
	}
	if !auth.CanManageBoards(i) {
		respondEphemeral(s, i, "You don't have permission to manage gloryboards.")
		return
	}

	data := i.ApplicationCommandData()
	if len(data.Options) == 0 {
		return
	}
	sub := data.Options[0]

	switch sub.Name {
	case "set":
		handleBoardSet(b, s, i, sub.Options)
	case "disable":
		handleBoardDisable(b, s, i, sub.Options)
	}
}

func handleBoardSet(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var channel *discordgo.Channel
	var minimum int
	var emoji, colorInput string

	for _, opt := range options {
		switch opt.Name {
		case "channel":
			channel = opt.ChannelValue(s)
		case "minimum":
			minimum = int(opt.IntValue())
		case "emoji":
			emoji = strings.TrimSpace(opt.StringValue())
		case "color":
			colorInput = strings.TrimSpace(opt.StringValue())
		}
	}
	if channel == nil {
		respondEphemeral(s, i, "Invalid channel.")
		return
	}

	if emoji != "" {
		normalized, ok := starboard.NormalizeEmoji(emoji)
		if !ok {
			respondEphemeral(s, i, "Invalid emoji")
			return
		}
		emoji = normalized
	}

	color := -1
	if colorInput != "" {
		parsed, err := strconv.ParseUint(strings.TrimPrefix(colorInput, "#"), 16, 32)
		if err != nil || parsed > 0xFFFFFF {
			respondEphemeral(s, i, "Invalid color, expected hexadecimal like #00FF00.")
			return
		}
		color = int(parsed)
	}

	// Update the existing board when there is one; unset options keep their
	// current values.
	board, err := b.Boards.ByChannel(channel.ID)
	if err != nil {
		utils.Error("Gloryboard", "Set", fmt.Sprintf("failed to look up board for channel %s: %v", channel.ID, err))
		respondEphemeral(s, i, "Internal error, try again later.")
		return
	}
	if board == nil {
		board = &models.Board{
			ChannelID: channel.ID,
			GuildID:   i.GuildID,
			Emoji:     models.DefaultEmoji,
			Minimum:   models.DefaultMinimum,
			Color:     models.DefaultColor,
		}
	}

	if emoji != "" {
		board.Emoji = emoji
	}
	if minimum > 0 {
		board.Minimum = minimum
	}
	if color >= 0 {
		board.Color = color
	}

	if err := b.Boards.Upsert(*board); err != nil {
		utils.Error("Gloryboard", "Set", fmt.Sprintf("failed to save board for channel %s: %v", channel.ID, err))
		respondEphemeral(s, i, "Internal error, try again later.")
		return
	}

	utils.Info("Gloryboard", "Set", fmt.Sprintf("board on channel %s: emoji %s, minimum %d", channel.ID, board.Emoji, board.Minimum))
	respondEphemeralEmbed(s, i, &discordgo.MessageEmbed{
		Title: "Gloryboard updated ! \U0001f44c",
		Color: board.Color,
		Description: fmt.Sprintf(
			"Messages with __%d or more %s__ reactions will now be posted to <#%s> with the same color as this embed.",
			board.Minimum, board.Emoji, channel.ID),
	})
}

func handleBoardDisable(b *bot.Bot, s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var channel *discordgo.Channel
	for _, opt := range options {
		if opt.Name == "channel" {
			channel = opt.ChannelValue(s)
		}
	}
	if channel == nil {
		respondEphemeral(s, i, "Invalid channel.")
		return
	}

	if err := b.Engine.DisableBoard(channel.ID); err != nil {
		utils.Error("Gloryboard", "Disable", fmt.Sprintf("failed to disable board for channel %s: %v", channel.ID, err))
		respondEphemeral(s, i, "Internal error, try again later.")
		return
	}

	utils.Info("Gloryboard", "Disable", fmt.Sprintf("board on channel %s disabled", channel.ID))
	respondEphemeral(s, i, fmt.Sprintf("Gloryboard disabled in <#%s>", channel.ID))
}
