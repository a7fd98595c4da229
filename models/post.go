package models

import "github.com/bwmarrin/discordgo"

// PostContent is the rendered body of a mirrored post: the embed plus the
// jump-link button row, and the title used when the target is a forum channel.
type PostContent struct {
	Title      string
	Embed      *discordgo.MessageEmbed
	Components []discordgo.MessageComponent
}

// MessageSend packs the content for a channel send.
func (p *PostContent) MessageSend() *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{p.Embed},
		Components: p.Components,
	}
}

// MessageEdit packs the content for an edit of an existing post.
func (p *PostContent) MessageEdit(channelID, messageID string) *discordgo.MessageEdit {
	embeds := []*discordgo.MessageEmbed{p.Embed}
	return &discordgo.MessageEdit{
		Channel:    channelID,
		ID:         messageID,
		Embeds:     &embeds,
		Components: &p.Components,
	}
}
