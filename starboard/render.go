package starboard

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"

	"gloryboard-bot/models"
)

var (
	imageRegex   = regexp.MustCompile(`(https?://\S+\.(?:png|jpg|jpeg|gif|webp|svg|bmp))`)
	contentRegex = regexp.MustCompile(`(https?://\S+\.(?:[a-zA-Z]+))`)
)

const titleRuneLimit = 25

// imageURLs collects image links from the message text and its attachments.
// The first hit is later promoted to the embed image.
func imageURLs(msg *models.SourceMessage) []string {
	urls := imageRegex.FindAllString(msg.Content, -1)
	for _, attachment := range msg.AttachmentURLs {
		if imageRegex.MatchString(attachment) {
			urls = append(urls, attachment)
		}
	}
	return dedupe(urls)
}

// contentURLs collects every link from the message text and its attachments.
func contentURLs(msg *models.SourceMessage) []string {
	urls := contentRegex.FindAllString(msg.Content, -1)
	for _, attachment := range msg.AttachmentURLs {
		if contentRegex.MatchString(attachment) {
			urls = append(urls, attachment)
		}
	}
	return dedupe(urls)
}

func dedupe(urls []string) []string {
	seen := make(map[string]bool, len(urls))
	var out []string
	for _, u := range urls {
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

// Render builds the mirrored content for a source message: the reactor count
// and trigger emoji prefixed to the text, the first image promoted to the
// embed image, remaining links listed as an attachments field, and the author
// with a jump link as provenance.
func Render(msg *models.SourceMessage, board models.Board, count int) *models.PostContent {
	images := imageURLs(msg)
	links := contentURLs(msg)

	content := msg.Content
	if len(images) > 0 {
		// The promoted image would otherwise show twice.
		content = strings.Replace(content, images[0], "", 1)
	}

	embed := &discordgo.MessageEmbed{
		Description: fmt.Sprintf("%s **%d**\n\n%s", board.Emoji, count, content),
		Color:       board.Color,
		Author: &discordgo.MessageEmbedAuthor{
			Name:    msg.AuthorName,
			IconURL: msg.AuthorAvatarURL,
			URL:     msg.JumpURL(),
		},
	}

	if len(images) > 0 {
		embed.Image = &discordgo.MessageEmbedImage{URL: images[0]}
	}

	if rest := subtract(links, images); len(rest) > 0 {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  "Attachments",
			Value: strings.Join(rest, "\n"),
		})
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label: "Go to message",
					Style: discordgo.LinkButton,
					URL:   msg.JumpURL(),
				},
			},
		},
	}

	return &models.PostContent{
		Title:      renderTitle(content, board.Emoji),
		Embed:      embed,
		Components: components,
	}
}

// renderTitle derives a forum thread title from the message text, falling
// back to the trigger emoji for image-only messages.
func renderTitle(content, emoji string) string {
	title := strings.TrimSpace(content)
	if runes := []rune(title); len(runes) > titleRuneLimit {
		title = string(runes[:titleRuneLimit])
	}
	if title == "" {
		return emoji
	}
	return title
}

func subtract(urls, remove []string) []string {
	removed := make(map[string]bool, len(remove))
	for _, u := range remove {
		removed[u] = true
	}
	var out []string
	for _, u := range urls {
		if !removed[u] {
			out = append(out, u)
		}
	}
	return out
}
