package starboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gloryboard-bot/models"
)

var testBoard = models.Board{
	ChannelID: "glory",
	GuildID:   "guild",
	Emoji:     "⭐",
	Minimum:   3,
	Color:     0xFEE75C,
}

func testMessage(content string, attachments ...string) *models.SourceMessage {
	return &models.SourceMessage{
		MessageID:       "m1",
		ChannelID:       "general",
		GuildID:         "guild",
		AuthorID:        "u1",
		AuthorName:      "Author",
		AuthorAvatarURL: "https://cdn.example/avatar.png",
		Content:         content,
		AttachmentURLs:  attachments,
		Mirrorable:      true,
	}
}

func TestRenderCountPrefix(t *testing.T) {
	content := Render(testMessage("hello there"), testBoard, 5)

	assert.True(t, strings.HasPrefix(content.Embed.Description, "⭐ **5**\n\n"))
	assert.Contains(t, content.Embed.Description, "hello there")
	assert.Equal(t, testBoard.Color, content.Embed.Color)
}

func TestRenderPromotesFirstImage(t *testing.T) {
	content := Render(testMessage("look https://cdn.example/cat.png"), testBoard, 3)

	require.NotNil(t, content.Embed.Image)
	assert.Equal(t, "https://cdn.example/cat.png", content.Embed.Image.URL)
	// The promoted image is stripped from the text so it doesn't show twice.
	assert.NotContains(t, content.Embed.Description, "cat.png")
}

func TestRenderAttachmentImagePromoted(t *testing.T) {
	content := Render(testMessage("just text", "https://cdn.example/photo.jpg"), testBoard, 3)

	require.NotNil(t, content.Embed.Image)
	assert.Equal(t, "https://cdn.example/photo.jpg", content.Embed.Image.URL)
}

func TestRenderRemainingLinksListed(t *testing.T) {
	content := Render(testMessage("see https://cdn.example/a.png and https://example.com/doc.pdf"), testBoard, 3)

	require.NotNil(t, content.Embed.Image)
	require.Len(t, content.Embed.Fields, 1)
	assert.Equal(t, "Attachments", content.Embed.Fields[0].Name)
	assert.Contains(t, content.Embed.Fields[0].Value, "https://example.com/doc.pdf")
	assert.NotContains(t, content.Embed.Fields[0].Value, "a.png")
}

func TestRenderProvenance(t *testing.T) {
	content := Render(testMessage("hi"), testBoard, 3)

	require.NotNil(t, content.Embed.Author)
	assert.Equal(t, "Author", content.Embed.Author.Name)
	assert.Equal(t, "https://cdn.example/avatar.png", content.Embed.Author.IconURL)
	assert.Equal(t, "https://discord.com/channels/guild/general/m1", content.Embed.Author.URL)
	require.Len(t, content.Components, 1)
}

func TestRenderTitleTruncation(t *testing.T) {
	long := strings.Repeat("глория ", 10)
	content := Render(testMessage(long), testBoard, 3)

	assert.Equal(t, 25, len([]rune(content.Title)))
}

func TestRenderTitleFallsBackToEmoji(t *testing.T) {
	// An image-only message has no text left for the title.
	content := Render(testMessage("https://cdn.example/cat.png"), testBoard, 3)

	assert.Equal(t, "⭐", content.Title)
}
