package starboard

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"gloryboard-bot/models"
)

const reactionPageSize = 100

// DiscordSurface implements Surface on top of a live discordgo session.
type DiscordSurface struct {
	session *discordgo.Session
}

// NewDiscordSurface wraps a session.
func NewDiscordSurface(s *discordgo.Session) *DiscordSurface {
	return &DiscordSurface{session: s}
}

// surfaceErr maps the Discord 404 family onto ErrSurfaceGone so the engine
// can treat vanished targets as already satisfied.
func surfaceErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil && restErr.Response.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, ErrSurfaceGone)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Message fetches a message and converts it to the engine's read model.
func (d *DiscordSurface) Message(channelID, messageID string) (*models.SourceMessage, error) {
	msg, err := d.session.ChannelMessage(channelID, messageID)
	if err != nil {
		return nil, surfaceErr("fetch message", err)
	}

	var attachments []string
	for _, a := range msg.Attachments {
		attachments = append(attachments, a.URL)
	}

	source := &models.SourceMessage{
		MessageID:      msg.ID,
		ChannelID:      msg.ChannelID,
		GuildID:        msg.GuildID,
		Content:        msg.Content,
		AttachmentURLs: attachments,
		Mirrorable:     msg.Type == discordgo.MessageTypeDefault || msg.Type == discordgo.MessageTypeReply,
	}
	if msg.Author != nil {
		source.AuthorID = msg.Author.ID
		source.AuthorName = msg.Author.Username
		source.AuthorAvatarURL = msg.Author.AvatarURL("")
		source.AuthorIsBot = msg.Author.Bot
	}
	if msg.GuildID == "" {
		// MESSAGE_REACTION payloads carry the guild; a plain fetch may not.
		if ch, err := d.channel(channelID); err == nil {
			source.GuildID = ch.GuildID
		}
	}
	return source, nil
}

// ReactionUserIDs pages through the reaction user list for one emoji.
func (d *DiscordSurface) ReactionUserIDs(channelID, messageID, emoji string) ([]string, error) {
	var ids []string
	afterID := ""
	for {
		users, err := d.session.MessageReactions(channelID, messageID, emoji, reactionPageSize, "", afterID)
		if err != nil {
			return nil, surfaceErr("list reactions", err)
		}
		for _, u := range users {
			ids = append(ids, u.ID)
		}
		if len(users) < reactionPageSize {
			return ids, nil
		}
		afterID = users[len(users)-1].ID
	}
}

func (d *DiscordSurface) channel(channelID string) (*discordgo.Channel, error) {
	if ch, err := d.session.State.Channel(channelID); err == nil {
		return ch, nil
	}
	ch, err := d.session.Channel(channelID)
	if err != nil {
		return nil, surfaceErr("fetch channel", err)
	}
	return ch, nil
}

// IsForum reports whether the channel is a forum channel.
func (d *DiscordSurface) IsForum(channelID string) (bool, error) {
	ch, err := d.channel(channelID)
	if err != nil {
		return false, err
	}
	return ch.Type == discordgo.ChannelTypeGuildForum, nil
}

// SendPost posts the rendered content to a text channel.
func (d *DiscordSurface) SendPost(channelID string, content *models.PostContent) (PostRef, error) {
	msg, err := d.session.ChannelMessageSendComplex(channelID, content.MessageSend())
	if err != nil {
		return PostRef{}, surfaceErr("send post", err)
	}
	return PostRef{ChannelID: msg.ChannelID, MessageID: msg.ID}, nil
}

// CreateForumPost starts a forum thread carrying the rendered content. The
// starter message of a forum thread shares the thread's ID.
func (d *DiscordSurface) CreateForumPost(channelID string, content *models.PostContent) (PostRef, error) {
	thread, err := d.session.ForumThreadStartComplex(channelID, &discordgo.ThreadStart{
		Name: content.Title,
	}, content.MessageSend())
	if err != nil {
		return PostRef{}, surfaceErr("create forum post", err)
	}
	return PostRef{ChannelID: thread.ID, MessageID: thread.ID}, nil
}

// EditPost rewrites a post in place.
func (d *DiscordSurface) EditPost(ref PostRef, content *models.PostContent) error {
	_, err := d.session.ChannelMessageEditComplex(content.MessageEdit(ref.ChannelID, ref.MessageID))
	return surfaceErr("edit post", err)
}

// DeletePost removes a mirrored message.
func (d *DiscordSurface) DeletePost(ref PostRef) error {
	return surfaceErr("delete post", d.session.ChannelMessageDelete(ref.ChannelID, ref.MessageID))
}

// DeleteThread removes a whole thread.
func (d *DiscordSurface) DeleteThread(threadID string) error {
	_, err := d.session.ChannelDelete(threadID)
	return surfaceErr("delete thread", err)
}

// ThreadActivity checks whether a thread holds more than its starter message
// and whether the starter picked up reactions of its own.
func (d *DiscordSurface) ThreadActivity(threadID, starterMessageID string) (bool, bool, error) {
	ch, err := d.session.Channel(threadID)
	if err != nil {
		return false, false, surfaceErr("fetch thread", err)
	}
	hasReplies := ch.LastMessageID != starterMessageID

	starter, err := d.session.ChannelMessage(threadID, starterMessageID)
	if err != nil {
		return hasReplies, false, surfaceErr("fetch thread starter", err)
	}
	return hasReplies, len(starter.Reactions) > 0, nil
}
