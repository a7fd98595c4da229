package starboard

import "gloryboard-bot/models"

// PostRef identifies a mirrored post on the chat surface.
type PostRef struct {
	ChannelID string
	MessageID string
}

// Surface is the engine's view of the chat platform. Implementations must
// return ErrSurfaceGone (possibly wrapped) whenever the target of a call no
// longer exists, so the engine can treat the state as already satisfied.
type Surface interface {
	// Message fetches a message by ID.
	Message(channelID, messageID string) (*models.SourceMessage, error)

	// ReactionUserIDs lists the IDs of every user who reacted to a message
	// with the given emoji.
	ReactionUserIDs(channelID, messageID, emoji string) ([]string, error)

	// IsForum reports whether a channel is a forum channel.
	IsForum(channelID string) (bool, error)

	// SendPost posts rendered content to a text channel.
	SendPost(channelID string, content *models.PostContent) (PostRef, error)

	// CreateForumPost starts a forum thread whose starter message is the
	// rendered content.
	CreateForumPost(channelID string, content *models.PostContent) (PostRef, error)

	// EditPost rewrites an existing post in place.
	EditPost(ref PostRef, content *models.PostContent) error

	// DeletePost removes a mirrored message.
	DeletePost(ref PostRef) error

	// DeleteThread removes a whole thread.
	DeleteThread(threadID string) error

	// ThreadActivity reports whether a thread has messages beyond its
	// starter, and whether the starter carries reactions of its own.
	ThreadActivity(threadID, starterMessageID string) (hasReplies, hasReactions bool, err error)
}
