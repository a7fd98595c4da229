package models

// SourceMessage is the engine's read model of an original chat message. It
// carries only what the renderer and the state machine need; the live Discord
// message stays authoritative and is re-fetched on every event.
type SourceMessage struct {
	MessageID       string   `json:"message_id"`
	ChannelID       string   `json:"channel_id"`
	GuildID         string   `json:"guild_id"`
	AuthorID        string   `json:"author_id"`
	AuthorName      string   `json:"author_name"`
	AuthorAvatarURL string   `json:"author_avatar_url"`
	AuthorIsBot     bool     `json:"author_is_bot"`
	Content         string   `json:"content"`
	AttachmentURLs  []string `json:"attachment_urls"`
	Mirrorable      bool     `json:"mirrorable"` // default/reply message types only
}

// JumpURL returns the deep link to the message.
func (m *SourceMessage) JumpURL() string {
	return "https://discord.com/channels/" + m.GuildID + "/" + m.ChannelID + "/" + m.MessageID
}
