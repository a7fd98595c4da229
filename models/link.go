package models

// Link is the durable record binding a source message to the post mirrored
// from it on a board. For text boards PostChannelID is the board channel and
// PostMessageID the mirrored message; for forum boards both are the thread ID,
// since a forum starter message shares its thread's ID.
type Link struct {
	BoardChannelID  string `db:"board_channel_id"`
	SourceChannelID string `db:"source_channel_id"`
	SourceMessageID string `db:"source_message_id"` // Unique per board
	PostChannelID   string `db:"post_channel_id"`
	PostMessageID   string `db:"post_message_id"`
	ReactorCount    int    `db:"reactor_count"` // count rendered into the post
}
