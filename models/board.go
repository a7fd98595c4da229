package models

// Default board settings used when the /gloryboard set options are omitted.
const (
	DefaultEmoji   = "⭐" // ⭐
	DefaultMinimum = 3
	DefaultColor   = 0xFEE75C
)

// Board binds a target channel to a trigger emoji and a reaction threshold.
// At most one board exists per channel.
type Board struct {
	ChannelID string `db:"channel_id"` // Unique
	GuildID   string `db:"guild_id"`
	Emoji     string `db:"emoji"`
	Minimum   int    `db:"minimum_count"`
	Color     int    `db:"color"`
}
