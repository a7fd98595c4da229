package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gloryboard-bot/models"
)

func newTestBoardStore(t *testing.T) *BoardStore {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBoardStore(db)
}

func TestResolveByEmojiUnconfigured(t *testing.T) {
	bs := newTestBoardStore(t)

	// An unconfigured pair is the common case and must not be an error.
	board, err := bs.ResolveByEmoji("guild", "⭐")
	require.NoError(t, err)
	assert.Nil(t, board)
}

func TestBoardUpsertAndResolve(t *testing.T) {
	bs := newTestBoardStore(t)

	require.NoError(t, bs.Upsert(models.Board{
		ChannelID: "glory",
		GuildID:   "guild",
		Emoji:     "⭐",
		Minimum:   3,
		Color:     0xFEE75C,
	}))

	board, err := bs.ResolveByEmoji("guild", "⭐")
	require.NoError(t, err)
	require.NotNil(t, board)
	assert.Equal(t, "glory", board.ChannelID)
	assert.Equal(t, 3, board.Minimum)

	// Other guilds and other emojis resolve to nothing.
	board, err = bs.ResolveByEmoji("other-guild", "⭐")
	require.NoError(t, err)
	assert.Nil(t, board)
	board, err = bs.ResolveByEmoji("guild", "🔥")
	require.NoError(t, err)
	assert.Nil(t, board)
}

func TestBoardUpsertReplacesExisting(t *testing.T) {
	bs := newTestBoardStore(t)

	require.NoError(t, bs.Upsert(models.Board{ChannelID: "glory", GuildID: "guild", Emoji: "⭐", Minimum: 3, Color: 1}))
	require.NoError(t, bs.Upsert(models.Board{ChannelID: "glory", GuildID: "guild", Emoji: "🔥", Minimum: 5, Color: 2}))

	board, err := bs.ByChannel("glory")
	require.NoError(t, err)
	require.NotNil(t, board)
	assert.Equal(t, "🔥", board.Emoji)
	assert.Equal(t, 5, board.Minimum)

	// One board per channel: the old trigger is gone.
	old, err := bs.ResolveByEmoji("guild", "⭐")
	require.NoError(t, err)
	assert.Nil(t, old)
}

func TestBoardDisable(t *testing.T) {
	bs := newTestBoardStore(t)

	require.NoError(t, bs.Upsert(models.Board{ChannelID: "glory", GuildID: "guild", Emoji: "⭐", Minimum: 3}))
	require.NoError(t, bs.Disable("glory"))

	board, err := bs.ByChannel("glory")
	require.NoError(t, err)
	assert.Nil(t, board)

	// Disabling again is a no-op.
	require.NoError(t, bs.Disable("glory"))
}

func TestBoardAll(t *testing.T) {
	bs := newTestBoardStore(t)

	require.NoError(t, bs.Upsert(models.Board{ChannelID: "glory", GuildID: "guild", Emoji: "⭐", Minimum: 3}))
	require.NoError(t, bs.Upsert(models.Board{ChannelID: "hall-of-fame", GuildID: "guild", Emoji: "🔥", Minimum: 5}))

	boards, err := bs.All()
	require.NoError(t, err)
	assert.Len(t, boards, 2)
}
