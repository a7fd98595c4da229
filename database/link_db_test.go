package database

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gloryboard-bot/models"
)

func newTestLinkStore(t *testing.T) *LinkStore {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewLinkStore(db)
}

func testLink(sourceMessageID string) models.Link {
	return models.Link{
		BoardChannelID:  "glory",
		SourceChannelID: "general",
		SourceMessageID: sourceMessageID,
		PostChannelID:   "glory",
		PostMessageID:   "post-" + sourceMessageID,
		ReactorCount:    3,
	}
}

func TestLinkFindAbsent(t *testing.T) {
	ls := newTestLinkStore(t)

	link, err := ls.Find("glory", "m1")
	require.NoError(t, err)
	assert.Nil(t, link)
}

func TestLinkUpsertAndLookups(t *testing.T) {
	ls := newTestLinkStore(t)
	require.NoError(t, ls.Upsert(testLink("m1")))

	link, err := ls.Find("glory", "m1")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "post-m1", link.PostMessageID)

	byPost, err := ls.FindByPost("post-m1")
	require.NoError(t, err)
	require.NotNil(t, byPost)
	assert.Equal(t, "m1", byPost.SourceMessageID)

	bySource, err := ls.FindBySource("m1")
	require.NoError(t, err)
	assert.Len(t, bySource, 1)
}

func TestLinkUpsertKeepsSingleRow(t *testing.T) {
	ls := newTestLinkStore(t)

	// Writing the same (board, source) twice must overwrite, never duplicate.
	require.NoError(t, ls.Upsert(testLink("m1")))
	second := testLink("m1")
	second.PostMessageID = "post-m1-b"
	require.NoError(t, ls.Upsert(second))

	all, err := ls.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "post-m1-b", all[0].PostMessageID)
}

func TestLinkFindRepairsDuplicateRows(t *testing.T) {
	// The unique index makes duplicates unreachable through Upsert, so this
	// points the store at a bare table and plants the violation directly.
	db, err := sql.Open("sqlite3", filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	_, err = db.Exec(`CREATE TABLE links (
        db_id INTEGER PRIMARY KEY AUTOINCREMENT,
        board_channel_id TEXT NOT NULL,
        source_channel_id TEXT NOT NULL,
        source_message_id TEXT NOT NULL,
        post_channel_id TEXT NOT NULL,
        post_message_id TEXT NOT NULL,
        reactor_count INTEGER NOT NULL DEFAULT 0
    )`)
	require.NoError(t, err)

	ls := NewLinkStore(db)
	require.NoError(t, ls.Upsert(testLink("m1")))
	newer := testLink("m1")
	newer.PostMessageID = "post-m1-b"
	require.NoError(t, ls.Upsert(newer))

	all, err := ls.All()
	require.NoError(t, err)
	require.Len(t, all, 2, "the bare table must accept the duplicate")

	// Find keeps the newest row and repairs the rest away.
	link, err := ls.Find("glory", "m1")
	require.NoError(t, err)
	require.NotNil(t, link)
	assert.Equal(t, "post-m1-b", link.PostMessageID)

	all, err = ls.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "post-m1-b", all[0].PostMessageID)
}

func TestLinkDeleteNotifies(t *testing.T) {
	ls := newTestLinkStore(t)
	require.NoError(t, ls.Upsert(testLink("m1")))

	var notified []models.Link
	ls.OnDelete(func(l models.Link) { notified = append(notified, l) })

	require.NoError(t, ls.Delete(testLink("m1")))

	require.Len(t, notified, 1)
	assert.Equal(t, "m1", notified[0].SourceMessageID)

	link, err := ls.Find("glory", "m1")
	require.NoError(t, err)
	assert.Nil(t, link)
}

func TestLinkForgetDoesNotNotify(t *testing.T) {
	ls := newTestLinkStore(t)
	require.NoError(t, ls.Upsert(testLink("m1")))

	notified := 0
	ls.OnDelete(func(models.Link) { notified++ })

	require.NoError(t, ls.Forget(testLink("m1")))

	assert.Zero(t, notified)
	link, err := ls.Find("glory", "m1")
	require.NoError(t, err)
	assert.Nil(t, link)
}

func TestLinkForgetBoard(t *testing.T) {
	ls := newTestLinkStore(t)
	require.NoError(t, ls.Upsert(testLink("m1")))
	require.NoError(t, ls.Upsert(testLink("m2")))
	other := testLink("m3")
	other.BoardChannelID = "hall-of-fame"
	require.NoError(t, ls.Upsert(other))

	require.NoError(t, ls.ForgetBoard("glory"))

	all, err := ls.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "hall-of-fame", all[0].BoardChannelID)
}

func TestLinkUpdateCount(t *testing.T) {
	ls := newTestLinkStore(t)
	link := testLink("m1")
	require.NoError(t, ls.Upsert(link))

	require.NoError(t, ls.UpdateCount(link, 7))

	got, err := ls.Find("glory", "m1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 7, got.ReactorCount)
}

func TestLinkChannelQueries(t *testing.T) {
	ls := newTestLinkStore(t)
	require.NoError(t, ls.Upsert(testLink("m1")))
	forum := testLink("m2")
	forum.PostChannelID = "thread-9"
	forum.PostMessageID = "thread-9"
	require.NoError(t, ls.Upsert(forum))

	byPostChannel, err := ls.ByPostChannel("thread-9")
	require.NoError(t, err)
	require.Len(t, byPostChannel, 1)
	assert.Equal(t, "m2", byPostChannel[0].SourceMessageID)

	bySourceChannel, err := ls.BySourceChannel("general")
	require.NoError(t, err)
	assert.Len(t, bySourceChannel, 2)

	byBoard, err := ls.ByBoard("glory")
	require.NoError(t, err)
	assert.Len(t, byBoard, 2)
}
