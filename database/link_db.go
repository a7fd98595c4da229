package database

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	"gloryboard-bot/models"
)

// LinkStore is the single source of truth for "does a mirrored post exist".
// Delete fires the registered on-delete callback so external cleanup runs no
// matter what caused the removal; Forget drops the row silently for cascades
// where the external object is already gone.
type LinkStore struct {
	db       *sql.DB
	mutex    sync.RWMutex
	onDelete func(models.Link)
}

// NewLinkStore creates a link store on top of an initialized database.
func NewLinkStore(db *sql.DB) *LinkStore {
	return &LinkStore{db: db}
}

// OnDelete registers the callback invoked after a notifying delete.
func (ls *LinkStore) OnDelete(fn func(models.Link)) {
	ls.mutex.Lock()
	defer ls.mutex.Unlock()
	ls.onDelete = fn
}

const linkColumns = `board_channel_id, source_channel_id, source_message_id, post_channel_id, post_message_id, reactor_count`

func scanLinks(rows *sql.Rows) ([]models.Link, error) {
	defer rows.Close()
	var links []models.Link
	for rows.Next() {
		var l models.Link
		if err := rows.Scan(&l.BoardChannelID, &l.SourceChannelID, &l.SourceMessageID, &l.PostChannelID, &l.PostMessageID, &l.ReactorCount); err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// Find returns the link for a (board, source message) pair, or nil if the
// message has no mirrored post. More than one row for the pair violates the
// at-most-one-post invariant; the newest row is kept and the rest are
// repaired away with an error log.
func (ls *LinkStore) Find(boardChannelID, sourceMessageID string) (*models.Link, error) {
	rows, err := ls.db.Query(
		`SELECT `+linkColumns+` FROM links
         WHERE board_channel_id = ? AND source_message_id = ? ORDER BY db_id DESC`,
		boardChannelID, sourceMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query link: %w", err)
	}

	links, err := scanLinks(rows)
	if err != nil {
		return nil, err
	}
	if len(links) == 0 {
		return nil, nil
	}

	if len(links) > 1 {
		// Should be unreachable given the unique index and the per-source
		// locking. Keep the most recent row, drop the rest.
		log.Printf("ERROR: %d links found for board %s source %s, repairing", len(links), boardChannelID, sourceMessageID)
		if _, err := ls.db.Exec(
			`DELETE FROM links WHERE board_channel_id = ? AND source_message_id = ?
             AND db_id NOT IN (SELECT MAX(db_id) FROM links WHERE board_channel_id = ? AND source_message_id = ?)`,
			boardChannelID, sourceMessageID, boardChannelID, sourceMessageID); err != nil {
			return nil, fmt.Errorf("failed to repair duplicate links: %w", err)
		}
	}

	return &links[0], nil
}

// FindBySource returns every link whose source is the given message,
// regardless of board.
func (ls *LinkStore) FindBySource(sourceMessageID string) ([]models.Link, error) {
	rows, err := ls.db.Query(`SELECT `+linkColumns+` FROM links WHERE source_message_id = ?`, sourceMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links by source: %w", err)
	}
	return scanLinks(rows)
}

// FindByPost returns the link whose mirrored post is the given message, or nil.
func (ls *LinkStore) FindByPost(postMessageID string) (*models.Link, error) {
	rows, err := ls.db.Query(`SELECT `+linkColumns+` FROM links WHERE post_message_id = ? LIMIT 1`, postMessageID)
	if err != nil {
		return nil, fmt.Errorf("failed to query link by post: %w", err)
	}
	links, err := scanLinks(rows)
	if err != nil || len(links) == 0 {
		return nil, err
	}
	return &links[0], nil
}

// ByBoard returns every link belonging to a board.
func (ls *LinkStore) ByBoard(boardChannelID string) ([]models.Link, error) {
	rows, err := ls.db.Query(`SELECT `+linkColumns+` FROM links WHERE board_channel_id = ?`, boardChannelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links by board: %w", err)
	}
	return scanLinks(rows)
}

// ByPostChannel returns every link whose post lives in the given channel or
// thread.
func (ls *LinkStore) ByPostChannel(channelID string) ([]models.Link, error) {
	rows, err := ls.db.Query(`SELECT `+linkColumns+` FROM links WHERE post_channel_id = ?`, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links by post channel: %w", err)
	}
	return scanLinks(rows)
}

// BySourceChannel returns every link whose source message lives in the given
// channel.
func (ls *LinkStore) BySourceChannel(channelID string) ([]models.Link, error) {
	rows, err := ls.db.Query(`SELECT `+linkColumns+` FROM links WHERE source_channel_id = ?`, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query links by source channel: %w", err)
	}
	return scanLinks(rows)
}

// All returns every link, for the reconcile sweep.
func (ls *LinkStore) All() ([]models.Link, error) {
	rows, err := ls.db.Query(`SELECT ` + linkColumns + ` FROM links`)
	if err != nil {
		return nil, fmt.Errorf("failed to query links: %w", err)
	}
	return scanLinks(rows)
}

// Upsert writes a link, replacing any previous row for the same
// (board, source message) pair. Callers hold the per-source lock, so a
// replace here is a serialized overwrite, never a silent duplicate.
func (ls *LinkStore) Upsert(link models.Link) error {
	query := `INSERT OR REPLACE INTO links (` + linkColumns + `) VALUES (?, ?, ?, ?, ?, ?)`
	stmt, err := ls.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for saving link: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(link.BoardChannelID, link.SourceChannelID, link.SourceMessageID, link.PostChannelID, link.PostMessageID, link.ReactorCount); err != nil {
		return fmt.Errorf("failed to save link for source %s: %w", link.SourceMessageID, err)
	}
	return nil
}

// UpdateCount stores the reactor count last rendered into the post.
func (ls *LinkStore) UpdateCount(link models.Link, count int) error {
	_, err := ls.db.Exec(
		`UPDATE links SET reactor_count = ? WHERE board_channel_id = ? AND source_message_id = ?`,
		count, link.BoardChannelID, link.SourceMessageID)
	if err != nil {
		return fmt.Errorf("failed to update reactor count for source %s: %w", link.SourceMessageID, err)
	}
	return nil
}

// Delete removes a link and notifies the on-delete callback. Deleting the
// link is the only authorized trigger for deleting the mirrored post, so the
// callback is where that external teardown happens.
func (ls *LinkStore) Delete(link models.Link) error {
	if err := ls.Forget(link); err != nil {
		return err
	}

	ls.mutex.RLock()
	fn := ls.onDelete
	ls.mutex.RUnlock()
	if fn != nil {
		fn(link)
	}
	return nil
}

// Forget removes a link row without notifying. Used when the external post
// is already known to be gone (post deleted externally, channel deleted).
func (ls *LinkStore) Forget(link models.Link) error {
	_, err := ls.db.Exec(
		`DELETE FROM links WHERE board_channel_id = ? AND source_message_id = ?`,
		link.BoardChannelID, link.SourceMessageID)
	if err != nil {
		return fmt.Errorf("failed to delete link for source %s: %w", link.SourceMessageID, err)
	}
	return nil
}

// ForgetBoard removes every link belonging to a board. Bookkeeping only: the
// posts died with the board channel.
func (ls *LinkStore) ForgetBoard(boardChannelID string) error {
	_, err := ls.db.Exec(`DELETE FROM links WHERE board_channel_id = ?`, boardChannelID)
	if err != nil {
		return fmt.Errorf("failed to delete links for board %s: %w", boardChannelID, err)
	}
	return nil
}
