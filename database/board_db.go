package database

import (
	"database/sql"
	"fmt"

	"gloryboard-bot/models"
)

// BoardStore provides access to the board configuration table. Reads are a
// pure lookup; a missing board is the common case and is reported as nil, nil.
type BoardStore struct {
	db *sql.DB
}

// NewBoardStore creates a board store on top of an initialized database.
func NewBoardStore(db *sql.DB) *BoardStore {
	return &BoardStore{db: db}
}

func scanBoard(row *sql.Row) (*models.Board, error) {
	var b models.Board
	err := row.Scan(&b.ChannelID, &b.GuildID, &b.Emoji, &b.Minimum, &b.Color)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan board: %w", err)
	}
	return &b, nil
}

// ResolveByEmoji returns the board tracking the given emoji in a guild, or nil
// if none is configured. Unconfigured pairs are not an error.
func (bs *BoardStore) ResolveByEmoji(guildID, emoji string) (*models.Board, error) {
	row := bs.db.QueryRow(
		`SELECT channel_id, guild_id, emoji, minimum_count, color FROM boards
         WHERE guild_id = ? AND emoji = ? ORDER BY channel_id LIMIT 1`, guildID, emoji)
	return scanBoard(row)
}

// ByChannel returns the board whose target is the given channel, or nil.
func (bs *BoardStore) ByChannel(channelID string) (*models.Board, error) {
	row := bs.db.QueryRow(
		`SELECT channel_id, guild_id, emoji, minimum_count, color FROM boards
         WHERE channel_id = ?`, channelID)
	return scanBoard(row)
}

// Upsert writes a board configuration, replacing any previous one for the
// same channel.
func (bs *BoardStore) Upsert(board models.Board) error {
	query := `INSERT OR REPLACE INTO boards (channel_id, guild_id, emoji, minimum_count, color) VALUES (?, ?, ?, ?, ?)`
	stmt, err := bs.db.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for saving board: %w", err)
	}
	defer stmt.Close()

	if _, err := stmt.Exec(board.ChannelID, board.GuildID, board.Emoji, board.Minimum, board.Color); err != nil {
		return fmt.Errorf("failed to save board for channel %s: %w", board.ChannelID, err)
	}
	return nil
}

// Disable removes the board configured on a channel. Removing a board that
// does not exist is a no-op. Link cleanup is the engine's responsibility.
func (bs *BoardStore) Disable(channelID string) error {
	if _, err := bs.db.Exec(`DELETE FROM boards WHERE channel_id = ?`, channelID); err != nil {
		return fmt.Errorf("failed to disable board for channel %s: %w", channelID, err)
	}
	return nil
}

// All returns every configured board, for the reconcile sweep.
func (bs *BoardStore) All() ([]models.Board, error) {
	rows, err := bs.db.Query(`SELECT channel_id, guild_id, emoji, minimum_count, color FROM boards`)
	if err != nil {
		return nil, fmt.Errorf("failed to query boards: %w", err)
	}
	defer rows.Close()

	var boards []models.Board
	for rows.Next() {
		var b models.Board
		if err := rows.Scan(&b.ChannelID, &b.GuildID, &b.Emoji, &b.Minimum, &b.Color); err != nil {
			return nil, fmt.Errorf("failed to scan board: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, rows.Err()
}
