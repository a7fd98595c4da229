package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // Import the SQLite3 driver
)

// InitDB initializes the database connection. It takes the database path as input.
func InitDB(dbPath string) (*sql.DB, error) {
	// Ensure the directory for the database file exists.
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Open the SQLite database. It will be created if it doesn't exist.
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Ping the database to verify the connection.
	if err = db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := createBoardsTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create boards table: %w", err)
	}

	if err := createLinksTable(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create links table: %w", err)
	}

	log.Println("Successfully connected to the database at", dbPath)
	return db, nil
}

// createBoardsTable creates the 'boards' table if it doesn't exist.
func createBoardsTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS boards (
        channel_id TEXT PRIMARY KEY,
        guild_id TEXT NOT NULL,
        emoji TEXT NOT NULL DEFAULT '⭐',
        minimum_count INTEGER NOT NULL DEFAULT 3,
        color INTEGER NOT NULL DEFAULT 16705372
    );`
	_, err := db.Exec(query)
	return err
}

// createLinksTable creates the 'links' table if it doesn't exist. The unique
// index on (board_channel_id, source_message_id) backs the at-most-one-post
// invariant at the storage level.
func createLinksTable(db *sql.DB) error {
	query := `
    CREATE TABLE IF NOT EXISTS links (
        db_id INTEGER PRIMARY KEY AUTOINCREMENT,
        board_channel_id TEXT NOT NULL,
        source_channel_id TEXT NOT NULL,
        source_message_id TEXT NOT NULL,
        post_channel_id TEXT NOT NULL,
        post_message_id TEXT NOT NULL,
        reactor_count INTEGER NOT NULL DEFAULT 0,
        UNIQUE(board_channel_id, source_message_id)
    );`
	if _, err := db.Exec(query); err != nil {
		return err
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_links_source ON links(source_message_id);",
		"CREATE INDEX IF NOT EXISTS idx_links_post ON links(post_message_id);",
		"CREATE INDEX IF NOT EXISTS idx_links_source_channel ON links(source_channel_id);",
	}
	for _, indexQuery := range indexes {
		if _, err := db.Exec(indexQuery); err != nil {
			log.Printf("Warning: failed to create index: %v", err)
		}
	}

	return nil
}
