package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// InitSQLite opens the local SQLite database and creates the schemas for
// save slots, the event journal, and parental controls.
func InitSQLite(dbPath string) (*sql.DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := createSchemas(db); err != nil {
		return nil, fmt.Errorf("failed to create schemas: %w", err)
	}

	return db, nil
}

func createSchemas(db *sql.DB) error {
	schemas := []string{
		`CREATE TABLE IF NOT EXISTS saves (
			slot INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			species TEXT NOT NULL,
			health REAL NOT NULL,
			hunger REAL NOT NULL,
			happiness REAL NOT NULL,
			sleep REAL NOT NULL,
			state TEXT NOT NULL,
			apples INTEGER NOT NULL DEFAULT 0,
			bananas INTEGER NOT NULL DEFAULT 0,
			purplegifts INTEGER NOT NULL DEFAULT 0,
			greengifts INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			last_updated DATETIME NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS journal (
			id TEXT PRIMARY KEY,
			timestamp DATETIME NOT NULL,
			kind TEXT NOT NULL,
			slot INTEGER NOT NULL DEFAULT 0,
			detail TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_kind ON journal(kind);`,
		`CREATE TABLE IF NOT EXISTS parental_controls (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			enabled BOOLEAN NOT NULL DEFAULT 0,
			limit_minutes INTEGER NOT NULL DEFAULT 0,
			window_start TEXT NOT NULL DEFAULT '',
			window_end TEXT NOT NULL DEFAULT ''
		);`,
	}

	for _, query := range schemas {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}
	return nil
}
