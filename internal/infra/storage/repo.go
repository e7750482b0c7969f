// Package storage persists save slots, the event journal, and parental
// settings in SQLite. It defines its own row shapes; the entry point
// adapts them to and from the engine's types.
package storage

import (
	"context"
	"database/sql"
	"time"
)

// SaveRecord is the database shape of one save slot.
type SaveRecord struct {
	Slot        int
	Name        string
	Species     string
	Health      float64
	Hunger      float64
	Happiness   float64
	Sleep       float64
	State       string
	Apples      int
	Bananas     int
	PurpleGifts int
	GreenGifts  int
	Score       int
}

// SQLiteSaveRepository stores save slots.
type SQLiteSaveRepository struct {
	db *sql.DB
}

func NewSQLiteSaveRepository(db *sql.DB) *SQLiteSaveRepository {
	return &SQLiteSaveRepository{db: db}
}

// Upsert writes a slot, replacing any previous contents.
func (r *SQLiteSaveRepository) Upsert(ctx context.Context, rec SaveRecord) error {
	query := `
		INSERT INTO saves (slot, name, species, health, hunger, happiness, sleep, state, apples, bananas, purplegifts, greengifts, score, last_updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			name=excluded.name,
			species=excluded.species,
			health=excluded.health,
			hunger=excluded.hunger,
			happiness=excluded.happiness,
			sleep=excluded.sleep,
			state=excluded.state,
			apples=excluded.apples,
			bananas=excluded.bananas,
			purplegifts=excluded.purplegifts,
			greengifts=excluded.greengifts,
			score=excluded.score,
			last_updated=excluded.last_updated
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.Slot, rec.Name, rec.Species, rec.Health, rec.Hunger, rec.Happiness,
		rec.Sleep, rec.State, rec.Apples, rec.Bananas, rec.PurpleGifts,
		rec.GreenGifts, rec.Score, time.Now(),
	)
	return err
}

// GetBySlot returns the slot's record, or (nil, nil) when the slot is
// empty or its row cannot be read. A broken row reads as "no save in
// slot" by contract, never as a hard failure.
func (r *SQLiteSaveRepository) GetBySlot(ctx context.Context, slot int) (*SaveRecord, error) {
	query := `SELECT slot, name, species, health, hunger, happiness, sleep, state, apples, bananas, purplegifts, greengifts, score FROM saves WHERE slot = ?`
	var rec SaveRecord
	err := r.db.QueryRowContext(ctx, query, slot).Scan(
		&rec.Slot, &rec.Name, &rec.Species, &rec.Health, &rec.Hunger,
		&rec.Happiness, &rec.Sleep, &rec.State, &rec.Apples, &rec.Bananas,
		&rec.PurpleGifts, &rec.GreenGifts, &rec.Score,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		// Malformed row: report an empty slot rather than failing a load.
		return nil, nil
	}
	return &rec, nil
}

// Clear empties a slot.
func (r *SQLiteSaveRepository) Clear(ctx context.Context, slot int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM saves WHERE slot = ?`, slot)
	return err
}

// ---------------------------------------------------------
// SQLiteJournalRepository
// ---------------------------------------------------------

// JournalRow is the database shape of one journal entry.
type JournalRow struct {
	ID        string
	Timestamp time.Time
	Kind      string
	Slot      int
	Detail    string
}

// SQLiteJournalRepository stores the append-only event journal.
type SQLiteJournalRepository struct {
	db *sql.DB
}

func NewSQLiteJournalRepository(db *sql.DB) *SQLiteJournalRepository {
	return &SQLiteJournalRepository{db: db}
}

func (r *SQLiteJournalRepository) Append(ctx context.Context, row JournalRow) error {
	query := `INSERT INTO journal (id, timestamp, kind, slot, detail) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, row.ID, row.Timestamp, row.Kind, row.Slot, row.Detail)
	return err
}

// GetByKind returns all journal rows of a kind, oldest first.
func (r *SQLiteJournalRepository) GetByKind(ctx context.Context, kind string) ([]JournalRow, error) {
	query := `SELECT id, timestamp, kind, slot, detail FROM journal WHERE kind = ? ORDER BY timestamp ASC`
	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []JournalRow
	for rows.Next() {
		var row JournalRow
		if err := rows.Scan(&row.ID, &row.Timestamp, &row.Kind, &row.Slot, &row.Detail); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// ---------------------------------------------------------
// SQLiteParentalRepository
// ---------------------------------------------------------

// ParentalRow is the database shape of the singleton parental settings.
type ParentalRow struct {
	Enabled      bool
	LimitMinutes int
	WindowStart  string
	WindowEnd    string
}

// SQLiteParentalRepository stores the parental-control settings.
type SQLiteParentalRepository struct {
	db *sql.DB
}

func NewSQLiteParentalRepository(db *sql.DB) *SQLiteParentalRepository {
	return &SQLiteParentalRepository{db: db}
}

func (r *SQLiteParentalRepository) Put(ctx context.Context, row ParentalRow) error {
	query := `
		INSERT INTO parental_controls (id, enabled, limit_minutes, window_start, window_end)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			enabled=excluded.enabled,
			limit_minutes=excluded.limit_minutes,
			window_start=excluded.window_start,
			window_end=excluded.window_end
	`
	_, err := r.db.ExecContext(ctx, query, row.Enabled, row.LimitMinutes, row.WindowStart, row.WindowEnd)
	return err
}

// Get returns the settings, or (nil, nil) when never set.
func (r *SQLiteParentalRepository) Get(ctx context.Context) (*ParentalRow, error) {
	query := `SELECT enabled, limit_minutes, window_start, window_end FROM parental_controls WHERE id = 1`
	var row ParentalRow
	err := r.db.QueryRowContext(ctx, query).Scan(&row.Enabled, &row.LimitMinutes, &row.WindowStart, &row.WindowEnd)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}
