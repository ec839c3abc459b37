// Package storage provides SQLite-based persistence for campaign progress
// and the level completion log.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ProgressEntry is the furthest unlocked level of one save slot.
type ProgressEntry struct {
	Slot      string
	World     int
	Level     int
	UpdatedAt time.Time
}

// CompletionEntry is one won attempt of a level.
type CompletionEntry struct {
	ID         int64
	RunID      uuid.UUID
	LevelID    string
	World      int
	Level      int
	Moves      int
	Undos      int
	ShiftsUsed int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS progress (
			slot TEXT PRIMARY KEY,
			world INTEGER NOT NULL,
			level INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS completions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			level_id TEXT NOT NULL,
			world INTEGER NOT NULL,
			level INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			undos INTEGER NOT NULL DEFAULT 0,
			shifts_used INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_completions_level ON completions(level_id, moves);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadProgress returns the progress of a slot. A slot that was never saved
// reports ok=false.
func (s *Store) LoadProgress(slot string) (entry ProgressEntry, ok bool, err error) {
	var updatedAt any
	err = s.db.QueryRow(
		"SELECT slot, world, level, updated_at FROM progress WHERE slot = ?",
		slot,
	).Scan(&entry.Slot, &entry.World, &entry.Level, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return ProgressEntry{Slot: slot}, false, nil
	}
	if err != nil {
		return ProgressEntry{}, false, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	entry.UpdatedAt = parseTime(updatedAt)
	return entry, true, nil
}

// SaveProgress stores the progress of a slot, replacing what was there.
func (s *Store) SaveProgress(slot string, world, level int) error {
	_, err := s.db.Exec(
		`INSERT INTO progress (slot, world, level, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
		   world = excluded.world,
		   level = excluded.level,
		   updated_at = excluded.updated_at`,
		slot, world, level,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save progress: %w", err)
	}
	return nil
}

// ResetProgress forgets the progress of a slot.
func (s *Store) ResetProgress(slot string) error {
	_, err := s.db.Exec("DELETE FROM progress WHERE slot = ?", slot)
	if err != nil {
		return fmt.Errorf("storage: cannot reset progress: %w", err)
	}
	return nil
}

// Slots lists every saved slot.
func (s *Store) Slots() ([]ProgressEntry, error) {
	rows, err := s.db.Query(
		"SELECT slot, world, level, updated_at FROM progress ORDER BY slot",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query slots: %w", err)
	}
	defer rows.Close()

	var entries []ProgressEntry
	for rows.Next() {
		var e ProgressEntry
		var updatedAt any
		if err := rows.Scan(&e.Slot, &e.World, &e.Level, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// RecordCompletion appends a won attempt to the log. A zero run id gets a
// fresh one. Returns the ID of the inserted record.
func (s *Store) RecordCompletion(c CompletionEntry) (int64, error) {
	if c.RunID == uuid.Nil {
		c.RunID = uuid.New()
	}
	result, err := s.db.Exec(
		`INSERT INTO completions
		 (run_id, level_id, world, level, moves, undos, shifts_used)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.RunID.String(), c.LevelID, c.World, c.Level, c.Moves, c.Undos, c.ShiftsUsed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// Completions retrieves the completions of a level, fewest moves first.
func (s *Store) Completions(levelID string, limit int) ([]CompletionEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT id, run_id, level_id, world, level, moves, undos, shifts_used, created_at
		 FROM completions
		 WHERE level_id = ?
		 ORDER BY moves ASC, undos ASC, id ASC
		 LIMIT ?`,
		levelID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	return scanCompletions(rows)
}

// BestCompletions returns the fewest-moves completion of every level that
// has been won at least once, in campaign order.
func (s *Store) BestCompletions() ([]CompletionEntry, error) {
	rows, err := s.db.Query(
		`SELECT c.id, c.run_id, c.level_id, c.world, c.level, c.moves, c.undos, c.shifts_used, c.created_at
		 FROM completions c
		 WHERE c.id = (
		   SELECT b.id FROM completions b
		   WHERE b.level_id = c.level_id
		   ORDER BY b.moves ASC, b.undos ASC, b.id ASC
		   LIMIT 1
		 )
		 ORDER BY c.world, c.level, c.level_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best completions: %w", err)
	}
	return scanCompletions(rows)
}

// ClearCompletions deletes the whole completion log.
func (s *Store) ClearCompletions() error {
	if _, err := s.db.Exec("DELETE FROM completions"); err != nil {
		return fmt.Errorf("storage: cannot clear completions: %w", err)
	}
	return nil
}

func scanCompletions(rows *sql.Rows) ([]CompletionEntry, error) {
	defer rows.Close()

	var entries []CompletionEntry
	for rows.Next() {
		var e CompletionEntry
		var runID string
		var createdAt any
		if err := rows.Scan(&e.ID, &runID, &e.LevelID, &e.World, &e.Level,
			&e.Moves, &e.Undos, &e.ShiftsUsed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		id, err := uuid.Parse(runID)
		if err != nil {
			return nil, fmt.Errorf("storage: bad run id %q: %w", runID, err)
		}
		e.RunID = id
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles the datetime as either time.Time or string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
