// Package storage provides the SQLite loot ledger: an append-only record of
// play sessions and every item they dropped. It is history for display and
// never feeds back into game state.
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

// ErrUnknownRun is returned when a run ID has no ledger entry.
var ErrUnknownRun = errors.New("storage: unknown run")

// Store manages the SQLite database connection for the loot ledger.
type Store struct {
	db *sql.DB
}

// Run is one play session.
type Run struct {
	ID        string
	Seed      int64
	StartedAt time.Time
	EndedAt   time.Time // Zero while the run is open
	Kills     int
	FinalHP   int
	Drops     int
}

// DropRecord is one item granted during a run.
type DropRecord struct {
	ID        int64
	RunID     string
	DungeonID string
	ClassID   string
	EnemyID   string
	ItemID    string
	ItemName  string
	Boosted   bool
	CreatedAt time.Time
}

// ItemCount aggregates how often an item has dropped.
type ItemCount struct {
	ItemID   string
	ItemName string
	Count    int
	Boosted  int
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME,
			kills INTEGER NOT NULL DEFAULT 0,
			final_hp INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

		CREATE TABLE IF NOT EXISTS drops (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			dungeon_id TEXT NOT NULL,
			class_id TEXT NOT NULL DEFAULT '',
			enemy_id TEXT NOT NULL DEFAULT '',
			item_id TEXT NOT NULL,
			item_name TEXT NOT NULL,
			boosted INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_drops_run ON drops(run_id);
		CREATE INDEX IF NOT EXISTS idx_drops_item ON drops(item_id);
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

// StartRun opens a new run and returns its ID.
func (s *Store) StartRun(seed int64) (string, error) {
	id := uuid.NewString()
	if _, err := s.db.Exec("INSERT INTO runs (id, seed) VALUES (?, ?)", id, seed); err != nil {
		return "", fmt.Errorf("storage: cannot start run: %w", err)
	}
	return id, nil
}

// FinishRun closes a run with its final tallies.
func (s *Store) FinishRun(runID string, kills, finalHP int) error {
	res, err := s.db.Exec(
		"UPDATE runs SET ended_at = CURRENT_TIMESTAMP, kills = ?, final_hp = ? WHERE id = ?",
		kills, finalHP, runID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownRun, runID)
	}
	return nil
}

// RecordDrop appends a drop to the ledger.
// Returns the ID of the inserted record.
func (s *Store) RecordDrop(d DropRecord) (int64, error) {
	boosted := 0
	if d.Boosted {
		boosted = 1
	}
	result, err := s.db.Exec(
		`INSERT INTO drops (run_id, dungeon_id, class_id, enemy_id, item_id, item_name, boosted)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.RunID, d.DungeonID, d.ClassID, d.EnemyID, d.ItemID, d.ItemName, boosted,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record drop: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentDrops retrieves the newest drops across all runs, newest first.
func (s *Store) RecentDrops(limit int) ([]DropRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryDrops(
		`SELECT id, run_id, dungeon_id, class_id, enemy_id, item_id, item_name, boosted, created_at
		 FROM drops
		 ORDER BY id DESC
		 LIMIT ?`,
		limit,
	)
}

// RunDrops retrieves every drop of one run in the order they happened.
func (s *Store) RunDrops(runID string) ([]DropRecord, error) {
	return s.queryDrops(
		`SELECT id, run_id, dungeon_id, class_id, enemy_id, item_id, item_name, boosted, created_at
		 FROM drops
		 WHERE run_id = ?
		 ORDER BY id`,
		runID,
	)
}

func (s *Store) queryDrops(query string, args ...any) ([]DropRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query drops: %w", err)
	}
	defer rows.Close()

	var drops []DropRecord
	for rows.Next() {
		var d DropRecord
		var boosted int
		var createdAt any
		if err := rows.Scan(&d.ID, &d.RunID, &d.DungeonID, &d.ClassID, &d.EnemyID, &d.ItemID, &d.ItemName, &boosted, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		d.Boosted = boosted != 0
		d.CreatedAt = parseTime(createdAt)
		drops = append(drops, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return drops, nil
}

// ItemCounts returns how often each item has dropped, most frequent first.
func (s *Store) ItemCounts() ([]ItemCount, error) {
	rows, err := s.db.Query(
		`SELECT item_id, MAX(item_name), COUNT(*), SUM(boosted)
		 FROM drops
		 GROUP BY item_id
		 ORDER BY COUNT(*) DESC, item_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query item counts: %w", err)
	}
	defer rows.Close()

	var counts []ItemCount
	for rows.Next() {
		var c ItemCount
		if err := rows.Scan(&c.ItemID, &c.ItemName, &c.Count, &c.Boosted); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return counts, nil
}

// RecentRuns retrieves the newest runs with their drop counts.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT r.id, r.seed, r.started_at, r.ended_at, r.kills, r.final_hp,
		        (SELECT COUNT(*) FROM drops d WHERE d.run_id = r.id)
		 FROM runs r
		 ORDER BY r.started_at DESC, r.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var startedAt, endedAt any
		if err := rows.Scan(&r.ID, &r.Seed, &startedAt, &endedAt, &r.Kills, &r.FinalHP, &r.Drops); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.StartedAt = parseTime(startedAt)
		r.EndedAt = parseTime(endedAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// Clear deletes every run and drop.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM drops; DELETE FROM runs;"); err != nil {
		return fmt.Errorf("storage: cannot clear ledger: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
