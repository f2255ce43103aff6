// Package storage provides SQLite-backed persistence for briefing cycle records.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dwkim-dev/cryptobrief/internal/models"
)

// Storage wraps a SQLite database holding the append-only cycle history.
type Storage struct {
	db        *sql.DB
	maxCycles int
}

// New opens or creates the SQLite database at dbPath.
// An empty dbPath defaults to $TMPDIR/cryptobrief/data.db.
func New(maxCycles int, dbPath string) (*Storage, error) {
	if dbPath == "" {
		dbPath = filepath.Join(os.TempDir(), "cryptobrief", "data.db")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // single writer; WAL allows concurrent readers
	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	s := &Storage{db: db, maxCycles: maxCycles}
	if err := s.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) createTables() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cycles (
			id           TEXT PRIMARY KEY,
			generated_at INTEGER NOT NULL,
			verdict      TEXT,
			bullish      INTEGER NOT NULL DEFAULT 0,
			bearish      INTEGER NOT NULL DEFAULT 0,
			record       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_generated_at ON cycles(generated_at DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// AddCycle appends one cycle record and enforces the retention cap.
func (s *Storage) AddCycle(rec models.CycleRecord) error {
	if rec.ID == "" {
		return fmt.Errorf("cycle record ID must not be empty")
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal cycle record: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.Exec(`
		INSERT INTO cycles (id, generated_at, verdict, bullish, bearish, record)
		VALUES (?,?,?,?,?,?)`,
		rec.ID, rec.GeneratedAt.UnixNano(), rec.Verdict,
		rec.BullishCount, rec.BearishCount, string(payload),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cycle: %w", err)
	}

	if _, err = tx.Exec(`
		DELETE FROM cycles WHERE id NOT IN (
			SELECT id FROM cycles ORDER BY generated_at DESC LIMIT ?
		)`, s.maxCycles); err != nil {
		return fmt.Errorf("failed to enforce cycle cap: %w", err)
	}

	return tx.Commit()
}

// RecentCycles returns up to k most recent cycle records, newest first.
func (s *Storage) RecentCycles(k int) ([]models.CycleRecord, error) {
	rows, err := s.db.Query(`
		SELECT record FROM cycles ORDER BY generated_at DESC LIMIT ?`, k)
	if err != nil {
		return nil, fmt.Errorf("failed to query cycles: %w", err)
	}
	defer rows.Close()

	var records []models.CycleRecord
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan cycle: %w", err)
		}
		var rec models.CycleRecord
		if err := json.Unmarshal([]byte(payload), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal cycle record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// LatestCycle returns the newest cycle record, or nil when history is empty.
func (s *Storage) LatestCycle() (*models.CycleRecord, error) {
	records, err := s.RecentCycles(1)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// CountSince returns the number of cycles generated at or after t.
func (s *Storage) CountSince(t time.Time) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM cycles WHERE generated_at >= ?`, t.UnixNano()).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count cycles: %w", err)
	}
	return n, nil
}
