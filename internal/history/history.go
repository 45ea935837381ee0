// Package history keeps a small ledger of pipeline runs so `status` can
// answer "when did this last run, and what did it find". The ledger is
// bookkeeping: failures here never fail a run.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "github.com/tursodatabase/go-libsql"
)

const (
	idAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	idLength   = 8
)

// Run is one recorded pipeline invocation.
type Run struct {
	ID         string
	RanAt      time.Time
	Date       time.Time
	Projects   int
	Entries    int
	Skipped    int
	NotePath   string
	NoteAction string // "created" | "updated" | "unchanged"
}

// Ledger records and lists pipeline runs in a local SQLite database.
type Ledger struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger database under dataDir.
func Open(dataDir string) (*Ledger, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "digestctl.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	// Enable WAL mode. The PRAGMA returns a result row, and go-libsql's
	// Exec errors on statements that return rows, so issue it via Query.
	rows, err := db.Query("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	rows.Close()

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Ledger{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			ran_at      TEXT NOT NULL,
			date        TEXT NOT NULL,
			projects    INTEGER NOT NULL,
			entries     INTEGER NOT NULL,
			skipped     INTEGER NOT NULL,
			note_path   TEXT NOT NULL,
			note_action TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_ran_at ON runs(ran_at DESC);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record inserts a run, assigning it a fresh ID and timestamp.
func (l *Ledger) Record(r Run) (Run, error) {
	id, err := gonanoid.Generate(idAlphabet, idLength)
	if err != nil {
		return Run{}, fmt.Errorf("generating run ID: %w", err)
	}
	r.ID = id
	if r.RanAt.IsZero() {
		r.RanAt = time.Now().UTC()
	}

	_, err = l.db.Exec(
		"INSERT INTO runs (id, ran_at, date, projects, entries, skipped, note_path, note_action) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID,
		r.RanAt.UTC().Format(time.RFC3339),
		r.Date.Format("2006-01-02"),
		r.Projects,
		r.Entries,
		r.Skipped,
		r.NotePath,
		r.NoteAction,
	)
	if err != nil {
		return Run{}, fmt.Errorf("inserting run: %w", err)
	}
	return r, nil
}

// List returns the most recent runs, newest first.
func (l *Ledger) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := l.db.Query(
		"SELECT id, ran_at, date, projects, entries, skipped, note_path, note_action FROM runs ORDER BY ran_at DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ranAt string
		// go-libsql returns date-like TEXT columns as time.Time, so scan the
		// date directly instead of parsing the stored "2006-01-02" string.
		var date time.Time
		if err := rows.Scan(&r.ID, &ranAt, &date, &r.Projects, &r.Entries, &r.Skipped, &r.NotePath, &r.NoteAction); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.RanAt, _ = time.Parse(time.RFC3339, ranAt)
		r.Date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.Local)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
