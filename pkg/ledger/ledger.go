// Package ledger records corpus runs in a local SQLite database.
package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a run ID is unknown.
var ErrNotFound = errors.New("run not found")

// Run is one row of the runs table.
type Run struct {
	ID         string  `json:"run_id"`
	Mode       string  `json:"mode"` // rules|vocab
	Language   string  `json:"language,omitempty"`
	TablePath  string  `json:"table_path"`
	TableSize  int     `json:"table_size"`
	Corpus     string  `json:"corpus_path"`
	Output     string  `json:"output_path"`
	Rows       int     `json:"rows_written"`
	Skipped    int     `json:"rows_skipped"`
	StartedAt  int64   `json:"started_at"` // unix milliseconds
	FinishedAt *int64  `json:"finished_at,omitempty"`
	Error      *string `json:"error,omitempty"`
}

// Done reports whether the run has finished, successfully or not.
func (r Run) Done() bool { return r.FinishedAt != nil }

// Ledger manages the runs table.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the SQLite database at path and ensures the runs
// table exists.
func Open(path string) (*Ledger, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS runs (
		run_id       TEXT PRIMARY KEY,
		mode         TEXT NOT NULL,
		language     TEXT NOT NULL DEFAULT '',
		table_path   TEXT NOT NULL,
		table_size   INTEGER NOT NULL DEFAULT 0,
		corpus_path  TEXT NOT NULL,
		output_path  TEXT NOT NULL,
		rows_written INTEGER NOT NULL DEFAULT 0,
		rows_skipped INTEGER NOT NULL DEFAULT 0,
		started_at   INTEGER NOT NULL,
		finished_at  INTEGER,
		error        TEXT
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create runs table: %w", err)
	}

	return &Ledger{db: db, now: time.Now}, nil
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Start inserts a new run and returns its ID. ID, StartedAt and the result
// fields of r are ignored.
func (l *Ledger) Start(r Run) (string, error) {
	id := uuid.NewString()
	_, err := l.db.Exec(`INSERT INTO runs
		(run_id, mode, language, table_path, table_size, corpus_path, output_path, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, r.Mode, r.Language, r.TablePath, r.TableSize, r.Corpus, r.Output, l.now().UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("start run: %w", err)
	}
	return id, nil
}

// Finish records the outcome of a run. A nil runErr marks success.
func (l *Ledger) Finish(id string, rows, skipped int, runErr error) error {
	var errText *string
	if runErr != nil {
		s := runErr.Error()
		errText = &s
	}
	res, err := l.db.Exec(
		`UPDATE runs SET rows_written = ?, rows_skipped = ?, finished_at = ?, error = ? WHERE run_id = ?`,
		rows, skipped, l.now().UnixMilli(), errText, id,
	)
	if err != nil {
		return fmt.Errorf("finish run %s: %w", id, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("finish run %s: %w", id, ErrNotFound)
	}
	return nil
}

const runColumns = `run_id, mode, language, table_path, table_size, corpus_path, output_path,
	rows_written, rows_skipped, started_at, finished_at, error`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var r Run
	err := s.Scan(&r.ID, &r.Mode, &r.Language, &r.TablePath, &r.TableSize, &r.Corpus, &r.Output,
		&r.Rows, &r.Skipped, &r.StartedAt, &r.FinishedAt, &r.Error)
	return r, err
}

// Get returns a single run.
func (l *Ledger) Get(id string) (Run, error) {
	r, err := scanRun(l.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("get run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("get run %s: %w", id, err)
	}
	return r, nil
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means no limit.
func (l *Ledger) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := l.db.Query(`SELECT `+runColumns+` FROM runs
		ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
