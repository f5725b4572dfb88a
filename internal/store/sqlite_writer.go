// Package store persists lint runs in SQLite.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/agentic-research/a11yname/internal/linter"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	finished_at INTEGER,
	files INTEGER DEFAULT 0,
	problems INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS diagnostics (
	run_id TEXT NOT NULL REFERENCES runs(id),
	file TEXT NOT NULL,
	line INTEGER NOT NULL,
	col INTEGER NOT NULL,
	rule TEXT NOT NULL,
	message_id TEXT NOT NULL,
	message TEXT NOT NULL
);
`

// SQLiteWriter appends runs and their diagnostics to a database. Inserts are
// batched into transactions; Close commits the tail.
type SQLiteWriter struct {
	db        *sql.DB
	tx        *sql.Tx
	stmtDiag  *sql.Stmt
	batchSize int
	count     int
	mu        sync.Mutex
}

// NewSQLiteWriter opens (or creates) the database at dbPath.
func NewSQLiteWriter(dbPath string) (*SQLiteWriter, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", dbPath, err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	w := &SQLiteWriter{db: db, batchSize: 5000}
	if err := w.beginTx(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return w, nil
}

func (w *SQLiteWriter) beginTx() error {
	var err error
	w.tx, err = w.db.Begin()
	if err != nil {
		return err
	}
	w.stmtDiag, err = w.tx.Prepare(`
		INSERT INTO diagnostics (run_id, file, line, col, rule, message_id, message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	return err
}

func (w *SQLiteWriter) commitTx() error {
	if w.stmtDiag != nil {
		_ = w.stmtDiag.Close()
	}
	return w.tx.Commit()
}

// BeginRun records the start of a run and returns its id.
func (w *SQLiteWriter) BeginRun(started time.Time) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id := uuid.NewString()
	if _, err := w.tx.Exec(`INSERT INTO runs (id, started_at) VALUES (?, ?)`, id, started.UnixNano()); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// Add writes one diagnostic of a run. Lines and columns are stored 1-based.
func (w *SQLiteWriter) Add(runID string, d linter.Diagnostic) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := w.stmtDiag.Exec(runID, d.File, int64(d.Line)+1, int64(d.Column)+1, d.Rule, d.MessageID, d.Message)
	if err != nil {
		return fmt.Errorf("insert diagnostic for %s: %w", d.File, err)
	}

	w.count++
	if w.count >= w.batchSize {
		if err := w.commitTx(); err != nil {
			return fmt.Errorf("commit: %w", err)
		}
		if err := w.beginTx(); err != nil {
			return fmt.Errorf("begin: %w", err)
		}
		w.count = 0
	}
	return nil
}

// FinishRun stores the totals of a run.
func (w *SQLiteWriter) FinishRun(runID string, finished time.Time, files, problems int) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	_, err := w.tx.Exec(`UPDATE runs SET finished_at = ?, files = ?, problems = ? WHERE id = ?`,
		finished.UnixNano(), files, problems, runID)
	if err != nil {
		return fmt.Errorf("update run %s: %w", runID, err)
	}
	return nil
}

// Close commits pending writes and closes the database.
func (w *SQLiteWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.commitTx(); err != nil {
		_ = w.db.Close()
		return err
	}
	// Indexes after bulk load
	if _, err := w.db.Exec(`CREATE INDEX IF NOT EXISTS idx_diagnostics_run ON diagnostics(run_id, file)`); err != nil {
		_ = w.db.Close()
		return fmt.Errorf("create index: %w", err)
	}
	return w.db.Close()
}

// Record stores res as a single run and returns the run id.
func Record(dbPath string, res *linter.Result, started, finished time.Time) (string, error) {
	w, err := NewSQLiteWriter(dbPath)
	if err != nil {
		return "", err
	}
	id, err := w.BeginRun(started)
	if err != nil {
		_ = w.Close()
		return "", err
	}
	for _, d := range res.Diagnostics {
		if err := w.Add(id, d); err != nil {
			_ = w.Close()
			return "", err
		}
	}
	if err := w.FinishRun(id, finished, len(res.Files), len(res.Diagnostics)); err != nil {
		_ = w.Close()
		return "", err
	}
	return id, w.Close()
}
