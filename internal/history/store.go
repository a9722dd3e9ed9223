// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local ledger of generation runs: when they ran,
// what they processed, and what the API calls cost in tokens. The ledger
// is a side channel for observability; no processing decision reads it,
// and skip/overwrite behavior stays purely file-existence-based.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/Lawrence-Godfrey/flashcard-generator/pkg/types"
)

const defaultRunLimit = 20

// Run is one recorded batch invocation.
type Run struct {
	ID         string    `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	Model      string    `json:"model" yaml:"model"`
	InputDir   string    `json:"input_dir" yaml:"input_dir"`
	OutputDir  string    `json:"output_dir" yaml:"output_dir"`
	Generated  int       `json:"generated" yaml:"generated"`
	Skipped    int       `json:"skipped" yaml:"skipped"`
	Failed     int       `json:"failed" yaml:"failed"`
	Cards      int       `json:"cards" yaml:"cards"`
	Tokens     int       `json:"tokens" yaml:"tokens"`
}

// FileRecord is one file's outcome within a run.
type FileRecord struct {
	RunID   string `json:"run_id" yaml:"run_id"`
	RelPath string `json:"rel_path" yaml:"rel_path"`
	Status  string `json:"status" yaml:"status"`
	Cards   int    `json:"cards" yaml:"cards"`
	Tokens  int    `json:"tokens" yaml:"tokens"`
	Error   string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Store manages the run-history SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultPath returns the history database location under the user's
// config directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "flashcard-generator", "history.db"), nil
}

// Open opens or creates the history database at cfg.Path, falling back to
// DefaultPath when unset. The parent directory and the schema are created
// if absent.
func Open(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		var err error
		if path, err = DefaultPath(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			model TEXT,
			input_dir TEXT,
			output_dir TEXT,
			generated INTEGER,
			skipped INTEGER,
			failed INTEGER,
			cards INTEGER,
			tokens INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			run_id TEXT NOT NULL REFERENCES runs(id),
			rel_path TEXT NOT NULL,
			status TEXT NOT NULL,
			cards INTEGER,
			tokens INTEGER,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	return nil
}

// RecordRun writes a run and its per-file outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, files []FileRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, model, input_dir, output_dir,
		                   generated, skipped, failed, cards, tokens)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Model, run.InputDir, run.OutputDir,
		run.Generated, run.Skipped, run.Failed, run.Cards, run.Tokens,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO files (run_id, rel_path, status, cards, tokens, error)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, f := range files {
		if _, err := stmt.ExecContext(ctx, run.ID, f.RelPath, f.Status, f.Cards, f.Tokens, f.Error); err != nil {
			return fmt.Errorf("inserting file %s: %w", f.RelPath, err)
		}
	}

	return tx.Commit()
}

// Runs returns recorded runs, most recent first. A non-positive limit
// applies the default of 20.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRunLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, model, input_dir, output_dir,
		        generated, skipped, failed, cards, tokens
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.Model, &r.InputDir, &r.OutputDir,
			&r.Generated, &r.Skipped, &r.Failed, &r.Cards, &r.Tokens); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parsing started_at for run %s: %w", r.ID, err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parsing finished_at for run %s: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Files returns the per-file outcomes of one run in insertion order.
func (s *Store) Files(ctx context.Context, runID string) ([]FileRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, rel_path, status, cards, tokens, error
		 FROM files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files for run %s: %w", runID, err)
	}
	defer rows.Close()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.RunID, &f.RelPath, &f.Status, &f.Cards, &f.Tokens, &f.Error); err != nil {
			return nil, fmt.Errorf("scanning file record: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
