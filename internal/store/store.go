// Package store records runs and their findings in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Finding is one retained result of a run.
type Finding struct {
	URL         string
	Text        string // empty for diff findings
	LinkIndexed bool
}

// Run is a single invocation of a workflow.
type Run struct {
	ID        string
	Query     string
	Mode      string
	StartedAt time.Time
	Findings  []Finding
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	query TEXT NOT NULL,
	mode TEXT NOT NULL,
	started_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS findings (
	run_id TEXT NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	url TEXT NOT NULL,
	text TEXT NOT NULL,
	link_indexed BOOLEAN NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Store is a SQLite-backed run log.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at dsn.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// SaveRun writes the run and its findings in one transaction.
func (s *Store) SaveRun(ctx context.Context, run *Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, query, mode, started_at) VALUES (?, ?, ?, ?)`,
		run.ID, run.Query, run.Mode, run.StartedAt.UTC(),
	); err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i, f := range run.Findings {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO findings (run_id, seq, url, text, link_indexed) VALUES (?, ?, ?, ?, ?)`,
			run.ID, i, f.URL, f.Text, f.LinkIndexed,
		); err != nil {
			return fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// LoadRun returns the run with id, or sql.ErrNoRows.
func (s *Store) LoadRun(ctx context.Context, id string) (*Run, error) {
	run := &Run{ID: id}
	err := s.db.QueryRowContext(ctx,
		`SELECT query, mode, started_at FROM runs WHERE id = ?`, id,
	).Scan(&run.Query, &run.Mode, &run.StartedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT url, text, link_indexed FROM findings WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load findings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var f Finding
		if err := rows.Scan(&f.URL, &f.Text, &f.LinkIndexed); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		run.Findings = append(run.Findings, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load findings: %w", err)
	}
	return run, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
