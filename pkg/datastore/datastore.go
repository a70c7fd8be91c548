// Package datastore records verify runs in a SQLite database so result
// history can be inspected or exported later.
package datastore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists verify runs and their per-case results.
type Store struct {
	db *sql.DB
}

// Result is one case outcome within a run.
type Result struct {
	Name    string
	Passed  bool
	Updated bool
	Message string
}

// Open opens (creating if needed) the database at path.
// Use ":memory:" for an in-memory database (useful for testing).
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("datastore path is required")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each pooled connection to :memory: would get its own private
	// database; sqlite is single-writer anyway.
	db.SetMaxOpenConns(1)
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// BeginRun records the start of a verify run over root and returns the
// run's id.
func (s *Store) BeginRun(root string) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO runs (root, started_at) VALUES (?, ?)",
		root, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}
	return id, nil
}

// AddResult records one case outcome for the run.
func (s *Store) AddResult(runID int64, r Result) error {
	_, err := s.db.Exec(`
		INSERT INTO results (run_id, name, passed, updated, message)
		VALUES (?, ?, ?, ?, ?)
	`, runID, r.Name, r.Passed, r.Updated, r.Message)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// FinishRun stores the run's final tallies.
func (s *Store) FinishRun(runID int64, passed, failed int) error {
	_, err := s.db.Exec(
		"UPDATE runs SET passed = ?, failed = ? WHERE id = ?",
		passed, failed, runID,
	)
	if err != nil {
		return fmt.Errorf("updating run: %w", err)
	}
	return nil
}

// RunResults retrieves the recorded results of one run, in insertion
// order.
func (s *Store) RunResults(runID int64) ([]Result, error) {
	rows, err := s.db.Query(`
		SELECT name, passed, updated, message FROM results
		WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var out []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.Name, &r.Passed, &r.Updated, &r.Message); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating results: %w", err)
	}
	return out, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
