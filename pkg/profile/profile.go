// Package profile persists the interest profile and ranking history in
// SQLite. Only the interest texts are stored; embeddings are re-derived
// from them on load, so the store never pins a particular embedding table.
package profile

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver for database/sql

	"salient/pkg/attention"
)

// schemaDDL creates the interests, runs and results tables.
const schemaDDL = `
CREATE TABLE IF NOT EXISTS interests (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	text TEXT NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	threshold REAL NOT NULL,
	post_count INTEGER NOT NULL,
	kept_count INTEGER NOT NULL,
	created_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS results (
	run_id TEXT NOT NULL REFERENCES runs(id),
	position INTEGER NOT NULL,
	post TEXT NOT NULL,
	score REAL NOT NULL,
	PRIMARY KEY (run_id, position)
);
`

// Interest is one stored interest statement.
type Interest struct {
	ID        int64
	Text      string
	CreatedAt string
}

// Run summarizes one recorded ranking pass.
type Run struct {
	ID        string
	Threshold float64
	PostCount int
	KeptCount int
	CreatedAt string
}

// Result is one ranked post within a run, in rank order.
type Result struct {
	RunID    string
	Position int
	Post     string
	Score    float64
}

// Store manages the profile database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the profile database at dbPath with WAL and a
// 5-second busy timeout, verifies the connection, and applies the schema.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o750); err != nil {
		return nil, fmt.Errorf("create profile dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open profile db %s: %w", dbPath, err)
	}

	ctx := context.Background()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping profile db %s: %w", dbPath, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set WAL on profile db: %w", err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set busy_timeout on profile db: %w", err)
	}

	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply profile schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close profile db: %w", err)
	}
	return nil
}

// AddInterest stores one interest statement. Returns the inserted ID.
func (s *Store) AddInterest(ctx context.Context, text string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `INSERT INTO interests (text) VALUES (?)`, text)
	if err != nil {
		return 0, fmt.Errorf("insert interest: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("interest last insert id: %w", err)
	}
	return id, nil
}

// Interests returns all stored interests in insertion order.
func (s *Store) Interests(ctx context.Context) ([]Interest, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, created_at FROM interests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query interests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var interests []Interest
	for rows.Next() {
		var in Interest
		if err := rows.Scan(&in.ID, &in.Text, &in.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan interest: %w", err)
		}
		interests = append(interests, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("interests rows: %w", err)
	}
	return interests, nil
}

// InterestTexts returns just the statement texts, in insertion order,
// ready to feed to attention.Ranker.UpdateInterests.
func (s *Store) InterestTexts(ctx context.Context) ([]string, error) {
	interests, err := s.Interests(ctx)
	if err != nil {
		return nil, err
	}
	texts := make([]string, len(interests))
	for i, in := range interests {
		texts[i] = in.Text
	}
	return texts, nil
}

// RemoveInterest deletes one interest by ID.
func (s *Store) RemoveInterest(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM interests WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete interest %d: %w", id, err)
	}
	return nil
}

// ClearInterests deletes every stored interest.
func (s *Store) ClearInterests(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM interests`); err != nil {
		return fmt.Errorf("clear interests: %w", err)
	}
	return nil
}

// RecordRun stores one ranking pass and its results in a single transaction.
// postCount is the size of the input batch before threshold filtering.
// Returns the new run ID.
func (s *Store) RecordRun(ctx context.Context, threshold float64, postCount int, ranked []attention.RankedPost) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, threshold, post_count, kept_count) VALUES (?, ?, ?, ?)`,
		runID, threshold, postCount, len(ranked),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for i, rp := range ranked {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO results (run_id, position, post, score) VALUES (?, ?, ?, ?)`,
			runID, i+1, rp.Post, rp.Score,
		); err != nil {
			return "", fmt.Errorf("insert result %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent runs, newest first. limit <= 0 defaults to 10.
func (s *Store) Runs(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, threshold, post_count, kept_count, created_at
		 FROM runs ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Threshold, &r.PostCount, &r.KeptCount, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("runs rows: %w", err)
	}
	return runs, nil
}

// Results returns the stored results of one run in rank order.
func (s *Store) Results(ctx context.Context, runID string) ([]Result, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, position, post, score FROM results
		 WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.RunID, &r.Position, &r.Post, &r.Score); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("results rows: %w", err)
	}
	return results, nil
}
