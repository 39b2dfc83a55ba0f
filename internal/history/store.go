// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists one record per rewrite invocation for usage
// inspection. The pipeline does not depend on this package; the CLI records
// outcomes after the fact.
package history

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/rewrite-engine/pkg/types"
)

const defaultMaxResults = 20

// Record is one rewrite invocation as stored.
type Record struct {
	ID          int64
	CreatedAt   time.Time
	InputSHA    string
	InputChars  int
	Provider    types.ProviderID
	Similarity  float64
	LengthRatio float64
	BestEffort  bool
	Outcome     string
	Detail      string
}

// Store manages the rewrite history SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the history database at cfg.Path, creating the
// schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("history path is empty")
	}

	if dir := filepath.Dir(cfg.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	s := &Store{db: db, maxResults: maxResults}

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
		`CREATE TABLE IF NOT EXISTS rewrites (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at TEXT NOT NULL,
			input_sha TEXT NOT NULL,
			input_chars INTEGER NOT NULL,
			provider TEXT,
			similarity REAL,
			length_ratio REAL,
			best_effort INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_rewrites_created_at ON rewrites(created_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save inserts one record for a finished invocation. The input text itself
// is not stored, only its hash and length.
func (s *Store) Save(ctx context.Context, input string, result types.Result) error {
	outcome := "success"
	if !result.OK() {
		outcome = string(result.Err)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rewrites
			(created_at, input_sha, input_chars, provider, similarity, length_ratio, best_effort, outcome, detail)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339),
		inputSHA(input),
		len(input),
		string(result.Provider),
		result.Similarity,
		result.LengthRatio,
		boolToInt(result.BestEffort),
		outcome,
		result.Detail,
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

// Recent returns the newest records, most recent first. A non-positive limit
// uses the configured default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, input_sha, input_chars, provider, similarity, length_ratio, best_effort, outcome, detail
		 FROM rewrites ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var createdAt, providerID string
		var bestEffort int
		if err := rows.Scan(&r.ID, &createdAt, &r.InputSHA, &r.InputChars, &providerID,
			&r.Similarity, &r.LengthRatio, &bestEffort, &r.Outcome, &r.Detail); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		if t, parseErr := time.Parse(time.RFC3339, createdAt); parseErr == nil {
			r.CreatedAt = t
		}
		r.Provider = types.ProviderID(providerID)
		r.BestEffort = bestEffort != 0
		records = append(records, r)
	}
	return records, rows.Err()
}

// inputSHA returns the first 12 hex characters of SHA-256 over the input.
func inputSHA(input string) string {
	h := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", h)[:12]
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
