package report

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	started_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS results (
	query_id       TEXT PRIMARY KEY,
	run_id         TEXT NOT NULL,
	query_name     TEXT NOT NULL,
	found          INTEGER NOT NULL,
	retailer       TEXT,
	candidate_name TEXT,
	price          REAL,
	confidence     REAL NOT NULL,
	level          TEXT NOT NULL,
	strategy       TEXT,
	match_type     TEXT,
	product_key    TEXT,
	result         TEXT NOT NULL,
	matched_at     TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_results_run_id ON results(run_id);
CREATE INDEX IF NOT EXISTS idx_results_product_key ON results(product_key);
`

const upsertResult = `
INSERT INTO results (
	query_id, run_id, query_name, found, retailer, candidate_name, price,
	confidence, level, strategy, match_type, product_key, result, matched_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(query_id) DO UPDATE SET
	run_id = excluded.run_id,
	query_name = excluded.query_name,
	found = excluded.found,
	retailer = excluded.retailer,
	candidate_name = excluded.candidate_name,
	price = excluded.price,
	confidence = excluded.confidence,
	level = excluded.level,
	strategy = excluded.strategy,
	match_type = excluded.match_type,
	product_key = excluded.product_key,
	result = excluded.result,
	matched_at = excluded.matched_at`

// SQLiteSink keeps the latest result per query id in a local SQLite file.
// Rows are written as each query completes, so an interrupted batch can be
// resumed from Completed.
type SQLiteSink struct {
	db *sql.DB
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// OpenSQLite opens or creates the results database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("creating results directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening results database: %w", err)
	}
	// A single writer avoids SQLITE_BUSY from concurrent batch workers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating results schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

// Close closes the database.
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// BeginRun records a new run.
func (s *SQLiteSink) BeginRun(ctx context.Context, runID uuid.UUID) error {
	return beginRun(ctx, s.db, runID)
}

func beginRun(ctx context.Context, ex execer, runID uuid.UUID) error {
	if _, err := ex.ExecContext(ctx,
		"INSERT OR IGNORE INTO runs (id, started_at) VALUES (?, ?)",
		runID.String(), time.Now().UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("recording run: %w", err)
	}
	return nil
}

// Save upserts the result for r's query id.
func (s *SQLiteSink) Save(ctx context.Context, runID uuid.UUID, r *domain.MatchResult) error {
	return saveResult(ctx, s.db, runID, r)
}

func saveResult(ctx context.Context, ex execer, runID uuid.UUID, r *domain.MatchResult) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding result for %q: %w", r.Query.Name, err)
	}

	var (
		retailer, candidate sql.NullString
		price               sql.NullFloat64
	)
	if c := r.Candidate; c != nil {
		retailer = sql.NullString{String: c.Retailer, Valid: true}
		candidate = sql.NullString{String: c.Name, Valid: true}
		price = sql.NullFloat64{Float64: c.Price, Valid: c.HasPrice()}
	}

	if _, err := ex.ExecContext(ctx, upsertResult,
		r.Query.ID, runID.String(), r.Query.Name, r.Found,
		retailer, candidate, price,
		r.Score.Confidence, string(r.Score.Level), string(r.Strategy), r.MatchType, r.ProductKey,
		string(raw), r.MatchedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return fmt.Errorf("saving result for %q: %w", r.Query.Name, err)
	}
	return nil
}

// SaveResults implements engine.ResultSink, writing the run and all results
// in one transaction.
func (s *SQLiteSink) SaveResults(ctx context.Context, runID uuid.UUID, results []*domain.MatchResult) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := beginRun(ctx, tx, runID); err != nil {
		return err
	}
	for _, r := range results {
		if err := saveResult(ctx, tx, runID, r); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing results: %w", err)
	}
	return nil
}

// Completed returns every stored result keyed by query id.
func (s *SQLiteSink) Completed(ctx context.Context) (map[string]*domain.MatchResult, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT query_id, result FROM results")
	if err != nil {
		return nil, fmt.Errorf("querying completed results: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*domain.MatchResult)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scanning completed result: %w", err)
		}
		var r domain.MatchResult
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			return nil, fmt.Errorf("decoding result for query %s: %w", id, err)
		}
		out[id] = &r
	}
	return out, rows.Err()
}

// Reset deletes all stored runs and results.
func (s *SQLiteSink) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM results; DELETE FROM runs;"); err != nil {
		return fmt.Errorf("resetting results database: %w", err)
	}
	return nil
}
