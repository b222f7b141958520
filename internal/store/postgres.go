package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

const defaultPoolSize = 10

var _ Store = (*PostgresStore)(nil)

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
type PostgresStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

// Option configures the PostgresStore.
type Option func(*PostgresStore)

// WithCacheTTL sets how long cached results stay fresh. Zero never expires.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *PostgresStore) {
		s.ttl = ttl
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling. A
// pool_max_conns setting in connString overrides the default pool size.
func NewPostgresStore(ctx context.Context, connString string, opts ...Option) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	if cfg.MaxConns <= 0 {
		cfg.MaxConns = defaultPoolSize
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	s := &PostgresStore{pool: pool, ttl: 24 * time.Hour}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// Get returns a fresh cached result for key.
func (s *PostgresStore) Get(ctx context.Context, key string) (*domain.MatchResult, bool, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, queryCacheGet, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cached result: %w", err)
	}

	var r domain.MatchResult
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, false, fmt.Errorf("decoding cached result: %w", err)
	}
	r.FromCache = true
	return &r, true, nil
}

// Put upserts the cached result for key. Concurrent writers of the same key
// resolve to a single row.
func (s *PostgresStore) Put(ctx context.Context, key string, r *domain.MatchResult) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("encoding cached result: %w", err)
	}

	var expiresAt *time.Time
	if s.ttl > 0 {
		t := time.Now().Add(s.ttl)
		expiresAt = &t
	}

	_, err = s.pool.Exec(ctx, queryCachePut, pgx.NamedArgs{
		"cache_key":  key,
		"result":     raw,
		"expires_at": expiresAt,
	})
	if err != nil {
		return fmt.Errorf("writing cached result: %w", err)
	}
	return nil
}

// Stats summarizes the cache table.
func (s *PostgresStore) Stats(ctx context.Context) (domain.CacheStats, error) {
	var (
		st             domain.CacheStats
		oldest, newest *time.Time
	)
	if err := s.pool.QueryRow(ctx, queryCacheStats).Scan(
		&st.Entries, &st.Expired, &st.SizeBytes, &oldest, &newest,
	); err != nil {
		return st, fmt.Errorf("reading cache stats: %w", err)
	}
	if oldest != nil {
		st.Oldest = *oldest
	}
	if newest != nil {
		st.Newest = *newest
	}
	return st, nil
}

// Clear deletes every cached result and returns how many were removed.
func (s *PostgresStore) Clear(ctx context.Context) (int, error) {
	tag, err := s.pool.Exec(ctx, queryCacheClear)
	if err != nil {
		return 0, fmt.Errorf("clearing cache: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// SaveResults records a run and all of its results in one transaction.
func (s *PostgresStore) SaveResults(ctx context.Context, runID uuid.UUID, results []*domain.MatchResult) error {
	var found int
	for _, r := range results {
		if r.Found {
			found++
		}
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, queryInsertRun, runID, len(results), found); err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	batch := &pgx.Batch{}
	for _, r := range results {
		args, err := resultArgs(runID, r)
		if err != nil {
			return err
		}
		batch.Queue(queryInsertResult, args)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("inserting results: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing results: %w", err)
	}
	return nil
}

func resultArgs(runID uuid.UUID, r *domain.MatchResult) (pgx.NamedArgs, error) {
	raw, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encoding result for %q: %w", r.Query.Name, err)
	}

	args := pgx.NamedArgs{
		"run_id":         runID,
		"query_id":       r.Query.ID,
		"query_name":     r.Query.Name,
		"found":          r.Found,
		"retailer":       "",
		"candidate_name": "",
		"price":          nil,
		"confidence":     r.Score.Confidence,
		"level":          string(r.Score.Level),
		"strategy":       string(r.Strategy),
		"match_type":     r.MatchType,
		"product_key":    r.ProductKey,
		"result":         raw,
		"matched_at":     r.MatchedAt,
	}
	if c := r.Candidate; c != nil {
		args["retailer"] = c.Retailer
		args["candidate_name"] = c.Name
		if c.HasPrice() {
			args["price"] = c.Price
		}
	}
	return args, nil
}

// ListRuns returns the most recent runs first.
func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}

	rows, err := s.pool.Query(ctx, queryListRuns, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Queries, &r.Found); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListResults returns stored results matching q, newest first, and the
// total number of matching rows.
func (s *PostgresStore) ListResults(ctx context.Context, q *ResultQuery) ([]domain.MatchResult, int, error) {
	if q == nil {
		q = &ResultQuery{}
	}
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting results: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var out []domain.MatchResult
	for rows.Next() {
		var raw []byte
		if err := rows.Scan(&raw); err != nil {
			return nil, 0, fmt.Errorf("scanning result: %w", err)
		}
		var r domain.MatchResult
		if err := json.Unmarshal(raw, &r); err != nil {
			return nil, 0, fmt.Errorf("decoding result: %w", err)
		}
		out = append(out, r)
	}
	return out, total, rows.Err()
}
