// Package store defines the datastore abstraction for grocery-price-tracker.
// It backs the shared result cache and the match history written by batch
// and scheduled runs.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Run summarizes one batch or scheduled run.
type Run struct {
	ID        uuid.UUID `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Queries   int       `json:"queries"`
	Found     int       `json:"found"`
}

// ResultQuery defines optional filters for match history queries.
type ResultQuery struct {
	RunID      *uuid.UUID
	ProductKey *string
	Retailer   *string
	Level      *string
	Since      *time.Time
	FoundOnly  bool
	Limit      int // default 50
	Offset     int
}

// Store defines all data access operations for grocery-price-tracker.
type Store interface {
	Ping(ctx context.Context) error

	// Result cache
	Get(ctx context.Context, key string) (*domain.MatchResult, bool, error)
	Put(ctx context.Context, key string, r *domain.MatchResult) error
	Stats(ctx context.Context) (domain.CacheStats, error)
	Clear(ctx context.Context) (int, error)

	// Match history
	SaveResults(ctx context.Context, runID uuid.UUID, results []*domain.MatchResult) error
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	ListResults(ctx context.Context, q *ResultQuery) ([]domain.MatchResult, int, error)
}
