//go:build integration

package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/grocery-price-tracker/internal/store"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

func setupPostgres(t *testing.T, opts ...store.Option) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("gpt_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr, opts...)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))

	return s
}

func foundResult(name, retailer string, price, confidence float64) *domain.MatchResult {
	return &domain.MatchResult{
		Query: domain.Query{ID: name, Name: name},
		Found: true,
		Candidate: &domain.Candidate{
			Name:     name,
			Price:    price,
			Retailer: retailer,
		},
		Score: domain.MatchScore{
			Similarity: confidence,
			Confidence: confidence,
			Level:      domain.ConfidenceHigh,
		},
		Strategy:   domain.StrategyStandard,
		MatchType:  domain.MatchTypeBrandWeight,
		ProductKey: "heinz:415g:1",
		MatchedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_MigrateIsIdempotent(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Migrate(context.Background()))
}

func TestPostgresStore_Cache(t *testing.T) {
	ctx := context.Background()
	s := setupPostgres(t)

	_, ok, err := s.Get(ctx, "heinz baked beans 415g")
	require.NoError(t, err)
	assert.False(t, ok)

	want := foundResult("Heinz Baked Beans 415g", "tesco", 1.4, 0.95)
	require.NoError(t, s.Put(ctx, "heinz baked beans 415g", want))

	got, ok, err := s.Get(ctx, "heinz baked beans 415g")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.FromCache)
	assert.Equal(t, want.Candidate, got.Candidate)
	assert.Equal(t, want.ProductKey, got.ProductKey)

	// Second write to the same key replaces the first.
	nf := domain.NotFound(want.Query, 0.05)
	require.NoError(t, s.Put(ctx, "heinz baked beans 415g", nf))
	got, ok, err = s.Get(ctx, "heinz baked beans 415g")
	require.NoError(t, err)
	require.True(t, ok)
	assert.False(t, got.Found)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Entries)
	assert.Zero(t, st.Expired)
	assert.Positive(t, st.SizeBytes)

	n, err := s.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	st, err = s.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, st.Entries)
}

func TestPostgresStore_CacheExpiry(t *testing.T) {
	ctx := context.Background()
	s := setupPostgres(t, store.WithCacheTTL(time.Millisecond))

	require.NoError(t, s.Put(ctx, "milk", foundResult("Milk", "tesco", 1.1, 0.9)))
	time.Sleep(20 * time.Millisecond)

	_, ok, err := s.Get(ctx, "milk")
	require.NoError(t, err)
	assert.False(t, ok)

	st, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Entries)
	assert.Equal(t, 1, st.Expired)
}

func TestPostgresStore_SaveAndListResults(t *testing.T) {
	ctx := context.Background()
	s := setupPostgres(t)

	runID := uuid.New()
	results := []*domain.MatchResult{
		foundResult("Heinz Baked Beans 415g", "tesco", 1.4, 0.95),
		foundResult("Heinz Beanz 415g", "sainsburys", 1.5, 0.9),
		domain.NotFound(domain.Query{Name: "Unobtainium"}, 0.05),
	}
	require.NoError(t, s.SaveResults(ctx, runID, results))

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, 3, runs[0].Queries)
	assert.Equal(t, 2, runs[0].Found)

	all, total, err := s.ListResults(ctx, &store.ResultQuery{RunID: &runID})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, all, 3)

	tesco := "tesco"
	filtered, total, err := s.ListResults(ctx, &store.ResultQuery{Retailer: &tesco})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, filtered, 1)
	assert.InDelta(t, 1.4, filtered[0].Candidate.Price, 1e-9)

	found, total, err := s.ListResults(ctx, &store.ResultQuery{FoundOnly: true, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, found, 1)
}
