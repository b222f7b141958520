package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

type freshKey struct{}

// WithFreshResults marks ctx so matches skip cached results. Fresh results
// are still written back to the cache.
func WithFreshResults(ctx context.Context) context.Context {
	return context.WithValue(ctx, freshKey{}, true)
}

func skipCacheRead(ctx context.Context) bool {
	v, _ := ctx.Value(freshKey{}).(bool)
	return v
}

// MatchBatch matches queries concurrently and returns results in input
// order.
func (m *Matcher) MatchBatch(ctx context.Context, queries []domain.Query) ([]*domain.MatchResult, error) {
	results := make([]*domain.MatchResult, len(queries))
	err := m.MatchEach(ctx, queries, func(i int, r *domain.MatchResult) error {
		results[i] = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// MatchEach matches queries concurrently and hands each result to fn with
// its input index. Calls to fn are serialized. An error from fn or a done
// ctx stops the batch.
func (m *Matcher) MatchEach(
	ctx context.Context,
	queries []domain.Query,
	fn func(i int, r *domain.MatchResult) error,
) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(m.concurrency, 1))

	var mu sync.Mutex
	for i := range queries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			r, err := m.MatchProduct(gctx, queries[i])
			if err != nil {
				return fmt.Errorf("matching %q: %w", queries[i].Name, err)
			}

			mu.Lock()
			defer mu.Unlock()
			return fn(i, r)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
