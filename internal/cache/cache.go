// Package cache stores match results keyed by query so repeated lookups skip
// the retailer round trips.
package cache

import (
	"context"
	"strconv"

	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Cache is a keyed store of match results. A miss is reported as
// (nil, false, nil); errors are reserved for backend failures.
type Cache interface {
	Get(ctx context.Context, key string) (*domain.MatchResult, bool, error)
	Put(ctx context.Context, key string, r *domain.MatchResult) error
}

// Admin is implemented by caches that can report on and empty themselves.
type Admin interface {
	Stats(ctx context.Context) (domain.CacheStats, error)
	Clear(ctx context.Context) (int, error)
}

// Key derives the cache key for a query from its normalized text, so two
// queries with the same profile share an entry. A quantity hint changes the
// key.
func Key(n *normalize.Normalizer, q domain.Query) string {
	k := n.Normalize(q.Name)
	if q.Quantity > 0 {
		k += "|x" + strconv.Itoa(q.Quantity)
	}
	return k
}
