package engine

import (
	"cmp"
	"slices"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Priority is a total order over retailer names used to break confidence
// ties. Retailers it does not list sort after all listed ones, by name.
type Priority struct {
	rank map[string]int
}

// NewPriority builds a Priority from names, earliest first. Duplicates keep
// their first position.
func NewPriority(names ...string) Priority {
	p := Priority{rank: make(map[string]int, len(names))}
	for i, n := range names {
		if _, ok := p.rank[n]; !ok {
			p.rank[n] = i
		}
	}
	return p
}

// Compare orders retailer a relative to b.
func (p Priority) Compare(a, b string) int {
	ra, okA := p.rank[a]
	rb, okB := p.rank[b]
	switch {
	case okA && okB:
		return cmp.Compare(ra, rb)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return cmp.Compare(a, b)
	}
}

// Sort orders names by priority in place.
func (p Priority) Sort(names []string) {
	slices.SortStableFunc(names, p.Compare)
}

// Aggregate picks the winner among per-retailer best candidates: the
// strictly highest confidence, with exact ties going to the retailer that
// comes first in p. Nil entries are ignored. It returns nil when there is no
// candidate at all.
func Aggregate(best map[string]*domain.ScoredCandidate, p Priority) *domain.ScoredCandidate {
	names := make([]string, 0, len(best))
	for name, sc := range best {
		if sc != nil {
			names = append(names, name)
		}
	}
	p.Sort(names)

	var winner *domain.ScoredCandidate
	for _, name := range names {
		sc := best[name]
		if winner == nil || sc.Score.Confidence > winner.Score.Confidence {
			winner = sc
		}
	}
	return winner
}
