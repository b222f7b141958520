package report

import domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"

// Pending returns the queries with no completed result, in input order.
func Pending(queries []domain.Query, done map[string]*domain.MatchResult) []domain.Query {
	var out []domain.Query
	for _, q := range queries {
		if _, ok := done[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}

// Ordered returns the completed results for queries in input order. Queries
// with no result are skipped.
func Ordered(queries []domain.Query, done map[string]*domain.MatchResult) []*domain.MatchResult {
	out := make([]*domain.MatchResult, 0, len(queries))
	for _, q := range queries {
		if r, ok := done[q.ID]; ok {
			out = append(out, r)
		}
	}
	return out
}
