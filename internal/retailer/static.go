package retailer

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Fixtures maps retailer name to its listings.
type Fixtures map[string][]Product

// LoadFixtures reads a fixture file.
func LoadFixtures(path string) (Fixtures, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted config
	if err != nil {
		return nil, fmt.Errorf("reading fixture file: %w", err)
	}
	var f Fixtures
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture file: %w", err)
	}
	return f, nil
}

// StaticSource answers searches from an in-memory product list, ranking
// listings by how many query words they contain. It backs offline runs and
// the mock server.
type StaticSource struct {
	name     string
	products []Product
	words    [][]string
}

// NewStaticSource creates a source over products.
func NewStaticSource(name string, products []Product) *StaticSource {
	s := &StaticSource{name: name, products: products, words: make([][]string, len(products))}
	for i := range products {
		s.words[i] = normalize.Tokens(normalize.Clean(products[i].Name))
	}
	return s
}

// Name implements Source.
func (s *StaticSource) Name() string {
	return s.name
}

// Search implements Source. Listings sharing no word with query are not
// returned.
func (s *StaticSource) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ToCandidates(s.name, s.Lookup(query, limit)), nil
}

// Lookup returns the raw listings for query, best word overlap first.
func (s *StaticSource) Lookup(query string, limit int) []Product {
	terms := normalize.Tokens(normalize.Clean(query))

	type hit struct {
		idx, score int
	}
	var hits []hit
	for i, words := range s.words {
		n := 0
		for _, t := range terms {
			if slices.Contains(words, t) {
				n++
			}
		}
		if n > 0 {
			hits = append(hits, hit{idx: i, score: n})
		}
	}

	slices.SortStableFunc(hits, func(a, b hit) int {
		return cmp.Compare(b.score, a.score)
	})

	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}

	products := make([]Product, 0, len(hits))
	for _, h := range hits {
		products = append(products, s.products[h.idx])
	}
	return products
}

// Products returns the source's listings matching a case-insensitive
// substring, or all listings for an empty filter.
func (s *StaticSource) Products(filter string) []Product {
	if filter == "" {
		return slices.Clone(s.products)
	}
	filter = strings.ToLower(filter)
	var out []Product
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), filter) {
			out = append(out, p)
		}
	}
	return out
}

// StaticSources builds one StaticSource per fixture retailer, in name order.
func StaticSources(f Fixtures) []*StaticSource {
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]*StaticSource, 0, len(names))
	for _, name := range names {
		out = append(out, NewStaticSource(name, f[name]))
	}
	return out
}
