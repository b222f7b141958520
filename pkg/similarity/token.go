package similarity

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Fuzzy token equality settings.
const (
	minFuzzyLen   = 4
	fuzzyMinScore = 0.9
)

// Base similarity weights: query coverage dominates so a candidate carrying
// every query token plus extra words still scores highly.
const (
	coverageWeight = 0.8
	jaccardWeight  = 0.2
)

// sizeToken matches quantity words that the extractor already accounts for,
// including joined multipack sizes such as 4x415g.
var sizeToken = regexp.MustCompile(`^(?:\d+(?:\.\d+)?(?:g|kg|ml|cl|l|x|pk|pack)?|x\d+|\d+x\d+(?:\.\d+)?(?:g|kg|ml|cl|l))$`)

var stopwords = map[string]struct{}{
	"pack": {}, "packs": {}, "multipack": {}, "x": {},
	"of": {}, "the": {}, "and": {}, "in": {}, "with": {},
}

// ContentTokens returns the distinct descriptive words of normalized text in
// order of first appearance, dropping sizes, counts and stopwords.
func ContentTokens(normalized string) []string {
	fields := normalize.Tokens(normalized)
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		if _, ok := stopwords[f]; ok {
			continue
		}
		if sizeToken.MatchString(f) {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

// TokenScorer is the default scorer: fuzzy token overlap weighted toward
// query coverage.
type TokenScorer struct{}

// NewTokenScorer returns a TokenScorer.
func NewTokenScorer() *TokenScorer {
	return &TokenScorer{}
}

// Score implements Scorer.
func (*TokenScorer) Score(q, c *domain.Profile) domain.Similarity {
	return finish(q, c, TokenOverlap(ContentTokens(q.Normalized), ContentTokens(c.Normalized)))
}

// TokenOverlap scores two token sets. Each query token claims at most one
// candidate token, preferring an exact match over a fuzzy one.
func TokenOverlap(qt, ct []string) float64 {
	if len(qt) == 0 || len(ct) == 0 {
		return 0
	}

	used := make([]bool, len(ct))
	matched := 0

	for _, q := range qt {
		idx := -1
		for i, c := range ct {
			if !used[i] && q == c {
				idx = i
				break
			}
		}
		if idx < 0 {
			for i, c := range ct {
				if !used[i] && fuzzyEqual(q, c) {
					idx = i
					break
				}
			}
		}
		if idx >= 0 {
			used[idx] = true
			matched++
		}
	}

	m := float64(matched)
	coverage := m / float64(len(qt))
	jaccard := m / float64(len(qt)+len(ct)-matched)
	return coverageWeight*coverage + jaccardWeight*jaccard
}

func fuzzyEqual(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) < minFuzzyLen || len(b) < minFuzzyLen {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	return matchr.JaroWinkler(a, b, false) >= fuzzyMinScore
}
