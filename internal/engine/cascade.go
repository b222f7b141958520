package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/donaldgifford/grocery-price-tracker/pkg/extract"
	"github.com/donaldgifford/grocery-price-tracker/pkg/similarity"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// DefaultEarlyExit is the confidence at which a round stops querying
// further retailers.
const DefaultEarlyExit = 0.85

// simplifiedWords is how many content words follow the brand in the
// simplified search text.
const simplifiedWords = 3

// ErrUnknownState is returned by StateFor for an unrecognized strategy.
var ErrUnknownState = errors.New("unknown cascade state")

// Transform derives the search text for a state from the query profile.
// An empty result means the state cannot run for this query.
type Transform func(q *domain.Profile, ex *extract.Extractor) string

// State is one step of the fallback cascade.
type State struct {
	Name          domain.Strategy
	Threshold     float64
	MaxCandidates int
	Transform     Transform
}

// DefaultStates returns the four-state cascade in escalation order.
func DefaultStates() []State {
	return []State{
		{Name: domain.StrategyStandard, Threshold: 0.12, MaxCandidates: 6, Transform: fullText},
		{Name: domain.StrategyLoweredThreshold, Threshold: 0.08, MaxCandidates: 8, Transform: fullText},
		{Name: domain.StrategySimplifiedTerms, Threshold: 0.06, MaxCandidates: 8, Transform: simplifiedText},
		{Name: domain.StrategyBrandOnly, Threshold: 0.05, MaxCandidates: 8, Transform: brandText},
	}
}

// StateFor builds the state named name with the given threshold and
// candidate limit. A maxCandidates of zero keeps the default.
func StateFor(name domain.Strategy, threshold float64, maxCandidates int) (State, error) {
	for _, s := range DefaultStates() {
		if s.Name != name {
			continue
		}
		s.Threshold = threshold
		if maxCandidates > 0 {
			s.MaxCandidates = maxCandidates
		}
		return s, nil
	}
	return State{}, fmt.Errorf("%w: %q", ErrUnknownState, name)
}

func fullText(q *domain.Profile, _ *extract.Extractor) string {
	return q.Normalized
}

// simplifiedText keeps the brand and the first few content words after it.
func simplifiedText(q *domain.Profile, ex *extract.Extractor) string {
	words := similarity.ContentTokens(ex.StripBrand(q.Normalized))
	if len(words) > simplifiedWords {
		words = words[:simplifiedWords]
	}
	if q.Attributes.BrandKnown() {
		words = append([]string{q.Attributes.Brand}, words...)
	}
	return strings.Join(words, " ")
}

func brandText(q *domain.Profile, _ *extract.Extractor) string {
	if !q.Attributes.BrandKnown() {
		return ""
	}
	return q.Attributes.Brand
}
