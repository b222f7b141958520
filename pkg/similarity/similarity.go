// Package similarity scores how closely a candidate listing matches a query.
//
// Scorers compute a base similarity from the two normalized texts and then
// apply the same fixed sequence of adjustments: product type, multipack,
// variant markers and brand. The result is clamped to [0,1] only after every
// adjustment has been applied. Scorers are deterministic and safe for
// concurrent use.
package similarity

import (
	"errors"
	"fmt"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Scorer names accepted by New.
const (
	KindToken  = "token"
	KindVector = "vector"
)

// ErrUnknownScorer is returned by New for an unrecognized scorer name.
var ErrUnknownScorer = errors.New("unknown similarity scorer")

// Scorer compares a query profile with a candidate profile.
type Scorer interface {
	Score(q, c *domain.Profile) domain.Similarity
}

// New builds the scorer named by kind. The corpus trains the vector scorer
// and is ignored by the token scorer.
func New(kind string, corpus []string) (Scorer, error) {
	switch kind {
	case "", KindToken:
		return NewTokenScorer(), nil
	case KindVector:
		return NewVectorScorer(corpus), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, kind)
	}
}

// finish applies the adjustments to base and clamps the total.
func finish(q, c *domain.Profile, base float64) domain.Similarity {
	adj := Adjustments(q, c)

	total := base
	for _, a := range adj {
		total += a.Value
	}

	return domain.Similarity{
		Base:        base,
		Score:       clamp(total),
		Adjustments: adj,
	}
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
