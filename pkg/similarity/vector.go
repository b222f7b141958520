package similarity

import (
	"math"

	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// VectorScorer compares TF-IDF weighted token vectors by cosine similarity.
// Rare words such as brand or flavour names weigh more than common ones like
// "beans". An empty corpus weighs every token equally.
type VectorScorer struct {
	docs int
	df   map[string]int
}

// NewVectorScorer trains document frequencies on raw product names.
func NewVectorScorer(corpus []string) *VectorScorer {
	v := &VectorScorer{df: make(map[string]int)}
	for _, doc := range corpus {
		toks := ContentTokens(normalize.Clean(doc))
		if len(toks) == 0 {
			continue
		}
		v.docs++
		for _, t := range toks {
			v.df[t]++
		}
	}
	return v
}

// Score implements Scorer.
func (v *VectorScorer) Score(q, c *domain.Profile) domain.Similarity {
	return finish(q, c, v.Cosine(ContentTokens(q.Normalized), ContentTokens(c.Normalized)))
}

// Cosine returns the cosine similarity of two distinct-token lists. Sums run
// in slice order so results are reproducible bit for bit.
func (v *VectorScorer) Cosine(qt, ct []string) float64 {
	if len(qt) == 0 || len(ct) == 0 {
		return 0
	}

	inC := make(map[string]struct{}, len(ct))
	for _, t := range ct {
		inC[t] = struct{}{}
	}

	var dot, qn, cn float64
	for _, t := range qt {
		w := v.idf(t)
		qn += w * w
		if _, ok := inC[t]; ok {
			dot += w * w
		}
	}
	for _, t := range ct {
		w := v.idf(t)
		cn += w * w
	}

	if qn == 0 || cn == 0 {
		return 0
	}
	return clamp(dot / (math.Sqrt(qn) * math.Sqrt(cn)))
}

// idf uses the smoothed form log((1+N)/(1+df)) + 1.
func (v *VectorScorer) idf(tok string) float64 {
	return math.Log(float64(1+v.docs)/float64(1+v.df[tok])) + 1
}
