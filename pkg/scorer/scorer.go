package score

import (
	"math"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Confidence level thresholds, inclusive lower bounds.
const (
	HighThreshold   = 0.7
	MediumThreshold = 0.4
	LowThreshold    = 0.2
)

// Weights defines the relative importance of each confidence signal.
type Weights struct {
	Similarity   float64 `yaml:"similarity"   json:"similarity"`
	Availability float64 `yaml:"availability" json:"availability"`
	Brand        float64 `yaml:"brand"        json:"brand"`
	Quantity     float64 `yaml:"quantity"     json:"quantity"`
}

// DefaultWeights returns the default confidence weights.
func DefaultWeights() Weights {
	return Weights{
		Similarity:   0.60,
		Availability: 0.20,
		Brand:        0.15,
		Quantity:     0.05,
	}
}

// Signals are the boolean inputs next to similarity. Absent information
// leaves a signal false so it contributes nothing.
type Signals struct {
	HasPrice      bool
	BrandMatch    bool
	QuantityMatch bool
}

// SignalsFor derives signals from the query and candidate attributes.
// BrandMatch needs a recognized brand on both sides.
func SignalsFor(q, c *domain.Attributes, cand *domain.Candidate) Signals {
	return Signals{
		HasPrice:      cand != nil && cand.HasPrice(),
		BrandMatch:    q.BrandKnown() && c.BrandKnown() && q.Brand == c.Brand,
		QuantityMatch: max(q.PackQuantity, 1) == max(c.PackQuantity, 1),
	}
}

// Breakdown shows per-signal contributions.
type Breakdown struct {
	Similarity   float64                `json:"similarity"`
	Availability float64                `json:"availability"`
	Brand        float64                `json:"brand"`
	Quantity     float64                `json:"quantity"`
	Total        float64                `json:"total"`
	Level        domain.ConfidenceLevel `json:"level"`
}

// Confidence combines similarity with the availability, brand and quantity
// signals. It is pure and total: NaN similarity counts as zero.
func Confidence(similarity float64, s Signals, w Weights) Breakdown {
	b := Breakdown{}

	// Similarity-weighted base
	b.Similarity = clamp(similarity) * w.Similarity

	// Additive bonuses
	if s.HasPrice {
		b.Availability = w.Availability
	}
	if s.BrandMatch {
		b.Brand = w.Brand
	}
	if s.QuantityMatch {
		b.Quantity = w.Quantity
	}

	b.Total = clamp(b.Similarity + b.Availability + b.Brand + b.Quantity)
	b.Level = LevelFor(b.Total)

	return b
}

// LevelFor maps a confidence score to its level. Every value in [0,1] falls
// into exactly one of HIGH, MEDIUM, LOW and VERY_LOW.
func LevelFor(confidence float64) domain.ConfidenceLevel {
	switch {
	case confidence >= HighThreshold:
		return domain.ConfidenceHigh
	case confidence >= MediumThreshold:
		return domain.ConfidenceMedium
	case confidence >= LowThreshold:
		return domain.ConfidenceLow
	default:
		return domain.ConfidenceVeryLow
	}
}

func clamp(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
