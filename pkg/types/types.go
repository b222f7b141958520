// Package domain defines the core business types for the grocery price tracker.
package domain

import (
	"fmt"
	"strconv"
	"time"
)

// ConfidenceLevel is the discrete bucket a confidence score falls into.
type ConfidenceLevel string

// Confidence level constants.
const (
	ConfidenceHigh     ConfidenceLevel = "HIGH"
	ConfidenceMedium   ConfidenceLevel = "MEDIUM"
	ConfidenceLow      ConfidenceLevel = "LOW"
	ConfidenceVeryLow  ConfidenceLevel = "VERY_LOW"
	ConfidenceNotFound ConfidenceLevel = "NOT_FOUND"
)

// Strategy names the cascade state that produced a result.
type Strategy string

// Cascade strategies in escalation order.
const (
	StrategyStandard         Strategy = "standard"
	StrategyLoweredThreshold Strategy = "lowered_threshold"
	StrategySimplifiedTerms  Strategy = "simplified_terms"
	StrategyBrandOnly        Strategy = "brand_only"
)

// Match types recorded on a result.
const (
	MatchTypeBrandWeight = "brand+weight"
	MatchTypeBrand       = "brand"
	MatchTypeWeight      = "weight"
	MatchTypeFuzzy       = "fuzzy-only"
	MatchTypeSimplified  = "simplified-terms"
	MatchTypeBrandOnly   = "brand-only-fallback"
)

// Query is a single product to match.
type Query struct {
	ID       string `json:"id,omitempty"       doc:"Caller supplied identifier echoed on the result"`
	Name     string `json:"name"               doc:"Free-text product description" minLength:"1" example:"Heinz Baked Beans 415g"`
	Quantity int    `json:"quantity,omitempty" doc:"Expected pack quantity hint" minimum:"0"`
}

// Measure is a magnitude with a canonical unit symbol (g, kg, ml, l or x).
type Measure struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// String renders the measure the way it appears on shelf labels, e.g. "415g".
func (m Measure) String() string {
	return strconv.FormatFloat(m.Value, 'f', -1, 64) + m.Unit
}

// Base converts the measure to grams, millilitres or a plain count, returning
// the base unit symbol alongside.
func (m Measure) Base() (float64, string) {
	switch m.Unit {
	case "kg":
		return m.Value * 1000, "g"
	case "l":
		return m.Value * 1000, "ml"
	default:
		return m.Value, m.Unit
	}
}

// Scale returns the measure multiplied by n.
func (m Measure) Scale(n int) Measure {
	return Measure{Value: m.Value * float64(n), Unit: m.Unit}
}

// Attributes are the structured fields extracted from normalized text.
// PackQuantity is always >= 1; Size is the single-unit size.
type Attributes struct {
	Brand        string   `json:"brand,omitempty"`
	Size         *Measure `json:"size,omitempty"`
	PackQuantity int      `json:"pack_quantity"`
	Multipack    bool     `json:"multipack,omitempty"`
}

// BrandKnown reports whether a brand was recognized.
func (a *Attributes) BrandKnown() bool {
	return a.Brand != ""
}

// IsMultipack reports whether the text declared more than one unit.
func (a *Attributes) IsMultipack() bool {
	return a.PackQuantity > 1 || a.Multipack
}

// TotalSize returns quantity x unit size, or nil when no size was found.
func (a *Attributes) TotalSize() *Measure {
	if a.Size == nil {
		return nil
	}
	total := a.Size.Scale(max(a.PackQuantity, 1))
	return &total
}

// Profile is the normalized view of a query or candidate name that scorers
// compare. Query-side and candidate-side profiles are built independently.
type Profile struct {
	Raw        string     `json:"raw"`
	Normalized string     `json:"normalized"`
	Attributes Attributes `json:"attributes"`
}

// Unit price bases.
const (
	UnitBasisKilogram = "kg"
	UnitBasisLitre    = "l"
	UnitBasisEach     = "each"
)

// Candidate is a scraped retailer listing considered as a possible match.
type Candidate struct {
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	UnitPrice *float64 `json:"unit_price,omitempty"`
	UnitBasis string   `json:"unit_basis,omitempty"`
	URL       string   `json:"url,omitempty"`
	Retailer  string   `json:"retailer"`
	Multipack bool     `json:"multipack,omitempty"`
}

// HasPrice reports whether the candidate carries a usable price.
func (c *Candidate) HasPrice() bool {
	return c.Price > 0
}

// Adjustment is one penalty or bonus applied on top of the base similarity.
type Adjustment struct {
	Name   string  `json:"name"`
	Detail string  `json:"detail,omitempty"`
	Value  float64 `json:"value"`
}

// Similarity is the output of a similarity scorer.
type Similarity struct {
	Base        float64      `json:"base"`
	Score       float64      `json:"score"`
	Adjustments []Adjustment `json:"adjustments,omitempty"`
}

// MatchScore is the full scoring outcome for one query/candidate pair.
type MatchScore struct {
	Similarity  float64         `json:"similarity"`
	Base        float64         `json:"base"`
	Adjustments []Adjustment    `json:"adjustments,omitempty"`
	Confidence  float64         `json:"confidence"`
	Level       ConfidenceLevel `json:"level"`
}

// ScoredCandidate pairs a candidate with its score and extracted attributes.
type ScoredCandidate struct {
	Candidate  Candidate  `json:"candidate"`
	Attributes Attributes `json:"attributes"`
	Score      MatchScore `json:"score"`
}

// MatchResult is the decision for one query.
type MatchResult struct {
	Query      Query            `json:"query"`
	Found      bool             `json:"found"`
	Candidate  *Candidate       `json:"candidate,omitempty"`
	Score      MatchScore       `json:"score"`
	Issues     []string         `json:"issues,omitempty"`
	MatchType  string           `json:"match_type,omitempty"`
	Strategy   Strategy         `json:"strategy,omitempty"`
	ProductKey string           `json:"product_key,omitempty"`
	Retailers  map[string]Offer `json:"retailers,omitempty"`
	FromCache  bool             `json:"from_cache,omitempty"`
	MatchedAt  time.Time        `json:"matched_at"`
}

// Offer is the best listing a single retailer produced in the winning round,
// used for per-retailer price columns.
type Offer struct {
	Name       string          `json:"name"`
	Price      float64         `json:"price"`
	URL        string          `json:"url,omitempty"`
	Confidence float64         `json:"confidence"`
	Level      ConfidenceLevel `json:"level"`
}

// NotFound builds the terminal result for a query that matched nothing.
func NotFound(q Query, minThreshold float64, issues ...string) *MatchResult {
	r := &MatchResult{
		Query:     q,
		Score:     MatchScore{Level: ConfidenceNotFound},
		MatchedAt: time.Now().UTC(),
	}
	r.Issues = append(r.Issues, issues...)
	r.Issues = append(r.Issues,
		fmt.Sprintf("no candidate exceeded minimum threshold %s",
			strconv.FormatFloat(minThreshold, 'f', -1, 64)))
	return r
}

// CacheStats summarizes a result cache.
type CacheStats struct {
	Entries   int       `json:"entries"`
	Expired   int       `json:"expired"`
	SizeBytes int64     `json:"size_bytes"`
	Oldest    time.Time `json:"oldest,omitzero"`
	Newest    time.Time `json:"newest,omitzero"`
}
