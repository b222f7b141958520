// Package pricecheck sanity-checks a matched listing's price, unit price and
// size. It only annotates results with advisory issues and never rejects a
// match.
package pricecheck

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// Issue texts without parameters.
const (
	IssueNoPrice     = "no price found"
	IssuePromotional = "promotional price: listing carries offer labels"
)

// ErrInvalidRange is returned when a category range is empty or inverted.
var ErrInvalidRange = errors.New("invalid price range")

// Category maps query keywords to an expected shelf price range in pounds.
type Category struct {
	Name     string   `yaml:"name"     json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
	Min      float64  `yaml:"min"      json:"min"`
	Max      float64  `yaml:"max"      json:"max"`
}

// Config holds the validation tables. Categories are tried in order.
type Config struct {
	Categories         []Category `yaml:"categories"           json:"categories"`
	UnitPriceTolerance float64    `yaml:"unit_price_tolerance" json:"unit_price_tolerance"`
	MinSize            float64    `yaml:"min_size"             json:"min_size"`
	MaxSize            float64    `yaml:"max_size"             json:"max_size"`
}

// DefaultConfig returns the built-in UK category ranges.
func DefaultConfig() Config {
	return Config{
		Categories: []Category{
			{Name: "milk", Keywords: []string{"milk"}, Min: 0.5, Max: 2.5},
			{Name: "bread", Keywords: []string{"bread", "loaf"}, Min: 0.8, Max: 3},
			{Name: "eggs", Keywords: []string{"eggs"}, Min: 1, Max: 4},
			{Name: "cheese", Keywords: []string{"cheese", "cheddar"}, Min: 1.5, Max: 8},
			{Name: "baked beans", Keywords: []string{"baked beans", "beanz"}, Min: 0.3, Max: 3},
			{Name: "soup", Keywords: []string{"soup"}, Min: 0.5, Max: 3},
			{Name: "pasta", Keywords: []string{"pasta", "spaghetti", "penne", "fusilli"}, Min: 0.5, Max: 3},
			{Name: "rice", Keywords: []string{"rice"}, Min: 0.5, Max: 4},
			{Name: "cereal", Keywords: []string{"cereal", "cornflakes", "muesli", "granola", "weetabix"}, Min: 1, Max: 5},
			{Name: "yogurt", Keywords: []string{"yogurt", "yoghurt"}, Min: 0.5, Max: 3},
			{Name: "butter", Keywords: []string{"butter"}, Min: 1, Max: 4},
			{Name: "chicken", Keywords: []string{"chicken"}, Min: 2, Max: 8},
			{Name: "beef", Keywords: []string{"beef", "mince"}, Min: 3, Max: 12},
			{Name: "fish", Keywords: []string{"fish", "salmon", "cod", "haddock", "tuna"}, Min: 2, Max: 10},
			{
				Name:     "vegetables",
				Keywords: []string{"vegetables", "carrots", "potatoes", "broccoli", "onions", "peas"},
				Min:      0.5,
				Max:      4,
			},
			{
				Name:     "fruit",
				Keywords: []string{"fruit", "apples", "bananas", "oranges", "grapes", "strawberries"},
				Min:      0.5,
				Max:      5,
			},
		},
		UnitPriceTolerance: 0.5,
		MinSize:            1,
		MaxSize:            5000,
	}
}

// Validate checks the tables and reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	for i, cat := range c.Categories {
		if cat.Name == "" {
			errs = append(errs, fmt.Errorf("categories[%d].name is required", i))
		}
		if cat.Min < 0 || cat.Min >= cat.Max {
			errs = append(errs, fmt.Errorf("categories[%d] %q: %w: min %.2f must be >= 0 and < max %.2f",
				i, cat.Name, ErrInvalidRange, cat.Min, cat.Max))
		}
	}
	if c.UnitPriceTolerance < 0 {
		errs = append(errs, fmt.Errorf("unit_price_tolerance must be >= 0, got %.2f", c.UnitPriceTolerance))
	}
	if c.MinSize < 0 || (c.MaxSize > 0 && c.MinSize >= c.MaxSize) {
		errs = append(errs, fmt.Errorf("size band: %w: min %.0f must be >= 0 and < max %.0f",
			ErrInvalidRange, c.MinSize, c.MaxSize))
	}
	return errors.Join(errs...)
}

// Validator applies a Config. It is immutable after New.
type Validator struct {
	cfg  Config
	norm *normalize.Normalizer
}

// New returns a Validator. The normalizer detects promotional labels on
// candidate names; when nil that check is skipped.
func New(cfg Config, norm *normalize.Normalizer) *Validator {
	return &Validator{cfg: cfg, norm: norm}
}

// Category infers the product category from normalized query text, or ""
// when no keyword matches.
func (v *Validator) Category(normalized string) string {
	padded := " " + normalized + " "
	for _, cat := range v.cfg.Categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(padded, " "+kw+" ") {
				return cat.Name
			}
		}
	}
	return ""
}

func (v *Validator) category(name string) (Category, bool) {
	for _, cat := range v.cfg.Categories {
		if cat.Name == name {
			return cat, true
		}
	}
	return Category{}, false
}

// Validate checks one price observation. size is the total pack size; an
// unknown category skips the range check.
func (v *Validator) Validate(
	category string,
	price float64,
	unitPrice *float64,
	unitBasis string,
	size *domain.Measure,
) []string {
	if price <= 0 {
		return []string{IssueNoPrice}
	}

	var issues []string

	if cat, ok := v.category(category); ok && (price < cat.Min || price > cat.Max) {
		issues = append(issues, fmt.Sprintf("price £%.2f outside expected range £%.2f-£%.2f for %s",
			price, cat.Min, cat.Max, cat.Name))
	}

	if size == nil {
		return issues
	}

	base, unit := size.Base()
	if unit != "g" && unit != "ml" {
		return issues
	}

	if (v.cfg.MinSize > 0 && base < v.cfg.MinSize) || (v.cfg.MaxSize > 0 && base > v.cfg.MaxSize) {
		issues = append(issues, fmt.Sprintf("implausible size %s", size))
	}

	if issue, ok := v.unitPriceIssue(price, unitPrice, unitBasis, base, unit); ok {
		issues = append(issues, issue)
	}

	return issues
}

// unitPriceIssue recomputes the price per kg or litre and compares it with
// the listed unit price.
func (v *Validator) unitPriceIssue(price float64, unitPrice *float64, basis string, base float64, unit string) (string, bool) {
	if unitPrice == nil || *unitPrice <= 0 || base <= 0 {
		return "", false
	}
	want := domain.UnitBasisKilogram
	if unit == "ml" {
		want = domain.UnitBasisLitre
	}
	if basis != "" && basis != want {
		return "", false
	}

	computed := price / (base / 1000)
	diff := math.Abs(computed-*unitPrice) / *unitPrice
	if diff <= v.cfg.UnitPriceTolerance {
		return "", false
	}
	return fmt.Sprintf("unit price £%.2f/%s differs from computed £%.2f/%s",
		*unitPrice, want, computed, want), true
}

// Check validates a matched candidate against the query it answered.
// Category comes from the query text; size from the candidate, falling back
// to the query's when the listing does not state one.
func (v *Validator) Check(q *domain.Profile, c *domain.Candidate, attrs *domain.Attributes) []string {
	size := attrs.TotalSize()
	if size == nil {
		size = q.Attributes.TotalSize()
	}

	issues := v.Validate(v.Category(q.Normalized), c.Price, c.UnitPrice, c.UnitBasis, size)

	if v.norm != nil && v.norm.IsPromotional(c.Name) {
		issues = append(issues, IssuePromotional)
	}
	return issues
}
