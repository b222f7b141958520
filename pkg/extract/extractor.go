// Package extract pulls brand, size and pack quantity out of normalized
// product text using ordered rule tables.
package extract

import (
	"cmp"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

// maxPackQuantity rejects "N x" readings that are really sizes or codes.
const maxPackQuantity = 100

const unitGroup = `(kg|g|ml|cl|l|ltr|litres?)`

// multipackRule reads a pack quantity and optionally a per-unit size.
type multipackRule struct {
	re              *regexp.Regexp
	qty, size, unit int // capture group indexes, 0 when absent
}

// Multipack rules in priority order. Patterns run against normalized text.
var multipackRules = []multipackRule{
	// 6 x 415g
	{re: regexp.MustCompile(`\b(\d+)\s*x\s*(\d+(?:\.\d+)?)\s*` + unitGroup + `\b`), qty: 1, size: 2, unit: 3},
	// 415g x 6
	{re: regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*` + unitGroup + `\s*x\s*(\d+)\b`), size: 1, unit: 2, qty: 3},
	// 6 pack, 4 cans, 12 bottles
	{re: regexp.MustCompile(`\b(\d+)\s*(?:pack|packs|pk|cans?|bottles?|tins?|pots?|pouches|multipack)\b`), qty: 1},
	// leading "6 x heinz beanz"
	{re: regexp.MustCompile(`^(\d+)\s*x\b`), qty: 1},
	// trailing "heinz beanz 4x"
	{re: regexp.MustCompile(`\b(\d+)\s*x$`), qty: 1},
}

var multipackMarker = regexp.MustCompile(`\b(?:multipack|multi pack|family pack|value pack|bulk pack)\b`)

type compiledBrand struct {
	name  string
	alias string
	re    *regexp.Regexp
}

type compiledWeight struct {
	re     *regexp.Regexp
	unit   string
	factor float64
}

// Extractor applies a compiled rule table. It holds no mutable state and is
// safe for concurrent use.
type Extractor struct {
	brands  []compiledBrand
	weights []compiledWeight
}

// New validates and compiles the rule table.
func New(rules Rules) (*Extractor, error) {
	if err := ValidateRules(rules); err != nil {
		return nil, fmt.Errorf("invalid extraction rules: %w", err)
	}

	e := &Extractor{}

	for _, br := range rules.Brands {
		name := normalize.Clean(br.Name)
		aliases := br.Aliases
		if len(aliases) == 0 {
			aliases = []string{br.Name}
		}
		for _, a := range aliases {
			alias := normalize.Clean(a)
			if alias == "" {
				continue
			}
			e.brands = append(e.brands, compiledBrand{
				name:  name,
				alias: alias,
				re:    brandPattern(alias, br.Position),
			})
		}
	}

	// Longer aliases first so "dr oetker" is tried before "oetker" and
	// "tesco finest" before "tesco". Stable keeps configured order on ties.
	slices.SortStableFunc(e.brands, func(a, b compiledBrand) int {
		return cmp.Compare(len(b.alias), len(a.alias))
	})

	for _, wr := range rules.Weights {
		factor := wr.Factor
		if factor == 0 {
			factor = 1
		}
		e.weights = append(e.weights, compiledWeight{
			re:     regexp.MustCompile(wr.Pattern),
			unit:   wr.Unit,
			factor: factor,
		})
	}

	return e, nil
}

// MustNew is New that panics on error.
func MustNew(rules Rules) *Extractor {
	e, err := New(rules)
	if err != nil {
		panic(err)
	}
	return e
}

func brandPattern(alias string, pos Position) *regexp.Regexp {
	parts := strings.Fields(alias)
	for i := range parts {
		parts[i] = regexp.QuoteMeta(parts[i])
	}
	body := strings.Join(parts, `\s*`)
	if pos == PositionStart {
		return regexp.MustCompile(`^` + body + `(?:\s|$)`)
	}
	return regexp.MustCompile(`(?:^|\s)` + body + `(?:\s|$)`)
}

// Extract reads attributes from normalized text. Empty or unrecognized text
// yields an unknown brand, no size and a pack quantity of 1.
func (e *Extractor) Extract(text string) domain.Attributes {
	attrs := domain.Attributes{PackQuantity: 1}
	if text == "" {
		return attrs
	}

	attrs.Brand = e.Brand(text)

	rest := text
	if qty, size, loc, ok := readMultipack(text); ok {
		attrs.PackQuantity = qty
		attrs.Size = size
		rest = text[:loc[0]] + " " + text[loc[1]:]
	}
	if attrs.Size == nil {
		attrs.Size = e.size(rest)
	}
	attrs.Multipack = multipackMarker.MatchString(text)

	return attrs
}

// Brand returns the canonical brand for text, or "" when no rule matches.
func (e *Extractor) Brand(text string) string {
	for i := range e.brands {
		if e.brands[i].re.MatchString(text) {
			return e.brands[i].name
		}
	}
	return ""
}

// StripBrand removes the first recognized brand alias from text.
func (e *Extractor) StripBrand(text string) string {
	for i := range e.brands {
		if loc := e.brands[i].re.FindStringIndex(text); loc != nil {
			return strings.TrimSpace(text[:loc[0]] + " " + text[loc[1]:])
		}
	}
	return text
}

func (e *Extractor) size(text string) *domain.Measure {
	for _, w := range e.weights {
		for _, m := range w.re.FindAllStringSubmatch(text, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil || v <= 0 {
				continue
			}
			return &domain.Measure{Value: v * w.factor, Unit: w.unit}
		}
	}
	return nil
}

func readMultipack(text string) (int, *domain.Measure, []int, bool) {
	for _, r := range multipackRules {
		m := r.re.FindStringSubmatchIndex(text)
		if m == nil {
			continue
		}
		qty, err := strconv.Atoi(group(text, m, r.qty))
		if err != nil || qty < 1 || qty > maxPackQuantity {
			continue
		}

		var size *domain.Measure
		if r.size > 0 {
			v, err := strconv.ParseFloat(group(text, m, r.size), 64)
			if err == nil && v > 0 {
				size = canonicalMeasure(v, group(text, m, r.unit))
			}
		}
		return qty, size, m[0:2], true
	}
	return 1, nil, nil, false
}

func group(text string, loc []int, idx int) string {
	if idx <= 0 || 2*idx+1 >= len(loc) || loc[2*idx] < 0 {
		return ""
	}
	return text[loc[2*idx]:loc[2*idx+1]]
}

func canonicalMeasure(v float64, unit string) *domain.Measure {
	switch unit {
	case "kg":
		return &domain.Measure{Value: v, Unit: "kg"}
	case "g":
		return &domain.Measure{Value: v, Unit: "g"}
	case "ml":
		return &domain.Measure{Value: v, Unit: "ml"}
	case "cl":
		return &domain.Measure{Value: v * 10, Unit: "ml"}
	default:
		return &domain.Measure{Value: v, Unit: "l"}
	}
}
