package retailer

import (
	"regexp"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

var (
	priceRe     = regexp.MustCompile(`(?i)(£)?\s*(\d+(?:\.\d+)?)\s*(p\b)?`)
	unitPriceRe = regexp.MustCompile(
		`(?i)^(.+?)\s*(?:/|per)\s*(\d+(?:\.\d+)?)?\s*(kg|g|ml|cl|ltr|litre|liter|l|each|ea|unit)s?\b`)
)

// ParsePrice reads a shelf price such as "£1.25", "85p" or "1.25" into
// pounds. Thousands separators are ignored.
func ParsePrice(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	m := priceRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return 0, false
	}
	if m[3] != "" && m[1] == "" {
		v /= 100
	}
	return v, true
}

// ParseUnitPrice reads a unit price label and converts it to pounds per
// kilogram, per litre or per item. "£0.21/100g" becomes 2.10 per kg.
func ParseUnitPrice(s string) (float64, string, bool) {
	m := unitPriceRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, "", false
	}

	price, ok := ParsePrice(m[1])
	if !ok {
		return 0, "", false
	}

	amount := 1.0
	if m[2] != "" {
		a, err := strconv.ParseFloat(m[2], 64)
		if err != nil || a <= 0 {
			return 0, "", false
		}
		amount = a
	}

	switch strings.ToLower(m[3]) {
	case "g":
		return price / amount * 1000, domain.UnitBasisKilogram, true
	case "kg":
		return price / amount, domain.UnitBasisKilogram, true
	case "ml":
		return price / amount * 1000, domain.UnitBasisLitre, true
	case "cl":
		return price / amount * 100, domain.UnitBasisLitre, true
	case "l", "ltr", "litre", "liter":
		return price / amount, domain.UnitBasisLitre, true
	default:
		return price / amount, domain.UnitBasisEach, true
	}
}

// ToCandidates converts endpoint products into candidates for retailer.
// Products without a parseable price keep a zero price so the engine can
// still score them and flag the missing price.
func ToCandidates(retailer string, products []Product) []domain.Candidate {
	out := make([]domain.Candidate, 0, len(products))
	for i := range products {
		out = append(out, toCandidate(retailer, &products[i]))
	}
	return out
}

func toCandidate(retailer string, p *Product) domain.Candidate {
	c := domain.Candidate{
		Name:      strings.TrimSpace(p.Name),
		URL:       p.URL,
		Retailer:  retailer,
		Multipack: p.Multipack,
	}

	if v, ok := ParsePrice(p.Price); ok && v >= 0 {
		c.Price = v
	}

	if v, basis, ok := ParseUnitPrice(p.UnitPrice); ok {
		c.UnitPrice = &v
		c.UnitBasis = basis
	}

	return c
}
