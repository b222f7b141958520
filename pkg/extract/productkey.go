package extract

import (
	"fmt"
	"strings"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

const unknownKey = "unknown"

// ProductKey generates a stable grouping key for matched products, e.g.
// "heinz:415g:6" for a six pack of 415g tins.
func ProductKey(attrs domain.Attributes) string {
	return fmt.Sprintf("%s:%s:%d",
		keyPart(attrs.Brand),
		sizeKey(attrs.Size),
		max(attrs.PackQuantity, 1),
	)
}

func keyPart(s string) string {
	if s == "" {
		return unknownKey
	}
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}

// sizeKey renders sizes in base units so "1kg" and "1000g" share a key.
func sizeKey(m *domain.Measure) string {
	if m == nil {
		return unknownKey
	}
	v, unit := m.Base()
	return domain.Measure{Value: v, Unit: unit}.String()
}
