package retailer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/grocery-price-tracker/internal/retailer"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "pounds with symbol", input: "£1.25", want: 1.25, wantOK: true},
		{name: "pence", input: "85p", want: 0.85, wantOK: true},
		{name: "bare number", input: "1.25", want: 1.25, wantOK: true},
		{name: "thousands separator", input: "£1,250.00", want: 1250, wantOK: true},
		{name: "surrounding whitespace", input: "  £3 ", want: 3, wantOK: true},
		{name: "empty", input: "", wantOK: false},
		{name: "no digits", input: "free", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := retailer.ParsePrice(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestParseUnitPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		want      float64
		wantBasis string
		wantOK    bool
	}{
		{name: "per 100g", input: "£0.21/100g", want: 2.10, wantBasis: domain.UnitBasisKilogram, wantOK: true},
		{name: "pence per 100g", input: "85p/100g", want: 8.50, wantBasis: domain.UnitBasisKilogram, wantOK: true},
		{name: "per kg", input: "£3.37/kg", want: 3.37, wantBasis: domain.UnitBasisKilogram, wantOK: true},
		{name: "per litre spelled out", input: "£0.64/litre", want: 0.64, wantBasis: domain.UnitBasisLitre, wantOK: true},
		{name: "per 100ml with word", input: "£1.20 per 100ml", want: 12.0, wantBasis: domain.UnitBasisLitre, wantOK: true},
		{name: "per 75cl", input: "£0.75/75cl", want: 1.0, wantBasis: domain.UnitBasisLitre, wantOK: true},
		{name: "each", input: "£0.25/each", want: 0.25, wantBasis: domain.UnitBasisEach, wantOK: true},
		{name: "not a unit price", input: "n/a", wantOK: false},
		{name: "empty", input: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, basis, ok := retailer.ParseUnitPrice(tt.input)
			require.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.InDelta(t, tt.want, got, 1e-9)
			assert.Equal(t, tt.wantBasis, basis)
		})
	}
}

func TestToCandidates(t *testing.T) {
	t.Parallel()

	products := []retailer.Product{
		{
			Name:      "  Tesco Baked Beans 420g ",
			Price:     "32p",
			UnitPrice: "£0.08/100g",
			URL:       "https://example.test/beans",
		},
		{
			Name:      "Heinz Beanz 4 x 415g",
			Price:     "£4.50",
			Multipack: true,
		},
		{
			Name:  "Mystery Tin",
			Price: "price unavailable",
		},
	}

	got := retailer.ToCandidates("tesco", products)
	require.Len(t, got, 3)

	assert.Equal(t, "Tesco Baked Beans 420g", got[0].Name)
	assert.Equal(t, "tesco", got[0].Retailer)
	assert.InDelta(t, 0.32, got[0].Price, 1e-9)
	require.NotNil(t, got[0].UnitPrice)
	assert.InDelta(t, 0.80, *got[0].UnitPrice, 1e-9)
	assert.Equal(t, domain.UnitBasisKilogram, got[0].UnitBasis)

	assert.True(t, got[1].Multipack)
	assert.Nil(t, got[1].UnitPrice)
	assert.Empty(t, got[1].UnitBasis)

	assert.False(t, got[2].HasPrice())
}

func TestToCandidates_Empty(t *testing.T) {
	t.Parallel()

	got := retailer.ToCandidates("tesco", nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
