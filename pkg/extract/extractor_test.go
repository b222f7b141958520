package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/grocery-price-tracker/pkg/extract"
	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	n := normalize.MustNew(nil)
	e := extract.MustNew(extract.DefaultRules())

	tests := []struct {
		name      string
		text      string
		wantBrand string
		wantSize  *domain.Measure
		wantQty   int
		wantMulti bool
	}{
		{
			name:      "brand and grams",
			text:      "Heinz Baked Beans 415g",
			wantBrand: "heinz",
			wantSize:  &domain.Measure{Value: 415, Unit: "g"},
			wantQty:   1,
		},
		{
			name:      "own brand at start",
			text:      "Tesco Baked Beans 420g",
			wantBrand: "tesco",
			wantSize:  &domain.Measure{Value: 420, Unit: "g"},
			wantQty:   1,
		},
		{
			name:     "own brand not at start is ignored",
			text:     "Baked Beans from Tesco 420g",
			wantSize: &domain.Measure{Value: 420, Unit: "g"},
			wantQty:  1,
		},
		{
			name:      "N x size multipack keeps unit size",
			text:      "Heinz Beanz 6 x 415g",
			wantBrand: "heinz",
			wantSize:  &domain.Measure{Value: 415, Unit: "g"},
			wantQty:   6,
		},
		{
			name:      "size x N multipack",
			text:      "Coca-Cola 330ml x 24",
			wantBrand: "coca cola",
			wantSize:  &domain.Measure{Value: 330, Unit: "ml"},
			wantQty:   24,
		},
		{
			name:      "leading N x with size later",
			text:      "4 x Heinz Cream of Tomato Soup 400g",
			wantBrand: "heinz",
			wantSize:  &domain.Measure{Value: 400, Unit: "g"},
			wantQty:   4,
		},
		{
			name:      "can count",
			text:      "Pepsi Max 8 cans 330ml",
			wantBrand: "pepsi",
			wantSize:  &domain.Measure{Value: 330, Unit: "ml"},
			wantQty:   8,
		},
		{
			name:      "kilograms",
			text:      "Tilda Basmati Rice 1.5kg",
			wantBrand: "tilda",
			wantSize:  &domain.Measure{Value: 1.5, Unit: "kg"},
			wantQty:   1,
		},
		{
			name:      "centilitres converted",
			text:      "Robinsons Squash 75cl",
			wantBrand: "robinsons",
			wantSize:  &domain.Measure{Value: 750, Unit: "ml"},
			wantQty:   1,
		},
		{
			name:      "litres",
			text:      "Sainsbury's Semi Skimmed Milk 2L",
			wantBrand: "sainsburys",
			wantSize:  &domain.Measure{Value: 2, Unit: "l"},
			wantQty:   1,
		},
		{
			name:     "count unit",
			text:     "Free Range Eggs x12",
			wantSize: &domain.Measure{Value: 12, Unit: "x"},
			wantQty:  1,
		},
		{
			name:      "longer compound brand wins",
			text:      "Dr. Oetker Ristorante Pizza 355g",
			wantBrand: "dr oetker",
			wantSize:  &domain.Measure{Value: 355, Unit: "g"},
			wantQty:   1,
		},
		{
			name:      "brand spelling variants fold",
			text:      "Al'Fez Harissa Paste 100g",
			wantBrand: "al fez",
			wantSize:  &domain.Measure{Value: 100, Unit: "g"},
			wantQty:   1,
		},
		{
			name:      "family pack flag without count",
			text:      "Walkers Crisps Family Pack",
			wantBrand: "walkers",
			wantQty:   1,
			wantMulti: true,
		},
		{
			name:    "unknown everything",
			text:    "Loose Bananas",
			wantQty: 1,
		},
		{
			name:    "empty text",
			text:    "",
			wantQty: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := e.Extract(n.Normalize(tt.text))

			assert.Equal(t, tt.wantBrand, got.Brand)
			assert.Equal(t, tt.wantQty, got.PackQuantity)
			assert.Equal(t, tt.wantMulti, got.Multipack)
			if tt.wantSize == nil {
				assert.Nil(t, got.Size)
				return
			}
			require.NotNil(t, got.Size)
			assert.InDelta(t, tt.wantSize.Value, got.Size.Value, 1e-9)
			assert.Equal(t, tt.wantSize.Unit, got.Size.Unit)
		})
	}
}

func TestExtractor_TotalSizeNotConflated(t *testing.T) {
	t.Parallel()

	e := extract.MustNew(extract.DefaultRules())
	attrs := e.Extract("heinz beanz 6 x 415g")

	require.NotNil(t, attrs.Size)
	assert.InDelta(t, 415.0, attrs.Size.Value, 1e-9)

	total := attrs.TotalSize()
	require.NotNil(t, total)
	assert.InDelta(t, 2490.0, total.Value, 1e-9)
	assert.Equal(t, "g", total.Unit)
}

func TestExtractor_PackQuantityAtLeastOne(t *testing.T) {
	t.Parallel()

	e := extract.MustNew(extract.DefaultRules())

	for _, text := range []string{"0 x 415g", "1 x 415g", "heinz 0 pack", "x", "999 x 1g"} {
		attrs := e.Extract(text)
		assert.GreaterOrEqual(t, attrs.PackQuantity, 1, "text %q", text)
	}
}

func TestExtractor_StripBrand(t *testing.T) {
	t.Parallel()

	e := extract.MustNew(extract.DefaultRules())

	assert.Equal(t, "baked beans 415g", e.StripBrand("heinz baked beans 415g"))
	assert.Equal(t, "ristorante pizza", e.StripBrand("dr oetker ristorante pizza"))
	assert.Equal(t, "loose bananas", e.StripBrand("loose bananas"))
}

func TestNew_CustomRules(t *testing.T) {
	t.Parallel()

	e, err := extract.New(extract.Rules{
		Brands: []extract.BrandRule{
			{Name: "Acme"},
			{Name: "Acme Gold", Position: extract.PositionStart},
		},
		Weights: []extract.WeightRule{
			{Pattern: `(\d+)\s*oz\b`, Unit: "g", Factor: 28.35},
		},
	})
	require.NoError(t, err)

	attrs := e.Extract("acme gold coffee 8oz")
	assert.Equal(t, "acme gold", attrs.Brand)
	require.NotNil(t, attrs.Size)
	assert.InDelta(t, 226.8, attrs.Size.Value, 1e-9)
}

func TestValidateRules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rules   extract.Rules
		wantErr error
	}{
		{
			name:  "defaults are valid",
			rules: extract.DefaultRules(),
		},
		{
			name:    "missing brand name",
			rules:   extract.Rules{Brands: []extract.BrandRule{{Aliases: []string{"x"}}}},
			wantErr: extract.ErrMissingField,
		},
		{
			name:    "bad position",
			rules:   extract.Rules{Brands: []extract.BrandRule{{Name: "a", Position: "middle"}}},
			wantErr: extract.ErrInvalidEnum,
		},
		{
			name:    "bad regex",
			rules:   extract.Rules{Weights: []extract.WeightRule{{Pattern: `(\d+`, Unit: "g"}}},
			wantErr: extract.ErrInvalidPattern,
		},
		{
			name:    "pattern without capture group",
			rules:   extract.Rules{Weights: []extract.WeightRule{{Pattern: `\d+g`, Unit: "g"}}},
			wantErr: extract.ErrInvalidPattern,
		},
		{
			name:    "unknown unit",
			rules:   extract.Rules{Weights: []extract.WeightRule{{Pattern: `(\d+)oz`, Unit: "oz"}}},
			wantErr: extract.ErrInvalidEnum,
		},
		{
			name:    "negative factor",
			rules:   extract.Rules{Weights: []extract.WeightRule{{Pattern: `(\d+)g`, Unit: "g", Factor: -1}}},
			wantErr: extract.ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := extract.ValidateRules(tt.rules)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)

			_, err = extract.New(tt.rules)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestProductKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		attrs domain.Attributes
		want  string
	}{
		{
			name:  "full attributes",
			attrs: domain.Attributes{Brand: "heinz", Size: &domain.Measure{Value: 415, Unit: "g"}, PackQuantity: 6},
			want:  "heinz:415g:6",
		},
		{
			name:  "kilograms in base units",
			attrs: domain.Attributes{Brand: "tilda", Size: &domain.Measure{Value: 1.5, Unit: "kg"}, PackQuantity: 1},
			want:  "tilda:1500g:1",
		},
		{
			name:  "multi word brand",
			attrs: domain.Attributes{Brand: "dr oetker", PackQuantity: 1},
			want:  "dr_oetker:unknown:1",
		},
		{
			name:  "zero quantity clamps to one",
			attrs: domain.Attributes{},
			want:  "unknown:unknown:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, extract.ProductKey(tt.attrs))
		})
	}
}
