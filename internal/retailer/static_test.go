package retailer_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/grocery-price-tracker/internal/retailer"
)

func loadTestFixtures(t *testing.T) retailer.Fixtures {
	t.Helper()
	f, err := retailer.LoadFixtures("testdata/fixtures.json")
	require.NoError(t, err)
	return f
}

func TestLoadFixtures(t *testing.T) {
	t.Parallel()

	f := loadTestFixtures(t)
	assert.Len(t, f["tesco"], 4)
	assert.Len(t, f["sainsburys"], 2)

	_, err := retailer.LoadFixtures("testdata/missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading fixture file")
}

func TestStaticSource_Search(t *testing.T) {
	t.Parallel()

	f := loadTestFixtures(t)

	tests := []struct {
		name      string
		retailer  string
		query     string
		limit     int
		wantNames []string
	}{
		{
			name:     "ranks by shared words and keeps listing order on ties",
			retailer: "tesco",
			query:    "Heinz Baked Beans",
			limit:    8,
			wantNames: []string{
				"Heinz Baked Beanz 415g",
				"Tesco Baked Beans In Tomato Sauce 420g",
				"Heinz Baked Beanz 4 x 415g",
			},
		},
		{
			name:     "limit applies after ranking",
			retailer: "tesco",
			query:    "tesco baked beans",
			limit:    1,
			wantNames: []string{
				"Tesco Baked Beans In Tomato Sauce 420g",
			},
		},
		{
			name:      "no shared words",
			retailer:  "sainsburys",
			query:     "dishwasher tablets",
			limit:     8,
			wantNames: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src := retailer.NewStaticSource(tt.retailer, f[tt.retailer])
			got, err := src.Search(context.Background(), tt.query, tt.limit)
			require.NoError(t, err)

			names := make([]string, 0, len(got))
			for _, c := range got {
				names = append(names, c.Name)
				assert.Equal(t, tt.retailer, c.Retailer)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

func TestStaticSource_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := retailer.NewStaticSource("tesco", nil)
	_, err := src.Search(ctx, "beans", 8)
	require.ErrorIs(t, err, context.Canceled)
}

func TestStaticSource_Products(t *testing.T) {
	t.Parallel()

	src := retailer.NewStaticSource("tesco", loadTestFixtures(t)["tesco"])
	assert.Len(t, src.Products(""), 4)
	assert.Len(t, src.Products("HEINZ"), 2)
	assert.Empty(t, src.Products("bread"))
}

func TestStaticSources_SortedByName(t *testing.T) {
	t.Parallel()

	srcs := retailer.StaticSources(loadTestFixtures(t))
	require.Len(t, srcs, 2)
	assert.Equal(t, "sainsburys", srcs[0].Name())
	assert.Equal(t, "tesco", srcs[1].Name())
}
