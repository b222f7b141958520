package similarity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/grocery-price-tracker/pkg/extract"
	"github.com/donaldgifford/grocery-price-tracker/pkg/normalize"
	"github.com/donaldgifford/grocery-price-tracker/pkg/similarity"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

var (
	testNormalizer = normalize.MustNew(nil)
	testExtractor  = extract.MustNew(extract.DefaultRules())
)

func profile(raw string) *domain.Profile {
	n := testNormalizer.Normalize(raw)
	return &domain.Profile{Raw: raw, Normalized: n, Attributes: testExtractor.Extract(n)}
}

func adjustmentNames(s domain.Similarity) []string {
	names := make([]string, 0, len(s.Adjustments))
	for _, a := range s.Adjustments {
		names = append(names, a.Name)
	}
	return names
}

func TestTokenScorer_Score(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		query     string
		candidate string
		wantScore float64
		wantAdj   []string
	}{
		{
			name:      "identical after noise removal",
			query:     "Heinz Baked Beans 415g",
			candidate: "Heinz Baked Beans 415g Clubcard Price",
			wantScore: 1.0,
			wantAdj:   []string{},
		},
		{
			name:      "brand mismatch disqualifies despite overlap",
			query:     "Heinz Baked Beans 415g",
			candidate: "Branston Baked Beans 415g",
			wantScore: 0,
			wantAdj:   []string{similarity.AdjBrand},
		},
		{
			name:      "own brand against manufacturer",
			query:     "Heinz Baked Beans 415g",
			candidate: "Tesco Baked Beans 420g",
			wantScore: 0,
			wantAdj:   []string{similarity.AdjBrand},
		},
		{
			name:      "unknown query brand has no brand penalty",
			query:     "Baked Beans 415g",
			candidate: "Heinz Baked Beans 415g",
			wantScore: 0.8 + 0.2*2.0/3.0,
			wantAdj:   []string{},
		},
		{
			name:      "multipack against single",
			query:     "Heinz Beanz 415g",
			candidate: "Heinz Beanz 6 x 415g",
			wantScore: 1 - (0.5 + 0.5*5.0/6.0),
			wantAdj:   []string{similarity.AdjMultipack},
		},
		{
			name:      "equal multipacks match",
			query:     "Heinz Beanz 6 x 415g",
			candidate: "Heinz Beanz 415g x 6",
			wantScore: 1.0,
			wantAdj:   []string{},
		},
		{
			name:      "product type mismatch",
			query:     "Heinz Beanz",
			candidate: "Heinz Beanz Curry",
			wantScore: 0.8 + 0.2*2.0/3.0 - 0.9,
			wantAdj:   []string{similarity.AdjProductType},
		},
		{
			name:      "one sided variant",
			query:     "Heinz Baked Beans Reduced Sugar",
			candidate: "Heinz Baked Beans",
			wantScore: 0.8*3.0/5.0 + 0.2*3.0/5.0 - 0.2,
			wantAdj:   []string{similarity.AdjVariantMismatch},
		},
		{
			name:      "shared variant clamps at one",
			query:     "Heinz Baked Beans Reduced Sugar",
			candidate: "Heinz Baked Beans Reduced Sugar 415g",
			wantScore: 1.0,
			wantAdj:   []string{similarity.AdjVariantMatch},
		},
		{
			name:      "pasta sauce against sauce of the same product",
			query:     "Dolmio Bolognese Sauce 500g",
			candidate: "Dolmio Bolognese Pasta Sauce 500g",
			wantScore: 0.8 + 0.2*3.0/4.0,
			wantAdj:   []string{},
		},
		{
			name:      "combined reduced sugar and salt marks both variants",
			query:     "Heinz Baked Beans Reduced Sugar and Salt",
			candidate: "Heinz Baked Beans Reduced Sugar and Salt 415g",
			wantScore: 1.0,
			wantAdj:   []string{similarity.AdjVariantMatch, similarity.AdjVariantMatch},
		},
		{
			name:      "joined multipack size is not a descriptive word",
			query:     "Heinz Beanz 4 x 415g",
			candidate: "Heinz Beanz 4x415g",
			wantScore: 1.0,
			wantAdj:   []string{},
		},
		{
			name:      "fuzzy spelling",
			query:     "Heinz Baked Beans",
			candidate: "Heinz Baked Beanz",
			wantScore: 1.0,
			wantAdj:   []string{},
		},
		{
			name:      "empty query",
			query:     "",
			candidate: "Heinz Baked Beans",
			wantScore: 0,
			wantAdj:   []string{},
		},
	}

	s := similarity.NewTokenScorer()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := s.Score(profile(tt.query), profile(tt.candidate))

			assert.InDelta(t, tt.wantScore, got.Score, 1e-9)
			assert.Equal(t, tt.wantAdj, adjustmentNames(got))
			assert.GreaterOrEqual(t, got.Score, 0.0)
			assert.LessOrEqual(t, got.Score, 1.0)
		})
	}
}

func TestTokenScorer_Deterministic(t *testing.T) {
	t.Parallel()

	s := similarity.NewTokenScorer()
	q := profile("Heinz Beanz Reduced Sugar 6 x 415g")
	c := profile("Heinz Baked Beanz Reduced Salt & Sugar 4 x 415g")

	first := s.Score(q, c)
	for range 100 {
		assert.Equal(t, first, s.Score(q, c))
	}
}

func TestTokenScorer_MultipackCeiling(t *testing.T) {
	t.Parallel()

	s := similarity.NewTokenScorer()
	single := profile("Heinz Beanz 415g")

	for _, multi := range []string{
		"Heinz Beanz 2 x 415g",
		"Heinz Beanz 4 x 415g",
		"Heinz Beanz 6 x 415g",
		"Heinz Beanz 415g x 24",
		"Heinz Beanz Multipack 415g",
	} {
		got := s.Score(single, profile(multi))
		assert.LessOrEqual(t, got.Score, 0.5, multi)
		assert.Contains(t, adjustmentNames(got), similarity.AdjMultipack, multi)

		// Symmetric in direction.
		got = s.Score(profile(multi), single)
		assert.LessOrEqual(t, got.Score, 0.5, multi)
	}
}

func TestTokenScorer_AdjustmentOrder(t *testing.T) {
	t.Parallel()

	s := similarity.NewTokenScorer()
	got := s.Score(
		profile("Heinz Beanz Reduced Sugar 415g"),
		profile("Branston Beans Curry 4 x 415g"),
	)

	assert.Equal(t, []string{
		similarity.AdjProductType,
		similarity.AdjMultipack,
		similarity.AdjVariantMismatch,
		similarity.AdjBrand,
	}, adjustmentNames(got))
	assert.InDelta(t, 0.0, got.Score, 1e-9)
	assert.Positive(t, got.Base)
}

func TestTokenOverlap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		q    []string
		c    []string
		want float64
	}{
		{name: "identical", q: []string{"heinz", "beans"}, c: []string{"heinz", "beans"}, want: 1.0},
		{name: "superset candidate", q: []string{"heinz", "beans"}, c: []string{"heinz", "beans", "in", "tomato"}, want: 0.8 + 0.2*2.0/4.0},
		{name: "disjoint", q: []string{"milk"}, c: []string{"bread"}, want: 0},
		{name: "empty query", q: nil, c: []string{"bread"}, want: 0},
		{name: "empty candidate", q: []string{"bread"}, c: nil, want: 0},
		{name: "containment", q: []string{"chocolate"}, c: []string{"chocolatey"}, want: 1.0},
		{name: "short tokens need exact match", q: []string{"tea"}, c: []string{"teas"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, similarity.TokenOverlap(tt.q, tt.c), 1e-9)
		})
	}
}

func TestContentTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"heinz", "beanz"}, similarity.ContentTokens("heinz beanz 6 x 415g pack of 4"))
	assert.Equal(t, []string{"baked", "beans", "tomato", "sauce"},
		similarity.ContentTokens("baked beans in tomato sauce beans"))
	assert.Empty(t, similarity.ContentTokens(""))
	assert.Empty(t, similarity.ContentTokens("415g 2l x12"))
	assert.Equal(t, []string{"heinz", "beanz"}, similarity.ContentTokens("heinz beanz 4x415g"))
	assert.Equal(t, []string{"coca", "cola"}, similarity.ContentTokens("coca cola 6x330ml"))
	assert.Empty(t, similarity.ContentTokens("4x1.5l 12x25cl"))
}

func TestClassifyProductType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text string
		want string
	}{
		{"heinz baked beans 415g", "beans"},
		{"heinz beanz", "beans"},
		{"heinz beanz curry", "curry"},
		{"heinz cream of tomato soup", "soup"},
		{"napolina chick peas 400g", "chickpeas"},
		{"cravendale semi skimmed milk 2l", "milk"},
		{"dolmio bolognese pasta sauce 500g", "sauce"},
		{"loyd grossman tomato and basil pasta sauce 350g", "sauce"},
		{"heinz baked beans in tomato sauce", "beans"},
		{"napolina penne pasta 500g", "pasta"},
		{"loose bananas", ""},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, similarity.ClassifyProductType(tt.text))
		})
	}
}

func TestVectorScorer(t *testing.T) {
	t.Parallel()

	corpus := []string{
		"Heinz Baked Beans",
		"Branston Baked Beans",
		"Tesco Baked Beans",
		"Heinz Tomato Soup",
	}
	v := similarity.NewVectorScorer(corpus)

	t.Run("identical scores one", func(t *testing.T) {
		t.Parallel()
		got := v.Score(profile("Heinz Baked Beans 415g"), profile("Heinz Baked Beans 415g"))
		assert.InDelta(t, 1.0, got.Score, 1e-9)
	})

	t.Run("rare tokens weigh more", func(t *testing.T) {
		t.Parallel()
		q := []string{"heinz", "beans"}
		assert.Greater(t, v.Cosine(q, []string{"heinz"}), v.Cosine(q, []string{"beans"}))
	})

	t.Run("brand mismatch still applies", func(t *testing.T) {
		t.Parallel()
		got := v.Score(profile("Heinz Baked Beans 415g"), profile("Branston Baked Beans 415g"))
		assert.InDelta(t, 0.0, got.Score, 1e-9)
		assert.Equal(t, []string{similarity.AdjBrand}, adjustmentNames(got))
	})

	t.Run("empty corpus is plain cosine", func(t *testing.T) {
		t.Parallel()
		plain := similarity.NewVectorScorer(nil)
		assert.InDelta(t, 2/(1.4142135623730951*1.7320508075688772),
			plain.Cosine([]string{"a", "b"}, []string{"a", "b", "c"}), 1e-9)
	})
}

func TestNew(t *testing.T) {
	t.Parallel()

	s, err := similarity.New("", nil)
	require.NoError(t, err)
	assert.IsType(t, &similarity.TokenScorer{}, s)

	s, err = similarity.New(similarity.KindVector, []string{"heinz beans"})
	require.NoError(t, err)
	assert.IsType(t, &similarity.VectorScorer{}, s)

	_, err = similarity.New("neural", nil)
	require.ErrorIs(t, err, similarity.ErrUnknownScorer)
}
