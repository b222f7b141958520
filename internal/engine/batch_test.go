package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/grocery-price-tracker/internal/retailer"
	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

func staticSources() []retailer.Source {
	return []retailer.Source{
		retailer.NewStaticSource("tesco", []retailer.Product{
			{Name: "Heinz Baked Beans 415g", Price: "£1.40"},
			{Name: "Tesco Baked Beans 420g", Price: "32p"},
		}),
		retailer.NewStaticSource("sainsburys", []retailer.Product{
			{Name: "Tilda Pure Basmati Rice 1kg", Price: "£3.50", UnitPrice: "£3.50/kg"},
		}),
	}
}

func TestMatchBatch_PreservesOrder(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(staticSources(), WithConcurrency(3))

	queries := []domain.Query{
		{ID: "1", Name: "Heinz Baked Beans 415g"},
		{ID: "2", Name: "Tilda Pure Basmati Rice 1kg"},
		{ID: "3", Name: "Unicorn Steaks"},
		{ID: "4", Name: "Tesco Baked Beans 420g"},
	}

	results, err := m.MatchBatch(context.Background(), queries)
	require.NoError(t, err)
	require.Len(t, results, len(queries))

	for i, r := range results {
		assert.Equal(t, queries[i].ID, r.Query.ID)
	}

	assert.Equal(t, "tesco", results[0].Candidate.Retailer)
	assert.Equal(t, "Heinz Baked Beans 415g", results[0].Candidate.Name)
	assert.Equal(t, "sainsburys", results[1].Candidate.Retailer)
	assert.False(t, results[2].Found)
	assert.Equal(t, "Tesco Baked Beans 420g", results[3].Candidate.Name)
}

func TestMatchBatch_Empty(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(staticSources())
	results, err := m.MatchBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatchBatch_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := newTestMatcher(staticSources())
	_, err := m.MatchBatch(ctx, []domain.Query{{Name: "Heinz Baked Beans 415g"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestMatchEach_CallbackErrorStops(t *testing.T) {
	t.Parallel()

	m := newTestMatcher(staticSources(), WithConcurrency(1))

	errSink := errors.New("sink closed")
	var calls int
	err := m.MatchEach(context.Background(), []domain.Query{
		{Name: "Heinz Baked Beans 415g"},
		{Name: "Tilda Pure Basmati Rice 1kg"},
		{Name: "Tesco Baked Beans 420g"},
	}, func(_ int, _ *domain.MatchResult) error {
		calls++
		return errSink
	})

	require.ErrorIs(t, err, errSink)
	assert.Equal(t, 1, calls)
}
