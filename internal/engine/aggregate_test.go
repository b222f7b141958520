package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/donaldgifford/grocery-price-tracker/pkg/types"
)

func scored(retailer string, confidence float64) *domain.ScoredCandidate {
	return &domain.ScoredCandidate{
		Candidate: domain.Candidate{Name: retailer + " listing", Retailer: retailer},
		Score:     domain.MatchScore{Confidence: confidence},
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	priority := NewPriority("tesco", "morrisons", "ocado", "sainsburys", "asda", "wilko", "coop")

	tests := []struct {
		name         string
		best         map[string]*domain.ScoredCandidate
		wantRetailer string
		wantNil      bool
	}{
		{
			name:    "empty input",
			best:    map[string]*domain.ScoredCandidate{},
			wantNil: true,
		},
		{
			name:    "only nil entries",
			best:    map[string]*domain.ScoredCandidate{"tesco": nil},
			wantNil: true,
		},
		{
			name: "highest confidence wins regardless of priority",
			best: map[string]*domain.ScoredCandidate{
				"tesco": scored("tesco", 0.6),
				"asda":  scored("asda", 0.9),
			},
			wantRetailer: "asda",
		},
		{
			name: "exact tie goes to priority",
			best: map[string]*domain.ScoredCandidate{
				"sainsburys": scored("sainsburys", 0.8),
				"morrisons":  scored("morrisons", 0.8),
				"coop":       scored("coop", 0.8),
			},
			wantRetailer: "morrisons",
		},
		{
			name: "known retailer beats unknown on tie",
			best: map[string]*domain.ScoredCandidate{
				"aldi": scored("aldi", 0.5),
				"coop": scored("coop", 0.5),
			},
			wantRetailer: "coop",
		},
		{
			name: "unknown retailers tie by name",
			best: map[string]*domain.ScoredCandidate{
				"lidl":     scored("lidl", 0.5),
				"aldi":     scored("aldi", 0.5),
				"waitrose": scored("waitrose", 0.5),
			},
			wantRetailer: "aldi",
		},
		{
			name: "nil entries are skipped",
			best: map[string]*domain.ScoredCandidate{
				"tesco": nil,
				"asda":  scored("asda", 0.3),
			},
			wantRetailer: "asda",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Aggregate(tt.best, priority)
			if tt.wantNil {
				assert.Nil(t, got)
				return
			}
			if assert.NotNil(t, got) {
				assert.Equal(t, tt.wantRetailer, got.Candidate.Retailer)
			}
		})
	}
}

func TestAggregate_Deterministic(t *testing.T) {
	t.Parallel()

	best := map[string]*domain.ScoredCandidate{
		"tesco":      scored("tesco", 0.7),
		"sainsburys": scored("sainsburys", 0.7),
		"ocado":      scored("ocado", 0.7),
		"unknown":    scored("unknown", 0.7),
	}
	p := NewPriority("tesco", "ocado", "sainsburys")

	for range 50 {
		assert.Equal(t, "tesco", Aggregate(best, p).Candidate.Retailer)
	}
}

func TestPriority_Sort(t *testing.T) {
	t.Parallel()

	names := []string{"zeta", "sainsburys", "aldi", "tesco", "ocado"}
	NewPriority("tesco", "ocado", "sainsburys", "tesco").Sort(names)
	assert.Equal(t, []string{"tesco", "ocado", "sainsburys", "aldi", "zeta"}, names)
}
