package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestResultQuery_ToSQL(t *testing.T) {
	t.Parallel()

	runID := uuid.MustParse("5f0b8f5e-2b8c-4d1e-9a53-7a0f6f2b9c11")
	since := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		query         ResultQuery
		wantCountSQL  string
		wantArgs      []any
		wantDataHas   []string // substrings that must appear in dataSQL
		wantDataNotIn []string // substrings that must NOT appear
	}{
		{
			name:  "empty query uses defaults",
			query: ResultQuery{},
			wantDataHas: []string{
				"SELECT result FROM match_results",
				"ORDER BY matched_at DESC, id DESC",
				"LIMIT 50",
				"OFFSET 0",
			},
			wantDataNotIn: []string{"WHERE"},
			wantCountSQL:  "SELECT COUNT(*) FROM match_results",
		},
		{
			name:         "run filter",
			query:        ResultQuery{RunID: &runID},
			wantDataHas:  []string{"WHERE run_id = $1"},
			wantCountSQL: "SELECT COUNT(*) FROM match_results WHERE run_id = $1",
			wantArgs:     []any{runID},
		},
		{
			name:         "product key filter",
			query:        ResultQuery{ProductKey: ptr("heinz:415g:1")},
			wantDataHas:  []string{"WHERE product_key = $1"},
			wantCountSQL: "SELECT COUNT(*) FROM match_results WHERE product_key = $1",
			wantArgs:     []any{"heinz:415g:1"},
		},
		{
			name:         "found only adds no parameter",
			query:        ResultQuery{FoundOnly: true},
			wantDataHas:  []string{"WHERE found"},
			wantCountSQL: "SELECT COUNT(*) FROM match_results WHERE found",
		},
		{
			name: "combined filters number parameters in order",
			query: ResultQuery{
				Retailer:  ptr("tesco"),
				Level:     ptr("HIGH"),
				Since:     &since,
				FoundOnly: true,
			},
			wantDataHas: []string{
				"WHERE retailer = $1 AND level = $2 AND matched_at >= $3 AND found",
			},
			wantCountSQL: "SELECT COUNT(*) FROM match_results " +
				"WHERE retailer = $1 AND level = $2 AND matched_at >= $3 AND found",
			wantArgs: []any{"tesco", "HIGH", since},
		},
		{
			name:        "limit is capped",
			query:       ResultQuery{Limit: 10000},
			wantDataHas: []string{"LIMIT 500"},
		},
		{
			name:          "custom limit and offset",
			query:         ResultQuery{Limit: 20, Offset: 40},
			wantDataHas:   []string{"LIMIT 20", "OFFSET 40"},
			wantDataNotIn: []string{"LIMIT 50"},
		},
		{
			name:        "negative offset is clamped",
			query:       ResultQuery{Offset: -5},
			wantDataHas: []string{"OFFSET 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dataSQL, countSQL, args := tt.query.ToSQL()

			for _, s := range tt.wantDataHas {
				assert.Contains(t, dataSQL, s)
			}
			for _, s := range tt.wantDataNotIn {
				assert.NotContains(t, dataSQL, s)
			}
			if tt.wantCountSQL != "" {
				assert.Equal(t, tt.wantCountSQL, countSQL)
			}
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
