package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var known = map[string]bool{
	"grocery_matches_total":          true,
	"grocery_match_duration_seconds": true,
	"up":                             true,
}

func TestExpr(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		expr      string
		wantOk    bool
		wantWarns int
	}{
		{name: "known counter", expr: `sum(rate(grocery_matches_total[5m])) by (level)`, wantOk: true},
		{name: "histogram bucket", expr: `histogram_quantile(0.95, sum(rate(grocery_match_duration_seconds_bucket[5m])) by (le))`, wantOk: true},
		{name: "absent up", expr: `absent(up{job="grocery-price-tracker"})`, wantOk: true},
		{name: "unknown metric", expr: `rate(grocery_unknown_total[5m])`, wantOk: true, wantWarns: 1},
		{name: "parse error", expr: `sum(rate(grocery_matches_total[5m])`, wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := Expr(tt.expr, known)
			assert.Equal(t, tt.wantOk, res.Ok(), "errors: %v", res.Errors)
			assert.Len(t, res.Warnings, tt.wantWarns)
		})
	}
}

func TestDashboard_WalksNestedTargets(t *testing.T) {
	t.Parallel()

	dash := map[string]any{
		"panels": []any{
			map[string]any{"panels": []any{
				map[string]any{"targets": []any{map[string]any{"expr": "grocery_matches_total"}}},
				map[string]any{"targets": []any{map[string]any{"expr": "nope_total"}}},
			}},
		},
	}
	res := Dashboard(dash, known)
	assert.True(t, res.Ok())
	assert.Len(t, res.Warnings, 1)
}

func TestDashboard_NoExprs(t *testing.T) {
	t.Parallel()
	assert.False(t, Dashboard(map[string]any{"title": "empty"}, known).Ok())
}
