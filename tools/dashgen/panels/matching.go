package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/bargauge"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// MatchesByLevel charts cascade results per second by confidence level.
func MatchesByLevel() *timeseries.PanelBuilder {
	return withTableLegend(series("Matches by Level", "Cascade results per second by confidence level")).
		Span(Half).
		WithTarget(Target(SumRate("grocery_matches_total", "level"), "{{level}}", "A")).
		Unit("ops").
		FillOpacity(30).
		LineWidth(1)
}

// MatchLatency charts cascade duration. Cache hits are not observed.
func MatchLatency() *timeseries.PanelBuilder {
	const metric = "grocery_match_duration_seconds"
	return withTableLegend(series("Match Duration", "Time to run the cascade for one query, cache hits excluded")).
		Span(Half).
		WithTarget(Target(Quantile(0.50, metric), "p50", "A")).
		WithTarget(Target(Quantile(0.95, metric), "p95", "B")).
		Unit("s")
}

// CascadeStates charts how often each search strategy runs. A rising
// fallback share means the standard search is missing.
func CascadeStates() *timeseries.PanelBuilder {
	return series("Cascade States", "Search strategies attempted per second").
		Span(Half).
		WithTarget(Target(SumRate("grocery_cascade_states_total", "strategy"), "{{strategy}}", "A")).
		Unit("ops")
}

// ValidationIssues charts price and quantity sanity issues.
func ValidationIssues() *timeseries.PanelBuilder {
	return series("Validation Issues", "Advisory issues raised on matched results").
		Span(Half).
		WithTarget(Target(SumRate("grocery_validation_issues_total"), "issues/s", "A"))
}

// ConfidenceDistribution shows found-match confidence per histogram bucket
// over the last hour.
func ConfidenceDistribution() *bargauge.PanelBuilder {
	return bargauge.NewPanelBuilder().
		Title("Confidence Distribution").
		Description("Confidence of found matches (0-1)").
		Datasource(datasource()).
		Height(TSHeight).
		Span(Full).
		WithTarget(Target(`sum(increase(`+Sel("grocery_confidence_distribution_bucket")+`[1h])) by (le)`, "{{le}}", "A")).
		Orientation(common.VizOrientationHorizontal).
		Min(0).
		Thresholds(green()).
		ColorScheme(classicPalette())
}
