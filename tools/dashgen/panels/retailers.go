package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RetailerRequests charts searches per retailer and outcome.
func RetailerRequests() *timeseries.PanelBuilder {
	return withTableLegend(series("Retailer Requests", "Search requests per second by retailer and outcome")).
		Span(Half).
		WithTarget(Target(SumRate("grocery_retailer_requests_total", "retailer", "outcome"), "{{retailer}} {{outcome}}", "A")).
		Unit("reqps")
}

// RetailerLatency charts p95 search latency per retailer.
func RetailerLatency() *timeseries.PanelBuilder {
	return series("Retailer Latency p95", "95th percentile search latency by retailer").
		Span(Half).
		WithTarget(Target(Quantile(0.95, "grocery_retailer_request_duration_seconds", "retailer"), "{{retailer}}", "A")).
		Unit("s")
}

// DailyUsage charts each retailer's request count in the current quota
// window.
func DailyUsage() *timeseries.PanelBuilder {
	return series("Daily Usage vs Limit",
		fmt.Sprintf("Requests in the current rate limit window (default limit %d)", DefaultDailyLimit)).
		Span(Half).
		WithTarget(Target(Sel("grocery_retailer_daily_usage"), "{{retailer}}", "A")).
		Thresholds(warnAt(DefaultDailyLimit*0.8, DefaultDailyLimit)).
		ColorScheme(byThreshold())
}

// LimitHits counts searches refused by a daily limit in the last day.
func LimitHits() *stat.PanelBuilder {
	return alarm(single("Limit Hits (24h)", "Searches refused because a retailer's daily limit was reached")).
		Height(TSHeight).
		Span(Half).
		WithTarget(Target(`sum(increase(`+Sel("grocery_retailer_daily_limit_hits_total")+`[24h])) by (retailer)`, "{{retailer}}", "A")).
		Thresholds(warnAt(1, 3)).
		GraphMode(common.BigValueGraphModeArea)
}
