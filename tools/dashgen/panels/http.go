package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

const httpDuration = "grocery_http_request_duration_seconds"

// RequestRate charts API requests per second. Probe and /metrics traffic
// is not counted by the middleware.
func RequestRate() *timeseries.PanelBuilder {
	return withTableLegend(series("Request Rate", "API requests per second, probes excluded")).
		Span(Third).
		WithTarget(Target(`grocery:http_requests:rate5m`, "req/s", "A")).
		Unit("reqps")
}

// LatencyPercentiles charts p50, p95 and p99 request latency.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return withTableLegend(series("Latency Percentiles", "API request duration percentiles")).
		Span(Third).
		WithTarget(Target(Quantile(0.50, httpDuration), "p50", "A")).
		WithTarget(Target(Quantile(0.95, httpDuration), "p95", "B")).
		WithTarget(Target(Quantile(0.99, httpDuration), "p99", "C")).
		Unit("s")
}

// ErrorRate charts 5xx responses as a percentage of all requests.
func ErrorRate() *timeseries.PanelBuilder {
	return series("Error Rate %", "5xx responses as a percentage of API requests").
		Span(Third).
		WithTarget(Target(`grocery:http_errors:rate5m / grocery:http_requests:rate5m * 100`, "error %", "A")).
		Unit("percent").
		Thresholds(warnAt(1, 5)).
		ColorScheme(byThreshold())
}
