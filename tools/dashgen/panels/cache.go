package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CacheHitRatio shows the share of lookups answered from the cache.
func CacheHitRatio() *stat.PanelBuilder {
	return single("Cache Hit Ratio", "Share of lookups answered from the match cache").
		Height(TSHeight).
		Span(Third).
		WithTarget(Target(`grocery:cache_hits:rate5m / grocery:cache_lookups:rate5m`, "", "A")).
		Unit("percentunit").
		Thresholds(green()).
		GraphMode(common.BigValueGraphModeArea)
}

// CacheLookups charts lookups by result (hit, miss, error).
func CacheLookups() *timeseries.PanelBuilder {
	return series("Cache Lookups", "Cache lookups per second by result").
		Span(Third).
		WithTarget(Target(SumRate("grocery_cache_lookups_total", "result"), "{{result}}", "A")).
		Unit("ops")
}

// CacheWriteFailures counts results that could not be cached in the last
// hour.
func CacheWriteFailures() *stat.PanelBuilder {
	return alarm(single("Cache Write Failures (1h)", "Results that could not be written back to the cache")).
		Height(TSHeight).
		Span(Third).
		WithTarget(Target(`increase(`+Sel("grocery_cache_write_failures_total")+`[1h])`, "", "A")).
		Thresholds(warnAt(1, 10))
}
