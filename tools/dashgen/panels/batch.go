package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// BatchRows charts CSV batch rows by status.
func BatchRows() *timeseries.PanelBuilder {
	return series("Batch Rows", "Batch rows per second by status (found, not_found, error, skipped)").
		Span(Third).
		WithTarget(Target(SumRate("grocery_batch_rows_total", "status"), "{{status}}", "A")).
		Unit("ops")
}

// LastScheduledRun shows time since the last successful refresh. The
// default interval is a day, so yellow means one run was missed.
func LastScheduledRun() *stat.PanelBuilder {
	return alarm(single("Last Refresh", "Time since the last successful scheduled refresh")).
		Height(TSHeight).
		Span(Third).
		WithTarget(Target("time() - "+Sel("grocery_last_scheduled_run_timestamp_seconds"), "", "A")).
		Unit("s").
		Thresholds(warnAt(26*3600, 48*3600))
}

// ScheduledRunFailures counts failed refreshes over the last week.
func ScheduledRunFailures() *stat.PanelBuilder {
	return alarm(single("Refresh Failures (7d)", "Scheduled refreshes that failed")).
		Height(TSHeight).
		Span(Third).
		WithTarget(Target(`increase(`+Sel("grocery_scheduled_run_failures_total")+`[7d])`, "", "A")).
		Thresholds(warnAt(1, 3))
}
