package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

func probe(title, description, metric string) *stat.PanelBuilder {
	return alarm(single(title, description)).
		Height(StatHeight).
		Span(Quarter).
		WithTarget(Target(Sel(metric), "", "A")).
		Thresholds(redBelow(1)).
		TextMode(common.BigValueTextModeValue)
}

// HealthzStat shows the liveness probe result.
func HealthzStat() *stat.PanelBuilder {
	return probe("Healthz", "Liveness probe (1 = ok, 0 = failing)", "grocery_healthz_up")
}

// ReadyzStat shows the readiness probe result.
func ReadyzStat() *stat.PanelBuilder {
	return probe("Readyz", "Readiness probe (1 = ready, 0 = database unreachable)", "grocery_readyz_up")
}

// FoundRatioStat shows the share of cascade runs in the last hour that
// found a listing.
func FoundRatioStat() *stat.PanelBuilder {
	notFound := `sum(increase(` + Sel("grocery_matches_total", `level="NOT_FOUND"`) + `[1h]))`
	all := `sum(increase(` + Sel("grocery_matches_total") + `[1h]))`
	return alarm(single("Found (1h)", "Share of cascade runs that produced a match")).
		Height(StatHeight).
		Span(Quarter).
		WithTarget(Target("1 - "+notFound+" / "+all, "", "A")).
		Unit("percentunit").
		Thresholds(redBelow(0.7))
}

// UptimeStat shows time since process start.
func UptimeStat() *stat.PanelBuilder {
	return single("Uptime", "Time since process start").
		Height(StatHeight).
		Span(Quarter).
		WithTarget(Target("time() - "+Sel("process_start_time_seconds"), "", "A")).
		Unit("s").
		Thresholds(green())
}
