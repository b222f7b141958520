// Package dashboards lays panels out into Grafana dashboards.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/grocery-price-tracker/tools/dashgen/panels"
)

type row struct {
	title  string
	panels []cog.Builder[dashboard.Panel]
}

func overviewRows() []row {
	return []row{
		{"Overview", []cog.Builder[dashboard.Panel]{
			panels.HealthzStat(), panels.ReadyzStat(), panels.FoundRatioStat(), panels.UptimeStat(),
		}},
		{"HTTP", []cog.Builder[dashboard.Panel]{
			panels.RequestRate(), panels.LatencyPercentiles(), panels.ErrorRate(),
		}},
		{"Matching", []cog.Builder[dashboard.Panel]{
			panels.MatchesByLevel(), panels.MatchLatency(), panels.CascadeStates(),
			panels.ValidationIssues(), panels.ConfidenceDistribution(),
		}},
		{"Cache", []cog.Builder[dashboard.Panel]{
			panels.CacheHitRatio(), panels.CacheLookups(), panels.CacheWriteFailures(),
		}},
		{"Retailers", []cog.Builder[dashboard.Panel]{
			panels.RetailerRequests(), panels.RetailerLatency(), panels.DailyUsage(), panels.LimitHits(),
		}},
		{"Batch & Schedule", []cog.Builder[dashboard.Panel]{
			panels.BatchRows(), panels.LastScheduledRun(), panels.ScheduledRunFailures(),
		}},
	}
}

// BuildOverview builds the single service dashboard, one row per concern.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Grocery Overview").
		Uid("grocery-overview").
		Tags([]string{"grocery", "grocery-price-tracker"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(dashboard.NewDatasourceVariableBuilder("datasource").
			Label("Datasource").
			Type("prometheus"))

	for _, r := range overviewRows() {
		rb := dashboard.NewRowBuilder(r.title)
		for _, p := range r.panels {
			rb.WithPanel(p)
		}
		b.WithRow(rb)
	}
	return b
}
