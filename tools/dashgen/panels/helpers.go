// Package panels builds the Grafana panels for grocery-price-tracker
// metrics. Every query is scoped to the service's scrape job.
package panels

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Job is the scrape job label every query filters on.
const Job = `job="grocery-price-tracker"`

// DefaultDailyLimit matches the retailer rate limiter's default daily quota.
const DefaultDailyLimit = 2000

// Grid sizes on Grafana's 24 column layout.
const (
	StatHeight = 4
	TSHeight   = 8

	Quarter = 6
	Third   = 8
	Half    = 12
	Full    = 24
)

// Sel renders metric{job="grocery-price-tracker",extra...}.
func Sel(metric string, extra ...string) string {
	return metric + "{" + strings.Join(append([]string{Job}, extra...), ",") + "}"
}

// Quantile builds a histogram_quantile expression over a 5m rate, summed by
// le plus any extra labels.
func Quantile(q float64, metric string, by ...string) string {
	return fmt.Sprintf("histogram_quantile(%.2f, sum(rate(%s[5m])) by (%s))",
		q, Sel(metric+"_bucket"), strings.Join(append([]string{"le"}, by...), ", "))
}

// SumRate is sum(rate(metric[5m])) by the given labels.
func SumRate(metric string, by ...string) string {
	expr := "sum(rate(" + Sel(metric) + "[5m]))"
	if len(by) > 0 {
		expr += " by (" + strings.Join(by, ", ") + ")"
	}
	return expr
}

// Target builds a Prometheus query against the ${datasource} variable.
func Target(expr, legend, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legend).
		RefId(refID)
}

func datasource() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// step is one threshold boundary; the first step's value is ignored.
type step struct {
	from  float64
	color string
}

func thresholds(steps ...step) cog.Builder[dashboard.ThresholdsConfig] {
	out := make([]dashboard.Threshold, len(steps))
	for i, s := range steps {
		out[i] = dashboard.Threshold{Color: s.color}
		if i > 0 {
			out[i].Value = cog.ToPtr(s.from)
		}
	}
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(out)
}

func green() cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds(step{color: "green"})
}

// redBelow is red under v and green from v up.
func redBelow(v float64) cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds(step{color: "red"}, step{v, "green"})
}

// warnAt is green, then yellow from warn and red from crit.
func warnAt(warn, crit float64) cog.Builder[dashboard.ThresholdsConfig] {
	return thresholds(step{color: "green"}, step{warn, "yellow"}, step{crit, "red"})
}

func byThreshold() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdThresholds)
}

func classicPalette() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdPaletteClassic)
}

// series is the common timeseries shape: thin lines, light fill, one
// colour per series and a sorted multi-series tooltip. Callers set the span.
func series(title, description string) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(datasource()).
		Height(TSHeight).
		FillOpacity(10).
		LineWidth(2).
		DrawStyle(common.GraphDrawStyleLine).
		Tooltip(common.NewVizTooltipOptionsBuilder().
			Mode(common.TooltipDisplayModeMulti).
			Sort(common.SortOrderDescending)).
		Thresholds(green()).
		ColorScheme(classicPalette())
}

// withTableLegend adds a bottom table legend with mean and max columns.
func withTableLegend(p *timeseries.PanelBuilder) *timeseries.PanelBuilder {
	return p.Legend(common.NewVizLegendOptionsBuilder().
		DisplayMode(common.LegendDisplayModeTable).
		Placement(common.LegendPlacementBottom).
		Calcs([]string{"mean", "max"}))
}

// single is the common stat shape: one value, coloured by thresholds.
// Callers set the size.
func single(title, description string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(datasource()).
		ColorScheme(byThreshold()).
		GraphMode(common.BigValueGraphModeNone)
}

// alarm fills the stat background with its threshold colour.
func alarm(p *stat.PanelBuilder) *stat.PanelBuilder {
	return p.ColorMode(common.BigValueColorModeBackground)
}
