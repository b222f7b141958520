package main

import "errors"

// KnownMetrics is the set of metric names exported by grocery-price-tracker
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"grocery_http_request_duration_seconds": true,
	"grocery_http_requests_total":           true,

	// Health metrics.
	"grocery_healthz_up": true,
	"grocery_readyz_up":  true,

	// Matching metrics.
	"grocery_matches_total":           true,
	"grocery_match_duration_seconds":  true,
	"grocery_cascade_states_total":    true,
	"grocery_confidence_distribution": true,
	"grocery_validation_issues_total": true,

	// Cache metrics.
	"grocery_cache_lookups_total":        true,
	"grocery_cache_write_failures_total": true,

	// Retailer metrics.
	"grocery_retailer_requests_total":           true,
	"grocery_retailer_request_duration_seconds": true,
	"grocery_retailer_candidates_total":         true,
	"grocery_retailer_daily_usage":              true,
	"grocery_retailer_daily_limit_hits_total":   true,

	// Batch and schedule metrics.
	"grocery_batch_rows_total":                     true,
	"grocery_scheduled_runs_total":                 true,
	"grocery_scheduled_run_failures_total":         true,
	"grocery_last_scheduled_run_timestamp_seconds": true,

	// Recording rules.
	"grocery:http_requests:rate5m":     true,
	"grocery:http_errors:rate5m":       true,
	"grocery:matches:rate5m":           true,
	"grocery:matches_not_found:rate5m": true,
	"grocery:cache_lookups:rate5m":     true,
	"grocery:cache_hits:rate5m":        true,
	"grocery:retailer_errors:rate5m":   true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
