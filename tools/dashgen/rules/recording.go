package rules

// RecordingRules returns the 5m rates the dashboard and alerts share.
func RecordingRules() PrometheusRule {
	return resource("grocery-recording-rules", "grocery-recording",
		record("grocery:http_requests:rate5m",
			`sum(rate(grocery_http_requests_total[5m]))`),
		record("grocery:http_errors:rate5m",
			`sum(rate(grocery_http_requests_total{status=~"5.."}[5m]))`),
		record("grocery:matches:rate5m",
			`sum(rate(grocery_matches_total[5m]))`),
		record("grocery:matches_not_found:rate5m",
			`sum(rate(grocery_matches_total{level="NOT_FOUND"}[5m]))`),
		record("grocery:cache_lookups:rate5m",
			`sum(rate(grocery_cache_lookups_total[5m]))`),
		record("grocery:cache_hits:rate5m",
			`sum(rate(grocery_cache_lookups_total{result="hit"}[5m]))`),
		record("grocery:retailer_errors:rate5m",
			`sum(rate(grocery_retailer_requests_total{outcome="error"}[5m])) by (retailer)`),
	)
}
