package rules

// AlertRules returns the operational alerts for the service.
func AlertRules() PrometheusRule {
	return resource("grocery-alerts", "grocery-alerts",
		alert("GroceryDown", critical,
			`absent(up{job="grocery-price-tracker"})`, "2m",
			"Grocery Price Tracker is down",
			"The grocery-price-tracker job has been absent for more than 2 minutes."),
		alert("GroceryReadinessDown", critical,
			`grocery_readyz_up == 0`, "2m",
			"Grocery Price Tracker is not ready",
			"Readiness has failed for 2 minutes; the database is likely unreachable."),
		alert("GroceryHighErrorRate", warning,
			`grocery:http_errors:rate5m / grocery:http_requests:rate5m > 0.05`, "5m",
			"High API error rate",
			"More than 5% of API requests returned 5xx over the last 5 minutes."),
		alert("GroceryNotFoundRateHigh", warning,
			`grocery:matches_not_found:rate5m / grocery:matches:rate5m > 0.5`, "15m",
			"Most products are not being matched",
			"Over half of cascade runs ended NOT_FOUND for 15 minutes. A retailer search may be returning empty pages."),
		alert("GroceryRetailerErrors", warning,
			`grocery:retailer_errors:rate5m > 0.1`, "10m",
			"Retailer {{ $labels.retailer }} searches are failing",
			"Searches against {{ $labels.retailer }} have errored at more than 0.1/s for 10 minutes."),
		alert("GroceryRetailerLimitReached", warning,
			`increase(grocery_retailer_daily_limit_hits_total[5m]) > 0`, "",
			"Retailer {{ $labels.retailer }} daily limit reached",
			"Searches against {{ $labels.retailer }} are refused until the rate limit window resets."),
		alert("GroceryScheduledRunFailing", warning,
			`increase(grocery_scheduled_run_failures_total[1h]) > 0`, "",
			"Scheduled price refresh failed",
			"A scheduled refresh failed in the last hour; stored prices are going stale."),
	)
}
