// Package metrics defines Prometheus metrics for grocery-price-tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grocery"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)

// Matching metrics.
var (
	MatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "matches_total",
		Help:      "Total number of match decisions by confidence level and cascade strategy.",
	}, []string{"level", "strategy"})

	MatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "match_duration_seconds",
		Help:      "Duration of a full match cascade in seconds.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	CascadeStatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cascade_states_total",
		Help:      "Total number of cascade states entered.",
	}, []string{"strategy"})

	ConfidenceDistribution = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "confidence_distribution",
		Help:      "Distribution of winning confidence scores.",
		Buckets:   prometheus.LinearBuckets(0, 0.1, 11), // 0, 0.1, ..., 1.0
	})

	ValidationIssuesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_issues_total",
		Help:      "Total number of advisory price validation issues raised.",
	})
)

// Cache metrics.
var (
	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_lookups_total",
		Help:      "Total number of result cache lookups by outcome (hit, miss, error).",
	}, []string{"result"})

	CacheWriteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_write_failures_total",
		Help:      "Total number of failed result cache writes.",
	})
)

// Retailer metrics.
var (
	RetailerRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retailer_requests_total",
		Help:      "Total retailer search requests by outcome (ok, error, rate_limited).",
	}, []string{"retailer", "outcome"})

	RetailerRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "retailer_request_duration_seconds",
		Help:      "Duration of retailer search requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"retailer"})

	RetailerCandidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retailer_candidates_total",
		Help:      "Total candidate listings returned by retailers.",
	}, []string{"retailer"})

	RetailerDailyUsage = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "retailer_daily_usage",
		Help:      "Current daily request count within the rolling 24-hour window.",
	}, []string{"retailer"})

	RetailerDailyLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retailer_daily_limit_hits_total",
		Help:      "Total number of times a retailer's daily request limit was reached.",
	}, []string{"retailer"})
)

// Batch and schedule metrics.
var (
	BatchRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_rows_total",
		Help:      "Total batch rows processed by status (found, not_found, error, skipped).",
	}, []string{"status"})

	ScheduledRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduled_runs_total",
		Help:      "Total number of scheduled products file refreshes.",
	})

	ScheduledRunFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduled_run_failures_total",
		Help:      "Total number of failed scheduled refreshes.",
	})

	LastScheduledRunTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_scheduled_run_timestamp_seconds",
		Help:      "Unix time of the last successful scheduled refresh.",
	})
)
