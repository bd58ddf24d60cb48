// Package observability exposes Prometheus metrics for the score
// pipeline and HTTP layer.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	readingsComputedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aura_api",
		Subsystem: "readings",
		Name:      "computed_total",
		Help:      "Number of daily energy readings computed, grouped by energy type.",
	}, []string{"energy_type"})

	readingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "aura_api",
		Subsystem: "readings",
		Name:      "compute_duration_seconds",
		Help:      "Wall time of full reading computations.",
		Buckets:   prometheus.DefBuckets,
	})

	logEntriesCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aura_api",
		Subsystem: "lifestyle",
		Name:      "entries_recorded_total",
		Help:      "Number of lifestyle log entries recorded, grouped by category.",
	}, []string{"category"})

	correlationRecomputeCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aura_api",
		Subsystem: "insights",
		Name:      "correlation_recomputes_total",
		Help:      "Number of correlation recompute runs, grouped by outcome.",
	}, []string{"outcome"})

	httpRequestsCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "aura_api",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Number of HTTP requests, grouped by method, route, and status class.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "aura_api",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	prometheus.MustRegister(
		readingsComputedCounter,
		readingDuration,
		logEntriesCounter,
		correlationRecomputeCounter,
		httpRequestsCounter,
		httpRequestDuration,
	)
}

// RecordReadingComputed counts one computed reading and its duration.
func RecordReadingComputed(energyType string, elapsed time.Duration) {
	readingsComputedCounter.WithLabelValues(energyType).Inc()
	readingDuration.Observe(elapsed.Seconds())
}

// RecordLogEntry counts one recorded lifestyle log entry.
func RecordLogEntry(category string) {
	logEntriesCounter.WithLabelValues(category).Inc()
}

// RecordCorrelationRecompute counts one recompute run.
// Outcome is "success" or "error".
func RecordCorrelationRecompute(outcome string) {
	correlationRecomputeCounter.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest counts one finished HTTP request and its latency.
func RecordHTTPRequest(method, route, status string, elapsed time.Duration) {
	httpRequestsCounter.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}
