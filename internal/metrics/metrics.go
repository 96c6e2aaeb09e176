// Gravitus - Workout Analytics and Strength Progress Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/gravitus

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for:
// - Sync stream progress and failures
// - Conditional resource refreshes
// - Feed image prefetch
// - API endpoint latency and throughput
// - Remote-client circuit breaker state

var (
	// Sync Metrics
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gravitus_sync_duration_seconds",
			Help:    "Duration of full sync operations in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
	)

	SyncBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gravitus_sync_batch_size",
			Help:    "Number of records returned per sync page",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250},
		},
	)

	SyncRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitus_sync_records_total",
			Help: "Total records applied to the local store by sync",
		},
		[]string{"stream", "action"}, // action: "upsert" or "delete"
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitus_sync_errors_total",
			Help: "Total sync stream failures",
		},
		[]string{"stream"},
	)

	SyncRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitus_sync_runs_total",
			Help: "Total sync invocations by outcome",
		},
		[]string{"outcome"}, // "success" or "failure"
	)

	// Conditional Resource Refresh Metrics
	ResourceRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitus_resource_refresh_total",
			Help: "Conditional singleton resource refreshes by result",
		},
		[]string{"resource", "result"}, // result: "updated", "not_modified", "error"
	)

	// Image Prefetch Metrics
	ImagePrefetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitus_image_prefetch_total",
			Help: "Feed image prefetch attempts by result",
		},
		[]string{"result"}, // "stored", "cached", "error"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitus_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gravitus_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gravitus_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitus_circuit_breaker_requests_total",
			Help: "Circuit breaker request outcomes",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gravitus_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)
)

// RecordSyncRun records the duration and outcome of one SyncAll invocation.
func RecordSyncRun(duration time.Duration, success bool) {
	SyncDuration.Observe(duration.Seconds())
	outcome := "failure"
	if success {
		outcome = "success"
	}
	SyncRuns.WithLabelValues(outcome).Inc()
}
