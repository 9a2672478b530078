// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

// Package metrics defines Prometheus instrumentation for xbrld:
// validation outcomes and durations, message severities, engine health,
// staging hygiene, and API request metrics. Exposed on GET /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Validation outcome labels for ValidationsTotal.
const (
	OutcomeValid           = "valid"
	OutcomeInvalid         = "invalid"
	OutcomeStructuralError = "structural_error"
	OutcomeEngineError     = "engine_error"
)

var (
	// Validation Metrics
	ValidationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xbrld_validations_total",
			Help: "Total number of validation runs by outcome",
		},
		[]string{"outcome"},
	)

	ValidationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "xbrld_validation_duration_seconds",
			Help:    "Wall-clock duration of full validation runs in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300}, // Engine runs can take minutes
		},
	)

	ValidationMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xbrld_validation_messages_total",
			Help: "Total normalized validation messages by severity",
		},
		[]string{"severity"},
	)

	UnknownEngineLevels = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "xbrld_unknown_engine_levels_total",
			Help: "Engine log levels outside the known vocabulary (mapped to warning)",
		},
	)

	// Engine Metrics
	EngineFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "xbrld_engine_failures_total",
			Help: "Total engine invocations that failed outright",
		},
	)

	EngineBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "xbrld_engine_breaker_state",
			Help: "Engine circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)

	// Staging Metrics
	StagingFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "xbrld_staging_failures_total",
			Help: "Total failures writing staged temp files",
		},
	)

	CleanupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "xbrld_staging_cleanup_failures_total",
			Help: "Total failures removing staged temp files",
		},
	)

	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xbrld_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "xbrld_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 120, 300},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "xbrld_api_active_requests",
			Help: "Current number of active API requests",
		},
	)
)

// RecordValidation records one validation run.
func RecordValidation(outcome string, duration time.Duration) {
	ValidationsTotal.WithLabelValues(outcome).Inc()
	ValidationDuration.Observe(duration.Seconds())
}

// RecordMessages records normalized message counts per severity.
func RecordMessages(errors, warnings, info int) {
	ValidationMessages.WithLabelValues("error").Add(float64(errors))
	ValidationMessages.WithLabelValues("warning").Add(float64(warnings))
	ValidationMessages.WithLabelValues("info").Add(float64(info))
}

// RecordUnknownLevel records an engine level outside the known vocabulary.
func RecordUnknownLevel() {
	UnknownEngineLevels.Inc()
}

// RecordEngineFailure records a failed engine invocation.
func RecordEngineFailure() {
	EngineFailures.Inc()
}

// SetBreakerState updates the engine circuit breaker gauge.
func SetBreakerState(state float64) {
	EngineBreakerState.Set(state)
}

// RecordStagingFailure records a failed staged-file write.
func RecordStagingFailure() {
	StagingFailures.Inc()
}

// RecordCleanupFailure records a failed staged-file removal.
func RecordCleanupFailure() {
	CleanupFailures.Inc()
}

// RecordAPIRequest records an API request metric.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
