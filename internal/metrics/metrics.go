// Marquee - Media Catalog Access Layer
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/tomtom215/marquee/internal/models"
)

var (
	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	// Store Metrics
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "store_operation_duration_seconds",
			Help:    "Duration of document store operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	StoreOperationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_operation_errors_total",
			Help: "Total number of failed document store operations",
		},
		[]string{"operation", "error_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Account Metrics
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_attempts_total",
			Help: "Total number of registration and login attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the active API request gauge
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordStoreOperation records the latency of a store call and, on failure,
// an error counted under a bounded error_type label.
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreOperationErrors.WithLabelValues(operation, classifyStoreError(err)).Inc()
	}
}

// classifyStoreError keeps the error_type label cardinality fixed.
func classifyStoreError(err error) string {
	switch {
	case errors.Is(err, models.ErrStoreUnavailable):
		return "unavailable"
	case errors.Is(err, models.ErrNotFound):
		return "not_found"
	default:
		return "other"
	}
}

// SetCircuitBreakerState records a circuit breaker transition.
// state follows the gauge encoding: 0=closed, 1=half-open, 2=open.
func SetCircuitBreakerState(name, from, to string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordAuthAttempt counts a register or login attempt.
func RecordAuthAttempt(operation, outcome string) {
	AuthAttempts.WithLabelValues(operation, outcome).Inc()
}
