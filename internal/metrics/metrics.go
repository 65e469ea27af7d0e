// CamControl - Security Camera and DVR Mapping Dashboard
// Copyright 2026 coff33ninja
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/coff33ninja/cam-control

// Package metrics provides Prometheus instrumentation for:
//   - Database query performance (DuckDB)
//   - API endpoint latency and throughput
//   - Coverage and overlap computation
//   - Reachability probes
//   - Geocoding lookups and circuit breaker state
//   - WebSocket connections
//   - NATS event processing
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

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

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Coverage Engine Metrics
	CoverageComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "coverage_computations_total",
			Help: "Total number of coverage polygon computations",
		},
		[]string{"area_type"}, // "circular", "directional"
	)

	CoverageComputationErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "coverage_computation_errors_total",
			Help: "Total number of cameras skipped due to invalid coverage parameters",
		},
	)

	OverlapScanDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "overlap_scan_duration_seconds",
			Help:    "Duration of full pairwise overlap scans in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	OverlapPairsFound = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "overlap_pairs_found",
			Help: "Number of overlapping camera pairs found by the last scan",
		},
	)

	// Reachability Monitor Metrics
	ProbesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_probes_total",
			Help: "Total number of reachability probes",
		},
		[]string{"entity_type", "result"}, // result: "online", "offline"
	)

	ProbeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "monitor_probe_duration_seconds",
			Help:    "Duration of TCP reachability probes in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	StatusTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "monitor_status_transitions_total",
			Help: "Total number of camera/DVR status transitions",
		},
		[]string{"entity_type", "to_status"},
	)

	// Geocoding Metrics
	GeocodeLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_lookups_total",
			Help: "Total number of geocoding lookups",
		},
		[]string{"service", "result"}, // service: "nominatim", "ipapi"; result: "success", "failure", "rejected"
	)

	GeocodeLookupDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geocode_lookup_duration_seconds",
			Help:    "Duration of geocoding API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// WebSocket Metrics
	WSConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "websocket_connections",
			Help: "Current number of active WebSocket connections",
		},
	)

	WSMessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "websocket_messages_sent_total",
			Help: "Total number of WebSocket messages sent",
		},
	)

	WSErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "websocket_errors_total",
			Help: "Total number of WebSocket errors",
		},
		[]string{"error_type"},
	)

	// NATS Event Processing Metrics
	NATSMessagesPublished = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_published_total",
			Help: "Total number of messages published to NATS",
		},
	)

	NATSMessagesConsumed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_consumed_total",
			Help: "Total number of messages consumed from NATS",
		},
	)

	NATSMessagesParseFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "nats_messages_parse_failed_total",
			Help: "Total number of messages that failed to parse",
		},
	)

	NATSProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "nats_processing_duration_seconds",
			Help:    "Duration of NATS message processing in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordDBQuery records a database query metric.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
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

// RecordCoverageComputation records one coverage polygon computation.
func RecordCoverageComputation(areaType string) {
	CoverageComputations.WithLabelValues(areaType).Inc()
}

// RecordOverlapScan records one full pairwise overlap scan.
func RecordOverlapScan(duration time.Duration, pairsFound int) {
	OverlapScanDuration.Observe(duration.Seconds())
	OverlapPairsFound.Set(float64(pairsFound))
}

// RecordProbe records one reachability probe.
func RecordProbe(entityType string, online bool, duration time.Duration) {
	result := "offline"
	if online {
		result = "online"
	}
	ProbesTotal.WithLabelValues(entityType, result).Inc()
	ProbeDuration.Observe(duration.Seconds())
}

// RecordStatusTransition records a camera/DVR status change.
func RecordStatusTransition(entityType, toStatus string) {
	StatusTransitions.WithLabelValues(entityType, toStatus).Inc()
}

// RecordGeocodeLookup records a geocoding API call and its outcome.
func RecordGeocodeLookup(service, result string, duration time.Duration) {
	GeocodeLookups.WithLabelValues(service, result).Inc()
	GeocodeLookupDuration.WithLabelValues(service).Observe(duration.Seconds())
}
