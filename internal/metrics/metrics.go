// Package metrics exposes the catalog's prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds every collector the catalog processes report to
type Metrics struct {
	encodingResults *prometheus.CounterVec
	publishFailures *prometheus.CounterVec
	compensations   *prometheus.CounterVec
	httpRequests    *prometheus.HistogramVec
}

// New registers the collectors with reg
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		encodingResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_encoding_results_total",
				Help: "Encoder results processed, by settlement outcome",
			},
			[]string{"outcome"},
		),
		publishFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_event_publish_failures_total",
				Help: "Integration events that could not be published",
			},
			[]string{"kind"},
		),
		compensations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "catalog_upload_compensations_total",
				Help: "Failed upload operations whose stored assets were cleaned up",
			},
			[]string{"operation", "cleanup_failed"},
		),
		httpRequests: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "catalog_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

// EncodingResult counts a settled encoder result
func (m *Metrics) EncodingResult(outcome string) {
	m.encodingResults.WithLabelValues(outcome).Inc()
}

// PublishFailed counts an event that was not delivered to the broker
func (m *Metrics) PublishFailed(kind string) {
	m.publishFailures.WithLabelValues(kind).Inc()
}

// Compensated counts an upload rollback
func (m *Metrics) Compensated(operation string, cleanupFailed bool) {
	m.compensations.WithLabelValues(operation, strconv.FormatBool(cleanupFailed)).Inc()
}

// ObserveHTTP records one served request
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
