package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Tracks catalog operations handled by the router.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Total number of catalog requests handled (by operation and status).",
		},
		[]string{"operation", "status"},
	)

	// Measures duration of catalog operations end to end.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_request_duration_seconds",
			Help:    "Duration of catalog operations in seconds.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms → ~16s
		},
		[]string{"operation"},
	)

	// Tracks storage backend failures by operation.
	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_store_errors_total",
			Help: "Count of storage backend errors by operation.",
		},
		[]string{"operation"},
	)
)

// ObserveRequest records one handled request and its duration.
func ObserveRequest(operation, status string, start time.Time) {
	RequestsTotal.WithLabelValues(operation, status).Inc()
	RequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func IncStoreError(operation string) {
	StoreErrorsTotal.WithLabelValues(operation).Inc()
}
