// Package metrics declares the Prometheus collectors exposed at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestsTotal counts handled requests by route template
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "route"},
	)

	ImagesStoredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_images_stored_total",
			Help: "Uploaded recipe images written to the file store",
		},
		[]string{"backend"},
	)

	ImageBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recipe_image_bytes_total",
			Help: "Bytes of uploaded recipe images written to the file store",
		},
		[]string{"backend"},
	)
)

// RecordRequest records one finished HTTP request. Unmatched routes are
// collapsed into a single label value to keep cardinality bounded.
func RecordRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordImageStored records a successful write to the file store
func RecordImageStored(backend string, size int64) {
	ImagesStoredTotal.WithLabelValues(backend).Inc()
	ImageBytesTotal.WithLabelValues(backend).Add(float64(size))
}
