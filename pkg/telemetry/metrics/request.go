package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics tracks HTTP request handling.
//
// Metrics:
//   - fed_http_requests_total: request count by path, method, status
//   - fed_http_request_duration_seconds: request duration histogram
//   - fed_http_response_size_bytes: response body size histogram
type RequestMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	responseSize    *prometheus.HistogramVec
}

// NewRequestMetrics creates and registers request metrics with the registry.
func NewRequestMetrics(registry *prometheus.Registry) *RequestMetrics {
	rm := &RequestMetrics{
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled",
			},
			[]string{"path", "method", "status"},
		),

		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests in seconds",
				Buckets:   []float64{0.005, 0.025, 0.1, 0.5, 1, 2.5, 10, 30, 60},
			},
			[]string{"path", "method"},
		),

		responseSize: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "response_size_bytes",
				Help:      "Size of HTTP response bodies in bytes",
				Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B to 4MB
			},
			[]string{"path"},
		),
	}

	registry.MustRegister(
		rm.requestsTotal,
		rm.requestDuration,
		rm.responseSize,
	)

	return rm
}

// RecordRequest records metrics for a completed request.
func (rm *RequestMetrics) RecordRequest(path, method string, status int, duration time.Duration, responseBytes int) {
	rm.requestsTotal.WithLabelValues(path, method, strconv.Itoa(status)).Inc()
	rm.requestDuration.WithLabelValues(path, method).Observe(duration.Seconds())
	if responseBytes > 0 {
		rm.responseSize.WithLabelValues(path).Observe(float64(responseBytes))
	}
}
