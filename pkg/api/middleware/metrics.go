package middleware

import (
	"net/http"
	"time"

	"sibr/fed/pkg/telemetry/metrics"
)

// Metrics records request count, duration, and response size for each
// request. The URL path is used as the path label directly; the API's route
// set is small and fixed, so label cardinality stays bounded.
func Metrics(rm *metrics.RequestMetrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			next.ServeHTTP(rw, r)

			rm.RecordRequest(r.URL.Path, r.Method, rw.statusCode, time.Since(start), rw.bytes)
		})
	}
}
