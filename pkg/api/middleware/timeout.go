package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"sibr/fed/pkg/api/types"
)

// Timeout enforces a per-request deadline. The handler runs with a context
// that is cancelled at the deadline; if it has not finished by then, the
// client receives a 504 in the API's error format. The handler goroutine
// keeps the cancelled context and is expected to unwind on its own.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(w, r.WithContext(ctx))
			}()

			select {
			case <-done:
				return

			case <-ctx.Done():
				if ctx.Err() != context.DeadlineExceeded {
					return
				}

				slog.WarnContext(r.Context(), "request timed out",
					"request_id", GetRequestID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"timeout", timeout,
				)

				resp := types.NewServerError(types.ErrTimeout,
					"Request timeout: the request took too long to complete")
				types.WriteJSON(w, resp.HTTPStatusCode(), resp)
			}
		})
	}
}
