package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"sibr/fed/pkg/api/types"
)

// Recovery recovers from panics in HTTP handlers and returns a 500 in the
// API's error format. The panic and stack trace are logged; internal details
// are not exposed to clients.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(r.Context(), "panic in handler",
					"error", err,
					"request_id", GetRequestID(r.Context()),
					"method", r.Method,
					"path", r.URL.Path,
					"stack", string(debug.Stack()),
				)

				resp := types.NewServerError(types.ErrInternal,
					"An internal error occurred. Please try again later.")
				types.WriteJSON(w, http.StatusInternalServerError, resp)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
