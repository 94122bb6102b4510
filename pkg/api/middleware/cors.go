package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig contains configuration for the CORS middleware.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted at all.
	Enabled bool

	// AllowedOrigins lists allowed origins. ["*"] allows all.
	AllowedOrigins []string

	// AllowedMethods lists allowed HTTP methods for preflight responses.
	AllowedMethods []string

	// AllowedHeaders lists allowed request headers for preflight responses.
	AllowedHeaders []string

	// ExposedHeaders lists headers exposed to browser clients.
	ExposedHeaders []string

	// MaxAge is the preflight cache lifetime in seconds.
	MaxAge int

	// AllowCredentials controls the Allow-Credentials header.
	AllowCredentials bool
}

// DefaultCORSConfig returns a permissive configuration suitable for a public
// read-only API.
func DefaultCORSConfig() *CORSConfig {
	return &CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         3600,
	}
}

// CORS adds Cross-Origin Resource Sharing headers and answers preflight
// OPTIONS requests.
func CORS(config *CORSConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			origin := r.Header.Get("Origin")

			if origin != "" && isOriginAllowed(origin, config.AllowedOrigins) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				if config.AllowCredentials {
					w.Header().Set("Access-Control-Allow-Credentials", "true")
				}
				if len(config.ExposedHeaders) > 0 {
					w.Header().Set("Access-Control-Expose-Headers", strings.Join(config.ExposedHeaders, ", "))
				}
			} else if contains(config.AllowedOrigins, "*") {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			}

			if r.Method == http.MethodOptions {
				if len(config.AllowedMethods) > 0 {
					w.Header().Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				}
				if len(config.AllowedHeaders) > 0 {
					w.Header().Set("Access-Control-Allow-Headers", strings.Join(config.AllowedHeaders, ", "))
				}
				if config.MaxAge > 0 {
					w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				}
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
