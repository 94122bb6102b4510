package config

import "time"

// Config is the root configuration structure for the feed server. It contains
// all configuration sections for the HTTP server, the upstream feed API, the
// ingest task, the page cache, telemetry, and security settings.
type Config struct {
	// Server contains HTTP server configuration including listen address
	// and timeouts.
	Server ServerConfig `yaml:"server"`

	// Upstream contains configuration for the Eventually feed API the
	// server fetches raw events from.
	Upstream UpstreamConfig `yaml:"upstream"`

	// Ingest contains configuration for the background ingest task.
	Ingest IngestConfig `yaml:"ingest"`

	// Cache contains configuration for the upstream page cache.
	Cache CacheConfig `yaml:"cache"`

	// Telemetry contains configuration for logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Security contains TLS configuration.
	Security SecurityConfig `yaml:"security"`
}

// ServerConfig contains configuration for the HTTP server.
type ServerConfig struct {
	// ListenAddress is the address and port to listen on.
	// Format: "host:port".
	// Default: "0.0.0.0:8000"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request,
	// including the body.
	// Default: 30s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the
	// response. Requests that miss the upstream cache can take a while, so
	// this should comfortably exceed the upstream timeout.
	// Default: 90s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next
	// request when keep-alives are enabled.
	// Default: 120s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout is the maximum duration to wait for graceful
	// shutdown before in-flight requests are dropped.
	// Default: 30s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// MaxHeaderBytes controls the maximum number of bytes the server will
	// read parsing request headers.
	// Default: 1048576 (1MB)
	MaxHeaderBytes int `yaml:"max_header_bytes"`

	// RequestTimeout is the per-request handler deadline.
	// Default: 60s
	RequestTimeout time.Duration `yaml:"request_timeout"`

	// CORS contains Cross-Origin Resource Sharing configuration. The API
	// is read-only and public, so CORS defaults to allowing every origin.
	CORS CORSConfig `yaml:"cors"`
}

// CORSConfig contains CORS configuration.
type CORSConfig struct {
	// Enabled controls whether CORS headers are emitted.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// AllowedOrigins is a list of allowed origins.
	// Default: ["*"]
	AllowedOrigins []string `yaml:"allowed_origins"`

	// AllowedMethods is a list of allowed HTTP methods.
	// Default: ["GET", "OPTIONS"]
	AllowedMethods []string `yaml:"allowed_methods"`

	// MaxAge is the maximum age in seconds for preflight request caching.
	// Default: 3600
	MaxAge int `yaml:"max_age"`
}

// UpstreamConfig contains configuration for the Eventually feed API.
type UpstreamConfig struct {
	// BaseURL is the events endpoint of the Eventually API.
	// Default: "https://api.sibr.dev/eventually/v2/events"
	BaseURL string `yaml:"base_url"`

	// Timeout is the maximum duration for a single upstream request.
	// Default: 60s
	Timeout time.Duration `yaml:"timeout"`

	// MaxRetries is the maximum number of retry attempts for failed
	// upstream requests.
	// Default: 3
	MaxRetries int `yaml:"max_retries"`

	// PageSize is how many events to request per page during ingest.
	// Default: 500
	PageSize int `yaml:"page_size"`
}

// IngestConfig contains configuration for the background ingest task.
type IngestConfig struct {
	// Enabled controls whether the ingest task runs at all.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// StartCursor is the created timestamp ingest begins from when there
	// is no saved progress. Events before the feed era are synthetic
	// backfill and are skipped.
	// Default: "2021-03-01T05:00:00.000Z"
	StartCursor string `yaml:"start_cursor"`

	// CatchupSchedule is a cron expression for periodic catch-up runs
	// after the initial ingest completes. Empty disables scheduled
	// catch-up.
	// Default: "@every 1h"
	CatchupSchedule string `yaml:"catchup_schedule"`

	// PageDelay is how long to pause between upstream page fetches, to
	// stay polite to the shared API.
	// Default: 2s
	PageDelay time.Duration `yaml:"page_delay"`
}

// CacheConfig contains configuration for the upstream page cache.
type CacheConfig struct {
	// Backend selects the cache implementation.
	// Options: "memory", "sqlite"
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// Path is the SQLite database file when Backend is "sqlite".
	// Default: "data/pages.db"
	Path string `yaml:"path"`

	// PruneSchedule is a cron expression for removing stale entries.
	// Empty disables pruning.
	// Default: "0 3 * * *"
	PruneSchedule string `yaml:"prune_schedule"`

	// Retention is how long cached pages are kept before pruning.
	// Default: 720h (30 days)
	Retention time.Duration `yaml:"retention"`
}

// TelemetryConfig contains configuration for logging and metrics.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level.
	// Options: "debug", "info", "warn", "error"
	// Default: "info"
	Level string `yaml:"level"`

	// Format selects the log output format.
	// Options: "json", "text"
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics configuration.
type MetricsConfig struct {
	// Enabled controls whether the metrics endpoint is served.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the metrics endpoint path.
	// Default: "/metrics"
	Path string `yaml:"path"`
}

// SecurityConfig contains TLS configuration. TLS is usually terminated in
// front of the server, so it defaults to off.
type SecurityConfig struct {
	// TLS contains TLS listener configuration.
	TLS TLSConfig `yaml:"tls"`
}

// TLSConfig contains TLS listener configuration.
type TLSConfig struct {
	// Enabled controls whether the server listens with TLS.
	// Default: false
	Enabled bool `yaml:"enabled"`

	// CertFile is the path to the PEM certificate.
	// Required when Enabled is true.
	CertFile string `yaml:"cert_file"`

	// KeyFile is the path to the PEM private key.
	// Required when Enabled is true.
	KeyFile string `yaml:"key_file"`
}
