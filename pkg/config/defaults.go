package config

import "time"

// Default values for configuration fields.
const (
	// Server defaults
	DefaultListenAddress   = "0.0.0.0:8000"
	DefaultReadTimeout     = 30 * time.Second
	DefaultWriteTimeout    = 90 * time.Second
	DefaultIdleTimeout     = 120 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1048576 // 1MB
	DefaultRequestTimeout  = 60 * time.Second

	// CORS defaults
	DefaultCORSEnabled = true
	DefaultCORSMaxAge  = 3600 // 1 hour

	// Upstream defaults
	DefaultUpstreamBaseURL    = "https://api.sibr.dev/eventually/v2/events"
	DefaultUpstreamTimeout    = 60 * time.Second
	DefaultUpstreamMaxRetries = 3
	DefaultUpstreamPageSize   = 500

	// Ingest defaults. The start cursor is the beginning of the feed era;
	// earlier events are synthetic backfill.
	DefaultIngestEnabled         = true
	DefaultIngestStartCursor     = "2021-03-01T05:00:00.000Z"
	DefaultIngestCatchupSchedule = "@every 1h"
	DefaultIngestPageDelay       = 2 * time.Second

	// Cache defaults
	DefaultCacheBackend       = "sqlite"
	DefaultCachePath          = "data/pages.db"
	DefaultCachePruneSchedule = "0 3 * * *"
	DefaultCacheRetention     = 720 * time.Hour // 30 days

	// Telemetry defaults
	DefaultLoggingLevel   = "info"
	DefaultLoggingFormat  = "json"
	DefaultMetricsEnabled = true
	DefaultMetricsPath    = "/metrics"

	// Security defaults
	DefaultTLSEnabled = false
)

// ApplyDefaults applies default values to a Config struct. It sets defaults
// for any fields that have zero values. This function is idempotent and safe
// to call multiple times.
func ApplyDefaults(cfg *Config) {
	// Server defaults
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if cfg.Server.MaxHeaderBytes == 0 {
		cfg.Server.MaxHeaderBytes = DefaultMaxHeaderBytes
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	// CORS defaults
	if cfg.Server.CORS.AllowedOrigins == nil {
		cfg.Server.CORS.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.CORS.AllowedMethods == nil {
		cfg.Server.CORS.AllowedMethods = []string{"GET", "OPTIONS"}
	}
	if cfg.Server.CORS.MaxAge == 0 {
		cfg.Server.CORS.MaxAge = DefaultCORSMaxAge
	}

	// Upstream defaults
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = DefaultUpstreamBaseURL
	}
	if cfg.Upstream.Timeout == 0 {
		cfg.Upstream.Timeout = DefaultUpstreamTimeout
	}
	if cfg.Upstream.MaxRetries == 0 {
		cfg.Upstream.MaxRetries = DefaultUpstreamMaxRetries
	}
	if cfg.Upstream.PageSize == 0 {
		cfg.Upstream.PageSize = DefaultUpstreamPageSize
	}

	// Ingest defaults
	if cfg.Ingest.StartCursor == "" {
		cfg.Ingest.StartCursor = DefaultIngestStartCursor
	}
	if cfg.Ingest.CatchupSchedule == "" {
		cfg.Ingest.CatchupSchedule = DefaultIngestCatchupSchedule
	}
	if cfg.Ingest.PageDelay == 0 {
		cfg.Ingest.PageDelay = DefaultIngestPageDelay
	}

	// Cache defaults
	if cfg.Cache.Backend == "" {
		cfg.Cache.Backend = DefaultCacheBackend
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = DefaultCachePath
	}
	if cfg.Cache.PruneSchedule == "" {
		cfg.Cache.PruneSchedule = DefaultCachePruneSchedule
	}
	if cfg.Cache.Retention == 0 {
		cfg.Cache.Retention = DefaultCacheRetention
	}

	// Telemetry defaults
	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
}

// applyBoolDefaults sets the boolean fields that default to true. A zero
// value bool cannot be told apart from an explicit false after unmarshaling,
// so these are set before the YAML is decoded over the struct.
func applyBoolDefaults(cfg *Config) {
	cfg.Server.CORS.Enabled = DefaultCORSEnabled
	cfg.Ingest.Enabled = DefaultIngestEnabled
	cfg.Telemetry.Metrics.Enabled = DefaultMetricsEnabled
}

// NewDefault returns a Config with every field set to its default.
func NewDefault() *Config {
	cfg := &Config{}
	applyBoolDefaults(cfg)
	ApplyDefaults(cfg)
	return cfg
}
