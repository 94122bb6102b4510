package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// FieldError represents a validation error for a specific configuration
// field.
type FieldError struct {
	// Field is the dotted path to the configuration field
	// (e.g., "server.listen_address").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a
// configuration. It implements the error interface and provides access to all
// field errors.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. All validation errors are collected and
// returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateServer(&cfg.Server)...)
	errs = append(errs, validateUpstream(&cfg.Upstream)...)
	errs = append(errs, validateIngest(&cfg.Ingest)...)
	errs = append(errs, validateCache(&cfg.Cache)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)
	errs = append(errs, validateSecurity(&cfg.Security)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateServer(cfg *ServerConfig) []FieldError {
	var errs []FieldError

	if cfg.ListenAddress == "" {
		errs = append(errs, FieldError{
			Field:   "server.listen_address",
			Message: "listen address is required",
		})
	}

	if cfg.ReadTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.read_timeout",
			Message: "read timeout must be positive",
		})
	}
	if cfg.WriteTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.write_timeout",
			Message: "write timeout must be positive",
		})
	}
	if cfg.IdleTimeout < 0 {
		errs = append(errs, FieldError{
			Field:   "server.idle_timeout",
			Message: "idle timeout must be positive",
		})
	}
	if cfg.MaxHeaderBytes < 0 {
		errs = append(errs, FieldError{
			Field:   "server.max_header_bytes",
			Message: "max header bytes must be non-negative",
		})
	}

	return errs
}

func validateUpstream(cfg *UpstreamConfig) []FieldError {
	var errs []FieldError

	if cfg.BaseURL == "" {
		errs = append(errs, FieldError{
			Field:   "upstream.base_url",
			Message: "base URL is required",
		})
	} else if parsed, err := url.Parse(cfg.BaseURL); err != nil || parsed.Scheme == "" || parsed.Host == "" {
		errs = append(errs, FieldError{
			Field:   "upstream.base_url",
			Message: fmt.Sprintf("invalid URL %q", cfg.BaseURL),
		})
	}

	if cfg.Timeout < 0 {
		errs = append(errs, FieldError{
			Field:   "upstream.timeout",
			Message: "timeout must be positive",
		})
	}
	if cfg.MaxRetries < 0 {
		errs = append(errs, FieldError{
			Field:   "upstream.max_retries",
			Message: "max retries must be non-negative",
		})
	}
	if cfg.PageSize < 1 || cfg.PageSize > 1000 {
		errs = append(errs, FieldError{
			Field:   "upstream.page_size",
			Message: "page size must be between 1 and 1000",
		})
	}

	return errs
}

func validateIngest(cfg *IngestConfig) []FieldError {
	var errs []FieldError

	if cfg.StartCursor != "" {
		if _, err := time.Parse(time.RFC3339, cfg.StartCursor); err != nil {
			errs = append(errs, FieldError{
				Field:   "ingest.start_cursor",
				Message: fmt.Sprintf("not an RFC 3339 timestamp: %q", cfg.StartCursor),
			})
		}
	}

	if cfg.CatchupSchedule != "" {
		if _, err := cron.ParseStandard(cfg.CatchupSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "ingest.catchup_schedule",
				Message: fmt.Sprintf("invalid cron expression %q", cfg.CatchupSchedule),
			})
		}
	}

	if cfg.PageDelay < 0 {
		errs = append(errs, FieldError{
			Field:   "ingest.page_delay",
			Message: "page delay must be non-negative",
		})
	}

	return errs
}

func validateCache(cfg *CacheConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "memory", "sqlite":
	default:
		errs = append(errs, FieldError{
			Field:   "cache.backend",
			Message: fmt.Sprintf("unknown backend %q (options: memory, sqlite)", cfg.Backend),
		})
	}

	if cfg.Backend == "sqlite" && cfg.Path == "" {
		errs = append(errs, FieldError{
			Field:   "cache.path",
			Message: "path is required for the sqlite backend",
		})
	}

	if cfg.PruneSchedule != "" {
		if _, err := cron.ParseStandard(cfg.PruneSchedule); err != nil {
			errs = append(errs, FieldError{
				Field:   "cache.prune_schedule",
				Message: fmt.Sprintf("invalid cron expression %q", cfg.PruneSchedule),
			})
		}
	}

	if cfg.Retention < 0 {
		errs = append(errs, FieldError{
			Field:   "cache.retention",
			Message: "retention must be non-negative",
		})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("unknown level %q (options: debug, info, warn, error)", cfg.Logging.Level),
		})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("unknown format %q (options: json, text)", cfg.Logging.Format),
		})
	}

	if cfg.Metrics.Enabled && !strings.HasPrefix(cfg.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "metrics path must start with /",
		})
	}

	return errs
}

func validateSecurity(cfg *SecurityConfig) []FieldError {
	var errs []FieldError

	if cfg.TLS.Enabled {
		if cfg.TLS.CertFile == "" {
			errs = append(errs, FieldError{
				Field:   "security.tls.cert_file",
				Message: "cert file is required when TLS is enabled",
			})
		}
		if cfg.TLS.KeyFile == "" {
			errs = append(errs, FieldError{
				Field:   "security.tls.key_file",
				Message: "key file is required when TLS is enabled",
			})
		}
	}

	return errs
}
