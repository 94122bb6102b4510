package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path. It
// applies default values, validates the configuration, and returns any
// errors. If the file does not exist, the defaults are used as-is; the server
// is designed to run with no configuration file in containers.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	applyBoolDefaults(&cfg)

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file: run entirely on defaults and env overrides.
	case err != nil:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention FED_SECTION_FIELD (e.g., FED_SERVER_LISTEN_ADDRESS) and always
// take precedence over file-based configuration.
//
// The loading sequence is:
//  1. Load YAML from file (missing file is not an error)
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format FED_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Server overrides
	if val := os.Getenv("FED_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("FED_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("FED_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("FED_SERVER_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.IdleTimeout = d
		}
	}
	if val := os.Getenv("FED_SERVER_SHUTDOWN_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ShutdownTimeout = d
		}
	}
	if val := os.Getenv("FED_SERVER_REQUEST_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.RequestTimeout = d
		}
	}
	if val := os.Getenv("FED_SERVER_MAX_HEADER_BYTES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Server.MaxHeaderBytes = i
		}
	}

	// Upstream overrides
	if val := os.Getenv("FED_UPSTREAM_BASE_URL"); val != "" {
		cfg.Upstream.BaseURL = val
	}
	if val := os.Getenv("FED_UPSTREAM_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Upstream.Timeout = d
		}
	}
	if val := os.Getenv("FED_UPSTREAM_MAX_RETRIES"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Upstream.MaxRetries = i
		}
	}
	if val := os.Getenv("FED_UPSTREAM_PAGE_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Upstream.PageSize = i
		}
	}

	// Ingest overrides
	if val := os.Getenv("FED_INGEST_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Ingest.Enabled = b
		}
	}
	if val := os.Getenv("FED_INGEST_START_CURSOR"); val != "" {
		cfg.Ingest.StartCursor = val
	}
	if val := os.Getenv("FED_INGEST_CATCHUP_SCHEDULE"); val != "" {
		cfg.Ingest.CatchupSchedule = val
	}
	if val := os.Getenv("FED_INGEST_PAGE_DELAY"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Ingest.PageDelay = d
		}
	}

	// Cache overrides
	if val := os.Getenv("FED_CACHE_BACKEND"); val != "" {
		cfg.Cache.Backend = val
	}
	if val := os.Getenv("FED_CACHE_PATH"); val != "" {
		cfg.Cache.Path = val
	}
	if val := os.Getenv("FED_CACHE_PRUNE_SCHEDULE"); val != "" {
		cfg.Cache.PruneSchedule = val
	}
	if val := os.Getenv("FED_CACHE_RETENTION"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Cache.Retention = d
		}
	}

	// Telemetry overrides
	if val := os.Getenv("FED_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("FED_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("FED_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("FED_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}

	// Security overrides
	if val := os.Getenv("FED_SECURITY_TLS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Security.TLS.Enabled = b
		}
	}
	if val := os.Getenv("FED_SECURITY_TLS_CERT_FILE"); val != "" {
		cfg.Security.TLS.CertFile = val
	}
	if val := os.Getenv("FED_SECURITY_TLS_KEY_FILE"); val != "" {
		cfg.Security.TLS.KeyFile = val
	}
}
