package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"sibr/fed/pkg/config"
)

// levelVar is the process-wide log level. Holding it in a LevelVar lets a
// configuration reload change the level without rebuilding the logger.
var levelVar = new(slog.LevelVar)

// Setup builds a slog.Logger from the logging configuration and installs it
// as the process default. It returns the logger for callers that prefer
// explicit injection.
func Setup(cfg config.LoggingConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup with an explicit output writer, for tests.
func SetupWithWriter(cfg config.LoggingConfig, w io.Writer) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	levelVar.Set(level)

	opts := &slog.HandlerOptions{Level: levelVar}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "json", "":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format: %s", cfg.Format)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

// SetLevel changes the process-wide log level. Used by the configuration
// watcher when the file changes at runtime.
func SetLevel(level string) error {
	parsed, err := ParseLevel(level)
	if err != nil {
		return err
	}
	levelVar.Set(parsed)
	return nil
}

// Level returns the current process-wide log level.
func Level() slog.Level {
	return levelVar.Level()
}

// ParseLevel parses a log level string into a slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug", "DEBUG":
		return slog.LevelDebug, nil
	case "info", "INFO", "":
		return slog.LevelInfo, nil
	case "warn", "WARN", "warning", "WARNING":
		return slog.LevelWarn, nil
	case "error", "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level: %s", level)
	}
}
