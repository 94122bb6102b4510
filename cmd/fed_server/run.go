package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"sibr/fed/pkg/cache"
	"sibr/fed/pkg/cli"
	"sibr/fed/pkg/config"
	"sibr/fed/pkg/eventually"
	"sibr/fed/pkg/ingest"
	"sibr/fed/pkg/server"
	"sibr/fed/pkg/telemetry/health"
	"sibr/fed/pkg/telemetry/logging"
	"sibr/fed/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

func init() {
	rootCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	rootCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	rootCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration. A missing file is fine; the defaults describe a
	// working public deployment.
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if _, err := logging.Setup(cfg.Telemetry.Logging); err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	slog.Info("starting fed",
		"version", Version,
		"config", cfgFile,
		"listen_address", cfg.Server.ListenAddress,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector()
	}

	store, err := openCacheStore(cfg)
	if err != nil {
		return cli.NewConfigError("cache", err.Error())
	}
	defer store.Close()

	if cfg.Cache.PruneSchedule != "" {
		pruner := cache.NewPruner(store, cfg.Cache.PruneSchedule, cfg.Cache.Retention)
		if err := pruner.Start(ctx); err != nil {
			slog.Warn("failed to start cache pruner", "error", err)
		} else {
			defer pruner.Stop()
		}
	}

	client := eventually.NewClient(eventually.ClientConfig{
		BaseURL:    cfg.Upstream.BaseURL,
		Timeout:    cfg.Upstream.Timeout,
		MaxRetries: cfg.Upstream.MaxRetries,
		PageSize:   cfg.Upstream.PageSize,
	})
	defer client.Close()

	checker := health.New(5 * time.Second)
	checker.RegisterCheck("upstream", func(ctx context.Context) error {
		if !client.IsHealthy() {
			h := client.GetHealth()
			return fmt.Errorf("upstream unhealthy after %d consecutive failures", h.ConsecutiveFailures)
		}
		return nil
	})
	checker.RegisterCheck("cache", func(ctx context.Context) error {
		_, err := store.Len(ctx)
		return err
	})

	opts := server.Options{
		Client:    client,
		Collector: collector,
		Checker:   checker,
		Version:   Version,
		Commit:    GitCommit,
		BuildTime: BuildDate,
	}

	if cfg.Ingest.Enabled {
		var im *metrics.IngestMetrics
		if collector != nil {
			im = collector.Ingest
		}
		task := ingest.NewTask(ingest.Config{
			StartCursor:     cfg.Ingest.StartCursor,
			CatchupSchedule: cfg.Ingest.CatchupSchedule,
			PageDelay:       cfg.Ingest.PageDelay,
		}, client, store, im)
		if err := task.Start(ctx); err != nil {
			return cli.NewCommandError("run", err)
		}
		defer task.Stop()
		opts.IngestTask = task
	}

	// Watch the config file so log level changes apply without a restart.
	if watcher, err := config.NewWatcher(cfgFile, slog.Default()); err != nil {
		slog.Debug("config watcher not started", "error", err)
	} else {
		go func() {
			if err := watcher.Watch(ctx, func(updated *config.Config) {
				if err := logging.SetLevel(updated.Telemetry.Logging.Level); err != nil {
					slog.Warn("ignoring invalid log level from config reload", "error", err)
				}
			}); err != nil {
				slog.Warn("config watcher stopped", "error", err)
			}
		}()
		defer watcher.Stop()
	}

	srv := server.NewServer(cfg, opts)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}
	return nil
}

// openCacheStore creates the configured page cache backend.
func openCacheStore(cfg *config.Config) (cache.Store, error) {
	switch cfg.Cache.Backend {
	case "memory":
		return cache.NewMemoryStore(), nil
	case "sqlite":
		if dir := filepath.Dir(cfg.Cache.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create cache directory: %w", err)
			}
		}
		return cache.NewSQLiteStore(cfg.Cache.Path)
	default:
		return nil, fmt.Errorf("unsupported cache backend: %s", cfg.Cache.Backend)
	}
}
