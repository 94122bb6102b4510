package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"sibr/fed/pkg/api"
	"sibr/fed/pkg/api/middleware"
	"sibr/fed/pkg/config"
	"sibr/fed/pkg/eventually"
	"sibr/fed/pkg/telemetry/health"
	"sibr/fed/pkg/telemetry/metrics"
)

// Options carries the wired components the server serves.
type Options struct {
	// Client is the upstream feed client backing /v1/events.
	Client *eventually.Client

	// IngestTask backs /v1/ingest/status. Nil when ingest is disabled; the
	// route is not mounted then.
	IngestTask api.StatusReporter

	// Collector provides the /metrics endpoint and request metrics. Nil
	// disables both.
	Collector *metrics.Collector

	// Checker backs the /health and /ready probes.
	Checker *health.Checker

	// Build information served at /version.
	Version   string
	Commit    string
	BuildTime string
}

// Server is the HTTP server for the feed API.
type Server struct {
	config       *config.Config
	opts         Options
	httpServer   *http.Server
	shutdownChan chan struct{}
	shutdownOnce sync.Once
	mu           sync.RWMutex
	isRunning    bool
}

// NewServer creates a server from configuration and wired components.
func NewServer(cfg *config.Config, opts Options) *Server {
	return &Server{
		config:       cfg,
		opts:         opts,
		shutdownChan: make(chan struct{}),
	}
}

// Start starts the HTTP server and blocks until shutdown.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return fmt.Errorf("server is already running")
	}
	s.isRunning = true
	s.mu.Unlock()

	handler := s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:           s.config.Server.ListenAddress,
		Handler:        handler,
		ReadTimeout:    s.config.Server.ReadTimeout,
		WriteTimeout:   s.config.Server.WriteTimeout,
		IdleTimeout:    s.config.Server.IdleTimeout,
		MaxHeaderBytes: s.config.Server.MaxHeaderBytes,
	}

	if s.config.Security.TLS.Enabled {
		tlsConfig, err := s.configureTLS()
		if err != nil {
			return fmt.Errorf("failed to configure TLS: %w", err)
		}
		s.httpServer.TLSConfig = tlsConfig
	}

	errChan := make(chan error, 1)
	go func() {
		slog.Info("starting feed server",
			"address", s.config.Server.ListenAddress,
			"tls_enabled", s.config.Security.TLS.Enabled,
		)

		var err error
		if s.config.Security.TLS.Enabled {
			err = s.httpServer.ListenAndServeTLS(
				s.config.Security.TLS.CertFile,
				s.config.Security.TLS.KeyFile,
			)
		} else {
			err = s.httpServer.ListenAndServe()
		}

		if err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case <-ctx.Done():
		slog.Info("context cancelled, initiating shutdown")
		return s.Shutdown(context.Background())
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig.String())
		return s.Shutdown(context.Background())
	case err := <-errChan:
		return err
	case <-s.shutdownChan:
		slog.Info("shutdown requested")
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.mu.Lock()
		if !s.isRunning {
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()

		slog.Info("initiating graceful shutdown", "timeout", s.config.Server.ShutdownTimeout.String())

		shutdownCtx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
		defer cancel()

		if s.httpServer != nil {
			if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
				slog.Error("error during server shutdown", "error", err)
				shutdownErr = fmt.Errorf("server shutdown error: %w", err)
			}
		}

		s.mu.Lock()
		s.isRunning = false
		s.mu.Unlock()

		slog.Info("feed server stopped")
	})

	return shutdownErr
}

// setupRoutes configures HTTP routes and the middleware chain.
func (s *Server) setupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/v1/events", api.NewEventsHandler(s.opts.Client))

	if s.opts.IngestTask != nil {
		mux.Handle("/v1/ingest/status", api.NewIngestStatusHandler(s.opts.IngestTask))
	}

	if s.opts.Checker != nil {
		health.Register(mux, s.opts.Checker, s.opts.Version, s.opts.Commit, s.opts.BuildTime)
	}

	if s.opts.Collector != nil && s.config.Telemetry.Metrics.Enabled {
		path := s.config.Telemetry.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, s.opts.Collector.Handler())
	}

	// Innermost to outermost.
	var handler http.Handler = mux

	handler = middleware.Timeout(s.config.Server.RequestTimeout)(handler)
	handler = middleware.CORS(s.corsConfig())(handler)
	if s.opts.Collector != nil {
		handler = middleware.Metrics(s.opts.Collector.Request)(handler)
	}
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(handler)
	handler = middleware.Recovery(handler)

	return handler
}

// configureTLS validates and builds TLS settings for the listener.
func (s *Server) configureTLS() (*tls.Config, error) {
	tlsCfg := s.config.Security.TLS

	if tlsCfg.CertFile == "" {
		return nil, fmt.Errorf("TLS cert file not specified")
	}
	if tlsCfg.KeyFile == "" {
		return nil, fmt.Errorf("TLS key file not specified")
	}

	if _, err := os.Stat(tlsCfg.CertFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS cert file not found: %s", tlsCfg.CertFile)
	}
	if _, err := os.Stat(tlsCfg.KeyFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("TLS key file not found: %s", tlsCfg.KeyFile)
	}

	return &tls.Config{
		MinVersion: tls.VersionTLS13,
		CipherSuites: []uint16{
			tls.TLS_AES_128_GCM_SHA256,
			tls.TLS_AES_256_GCM_SHA384,
			tls.TLS_CHACHA20_POLY1305_SHA256,
		},
	}, nil
}

// IsRunning returns true if the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// Handler returns the configured HTTP handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.setupRoutes()
}

// corsConfig converts the configuration's CORS section to the middleware's.
func (s *Server) corsConfig() *middleware.CORSConfig {
	cors := middleware.DefaultCORSConfig()
	cors.Enabled = s.config.Server.CORS.Enabled
	if len(s.config.Server.CORS.AllowedOrigins) > 0 {
		cors.AllowedOrigins = s.config.Server.CORS.AllowedOrigins
	}
	if len(s.config.Server.CORS.AllowedMethods) > 0 {
		cors.AllowedMethods = s.config.Server.CORS.AllowedMethods
	}
	if s.config.Server.CORS.MaxAge > 0 {
		cors.MaxAge = s.config.Server.CORS.MaxAge
	}
	return cors
}
