// Package server assembles the HTTP server for the feed API: routes, the
// middleware chain, TLS, and graceful shutdown.
//
// # Routes
//
//   - GET /v1/events - fetch and parse feed events
//   - GET /v1/ingest/status - background ingest progress (when ingest is enabled)
//   - GET /health - liveness probe
//   - GET /ready - readiness probe
//   - GET /version - build information
//   - GET /metrics - Prometheus exposition (when metrics are enabled)
//
// # Middleware Chain
//
// Requests pass through the following middleware, outermost first:
//  1. Recovery: turns panics into 500 responses
//  2. Logging: structured request/response logging
//  3. RequestID: unique ID per request for log correlation
//  4. Metrics: Prometheus request counters and histograms
//  5. CORS: Cross-Origin Resource Sharing headers
//  6. Timeout: per-request deadline
//
// The server handles graceful shutdown on SIGTERM and SIGINT, draining
// in-flight requests up to the configured shutdown timeout. When TLS is
// enabled the listener requires TLS 1.3.
package server
