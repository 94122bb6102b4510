// Package telemetry provides observability for the feed server: structured
// logging (telemetry/logging), Prometheus metrics (telemetry/metrics), and
// health check endpoints (telemetry/health).
package telemetry
