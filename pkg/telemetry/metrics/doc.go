// Package metrics exposes Prometheus metrics for the feed server: HTTP
// request metrics, upstream fetch metrics, and ingest progress.
//
// All metrics live under the "fed" namespace on a private registry, exposed
// through Collector.Handler.
package metrics
