package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// namespace prefixes every metric the server exports.
const namespace = "fed"

// Collector owns the Prometheus registry and all metric groups.
type Collector struct {
	registry *prometheus.Registry

	// Request tracks HTTP request handling.
	Request *RequestMetrics

	// Ingest tracks the background ingest task and upstream fetches.
	Ingest *IngestMetrics
}

// NewCollector creates a registry with the standard process and Go runtime
// collectors plus the server's metric groups.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return &Collector{
		registry: registry,
		Request:  NewRequestMetrics(registry),
		Ingest:   NewIngestMetrics(registry),
	}
}

// Registry returns the underlying Prometheus registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
