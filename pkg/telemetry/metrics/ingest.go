package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// IngestMetrics tracks the background ingest task and upstream fetches.
//
// Metrics:
//   - fed_ingest_events_total: events processed by result (parsed, failed)
//   - fed_ingest_pages_total: pages read by source (cache, upstream)
//   - fed_ingest_cursor_timestamp_seconds: created time of the newest
//     ingested event
//   - fed_upstream_requests_total: upstream HTTP requests by outcome
type IngestMetrics struct {
	eventsTotal      *prometheus.CounterVec
	pagesTotal       *prometheus.CounterVec
	cursorTimestamp  prometheus.Gauge
	upstreamRequests *prometheus.CounterVec
}

// NewIngestMetrics creates and registers ingest metrics with the registry.
func NewIngestMetrics(registry *prometheus.Registry) *IngestMetrics {
	im := &IngestMetrics{
		eventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "events_total",
				Help:      "Total number of feed events processed by the ingest task",
			},
			[]string{"result"},
		),

		pagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "pages_total",
				Help:      "Total number of event pages read, by source",
			},
			[]string{"source"},
		),

		cursorTimestamp: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "ingest",
				Name:      "cursor_timestamp_seconds",
				Help:      "Created timestamp of the newest ingested event, as a Unix time",
			},
		),

		upstreamRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "upstream",
				Name:      "requests_total",
				Help:      "Total number of upstream API requests, by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		im.eventsTotal,
		im.pagesTotal,
		im.cursorTimestamp,
		im.upstreamRequests,
	)

	return im
}

// RecordEventParsed records a successfully parsed event.
func (im *IngestMetrics) RecordEventParsed() {
	im.eventsTotal.WithLabelValues("parsed").Inc()
}

// RecordEventFailed records an event whose description could not be parsed.
func (im *IngestMetrics) RecordEventFailed() {
	im.eventsTotal.WithLabelValues("failed").Inc()
}

// RecordPage records a page read from the given source ("cache" or
// "upstream").
func (im *IngestMetrics) RecordPage(source string) {
	im.pagesTotal.WithLabelValues(source).Inc()
}

// SetCursor records the created timestamp of the newest ingested event.
func (im *IngestMetrics) SetCursor(created time.Time) {
	im.cursorTimestamp.Set(float64(created.Unix()))
}

// RecordUpstreamRequest records an upstream API request outcome ("success",
// "error", or "retry").
func (im *IngestMetrics) RecordUpstreamRequest(outcome string) {
	im.upstreamRequests.WithLabelValues(outcome).Inc()
}
