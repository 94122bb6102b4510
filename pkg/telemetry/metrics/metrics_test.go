package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestCollectorExposesMetrics(t *testing.T) {
	collector := NewCollector()

	collector.Request.RecordRequest("/v1/events", "GET", 200, 120*time.Millisecond, 2048)
	collector.Request.RecordRequest("/v1/events", "GET", 400, time.Millisecond, 64)
	collector.Ingest.RecordEventParsed()
	collector.Ingest.RecordEventFailed()
	collector.Ingest.RecordPage("cache")
	collector.Ingest.RecordPage("upstream")
	collector.Ingest.SetCursor(time.Date(2021, 3, 1, 5, 0, 0, 0, time.UTC))
	collector.Ingest.RecordUpstreamRequest("success")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	collector.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("got status %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	output := string(body)

	for _, want := range []string{
		`fed_http_requests_total{method="GET",path="/v1/events",status="200"} 1`,
		`fed_http_requests_total{method="GET",path="/v1/events",status="400"} 1`,
		`fed_ingest_events_total{result="parsed"} 1`,
		`fed_ingest_events_total{result="failed"} 1`,
		`fed_ingest_pages_total{source="cache"} 1`,
		`fed_ingest_pages_total{source="upstream"} 1`,
		`fed_upstream_requests_total{outcome="success"} 1`,
		"fed_ingest_cursor_timestamp_seconds",
		"go_goroutines",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
