package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"sibr/fed/pkg/ingest"
)

type stubReporter struct {
	status ingest.Status
}

func (s *stubReporter) Status() ingest.Status { return s.status }

func TestIngestStatusHandler(t *testing.T) {
	handler := NewIngestStatusHandler(&stubReporter{status: ingest.Status{
		Running:      true,
		Cursor:       "2021-03-02T10:00:00.000Z",
		EventsParsed: 42,
	}})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/ingest/status", nil))

	if rec.Code != 200 {
		t.Fatalf("got %d", rec.Code)
	}

	var status ingest.Status
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatal(err)
	}
	if !status.Running || status.Cursor != "2021-03-02T10:00:00.000Z" || status.EventsParsed != 42 {
		t.Errorf("got %+v", status)
	}
}

func TestIngestStatusHandlerRejectsNonGET(t *testing.T) {
	handler := NewIngestStatusHandler(&stubReporter{})

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("DELETE", "/v1/ingest/status", nil))

	if rec.Code != 405 {
		t.Errorf("got %d, want 405", rec.Code)
	}
}
