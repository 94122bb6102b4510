package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"sibr/fed/pkg/api/types"
	"sibr/fed/pkg/telemetry/metrics"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestIDGenerated(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if captured == "" {
		t.Fatal("no request ID in context")
	}
	if !regexp.MustCompile(`^[0-9a-f]{32}$`).MatchString(captured) {
		t.Errorf("unexpected request ID format: %q", captured)
	}
	if got := rec.Header().Get(RequestIDHeader); got != captured {
		t.Errorf("response header %q does not match context %q", got, captured)
	}
}

func TestRequestIDFromClient(t *testing.T) {
	var captured string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = GetRequestID(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(RequestIDHeader, "client-supplied-id")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if captured != "client-supplied-id" {
		t.Errorf("got %q", captured)
	}
}

func TestRecoveryTurnsPanicInto500(t *testing.T) {
	handler := Recovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/v1/events", nil))

	if rec.Code != 500 {
		t.Fatalf("got %d, want 500", rec.Code)
	}
	var resp types.ServerError
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != types.ErrInternal {
		t.Errorf("got error %q", resp.Error)
	}
}

func TestRecoveryPassesThroughNormally(t *testing.T) {
	rec := httptest.NewRecorder()
	Recovery(okHandler()).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != 200 || rec.Body.String() != "ok" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	handler := CORS(DefaultCORSConfig())(okHandler())

	req := httptest.NewRequest("OPTIONS", "/v1/events", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != 204 {
		t.Fatalf("got %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://example.com" {
		t.Errorf("got Allow-Origin %q", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); got != "GET, OPTIONS" {
		t.Errorf("got Allow-Methods %q", got)
	}
	if got := rec.Header().Get("Access-Control-Max-Age"); got != "3600" {
		t.Errorf("got Max-Age %q", got)
	}
}

func TestCORSRestrictedOrigin(t *testing.T) {
	config := DefaultCORSConfig()
	config.AllowedOrigins = []string{"https://allowed.example"}
	handler := CORS(config)(okHandler())

	req := httptest.NewRequest("GET", "/v1/events", nil)
	req.Header.Set("Origin", "https://other.example")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disallowed origin got Allow-Origin %q", got)
	}
}

func TestCORSDisabled(t *testing.T) {
	config := DefaultCORSConfig()
	config.Enabled = false
	handler := CORS(config)(okHandler())

	req := httptest.NewRequest("GET", "/v1/events", nil)
	req.Header.Set("Origin", "https://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("disabled CORS still set Allow-Origin %q", got)
	}
}

func TestTimeoutAllowsFastHandlers(t *testing.T) {
	handler := Timeout(time.Second)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 200 {
		t.Errorf("got %d", rec.Code)
	}
}

func TestTimeoutCutsOffSlowHandlers(t *testing.T) {
	handler := Timeout(20 * time.Millisecond)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != 504 {
		t.Fatalf("got %d, want 504", rec.Code)
	}
	var resp types.ServerError
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error != types.ErrTimeout {
		t.Errorf("got error %q", resp.Error)
	}
}

func TestMetricsRecordsRequests(t *testing.T) {
	registry := prometheus.NewRegistry()
	rm := metrics.NewRequestMetrics(registry)
	handler := Metrics(rm)(okHandler())

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/v1/events", nil))

	families, err := registry.Gather()
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, mf := range families {
		if mf.GetName() == "fed_http_requests_total" {
			found = true
			if len(mf.GetMetric()) != 1 {
				t.Errorf("got %d series", len(mf.GetMetric()))
			}
			if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
				t.Errorf("got count %v", got)
			}
		}
	}
	if !found {
		t.Error("fed_http_requests_total not registered")
	}
}

func TestLoggingPreservesStatusAndBody(t *testing.T) {
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusTeapot {
		t.Errorf("got %d", rec.Code)
	}
	if rec.Body.String() != "short and stout" {
		t.Errorf("got body %q", rec.Body.String())
	}
}
