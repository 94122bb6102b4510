package eventually

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, maxRetries int) (*Client, *int64) {
	t.Helper()

	var requests int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&requests, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	saved := retryBaseDelay
	retryBaseDelay = time.Millisecond
	t.Cleanup(func() { retryBaseDelay = saved })

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		MaxRetries: maxRetries,
	})
	t.Cleanup(func() { client.Close() })

	return client, &requests
}

func TestFetchRawRetriesServerErrors(t *testing.T) {
	var failures int64 = 2
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&failures, -1) >= 0 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}, 3)

	body, err := client.FetchRaw(context.Background(), url.Values{})
	if err != nil {
		t.Fatalf("FetchRaw: %v", err)
	}
	if string(body) != `[]` {
		t.Errorf("got body %q", body)
	}
	if got := atomic.LoadInt64(requests); got != 3 {
		t.Errorf("got %d requests, want 3 (two failures, one success)", got)
	}
	if !client.IsHealthy() {
		t.Error("client unhealthy after eventual success")
	}
}

func TestFetchRawRetriesTooManyRequests(t *testing.T) {
	var throttled int64 = 1
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt64(&throttled, -1) >= 0 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`[]`))
	}, 3)

	if _, err := client.FetchRaw(context.Background(), url.Values{}); err != nil {
		t.Fatalf("FetchRaw: %v", err)
	}
	if got := atomic.LoadInt64(requests); got != 2 {
		t.Errorf("got %d requests, want 2", got)
	}
}

func TestFetchRawDoesNotRetryClientErrors(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such endpoint", http.StatusNotFound)
	}, 3)

	_, err := client.FetchRaw(context.Background(), url.Values{})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("got %T, want *UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", upstream.StatusCode)
	}
	if got := atomic.LoadInt64(requests); got != 1 {
		t.Errorf("got %d requests, want 1 (4xx is not retried)", got)
	}
}

func TestFetchRawExhaustedRetriesReturnsLastError(t *testing.T) {
	client, requests := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, 2)

	_, err := client.FetchRaw(context.Background(), url.Values{})

	var upstream *UpstreamError
	if !errors.As(err, &upstream) {
		t.Fatalf("got %T, want *UpstreamError", err)
	}
	if upstream.StatusCode != http.StatusBadGateway {
		t.Errorf("StatusCode = %d, want 502", upstream.StatusCode)
	}
	if got := atomic.LoadInt64(requests); got != 3 {
		t.Errorf("got %d requests, want 3 (initial attempt plus two retries)", got)
	}
}

func TestClientHealthTracksConsecutiveFailures(t *testing.T) {
	var failing atomic.Bool
	failing.Store(true)
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}, 0)

	for i := 0; i < 3; i++ {
		if _, err := client.FetchRaw(context.Background(), url.Values{}); err == nil {
			t.Fatal("expected failure")
		}
	}
	if client.IsHealthy() {
		t.Error("client healthy after three consecutive failures")
	}
	if got := client.GetHealth().ConsecutiveFailures; got != 3 {
		t.Errorf("ConsecutiveFailures = %d, want 3", got)
	}

	failing.Store(false)
	if _, err := client.FetchRaw(context.Background(), url.Values{}); err != nil {
		t.Fatalf("FetchRaw after recovery: %v", err)
	}
	health := client.GetHealth()
	if !health.IsHealthy || health.ConsecutiveFailures != 0 {
		t.Errorf("health not reset after success: %+v", health)
	}
}

func TestFetchRawCancelledContextIsNotATimeout(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	}, 0)
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := client.FetchRaw(ctx, url.Values{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		t.Error("cancellation reported as an upstream timeout")
	}
}

func TestFetchRawDeadlineReturnsTimeoutError(t *testing.T) {
	release := make(chan struct{})
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	}, 0)
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.FetchRaw(ctx, url.Values{})
	var timeout *TimeoutError
	if !errors.As(err, &timeout) {
		t.Fatalf("got %v, want *TimeoutError", err)
	}
}

func TestPageParams(t *testing.T) {
	client := NewClient(ClientConfig{BaseURL: "http://example.test/events", PageSize: 100})

	params := client.PageParams("2021-03-01T05:00:00.000Z", 2)

	want := map[string]string{
		"limit":           "100",
		"offset":          "200",
		"expand_children": "true",
		"expand_siblings": "true",
		"sortby":          "{created}",
		"sortorder":       "asc",
		"after":           "2021-03-01T05:00:00.000Z",
	}
	for key, value := range want {
		if got := params.Get(key); got != value {
			t.Errorf("%s = %q, want %q", key, got, value)
		}
	}
}
