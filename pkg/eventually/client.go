package eventually

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// ClientConfig contains configuration for the Eventually client.
type ClientConfig struct {
	// BaseURL is the events endpoint, e.g.
	// "https://api.sibr.dev/eventually/v2/events".
	BaseURL string

	// Timeout is the per-request timeout.
	// Default: 60s
	Timeout time.Duration

	// MaxRetries is the number of retry attempts for transient failures.
	// Default: 3
	MaxRetries int

	// PageSize is the number of events requested per page during ingest.
	// Default: 500
	PageSize int

	// MaxIdleConns and MaxIdleConnsPerHost configure the connection pool.
	MaxIdleConns        int
	MaxIdleConnsPerHost int
	IdleConnTimeout     time.Duration
}

// Health tracks the client's view of the upstream API.
type Health struct {
	IsHealthy             bool
	LastCheck             time.Time
	ConsecutiveFailures   int
	LastError             error
	LastSuccessfulRequest time.Time
	TotalRequests         int64
	FailedRequests        int64
}

// retryBaseDelay is the unit of exponential backoff between retries. Tests
// shorten it.
var retryBaseDelay = time.Second

// Client fetches feed events from the Eventually API. It provides connection
// pooling, retry with exponential backoff, and health tracking for the
// readiness probe.
type Client struct {
	config ClientConfig
	client *http.Client

	health   Health
	healthMu sync.RWMutex
}

// NewClient creates a client with pooled connections.
func NewClient(config ClientConfig) *Client {
	if config.Timeout <= 0 {
		config.Timeout = 60 * time.Second
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = 0
	}
	if config.PageSize <= 0 {
		config.PageSize = 500
	}
	if config.MaxIdleConns <= 0 {
		config.MaxIdleConns = 100
	}
	if config.MaxIdleConnsPerHost <= 0 {
		config.MaxIdleConnsPerHost = 10
	}
	if config.IdleConnTimeout <= 0 {
		config.IdleConnTimeout = 90 * time.Second
	}

	transport := &http.Transport{
		MaxIdleConns:        config.MaxIdleConns,
		MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
		IdleConnTimeout:     config.IdleConnTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		config: config,
		client: &http.Client{
			Transport: transport,
			Timeout:   config.Timeout,
		},
		health: Health{
			IsHealthy:             true, // start optimistic
			LastCheck:             time.Now(),
			LastSuccessfulRequest: time.Now(),
		},
	}
}

// PageSize returns the configured ingest page size.
func (c *Client) PageSize() int {
	return c.config.PageSize
}

// IsHealthy returns the current health status.
func (c *Client) IsHealthy() bool {
	c.healthMu.RLock()
	defer c.healthMu.RUnlock()
	return c.health.IsHealthy
}

// GetHealth returns detailed health information.
func (c *Client) GetHealth() Health {
	c.healthMu.RLock()
	defer c.healthMu.RUnlock()
	return c.health
}

func (c *Client) updateHealth(success bool, err error) {
	c.healthMu.Lock()
	defer c.healthMu.Unlock()

	c.health.LastCheck = time.Now()
	c.health.TotalRequests++

	if success {
		c.health.IsHealthy = true
		c.health.ConsecutiveFailures = 0
		c.health.LastError = nil
		c.health.LastSuccessfulRequest = time.Now()
		return
	}

	c.health.FailedRequests++
	c.health.ConsecutiveFailures++
	c.health.LastError = err

	// Mark unhealthy after 3 consecutive failures
	if c.health.ConsecutiveFailures >= 3 {
		c.health.IsHealthy = false
		slog.Warn("eventually client marked unhealthy",
			"consecutive_failures", c.health.ConsecutiveFailures,
			"error", err,
		)
	}
}

// FetchRaw performs a GET against the events endpoint with the given query
// parameters and returns the raw response body. Transient errors (transport
// failures, 5xx, 429) are retried with exponential backoff; 4xx responses
// are returned immediately as an UpstreamError.
func (c *Client) FetchRaw(ctx context.Context, params url.Values) ([]byte, error) {
	requestURL := c.config.BaseURL
	if encoded := params.Encode(); encoded != "" {
		requestURL += "?" + encoded
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * retryBaseDelay
			slog.Debug("retrying eventually request",
				"attempt", attempt,
				"max_retries", c.config.MaxRetries,
				"backoff", backoff,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")

		resp, err := c.client.Do(req)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				c.updateHealth(false, err)
				// A cancelled context is the caller shutting down, not an
				// upstream timeout.
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					return nil, &TimeoutError{Timeout: c.config.Timeout}
				}
				return nil, ctx.Err()
			}
			slog.Warn("eventually request failed, will retry",
				"attempt", attempt+1,
				"error", err,
			)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			if readErr != nil {
				lastErr = readErr
				continue
			}
			c.updateHealth(true, nil)
			return body, nil

		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			lastErr = &UpstreamError{StatusCode: resp.StatusCode, Message: string(body)}
			slog.Warn("eventually returned error status, will retry",
				"status", resp.StatusCode,
				"attempt", attempt+1,
			)

		default:
			err := &UpstreamError{StatusCode: resp.StatusCode, Message: string(body)}
			c.updateHealth(false, err)
			return nil, err
		}
	}

	c.updateHealth(false, lastErr)
	return nil, lastErr
}

// Fetch performs FetchRaw and decodes the body as a list of events.
func (c *Client) Fetch(ctx context.Context, params url.Values) ([]Event, error) {
	body, err := c.FetchRaw(ctx, params)
	if err != nil {
		return nil, err
	}
	return EventsFromJSON(body)
}

// EventsFromJSON decodes a JSON array of feed events.
func EventsFromJSON(data []byte) ([]Event, error) {
	var events []Event
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, &DecodeError{Cause: err}
	}
	return events, nil
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.client.CloseIdleConnections()
	return nil
}

// PageParams builds the query parameters for one ingest page. Pages are
// fetched in created order with children and siblings expanded so that event
// groups can be reassembled locally.
func (c *Client) PageParams(after string, page int) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(c.config.PageSize))
	params.Set("offset", strconv.Itoa(page*c.config.PageSize))
	params.Set("expand_children", "true")
	params.Set("expand_siblings", "true")
	params.Set("sortby", "{created}")
	params.Set("sortorder", "asc")
	params.Set("after", after)
	return params
}

// PageURL returns the fully encoded request URL for a page, used as the
// cache key by the ingest task.
func (c *Client) PageURL(params url.Values) string {
	return c.config.BaseURL + "?" + params.Encode()
}
