package ingest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"sibr/fed/pkg/cache"
	"sibr/fed/pkg/eventually"
	"sibr/fed/pkg/fed"
	"sibr/fed/pkg/telemetry/metrics"
)

// createdFormat is how the upstream API formats created timestamps in
// cursors.
const createdFormat = "2006-01-02T15:04:05.000Z"

// Config contains configuration for the ingest task.
type Config struct {
	// StartCursor is the created timestamp ingest begins from.
	StartCursor string

	// CatchupSchedule is a cron expression for periodic catch-up passes.
	// Empty disables scheduled catch-up.
	CatchupSchedule string

	// PageDelay is the pause between upstream page fetches. Cached pages
	// are not delayed.
	PageDelay time.Duration
}

// Status is a point-in-time snapshot of ingest progress.
type Status struct {
	// Running reports whether a pass is currently in progress.
	Running bool `json:"running"`

	// Cursor is the created timestamp of the newest ingested event.
	Cursor string `json:"cursor"`

	// PagesFetched counts pages read from the upstream API.
	PagesFetched int64 `json:"pagesFetched"`

	// PagesCached counts pages served from the local cache.
	PagesCached int64 `json:"pagesCached"`

	// EventsParsed counts events parsed successfully.
	EventsParsed int64 `json:"eventsParsed"`

	// EventsFailed counts events whose description did not parse.
	EventsFailed int64 `json:"eventsFailed"`

	// EventsSkipped counts events of types the parser does not handle.
	EventsSkipped int64 `json:"eventsSkipped"`

	// CompletedPasses counts finished ingest passes.
	CompletedPasses int64 `json:"completedPasses"`

	// LastPassAt is when the most recent pass finished.
	LastPassAt time.Time `json:"lastPassAt"`

	// LastError is the error that ended the most recent failed pass.
	LastError string `json:"lastError,omitempty"`
}

// Task ingests the feed in the background. One pass at a time; a catch-up
// trigger while a pass is running is skipped.
type Task struct {
	config  Config
	client  *eventually.Client
	store   cache.Store
	metrics *metrics.IngestMetrics
	logger  *slog.Logger
	cron    *cron.Cron

	mu      sync.Mutex
	running bool
	status  Status
}

// NewTask creates an ingest task. The metrics group may be nil.
func NewTask(cfg Config, client *eventually.Client, store cache.Store, im *metrics.IngestMetrics) *Task {
	return &Task{
		config:  cfg,
		client:  client,
		store:   store,
		metrics: im,
		logger:  slog.Default().With("component", "ingest"),
		cron:    cron.New(),
		status:  Status{Cursor: cfg.StartCursor},
	}
}

// Start launches the initial ingest pass in the background and schedules
// catch-up passes. It returns immediately; pass progress is visible through
// Status.
func (t *Task) Start(ctx context.Context) error {
	if t.config.CatchupSchedule != "" {
		if _, err := cron.ParseStandard(t.config.CatchupSchedule); err != nil {
			return fmt.Errorf("invalid catchup schedule %q: %w", t.config.CatchupSchedule, err)
		}
		if _, err := t.cron.AddFunc(t.config.CatchupSchedule, func() {
			t.runPass(ctx, "catchup")
		}); err != nil {
			return fmt.Errorf("failed to schedule catchup: %w", err)
		}
		t.cron.Start()
	}

	go t.runPass(ctx, "initial")

	go func() {
		<-ctx.Done()
		t.Stop()
	}()

	t.logger.Info("ingest task started",
		"start_cursor", t.config.StartCursor,
		"catchup_schedule", t.config.CatchupSchedule,
	)
	return nil
}

// Stop stops the catch-up scheduler. A pass already in flight finishes when
// its context is cancelled.
func (t *Task) Stop() {
	if t.cron != nil {
		stopCtx := t.cron.Stop()
		<-stopCtx.Done()
	}
}

// Status returns a snapshot of ingest progress.
func (t *Task) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	status := t.status
	status.Running = t.running
	return status
}

// runPass runs one full ingest pass. Overlapping passes are skipped rather
// than queued.
func (t *Task) runPass(ctx context.Context, kind string) {
	t.mu.Lock()
	if t.running {
		t.mu.Unlock()
		t.logger.Debug("ingest pass already running, skipping", "kind", kind)
		return
	}
	t.running = true
	cursor := t.status.Cursor
	t.mu.Unlock()

	t.logger.Info("ingest pass starting", "kind", kind, "cursor", cursor)
	start := time.Now()

	newCursor, err := t.ingestFrom(ctx, cursor)

	t.mu.Lock()
	t.running = false
	t.status.Cursor = newCursor
	t.status.LastPassAt = time.Now()
	if err != nil {
		t.status.LastError = err.Error()
	} else {
		t.status.LastError = ""
		t.status.CompletedPasses++
	}
	t.mu.Unlock()

	if err != nil {
		t.logger.Error("ingest pass failed",
			"kind", kind,
			"cursor", newCursor,
			"error", err,
		)
		return
	}
	t.logger.Info("ingest pass completed",
		"kind", kind,
		"cursor", newCursor,
		"duration", time.Since(start),
	)
}

// ingestFrom pages through the feed starting at cursor and returns the cursor
// reached. A short page marks the current end of the feed.
func (t *Task) ingestFrom(ctx context.Context, cursor string) (string, error) {
	regrouper := eventually.NewRegrouper()

	for page := 0; ; page++ {
		if ctx.Err() != nil {
			return cursor, ctx.Err()
		}

		events, fetched, err := t.loadPage(ctx, cursor, page)
		if err != nil {
			return cursor, err
		}

		groups, err := regrouper.Regroup(events)
		if err != nil {
			return cursor, fmt.Errorf("failed to regroup page %d: %w", page, err)
		}

		for i := range groups {
			t.processEvent(&groups[i])
		}

		if len(events) > 0 {
			// The cursor is the last event's exact created timestamp. The
			// upstream treats after as exclusive (created strictly greater),
			// so the next pass resumes without refetching this event; an
			// event sharing its millisecond has to land in the same page to
			// be seen.
			last := events[len(events)-1].Created.UTC().Format(createdFormat)
			t.mu.Lock()
			t.status.Cursor = last
			t.mu.Unlock()
			if t.metrics != nil {
				t.metrics.SetCursor(events[len(events)-1].Created)
			}
		}

		// A short page is the end of the feed for now.
		if len(events) < t.pageLimit() {
			t.mu.Lock()
			reached := t.status.Cursor
			t.mu.Unlock()
			return reached, nil
		}

		if fetched && t.config.PageDelay > 0 {
			select {
			case <-ctx.Done():
				return cursor, ctx.Err()
			case <-time.After(t.config.PageDelay):
			}
		}
	}
}

// loadPage returns one page of events, preferring the cache. Only full pages
// are cached: a short page is still growing and must be refetched next pass.
func (t *Task) loadPage(ctx context.Context, cursor string, page int) (events []eventually.Event, fetched bool, err error) {
	params := t.client.PageParams(cursor, page)
	key := t.client.PageURL(params)

	if body, ok, cacheErr := t.store.Get(ctx, key); cacheErr != nil {
		t.logger.Warn("cache read failed, fetching from upstream", "error", cacheErr)
	} else if ok {
		events, err = eventually.EventsFromJSON(body)
		if err == nil {
			t.recordPage("cache", len(events))
			return events, false, nil
		}
		t.logger.Warn("cached page is corrupt, refetching", "key", key, "error", err)
		if delErr := t.store.Delete(ctx, key); delErr != nil {
			t.logger.Warn("failed to drop corrupt cache entry", "error", delErr)
		}
	}

	body, err := t.client.FetchRaw(ctx, params)
	if err != nil {
		if t.metrics != nil {
			t.metrics.RecordUpstreamRequest("error")
		}
		return nil, true, fmt.Errorf("failed to fetch page %d: %w", page, err)
	}
	if t.metrics != nil {
		t.metrics.RecordUpstreamRequest("success")
	}

	events, err = eventually.EventsFromJSON(body)
	if err != nil {
		return nil, true, fmt.Errorf("failed to decode page %d: %w", page, err)
	}
	t.recordPage("upstream", len(events))

	if len(events) >= t.pageLimit() {
		if cacheErr := t.store.Put(ctx, key, body); cacheErr != nil {
			t.logger.Warn("failed to cache page", "key", key, "error", cacheErr)
		}
	}

	return events, true, nil
}

// processEvent parses one group parent and updates counters. Parse failures
// are logged and counted but never stop the pass; the feed contains grammars
// the parser does not handle yet.
func (t *Task) processEvent(raw *eventually.Event) {
	_, err := fed.ParseEvent(raw)

	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case err == nil:
		t.status.EventsParsed++
		if t.metrics != nil {
			t.metrics.RecordEventParsed()
		}
	case isNotImplemented(err):
		t.status.EventsSkipped++
	default:
		t.status.EventsFailed++
		if t.metrics != nil {
			t.metrics.RecordEventFailed()
		}
		t.logger.Warn("failed to parse event",
			"event_id", raw.ID,
			"event_type", int(raw.Type),
			"error", err,
		)
	}
}

func (t *Task) recordPage(source string, events int) {
	t.mu.Lock()
	if source == "cache" {
		t.status.PagesCached++
	} else {
		t.status.PagesFetched++
	}
	t.mu.Unlock()

	if t.metrics != nil {
		t.metrics.RecordPage(source)
	}
	t.logger.Debug("page loaded", "source", source, "events", events)
}

func (t *Task) pageLimit() int {
	// The client clamps its page size; mirror its default.
	if limit := t.client.PageSize(); limit > 0 {
		return limit
	}
	return 500
}

func isNotImplemented(err error) bool {
	var notImpl *fed.NotImplementedError
	return errors.As(err, &notImpl)
}
