package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Pruner removes cache entries older than a retention window on a cron
// schedule. Cached pages near the head of the feed are refetched on every
// catch-up run anyway, so there is no point keeping stale copies around.
type Pruner struct {
	store     Store
	schedule  string
	retention time.Duration
	cron      *cron.Cron
	mu        sync.Mutex
	logger    *slog.Logger
	running   bool
}

// NewPruner creates a pruner that removes entries older than retention,
// running on the given cron schedule.
func NewPruner(store Store, schedule string, retention time.Duration) *Pruner {
	return &Pruner{
		store:     store,
		schedule:  schedule,
		retention: retention,
		cron:      cron.New(),
		logger:    slog.Default().With("component", "cache.pruner"),
	}
}

// Start begins scheduled pruning. If the schedule is empty, the pruner does
// nothing.
func (p *Pruner) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.schedule == "" {
		p.logger.Info("prune schedule not configured, skipping pruner")
		return nil
	}

	if _, err := cron.ParseStandard(p.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", p.schedule, err)
	}

	if _, err := p.cron.AddFunc(p.schedule, func() {
		p.runPruning(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule cache pruning: %w", err)
	}

	p.cron.Start()
	p.running = true

	p.logger.Info("cache pruner started",
		"schedule", p.schedule,
		"retention", p.retention,
	)

	go func() {
		<-ctx.Done()
		p.Stop()
	}()

	return nil
}

func (p *Pruner) runPruning(ctx context.Context) {
	cutoff := time.Now().Add(-p.retention)

	removed, err := p.store.Prune(ctx, cutoff)
	if err != nil {
		p.logger.Error("scheduled cache pruning failed", "error", err)
		return
	}

	if removed > 0 {
		p.logger.Info("cache pruning completed", "removed_count", removed)
	} else {
		p.logger.Debug("cache pruning completed, nothing removed")
	}
}

// Stop stops the pruner and waits for any running job to complete.
func (p *Pruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cron != nil && p.running {
		ctx := p.cron.Stop()
		<-ctx.Done()
		p.running = false
		p.logger.Info("cache pruner stopped")
	}
}

// IsRunning returns true if the pruner is running.
func (p *Pruner) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
