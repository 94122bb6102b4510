package config

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCollapsesBursts(t *testing.T) {
	d := newDebouncer(20 * time.Millisecond)
	defer d.stop()

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.trigger(func() { calls.Add(1) })
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("got %d calls, want 1", got)
	}
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)

	var calls atomic.Int32
	d.trigger(func() { calls.Add(1) })
	d.stop()

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("got %d calls after stop, want 0", got)
	}
}
