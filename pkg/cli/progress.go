package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// SeasonProgress renders a single-line meter for the dump filter, which
// writes one file per sim and season. Updates redraw the line in place; the
// meter is meant for a terminal on stderr.
type SeasonProgress struct {
	mu      sync.Mutex
	total   int64
	done    int64
	started time.Time
	w       io.Writer
}

// NewProgressReporter creates a progress meter writing to w. A nil w defaults
// to os.Stderr.
func NewProgressReporter(w io.Writer) *SeasonProgress {
	if w == nil {
		w = os.Stderr
	}
	return &SeasonProgress{w: w}
}

// Start begins the meter with the number of season files to write.
func (p *SeasonProgress) Start(total int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.total = total
	p.done = 0
	p.started = time.Now()
	p.render()
}

// Update records that done season files have been written so far.
func (p *SeasonProgress) Update(done int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = done
	p.render()
}

// Finish completes the meter and terminates the line.
func (p *SeasonProgress) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.done = p.total
	p.render()
	fmt.Fprintln(p.w)
}

// Error abandons the meter and reports err on its own line.
func (p *SeasonProgress) Error(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprintf(p.w, "\n✗ %v\n", err)
}

func (p *SeasonProgress) render() {
	if p.total == 0 {
		return
	}

	const width = 30
	filled := int(width * p.done / p.total)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	rate := float64(p.done) / time.Since(p.started).Seconds()
	fmt.Fprintf(p.w, "\rseasons [%s] %d/%d %.1f files/s", bar, p.done, p.total, rate)
}
