package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestSeasonProgressRendersCounts(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(12)
	progress.Update(3)
	progress.Finish()

	output := buf.String()
	if !strings.Contains(output, "seasons") {
		t.Errorf("output missing meter label: %q", output)
	}
	if !strings.Contains(output, "3/12") {
		t.Errorf("output missing intermediate count: %q", output)
	}
	if !strings.Contains(output, "12/12") {
		t.Errorf("output missing final count: %q", output)
	}
	if !strings.HasSuffix(output, "\n") {
		t.Error("Finish did not terminate the line")
	}
}

func TestSeasonProgressZeroTotal(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	// A dump with nothing to write must not draw a meter or divide by zero.
	progress.Start(0)
	progress.Update(0)
	progress.Finish()

	if got := buf.String(); got != "\n" {
		t.Errorf("got %q, want a bare line terminator", got)
	}
}

func TestSeasonProgressError(t *testing.T) {
	buf := &bytes.Buffer{}
	progress := NewProgressReporter(buf)

	progress.Start(12)
	progress.Error(errors.New("disk full"))

	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("output missing the error: %q", buf.String())
	}
}

func TestNewProgressReporterNilWriter(t *testing.T) {
	progress := NewProgressReporter(nil)
	if progress == nil {
		t.Fatal("NewProgressReporter(nil) returned nil")
	}
	if progress.w == nil {
		t.Error("nil writer not defaulted")
	}
}
