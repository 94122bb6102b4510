package feeddump

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func dumpLine(id string, created, sim string, season, typ int, extra string) string {
	metadata := "{}"
	if extra != "" {
		metadata = extra
	}
	return fmt.Sprintf(
		`{"id":%q,"created":%q,"sim":%q,"season":%d,"type":%d,"metadata":%s}`,
		id, created, sim, season, typ, metadata,
	)
}

func TestFilterDumpSplitsSeasons(t *testing.T) {
	dir := t.TempDir()

	lines := []string{
		// Pre-era event: dropped.
		dumpLine("e1", "2020-08-01T00:00:00.000Z", "thisidisstaticyo", 3, 1, ""),
		// Group child: dropped.
		dumpLine("e2", "2021-03-02T10:00:00.000Z", "thisidisstaticyo", 13, 1,
			`{"parent":"aaaaaaaa-0000-0000-0000-000000000000"}`),
		// Kept, season 13. Out of order on purpose.
		dumpLine("e3", "2021-03-02T11:00:00.000Z", "thisidisstaticyo", 13, 4, ""),
		dumpLine("e4", "2021-03-02T10:30:00.000Z", "thisidisstaticyo", 13, 2, ""),
		// Kept, season 14.
		dumpLine("e5", "2021-04-06T00:00:00.000Z", "thisidisstaticyo", 14, 1, ""),
	}

	input := filepath.Join(dir, "dump.ndjson")
	if err := os.WriteFile(input, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "filtered")
	result, err := FilterDump(FilterOptions{InputPath: input, OutputDir: outDir})
	if err != nil {
		t.Fatal(err)
	}

	if result.Read != 5 || result.Kept != 3 || result.Files != 2 {
		t.Errorf("got %+v", result)
	}

	s13, err := os.ReadFile(filepath.Join(outDir, "sim-thisidisstaticyo-season-13.ndjson"))
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(string(s13), "\n")
	if len(got) != 2 {
		t.Fatalf("got %d lines in season 13", len(got))
	}
	if !strings.Contains(got[0], `"id":"e4"`) || !strings.Contains(got[1], `"id":"e3"`) {
		t.Errorf("season 13 not sorted by created: %v", got)
	}

	if _, err := os.Stat(filepath.Join(outDir, "sim-thisidisstaticyo-season-14.ndjson")); err != nil {
		t.Errorf("season 14 file missing: %v", err)
	}
}

func TestFilterDumpTieBreaksOnType(t *testing.T) {
	dir := t.TempDir()

	created := "2021-03-02T10:00:00.000Z"
	lines := []string{
		dumpLine("ordinary", created, "thisidisstaticyo", 13, 4, ""),
		dumpLine("early", created, "thisidisstaticyo", 13, 171, ""),
		dumpLine("lower", created, "thisidisstaticyo", 13, 1, ""),
	}

	input := filepath.Join(dir, "dump.ndjson")
	if err := os.WriteFile(input, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}

	outDir := filepath.Join(dir, "filtered")
	if _, err := FilterDump(FilterOptions{InputPath: input, OutputDir: outDir}); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "sim-thisidisstaticyo-season-13.ndjson"))
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Split(string(data), "\n")
	if len(got) != 3 {
		t.Fatalf("got %d lines", len(got))
	}
	// Type 171 always sorts first, then ascending type.
	for i, wantID := range []string{"early", "lower", "ordinary"} {
		if !strings.Contains(got[i], fmt.Sprintf(`"id":%q`, wantID)) {
			t.Errorf("line %d: got %s", i, got[i])
		}
	}
}

func TestFilterDumpCustomEraStart(t *testing.T) {
	dir := t.TempDir()

	lines := []string{
		dumpLine("old", "2021-03-02T10:00:00.000Z", "thisidisstaticyo", 13, 1, ""),
		dumpLine("new", "2021-06-01T00:00:00.000Z", "thisidisstaticyo", 13, 1, ""),
	}

	input := filepath.Join(dir, "dump.ndjson")
	if err := os.WriteFile(input, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := FilterDump(FilterOptions{
		InputPath: input,
		OutputDir: filepath.Join(dir, "filtered"),
		EraStart:  time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Kept != 1 {
		t.Errorf("got %d kept, want 1", result.Kept)
	}
}

func TestFilterDumpRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()

	input := filepath.Join(dir, "dump.ndjson")
	if err := os.WriteFile(input, []byte("{not json}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := FilterDump(FilterOptions{
		InputPath: input,
		OutputDir: filepath.Join(dir, "filtered"),
	}); err == nil {
		t.Error("expected error for malformed line")
	}
}
