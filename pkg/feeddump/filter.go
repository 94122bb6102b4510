package feeddump

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// EraStart is the beginning of the feed era. Events created before it are
// synthetic backfill with unreliable descriptions and are dropped.
const EraStart = "2021-03-01T05:00:00.000Z"

// maxLineBytes bounds a single ndjson line. Feed events with expanded
// siblings can run long, but nowhere near this.
const maxLineBytes = 16 * 1024 * 1024

// sortFirstTypes are event types that sort before every other type when two
// events share a created timestamp.
var sortFirstTypes = map[int64]bool{
	171: true,
}

// record is one kept dump line with the fields filtering and sorting need.
type record struct {
	line      string
	sim       string
	season    int64
	created   time.Time
	eventType int64
}

// recordEnvelope is the subset of a feed event the filter decodes.
type recordEnvelope struct {
	Created  time.Time                  `json:"created"`
	Sim      string                     `json:"sim"`
	Season   int64                      `json:"season"`
	Type     int64                      `json:"type"`
	Metadata map[string]json.RawMessage `json:"metadata"`
}

// FilterOptions configures a dump filter run.
type FilterOptions struct {
	// InputPath is the raw ndjson dump.
	InputPath string

	// OutputDir receives one ndjson file per sim and season.
	OutputDir string

	// EraStart overrides the default feed era start when non-zero.
	EraStart time.Time

	// Progress, when set, is called after each season file is written with
	// the number of files done and the total.
	Progress func(done, total int)
}

// FilterResult summarizes a completed run.
type FilterResult struct {
	// Read is the number of input lines.
	Read int

	// Kept is the number of lines that survived filtering.
	Kept int

	// Files is the number of output files written.
	Files int
}

// FilterDump reads the dump at opts.InputPath and writes filtered, sorted
// per-season files into opts.OutputDir.
func FilterDump(opts FilterOptions) (*FilterResult, error) {
	file, err := os.Open(opts.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}
	defer file.Close()

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output dir: %w", err)
	}

	eraStart := opts.EraStart
	if eraStart.IsZero() {
		eraStart, err = time.Parse(time.RFC3339, EraStart)
		if err != nil {
			return nil, err
		}
	}

	result, groups, err := collect(file, eraStart)
	if err != nil {
		return nil, err
	}

	keys := make([]seasonKey, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sim != keys[j].sim {
			return keys[i].sim < keys[j].sim
		}
		return keys[i].season < keys[j].season
	})

	for _, key := range keys {
		records := groups[key]
		sortSeason(records)

		name := fmt.Sprintf("sim-%s-season-%d.ndjson", key.sim, key.season)
		slog.Info("writing season file",
			"sim", key.sim,
			"season", key.season,
			"events", len(records),
		)
		if err := writeSeason(filepath.Join(opts.OutputDir, name), records); err != nil {
			return nil, err
		}
		result.Files++
		if opts.Progress != nil {
			opts.Progress(result.Files, len(keys))
		}
	}

	return result, nil
}

type seasonKey struct {
	sim    string
	season int64
}

// collect reads the dump and buckets kept lines by sim and season. Lines
// before the era start and group children (events with metadata.parent) are
// dropped.
func collect(r io.Reader, eraStart time.Time) (*FilterResult, map[seasonKey][]record, error) {
	result := &FilterResult{}
	groups := make(map[seasonKey][]record)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		result.Read++

		var envelope recordEnvelope
		if err := json.Unmarshal([]byte(line), &envelope); err != nil {
			return nil, nil, fmt.Errorf("line %d: %w", result.Read, err)
		}

		if envelope.Created.Before(eraStart) {
			continue
		}
		if _, hasParent := envelope.Metadata["parent"]; hasParent {
			continue
		}

		key := seasonKey{sim: envelope.Sim, season: envelope.Season}
		groups[key] = append(groups[key], record{
			line:      line,
			sim:       envelope.Sim,
			season:    envelope.Season,
			created:   envelope.Created,
			eventType: envelope.Type,
		})
		result.Kept++
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read dump: %w", err)
	}

	return result, groups, nil
}

// sortSeason orders one season's records by created timestamp. Events sharing
// a timestamp are broken by type, with the always-first types ahead.
func sortSeason(records []record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].created.Equal(records[j].created) {
			return records[i].created.Before(records[j].created)
		}
		iFirst := sortFirstTypes[records[i].eventType]
		jFirst := sortFirstTypes[records[j].eventType]
		if iFirst != jFirst {
			return iFirst
		}
		return records[i].eventType < records[j].eventType
	})
}

func writeSeason(path string, records []record) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := bufio.NewWriter(file)
	for i, rec := range records {
		if i > 0 {
			if _, err := w.WriteString("\n"); err != nil {
				file.Close()
				return err
			}
		}
		if _, err := w.WriteString(rec.line); err != nil {
			file.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
