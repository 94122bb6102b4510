package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"sibr/fed/pkg/cli"
	"sibr/fed/pkg/feeddump"
)

var filterFlags struct {
	input    string
	output   string
	eraStart string
	format   string
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Split a raw feed dump into filtered per-season files",
	Long: `Filter a raw ndjson feed dump into one file per sim and season.

Only group parents from the feed era are kept; events before the era start
are synthetic backfill and group children are reassembled from their parents
at parse time. Within each season, events are sorted the way the feed
presents them.

Examples:
  # Filter the default dump into the default output directory
  fed_server filter

  # Explicit paths
  fed_server filter --input dump.ndjson --output filtered/

  # Machine-readable result summary
  fed_server filter --format json`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVarP(&filterFlags.input, "input", "i", "feed_dump_iso.ndjson", "raw ndjson dump to read")
	filterCmd.Flags().StringVarP(&filterFlags.output, "output", "o", "feed_dump_filtered", "directory for per-season files")
	filterCmd.Flags().StringVar(&filterFlags.eraStart, "era-start", "", "override the feed era start (RFC 3339)")
	filterCmd.Flags().StringVar(&filterFlags.format, "format", "text", "output format (text, json)")
}

func runFilter(cmd *cobra.Command, args []string) error {
	opts := feeddump.FilterOptions{
		InputPath: filterFlags.input,
		OutputDir: filterFlags.output,
	}

	if filterFlags.eraStart != "" {
		eraStart, err := time.Parse(time.RFC3339, filterFlags.eraStart)
		if err != nil {
			return cli.NewConfigError("era-start", fmt.Sprintf("not an RFC 3339 timestamp: %v", err))
		}
		opts.EraStart = eraStart
	}

	progress := cli.NewProgressReporter(os.Stderr)
	started := false
	opts.Progress = func(done, total int) {
		if !started {
			progress.Start(int64(total))
			started = true
		}
		progress.Update(int64(done))
	}

	result, err := feeddump.FilterDump(opts)
	if err != nil {
		if started {
			progress.Error(err)
		}
		return cli.NewCommandError("filter", err)
	}
	if started {
		progress.Finish()
	}

	if filterFlags.format == "json" {
		return cli.NewFormatter(cli.FormatJSON).FormatTo(os.Stdout, result)
	}

	fmt.Printf("✓ Read %d events, kept %d\n", result.Read, result.Kept)
	fmt.Printf("✓ Wrote %d season files to %s\n", result.Files, filterFlags.output)
	return nil
}
