/*
Package cli provides command-line utilities shared by the fed_server command:
result formatters, a progress meter for the dump filter, and the error types
subcommands return.

Output Formatting:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Progress Reporting:

	progress := cli.NewProgressReporter(os.Stderr)
	progress.Start(int64(seasonFiles))
	for i := 0; i < seasonFiles; i++ {
		// Write one season file
		progress.Update(int64(i + 1))
	}
	progress.Finish()
*/
package cli
