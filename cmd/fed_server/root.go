package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

// The root command runs the server directly so the container entrypoint can
// be plain "./fed_server" with no arguments.
var rootCmd = &cobra.Command{
	Use:   "fed_server",
	Short: "Fed - the Blaseball feed, parsed",
	Long: `Fed serves the Blaseball feed as structured, typed events.

It proxies the Eventually events API: each request is forwarded upstream,
every returned event description is parsed into its typed form, and the
result is returned as a flat JSON array. A background ingest task walks the
full feed to keep the page cache warm and to catch parser regressions.`,
	Version: Version,
	RunE:    runServer,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
