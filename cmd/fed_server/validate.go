package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sibr/fed/pkg/cli"
	"sibr/fed/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load the configuration file, apply environment overrides, and run full
validation without starting the server.

Exits non-zero with every invalid field listed when the configuration is
unusable. A missing config file is valid: the defaults describe a working
deployment.`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", err.Error())
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  listen address: %s\n", cfg.Server.ListenAddress)
	fmt.Printf("  upstream:       %s\n", cfg.Upstream.BaseURL)
	fmt.Printf("  cache backend:  %s\n", cfg.Cache.Backend)
	fmt.Printf("  ingest enabled: %t\n", cfg.Ingest.Enabled)
	return nil
}
