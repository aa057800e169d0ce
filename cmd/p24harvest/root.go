package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for p24harvest.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "p24harvest",
		Short: "Property24 listing harvester",
		Long: `p24harvest collects residential property listings from Property24.

It walks the search results for a province, follows every unique listing
link, and extracts price, size, location, and feature data into a JSON
collection. All traffic is routed through an authenticated proxy configured
via environment variables (PROXY_HOST, PROXY_PORT, PROXY_USERNAME,
PROXY_PASSWORD).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	v, _, _ := buildVersion()
	cmd.Version = v

	// --verbose is persistent so every subcommand inherits the debug
	// logging switch.
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command. Errors land on stderr with a non-zero
// exit; cobra's own printing is silenced so each failure appears once.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
