package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/p24harvest/p24harvest/internal/config"
)

//go:embed templates/p24harvest.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command, which writes an annotated starter
// configuration file.
func NewInitCmd() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Init writes an annotated configuration file with every option at its
default: search page range, batch size, pacing, output paths, and commented
selector overrides for when the site markup changes.

Proxy credentials stay out of the file; they are read from the environment
(PROXY_HOST, PROXY_PORT, PROXY_USERNAME, PROXY_PASSWORD) or a .env file.

Examples:
  # Write .p24harvest in the current directory
  p24harvest init

  # Write to a custom path, overwriting if present
  p24harvest init -o conf/harvest.yaml -f`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := writeStarterConfig(output, force); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created configuration file: %s\n\n", output)
			fmt.Fprintln(out, "Common edits:")
			fmt.Fprintln(out, "  - province and the search page range")
			fmt.Fprintln(out, "  - batch_size and the inter-batch delays")
			fmt.Fprintln(out, "  - selector overrides after a site redesign")
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolVarP(&force, "force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

// writeStarterConfig writes the embedded template to path, creating parent
// directories as needed. Without force an existing file is an error; the
// O_EXCL open keeps the check race-free.
func writeStarterConfig(path string, force bool) error {
	content, err := configTemplate.ReadFile("templates/p24harvest.yaml")
	if err != nil {
		return fmt.Errorf("read embedded config template: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0600)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		}
		return fmt.Errorf("create configuration file: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		return fmt.Errorf("write configuration file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write configuration file: %w", err)
	}
	return nil
}
