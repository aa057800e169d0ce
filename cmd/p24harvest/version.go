package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set by the release build via
// -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
// A plain go install leaves them empty and the toolchain's embedded build
// info fills the gaps.
var (
	version string
	commit  string
	date    string
)

// buildVersion resolves the version, commit and build date, preferring
// ldflags values over embedded module and VCS data.
func buildVersion() (v, rev, built string) {
	v, rev, built = version, commit, date

	info, ok := debug.ReadBuildInfo()
	if !ok {
		info = &debug.BuildInfo{}
	}
	if v == "" {
		if v = info.Main.Version; v == "" {
			v = "(devel)"
		}
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if rev == "" {
				rev = shortRev(s.Value)
			}
		case "vcs.time":
			if built == "" {
				built = s.Value
			}
		}
	}
	if rev == "" {
		rev = "unknown"
	}
	if built == "" {
		built = "unknown"
	}
	return v, rev, built
}

// shortRev truncates a revision hash to the usual seven characters.
func shortRev(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version, commit, and build date",
		Long:  "Print the version, commit hash, and build date of p24harvest.",
		Run: func(cmd *cobra.Command, _ []string) {
			v, rev, built := buildVersion()
			fmt.Fprintf(cmd.OutOrStdout(),
				"p24harvest version %s\n  commit: %s\n  built:  %s\n", v, rev, built)
		},
	}
}
