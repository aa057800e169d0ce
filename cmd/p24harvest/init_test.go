package main

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/p24harvest/p24harvest/internal/config"
)

// runInit executes the init command with the given arguments and returns
// its combined output.
func runInit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewInitCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInitWritesStarterConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".p24harvest")
	out, err := runInit(t, "-o", path)
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output should name the created file: %s", out)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read created file: %v", err)
	}
	for _, section := range []string{"scrape:", "selectors:"} {
		if !strings.Contains(string(content), section) {
			t.Errorf("created file is missing the %q section", section)
		}
	}
}

func TestInitRefusesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".p24harvest")
	if err := os.WriteFile(path, []byte("mine"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := runInit(t, "-o", path); err == nil {
		t.Fatal("expected an error for an existing file")
	} else if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("unexpected error: %v", err)
	}

	// The refusal must leave the user's file untouched.
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "mine" {
		t.Errorf("existing file was modified: %q", content)
	}
}

func TestInitForceOverwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ".p24harvest")
	if err := os.WriteFile(path, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := runInit(t, "-o", path, "-f"); err != nil {
		t.Fatalf("init -f failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) == "old" {
		t.Error("file should have been overwritten")
	}
	if !strings.Contains(string(content), "scrape:") {
		t.Error("overwritten file should hold the template")
	}
}

func TestInitCreatesParentDirectories(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "conf", "nested", "harvest.yaml")
	if _, err := runInit(t, "-o", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("file not created under nested directories: %v", err)
	}
}

func TestInitFilePermissions(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("no Unix permissions on Windows")
	}

	path := filepath.Join(t.TempDir(), ".p24harvest")
	if _, err := runInit(t, "-o", path); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 0600", perm)
	}
}

// TestStarterTemplateLoads feeds the shipped template through the real
// config loader, so a template edit that breaks parsing or drifts from the
// built-in defaults fails here.
func TestStarterTemplateLoads(t *testing.T) {
	t.Parallel()

	raw, err := configTemplate.ReadFile("templates/p24harvest.yaml")
	if err != nil {
		t.Fatalf("read embedded template: %v", err)
	}
	if !bytes.Contains(raw, []byte("#")) {
		t.Error("template should carry explanatory comments")
	}

	path := filepath.Join(t.TempDir(), ".p24harvest")
	if err := os.WriteFile(path, raw, 0600); err != nil {
		t.Fatal(err)
	}

	cf, err := config.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("template does not parse: %v", err)
	}
	if cf.Scrape.Province != config.DefaultProvince {
		t.Errorf("template province = %q, want %q", cf.Scrape.Province, config.DefaultProvince)
	}
	if cf.Scrape.MaxPages != config.DefaultMaxPages {
		t.Errorf("template maxPages = %d, want %d", cf.Scrape.MaxPages, config.DefaultMaxPages)
	}
}

func TestInitFlagDefaults(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()
	output := cmd.Flags().Lookup("output")
	if output == nil || output.DefValue != config.DefaultConfigFile {
		t.Errorf("output flag should default to %q", config.DefaultConfigFile)
	}
	force := cmd.Flags().Lookup("force")
	if force == nil || force.DefValue != "false" {
		t.Error("force flag should default to false")
	}
}
