package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file name looked up in the current
// and home directories.
const DefaultConfigFile = ".p24harvest"

// ErrConfigNotFound reports that no configuration file exists at the
// resolved path. Runs without a file are normal; callers decide whether the
// miss matters based on whether the path was explicit.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile reads scrape settings and selector overrides from one YAML
// file.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cf := &File{}
	if err := yaml.Unmarshal(data, cf); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return cf, nil
}

// FindConfigFile resolves which configuration file a run should use: an
// explicit path wins, then DefaultConfigFile in the working directory, then
// in the home directory. The empty string means run on built-in defaults.
func FindConfigFile(explicit string) string {
	if explicit != "" {
		if fileExists(explicit) {
			return explicit
		}
		return ""
	}
	for _, dir := range configDirs() {
		candidate := filepath.Join(dir, DefaultConfigFile)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

// configDirs lists the directories searched for DefaultConfigFile, nearest
// first.
func configDirs() []string {
	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return dirs
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
