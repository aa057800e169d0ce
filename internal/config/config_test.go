package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig pins every default. The pacing and page-budget values are
// tuned against the live site, so an accidental change should break a test
// before it changes scraping behavior.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default BaseURL is the for-sale root", func(t *testing.T) {
		t.Parallel()
		if cfg.BaseURL != "https://www.property24.com/for-sale" {
			t.Errorf("expected BaseURL to be the for-sale root, got '%s'", cfg.BaseURL)
		}
	})

	t.Run("default Province is gauteng", func(t *testing.T) {
		t.Parallel()
		if cfg.Province != "gauteng" {
			t.Errorf("expected Province to be 'gauteng', got '%s'", cfg.Province)
		}
	})

	t.Run("default RegionCode is 1", func(t *testing.T) {
		t.Parallel()
		if cfg.RegionCode != 1 {
			t.Errorf("expected RegionCode to be 1, got %d", cfg.RegionCode)
		}
	})

	t.Run("default page range is 1 through 10", func(t *testing.T) {
		t.Parallel()
		if cfg.StartPage != 1 {
			t.Errorf("expected StartPage to be 1, got %d", cfg.StartPage)
		}
		if cfg.MaxPages != 10 {
			t.Errorf("expected MaxPages to be 10, got %d", cfg.MaxPages)
		}
	})

	t.Run("default fetch shape is batches of 10 with a 30s timeout", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 10 {
			t.Errorf("expected BatchSize to be 10, got %d", cfg.BatchSize)
		}
		if cfg.Timeout != 30*time.Second {
			t.Errorf("expected Timeout to be 30s, got %v", cfg.Timeout)
		}
	})

	t.Run("default search pacing is 3s plus up to 3s jitter", func(t *testing.T) {
		t.Parallel()
		if cfg.SearchDelay != 3*time.Second {
			t.Errorf("expected SearchDelay to be 3s, got %v", cfg.SearchDelay)
		}
		if cfg.SearchJitter != 3*time.Second {
			t.Errorf("expected SearchJitter to be 3s, got %v", cfg.SearchJitter)
		}
	})

	t.Run("default listing pacing is 5s plus up to 5s jitter", func(t *testing.T) {
		t.Parallel()
		if cfg.ListingDelay != 5*time.Second {
			t.Errorf("expected ListingDelay to be 5s, got %v", cfg.ListingDelay)
		}
		if cfg.ListingJitter != 5*time.Second {
			t.Errorf("expected ListingJitter to be 5s, got %v", cfg.ListingJitter)
		}
	})

	t.Run("default MaxBodySize is 5MB", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxBodySize != 5*1024*1024 {
			t.Errorf("expected MaxBodySize to be 5MB, got %d", cfg.MaxBodySize)
		}
	})
}

// TestConfigValidate exercises each validation rule in isolation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	t.Run("default config is valid", func(t *testing.T) {
		t.Parallel()
		if err := NewConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("zero delays and jitters are valid", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.SearchDelay = 0
		cfg.SearchJitter = 0
		cfg.ListingDelay = 0
		cfg.ListingJitter = 0

		if err := cfg.Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"empty province", func(c *Config) { c.Province = "" }, ErrNoProvince},
		{"zero region code", func(c *Config) { c.RegionCode = 0 }, ErrInvalidRegionCode},
		{"start page below 1", func(c *Config) { c.StartPage = 0 }, ErrInvalidStartPage},
		{"zero max pages", func(c *Config) { c.MaxPages = 0 }, ErrInvalidPageCount},
		{"negative max pages", func(c *Config) { c.MaxPages = -1 }, ErrInvalidPageCount},
		{"zero batch size", func(c *Config) { c.BatchSize = 0 }, ErrInvalidBatchSize},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
		{"negative listing delay", func(c *Config) { c.ListingDelay = -time.Second }, ErrInvalidDelay},
		{"negative search jitter", func(c *Config) { c.SearchJitter = -time.Second }, ErrInvalidDelay},
		{"negative max body size", func(c *Config) { c.MaxBodySize = -1 }, ErrInvalidMaxBodySize},
	}

	for _, tt := range tests {
		t.Run(tt.name+" is rejected", func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

// TestSearchPageURLs verifies search URL construction for the configured
// page range.
func TestSearchPageURLs(t *testing.T) {
	t.Parallel()

	t.Run("single page URL", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()

		got := cfg.SearchPageURL(3)
		want := "https://www.property24.com/for-sale/gauteng/1/p3"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("full default range is ten consecutive pages", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()

		urls := cfg.SearchPageURLs()
		if len(urls) != 10 {
			t.Fatalf("expected 10 URLs, got %d", len(urls))
		}
		if urls[0] != "https://www.property24.com/for-sale/gauteng/1/p1" {
			t.Errorf("unexpected first URL: %q", urls[0])
		}
		if urls[9] != "https://www.property24.com/for-sale/gauteng/1/p10" {
			t.Errorf("unexpected last URL: %q", urls[9])
		}
	})

	t.Run("range respects start page and province", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Province = "western-cape"
		cfg.RegionCode = 9
		cfg.StartPage = 4
		cfg.MaxPages = 2

		urls := cfg.SearchPageURLs()
		want := []string{
			"https://www.property24.com/for-sale/western-cape/9/p4",
			"https://www.property24.com/for-sale/western-cape/9/p5",
		}
		if len(urls) != len(want) {
			t.Fatalf("expected %d URLs, got %d", len(want), len(urls))
		}
		for i, u := range urls {
			if u != want[i] {
				t.Errorf("url[%d]: expected %q, got %q", i, want[i], u)
			}
		}
	})
}

// TestResolvedOutputFile verifies output path derivation.
func TestResolvedOutputFile(t *testing.T) {
	t.Parallel()

	t.Run("derives from province when unset", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()

		if got := cfg.ResolvedOutputFile(); got != "gauteng_listings.json" {
			t.Errorf("expected gauteng_listings.json, got %q", got)
		}
	})

	t.Run("explicit output wins", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.OutputFile = "out.json"

		if got := cfg.ResolvedOutputFile(); got != "out.json" {
			t.Errorf("expected out.json, got %q", got)
		}
	})
}

// TestSelectors verifies the selector profile resolution.
func TestSelectors(t *testing.T) {
	t.Parallel()

	t.Run("nil profile returns defaults", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()

		sel := cfg.Selectors()
		if sel.Price != ".p24_price" {
			t.Errorf("expected default price selector, got %q", sel.Price)
		}
		if sel.ListingNo != ".p24_propertyOverviewRow:nth-child(1) .p24_info" {
			t.Errorf("expected default listing number selector, got %q", sel.ListingNo)
		}
		if sel.ImageAttr != "data-image-url" {
			t.Errorf("expected default image attribute, got %q", sel.ImageAttr)
		}
	})

	t.Run("profile overrides one selector, keeps the rest", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cfg.Profile = &File{Selectors: Selectors{Price: ".newPriceClass"}}

		sel := cfg.Selectors()
		if sel.Price != ".newPriceClass" {
			t.Errorf("expected overridden price selector, got %q", sel.Price)
		}
		if sel.Size != ".p24_size" {
			t.Errorf("expected default size selector, got %q", sel.Size)
		}
		if sel.Description != ".js_readMoreText" {
			t.Errorf("expected default description selector, got %q", sel.Description)
		}
	})
}

// TestFileApplyTo verifies that only fields the file sets reach the config.
func TestFileApplyTo(t *testing.T) {
	t.Parallel()

	t.Run("empty file leaves defaults untouched", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		before := *cfg

		(&File{}).ApplyTo(cfg)
		if *cfg != before {
			t.Error("expected config to be unchanged by an empty file")
		}
	})

	t.Run("partial file overrides only named fields", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cf := &File{Scrape: ScrapeFile{
			Province:       "kwazulu-natal",
			RegionCode:     2,
			MaxPages:       3,
			TimeoutSeconds: 45,
			Output:         "kzn.json",
		}}

		cf.ApplyTo(cfg)
		if cfg.Province != "kwazulu-natal" {
			t.Errorf("expected province override, got %q", cfg.Province)
		}
		if cfg.RegionCode != 2 {
			t.Errorf("expected region code override, got %d", cfg.RegionCode)
		}
		if cfg.MaxPages != 3 {
			t.Errorf("expected max pages override, got %d", cfg.MaxPages)
		}
		if cfg.Timeout != 45*time.Second {
			t.Errorf("expected timeout override, got %v", cfg.Timeout)
		}
		if cfg.OutputFile != "kzn.json" {
			t.Errorf("expected output override, got %q", cfg.OutputFile)
		}
		if cfg.StartPage != DefaultStartPage {
			t.Errorf("expected start page default to survive, got %d", cfg.StartPage)
		}
		if cfg.BatchSize != DefaultBatchSize {
			t.Errorf("expected batch size default to survive, got %d", cfg.BatchSize)
		}
	})

	t.Run("pacing overrides convert seconds to durations", func(t *testing.T) {
		t.Parallel()
		cfg := NewConfig()
		cf := &File{Scrape: ScrapeFile{
			SearchDelaySeconds:   1,
			SearchJitterSeconds:  2,
			ListingDelaySeconds:  3,
			ListingJitterSeconds: 4,
		}}

		cf.ApplyTo(cfg)
		if cfg.SearchDelay != time.Second {
			t.Errorf("expected 1s search delay, got %v", cfg.SearchDelay)
		}
		if cfg.SearchJitter != 2*time.Second {
			t.Errorf("expected 2s search jitter, got %v", cfg.SearchJitter)
		}
		if cfg.ListingDelay != 3*time.Second {
			t.Errorf("expected 3s listing delay, got %v", cfg.ListingDelay)
		}
		if cfg.ListingJitter != 4*time.Second {
			t.Errorf("expected 4s listing jitter, got %v", cfg.ListingJitter)
		}
	})
}

// TestLoadConfigFile covers the .p24harvest YAML loader.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("missing file maps to ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		cf, err := LoadConfigFile("/nonexistent/path/.p24harvest")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("expected ErrConfigNotFound, got: %v", err)
		}
		if cf != nil {
			t.Error("expected nil config when file not found")
		}
	})

	t.Run("parses scrape settings and selector overrides", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".p24harvest")

		content := `scrape:
  province: "western-cape"
  regionCode: 9
  maxPages: 5
  batchSize: 4
selectors:
  price: ".newPrice"
  imageAttr: "data-src"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		cf, err := LoadConfigFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.Scrape.Province != "western-cape" {
			t.Errorf("expected province western-cape, got %q", cf.Scrape.Province)
		}
		if cf.Scrape.RegionCode != 9 {
			t.Errorf("expected region code 9, got %d", cf.Scrape.RegionCode)
		}
		if cf.Scrape.MaxPages != 5 {
			t.Errorf("expected max pages 5, got %d", cf.Scrape.MaxPages)
		}
		if cf.Scrape.BatchSize != 4 {
			t.Errorf("expected batch size 4, got %d", cf.Scrape.BatchSize)
		}

		sel := cf.MergedSelectors()
		if sel.Price != ".newPrice" {
			t.Errorf("expected overridden price selector, got %q", sel.Price)
		}
		if sel.ImageAttr != "data-src" {
			t.Errorf("expected overridden image attribute, got %q", sel.ImageAttr)
		}
		if sel.Address != ".p24_addressPropOverview" {
			t.Errorf("expected default address selector to survive, got %q", sel.Address)
		}
	})

	t.Run("broken YAML surfaces a parse error", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".p24harvest")

		if err := os.WriteFile(configPath, []byte("scrape: [broken"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		_, err := LoadConfigFile(configPath)
		if err == nil {
			t.Error("expected a parse error")
		}
	})
}

// TestFindConfigFile covers config file discovery.
func TestFindConfigFile(t *testing.T) {
	t.Run("explicit path wins when it exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "custom.yaml")

		if err := os.WriteFile(configPath, []byte("scrape: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		result := FindConfigFile(configPath)
		if result != configPath {
			t.Errorf("expected %q, got %q", configPath, result)
		}
	})

	t.Run("missing explicit path yields empty", func(t *testing.T) {
		result := FindConfigFile("/nonexistent/path/config.yaml")
		if result != "" {
			t.Errorf("expected empty string, got %q", result)
		}
	})

	t.Run("empty argument searches the default locations", func(_ *testing.T) {
		// The working directory or home may legitimately hold a config
		// file, so only the absence of a panic is checked here.
		_ = FindConfigFile("")
	})
}

// TestXDGDirs covers the XDG directory helpers.
func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir returns non-empty path ending in app name", func(t *testing.T) {
		t.Parallel()
		dir := XDGDataDir()
		if dir == "" {
			t.Error("expected non-empty data dir")
		}
		if filepath.Base(dir) != AppName {
			t.Errorf("expected data dir to end in %q, got %q", AppName, dir)
		}
	})

	t.Run("XDGConfigDir returns non-empty path ending in app name", func(t *testing.T) {
		t.Parallel()
		dir := XDGConfigDir()
		if dir == "" {
			t.Error("expected non-empty config dir")
		}
		if filepath.Base(dir) != AppName {
			t.Errorf("expected config dir to end in %q, got %q", AppName, dir)
		}
	})
}
