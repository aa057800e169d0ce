package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. These mirror the request shaping the target
// site tolerates in practice; pushing batch size up or delays down tends to
// end in temporary blocks.
const (
	// DefaultBaseURL is the root of the for-sale search tree.
	DefaultBaseURL = "https://www.property24.com/for-sale"

	// DefaultProvince is the province slug used in search URLs.
	DefaultProvince = "gauteng"

	// DefaultRegionCode is the site's numeric area code that follows the
	// province slug in search URLs. 1 is the code for the whole province
	// of Gauteng.
	DefaultRegionCode = 1

	// DefaultStartPage is the first search-results page to fetch.
	DefaultStartPage = 1

	// DefaultMaxPages is the number of search-results pages to fetch.
	// The range is a fixed bound; an empty page does not stop the scan
	// early, it only logs.
	DefaultMaxPages = 10

	// DefaultBatchSize is the number of concurrent fetches per batch.
	// Ten in-flight requests through a residential proxy stays under the
	// site's burst detection.
	DefaultBatchSize = 10

	// DefaultTimeout is the per-request timeout, retries excluded.
	DefaultTimeout = 30 * time.Second

	// DefaultSearchDelay and DefaultSearchJitter shape the pause between
	// search-page batches: the base delay plus a uniform random share of
	// the jitter.
	DefaultSearchDelay  = 3 * time.Second
	DefaultSearchJitter = 3 * time.Second

	// DefaultListingDelay and DefaultListingJitter shape the pause between
	// detail-page batches. Detail pages are heavier for the site to
	// render, so the pause is longer.
	DefaultListingDelay  = 5 * time.Second
	DefaultListingJitter = 5 * time.Second

	// AppName is the application name used for XDG directory paths.
	AppName = "p24harvest"

	// DefaultMaxBodySize limits the response body size read per page.
	// Detail pages with inlined gallery JSON stay well under 5MB.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB
)

// Config holds all configuration options for a scrape run.
// This struct is populated from CLI flags and the optional config file and
// passed through the application via dependency injection rather than
// global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., FetchConfig, OutputConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant benefit.
type Config struct {
	// BaseURL is the root of the for-sale search tree.
	BaseURL string

	// Province is the province slug in search URLs ("gauteng",
	// "western-cape", ...).
	Province string

	// RegionCode is the numeric area code paired with the province slug.
	RegionCode int

	// StartPage is the first search-results page number, 1-based.
	StartPage int

	// MaxPages is how many search-results pages to fetch from StartPage.
	MaxPages int

	// BatchSize is the number of concurrent fetches per batch. The next
	// batch never starts before the previous one fully drains.
	BatchSize int

	// Timeout is the per-request timeout. Individual timeouts fail that
	// request only, never the run.
	Timeout time.Duration

	// SearchDelay/SearchJitter and ListingDelay/ListingJitter shape the
	// jittered pause between batches in Phase 1 and Phase 2 respectively.
	SearchDelay   time.Duration
	SearchJitter  time.Duration
	ListingDelay  time.Duration
	ListingJitter time.Duration

	// OutputFile is the JSON output path. Empty means derive
	// "<province>_listings.json" in the working directory.
	OutputFile string

	// ReportFile, when set, additionally writes a markdown run report to
	// this path.
	ReportFile string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only info and above are logged.
	Verbose bool

	// ConfigFilePath is the path to the configuration file. If empty, the
	// tool searches for .p24harvest in the current directory and then in
	// the user's home directory.
	ConfigFilePath string

	// Profile holds the settings loaded from the config file, including
	// selector overrides. Nil when no config file was found.
	Profile *File

	// DBDir is the directory for the local SQLite listing database.
	// Defaults to the XDG data directory.
	DBDir string

	// PostgresDSN, when set, stores listings in Postgres instead of the
	// local SQLite database.
	PostgresDSN string

	// NoStore disables listing persistence entirely.
	NoStore bool

	// CheckOnly runs the proxy/target preflight probe and exits without
	// scraping.
	CheckOnly bool

	// MaxBodySize is the maximum response body size in bytes to read.
	// Responses larger than this are truncated. Zero means the default.
	MaxBodySize int64
}

// NewConfig creates a Config with default values. Users override specific
// values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (page range, batch size,
// delays). This also serves as documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		Province:      DefaultProvince,
		RegionCode:    DefaultRegionCode,
		StartPage:     DefaultStartPage,
		MaxPages:      DefaultMaxPages,
		BatchSize:     DefaultBatchSize,
		Timeout:       DefaultTimeout,
		SearchDelay:   DefaultSearchDelay,
		SearchJitter:  DefaultSearchJitter,
		ListingDelay:  DefaultListingDelay,
		ListingJitter: DefaultListingJitter,
		MaxBodySize:   DefaultMaxBodySize,
	}
}

// SearchPageURL builds the search-results URL for one page number:
// <base>/<province>/<regionCode>/p<page>.
func (c *Config) SearchPageURL(page int) string {
	return fmt.Sprintf("%s/%s/%d/p%d", c.BaseURL, c.Province, c.RegionCode, page)
}

// SearchPageURLs builds the full configured page range in order.
func (c *Config) SearchPageURLs() []string {
	urls := make([]string, 0, c.MaxPages)
	for i := range c.MaxPages {
		urls = append(urls, c.SearchPageURL(c.StartPage+i))
	}
	return urls
}

// ResolvedOutputFile returns OutputFile, or the derived
// "<province>_listings.json" when unset.
func (c *Config) ResolvedOutputFile() string {
	if c.OutputFile != "" {
		return c.OutputFile
	}
	return c.Province + "_listings.json"
}

// Selectors returns the selector profile for the run: the defaults overlaid
// with any overrides from the config file.
func (c *Config) Selectors() Selectors {
	if c.Profile == nil {
		return DefaultSelectors()
	}
	return c.Profile.MergedSelectors()
}

// XDGDataDir returns the XDG data directory for p24harvest.
// On Linux: ~/.local/share/p24harvest
// On macOS: ~/Library/Application Support/p24harvest
// On Windows: %LOCALAPPDATA%\p24harvest
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for p24harvest.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid and returns a specific
// error describing the first problem found.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any fetching begins.
func (c *Config) Validate() error {
	if c.Province == "" {
		return ErrNoProvince
	}

	if c.RegionCode <= 0 {
		return ErrInvalidRegionCode
	}

	if c.StartPage < 1 {
		return ErrInvalidStartPage
	}

	if c.MaxPages <= 0 {
		return ErrInvalidPageCount
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.SearchDelay < 0 || c.ListingDelay < 0 || c.SearchJitter < 0 || c.ListingJitter < 0 {
		return ErrInvalidDelay
	}

	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
