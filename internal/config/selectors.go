package config

import "time"

// Selectors holds the CSS selectors used to pull listing data out of a
// detail page. The zero value is unusable; start from DefaultSelectors and
// overlay config-file overrides via File.MergedSelectors.
//
// Property24 reshuffles its markup from time to time, so the selectors can
// be adjusted in the config file without a rebuild.
type Selectors struct {
	// Price selects the asking-price element.
	Price string `yaml:"price,omitempty"`

	// Size selects the floor-size element. Only the text before the first
	// colon is kept when a colon is present.
	Size string `yaml:"size,omitempty"`

	// Description selects the full description block.
	Description string `yaml:"description,omitempty"`

	// DescriptionFallback is tried when Description matches nothing.
	DescriptionFallback string `yaml:"descriptionFallback,omitempty"`

	// FeatureRows selects the container whose rows become key/value
	// features or free-standing feature entries.
	FeatureRows string `yaml:"featureRows,omitempty"`

	// Address selects the street-address element.
	Address string `yaml:"address,omitempty"`

	// Breadcrumbs selects the location breadcrumb items.
	Breadcrumbs string `yaml:"breadcrumbs,omitempty"`

	// ListingNo selects the element carrying the site's listing number.
	ListingNo string `yaml:"listingNo,omitempty"`

	// Image selects the gallery image wrappers; ImageAttr names the
	// attribute on those wrappers that carries the image URL.
	Image     string `yaml:"image,omitempty"`
	ImageAttr string `yaml:"imageAttr,omitempty"`
}

// DefaultSelectors returns the selector set matching the current
// Property24 markup.
func DefaultSelectors() Selectors {
	return Selectors{
		Price:               ".p24_price",
		Size:                ".p24_size",
		Description:         ".js_readMoreText",
		DescriptionFallback: ".js_readMoreContainer",
		FeatureRows:         ".p24_listingFeatures",
		Address:             ".p24_addressPropOverview",
		Breadcrumbs:         "#breadCrumbContainer li:not(:first-child)",
		ListingNo:           ".p24_propertyOverviewRow:nth-child(1) .p24_info",
		Image:               "div[class*=js_lightboxImageWrapper]",
		ImageAttr:           "data-image-url",
	}
}

// ScrapeFile mirrors the scrape section of the config file. All fields are
// optional; zero values leave the flag or built-in default untouched.
type ScrapeFile struct {
	// Province is the province slug used to build search page URLs.
	Province string `yaml:"province,omitempty"`

	// RegionCode is the numeric region identifier in search page URLs.
	RegionCode int `yaml:"regionCode,omitempty"`

	// StartPage is the first search page number to fetch.
	StartPage int `yaml:"startPage,omitempty"`

	// MaxPages is how many consecutive search pages to fetch.
	MaxPages int `yaml:"maxPages,omitempty"`

	// BatchSize caps how many requests run concurrently.
	BatchSize int `yaml:"batchSize,omitempty"`

	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `yaml:"timeoutSeconds,omitempty"`

	// SearchDelaySeconds and SearchJitterSeconds shape the pause between
	// search page batches: delay plus a random 0..jitter extra.
	SearchDelaySeconds  int `yaml:"searchDelaySeconds,omitempty"`
	SearchJitterSeconds int `yaml:"searchJitterSeconds,omitempty"`

	// ListingDelaySeconds and ListingJitterSeconds do the same for
	// listing page batches.
	ListingDelaySeconds  int `yaml:"listingDelaySeconds,omitempty"`
	ListingJitterSeconds int `yaml:"listingJitterSeconds,omitempty"`

	// Output overrides the JSON output path.
	Output string `yaml:"output,omitempty"`
}

// File represents the structure of the .p24harvest configuration file.
type File struct {
	// Scrape tunes page ranges, concurrency, and pacing.
	Scrape ScrapeFile `yaml:"scrape,omitempty"`

	// Selectors overrides individual extraction selectors. Fields left
	// empty fall back to the built-in defaults.
	Selectors Selectors `yaml:"selectors,omitempty"`
}

// MergedSelectors overlays the file's selector overrides on the defaults.
// Every empty field keeps its default, so a file may override a single
// selector without repeating the rest.
func (cf *File) MergedSelectors() Selectors {
	result := DefaultSelectors()

	if cf.Selectors.Price != "" {
		result.Price = cf.Selectors.Price
	}
	if cf.Selectors.Size != "" {
		result.Size = cf.Selectors.Size
	}
	if cf.Selectors.Description != "" {
		result.Description = cf.Selectors.Description
	}
	if cf.Selectors.DescriptionFallback != "" {
		result.DescriptionFallback = cf.Selectors.DescriptionFallback
	}
	if cf.Selectors.FeatureRows != "" {
		result.FeatureRows = cf.Selectors.FeatureRows
	}
	if cf.Selectors.Address != "" {
		result.Address = cf.Selectors.Address
	}
	if cf.Selectors.Breadcrumbs != "" {
		result.Breadcrumbs = cf.Selectors.Breadcrumbs
	}
	if cf.Selectors.ListingNo != "" {
		result.ListingNo = cf.Selectors.ListingNo
	}
	if cf.Selectors.Image != "" {
		result.Image = cf.Selectors.Image
	}
	if cf.Selectors.ImageAttr != "" {
		result.ImageAttr = cf.Selectors.ImageAttr
	}

	return result
}

// ApplyTo copies the file's scrape overrides onto cfg. Only fields the
// file actually sets are copied, so flag values and built-in defaults
// survive an empty or partial file.
func (cf *File) ApplyTo(cfg *Config) {
	if cf.Scrape.Province != "" {
		cfg.Province = cf.Scrape.Province
	}
	if cf.Scrape.RegionCode != 0 {
		cfg.RegionCode = cf.Scrape.RegionCode
	}
	if cf.Scrape.StartPage != 0 {
		cfg.StartPage = cf.Scrape.StartPage
	}
	if cf.Scrape.MaxPages != 0 {
		cfg.MaxPages = cf.Scrape.MaxPages
	}
	if cf.Scrape.BatchSize != 0 {
		cfg.BatchSize = cf.Scrape.BatchSize
	}
	if cf.Scrape.TimeoutSeconds != 0 {
		cfg.Timeout = secondsToDuration(cf.Scrape.TimeoutSeconds)
	}
	if cf.Scrape.SearchDelaySeconds != 0 {
		cfg.SearchDelay = secondsToDuration(cf.Scrape.SearchDelaySeconds)
	}
	if cf.Scrape.SearchJitterSeconds != 0 {
		cfg.SearchJitter = secondsToDuration(cf.Scrape.SearchJitterSeconds)
	}
	if cf.Scrape.ListingDelaySeconds != 0 {
		cfg.ListingDelay = secondsToDuration(cf.Scrape.ListingDelaySeconds)
	}
	if cf.Scrape.ListingJitterSeconds != 0 {
		cfg.ListingJitter = secondsToDuration(cf.Scrape.ListingJitterSeconds)
	}
	if cf.Scrape.Output != "" {
		cfg.OutputFile = cf.Scrape.Output
	}
}

func secondsToDuration(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}
