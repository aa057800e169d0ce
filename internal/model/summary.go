package model

import "time"

// RunSummary holds the per-phase counters for one scrape run. Every document
// the pipeline touches lands in exactly one counter per phase, so silent loss
// is visible by comparing totals.
type RunSummary struct {
	// StartedAt is when Phase 1 began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the run.
	Elapsed time.Duration `json:"elapsed"`

	// === Phase 1 (discovery) ===

	// SearchPagesPlanned is the number of search pages in the configured range.
	SearchPagesPlanned int `json:"search_pages_planned"`

	// SearchPagesFetched is the number of search pages fetched successfully.
	SearchPagesFetched int `json:"search_pages_fetched"`

	// SearchPagesFailed is the number of search-page fetches that failed.
	SearchPagesFailed int `json:"search_pages_failed"`

	// LinksFound is the number of detail-page links seen before URL dedup.
	LinksFound int `json:"links_found"`

	// DuplicateURLs is the number of links rejected as already seen.
	DuplicateURLs int `json:"duplicate_urls"`

	// FrontierSize is the number of unique URLs handed to Phase 2.
	FrontierSize int `json:"frontier_size"`

	// === Phase 2 (extraction) ===

	// ListingsFetched is the number of detail pages fetched successfully.
	ListingsFetched int `json:"listings_fetched"`

	// ListingsFailed is the number of detail-page fetches that failed.
	ListingsFailed int `json:"listings_failed"`

	// ExtractionFailures is the number of fetched documents discarded
	// because required structure (the listing number) was missing.
	ExtractionFailures int `json:"extraction_failures"`

	// DuplicateListings is the number of documents whose listing number
	// was already accepted.
	DuplicateListings int `json:"duplicate_listings"`

	// Accepted is the number of records in the final collection.
	Accepted int `json:"accepted"`
}

// ScrapeResult is everything one run produces: the accepted listings in
// acceptance order plus the run counters. The frontier is carried between
// the discovery and extraction steps and excluded from serialized output.
type ScrapeResult struct {
	// Listings is the deduplicated, normalized result collection.
	Listings []Listing `json:"listings"`

	// Summary holds the run counters.
	Summary RunSummary `json:"summary"`

	// Frontier is the unique detail URLs discovered in Phase 1, in
	// discovery order.
	Frontier []string `json:"-"`
}

// NewScrapeResult returns an empty result with the start time recorded.
func NewScrapeResult() *ScrapeResult {
	return &ScrapeResult{
		Listings: []Listing{},
		Summary:  RunSummary{StartedAt: time.Now()},
	}
}
