package pipeline

import (
	"context"
	"log/slog"

	"github.com/p24harvest/p24harvest/internal/config"
	"github.com/p24harvest/p24harvest/internal/crawler"
	"github.com/p24harvest/p24harvest/internal/dedup"
	"github.com/p24harvest/p24harvest/internal/model"
	"github.com/p24harvest/p24harvest/internal/normalize"
)

// DiscoverStep fetches the configured search-results pages and collects the
// unique detail-page URLs into the frontier. A search page that fails to
// fetch costs only its own links; the step itself fails only on context
// cancellation.
type DiscoverStep struct {
	cfg     *config.Config
	fetcher *BatchFetcher
	links   *crawler.LinkParser
	tracker *dedup.Tracker
	logger  *slog.Logger
}

// NewDiscoverStep creates a DiscoverStep.
func NewDiscoverStep(cfg *config.Config, fetcher *BatchFetcher, links *crawler.LinkParser, tracker *dedup.Tracker, logger *slog.Logger) *DiscoverStep {
	return &DiscoverStep{
		cfg:     cfg,
		fetcher: fetcher,
		links:   links,
		tracker: tracker,
		logger:  logger,
	}
}

// Name returns the step name.
func (s *DiscoverStep) Name() string {
	return "discover_listings"
}

// Do fetches every search page in the configured range and fills
// result.Frontier with the detail URLs, first-seen order, duplicates dropped.
func (s *DiscoverStep) Do(ctx context.Context, result *model.ScrapeResult) error {
	urls := s.cfg.SearchPageURLs()
	result.Summary.SearchPagesPlanned = len(urls)

	s.logger.Info("discovering listings",
		"province", s.cfg.Province,
		"start_page", s.cfg.StartPage,
		"pages", len(urls),
	)

	outcomes, err := s.fetcher.FetchAll(ctx, urls)

	// Tally whatever completed, even when the run was cancelled mid-batch.
	for _, o := range outcomes {
		switch {
		case o.Page != nil:
			s.collect(result, o)
		case o.Err != nil:
			result.Summary.SearchPagesFailed++
			s.logger.Warn("search page fetch failed",
				"url", o.URL,
				"error", o.Err,
			)
		}
	}
	result.Summary.FrontierSize = len(result.Frontier)

	if err != nil {
		return err
	}

	s.logger.Info("discovery complete",
		"pages_fetched", result.Summary.SearchPagesFetched,
		"pages_failed", result.Summary.SearchPagesFailed,
		"links_found", result.Summary.LinksFound,
		"duplicate_urls", result.Summary.DuplicateURLs,
		"frontier_size", result.Summary.FrontierSize,
	)
	return nil
}

// collect parses one fetched search page and feeds its links through the
// URL filter into the frontier.
func (s *DiscoverStep) collect(result *model.ScrapeResult, o Outcome) {
	links, err := s.links.Parse(o.Page.Reader())
	if err != nil {
		result.Summary.SearchPagesFailed++
		s.logger.Warn("search page parse failed",
			"url", o.URL,
			"error", err,
		)
		return
	}

	result.Summary.SearchPagesFetched++
	result.Summary.LinksFound += len(links)

	// An empty page inside the range is logged, never treated as the end
	// of the results.
	if len(links) == 0 {
		s.logger.Warn("no listings found on search page", "url", o.URL)
		return
	}

	for _, link := range links {
		if !s.tracker.ShouldFetch(link) {
			result.Summary.DuplicateURLs++
			continue
		}
		result.Frontier = append(result.Frontier, link)
	}
}

// ExtractStep fetches every frontier URL, extracts a listing from each
// document, and appends the accepted records to the result collection.
// Per-page fetch failures, missing listing numbers and duplicate listing
// numbers each land in their own counter; the step itself fails only on
// context cancellation.
type ExtractStep struct {
	fetcher *BatchFetcher
	parser  *crawler.ListingParser
	tracker *dedup.Tracker
	logger  *slog.Logger
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(fetcher *BatchFetcher, parser *crawler.ListingParser, tracker *dedup.Tracker, logger *slog.Logger) *ExtractStep {
	return &ExtractStep{
		fetcher: fetcher,
		parser:  parser,
		tracker: tracker,
		logger:  logger,
	}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract_listings"
}

// Do fetches the frontier and converts each document into at most one
// accepted listing. Acceptance order follows frontier order because outcomes
// are tallied in input order after each phase completes.
func (s *ExtractStep) Do(ctx context.Context, result *model.ScrapeResult) error {
	if len(result.Frontier) == 0 {
		s.logger.Warn("frontier is empty, nothing to extract")
		return nil
	}

	s.logger.Info("extracting listings", "frontier_size", len(result.Frontier))

	outcomes, err := s.fetcher.FetchAll(ctx, result.Frontier)

	for _, o := range outcomes {
		switch {
		case o.Page != nil:
			result.Summary.ListingsFetched++
			s.accept(result, o)
		case o.Err != nil:
			result.Summary.ListingsFailed++
			s.logger.Warn("listing page fetch failed",
				"url", o.URL,
				"error", o.Err,
			)
		}
	}
	result.Summary.Accepted = len(result.Listings)

	if err != nil {
		return err
	}

	s.logger.Info("extraction complete",
		"listings_fetched", result.Summary.ListingsFetched,
		"listings_failed", result.Summary.ListingsFailed,
		"extraction_failures", result.Summary.ExtractionFailures,
		"duplicate_listings", result.Summary.DuplicateListings,
		"accepted", result.Summary.Accepted,
	)
	return nil
}

// accept extracts one listing from a fetched document, filters it by listing
// number, and appends it normalized. A document without a listing number is
// discarded whole; partial records never enter the collection.
func (s *ExtractStep) accept(result *model.ScrapeResult, o Outcome) {
	listing, err := s.parser.Parse(o.URL, o.Page.Reader())
	if err != nil {
		result.Summary.ExtractionFailures++
		s.logger.Warn("listing discarded",
			"url", o.URL,
			"error", err,
		)
		return
	}

	if !s.tracker.TryAccept(listing.ListingNo) {
		result.Summary.DuplicateListings++
		s.logger.Debug("duplicate listing skipped",
			"url", o.URL,
			"listing_no", listing.ListingNo,
		)
		return
	}

	normalize.Apply(listing)
	result.Listings = append(result.Listings, *listing)
}
