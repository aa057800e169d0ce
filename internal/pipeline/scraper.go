package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/p24harvest/p24harvest/internal/config"
	"github.com/p24harvest/p24harvest/internal/crawler"
	"github.com/p24harvest/p24harvest/internal/dedup"
	"github.com/p24harvest/p24harvest/internal/model"
)

// Scraper wires the discovery and extraction steps into a runnable two-phase
// scrape. It owns nothing long-lived besides its collaborators: each Run
// builds a fresh dedup tracker, parsers and pipeline, so one Scraper can be
// reused across runs without state bleeding between them.
//
// Design decision: We provide this orchestrator instead of wiring steps in
// the CLI because:
// 1. Most callers want the standard two-phase run
// 2. It keeps the CLI free of fetcher/parser/tracker boilerplate
// 3. The full flow stays testable without a command invocation
type Scraper struct {
	// cfg holds the run configuration.
	cfg *config.Config

	// getter performs the page fetches. The transport client in production,
	// a stub in tests.
	getter Getter

	// logger for structured logging.
	logger *slog.Logger
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithScraperLogger sets a custom logger for the scrape run.
func WithScraperLogger(logger *slog.Logger) ScraperOption {
	return func(s *Scraper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScraper creates a Scraper for the given configuration and Getter.
func NewScraper(cfg *config.Config, getter Getter, opts ...ScraperOption) *Scraper {
	s := &Scraper{
		cfg:    cfg,
		getter: getter,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Run executes one full scrape: discovery over the configured search-page
// range, then extraction over the resulting frontier. The returned result
// always carries whatever counters and listings accumulated, including when
// err reports cancellation, so a partial collection stays flushable.
func (s *Scraper) Run(ctx context.Context) (*model.ScrapeResult, error) {
	tracker := dedup.NewTracker()

	linkParser, err := crawler.NewLinkParser(s.cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("build link parser: %w", err)
	}
	listingParser := crawler.NewListingParser(s.cfg.Selectors())

	// Search and detail pages get separate fetchers because the pause
	// between their batches differs.
	searchFetcher := NewBatchFetcher(s.getter,
		WithFetchBatchSize(s.cfg.BatchSize),
		WithFetchDelay(s.cfg.SearchDelay, s.cfg.SearchJitter),
		WithFetchLogger(s.logger),
	)
	listingFetcher := NewBatchFetcher(s.getter,
		WithFetchBatchSize(s.cfg.BatchSize),
		WithFetchDelay(s.cfg.ListingDelay, s.cfg.ListingJitter),
		WithFetchLogger(s.logger),
	)

	p := New([]Step{
		NewDiscoverStep(s.cfg, searchFetcher, linkParser, tracker, s.logger),
		NewExtractStep(listingFetcher, listingParser, tracker, s.logger),
	}, WithLogger(s.logger))

	result := model.NewScrapeResult()
	runErr := p.Execute(ctx, result)
	result.Summary.Elapsed = time.Since(result.Summary.StartedAt)

	if runErr != nil {
		return result, runErr
	}
	return result, nil
}
