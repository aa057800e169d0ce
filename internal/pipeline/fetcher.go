package pipeline

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/p24harvest/p24harvest/internal/model"
)

// Getter fetches one page. The transport client satisfies this; tests
// substitute their own.
type Getter interface {
	Get(ctx context.Context, url string) (*model.Page, error)
}

// Outcome is the result of fetching one URL. Exactly one of Page and Err
// is set.
type Outcome struct {
	// URL is the requested URL.
	URL string

	// Page is the fetched page on success.
	Page *model.Page

	// Err is the fetch error on failure.
	Err error
}

// BatchFetcher fetches URL lists in strict batches: at most batchSize
// requests are in flight at once, a batch is fully joined before the next
// one starts, and consecutive batches are separated by a jittered pause.
//
// Design decision: We keep the hard join between batches rather than a
// rolling window of in-flight requests because the pause between full
// batches is what keeps the request pattern polite and predictable.
type BatchFetcher struct {
	// getter performs the individual fetches.
	getter Getter

	// batchSize is the maximum number of concurrent requests.
	batchSize int

	// delay and jitter shape the pause between batches: delay plus a
	// uniformly random extra in [0, jitter).
	delay  time.Duration
	jitter time.Duration

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// FetchOption configures a BatchFetcher.
type FetchOption func(*BatchFetcher)

// WithFetchBatchSize sets the maximum number of concurrent requests.
// Default is 10 if not specified.
func WithFetchBatchSize(n int) FetchOption {
	return func(f *BatchFetcher) {
		if n > 0 {
			f.batchSize = n
		}
	}
}

// WithFetchDelay sets the pause between batches. Each pause lasts delay
// plus a random extra in [0, jitter).
func WithFetchDelay(delay, jitter time.Duration) FetchOption {
	return func(f *BatchFetcher) {
		f.delay = delay
		f.jitter = jitter
	}
}

// WithFetchLogger sets a custom logger for batch fetching.
func WithFetchLogger(logger *slog.Logger) FetchOption {
	return func(f *BatchFetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewBatchFetcher creates a BatchFetcher around the given Getter.
func NewBatchFetcher(getter Getter, opts ...FetchOption) *BatchFetcher {
	f := &BatchFetcher{
		getter:    getter,
		batchSize: 10,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// FetchAll fetches every URL and returns one Outcome per URL in input
// order. Individual failures are recorded in their Outcome; the only error
// FetchAll itself returns is context cancellation, and the outcomes
// gathered so far are returned alongside it.
func (f *BatchFetcher) FetchAll(ctx context.Context, urls []string) ([]Outcome, error) {
	// Index-addressed so results keep input order; each goroutine writes
	// only its own slot, so no mutex is needed.
	outcomes := make([]Outcome, len(urls))

	for start := 0; start < len(urls); start += f.batchSize {
		end := min(start+f.batchSize, len(urls))

		f.logger.Debug("fetching batch",
			"from", start,
			"to", end,
			"total", len(urls),
		)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(f.batchSize)

		for i, pageURL := range urls[start:end] {
			idx := start + i
			g.Go(func() error {
				select {
				case <-gctx.Done():
					outcomes[idx] = Outcome{URL: pageURL, Err: gctx.Err()}
					return gctx.Err()
				default:
				}

				page, err := f.getter.Get(gctx, pageURL)
				outcomes[idx] = Outcome{URL: pageURL, Page: page, Err: err}
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return outcomes, err
		}

		// Pause before the next batch, never after the last one.
		if end < len(urls) {
			if err := f.pause(ctx); err != nil {
				return outcomes, err
			}
		}
	}

	return outcomes, nil
}

// pause sleeps for the configured inter-batch delay plus jitter.
func (f *BatchFetcher) pause(ctx context.Context) error {
	wait := f.delay
	if f.jitter > 0 {
		wait += rand.N(f.jitter)
	}
	if wait <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(wait):
		return nil
	}
}
