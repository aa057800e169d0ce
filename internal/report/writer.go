package report

import "github.com/p24harvest/p24harvest/internal/model"

// Writer renders scrape output in one format. The scrape command sends the
// collection to a JSONWriter and the console summary to a SimpleWriter;
// export re-renders stored listings through whichever implementation the
// flags pick.
type Writer interface {
	// Write renders a full scrape result, run counters included.
	// It returns the number of bytes written.
	Write(result *model.ScrapeResult) (int, error)

	// WriteListings renders a bare listing collection, the shape stored
	// listings come back in. Collections carry no run counters, so
	// implementations render only listing-derived content here.
	WriteListings(listings []model.Listing) (int, error)
}
