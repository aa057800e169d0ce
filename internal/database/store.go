package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/p24harvest/p24harvest/internal/model"
)

// Store is the persistence interface shared by the SQLite and PostgreSQL
// engines. The scrape command records completed runs through it, and the
// export command re-reads stored listings without caring which engine
// backs them.
type Store interface {
	// SaveRun records one completed scrape run and upserts every listing
	// it accepted. It returns the database id of the run row.
	SaveRun(ctx context.Context, province string, result *model.ScrapeResult) (int64, error)

	// UpsertListing inserts a listing or refreshes the stored row with
	// the same listing number.
	UpsertListing(ctx context.Context, listing *model.Listing) error

	// GetListing retrieves a stored listing by listing number.
	// It returns nil without error when no such listing is stored.
	GetListing(ctx context.Context, listingNo string) (*model.Listing, error)

	// Listings returns stored listings ordered by listing number.
	// An empty province returns every stored listing.
	Listings(ctx context.Context, province string) ([]model.Listing, error)

	// CountListings returns the number of stored listings.
	CountListings(ctx context.Context) (int, error)

	// Runs returns stored run records, newest first.
	// A limit of zero or less returns all of them.
	Runs(ctx context.Context, limit int) ([]RunRecord, error)

	// Close releases the underlying database handle.
	Close() error
}

// RunRecord summarizes one stored scrape run.
// This is what run-history listings display without loading listings.
type RunRecord struct {
	// ID is the unique identifier of the run in the database.
	ID int64

	// StartedAt is when the run began.
	StartedAt time.Time

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// Province is the province the run targeted.
	Province string

	// Accepted is the number of listings the run accepted.
	Accepted int

	// Summary holds the full counter set recorded for the run.
	Summary model.RunSummary
}

// execer is the write surface shared by sql.DB and sql.Tx, so the same
// upsert can run standalone or inside a run transaction.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// upsertListing serializes a listing and executes an engine-specific upsert
// statement. Both engines bind the same columns in the same order; only the
// placeholder syntax differs.
func upsertListing(ctx context.Context, ex execer, query string, listing *model.Listing) error {
	recordJSON, err := json.Marshal(listing)
	if err != nil {
		return fmt.Errorf("failed to serialize listing %s: %w", listing.ListingNo, err)
	}

	_, err = ex.ExecContext(ctx, query,
		listing.ListingNo,
		listing.Province,
		listing.City,
		listing.Town,
		listing.URL,
		string(recordJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to store listing %s: %w", listing.ListingNo, err)
	}

	return nil
}
