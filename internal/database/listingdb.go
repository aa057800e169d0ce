package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/p24harvest/p24harvest/internal/model"
)

// ErrNoDatabase is returned by OpenExisting when no listing database has
// been created yet.
var ErrNoDatabase = errors.New("listing database does not exist")

// dbFileName is the SQLite file kept under the data directory.
const dbFileName = "p24harvest.db"

// sqliteTimeFormat is the layout SaveRun stores for started_at. It matches
// what CURRENT_TIMESTAMP produces, so every timestamp column reads back in
// one shape.
const sqliteTimeFormat = "2006-01-02 15:04:05"

// ListingDB provides SQLite-based storage for harvested listings and run
// history.
//
// Design decision: We store each listing as a JSON blob alongside a few
// promoted columns rather than one column per field because:
// 1. Listings carry dynamic feature keys that do not fit a fixed schema
// 2. Export re-renders records through the same JSON shape the output files use
// 3. The promoted columns cover the only filters we query on
type ListingDB struct {
	db     *sql.DB
	dbPath string
}

// sqliteUpsertListing is shared by UpsertListing and SaveRun. A conflict on
// the listing number refreshes the row but keeps its first_seen timestamp.
const sqliteUpsertListing = `
	INSERT INTO listings (listing_no, province, city, town, url, record_json)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(listing_no) DO UPDATE SET
		province = excluded.province,
		city = excluded.city,
		town = excluded.town,
		url = excluded.url,
		record_json = excluded.record_json,
		last_seen = CURRENT_TIMESTAMP
	`

// Open opens the listing database under dbDir, creating the directory, the
// file, and the schema on first use. This is the scrape path: a fresh
// machine gets a working store without any setup step.
func Open(dbDir string) (*ListingDB, error) {
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return openFile(filepath.Join(dbDir, dbFileName), true)
}

// OpenExisting opens the listing database under dbDir without creating
// anything. Read paths such as export use it so that asking for stored
// listings never materializes an empty database as a side effect. Returns
// ErrNoDatabase when the file is absent.
func OpenExisting(dbDir string) (*ListingDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)
	if _, err := os.Stat(dbPath); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoDatabase, dbPath)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", dbPath, err)
	}
	return openFile(dbPath, false)
}

// openFile connects to the SQLite file and prepares it for use. The create
// flag maps to the driver's mode parameter, so even a race between Stat and
// open cannot conjure a new file on the read path.
func openFile(dbPath string, create bool) (*ListingDB, error) {
	mode := "rw"
	if create {
		mode = "rwc"
	}

	db, err := sql.Open("sqlite", dbPath+"?mode="+mode)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing database: %w", err)
	}

	// One connection is enough: the scraper writes from a single goroutine
	// and export only reads. It also sidesteps SQLITE_BUSY between a
	// writer and a second pooled connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	// WAL keeps a concurrent export readable while a scrape is committing.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	ldb := &ListingDB{db: db, dbPath: dbPath}
	if err := ldb.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to prepare schema: %w", err)
	}

	return ldb, nil
}

// Close closes the database connection.
func (ldb *ListingDB) Close() error {
	return ldb.db.Close()
}

// Path returns the location of the database file.
func (ldb *ListingDB) Path() string {
	return ldb.dbPath
}

// ensureSchema applies the schema, which is written to be re-runnable on
// every open.
func (ldb *ListingDB) ensureSchema() error {
	schema := `
	-- Listings store one row per unique listing number
	CREATE TABLE IF NOT EXISTS listings (
		listing_no TEXT PRIMARY KEY,
		province TEXT NOT NULL DEFAULT '',
		city TEXT NOT NULL DEFAULT '',
		town TEXT NOT NULL DEFAULT '',
		url TEXT NOT NULL DEFAULT '',
		record_json TEXT NOT NULL,
		first_seen DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_seen DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_listings_province ON listings(province);
	CREATE INDEX IF NOT EXISTS idx_listings_town ON listings(town);

	-- Runs store one row per completed scrape with its counters as JSON
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		province TEXT NOT NULL,
		accepted INTEGER NOT NULL,
		summary_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`

	_, err := ldb.db.ExecContext(context.Background(), schema)
	return err
}

// SaveRun records one completed scrape run and upserts every listing it
// accepted, in a single transaction. A run with zero accepted listings is
// still recorded so gaps in the history are visible.
func (ldb *ListingDB) SaveRun(ctx context.Context, province string, result *model.ScrapeResult) (int64, error) {
	summaryJSON, err := json.Marshal(result.Summary)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize run summary: %w", err)
	}

	tx, err := ldb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	query := `
	INSERT INTO runs (started_at, elapsed_ms, province, accepted, summary_json)
	VALUES (?, ?, ?, ?, ?)
	`

	res, err := tx.ExecContext(ctx, query,
		result.Summary.StartedAt.UTC().Format(sqliteTimeFormat),
		result.Summary.Elapsed.Milliseconds(),
		province,
		result.Summary.Accepted,
		string(summaryJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for i := range result.Listings {
		if err = upsertListing(ctx, tx, sqliteUpsertListing, &result.Listings[i]); err != nil {
			return 0, err
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// UpsertListing inserts a listing or refreshes the stored row with the same
// listing number.
func (ldb *ListingDB) UpsertListing(ctx context.Context, listing *model.Listing) error {
	return upsertListing(ctx, ldb.db, sqliteUpsertListing, listing)
}

// GetListing retrieves a stored listing by listing number.
func (ldb *ListingDB) GetListing(ctx context.Context, listingNo string) (*model.Listing, error) {
	query := `
	SELECT record_json FROM listings
	WHERE listing_no = ?
	`

	var recordJSON string
	err := ldb.db.QueryRowContext(ctx, query, listingNo).Scan(&recordJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	var listing model.Listing
	if err := json.Unmarshal([]byte(recordJSON), &listing); err != nil {
		return nil, fmt.Errorf("failed to parse listing: %w", err)
	}

	return &listing, nil
}

// Listings returns stored listings with an optional province filter.
func (ldb *ListingDB) Listings(ctx context.Context, province string) ([]model.Listing, error) {
	query := `SELECT record_json FROM listings`
	var args []any

	if province != "" {
		query += " WHERE province = ?"
		args = append(args, province)
	}
	query += " ORDER BY listing_no"

	rows, err := ldb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []model.Listing
	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}

		var listing model.Listing
		if err := json.Unmarshal([]byte(recordJSON), &listing); err != nil {
			continue // skip rows whose stored JSON no longer parses
		}
		listings = append(listings, listing)
	}

	return listings, rows.Err()
}

// CountListings returns the number of stored listings.
func (ldb *ListingDB) CountListings(ctx context.Context) (int, error) {
	var count int
	err := ldb.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM listings").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}

	return count, nil
}

// Runs returns stored run records, newest first.
func (ldb *ListingDB) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	query := `
	SELECT id, started_at, elapsed_ms, province, accepted, summary_json
	FROM runs
	ORDER BY started_at DESC, id DESC
	`
	var args []any

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := ldb.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var rec RunRecord
		var startedAt string
		var elapsedMS int64
		var summaryJSON string

		if err := rows.Scan(&rec.ID, &startedAt, &elapsedMS, &rec.Province, &rec.Accepted, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		rec.StartedAt = parseTimestamp(startedAt)
		rec.Elapsed = time.Duration(elapsedMS) * time.Millisecond

		if summaryJSON != "" {
			if err := json.Unmarshal([]byte(summaryJSON), &rec.Summary); err != nil {
				rec.Summary = model.RunSummary{}
			}
		}

		records = append(records, rec)
	}

	return records, rows.Err()
}

// parseTimestamp reads a started_at column back into a time.Time. Rows
// written by SaveRun always use sqliteTimeFormat; RFC 3339 covers rows
// imported from elsewhere. An unreadable value becomes the zero time
// rather than failing the whole history query.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(sqliteTimeFormat, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	return time.Time{}
}

var _ Store = (*ListingDB)(nil)
