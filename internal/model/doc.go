// Package model defines the data structures shared across p24harvest.
//
// The main types:
//   - Listing: One extracted property listing with fixed and dynamic fields
//   - ListingURL: Validated detail-page address value object
//   - Page: One fetched document with response metadata
//   - RunSummary: Per-phase counters for a single scrape run
//   - ScrapeResult: The listings and summary produced by one run
//
// Design decision: These types live in a leaf package of their own because
// crawler, pipeline, report, and database all consume them; keeping them
// here keeps those packages free of imports into each other.
//
// Everything here serializes to JSON, both for the output files and for the
// record_json column in storage. Listing carries custom JSON marshaling
// because the output schema flattens dynamic feature keys into the listing
// object itself.
package model
