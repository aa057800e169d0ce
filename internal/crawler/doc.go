// Package crawler extracts structured data from fetched pages.
//
// Two parsers cover the two page shapes the pipeline sees:
//
//   - LinkParser walks search-results pages and returns the property
//     listing URLs they reference, in document order with duplicates
//     removed.
//   - ListingParser pulls the fields of a single listing page (price,
//     size, description, features, address, location, listing number,
//     image URL) using a configurable CSS selector profile.
//
// Design decision: LinkParser uses golang.org/x/net/html directly because
// it only needs anchor tags, while ListingParser is built on goquery
// because listing extraction is selector-driven and the selectors must
// stay editable in the config file.
//
// Parsers are pure: they read a byte stream and return values, never
// touching the network. Fetching lives in the transport package.
package crawler
