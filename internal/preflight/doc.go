// Package preflight probes the target site before a run starts.
//
// A probe fetches the first search page through the same proxy transport
// the scraper will use and reports reachability, HTTP status, and latency.
// It answers whether a run will get off the ground without spending the
// full page budget.
package preflight
