// Package report renders scrape results for people and for machines.
//
// Three writers share one interface: JSONWriter emits the listing collection
// as the consumer-facing JSON array, MarkdownWriter renders a run report with
// summary and coverage tables, and SimpleWriter prints a terse console
// summary.
//
// Writers receive a complete ScrapeResult from a scrape run, or a bare
// listing slice when re-rendering persisted data that has no run counters.
package report
