// Package pipeline orchestrates a scrape run as a sequence of phases.
//
// A run walks two phases over a shared ScrapeResult: discovery reads the
// configured search pages and builds the frontier of listing URLs, then
// extraction fetches every frontier URL and turns the pages into listings.
// Each phase is implemented as a Step that receives the accumulated result
// and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of phases without modifying core logic
// 2. It provides consistent error handling and logging across phases
// 3. It supports cancellation via context for long-running runs
//
// Fetching inside a phase is batched: the BatchFetcher runs at most one
// batch of concurrent requests at a time and joins every batch before the
// next one starts, with a jittered pause in between. Per-page failures are
// tallied in the run summary and never abort the run; only context
// cancellation does.
package pipeline
