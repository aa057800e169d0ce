// Package dedup tracks which URLs and listing identifiers a run has already
// seen.
//
// The Tracker holds two independent sets: source URLs checked before a fetch
// is scheduled, and listing numbers checked before a record is accepted.
// Both queries are atomic check-and-set operations, so concurrent fetch
// handlers racing on the same key agree on a single winner. State lives for
// one run and is not persisted.
package dedup
