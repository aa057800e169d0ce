package dedup

import "sync"

// Tracker is the run-scoped duplicate filter. It answers two questions:
// has this URL been scheduled before, and has this listing identifier been
// accepted before. The zero value is not usable; call NewTracker.
type Tracker struct {
	mu              sync.Mutex
	seenURLs        map[string]struct{}
	seenIdentifiers map[string]struct{}
}

// NewTracker returns an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		seenURLs:        make(map[string]struct{}),
		seenIdentifiers: make(map[string]struct{}),
	}
}

// ShouldFetch reports whether url has not been seen before and, if so,
// marks it seen in the same critical section. Exactly one caller observes
// true for any given url, no matter how many race.
func (t *Tracker) ShouldFetch(url string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, seen := t.seenURLs[url]; seen {
		return false
	}
	t.seenURLs[url] = struct{}{}
	return true
}

// TryAccept reports whether identifier has not been accepted before and, if
// so, marks it accepted in the same critical section. Exactly one caller
// observes true for any given identifier.
func (t *Tracker) TryAccept(identifier string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, seen := t.seenIdentifiers[identifier]; seen {
		return false
	}
	t.seenIdentifiers[identifier] = struct{}{}
	return true
}

// URLCount returns the number of distinct URLs marked for fetching.
func (t *Tracker) URLCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seenURLs)
}

// IdentifierCount returns the number of distinct accepted identifiers.
func (t *Tracker) IdentifierCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.seenIdentifiers)
}
