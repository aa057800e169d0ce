package transport

import "errors"

// Fetch errors.
//
// Design decision: Failure modes that callers inspect get sentinels
// instead of ad-hoc strings. The preflight probe, for one, reads a bad
// HTTP status as proof the origin is reachable through the proxy, and
// only errors.Is makes that branch robust.
var (
	// ErrHTTPStatus is returned when the server responds with a non-2xx
	// status code. The wrapping error carries the URL and the code.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrEmptyURL is returned when Get is called with an empty URL.
	ErrEmptyURL = errors.New("empty request URL")
)
