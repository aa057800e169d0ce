package config

import "errors"

// Validation errors returned by Config.Validate() and the proxy
// credential loader.
//
// Design decision: Each failure mode gets a package-level sentinel so the
// command layer can branch with errors.Is (the missing-credential case
// points the user at the proxy environment variables) while the message
// text stays readable on its own.
var (
	// ErrNoProvince is returned when the province slug is empty.
	// Search URLs cannot be built without one.
	ErrNoProvince = errors.New("no province specified")

	// ErrInvalidRegionCode is returned when the area code is not positive.
	ErrInvalidRegionCode = errors.New("invalid region code: must be positive")

	// ErrInvalidStartPage is returned when the start page is below 1.
	// Search pagination is 1-based.
	ErrInvalidStartPage = errors.New("invalid start page: pages are numbered from 1")

	// ErrInvalidPageCount is returned when the page count is not positive.
	// Zero pages would mean an empty Phase 1.
	ErrInvalidPageCount = errors.New("invalid page count: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no fetching at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	// A zero timeout would fail every request immediately.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidDelay is returned when a batch delay or jitter is negative.
	// Use 0 to disable the pause between batches.
	ErrInvalidDelay = errors.New("invalid batch delay: must be non-negative")

	// ErrInvalidMaxBodySize is returned when the max body size is negative.
	// Use 0 to apply the default limit.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrMissingCredential is returned when a required proxy environment
	// variable is absent or empty. The fetch layer never starts without a
	// complete credential set.
	ErrMissingCredential = errors.New("missing proxy credential")

	// ErrInvalidProxyPort is returned when PROXY_PORT is not a valid port
	// number.
	ErrInvalidProxyPort = errors.New("invalid proxy port")

	// ErrInvalidProxyScheme is returned when PROXY_SCHEME is neither http
	// nor socks5.
	ErrInvalidProxyScheme = errors.New("invalid proxy scheme: use http or socks5")
)
