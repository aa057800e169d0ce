// Package transport provides the HTTP client every fetch goes through.
//
// All requests are routed through an authenticated forward proxy (HTTP or
// SOCKS5) and carry a desktop-browser header profile. The client enforces
// per-request timeouts, caps response body sizes, and retries transient
// failures with exponential backoff.
//
// The package is designed to be used with dependency injection - create a
// Client and pass it to components that need network access rather than
// using global state.
package transport
