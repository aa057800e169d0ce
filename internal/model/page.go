package model

import (
	"bytes"
	"io"
	"time"
)

// MaxBodySize is the maximum number of response bytes retained per fetched
// page. Detail pages run one to two megabytes with inlined JSON; anything
// past this limit is truncated by the transport.
const MaxBodySize = 5 * 1024 * 1024 // 5 MB

// Page is one fetched document together with its response metadata.
// The body is kept as raw bytes so both HTML parsers can re-read it.
type Page struct {
	// URL is the request URL the page was fetched from.
	URL string `json:"url"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// Body contains the (possibly truncated) response body.
	Body []byte `json:"-"`

	// FetchedAt is when the request completed.
	FetchedAt time.Time `json:"fetched_at"`

	// Elapsed is the wall-clock duration of the fetch, retries included.
	Elapsed time.Duration `json:"elapsed"`
}

// Reader returns a fresh reader over the page body.
func (p *Page) Reader() io.Reader {
	return bytes.NewReader(p.Body)
}

// Truncated reports whether the body hit the retention limit.
func (p *Page) Truncated() bool {
	return len(p.Body) >= MaxBodySize
}
