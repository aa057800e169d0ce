package model

import (
	"errors"
	"regexp"
	"strings"
)

// ListingURL errors.
var (
	// ErrInvalidListingURL is returned when the URL does not match the
	// detail-page pattern.
	ErrInvalidListingURL = errors.New("invalid listing URL")
	// ErrEmptyListingURL is returned when the URL is empty.
	ErrEmptyListingURL = errors.New("listing URL cannot be empty")
)

// listingURLPattern matches detail-page addresses of the form
// /for-sale/<suburb>/<city>/<province>/<areaID>/<listingID>, with an
// optional query string. Search pages, agency pages and development pages
// do not match.
var listingURLPattern = regexp.MustCompile(`(?i)^https://(www\.)?property24\.com/for-sale/.+?/.+?/.+?/\d+/\d+/?(\?.*)?$`)

// ListingURL is an immutable value object representing one detail-page
// address. Identity is the exact string: two URLs differing only in query
// parameters are distinct ListingURLs and may later dedup by listing number.
type ListingURL struct {
	raw string
}

// NewListingURL validates raw against the detail-page pattern and returns it
// as a ListingURL. Leading and trailing whitespace is trimmed; nothing else
// is rewritten.
func NewListingURL(raw string) (ListingURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ListingURL{}, ErrEmptyListingURL
	}
	if !listingURLPattern.MatchString(trimmed) {
		return ListingURL{}, ErrInvalidListingURL
	}
	return ListingURL{raw: trimmed}, nil
}

// MustNewListingURL creates a ListingURL or panics if invalid.
// Use only for known-valid addresses in tests or initialization.
func MustNewListingURL(raw string) ListingURL {
	u, err := NewListingURL(raw)
	if err != nil {
		panic(err)
	}
	return u
}

// IsListingURL reports whether raw matches the detail-page pattern.
func IsListingURL(raw string) bool {
	return listingURLPattern.MatchString(strings.TrimSpace(raw))
}

// String returns the URL as given.
func (u ListingURL) String() string {
	return u.raw
}

// IsZero returns true if this is a zero value ListingURL.
func (u ListingURL) IsZero() bool {
	return u.raw == ""
}

// Equals returns true if two ListingURLs are the same exact string.
func (u ListingURL) Equals(other ListingURL) bool {
	return u.raw == other.raw
}
