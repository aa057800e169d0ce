package transport

import "net/http"

// Profile is a browser identity: a User-Agent plus the companion headers a
// real browser sends with a top-level navigation. Listing sites fingerprint
// bare HTTP clients aggressively, so every request carries a full profile.
type Profile struct {
	// Name identifies the profile in logs.
	Name string

	// UserAgent is the User-Agent header value.
	UserAgent string

	// Headers are the remaining headers set on every request.
	Headers map[string]string
}

// ChromeProfile returns a Chrome 110 desktop profile. The header set matches
// what Chrome 110 on Windows sends for a document navigation.
func ChromeProfile() Profile {
	return Profile{
		Name:      "chrome110",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/110.0.0.0 Safari/537.36",
		Headers: map[string]string{
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8,application/signed-exchange;v=b3;q=0.9",
			"Accept-Language":           "en-US,en;q=0.9",
			"Sec-Ch-Ua":                 `"Chromium";v="110", "Not A(Brand";v="24", "Google Chrome";v="110"`,
			"Sec-Ch-Ua-Mobile":          "?0",
			"Sec-Ch-Ua-Platform":        `"Windows"`,
			"Sec-Fetch-Dest":            "document",
			"Sec-Fetch-Mode":            "navigate",
			"Sec-Fetch-Site":            "none",
			"Sec-Fetch-User":            "?1",
			"Upgrade-Insecure-Requests": "1",
		},
	}
}

// DefaultProfile returns the profile used when none is configured.
func DefaultProfile() Profile {
	return ChromeProfile()
}

// profileTransport stamps the profile's headers onto every request that
// passes through it.
//
// Design decision: The stamping lives in a RoundTripper instead of at the
// call sites so redirect hops carry the same identity as the first
// request; a navigation that changes browsers mid-redirect is exactly
// what fingerprinting looks for.
type profileTransport struct {
	base    http.RoundTripper
	profile Profile
}

// RoundTrip implements http.RoundTripper.
func (t *profileTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not mutate the caller's request.
	clone := req.Clone(req.Context())

	clone.Header.Set("User-Agent", t.profile.UserAgent)
	for key, value := range t.profile.Headers {
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}
