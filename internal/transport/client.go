package transport

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/time/rate"

	"github.com/p24harvest/p24harvest/internal/config"
	"github.com/p24harvest/p24harvest/internal/model"
)

// Default client settings.
const (
	// DefaultTimeout matches the per-request budget used for both search
	// and detail pages.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxAttempts bounds how often one URL is retried. Transient
	// proxy hiccups usually clear within a retry or two; anything that
	// fails three times counts as a failed page.
	DefaultMaxAttempts = 3

	// DefaultRetryWait is the first backoff pause. It doubles per attempt.
	DefaultRetryWait = 1 * time.Second

	// maxRedirects limits redirect chains to prevent loops.
	maxRedirects = 10
)

// Client fetches pages through the configured proxy with a browser header
// profile, bounded retries, and a response size cap.
type Client struct {
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *slog.Logger
	profile     Profile
	maxBodySize int64
	maxAttempts int
	retryWait   time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithMaxBodySize caps how many response bytes are retained per page.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithMaxAttempts sets how many times one URL is tried before giving up.
func WithMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.maxAttempts = attempts
		}
	}
}

// WithRetryWait sets the initial backoff pause between attempts.
func WithRetryWait(d time.Duration) Option {
	return func(c *Client) {
		c.retryWait = d
	}
}

// WithRateLimit installs a request rate limit shared by all goroutines
// using this client. The default is unlimited; batch pacing is handled a
// layer up, so the limiter is a safety net for ad-hoc callers.
func WithRateLimit(limit rate.Limit, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(limit, burst)
	}
}

// WithProfile sets the browser header profile.
func WithProfile(p Profile) Option {
	return func(c *Client) {
		c.profile = p
	}
}

// NewClient creates a Client that routes every request through the proxy
// described by creds. A nil creds connects directly; scrape runs always
// pass credentials, the direct path exists for tests and local probing.
//
// Design decision: We don't connect to the proxy in the constructor because:
// 1. It separates object creation from network operations
// 2. Credential problems are caught earlier, by config validation
// 3. It allows for better testing with local test servers
func NewClient(creds *config.Credentials, opts ...Option) (*Client, error) {
	baseTransport, err := buildTransport(creds)
	if err != nil {
		return nil, err
	}

	// Cookie jar for session continuity across listing fetches.
	jar, _ := cookiejar.New(nil) //nolint:errcheck // cookiejar.New only fails with invalid options

	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
			Jar:     jar,
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		limiter:     rate.NewLimiter(rate.Inf, 0),
		logger:      slog.Default(),
		profile:     DefaultProfile(),
		maxBodySize: model.MaxBodySize,
		maxAttempts: DefaultMaxAttempts,
		retryWait:   DefaultRetryWait,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient.Transport = &profileTransport{
		base:    baseTransport,
		profile: c.profile,
	}

	return c, nil
}

// buildTransport returns the proxy-aware base transport for the client.
func buildTransport(creds *config.Credentials) (http.RoundTripper, error) {
	transport := &http.Transport{
		// Smaller pool than the defaults: the run talks to one host
		// through one proxy, so a handful of warm connections is plenty.
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     30 * time.Second,
	}

	if creds == nil {
		return transport, nil
	}

	switch creds.Scheme {
	case config.ProxySchemeHTTP:
		proxyURL := creds.ProxyURL()
		transport.Proxy = http.ProxyURL(proxyURL)
	case config.ProxySchemeSOCKS5:
		auth := &proxy.Auth{User: creds.Username, Password: creds.Password}
		dialer, err := proxy.SOCKS5("tcp", net.JoinHostPort(creds.Host, creds.Port), auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
		}
		transport.DialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
			if cd, ok := dialer.(proxy.ContextDialer); ok {
				return cd.DialContext(ctx, network, address)
			}
			return dialer.Dial(network, address)
		}
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrInvalidProxyScheme, creds.Scheme)
	}

	return transport, nil
}

// Get fetches one page. It retries transient failures (network errors,
// status 429, and 5xx responses) with exponential backoff and returns the
// page once a 2xx response is read. Any other status is a failed fetch.
//
// The returned page's Elapsed covers the whole call, retries included.
func (c *Client) Get(ctx context.Context, pageURL string) (*model.Page, error) {
	if pageURL == "" {
		return nil, ErrEmptyURL
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	wait := c.retryWait

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		page, retryable, err := c.fetchOnce(ctx, pageURL)
		if err == nil {
			page.Elapsed = time.Since(start)
			return page, nil
		}
		lastErr = err

		if !retryable || attempt == c.maxAttempts {
			break
		}

		c.logger.Warn("fetch failed, retrying",
			"url", pageURL,
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"wait", wait,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	return nil, lastErr
}

// fetchOnce performs a single request. The second return value reports
// whether the failure is worth retrying.
func (c *Client) fetchOnce(ctx context.Context, pageURL string) (*model.Page, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request for %s: %w", pageURL, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Network-level failures are the transient class: proxy resets,
		// handshake timeouts, dropped connections.
		return nil, true, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		retryable := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retryable, fmt.Errorf("fetch %s: %w: %d", pageURL, ErrHTTPStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, true, fmt.Errorf("read body of %s: %w", pageURL, err)
	}

	return &model.Page{
		URL:        pageURL,
		StatusCode: resp.StatusCode,
		Body:       body,
		FetchedAt:  time.Now(),
	}, false, nil
}

// Profile returns the browser profile stamped onto requests.
func (c *Client) Profile() Profile {
	return c.profile
}
