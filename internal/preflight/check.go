package preflight

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/p24harvest/p24harvest/internal/model"
	"github.com/p24harvest/p24harvest/internal/transport"
)

// Getter is the fetch surface a probe drives. transport.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string) (*model.Page, error)
}

// Result describes one probe of the target site.
type Result struct {
	// URL is the address that was probed.
	URL string

	// Reachable reports whether the site answered at all. A refused
	// response (403 and friends) still counts as reachable: the proxy
	// path works even though a run would be blocked.
	Reachable bool

	// StatusCode is the HTTP status of a successful probe, 0 otherwise.
	StatusCode int

	// BodySize is the number of body bytes the probe retained.
	BodySize int

	// Latency is the wall-clock duration of the probe, retries included.
	Latency time.Duration

	// Err holds the fetch error for failed probes.
	Err error
}

// OK reports whether the probe got a usable response.
func (r *Result) OK() bool {
	return r.Err == nil
}

// Checker probes the target site through a configured client.
//
// Design decision: We require an external client rather than creating one
// internally because:
//  1. Proxy and header configuration belong to the transport package
//  2. The probe must exercise the exact client a run would use
//  3. Tests can swap in a stub without network access
type Checker struct {
	// getter performs the probe request.
	getter Getter

	// logger receives probe diagnostics.
	logger *slog.Logger
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithCheckerLogger sets the logger. Defaults to slog.Default().
func WithCheckerLogger(logger *slog.Logger) CheckerOption {
	return func(c *Checker) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewChecker creates a Checker that probes through the given client.
func NewChecker(getter Getter, opts ...CheckerOption) *Checker {
	c := &Checker{
		getter: getter,
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Check probes url once and reports what came back. It never returns an
// error of its own; the outcome, including a failure, is the Result.
func (c *Checker) Check(ctx context.Context, url string) *Result {
	c.logger.Debug("probing target", "url", url)

	start := time.Now()
	page, err := c.getter.Get(ctx, url)

	result := &Result{
		URL:     url,
		Latency: time.Since(start),
	}

	if err != nil {
		result.Err = err
		// A status error means the origin answered. The transport and
		// proxy path work even though the page was refused.
		result.Reachable = errors.Is(err, transport.ErrHTTPStatus)
		c.logger.Warn("probe failed",
			"url", url,
			"reachable", result.Reachable,
			"error", err,
		)
		return result
	}

	result.Reachable = true
	result.StatusCode = page.StatusCode
	result.BodySize = len(page.Body)

	c.logger.Debug("probe succeeded",
		"url", url,
		"status", result.StatusCode,
		"bytes", result.BodySize,
		"latency", result.Latency,
	)

	return result
}
