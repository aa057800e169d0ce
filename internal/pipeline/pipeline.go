package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/p24harvest/p24harvest/internal/model"
)

// Step is one phase of a scrape run. The two production steps are discovery
// (search pages in, frontier out) and extraction (frontier in, listings
// out); each reads what the previous step left in the shared result.
//
// Design decision: steps are an interface rather than func values because
// every step carries collaborators (fetcher, parser, tracker) and needs a
// stable Name for log lines.
type Step interface {
	// Do runs the phase against the shared result. Page-level failures are
	// tallied in the result's summary and do not fail the step; a returned
	// error means the run cannot continue, which in practice is
	// cancellation.
	Do(ctx context.Context, result *model.ScrapeResult) error

	// Name identifies the step in logs.
	Name() string
}

// Pipeline runs steps strictly in order against one shared result.
//
// There is no continue-on-error mode: extraction without a frontier is a
// no-op, and a cancelled context fails every later step the same way, so
// the first error ends the run.
type Pipeline struct {
	steps  []Step
	logger *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger for step lifecycle lines. Nil is ignored and
// slog.Default is used.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// New builds a Pipeline over the given steps, executed in slice order.
func New(steps []Step, opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:  steps,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Execute runs every step in order and stops at the first failure. The
// result accumulates across steps either way, so callers can still flush
// partial output after an error.
func (p *Pipeline) Execute(ctx context.Context, result *model.ScrapeResult) error {
	for _, step := range p.steps {
		// A step started after cancellation would only rediscover the
		// cancellation; skip straight to the error.
		if err := ctx.Err(); err != nil {
			p.logger.Warn("run cancelled",
				"before_step", step.Name(),
				"reason", err,
			)
			return err
		}

		start := time.Now()
		p.logger.Info("step starting", "step", step.Name())

		if err := step.Do(ctx, result); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"elapsed", time.Since(start),
				"error", err,
			)
			return err
		}

		p.logger.Debug("step finished",
			"step", step.Name(),
			"elapsed", time.Since(start),
		)
	}
	return nil
}
