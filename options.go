package goburi

import (
	"context"
	"errors"
	"log/slog"

	"github.com/albertocavalcante/go-buri/manifest"
)

const defaultMaxConcurrency = 5

// Option configures resolution behavior.
type Option func(*resolverConfig) error

// resolverConfig holds all resolution configuration.
type resolverConfig struct {
	loader      manifest.Loader
	cache       *manifest.Cache
	maxTargets  int
	concurrency int
	onProgress  func(ProgressEvent)

	// logger is the structured logger for debug output.
	// If nil, logging is disabled (silent mode).
	logger *slog.Logger
}

// WithLoader sets the manifest loader, replacing the one built from the source.
func WithLoader(l manifest.Loader) Option {
	return func(c *resolverConfig) error {
		if l == nil {
			return errors.New("loader must not be nil")
		}
		c.loader = l
		return nil
	}
}

// WithCache shares a manifest cache between resolutions.
func WithCache(cache *manifest.Cache) Option {
	return func(c *resolverConfig) error {
		if cache == nil {
			return errors.New("cache must not be nil")
		}
		c.cache = cache
		return nil
	}
}

// WithMaxTargets fails a resolution that expands more than n targets.
// Zero means no limit.
func WithMaxTargets(n int) Option {
	return func(c *resolverConfig) error {
		c.maxTargets = n
		return nil
	}
}

// WithConcurrency limits how many roots ResolveAll resolves at once.
func WithConcurrency(n int) Option {
	return func(c *resolverConfig) error {
		c.concurrency = n
		return nil
	}
}

// WithProgress sets a callback for resolution progress events.
// The callback runs on the resolving goroutine.
func WithProgress(fn func(ProgressEvent)) Option {
	return func(c *resolverConfig) error {
		c.onProgress = fn
		return nil
	}
}

// WithLogger sets a structured logger for resolution diagnostics.
// If not set, logging is disabled (silent mode).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With("component", "buri")
//	goburi.Resolve(ctx, root, src, goburi.WithLogger(logger))
func WithLogger(l *slog.Logger) Option {
	return func(c *resolverConfig) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *resolverConfig) validate() error {
	if c.loader != nil && c.cache != nil {
		return errors.New("WithLoader and WithCache are mutually exclusive")
	}
	if c.maxTargets < 0 {
		return errors.New("max targets must not be negative")
	}
	if c.concurrency < 0 {
		return errors.New("concurrency must not be negative")
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
func (c *resolverConfig) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.New(discardHandler{})
}

// progress reports an event if a callback is configured.
func (c *resolverConfig) progress(e ProgressEvent) {
	if c.onProgress != nil {
		c.onProgress(e)
	}
}

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

// newResolverConfig creates a new resolver configuration by applying
// the given options and validating the result.
func newResolverConfig(opts ...Option) (*resolverConfig, error) {
	c := &resolverConfig{}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// manifestLoader picks the loader: explicit loader, then shared cache, then
// a fresh decoding loader over src.
func (c *resolverConfig) manifestLoader(src manifest.Source) (manifest.Loader, error) {
	switch {
	case c.loader != nil:
		return c.loader, nil
	case c.cache != nil:
		return c.cache, nil
	case src != nil:
		return manifest.NewLoader(src), nil
	default:
		return nil, errors.New("a manifest source or loader is required")
	}
}
