package loader

import (
	"log/slog"

	"github.com/randalmurphal/fixturekit/pkg/fixture"
	"github.com/randalmurphal/fixturekit/pkg/fixture/expand"
	"github.com/randalmurphal/fixturekit/pkg/fixture/observability"
)

// loadConfig holds the settings for one load.
type loadConfig struct {
	vars       map[string]any
	missing    expand.Missing
	strictKeys bool
	storeOpts  []fixture.Option
	source     string

	logger         *slog.Logger
	metricsEnabled bool
	metrics        observability.MetricsRecorder
	tracingEnabled bool
	spans          observability.SpanManager
}

func defaultLoadConfig() loadConfig {
	return loadConfig{
		missing: expand.MissingKeep,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures how a fixture document is loaded.
type Option func(*loadConfig)

// WithVariables expands ${name} and $name placeholders in every string value
// of the document before the store is built.
func WithVariables(vars map[string]any) Option {
	return func(c *loadConfig) {
		c.vars = vars
	}
}

// WithMissingVariables sets how undefined placeholders are handled.
// It only has an effect together with WithVariables.
//
// Default: expand.MissingKeep
func WithMissingVariables(m expand.Missing) Option {
	return func(c *loadConfig) {
		c.missing = m
	}
}

// WithStrictKeys rejects documents with top-level keys other than
// "data" and "metadata".
func WithStrictKeys() Option {
	return func(c *loadConfig) {
		c.strictKeys = true
	}
}

// WithStoreOptions passes options through to fixture.New. They are applied
// after the document entries, so WithValue adds to the loaded data.
func WithStoreOptions(opts ...fixture.Option) Option {
	return func(c *loadConfig) {
		c.storeOpts = append(c.storeOpts, opts...)
	}
}

// WithLogger logs loads and is handed to the resulting store, enriched with
// the source path.
func WithLogger(logger *slog.Logger) Option {
	return func(c *loadConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for loads and for lookups on
// the resulting store.
//
// Default: false
func WithMetrics(enabled bool) Option {
	return func(c *loadConfig) {
		c.metricsEnabled = enabled
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables an OpenTelemetry span around Load.
//
// Default: false
func WithTracing(enabled bool) Option {
	return func(c *loadConfig) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}
