package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/fixturekit/pkg/fixture"
	"github.com/randalmurphal/fixturekit/pkg/fixture/loader"
	"github.com/randalmurphal/fixturekit/pkg/fixture/observability"
)

// Catalog stores and restores fixture stores through a Store, encoding
// them as JSON documents.
type Catalog struct {
	store          Store
	logger         *slog.Logger
	metricsEnabled bool
	metrics        observability.MetricsRecorder
	tracingEnabled bool
	spans          observability.SpanManager
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger logs saves and failed operations.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics for saves and loads.
//
// Default: false
func WithMetrics(enabled bool) Option {
	return func(c *Catalog) {
		c.metricsEnabled = enabled
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables a span per catalog operation.
//
// Default: false
func WithTracing(enabled bool) Option {
	return func(c *Catalog) {
		c.tracingEnabled = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// New wraps store.
func New(store Store, opts ...Option) *Catalog {
	c := &Catalog{
		store:   store,
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the underlying document store.
func (c *Catalog) Store() Store {
	return c.store
}

// Put encodes fs and saves it as (suite, name).
func (c *Catalog) Put(ctx context.Context, suite, name string, fs *fixture.Store) (info Info, err error) {
	ctx, end := c.startSpan(ctx, "put", suite, name)
	defer func() { end(err) }()

	if err := ctx.Err(); err != nil {
		return Info{}, err
	}

	doc, err := json.Marshal(fs)
	if err != nil {
		observability.LogCatalogError(c.logger, suite, name, "encode", err)
		return Info{}, fmt.Errorf("encode fixture: %w", err)
	}

	info, err = c.store.Save(suite, name, doc)
	if err != nil {
		observability.LogCatalogError(c.logger, suite, name, "save", err)
		return Info{}, err
	}

	c.metrics.RecordCatalogSave(ctx, suite, info.Size)
	observability.LogCatalogSave(c.logger, suite, name, len(doc))
	return info, nil
}

// Get loads (suite, name) and decodes it into a store. opts are applied
// as for loader.FromJSON.
func (c *Catalog) Get(ctx context.Context, suite, name string, opts ...loader.Option) (fs *fixture.Store, err error) {
	ctx, end := c.startSpan(ctx, "get", suite, name)
	defer func() { end(err) }()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := path.Join(suite, name)
	elapsed := observability.TimedOperation()
	start := time.Now()

	doc, err := c.store.Load(suite, name)
	if err == nil {
		if c.logger != nil {
			opts = append([]loader.Option{loader.WithLogger(observability.EnrichLogger(c.logger, source, suite))}, opts...)
		}
		if c.metricsEnabled {
			opts = append([]loader.Option{loader.WithMetrics(true)}, opts...)
		}
		fs, err = loader.FromJSON(doc, opts...)
	}
	c.metrics.RecordLoad(ctx, string(loader.FormatJSON), time.Since(start), err)

	if err != nil {
		observability.LogCatalogError(c.logger, suite, name, "get", err)
		return nil, err
	}
	observability.LogLoad(c.logger, source, fs.Len(), len(fs.MetadataKeys()), elapsed())
	return fs, nil
}

// Remove deletes (suite, name).
func (c *Catalog) Remove(ctx context.Context, suite, name string) (err error) {
	_, end := c.startSpan(ctx, "delete", suite, name)
	defer func() { end(err) }()

	if err = c.store.Delete(suite, name); err != nil {
		observability.LogCatalogError(c.logger, suite, name, "delete", err)
	}
	return err
}

func (c *Catalog) startSpan(ctx context.Context, op, suite, name string) (context.Context, func(error)) {
	if !c.tracingEnabled {
		return ctx, func(error) {}
	}
	var span trace.Span
	ctx, span = c.spans.StartCatalogSpan(ctx, op, suite, name)
	return ctx, func(err error) {
		c.spans.EndSpanWithError(span, err)
	}
}

// Put saves fs to store as (suite, name).
func Put(ctx context.Context, store Store, suite, name string, fs *fixture.Store) (Info, error) {
	return New(store).Put(ctx, suite, name, fs)
}

// Get loads (suite, name) from store.
func Get(ctx context.Context, store Store, suite, name string, opts ...loader.Option) (*fixture.Store, error) {
	return New(store).Get(ctx, suite, name, opts...)
}
