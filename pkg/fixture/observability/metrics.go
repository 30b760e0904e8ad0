package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Lookup outcomes reported by RecordLookup.
const (
	OutcomeHit    = "hit"
	OutcomeMiss   = "miss"
	OutcomeFailed = "failed"
)

// MetricsRecorder records fixture metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordLookup records one store operation and its outcome.
	RecordLookup(ctx context.Context, op, outcome string)

	// RecordAdaptFailure records a value that could not be adapted to typeName.
	RecordAdaptFailure(ctx context.Context, typeName string)

	// RecordLoad records a fixture file load.
	RecordLoad(ctx context.Context, format string, duration time.Duration, err error)

	// RecordCatalogSave records a document saved to a catalog.
	RecordCatalogSave(ctx context.Context, suite string, sizeBytes int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	lookups       metric.Int64Counter
	adaptFailures metric.Int64Counter
	loads         metric.Int64Counter
	loadLatency   metric.Float64Histogram
	catalogSize   metric.Int64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel metrics instance.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("fixturekit")

	lookups, err := meter.Int64Counter("fixture.lookups",
		metric.WithDescription("Number of fixture store operations"),
	)
	if err != nil {
		return nil, err
	}

	adaptFailures, err := meter.Int64Counter("fixture.adapt.failures",
		metric.WithDescription("Number of values that could not be adapted to the requested type"),
	)
	if err != nil {
		return nil, err
	}

	loads, err := meter.Int64Counter("fixture.loads",
		metric.WithDescription("Number of fixture file loads"),
	)
	if err != nil {
		return nil, err
	}

	loadLatency, err := meter.Float64Histogram("fixture.load.latency_ms",
		metric.WithDescription("Fixture file load latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	catalogSize, err := meter.Int64Histogram("fixture.catalog.size_bytes",
		metric.WithDescription("Size of fixture documents saved to a catalog"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		lookups:       lookups,
		adaptFailures: adaptFailures,
		loads:         loads,
		loadLatency:   loadLatency,
		catalogSize:   catalogSize,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordLookup records a store operation.
func (m *otelMetrics) RecordLookup(ctx context.Context, op, outcome string) {
	m.lookups.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("outcome", outcome),
	))
}

// RecordAdaptFailure records an adaptation failure.
func (m *otelMetrics) RecordAdaptFailure(ctx context.Context, typeName string) {
	m.adaptFailures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", typeName),
	))
}

// RecordLoad records a fixture file load.
func (m *otelMetrics) RecordLoad(ctx context.Context, format string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("format", format),
		attribute.Bool("success", err == nil),
	}
	m.loads.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.loadLatency.Record(ctx, float64(duration.Microseconds())/1000, metric.WithAttributes(attrs...))
}

// RecordCatalogSave records a catalog save.
func (m *otelMetrics) RecordCatalogSave(ctx context.Context, suite string, sizeBytes int64) {
	m.catalogSize.Record(ctx, sizeBytes, metric.WithAttributes(
		attribute.String("suite", suite),
	))
}
