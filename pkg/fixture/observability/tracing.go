package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("fixturekit")

// SpanManager handles trace span lifecycle.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartLoadSpan starts a span for loading a fixture file.
	StartLoadSpan(ctx context.Context, path, format string) (context.Context, trace.Span)

	// StartCatalogSpan starts a span for a catalog operation.
	StartCatalogSpan(ctx context.Context, op, suite, name string) (context.Context, trace.Span)

	// EndSpanWithError completes a span, optionally recording an error.
	EndSpanWithError(span trace.Span, err error)
}

// otelSpanManager implements SpanManager using OpenTelemetry.
type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses the global OTel tracer provider.
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartLoadSpan(ctx context.Context, path, format string) (context.Context, trace.Span) {
	return StartLoadSpan(ctx, path, format)
}

func (m *otelSpanManager) StartCatalogSpan(ctx context.Context, op, suite, name string) (context.Context, trace.Span) {
	return StartCatalogSpan(ctx, op, suite, name)
}

func (m *otelSpanManager) EndSpanWithError(span trace.Span, err error) {
	EndSpanWithError(span, err)
}

// StartLoadSpan starts a span for loading a fixture file.
func StartLoadSpan(ctx context.Context, path, format string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "fixture.load",
		trace.WithAttributes(
			attribute.String("fixture.path", path),
			attribute.String("fixture.format", format),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// StartCatalogSpan starts a span for a catalog operation.
func StartCatalogSpan(ctx context.Context, op, suite, name string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "fixture.catalog."+op,
		trace.WithAttributes(
			attribute.String("fixture.suite", suite),
			attribute.String("fixture.name", name),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndSpanWithError completes a span, optionally recording an error.
func EndSpanWithError(span trace.Span, err error) {
	if span == nil {
		return
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
