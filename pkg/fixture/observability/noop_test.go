package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNoopMetrics(t *testing.T) {
	m := NoopMetrics{}
	ctx := context.Background()

	assert.NotPanics(t, func() {
		m.RecordLookup(ctx, "get", OutcomeHit)
		m.RecordAdaptFailure(ctx, "Widget")
		m.RecordLoad(ctx, "yaml", time.Millisecond, errors.New("x"))
		m.RecordCatalogSave(ctx, "suite", 10)
	})
}

func TestNoopSpanManager(t *testing.T) {
	m := NoopSpanManager{}
	ctx := context.Background()

	gotCtx, span := m.StartLoadSpan(ctx, "a.yaml", "yaml")
	assert.Equal(t, ctx, gotCtx)
	assert.False(t, span.IsRecording())

	gotCtx, span = m.StartCatalogSpan(ctx, "get", "s", "n")
	assert.Equal(t, ctx, gotCtx)
	assert.NotPanics(t, func() { m.EndSpanWithError(span, errors.New("x")) })
}
