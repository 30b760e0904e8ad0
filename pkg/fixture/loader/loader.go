package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/randalmurphal/fixturekit/pkg/fixture"
	"github.com/randalmurphal/fixturekit/pkg/fixture/expand"
	"github.com/randalmurphal/fixturekit/pkg/fixture/observability"
)

// Sentinel errors for loading.
var (
	// ErrUnsupportedFormat indicates a file extension or format name that
	// has no decoder.
	ErrUnsupportedFormat = errors.New("unsupported fixture format")

	// ErrInvalidDocument indicates a document whose top level, data or
	// metadata is not a mapping.
	ErrInvalidDocument = errors.New("invalid fixture document")

	// ErrUnknownKey indicates a top-level key other than data or metadata
	// in a document loaded with WithStrictKeys.
	ErrUnknownKey = errors.New("unknown top-level key")
)

// Format names a fixture file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatOf returns the format for path's extension.
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: extension %q", ErrUnsupportedFormat, ext)
	}
}

// ParseFormat accepts a format name ("yaml", "yml", "json" or "toml"),
// case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FromYAML builds a store from a YAML fixture document.
func FromYAML(data []byte, opts ...Option) (*fixture.Store, error) {
	return Parse(data, FormatYAML, opts...)
}

// FromJSON builds a store from a JSON fixture document.
func FromJSON(data []byte, opts ...Option) (*fixture.Store, error) {
	return Parse(data, FormatJSON, opts...)
}

// FromTOML builds a store from a TOML fixture document.
func FromTOML(data []byte, opts ...Option) (*fixture.Store, error) {
	return Parse(data, FormatTOML, opts...)
}

// FromFile reads path and builds a store, choosing the format by extension.
// Supported extensions: .yaml, .yml, .json, .toml
func FromFile(path string, opts ...Option) (*fixture.Store, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture file: %w", err)
	}
	return Parse(data, format, append(opts, withSource(path))...)
}

// Load is FromFile with logging, metrics and tracing as configured by opts.
//
// Example:
//
//	store, err := loader.Load(ctx, "testdata/orders.yaml",
//	    loader.WithLogger(logger),
//	    loader.WithVariables(map[string]any{"tenant": "acme"}),
//	)
func Load(ctx context.Context, path string, opts ...Option) (store *fixture.Store, err error) {
	cfg := resolve(opts)

	format, _ := FormatOf(path)
	if cfg.tracingEnabled {
		var span trace.Span
		ctx, span = cfg.spans.StartLoadSpan(ctx, path, string(format))
		defer func() {
			cfg.spans.EndSpanWithError(span, err)
		}()
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	store, err = FromFile(path, opts...)
	duration := time.Since(start)
	cfg.metrics.RecordLoad(ctx, string(format), duration, err)

	if err != nil {
		observability.LogLoadError(cfg.logger, path, err)
		return nil, err
	}
	observability.AddSpanEvent(ctx, "fixture.parsed",
		attribute.Int("fixture.data_keys", store.Len()),
		attribute.Int("fixture.metadata_keys", len(store.MetadataKeys())),
		attribute.Int("fixture.variables", len(cfg.vars)),
	)
	durationMs := float64(duration.Microseconds()) / 1000
	observability.LogLoad(cfg.logger, path, store.Len(), len(store.MetadataKeys()), durationMs)
	return store, nil
}

// Parse builds a store from data in the given format.
func Parse(data []byte, format Format, opts ...Option) (*fixture.Store, error) {
	cfg := resolve(opts)

	var (
		doc *document
		err error
	)
	switch format {
	case FormatYAML:
		doc, err = decodeYAML(data)
	case FormatJSON:
		doc, err = decodeJSON(data)
	case FormatTOML:
		doc, err = decodeTOML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("parse %s: %w", format, err)
	}

	if cfg.strictKeys && len(doc.extra) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(doc.extra, ", "))
	}

	if cfg.vars != nil {
		exp := expand.New(expand.WithMissing(cfg.missing))
		if doc.data, err = expandSection(exp, doc.data, cfg.vars); err != nil {
			return nil, fmt.Errorf("expand data: %w", err)
		}
		if doc.metadata, err = expandSection(exp, doc.metadata, cfg.vars); err != nil {
			return nil, fmt.Errorf("expand metadata: %w", err)
		}
	}

	storeOpts := []fixture.Option{
		fixture.WithOrderedData(doc.data),
		fixture.WithOrderedMetadata(doc.metadata),
	}
	if cfg.logger != nil {
		logger := cfg.logger
		if cfg.source != "" {
			logger = observability.EnrichLogger(logger, cfg.source, "")
		}
		storeOpts = append(storeOpts, fixture.WithLogger(logger))
	}
	if cfg.metricsEnabled {
		storeOpts = append(storeOpts, fixture.WithMetrics(cfg.metrics))
	}
	storeOpts = append(storeOpts, cfg.storeOpts...)
	return fixture.New(storeOpts...), nil
}

func expandSection(exp *expand.Expander, m *orderedmap.OrderedMap[string, any], vars map[string]any) (*orderedmap.OrderedMap[string, any], error) {
	v, err := exp.Value(m, vars)
	if err != nil {
		return nil, err
	}
	return v.(*orderedmap.OrderedMap[string, any]), nil
}

func resolve(opts []Option) loadConfig {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// withSource records the file a document came from for log enrichment.
func withSource(path string) Option {
	return func(c *loadConfig) {
		c.source = path
	}
}
