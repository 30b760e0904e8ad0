package fixture

import (
	"log/slog"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/randalmurphal/fixturekit/pkg/fixture/adapt"
	"github.com/randalmurphal/fixturekit/pkg/fixture/naming"
	"github.com/randalmurphal/fixturekit/pkg/fixture/observability"
)

// Option configures a Store.
type Option func(*Store)

// WithData adds every entry of m to the data mapping.
// Go maps carry no order, so keys are inserted in sorted order.
func WithData(m map[string]any) Option {
	return func(s *Store) {
		putSorted(s.data, m)
	}
}

// WithOrderedData adds the entries of m to the data mapping in m's order.
func WithOrderedData(m *orderedmap.OrderedMap[string, any]) Option {
	return func(s *Store) {
		putOrdered(s.data, m)
	}
}

// WithValue adds a single data entry. Repeated WithValue options keep
// their order.
func WithValue(key string, value any) Option {
	return func(s *Store) {
		s.data.Set(key, value)
	}
}

// WithMetadata adds every entry of m to the metadata mapping, keys sorted.
func WithMetadata(m map[string]any) Option {
	return func(s *Store) {
		putSorted(s.metadata, m)
	}
}

// WithOrderedMetadata adds the entries of m to the metadata mapping in m's order.
func WithOrderedMetadata(m *orderedmap.OrderedMap[string, any]) Option {
	return func(s *Store) {
		putOrdered(s.metadata, m)
	}
}

// WithMetadataValue adds a single metadata entry.
func WithMetadataValue(key string, value any) Option {
	return func(s *Store) {
		s.metadata.Set(key, value)
	}
}

// WithAdapter sets the adapter used for data lookups.
//
// Default: adapt.Strict()
func WithAdapter(a adapt.Adapter) Option {
	return func(s *Store) {
		if a != nil {
			s.adapter = a
		}
	}
}

// WithMetadataAdapter sets the adapter used for metadata lookups.
//
// Default: adapt.Loose()
func WithMetadataAdapter(a adapt.Adapter) Option {
	return func(s *Store) {
		if a != nil {
			s.metadataAdapter = a
		}
	}
}

// WithNames sets a registry of explicit type-to-key overrides consulted by
// the type-keyed operations before deriving a key from the type name.
func WithNames(r *naming.Registry) Option {
	return func(s *Store) {
		s.names = r
	}
}

// WithLogger enables debug logging of lookup misses and adaptation failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics sets the metrics recorder.
//
// Default: observability.NoopMetrics{}
func WithMetrics(m observability.MetricsRecorder) Option {
	return func(s *Store) {
		if m != nil {
			s.metrics = m
		}
	}
}

func putSorted(dst *orderedmap.OrderedMap[string, any], m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		dst.Set(k, m[k])
	}
}

func putOrdered(dst, src *orderedmap.OrderedMap[string, any]) {
	if src == nil {
		return
	}
	for pair := src.Oldest(); pair != nil; pair = pair.Next() {
		dst.Set(pair.Key, pair.Value)
	}
}
