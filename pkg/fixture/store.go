package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/randalmurphal/fixturekit/pkg/fixture/adapt"
	"github.com/randalmurphal/fixturekit/pkg/fixture/naming"
	"github.com/randalmurphal/fixturekit/pkg/fixture/observability"
)

// Operation names reported to metrics and logs.
const (
	opGet        = "get"
	opRequire    = "require"
	opGetAll     = "get_all"
	opRequireAll = "require_all"
	opMetadata   = "metadata"
)

// Store holds the data and metadata of one fixture and converts its values
// into requested types.
//
// Both mappings are insertion ordered and never nil. Store does no locking:
// it is safe for concurrent readers as long as nobody calls Set, SetMetadata
// or Delete at the same time.
type Store struct {
	data     *orderedmap.OrderedMap[string, any]
	metadata *orderedmap.OrderedMap[string, any]

	adapter         adapt.Adapter
	metadataAdapter adapt.Adapter
	names           *naming.Registry
	logger          *slog.Logger
	metrics         observability.MetricsRecorder
}

// New creates a Store. Without options both mappings are empty.
func New(opts ...Option) *Store {
	s := &Store{
		data:            orderedmap.New[string, any](),
		metadata:        orderedmap.New[string, any](),
		adapter:         adapt.Strict(),
		metadataAdapter: adapt.Loose(),
		metrics:         observability.NoopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get adapts the data value at key to typ.
// It reports false when typ is nil, key is blank, the store has no data,
// key is absent, or the value adapts to nil.
func (s *Store) Get(key string, typ reflect.Type) (any, bool) {
	v, err := s.get(key, typ)
	if err != nil {
		s.miss(opGet, key, typ, err)
		return nil, false
	}
	s.metrics.RecordLookup(context.Background(), opGet, observability.OutcomeHit)
	return v, true
}

// GetType is Get with the key derived from typ.
func (s *Store) GetType(typ reflect.Type) (any, bool) {
	return s.Get(s.KeyFor(typ), typ)
}

// Require is Get, except that every case in which Get reports false
// returns an *AdaptationError.
func (s *Store) Require(key string, typ reflect.Type) (any, error) {
	v, err := s.get(key, typ)
	if err != nil {
		s.fail(opRequire, key, typ, err)
		return nil, newAdaptationError(key, typ, err)
	}
	s.metrics.RecordLookup(context.Background(), opRequire, observability.OutcomeHit)
	return v, nil
}

// RequireType is Require with the key derived from typ.
func (s *Store) RequireType(typ reflect.Type) (any, error) {
	return s.Require(s.KeyFor(typ), typ)
}

// GetAll adapts the data value at key to a slice of typ.
//
// A slice or array value has each element adapted on its own; nil elements
// and elements that fail to adapt are dropped. Any other value is adapted
// whole and returned as a single element. GetAll returns an empty slice
// under the same conditions in which Get reports false.
func (s *Store) GetAll(key string, typ reflect.Type) []any {
	raw, err := s.lookup(key, typ)
	if err != nil {
		s.miss(opGetAll, key, typ, err)
		return []any{}
	}

	if !adapt.IsCollection(raw) {
		v, err := s.convert(key, raw, typ)
		if err != nil {
			s.miss(opGetAll, key, typ, err)
			return []any{}
		}
		s.metrics.RecordLookup(context.Background(), opGetAll, observability.OutcomeHit)
		return []any{v}
	}

	items := adapt.Elements(raw)
	out := make([]any, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		if v, err := s.convert(key, item, typ); err == nil {
			out = append(out, v)
		}
	}
	s.metrics.RecordLookup(context.Background(), opGetAll, observability.OutcomeHit)
	return out
}

// GetAllType is GetAll with the key derived from typ.
func (s *Store) GetAllType(typ reflect.Type) []any {
	return s.GetAll(s.KeyFor(typ), typ)
}

// RequireAll is GetAll with fail-fast adaptation.
//
// A nil type, blank key, empty store or missing key is not an error: it
// returns an empty slice. Once a value is found, any element (or the whole
// non-collection value) that fails to adapt returns an *AdaptationError.
// nil elements inside a collection are skipped.
func (s *Store) RequireAll(key string, typ reflect.Type) ([]any, error) {
	raw, err := s.lookup(key, typ)
	if err != nil {
		s.miss(opRequireAll, key, typ, err)
		return []any{}, nil
	}

	if !adapt.IsCollection(raw) {
		v, err := s.convert(key, raw, typ)
		if err != nil {
			s.fail(opRequireAll, key, typ, err)
			return nil, newAdaptationError(key, typ, err)
		}
		s.metrics.RecordLookup(context.Background(), opRequireAll, observability.OutcomeHit)
		return []any{v}, nil
	}

	items := adapt.Elements(raw)
	out := make([]any, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		v, err := s.convert(key, item, typ)
		if err != nil {
			s.fail(opRequireAll, key, typ, err)
			return nil, newAdaptationError(key, typ, err)
		}
		out = append(out, v)
	}
	s.metrics.RecordLookup(context.Background(), opRequireAll, observability.OutcomeHit)
	return out, nil
}

// RequireAllType is RequireAll with the key derived from typ.
func (s *Store) RequireAllType(typ reflect.Type) ([]any, error) {
	return s.RequireAll(s.KeyFor(typ), typ)
}

// Metadata returns the metadata value at key converted to a string.
// Numbers and booleans are formatted; it reports false if key is absent or
// the value cannot be represented as a string.
func (s *Store) Metadata(key string) (string, bool) {
	v, ok := s.MetadataAs(key, reflect.TypeFor[string]())
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

// MetadataAs converts the metadata value at key to typ with the loose
// metadata adapter. It reports false if key is absent or conversion fails.
func (s *Store) MetadataAs(key string, typ reflect.Type) (any, bool) {
	raw, _ := s.metadata.Get(key)
	v := adapt.OrNull(s.metadataAdapter, raw, typ)
	outcome := observability.OutcomeHit
	if v == nil {
		outcome = observability.OutcomeMiss
	}
	s.metrics.RecordLookup(context.Background(), opMetadata, outcome)
	return v, v != nil
}

// KeyFor returns the data key used by the type-keyed operations: the
// registered override for typ, or its derived name.
func (s *Store) KeyFor(typ reflect.Type) string {
	return s.names.Key(typ)
}

// Raw returns the unconverted data value at key.
func (s *Store) Raw(key string) (any, bool) {
	return s.data.Get(key)
}

// RawMetadata returns the unconverted metadata value at key.
func (s *Store) RawMetadata(key string) (any, bool) {
	return s.metadata.Get(key)
}

// Has reports whether key is present in the data mapping.
func (s *Store) Has(key string) bool {
	_, ok := s.data.Get(key)
	return ok
}

// Keys returns the data keys in insertion order.
func (s *Store) Keys() []string {
	return keys(s.data)
}

// MetadataKeys returns the metadata keys in insertion order.
func (s *Store) MetadataKeys() []string {
	return keys(s.metadata)
}

// Len returns the number of data entries.
func (s *Store) Len() int {
	return s.data.Len()
}

// Set stores a data value, keeping the position of an existing key.
func (s *Store) Set(key string, value any) {
	s.data.Set(key, value)
}

// SetMetadata stores a metadata value.
func (s *Store) SetMetadata(key string, value any) {
	s.metadata.Set(key, value)
}

// Delete removes a data entry.
func (s *Store) Delete(key string) {
	s.data.Delete(key)
}

// MarshalJSON encodes the store as {"data": {...}, "metadata": {...}},
// preserving key order.
func (s *Store) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Data     *orderedmap.OrderedMap[string, any] `json:"data"`
		Metadata *orderedmap.OrderedMap[string, any] `json:"metadata"`
	}{s.data, s.metadata})
}

// lookup applies the guard conditions shared by every data operation and
// returns the raw value at key.
func (s *Store) lookup(key string, typ reflect.Type) (any, error) {
	switch {
	case typ == nil:
		return nil, ErrNilType
	case strings.TrimSpace(key) == "":
		return nil, ErrBlankKey
	case s.data.Len() == 0:
		return nil, ErrEmptyData
	}
	raw, ok := s.data.Get(key)
	if !ok {
		return nil, ErrKeyNotFound
	}
	return raw, nil
}

// get looks up key and adapts the value whole.
func (s *Store) get(key string, typ reflect.Type) (any, error) {
	raw, err := s.lookup(key, typ)
	if err != nil {
		return nil, err
	}
	return s.convert(key, raw, typ)
}

// convert adapts raw with the data adapter. A nil raw value or nil result
// yields ErrNullValue, a result not assignable to typ yields ErrWrongType;
// adapter errors are returned as is.
func (s *Store) convert(key string, raw any, typ reflect.Type) (any, error) {
	if raw == nil {
		return nil, ErrNullValue
	}
	v, err := s.adapter.Adapt(raw, typ)
	if err == nil && adapt.IsNil(v) {
		err = ErrNullValue
	}
	if err == nil && !reflect.TypeOf(v).AssignableTo(typ) {
		err = fmt.Errorf("%w: got %T", ErrWrongType, v)
	}
	if err != nil {
		name := naming.DisplayName(typ)
		observability.LogAdaptFailure(s.logger, key, name, err)
		s.metrics.RecordAdaptFailure(context.Background(), name)
		return nil, err
	}
	return v, nil
}

func (s *Store) miss(op, key string, typ reflect.Type, reason error) {
	observability.LogLookupMiss(s.logger, op, key, naming.DisplayName(typ), reason.Error())
	s.metrics.RecordLookup(context.Background(), op, observability.OutcomeMiss)
}

func (s *Store) fail(op, key string, typ reflect.Type, reason error) {
	observability.LogLookupMiss(s.logger, op, key, naming.DisplayName(typ), reason.Error())
	s.metrics.RecordLookup(context.Background(), op, observability.OutcomeFailed)
}

func keys(m *orderedmap.OrderedMap[string, any]) []string {
	out := make([]string, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}
