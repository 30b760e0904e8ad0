// Package adapt converts generic fixture values (maps, slices, scalars) into
// concrete Go types.
//
// Two engines are provided:
//   - Decoder: structural decoding with mapstructure, strict or weakly typed
//   - RoundTrip: JSON-semantics conversion through sigs.k8s.io/yaml
//
// Adapters never panic. A nil input adapts to nil without error; callers
// treat nil results and errors alike as "no value".
package adapt

import (
	"errors"
	"fmt"
	"reflect"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrNilType indicates Adapt was called without a target type.
var ErrNilType = errors.New("target type is required")

// Adapter converts raw into a value of typ.
type Adapter interface {
	// Adapt returns raw converted to typ. The returned value, when non-nil,
	// is assignable to typ.
	Adapt(raw any, typ reflect.Type) (any, error)
}

// AdapterFunc lets an ordinary function serve as an Adapter.
type AdapterFunc func(raw any, typ reflect.Type) (any, error)

// Adapt implements Adapter.
func (f AdapterFunc) Adapt(raw any, typ reflect.Type) (any, error) {
	return f(raw, typ)
}

// OrNull adapts raw and returns nil instead of an error.
func OrNull(a Adapter, raw any, typ reflect.Type) any {
	if a == nil || raw == nil || typ == nil {
		return nil
	}
	v, err := a.Adapt(raw, typ)
	if err != nil || IsNil(v) {
		return nil
	}
	return v
}

// IsNil reports whether v is nil or a typed nil (pointer, map, slice,
// interface, func or chan).
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// IsCollection reports whether v is a slice or array that should be treated
// as a sequence of fixture elements. Byte slices are scalars.
func IsCollection(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}

// Elements returns the elements of a collection as []any.
// It returns nil when v is not a collection.
func Elements(v any) []any {
	if !IsCollection(v) {
		return nil
	}
	if items, ok := v.([]any); ok {
		return items
	}
	rv := reflect.ValueOf(v)
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items
}

// Plain rewrites ordered maps and map[any]any values into map[string]any,
// recursively, so that decoders only ever see plain generic data.
func Plain(v any) any {
	switch val := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		if val == nil {
			return nil
		}
		out := make(map[string]any, val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			out[pair.Key] = Plain(pair.Value)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = Plain(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[toKey(k)] = Plain(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = Plain(item)
		}
		return out
	}
	return v
}

func toKey(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// direct returns raw when it already has the target type. Generic maps and
// slices come back as deep copies; other reference kinds are left to the
// decoder so the caller never shares memory with the fixture.
func direct(raw any, typ reflect.Type) (any, bool) {
	if reflect.TypeOf(raw) != typ {
		return nil, false
	}
	switch typ.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer:
		switch raw.(type) {
		case map[string]any, map[any]any, []any, *orderedmap.OrderedMap[string, any]:
			return clone(raw), true
		}
		return nil, false
	}
	return raw, true
}

// clone deep-copies generic containers, keeping their types.
func clone(v any) any {
	switch val := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		if val == nil {
			return val
		}
		out := orderedmap.New[string, any](val.Len())
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, clone(pair.Value))
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = clone(item)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(val))
		for k, item := range val {
			out[k] = clone(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = clone(item)
		}
		return out
	}
	return v
}
