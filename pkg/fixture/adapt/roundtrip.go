package adapt

import (
	"fmt"
	"reflect"

	"sigs.k8s.io/yaml"
)

// RoundTripAdapter converts values by serializing them and decoding the
// result into the target type with encoding/json rules: `json` tags, exact
// key matching first, and no implicit scalar conversion.
type RoundTripAdapter struct {
	strict bool
}

// Compile-time interface check.
var _ Adapter = RoundTripAdapter{}

// RoundTrip returns an adapter that ignores unknown fields.
func RoundTrip() RoundTripAdapter {
	return RoundTripAdapter{}
}

// RoundTripStrict returns an adapter that rejects fields the target type
// does not declare.
func RoundTripStrict() RoundTripAdapter {
	return RoundTripAdapter{strict: true}
}

// Adapt implements Adapter.
func (a RoundTripAdapter) Adapt(raw any, typ reflect.Type) (any, error) {
	if typ == nil {
		return nil, ErrNilType
	}
	if raw == nil {
		return nil, nil
	}
	if v, ok := direct(raw, typ); ok {
		return v, nil
	}

	data, err := yaml.Marshal(Plain(raw))
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", raw, err)
	}

	target := reflect.New(typ)
	if a.strict {
		err = yaml.UnmarshalStrict(data, target.Interface())
	} else {
		err = yaml.Unmarshal(data, target.Interface())
	}
	if err != nil {
		return nil, fmt.Errorf("unmarshal into %s: %w", typ, err)
	}
	return target.Elem().Interface(), nil
}
