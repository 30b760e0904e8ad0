package fixture

import "reflect"

// Get returns the data value keyed by T's derived name, adapted to T.
//
//	platform, ok := fixture.Get[CreatePlatform](store) // key "createPlatform"
func Get[T any](s *Store) (T, bool) {
	return GetKey[T](s, s.KeyFor(reflect.TypeFor[T]()))
}

// GetKey returns the data value at key adapted to T.
func GetKey[T any](s *Store, key string) (T, bool) {
	v, ok := s.Get(key, reflect.TypeFor[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return as[T](v)
}

// Require returns the data value keyed by T's derived name, or an
// *AdaptationError if none can be produced.
func Require[T any](s *Store) (T, error) {
	return RequireKey[T](s, s.KeyFor(reflect.TypeFor[T]()))
}

// RequireKey returns the data value at key adapted to T, or an
// *AdaptationError if none can be produced.
func RequireKey[T any](s *Store, key string) (T, error) {
	typ := reflect.TypeFor[T]()
	v, err := s.Require(key, typ)
	if err != nil {
		var zero T
		return zero, err
	}
	t, ok := as[T](v)
	if !ok {
		return t, newAdaptationError(key, typ, ErrWrongType)
	}
	return t, nil
}

// GetAll returns the data value keyed by T's derived name as a slice of T.
// See Store.GetAll for the collection rules.
func GetAll[T any](s *Store) []T {
	return GetAllKey[T](s, s.KeyFor(reflect.TypeFor[T]()))
}

// GetAllKey returns the data value at key as a slice of T.
func GetAllKey[T any](s *Store, key string) []T {
	return collect[T](s.GetAll(key, reflect.TypeFor[T]()))
}

// RequireAll returns the data value keyed by T's derived name as a slice of
// T, failing on the first element that cannot be adapted.
// See Store.RequireAll for which conditions are errors.
func RequireAll[T any](s *Store) ([]T, error) {
	return RequireAllKey[T](s, s.KeyFor(reflect.TypeFor[T]()))
}

// RequireAllKey returns the data value at key as a slice of T, failing on
// the first element that cannot be adapted.
func RequireAllKey[T any](s *Store, key string) ([]T, error) {
	typ := reflect.TypeFor[T]()
	values, err := s.RequireAll(key, typ)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(values))
	for _, v := range values {
		t, ok := v.(T)
		if !ok {
			return nil, newAdaptationError(key, typ, ErrWrongType)
		}
		out = append(out, t)
	}
	return out, nil
}

// MetadataAs returns the metadata value at key converted to T.
func MetadataAs[T any](s *Store, key string) (T, bool) {
	v, ok := s.MetadataAs(key, reflect.TypeFor[T]())
	if !ok {
		var zero T
		return zero, false
	}
	return as[T](v)
}

func as[T any](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}

func collect[T any](values []any) []T {
	out := make([]T, 0, len(values))
	for _, v := range values {
		if t, ok := v.(T); ok {
			out = append(out, t)
		}
	}
	return out
}
