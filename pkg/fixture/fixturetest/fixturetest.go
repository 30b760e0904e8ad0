// Package fixturetest provides helpers for using fixtures inside tests.
// Every helper fails the test immediately when the fixture cannot be
// loaded or the value cannot be produced.
//
// Example:
//
//	func TestCheckout(t *testing.T) {
//	    fs := fixturetest.Load(t, "testdata/checkout.yaml")
//	    order := fixturetest.MustGet[Order](t, fs)
//	    items := fixturetest.MustGetAll[Item](t, fs, "items")
//	    ...
//	}
package fixturetest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/fixturekit/pkg/fixture"
	"github.com/randalmurphal/fixturekit/pkg/fixture/loader"
)

// Load reads a fixture file, choosing the format by extension.
func Load(t testing.TB, path string, opts ...loader.Option) *fixture.Store {
	t.Helper()
	s, err := loader.FromFile(path, opts...)
	require.NoError(t, err, "load fixture %s", path)
	return s
}

// Parse builds a store from an inline document.
func Parse(t testing.TB, format loader.Format, content string, opts ...loader.Option) *fixture.Store {
	t.Helper()
	s, err := loader.Parse([]byte(content), format, opts...)
	require.NoError(t, err, "parse %s fixture", format)
	return s
}

// FromMap builds a store from plain maps. Keys are inserted in sorted order.
func FromMap(t testing.TB, data, metadata map[string]any, opts ...fixture.Option) *fixture.Store {
	t.Helper()
	base := []fixture.Option{fixture.WithData(data), fixture.WithMetadata(metadata)}
	return fixture.New(append(base, opts...)...)
}

// MustGet returns the value keyed by T's derived name.
func MustGet[T any](t testing.TB, s *fixture.Store) T {
	t.Helper()
	v, err := fixture.Require[T](s)
	require.NoError(t, err)
	return v
}

// MustGetKey returns the value at key as T.
func MustGetKey[T any](t testing.TB, s *fixture.Store, key string) T {
	t.Helper()
	v, err := fixture.RequireKey[T](s, key)
	require.NoError(t, err)
	return v
}

// MustGetAll returns the value at key as a slice of T and fails if any
// element cannot be adapted. A missing key yields an empty slice.
func MustGetAll[T any](t testing.TB, s *fixture.Store, key string) []T {
	t.Helper()
	v, err := fixture.RequireAllKey[T](s, key)
	require.NoError(t, err)
	return v
}

// MustMetadata returns the metadata value at key as a string.
func MustMetadata(t testing.TB, s *fixture.Store, key string) string {
	t.Helper()
	v, ok := s.Metadata(key)
	require.True(t, ok, "metadata %q is missing", key)
	return v
}
