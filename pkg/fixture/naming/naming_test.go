package naming_test

import (
	"reflect"
	"sync"
	"testing"

	"github.com/randalmurphal/fixturekit/pkg/fixture/naming"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type CreatePlatform struct{}

type A struct{}

type URLConfig struct{}

type Page[T any] struct{ Items []T }

type Ünicode struct{}

func TestKey(t *testing.T) {
	tests := []struct {
		name string
		typ  reflect.Type
		want string
	}{
		{"struct", reflect.TypeFor[CreatePlatform](), "createPlatform"},
		{"single letter", reflect.TypeFor[A](), "a"},
		{"pointer", reflect.TypeFor[*CreatePlatform](), "createPlatform"},
		{"double pointer", reflect.TypeFor[**CreatePlatform](), "createPlatform"},
		{"acronym keeps remainder", reflect.TypeFor[URLConfig](), "uRLConfig"},
		{"generic instantiation", reflect.TypeFor[Page[A]](), "page"},
		{"non-ascii", reflect.TypeFor[Ünicode](), "ünicode"},
		{"builtin", reflect.TypeFor[string](), "string"},
		{"unnamed slice", reflect.TypeFor[[]A](), ""},
		{"unnamed map", reflect.TypeFor[map[string]any](), ""},
		{"nil type", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, naming.Key(tt.typ))
		})
	}
}

func TestKey_Deterministic(t *testing.T) {
	typ := reflect.TypeFor[CreatePlatform]()
	first := naming.Key(typ)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, naming.Key(typ))
	}
}

func TestKeyFor(t *testing.T) {
	assert.Equal(t, "createPlatform", naming.KeyFor[CreatePlatform]())
	assert.Equal(t, "createPlatform", naming.KeyFor[*CreatePlatform]())
	assert.Equal(t, "", naming.KeyFor[any]())
}

func TestUncapitalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"A", "a"},
		{"a", "a"},
		{"CreatePlatform", "createPlatform"},
		{"createPlatform", "createPlatform"},
		{"1Thing", "1Thing"},
		{"Ωmega", "ωmega"},
		{"İstanbul", "istanbul"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, naming.Uncapitalize(tt.in))
		})
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "CreatePlatform", naming.DisplayName(reflect.TypeFor[*CreatePlatform]()))
	assert.Equal(t, "[]naming_test.A", naming.DisplayName(reflect.TypeFor[[]A]()))
	assert.Equal(t, "<nil>", naming.DisplayName(nil))
}

func TestRegistry_Overrides(t *testing.T) {
	r := naming.NewRegistry()
	assert.Equal(t, 0, r.Len())

	require.NoError(t, naming.Register[CreatePlatform](r, "platform"))
	assert.Equal(t, 1, r.Len())

	assert.Equal(t, "platform", r.Key(reflect.TypeFor[CreatePlatform]()))
	assert.Equal(t, "platform", r.Key(reflect.TypeFor[*CreatePlatform]()), "pointer shares the override")
	assert.Equal(t, "a", r.Key(reflect.TypeFor[A]()), "unregistered types fall back to derivation")

	key, ok := r.Lookup(reflect.TypeFor[A]())
	assert.False(t, ok)
	assert.Empty(t, key)

	r.Delete(reflect.TypeFor[CreatePlatform]())
	assert.Equal(t, "createPlatform", r.Key(reflect.TypeFor[CreatePlatform]()))
}

func TestRegistry_RegisterErrors(t *testing.T) {
	r := naming.NewRegistry()

	err := r.Register(reflect.TypeFor[A](), "  ")
	assert.ErrorIs(t, err, naming.ErrBlankKey)

	assert.Error(t, r.Register(nil, "key"))
	assert.Panics(t, func() { r.MustRegister(reflect.TypeFor[A](), "") })
}

func TestRegistry_NilRegistryDerives(t *testing.T) {
	var r *naming.Registry
	assert.Equal(t, "createPlatform", r.Key(reflect.TypeFor[CreatePlatform]()))
}

func TestRegistry_RangeSnapshot(t *testing.T) {
	r := naming.NewRegistry()
	r.MustRegister(reflect.TypeFor[A](), "first")
	r.MustRegister(reflect.TypeFor[URLConfig](), "second")

	seen := 0
	r.Range(func(typ reflect.Type, _ string) bool {
		r.Delete(typ)
		seen++
		return true
	})
	assert.Equal(t, 2, seen)
	assert.Equal(t, 0, r.Len())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := naming.NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_ = r.Register(reflect.TypeFor[A](), "a")
			} else {
				_ = r.Key(reflect.TypeFor[A]())
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, "a", r.Key(reflect.TypeFor[A]()))
}
