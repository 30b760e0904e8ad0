// Package naming derives canonical fixture keys from Go types.
//
// A type's key is its simple name with the first rune lowercased, so a
// fixture entry for CreatePlatform lives under "createPlatform". Registry
// holds explicit overrides for types whose derived key does not match the
// fixture file.
package naming

import (
	"reflect"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Key returns the canonical fixture key for typ.
//
// Pointer types resolve to their element type and generic instantiations
// drop their type arguments (Page[Widget] -> "page"). Unnamed types such as
// []Widget or map[string]any have no simple name and yield "".
func Key(typ reflect.Type) string {
	return Uncapitalize(SimpleName(typ))
}

// KeyFor returns the canonical fixture key for T.
func KeyFor[T any]() string {
	return Key(reflect.TypeFor[T]())
}

// SimpleName returns the unqualified name of typ, dereferencing pointers.
func SimpleName(typ reflect.Type) string {
	if typ == nil {
		return ""
	}
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	name := typ.Name()
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	return name
}

// DisplayName returns a human readable name for typ, used in error messages.
// Named types render as their simple name, everything else as typ.String().
func DisplayName(typ reflect.Type) string {
	if typ == nil {
		return "<nil>"
	}
	if name := SimpleName(typ); name != "" {
		return name
	}
	return typ.String()
}

// Uncapitalize lowercases the first rune of s and leaves the rest untouched.
// unicode.ToLower applies the same mapping regardless of the process locale.
func Uncapitalize(s string) string {
	if s == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	lower := unicode.ToLower(r)
	if lower == r {
		return s
	}
	return string(lower) + s[size:]
}
