package expand

import (
	"fmt"
	"regexp"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// placeholder matches $$, ${name} and $name in a single pass so that
// substituted text is never rescanned.
var placeholder = regexp.MustCompile(`\$\$|\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// Expander substitutes variables into strings and documents.
type Expander struct {
	missing Missing
	bare    bool
}

// New creates an Expander. Without options it keeps undefined placeholders
// and expands both forms.
func New(opts ...Option) *Expander {
	e := &Expander{
		missing: MissingKeep,
		bare:    true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// String expands the placeholders in s.
// An error is only returned under MissingError.
func (e *Expander) String(s string, vars map[string]any) (string, error) {
	if !strings.Contains(s, "$") {
		return s, nil
	}

	var undefined []string
	out := placeholder.ReplaceAllStringFunc(s, func(match string) string {
		if match == "$$" {
			return "$"
		}
		var name string
		if strings.HasPrefix(match, "${") {
			name = match[2 : len(match)-1]
		} else {
			if !e.bare {
				return match
			}
			name = match[1:]
		}
		if v, ok := vars[name]; ok {
			return fmt.Sprintf("%v", v)
		}
		switch e.missing {
		case MissingEmpty:
			return ""
		case MissingError:
			undefined = appendUnique(undefined, name)
		}
		return match
	})

	if len(undefined) > 0 {
		return out, &UndefinedVariableError{Names: undefined}
	}
	return out, nil
}

// Value returns a copy of v with every string expanded.
// Under MissingError the names from all strings are collected into one error.
func (e *Expander) Value(v any, vars map[string]any) (any, error) {
	var undefined []string
	out := e.walk(v, vars, &undefined)
	if len(undefined) > 0 {
		return out, &UndefinedVariableError{Names: undefined}
	}
	return out, nil
}

func (e *Expander) walk(v any, vars map[string]any, undefined *[]string) any {
	switch val := v.(type) {
	case string:
		s, err := e.String(val, vars)
		collect(err, undefined)
		return s
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = e.walk(item, vars, undefined)
		}
		return out
	case map[any]any:
		out := make(map[any]any, len(val))
		for k, item := range val {
			out[k] = e.walk(item, vars, undefined)
		}
		return out
	case *orderedmap.OrderedMap[string, any]:
		if val == nil {
			return val
		}
		out := orderedmap.New[string, any]()
		for pair := val.Oldest(); pair != nil; pair = pair.Next() {
			out.Set(pair.Key, e.walk(pair.Value, vars, undefined))
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = e.walk(item, vars, undefined)
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			s, err := e.String(item, vars)
			collect(err, undefined)
			out[i] = s
		}
		return out
	default:
		return v
	}
}

func collect(err error, undefined *[]string) {
	if uerr, ok := err.(*UndefinedVariableError); ok {
		for _, name := range uerr.Names {
			*undefined = appendUnique(*undefined, name)
		}
	}
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}

// UndefinedVariableError lists the variables that MissingError could not resolve.
type UndefinedVariableError struct {
	// Names holds each undefined name once, in order of first use.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedVariableError) Error() string {
	if len(e.Names) == 1 {
		return "undefined variable: " + e.Names[0]
	}
	return "undefined variables: " + strings.Join(e.Names, ", ")
}

var defaultExpander = New()

// String expands s with the default Expander.
func String(s string, vars map[string]any) string {
	out, _ := defaultExpander.String(s, vars)
	return out
}

// Value expands every string in v with the default Expander.
func Value(v any, vars map[string]any) any {
	out, _ := defaultExpander.Value(v, vars)
	return out
}
