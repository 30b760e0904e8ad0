/*
Package expand substitutes variables into fixture documents before they are
turned into a Store.

# Patterns

	${name}   brace form
	$name     bare form, ends at the first non-word character
	$$        a literal dollar sign

Names start with a letter or underscore and continue with letters, digits
and underscores. Values are formatted with fmt's %v verb. Substituted text
is never expanded again.

# Missing Variables

By default a placeholder whose variable is not defined stays as written:

	expand.String("id-${run}", nil) // "id-${run}"

WithMissing changes that:

	exp := expand.New(expand.WithMissing(expand.MissingError))
	_, err := exp.String("id-${run}", nil)
	// err: undefined variable: run

# Documents

Value walks a decoded document and expands every string value inside
map[string]any, ordered maps, []any and []string. Map keys and non-string
scalars are copied unchanged.

	doc, err := exp.Value(raw, map[string]any{"tenant": "acme"})

Expander is safe for concurrent use after construction.
*/
package expand
