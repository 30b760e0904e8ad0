package expand

// Missing specifies what happens to a placeholder whose variable is not defined.
type Missing int

const (
	// MissingKeep leaves the placeholder as written. This is the default.
	MissingKeep Missing = iota

	// MissingEmpty replaces the placeholder with an empty string.
	MissingEmpty

	// MissingError reports an *UndefinedVariableError.
	MissingError
)

// String returns the name used in configuration files and flags.
func (m Missing) String() string {
	switch m {
	case MissingEmpty:
		return "empty"
	case MissingError:
		return "error"
	default:
		return "keep"
	}
}

// ParseMissing parses "keep", "empty" or "error". Anything else is MissingKeep.
func ParseMissing(s string) Missing {
	switch s {
	case "empty":
		return MissingEmpty
	case "error":
		return MissingError
	default:
		return MissingKeep
	}
}

// Option configures an Expander.
type Option func(*Expander)

// WithMissing sets how undefined variables are handled.
//
// Default: MissingKeep
func WithMissing(m Missing) Option {
	return func(e *Expander) {
		e.missing = m
	}
}

// WithBareStyle enables or disables the $name form. ${name} is always expanded.
//
// Default: true
func WithBareStyle(enabled bool) Option {
	return func(e *Expander) {
		e.bare = enabled
	}
}
