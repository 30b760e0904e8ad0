package adapt

import (
	"fmt"
	"reflect"
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// Decoder adapts values with mapstructure.
//
// Struct fields match map keys through their `json` tag, or case-insensitively
// by field name when untagged. Strings decode into time.Duration and RFC 3339
// strings into time.Time.
type Decoder struct {
	weak        bool
	errorUnused bool
	tagName     string
	hooks       []mapstructure.DecodeHookFunc
}

// Compile-time interface check.
var _ Adapter = (*Decoder)(nil)

// Option configures a Decoder.
type Option func(*Decoder)

// WithWeakTyping enables weakly typed input: numbers decode into strings,
// numeric strings into numbers, and so on.
func WithWeakTyping() Option {
	return func(d *Decoder) {
		d.weak = true
	}
}

// WithErrorUnused fails decoding when the input has keys that no struct
// field consumes.
func WithErrorUnused() Option {
	return func(d *Decoder) {
		d.errorUnused = true
	}
}

// WithTagName sets the struct tag used to match keys.
//
// Default: "json"
func WithTagName(name string) Option {
	return func(d *Decoder) {
		d.tagName = name
	}
}

// WithDecodeHook appends a mapstructure decode hook.
func WithDecodeHook(hook mapstructure.DecodeHookFunc) Option {
	return func(d *Decoder) {
		d.hooks = append(d.hooks, hook)
	}
}

// NewDecoder creates a Decoder. Without options it is strict.
func NewDecoder(opts ...Option) *Decoder {
	d := &Decoder{
		tagName: "json",
		hooks: []mapstructure.DecodeHookFunc{
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Strict returns the adapter used for fixture data.
func Strict() *Decoder {
	return NewDecoder()
}

// Loose returns the weakly typed adapter used for fixture metadata.
// Booleans become "true" or "false" when a string is requested.
func Loose() *Decoder {
	return NewDecoder(WithWeakTyping(), WithDecodeHook(boolToStringHook))
}

func boolToStringHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Bool || to.Kind() != reflect.String {
		return data, nil
	}
	return strconv.FormatBool(reflect.ValueOf(data).Bool()), nil
}

// Adapt implements Adapter.
func (d *Decoder) Adapt(raw any, typ reflect.Type) (any, error) {
	if typ == nil {
		return nil, ErrNilType
	}
	if raw == nil {
		return nil, nil
	}
	if v, ok := direct(raw, typ); ok {
		return v, nil
	}

	target := reflect.New(typ)
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(d.hooks...),
		WeaklyTypedInput: d.weak,
		ErrorUnused:      d.errorUnused,
		TagName:          d.tagName,
		Result:           target.Interface(),
	})
	if err != nil {
		return nil, fmt.Errorf("create decoder for %s: %w", typ, err)
	}
	if err := dec.Decode(Plain(raw)); err != nil {
		return nil, fmt.Errorf("decode %T into %s: %w", raw, typ, err)
	}
	return target.Elem().Interface(), nil
}
