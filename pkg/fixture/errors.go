package fixture

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/randalmurphal/fixturekit/pkg/fixture/naming"
)

// ErrAdaptationFailed is the only error the store reports. Require,
// RequireAll and their generic forms return it (wrapped in an
// *AdaptationError) when no value of the requested type can be produced.
var ErrAdaptationFailed = errors.New("failed to adapt fixture value to requested type")

// Reasons a lookup produces no value. They appear as the Cause of an
// AdaptationError and in debug logs, never as errors of their own.
var (
	// ErrNilType indicates the target type was nil.
	ErrNilType = errors.New("target type is nil")

	// ErrBlankKey indicates the key was empty or whitespace.
	ErrBlankKey = errors.New("key is blank")

	// ErrEmptyData indicates the store holds no data entries.
	ErrEmptyData = errors.New("fixture data is empty")

	// ErrKeyNotFound indicates the key is absent from the data entries.
	ErrKeyNotFound = errors.New("key not found")

	// ErrNullValue indicates the value, or its adaptation, was nil.
	ErrNullValue = errors.New("value is null")

	// ErrWrongType indicates the adapter returned a value that is not
	// assignable to the requested type.
	ErrWrongType = errors.New("adapted value has the wrong type")
)

// AdaptationError reports that a fixture value could not be produced as the
// requested type.
type AdaptationError struct {
	// Key is the fixture key that was looked up.
	Key string
	// Type is the display name of the requested type.
	Type string
	// Cause is the lookup reason or the adapter error.
	Cause error
}

// newAdaptationError builds the error returned by the strict operations.
func newAdaptationError(key string, typ reflect.Type, cause error) *AdaptationError {
	return &AdaptationError{
		Key:   key,
		Type:  naming.DisplayName(typ),
		Cause: cause,
	}
}

// Error implements the error interface.
func (e *AdaptationError) Error() string {
	msg := fmt.Sprintf("%s %s (key %q)", ErrAdaptationFailed, e.Type, e.Key)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns ErrAdaptationFailed and the cause for errors.Is/As support.
func (e *AdaptationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrAdaptationFailed}
	}
	return []error{ErrAdaptationFailed, e.Cause}
}
