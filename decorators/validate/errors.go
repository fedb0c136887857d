package validate

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrValidation is matched by every validation failure.
	ErrValidation = errors.New("validation failed")

	ErrNegative        = fmt.Errorf("%w: negative value", ErrValidation)
	ErrNotNumeric      = fmt.Errorf("%w: not a number", ErrValidation)
	ErrType            = fmt.Errorf("%w: wrong type", ErrValidation)
	ErrMissingArgument = fmt.Errorf("%w: missing positional argument", ErrValidation)
)

// ValidationError identifies the positional argument that failed a check.
// The wrapped function is never invoked when one is returned.
type ValidationError struct {
	Index    int
	Expected reflect.Type // set by type checks
	Value    any
	Reason   error
}

func (e *ValidationError) Error() string {
	switch {
	case errors.Is(e.Reason, ErrType):
		return fmt.Sprintf("argument %d must be of type %v, got %T", e.Index, e.Expected, e.Value)
	case errors.Is(e.Reason, ErrNegative):
		return fmt.Sprintf("argument %d must be non-negative", e.Index)
	case errors.Is(e.Reason, ErrNotNumeric):
		return fmt.Sprintf("argument %d must be a number, got %T", e.Index, e.Value)
	case errors.Is(e.Reason, ErrMissingArgument):
		return fmt.Sprintf("argument %d is missing", e.Index)
	default:
		return fmt.Sprintf("argument %d: %v", e.Index, e.Reason)
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Reason
}
