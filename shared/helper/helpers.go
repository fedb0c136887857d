package helper

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrUnexpectedType is returned when a value does not have the expected type.
var ErrUnexpectedType = errors.New("unexpected type")

// TypedValueOf asserts raw to T.
// A nil raw converts to the zero T only when T itself can hold nil.
func TypedValueOf[T any](raw any) (res T, ok bool) {
	if raw == nil {
		return res, AcceptsNil(reflect.TypeFor[T]())
	}
	res, ok = raw.(T)
	return
}

// GetTypedValueOf safely asserts the result of a getter function to the expected type T.
// Returns an error if the getter fails or the type assertion fails.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	var zero T

	res, err := getFn()
	if err != nil {
		return zero, err
	}

	val, ok := TypedValueOf[T](res)
	if !ok {
		return zero, fmt.Errorf("%w: %T, want %v", ErrUnexpectedType, res, reflect.TypeFor[T]())
	}

	return val, nil
}

// AcceptsNil reports whether a value of type t can be nil.
func AcceptsNil(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	default:
		return false
	}
}
