// Package validate builds decorators that check positional arguments before the
// wrapped function runs.
//
// Indices are checked in the order they were given, primary index first, and the
// first failing index is reported. Keyword arguments are never inspected.
package validate

import (
	"reflect"

	"github.com/on-the-ground/decorate_ive_go/decorators"
)

// check returns a non-nil reason when v fails.
type check func(v any) error

// Signed is implemented by arbitrary precision numbers such as *big.Int and decimal.Decimal.
type Signed interface {
	Sign() int
}

// NonNegative rejects calls whose positional arguments at the given indices are below zero.
func NonNegative(index int, more ...int) decorators.Decorator {
	return validator(nil, isNonNegative, index, more...)
}

// Type rejects calls whose positional arguments at the given indices are not assignable to T.
// For an interface T the argument has to implement it.
func Type[T any](index int, more ...int) decorators.Decorator {
	return TypeOf(reflect.TypeFor[T](), index, more...)
}

// TypeOf is Type with the type given at run time. It panics if typ is nil.
func TypeOf(typ reflect.Type, index int, more ...int) decorators.Decorator {
	if typ == nil {
		panic("validate: TypeOf called with a nil type")
	}
	return validator(typ, func(v any) error {
		if v == nil || !reflect.TypeOf(v).AssignableTo(typ) {
			return ErrType
		}
		return nil
	}, index, more...)
}

func validator(expected reflect.Type, chk check, index int, more ...int) decorators.Decorator {
	indices := append([]int{index}, more...)
	return func(f decorators.Func) decorators.Func {
		return f.Wrap(func(c decorators.Call) (any, error) {
			for _, i := range indices {
				v, ok := c.Arg(i)
				if !ok {
					return nil, &ValidationError{Index: i, Expected: expected, Reason: ErrMissingArgument}
				}
				if reason := chk(v); reason != nil {
					return nil, &ValidationError{Index: i, Expected: expected, Value: v, Reason: reason}
				}
			}
			return f.Invoke(c)
		})
	}
}

func isNonNegative(v any) error {
	if s, ok := v.(Signed); ok {
		if s.Sign() < 0 {
			return ErrNegative
		}
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if rv.Int() < 0 {
			return ErrNegative
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
	case reflect.Float32, reflect.Float64:
		// NaN is not below zero and passes
		if rv.Float() < 0 {
			return ErrNegative
		}
	default:
		return ErrNotNumeric
	}
	return nil
}
