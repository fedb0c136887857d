package decorators

import (
	"errors"
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/on-the-ground/decorate_ive_go/shared/helper"
)

var (
	// ErrArity is returned when a lifted function receives the wrong number of positional arguments.
	ErrArity = errors.New("wrong number of positional arguments")

	// ErrArgType is returned when a positional argument cannot be converted to the lifted function's parameter type.
	ErrArgType = errors.New("positional argument has wrong type")

	// ErrResultType is returned when a lowered function gets a result of an unexpected type.
	ErrResultType = helper.ErrUnexpectedType
)

// FromI1O1 lifts fn into a Func named after fn's Go symbol.
// Keyword arguments of a call are ignored.
func FromI1O1[I1, O1 any](fn func(I1) (O1, error)) Func {
	return New(funcName(fn), func(c Call) (any, error) {
		if err := checkArity(c, 1); err != nil {
			return nil, err
		}
		i1, err := argAs[I1](c, 0)
		if err != nil {
			return nil, err
		}
		return fn(i1)
	})
}

func FromI2O1[I1, I2, O1 any](fn func(I1, I2) (O1, error)) Func {
	return New(funcName(fn), func(c Call) (any, error) {
		if err := checkArity(c, 2); err != nil {
			return nil, err
		}
		i1, err := argAs[I1](c, 0)
		if err != nil {
			return nil, err
		}
		i2, err := argAs[I2](c, 1)
		if err != nil {
			return nil, err
		}
		return fn(i1, i2)
	})
}

func FromI3O1[I1, I2, I3, O1 any](fn func(I1, I2, I3) (O1, error)) Func {
	return New(funcName(fn), func(c Call) (any, error) {
		if err := checkArity(c, 3); err != nil {
			return nil, err
		}
		i1, err := argAs[I1](c, 0)
		if err != nil {
			return nil, err
		}
		i2, err := argAs[I2](c, 1)
		if err != nil {
			return nil, err
		}
		i3, err := argAs[I3](c, 2)
		if err != nil {
			return nil, err
		}
		return fn(i1, i2, i3)
	})
}

func FromI4O1[I1, I2, I3, I4, O1 any](fn func(I1, I2, I3, I4) (O1, error)) Func {
	return New(funcName(fn), func(c Call) (any, error) {
		if err := checkArity(c, 4); err != nil {
			return nil, err
		}
		i1, err := argAs[I1](c, 0)
		if err != nil {
			return nil, err
		}
		i2, err := argAs[I2](c, 1)
		if err != nil {
			return nil, err
		}
		i3, err := argAs[I3](c, 2)
		if err != nil {
			return nil, err
		}
		i4, err := argAs[I4](c, 3)
		if err != nil {
			return nil, err
		}
		return fn(i1, i2, i3, i4)
	})
}

// ToI1O1 lowers f into a typed function calling it with one positional argument.
func ToI1O1[I1, O1 any](f Func) func(I1) (O1, error) {
	return func(i1 I1) (O1, error) {
		return resultAs[O1](f.Call(i1))
	}
}

func ToI2O1[I1, I2, O1 any](f Func) func(I1, I2) (O1, error) {
	return func(i1 I1, i2 I2) (O1, error) {
		return resultAs[O1](f.Call(i1, i2))
	}
}

func ToI3O1[I1, I2, I3, O1 any](f Func) func(I1, I2, I3) (O1, error) {
	return func(i1 I1, i2 I2, i3 I3) (O1, error) {
		return resultAs[O1](f.Call(i1, i2, i3))
	}
}

func ToI4O1[I1, I2, I3, I4, O1 any](f Func) func(I1, I2, I3, I4) (O1, error) {
	return func(i1 I1, i2 I2, i3 I3, i4 I4) (O1, error) {
		return resultAs[O1](f.Call(i1, i2, i3, i4))
	}
}

func checkArity(c Call, n int) error {
	if len(c.Args) != n {
		return fmt.Errorf("%w: want %d, got %d", ErrArity, n, len(c.Args))
	}
	return nil
}

func argAs[T any](c Call, i int) (T, error) {
	v, ok := helper.TypedValueOf[T](c.Args[i])
	if !ok {
		return v, fmt.Errorf("%w: argument %d is %T, want %v", ErrArgType, i, c.Args[i], reflect.TypeFor[T]())
	}
	return v, nil
}

func resultAs[T any](res any, err error) (T, error) {
	return helper.GetTypedValueOf[T](func() (any, error) {
		return res, err
	})
}

// funcName resolves the Go symbol name of fn without its package path.
func funcName(fn any) string {
	pc := reflect.ValueOf(fn).Pointer()
	rf := runtime.FuncForPC(pc)
	if rf == nil {
		return "<anonymous>"
	}
	return shortName(rf.Name())
}

// shortName strips the package path from a runtime symbol name. The linker escapes
// dots in the last path element ("gopkg.in/yaml%2ev3.Func"), so the first dot after
// the last slash ends the package name.
func shortName(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
