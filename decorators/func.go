package decorators

import (
	"errors"
	"fmt"
)

// Call is a single invocation: positional arguments by index plus keyword arguments.
type Call struct {
	Args   []any
	Kwargs map[string]any
}

// HasKwargs reports whether any keyword argument was supplied.
func (c Call) HasKwargs() bool {
	return len(c.Kwargs) > 0
}

// Arg returns the positional argument at index i.
func (c Call) Arg(i int) (any, bool) {
	if i < 0 || i >= len(c.Args) {
		return nil, false
	}
	return c.Args[i], true
}

// Func is a named callable. The name survives decoration, so traces and reports
// always refer to the original function.
type Func struct {
	name string
	fn   func(Call) (any, error)
}

// ErrNilFunc is returned when a zero Func is invoked.
var ErrNilFunc = errors.New("decorators: nil function")

// New returns a Func with the given name.
func New(name string, fn func(Call) (any, error)) Func {
	return Func{name: name, fn: fn}
}

// Name returns the name of the wrapped function.
func (f Func) Name() string {
	return f.name
}

// Named returns a copy of f carrying a different name.
func (f Func) Named(name string) Func {
	f.name = name
	return f
}

// Wrap returns a Func with the same name as f running fn. Decorators use it to
// keep the wrapped function's identity.
func (f Func) Wrap(fn func(Call) (any, error)) Func {
	return Func{name: f.name, fn: fn}
}

// Invoke runs the function with the given call.
func (f Func) Invoke(c Call) (any, error) {
	if f.fn == nil {
		return nil, fmt.Errorf("%w: %q", ErrNilFunc, f.name)
	}
	return f.fn(c)
}

// Call runs the function with positional arguments only.
func (f Func) Call(args ...any) (any, error) {
	return f.Invoke(Call{Args: args})
}

// CallKw runs the function with keyword and positional arguments.
func (f Func) CallKw(kwargs map[string]any, args ...any) (any, error) {
	return f.Invoke(Call{Args: args, Kwargs: kwargs})
}

// Decorator wraps a Func with additional behavior.
type Decorator func(Func) Func

// Chain stacks decorators. The first decorator is the outermost one, the same
// order as stacked annotations written above a function.
func Chain(ds ...Decorator) Decorator {
	return func(f Func) Func {
		for i := len(ds) - 1; i >= 0; i-- {
			f = ds[i](f)
		}
		return f
	}
}

// Apply decorates f with ds, outermost first.
func Apply(f Func, ds ...Decorator) Func {
	return Chain(ds...)(f)
}
