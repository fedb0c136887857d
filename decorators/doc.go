// Package decorators provides a small set of composable function decorators for Go.
//
// A decorator takes a callable and returns a new callable with the same calling
// convention and some extra behavior: counting calls, tracing them, memoizing
// results, or validating arguments before the wrapped function runs.
//
// # Calling model
//
// Every decorated function is a Func: a named callable taking a Call, which holds
// positional arguments (addressed by zero-based index) and keyword arguments.
// Errors returned by the wrapped function play the role of exceptions and are
// propagated unchanged unless a decorator says otherwise.
//
// Typed Go functions are lifted into a Func with the FromIxO1 family and lowered
// back with the ToIxO1 family:
//
//	add := decorators.FromI2O1(func(a, b int) (int, error) { return a + b, nil })
//	checked := decorators.Apply(add, validate.NonNegative(1))
//	sum, err := decorators.ToI2O1[int, int, int](checked)(3, 4) // 7, nil
//
// # Decorators
//
//   - stats:    call counter and last returned value
//   - debugger: call trace and catch-and-report of failures
//   - cache:    memoization keyed by the positional argument tuple
//   - validate: non-negative and type checks on positional arguments
//
// Each decorator owns only its own bookkeeping. Nothing is global, so wrapped
// functions can be composed and tested in isolation.
package decorators
