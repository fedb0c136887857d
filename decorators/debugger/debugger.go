// Package debugger traces calls and turns failures of the wrapped function into a
// loud, reported crash.
//
// With display enabled, every call first writes a block naming the function and its
// arguments. With catch enabled, a returned error or a panic is reported as
//
//	EXCEPTION OCCURED IN <function NAME>: MESSAGE
//
// and then handled by the failure policy: ExitProcess terminates the process
// (the default), ReportAndReturn hands the failure back to the caller wrapped in
// ErrCaught. With catch disabled the wrapped function's errors and panics reach
// the caller untouched.
package debugger

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/decorate_ive_go/decorators"
	"github.com/on-the-ground/decorate_ive_go/internal/logging"
)

// pad is the label column width of the trace block, also the separator length.
const pad = 17

// Policy decides what happens after a caught failure has been reported.
type Policy int

const (
	// ExitProcess terminates the process through the configured exit function.
	ExitProcess Policy = iota
	// ReportAndReturn returns the failure to the caller wrapped in ErrCaught.
	ReportAndReturn
)

func (p Policy) String() string {
	switch p {
	case ExitProcess:
		return "exit"
	case ReportAndReturn:
		return "return"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts the names returned by Policy.String.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(s) {
	case "exit", "":
		return ExitProcess, nil
	case "return":
		return ReportAndReturn, nil
	default:
		return ExitProcess, fmt.Errorf("unknown failure policy %q", s)
	}
}

// ErrCaught wraps a failure that was caught and reported but did not end the process.
var ErrCaught = errors.New("caught failure")

// PanicError carries a value recovered from a panic in the wrapped function.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprint(e.Value)
}

func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

type config struct {
	display  bool
	catch    bool
	out      io.Writer
	logger   *zap.Logger
	exit     func(int)
	exitCode int
	policy   Policy
}

type Option func(*config)

// WithDisplay toggles the call trace. Defaults to true.
func WithDisplay(display bool) Option {
	return func(c *config) {
		c.display = display
	}
}

// WithCatch toggles the error boundary. Defaults to true.
func WithCatch(catch bool) Option {
	return func(c *config) {
		c.catch = catch
	}
}

// WithOutput sets where traces and reports are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		c.out = w
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logging.OrNop(logger)
	}
}

// WithExit replaces os.Exit.
func WithExit(exit func(int)) Option {
	return func(c *config) {
		c.exit = exit
	}
}

// WithExitCode sets the status used by ExitProcess. Defaults to 1.
func WithExitCode(code int) Option {
	return func(c *config) {
		c.exitCode = code
	}
}

func WithFailurePolicy(p Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// New returns a debugger decorator. Configuration is fixed once New returns.
func New(opts ...Option) decorators.Decorator {
	cfg := config{
		display:  true,
		catch:    true,
		out:      os.Stdout,
		logger:   zap.NewNop(),
		exit:     os.Exit,
		exitCode: 1,
		policy:   ExitProcess,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return func(f decorators.Func) decorators.Func {
		d := &debugger{config: cfg, id: uuid.New().String(), f: f}
		return f.Wrap(d.invoke)
	}
}

type debugger struct {
	config
	id string
	f  decorators.Func
}

func (d *debugger) invoke(c decorators.Call) (any, error) {
	if d.display {
		d.trace(c)
	}
	d.logger.Debug("calling",
		zap.String("id", d.id),
		zap.String("function", d.f.Name()),
		zap.String("args", decorators.FormatArgs(c.Args)),
		zap.String("kwargs", decorators.FormatKwargs(c.Kwargs)),
	)
	if !d.catch {
		return d.f.Invoke(c)
	}

	res, err := d.guarded(c)
	if err == nil {
		return res, nil
	}

	fmt.Fprintf(d.out, "EXCEPTION OCCURED IN <function %s>: %v\n", d.f.Name(), err)
	d.logger.Error("caught failure",
		zap.String("id", d.id),
		zap.String("function", d.f.Name()),
		zap.Stringer("policy", d.policy),
		zap.Error(err),
	)
	if d.policy == ExitProcess {
		_ = d.logger.Sync()
		d.exit(d.exitCode)
	}
	// reached under ReportAndReturn, or when the exit function returns
	return nil, fmt.Errorf("%w in %s: %w", ErrCaught, d.f.Name(), err)
}

func (d *debugger) guarded(c decorators.Call) (res any, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, &PanicError{Value: r}
		}
	}()
	return d.f.Invoke(c)
}

func (d *debugger) trace(c decorators.Call) {
	sep := strings.Repeat("-", pad)
	fmt.Fprintln(d.out, sep)
	fmt.Fprintf(d.out, "%-*s: %s\n", pad, "function", d.f.Name())
	fmt.Fprintf(d.out, "%-*s: %s\n", pad, "arguments", decorators.FormatArgs(c.Args))
	fmt.Fprintf(d.out, "%-*s: %s\n", pad, "keyword arguments", decorators.FormatKwargs(c.Kwargs))
	fmt.Fprintln(d.out, sep)
}
