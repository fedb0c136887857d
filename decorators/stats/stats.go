// Package stats counts calls to a function and remembers what it last returned.
package stats

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"

	"github.com/on-the-ground/decorate_ive_go/decorators"
	"github.com/on-the-ground/decorate_ive_go/internal/logging"
)

// Stats wraps a function and records how it is used.
// It is safe for concurrent use; the lock is never held while the wrapped function runs.
type Stats struct {
	ID string

	f      decorators.Func
	logger *zap.Logger
	now    func() time.Time

	mu           sync.Mutex
	callCount    uint64
	lastReturned any
	hasReturned  bool
	lastCall     timespan.TimeSpan
	hasCalled    bool
}

type Option func(*Stats)

// WithLogger sets the logger used for per-call debug logs.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Stats) {
		s.logger = logging.OrNop(logger)
	}
}

// WithClock overrides the time source used for call spans.
func WithClock(now func() time.Time) Option {
	return func(s *Stats) {
		s.now = now
	}
}

// Wrap returns a Stats recording calls to f.
func Wrap(f decorators.Func, opts ...Option) *Stats {
	s := &Stats{
		ID:     uuid.New().String(),
		f:      f,
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Decorator is the Decorator form of Wrap. The created Stats is published through out
// so it can be inspected after the function has been stacked with other decorators.
func Decorator(out **Stats, opts ...Option) decorators.Decorator {
	return func(f decorators.Func) decorators.Func {
		s := Wrap(f, opts...)
		if out != nil {
			*out = s
		}
		return s.Func()
	}
}

// Invoke counts the call, forwards it and remembers a successful result.
// Errors from the wrapped function are returned unchanged and leave LastReturned as it was.
func (s *Stats) Invoke(c decorators.Call) (any, error) {
	s.mu.Lock()
	s.callCount++
	count := s.callCount
	s.mu.Unlock()

	start := s.now()
	res, err := s.f.Invoke(c)
	span := timespan.BetweenTimes(start, s.now())

	s.mu.Lock()
	s.lastCall, s.hasCalled = span, true
	if err == nil {
		s.lastReturned, s.hasReturned = res, true
	}
	s.mu.Unlock()

	s.logger.Debug("call recorded",
		zap.String("id", s.ID),
		zap.String("function", s.f.Name()),
		zap.Uint64("call_count", count),
		zap.Duration("elapsed", span.Duration()),
		zap.Error(err),
	)
	return res, err
}

func (s *Stats) Call(args ...any) (any, error) {
	return s.Invoke(decorators.Call{Args: args})
}

func (s *Stats) CallKw(kwargs map[string]any, args ...any) (any, error) {
	return s.Invoke(decorators.Call{Args: args, Kwargs: kwargs})
}

// Func exposes the wrapper as a Func carrying the wrapped function's name.
func (s *Stats) Func() decorators.Func {
	return s.f.Wrap(s.Invoke)
}

func (s *Stats) Name() string {
	return s.f.Name()
}

// CallCount is the number of invocations so far, failed ones included.
func (s *Stats) CallCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// LastReturned is the most recent successful result. ok is false until one exists.
func (s *Stats) LastReturned() (v any, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReturned, s.hasReturned
}

// LastCall is the time span of the most recently completed call.
func (s *Stats) LastCall() (span timespan.TimeSpan, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCall, s.hasCalled
}
