// Package cache memoizes a function by its positional arguments.
//
// A call without keyword arguments is looked up by the exact tuple of its
// positional arguments; on a miss the wrapped function runs and its result is
// stored, on a hit the stored result is returned and a "cache hit" line is
// written. Calls with keyword arguments always run the wrapped function and are
// never stored.
//
// Entries are never evicted unless WithMaxEntries is set. Clear drops them all.
package cache

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/on-the-ground/decorate_ive_go/decorators"
	"github.com/on-the-ground/decorate_ive_go/internal/logging"
	"github.com/on-the-ground/decorate_ive_go/internal/trie"
)

// Stats counts lookups. Bypassed counts calls carrying keyword arguments.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Bypassed uint64
}

// Cache wraps a function with a result cache.
// It is safe for concurrent use; the lock is never held while the wrapped function
// runs, so concurrent misses on one key may compute more than once.
type Cache struct {
	ID string

	f          decorators.Func
	out        io.Writer
	logger     *zap.Logger
	truthiness bool
	maxEntries int

	mu    sync.Mutex
	memo  *trie.Trie[any]
	stats Stats
}

type Option func(*Cache)

// WithOutput sets where cache hit lines are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(c *Cache) {
		c.out = w
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Cache) {
		c.logger = logging.OrNop(logger)
	}
}

// WithTruthiness makes a stored result that is falsy (nil, false, zero, empty)
// count as absent, so it is recomputed on every call. Off by default: presence is
// decided by the key alone.
func WithTruthiness(enabled bool) Option {
	return func(c *Cache) {
		c.truthiness = enabled
	}
}

// WithMaxEntries bounds the cache. Once n fresh entries have been stored since the
// last rotation, the older generation of entries is dropped. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *Cache) {
		c.maxEntries = n
	}
}

// Wrap returns a Cache memoizing f.
func Wrap(f decorators.Func, opts ...Option) *Cache {
	c := &Cache{
		ID:     uuid.New().String(),
		f:      f,
		out:    os.Stdout,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.memo = trie.New[any](c.maxEntries)
	return c
}

// Decorator is the Decorator form of Wrap; out receives the created Cache.
func Decorator(out **Cache, opts ...Option) decorators.Decorator {
	return func(f decorators.Func) decorators.Func {
		c := Wrap(f, opts...)
		if out != nil {
			*out = c
		}
		return c.Func()
	}
}

func (c *Cache) Invoke(call decorators.Call) (any, error) {
	if call.HasKwargs() {
		c.mu.Lock()
		c.stats.Bypassed++
		c.mu.Unlock()
		return c.f.Invoke(call)
	}

	keys, err := tupleKey(call.Args)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	v, ok := c.memo.Load(keys)
	if ok && c.truthiness && isFalsy(v) {
		ok = false
	}
	if ok {
		c.stats.Hits++
	} else {
		c.stats.Misses++
	}
	c.mu.Unlock()

	if ok {
		fmt.Fprintf(c.out, "cache hit: %v\n", v)
		c.logger.Debug("cache hit",
			zap.String("id", c.ID),
			zap.String("function", c.f.Name()),
			zap.String("fingerprint", fingerprint(keys)),
		)
		return v, nil
	}

	v, err = c.f.Invoke(call)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.memo.Store(keys, v)
	c.mu.Unlock()
	c.logger.Debug("cache store",
		zap.String("id", c.ID),
		zap.String("function", c.f.Name()),
		zap.String("fingerprint", fingerprint(keys)),
	)
	return v, nil
}

func (c *Cache) Call(args ...any) (any, error) {
	return c.Invoke(decorators.Call{Args: args})
}

func (c *Cache) CallKw(kwargs map[string]any, args ...any) (any, error) {
	return c.Invoke(decorators.Call{Args: args, Kwargs: kwargs})
}

// Func exposes the cache as a Func carrying the wrapped function's name.
func (c *Cache) Func() decorators.Func {
	return c.f.Wrap(c.Invoke)
}

// Clear discards every cached result. Stats are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.memo.Clear()
	c.logger.Debug("cache cleared", zap.String("id", c.ID), zap.String("function", c.f.Name()))
}

// Len is the number of cached results.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memo.Len()
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}
