package stats_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/decorate_ive_go/decorators"
	"github.com/on-the-ground/decorate_ive_go/decorators/stats"
	"github.com/on-the-ground/decorate_ive_go/internal/logging"
)

func double(n int) (int, error) {
	return n * 2, nil
}

func TestStats_CountsCallsAndRemembersLastResult(t *testing.T) {
	s := stats.Wrap(decorators.FromI1O1(double), stats.WithLogger(logging.NewTest()))

	_, ok := s.LastReturned()
	assert.False(t, ok, "no value before the first call")
	assert.Equal(t, uint64(0), s.CallCount())

	for i := 1; i <= 5; i++ {
		res, err := s.Call(i)
		require.NoError(t, err)
		assert.Equal(t, i*2, res)
	}

	assert.Equal(t, uint64(5), s.CallCount())
	last, ok := s.LastReturned()
	assert.True(t, ok)
	assert.Equal(t, 10, last)
	assert.Equal(t, "double", s.Name())
	assert.NotEmpty(t, s.ID)
}

func TestStats_ForwardsKwargs(t *testing.T) {
	var got map[string]any
	s := stats.Wrap(decorators.New("kw", func(c decorators.Call) (any, error) {
		got = c.Kwargs
		return len(c.Args), nil
	}))

	res, err := s.CallKw(map[string]any{"x": 1}, "a", "b")
	require.NoError(t, err)
	assert.Equal(t, 2, res)
	assert.Equal(t, map[string]any{"x": 1}, got)
}

func TestStats_ErrorPropagatesAndKeepsLastResult(t *testing.T) {
	boom := errors.New("boom")
	fail := false
	s := stats.Wrap(decorators.New("flaky", func(decorators.Call) (any, error) {
		if fail {
			return nil, boom
		}
		return "ok", nil
	}))

	_, err := s.Call()
	require.NoError(t, err)

	fail = true
	_, err = s.Call()
	assert.Same(t, boom, err)

	assert.Equal(t, uint64(2), s.CallCount(), "failed calls are counted")
	last, ok := s.LastReturned()
	assert.True(t, ok)
	assert.Equal(t, "ok", last)
}

func TestStats_RecordsLastCallSpan(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	clock := func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	s := stats.Wrap(decorators.FromI1O1(double), stats.WithClock(clock))

	_, ok := s.LastCall()
	assert.False(t, ok)

	_, err := s.Call(1)
	require.NoError(t, err)

	span, ok := s.LastCall()
	require.True(t, ok)
	assert.Equal(t, base.Add(time.Second), span.Start())
	assert.Equal(t, time.Second, span.Duration())
}

func TestDecorator_PublishesInstance(t *testing.T) {
	var s *stats.Stats
	f := decorators.Apply(decorators.FromI1O1(double), stats.Decorator(&s))
	require.NotNil(t, s)

	_, err := f.Call(2)
	require.NoError(t, err)
	_, err = f.Call(3)
	require.NoError(t, err)

	assert.Equal(t, "double", f.Name())
	assert.Equal(t, uint64(2), s.CallCount())
	last, _ := s.LastReturned()
	assert.Equal(t, 6, last)
}

func TestCollector(t *testing.T) {
	s := stats.Wrap(decorators.FromI1O1(double))
	idle := stats.Wrap(decorators.New("idle", func(decorators.Call) (any, error) { return nil, nil }))
	_, _ = s.Call(1)
	_, _ = s.Call(2)

	c := stats.NewCollector("decorated", s, idle)

	expected := `
# HELP decorated_calls_total Number of calls made through the decorated function.
# TYPE decorated_calls_total counter
decorated_calls_total{function="double"} 2
decorated_calls_total{function="idle"} 0
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected), "decorated_calls_total")
	assert.NoError(t, err)

	// the idle function has no completed call and exports no duration
	assert.Equal(t, 3, testutil.CollectAndCount(c))
}

func TestCollectorLastCallSeconds(t *testing.T) {
	tick := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}
	s := stats.Wrap(decorators.FromI1O1(double), stats.WithClock(clock))
	_, _ = s.Call(4)

	expected := `
# HELP decorated_last_call_seconds Duration of the most recent completed call.
# TYPE decorated_last_call_seconds gauge
decorated_last_call_seconds{function="double"} 1
`
	err := testutil.CollectAndCompare(stats.NewCollector("decorated", s), strings.NewReader(expected), "decorated_last_call_seconds")
	assert.NoError(t, err)
}
