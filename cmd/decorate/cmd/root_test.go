package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/govalues/decimal"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/decorate_ive_go/decorators/debugger"
	"github.com/on-the-ground/decorate_ive_go/decorators/validate"
)

type exitRecorder struct {
	codes []int
}

func (r *exitRecorder) exit(code int) {
	r.codes = append(r.codes, code)
}

func run(t *testing.T, args ...string) (string, *exitRecorder, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	rec := &exitRecorder{}
	root := newRootCmd(rec.exit)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), rec, err
}

func TestFib(t *testing.T) {
	out, _, err := run(t, "fib", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "fib(10) = 55\n")
	assert.Contains(t, out, "calls: 19, computed: 11, cache hits: 8\n")
	assert.NotContains(t, out, "cache hit:")
}

func TestFib_ShowHitsAndMetrics(t *testing.T) {
	out, _, err := run(t, "fib", "3", "--show-hits", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "cache hit: 1\n")
	assert.Contains(t, out, `decorate_calls_total{function="fib"} 5`)
}

func TestFib_InvalidArgument(t *testing.T) {
	_, _, err := run(t, "fib", "ten")
	assert.ErrorContains(t, err, `invalid N "ten"`)
}

func TestAdd(t *testing.T) {
	out, rec, err := run(t, "add", "3", "4")
	require.NoError(t, err)
	assert.Contains(t, out, "function         : add\n")
	assert.Contains(t, out, "arguments        : (3, 4)\n")
	assert.Contains(t, out, "7\n")
	assert.Empty(t, rec.codes)
}

func TestAdd_NegativeIsCaughtAndExits(t *testing.T) {
	out, rec, err := run(t, "add", "--display=false", "--", "3", "-1")
	assert.Equal(t, []int{1}, rec.codes)
	assert.Contains(t, out, "EXCEPTION OCCURED IN <function add>: argument 1 must be non-negative\n")

	// the recorder returns, so the caught failure surfaces as an error
	assert.ErrorIs(t, err, debugger.ErrCaught)
	assert.ErrorIs(t, err, validate.ErrNegative)
}

func TestAdd_RawWithoutCatchPropagates(t *testing.T) {
	out, rec, err := run(t, "add", "--raw", "--catch=false", "--display=false", "3", "4")
	var verr *validate.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 0, verr.Index)
	assert.Empty(t, rec.codes)
	assert.NotContains(t, out, "EXCEPTION")
}

func TestDiv_PolicyFromEnvironment(t *testing.T) {
	t.Setenv("DECORATE_DEBUGGER_POLICY", "return")
	t.Setenv("DECORATE_DEBUGGER_DISPLAY", "false")

	out, rec, err := run(t, "div", "1", "0")
	assert.Empty(t, rec.codes)
	assert.ErrorIs(t, err, debugger.ErrCaught)
	assert.Contains(t, out, "EXCEPTION OCCURED IN <function div>")
	assert.NotContains(t, out, "function         :")
}

func TestDiv_ExitCodeFromConfigFile(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("debugger:\n  display: false\n  exit_code: 7\n"), 0o600))

	_, rec, err := run(t, "--config", cfg, "div", "1", "0")
	assert.Equal(t, []int{7}, rec.codes)
	assert.ErrorIs(t, err, debugger.ErrCaught)
}

func TestDiv(t *testing.T) {
	out, _, err := run(t, "--display=false", "div", "1", "4")
	require.NoError(t, err)
	got, err := decimal.Parse(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Zero(t, got.Cmp(decimal.MustParse("0.25")), "got %s", got)
}

func TestUnknownPolicy(t *testing.T) {
	_, _, err := run(t, "--policy", "retry", "add", "1", "2")
	assert.ErrorContains(t, err, `unknown failure policy "retry"`)
}

func TestParseArgs(t *testing.T) {
	assert.Equal(t, []any{1, "x"}, parseArgs([]string{"1", "x"}, false))
	assert.Equal(t, []any{"1", "x"}, parseArgs([]string{"1", "x"}, true))
}

func TestMustBindFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("exit-code", 1, "")
	v := viper.New()

	mustBindFlags(v, fs, map[string]string{"debugger.exit_code": "exit-code"})
	require.NoError(t, fs.Parse([]string{"--exit-code", "4"}))
	assert.Equal(t, 4, v.GetInt("debugger.exit_code"))

	assert.PanicsWithValue(t, `bind --exit to debugger.exit_code: flag for "debugger.exit_code" is nil`, func() {
		mustBindFlags(v, fs, map[string]string{"debugger.exit_code": "exit"})
	})
}

func TestDiv_ExitCodeFromFlag(t *testing.T) {
	_, rec, err := run(t, "--display=false", "--exit-code", "9", "div", "1", "0")
	assert.Equal(t, []int{9}, rec.codes)
	assert.ErrorIs(t, err, debugger.ErrCaught)
}
