package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"

	"github.com/on-the-ground/decorate_ive_go/decorators"
	"github.com/on-the-ground/decorate_ive_go/decorators/cache"
	"github.com/on-the-ground/decorate_ive_go/decorators/stats"
	"github.com/on-the-ground/decorate_ive_go/internal/configkeys"
)

func newFibCmd(a *app) *cobra.Command {
	var (
		metrics  bool
		showHits bool
	)
	cmd := &cobra.Command{
		Use:   "fib N",
		Short: "Compute the Nth Fibonacci number through a memoized recursion",
		Long: `fib wraps a naive recursive Fibonacci in the cache decorator and counts every
call with the stats decorator. Each value is computed once; every other call
is a cache hit.

Example:
  decorate fib 40
  decorate fib 20 --metrics`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid N %q: %w", args[0], err)
			}
			out := cmd.OutOrStdout()
			hitsOut := io.Discard
			if showHits {
				hitsOut = out
			}

			var (
				calls *stats.Stats
				memo  *cache.Cache
				fib   decorators.Func
			)
			fib = decorators.Apply(
				decorators.FromI1O1(func(n int) (int, error) {
					if n < 2 {
						return n, nil
					}
					prev := decorators.ToI1O1[int, int](fib)
					x, err := prev(n - 1)
					if err != nil {
						return 0, err
					}
					y, err := prev(n - 2)
					if err != nil {
						return 0, err
					}
					return x + y, nil
				}).Named("fib"),
				stats.Decorator(&calls, stats.WithLogger(a.logger)),
				cache.Decorator(&memo, a.cacheOptions(hitsOut)...),
			)

			res, err := decorators.ToI1O1[int, int](fib)(n)
			if err != nil {
				return err
			}
			st := memo.Stats()
			fmt.Fprintf(out, "fib(%d) = %d\n", n, res)
			fmt.Fprintf(out, "calls: %d, computed: %d, cache hits: %d\n", calls.CallCount(), st.Misses, st.Hits)

			if metrics {
				return writeMetrics(out, stats.NewCollector(a.v.GetString(configkeys.MetricsNamespace), calls))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&metrics, "metrics", false, "print call metrics in Prometheus text format")
	cmd.Flags().BoolVar(&showHits, "show-hits", false, "print every cache hit")
	return cmd
}

func writeMetrics(w io.Writer, collector prometheus.Collector) error {
	registry := prometheus.NewRegistry()
	if err := registry.Register(collector); err != nil {
		return fmt.Errorf("register collector: %w", err)
	}
	families, err := registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode metrics: %w", err)
		}
	}
	return nil
}
