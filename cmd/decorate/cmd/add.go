package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/on-the-ground/decorate_ive_go/decorators"
	"github.com/on-the-ground/decorate_ive_go/decorators/debugger"
	"github.com/on-the-ground/decorate_ive_go/decorators/validate"
)

func newAddCmd(a *app) *cobra.Command {
	var raw bool
	cmd := &cobra.Command{
		Use:   "add [flags] -- A B",
		Short: "Add two integers behind type and non-negative checks",
		Long: `add runs add(a, b) = a + b under the debugger, after checking that both
arguments are integers and that b is not negative. A failed check is caught
and reported by the debugger like any other failure.

Example:
  decorate add 3 4
  decorate add --display=false -- 3 -1
  decorate add --raw 3 4`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			opts, err := a.debuggerOptions(out)
			if err != nil {
				return err
			}

			add := decorators.Apply(
				decorators.FromI2O1(func(x, y int) (int, error) { return x + y, nil }).Named("add"),
				debugger.New(opts...),
				validate.Type[int](0, 1),
				validate.NonNegative(1),
			)

			res, err := add.Call(parseArgs(args, raw)...)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, res)
			return nil
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "pass arguments as strings without parsing them")
	return cmd
}

// parseArgs turns integer looking arguments into ints and leaves the rest as strings.
func parseArgs(args []string, raw bool) []any {
	vals := make([]any, len(args))
	for i, s := range args {
		vals[i] = s
		if raw {
			continue
		}
		if n, err := strconv.Atoi(s); err == nil {
			vals[i] = n
		}
	}
	return vals
}
