package cmd

import (
	"fmt"

	"github.com/govalues/decimal"
	"github.com/spf13/cobra"

	"github.com/on-the-ground/decorate_ive_go/decorators"
	"github.com/on-the-ground/decorate_ive_go/decorators/debugger"
)

func newDivCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "div [flags] -- A B",
		Short: "Divide two decimals under the debugger",
		Long: `div runs a / b on exact decimals under the debugger. Dividing by zero fails,
and the debugger reports it and, by default, exits.

Example:
  decorate div 1 3
  decorate div --policy return 1 0`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			x, err := decimal.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid A %q: %w", args[0], err)
			}
			y, err := decimal.Parse(args[1])
			if err != nil {
				return fmt.Errorf("invalid B %q: %w", args[1], err)
			}

			out := cmd.OutOrStdout()
			opts, err := a.debuggerOptions(out)
			if err != nil {
				return err
			}
			div := decorators.Apply(
				decorators.FromI2O1(func(x, y decimal.Decimal) (decimal.Decimal, error) {
					return x.Quo(y)
				}).Named("div"),
				debugger.New(opts...),
			)

			res, err := div.Call(x, y)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, res)
			return nil
		},
	}
}
