package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/limigo/limigo/frontend/timbuk"
)

// newVerifyCmd drives the independence-aware engine's bound-escalation
// protocol to termination, always printing each spurious counter-example
// it discards along the way (see printDiff).
func newVerifyCmd() *cobra.Command {
	var initialBound, maxBound uint

	cmd := &cobra.Command{
		Use:   "verify <automaton-A> <automaton-B>",
		Short: "Check L(A) ⊆ L(B) with the independence-aware engine, resolving spurious counter-examples",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := timbuk.NewSymbolTable()
			a, err := parseFile(args[0], st)
			if err != nil {
				return err
			}
			b, err := parseFile(args[1], st)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			res, bound, err := runIndependence(ctx, cmd, a, b, st, initialBound, maxBound)
			if err != nil {
				return err
			}
			printResult(cmd, st, res, bound)
			return nil
		},
	}
	cmd.Flags().UintVar(&initialBound, "initial-bound", 2, "starting stack-depth bound")
	cmd.Flags().UintVar(&maxBound, "max-bound", 10, "give up if no confirmed answer is found by this bound")
	return cmd
}
