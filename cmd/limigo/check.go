package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/limigo/limigo/classical"
	"github.com/limigo/limigo/errs"
	"github.com/limigo/limigo/frontend/timbuk"
	"github.com/limigo/limigo/independence"
	"github.com/limigo/limigo/result"
)

func newCheckCmd() *cobra.Command {
	var (
		useIndependence bool
		initialBound    uint
		maxBound        uint
		filterExpr      string
	)

	cmd := &cobra.Command{
		Use:   "check <automaton-A> <automaton-B>",
		Short: "Check whether L(A) is included in L(B)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], args[1], useIndependence, initialBound, maxBound, filterExpr)
		},
	}
	cmd.Flags().BoolVar(&useIndependence, "independence", false, "use the independence-aware engine even if the symbol table declares no independence pairs")
	cmd.Flags().UintVar(&initialBound, "initial-bound", 2, "starting stack-depth bound for the independence-aware engine")
	cmd.Flags().UintVar(&maxBound, "max-bound", 10, "give up and report an error if no confirmed answer is found by this bound")
	cmd.Flags().StringVar(&filterExpr, "filter", "", "expr-lang boolean expression over `symbol` (a string); symbols for which it evaluates true are dropped from the printed trace")
	return cmd
}

func runCheck(cmd *cobra.Command, pathA, pathB string, useIndependence bool, initialBound, maxBound uint, filterExpr string) error {
	st := timbuk.NewSymbolTable()

	a, err := parseFile(pathA, st)
	if err != nil {
		return err
	}
	b, err := parseFile(pathB, st)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var res result.Result[timbuk.Symbol]
	var bound uint
	if useIndependence || !st.Empty() {
		res, bound, err = runIndependence(ctx, cmd, a, b, st, initialBound, maxBound)
	} else {
		res, err = runClassical(ctx, a, b)
	}
	if err != nil {
		return err
	}

	if filterExpr != "" {
		if err := res.FilterTraceExpr(filterExpr, st.Lookup); err != nil {
			return newUsageError("invalid --filter expression: %w", err)
		}
	}

	printResult(cmd, st, res, bound)
	return nil
}

func parseFile(path string, st *timbuk.SymbolTable) (*timbuk.Automaton, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, newUsageError("opening %s: %w", path, err)
	}
	defer f.Close()
	aut, err := timbuk.Parse(f, st)
	if err != nil {
		if isParseError(err) {
			return nil, newUsageError("parsing %s: %w", path, err)
		}
		return nil, err
	}
	return aut, nil
}

func isParseError(err error) bool {
	e, ok := err.(*errs.Error)
	return ok && e.Kind == errs.ParseError
}

func runClassical(ctx context.Context, a, b *timbuk.Automaton) (result.Result[timbuk.Symbol], error) {
	engine, err := timbuk.NewClassicalEngine(a, b, &classical.Config{})
	if err != nil {
		return result.Result[timbuk.Symbol]{}, err
	}
	return engine.Run(ctx)
}

func runIndependence(ctx context.Context, cmd *cobra.Command, a, b *timbuk.Automaton, st *timbuk.SymbolTable, initialBound, maxBound uint) (result.Result[timbuk.Symbol], uint, error) {
	engine, err := timbuk.NewIndependenceEngine(a, b, st, &independence.Config{Bound: initialBound})
	if err != nil {
		return result.Result[timbuk.Symbol]{}, 0, err
	}

	var prev []timbuk.Symbol
	for {
		res, err := engine.Run(ctx)
		if err != nil {
			return res, engine.GetBound(), err
		}
		if res.Included || !res.BoundHit {
			return res, engine.GetBound(), nil
		}
		confirmed, _, err := engine.VerifyCounterExample(ctx, res.CounterExample)
		if err != nil {
			return res, engine.GetBound(), err
		}
		if confirmed {
			return res, engine.GetBound(), nil
		}
		printDiff(cmd, st, prev, res.CounterExample)
		prev = res.CounterExample
		if engine.GetBound() >= maxBound {
			return res, engine.GetBound(), fmt.Errorf("no confirmed answer found up to bound %d", maxBound)
		}
		if err := engine.IncreaseBound(engine.GetBound() + 1); err != nil {
			return res, engine.GetBound(), err
		}
	}
}

func printDiff(cmd *cobra.Command, st *timbuk.SymbolTable, prev, next []timbuk.Symbol) {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(traceString(st, prev), traceString(st, next), false)
	fmt.Fprintln(cmd.OutOrStdout(), color.YellowString("spurious counter-example discarded, raising bound:"))
	fmt.Fprintln(cmd.OutOrStdout(), dmp.DiffPrettyText(diffs))
}

func traceString(st *timbuk.SymbolTable, trace []timbuk.Symbol) string {
	names := make([]string, len(trace))
	for i, sy := range trace {
		names[i] = st.Lookup(sy)
	}
	return strings.Join(names, " ")
}

func printResult(cmd *cobra.Command, st *timbuk.SymbolTable, res result.Result[timbuk.Symbol], bound uint) {
	out := cmd.OutOrStdout()
	if res.Included {
		fmt.Fprintln(out, color.GreenString("Included"))
		return
	}
	fmt.Fprintln(out, color.RedString("Not Included"))
	fmt.Fprintf(out, "Counter-example: %s\n", traceString(st, res.CounterExample))
	if bound > 0 {
		fmt.Fprintf(out, "Bound reached: %d\n", bound)
	}
}
