// Package result defines the outcome of an inclusion query, shared by the
// classical and independence-aware engines.
package result

import "github.com/expr-lang/expr"

// Result is the outcome of one (*Engine).Run call.
type Result[Symbol any] struct {
	// Included is true if A was found included in B by this run. A true
	// result can always be trusted; a false result can be a false
	// negative if BoundHit is true (independence engine only).
	Included bool
	// BoundHit is always false for the classical engine; for the
	// independence engine it is true when the returned counter-example's
	// ancestry passed through a step pruned by the current bound.
	BoundHit bool
	// CounterExample is meaningful iff !Included.
	CounterExample []Symbol
	// MaxBound is the bound in effect when this run ended; 0 for the
	// classical engine.
	MaxBound uint
}

// FilterTrace removes symbols from CounterExample in place, for any
// symbol where remove returns true. A no-op when Included is true.
func (r *Result[Symbol]) FilterTrace(remove func(Symbol) bool) {
	if r.Included || len(r.CounterExample) == 0 {
		return
	}
	kept := r.CounterExample[:0]
	for _, s := range r.CounterExample {
		if !remove(s) {
			kept = append(kept, s)
		}
	}
	r.CounterExample = kept
}

// FilterTraceExpr compiles src as an expr-lang boolean expression over a
// variable named "symbol" (the result of toName applied to each trace
// element) and removes every CounterExample symbol for which it evaluates
// true. Returns a compile error if src is not a valid boolean expression.
func (r *Result[Symbol]) FilterTraceExpr(src string, toName func(Symbol) string) error {
	program, err := expr.Compile(src, expr.Env(map[string]any{"symbol": ""}), expr.AsBool())
	if err != nil {
		return err
	}
	r.FilterTrace(func(sy Symbol) bool {
		out, err := expr.Run(program, map[string]any{"symbol": toName(sy)})
		return err == nil && out.(bool)
	})
	return nil
}
