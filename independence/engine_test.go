package independence_test

import (
	"context"
	"errors"
	"testing"

	"github.com/limigo/limigo/errs"
	"github.com/limigo/limigo/independence"
	"github.com/limigo/limigo/internal/meta"
)

type symbol string

func (s symbol) Equal(other symbol) bool { return s == other }
func (s symbol) Less(other symbol) bool  { return s < other }
func (s symbol) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

type state string

func (s state) Equal(other state) bool { return s == other }
func (s state) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

type edge struct {
	sigma symbol
	to    state
}

type testAutomaton struct {
	initial []state
	finals  map[state]bool
	edges   map[state][]edge
}

func newTestAutomaton(initial ...state) *testAutomaton {
	return &testAutomaton{initial: initial, finals: make(map[state]bool), edges: make(map[state][]edge)}
}

func (a *testAutomaton) markFinal(s state) *testAutomaton {
	a.finals[s] = true
	return a
}

func (a *testAutomaton) addEdge(from state, sigma symbol, to state) *testAutomaton {
	a.edges[from] = append(a.edges[from], edge{sigma: sigma, to: to})
	return a
}

func (a *testAutomaton) InitialStates() []state { return a.initial }

func (a *testAutomaton) Successors(s state, sigma symbol) []state {
	var out []state
	for _, e := range a.edges[s] {
		if e.sigma == sigma {
			out = append(out, e.to)
		}
	}
	return out
}

func (a *testAutomaton) NextSymbols(s state) []symbol {
	seen := make(map[symbol]bool)
	var out []symbol
	for _, e := range a.edges[s] {
		if !seen[e.sigma] {
			seen[e.sigma] = true
			out = append(out, e.sigma)
		}
	}
	return out
}

func (a *testAutomaton) IsFinal(s state) bool      { return a.finals[s] }
func (a *testAutomaton) IsEpsilon(sy symbol) bool   { return false }
func (a *testAutomaton) CollapseEpsilon() bool      { return false }
func (a *testAutomaton) NoEpsilonProduced() bool    { return true }

func commuteAB() meta.Independence[symbol] {
	return meta.Func[symbol](func(x, y symbol) bool {
		return (x == "a" && y == "b") || (x == "b" && y == "a")
	})
}

func tracesEqual(got []symbol, want ...symbol) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

// scenario: A accepts {ab}, B accepts {ba}; since a and b commute, ab and
// ba denote the same quotient word, so inclusion holds even though the two
// automata never literally synchronize.
func TestRunCommutingOrderIsIncluded(t *testing.T) {
	a := newTestAutomaton("q0").markFinal("q2")
	a.addEdge("q0", "a", "q1").addEdge("q1", "b", "q2")
	b := newTestAutomaton("r0").markFinal("r2")
	b.addEdge("r0", "b", "r1").addEdge("r1", "a", "r2")

	eng, err := independence.New[state, state, symbol](a, b, commuteAB(), &independence.Config{Bound: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Included {
		t.Fatalf("expected Included=true with a/b independent, got counter-example %v", res.CounterExample)
	}
}

// same automata, but with the empty independence relation: ab and ba no
// longer denote the same word, so the mismatch is a genuine, non-bound
// related rejection.
func TestRunEmptyIndependenceRejectsOrderMismatch(t *testing.T) {
	a := newTestAutomaton("q0").markFinal("q2")
	a.addEdge("q0", "a", "q1").addEdge("q1", "b", "q2")
	b := newTestAutomaton("r0").markFinal("r2")
	b.addEdge("r0", "b", "r1").addEdge("r1", "a", "r2")

	eng, err := independence.New[state, state, symbol](a, b, nil, &independence.Config{Bound: 0})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Included {
		t.Fatal("expected Included=false with the empty independence relation")
	}
	if res.BoundHit {
		t.Fatal("this rejection does not depend on the bound, BoundHit should be false")
	}
	if !tracesEqual(res.CounterExample, "a", "b") {
		t.Fatalf("CounterExample = %v, want [a b]", res.CounterExample)
	}
}

// A accepts {aabb}, B accepts {bbaa}; reordering aabb into bbaa requires
// two independent symbols to leapfrog past each other at once, which needs
// a quotient-stack depth of 2. At bound 1 the engine can only track depth
// 1 and spuriously rejects; raising the bound to 2 and re-running resolves
// it to Included=true without restarting the search.
func newDeepCommutationAutomata() (*testAutomaton, *testAutomaton) {
	a := newTestAutomaton("q0").markFinal("q4")
	a.addEdge("q0", "a", "q1").
		addEdge("q1", "a", "q2").
		addEdge("q2", "b", "q3").
		addEdge("q3", "b", "q4")

	b := newTestAutomaton("r0").markFinal("r4")
	b.addEdge("r0", "b", "r1").
		addEdge("r1", "b", "r2").
		addEdge("r2", "a", "r3").
		addEdge("r3", "a", "r4")

	return a, b
}

func TestRunBoundTooLowYieldsSpuriousRejection(t *testing.T) {
	a, b := newDeepCommutationAutomata()

	eng, err := independence.New[state, state, symbol](a, b, commuteAB(), &independence.Config{Bound: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Included {
		t.Fatal("expected a bound-limited rejection at bound 1")
	}
	if !res.BoundHit {
		t.Fatal("expected BoundHit=true: the rejection passed through a bound-limited hop")
	}
	if !tracesEqual(res.CounterExample, "a", "a", "b", "b") {
		t.Fatalf("CounterExample = %v, want [a a b b]", res.CounterExample)
	}

	if err := eng.IncreaseBound(2); err != nil {
		t.Fatalf("IncreaseBound: %v", err)
	}
	res, err = eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run after IncreaseBound: %v", err)
	}
	if !res.Included {
		t.Fatalf("expected Included=true once the bound covers the needed depth, got counter-example %v", res.CounterExample)
	}
}

func TestVerifyCounterExampleDetectsSpuriousRejection(t *testing.T) {
	a, b := newDeepCommutationAutomata()

	eng, err := independence.New[state, state, symbol](a, b, commuteAB(), &independence.Config{Bound: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Included || !res.BoundHit {
		t.Fatalf("expected a bound-limited rejection to set up this test, got %+v", res)
	}

	confirmed, _, err := eng.VerifyCounterExample(context.Background(), res.CounterExample)
	if err != nil {
		t.Fatalf("VerifyCounterExample: %v", err)
	}
	if confirmed {
		t.Fatal("the counter-example is spurious (aabb is included modulo commutation) and must not be confirmed")
	}
}

func TestIncreaseBoundToSameValueIsNoOp(t *testing.T) {
	a, b := newDeepCommutationAutomata()

	eng, err := independence.New[state, state, symbol](a, b, commuteAB(), &independence.Config{Bound: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := eng.IncreaseBound(1); err != nil {
		t.Fatalf("IncreaseBound(k == current bound) must be a no-op, got error: %v", err)
	}
	if eng.GetBound() != 1 {
		t.Fatalf("GetBound() = %d, want 1 (unchanged)", eng.GetBound())
	}
}

func TestIncreaseBoundRejectsLowerBound(t *testing.T) {
	a, b := newDeepCommutationAutomata()

	eng, err := independence.New[state, state, symbol](a, b, commuteAB(), &independence.Config{Bound: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	err = eng.IncreaseBound(1)
	if err == nil {
		t.Fatal("expected an InvalidArgument error when the new bound is less than the current bound")
	}
	if !errors.Is(err, errs.ErrInvalidArgument) {
		t.Fatalf("expected errors.Is(err, errs.ErrInvalidArgument), got %v", err)
	}
	if eng.GetBound() != 2 {
		t.Fatalf("GetBound() = %d, want 2 (unchanged after a rejected call)", eng.GetBound())
	}
}

func TestResolveEscalatesBoundUntilSettled(t *testing.T) {
	a, b := newDeepCommutationAutomata()

	eng, err := independence.New[state, state, symbol](a, b, commuteAB(), &independence.Config{Bound: 1})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Resolve(context.Background(), 5)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !res.Included {
		t.Fatalf("expected Resolve to settle on Included=true, got counter-example %v (bound hit %v)", res.CounterExample, res.BoundHit)
	}
}
