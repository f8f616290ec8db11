package classical_test

import (
	"context"
	"testing"

	"github.com/limigo/limigo/classical"
)

type symbol string

func (s symbol) Equal(other symbol) bool { return s == other }
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

// testAutomaton is a small, deterministic fixture: transitions are stored
// in insertion order so NextSymbols/Successors never depend on Go's
// randomized map iteration.
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

// scenario 1: A and B accept exactly the empty word, so inclusion holds
// trivially with no exploration beyond the seed pair.
func TestRunTrivialInclusionHolds(t *testing.T) {
	a := newTestAutomaton("q0").markFinal("q0")
	b := newTestAutomaton("r0").markFinal("r0")

	eng, err := classical.New[state, state, symbol](a, b, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Included {
		t.Fatalf("expected Included=true, got false with counter-example %v", res.CounterExample)
	}
}

// scenario 2: A accepts {a}, B accepts {b}; a is the minimal counter-example.
func TestRunSimpleMismatchYieldsCounterExample(t *testing.T) {
	a := newTestAutomaton("q0").markFinal("q1")
	a.addEdge("q0", "a", "q1")
	b := newTestAutomaton("r0").markFinal("r1")
	b.addEdge("r0", "b", "r1")

	eng, err := classical.New[state, state, symbol](a, b, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Included {
		t.Fatal("expected Included=false")
	}
	if !tracesEqual(res.CounterExample, "a") {
		t.Fatalf("CounterExample = %v, want [a]", res.CounterExample)
	}
}

// scenario 3 (classical half): A accepts {ab}, B accepts {ba}; order
// matters, so ab is a genuine counter-example even though both automata
// individually use the same alphabet.
func TestRunOrderSensitiveMismatch(t *testing.T) {
	a := newTestAutomaton("q0").markFinal("q2")
	a.addEdge("q0", "a", "q1").addEdge("q1", "b", "q2")
	b := newTestAutomaton("r0").markFinal("r2")
	b.addEdge("r0", "b", "r1").addEdge("r1", "a", "r2")

	eng, err := classical.New[state, state, symbol](a, b, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Included {
		t.Fatal("expected Included=false")
	}
	if !tracesEqual(res.CounterExample, "a", "b") {
		t.Fatalf("CounterExample = %v, want [a b]", res.CounterExample)
	}
}

// scenario 5: A accepts a^n b for every n>=0; B accepts a^n b only for
// n<=5. The shortest divergence is a^6 b, length 7.
func TestRunBoundedRepetitionMismatch(t *testing.T) {
	a := newTestAutomaton("s0").markFinal("accept")
	a.addEdge("s0", "a", "s0").addEdge("s0", "b", "accept")

	b := newTestAutomaton("r0").markFinal("rf")
	names := []state{"r0", "r1", "r2", "r3", "r4", "r5"}
	for i, from := range names {
		b.addEdge(from, "b", "rf")
		if i+1 < len(names) {
			b.addEdge(from, "a", names[i+1])
		}
	}

	eng, err := classical.New[state, state, symbol](a, b, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := eng.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Included {
		t.Fatal("expected Included=false")
	}
	if len(res.CounterExample) < 7 {
		t.Fatalf("CounterExample length = %d, want >= 7", len(res.CounterExample))
	}
}
