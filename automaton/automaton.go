// Package automaton defines the abstract contract the inclusion engines
// consume. It is the only thing a caller must implement to plug a concrete
// automaton representation (parsed from a file, built in memory, generated
// on the fly) into classical or independence-aware inclusion checking.
package automaton

import "github.com/limigo/limigo/value"

// Automaton is the interface both sides of an inclusion query (A and B)
// must satisfy. Implementations are expected to be cheap and synchronous;
// the engines call these methods from a single goroutine and never concurrently.
type Automaton[State value.Value[State], Symbol value.Value[Symbol]] interface {
	// InitialStates returns the automaton's initial states.
	InitialStates() []State
	// Successors returns the (possibly empty) successors of s on sigma.
	Successors(s State, sigma Symbol) []State
	// NextSymbols returns a superset of the symbols on which Successors(s, ·)
	// is non-empty. Callers tolerate false positives.
	NextSymbols(s State) []Symbol
	// IsFinal reports whether s is an accepting state.
	IsFinal(s State) bool
	// IsEpsilon reports whether sigma is a silent (epsilon) symbol.
	IsEpsilon(sigma Symbol) bool
	// CollapseEpsilon reports whether this automaton's view should be the
	// epsilon-closed one (see Collapse).
	CollapseEpsilon() bool
	// NoEpsilonProduced reports whether this automaton is known to never
	// produce epsilon transitions at all.
	NoEpsilonProduced() bool
}

// IsFinalSet reports whether any state in states is final.
func IsFinalSet[State value.Value[State], Symbol value.Value[Symbol]](a Automaton[State, Symbol], states *value.Set[State]) bool {
	found := false
	states.Each(func(s State) {
		if !found && a.IsFinal(s) {
			found = true
		}
	})
	return found
}

// SuccessorsSet unions Successors(s, sigma) over every s in states.
func SuccessorsSet[State value.Value[State], Symbol value.Value[Symbol]](a Automaton[State, Symbol], states *value.Set[State], sigma Symbol) *value.Set[State] {
	out := value.NewSet[State]()
	states.Each(func(s State) {
		for _, succ := range a.Successors(s, sigma) {
			out = value.Union(out, value.NewSet(succ))
		}
	})
	return out
}

// NextSymbolsSet unions NextSymbols(s) over every s in states.
func NextSymbolsSet[State value.Value[State], Symbol value.Value[Symbol]](a Automaton[State, Symbol], states *value.Set[State]) *value.Set[Symbol] {
	out := value.NewSet[Symbol]()
	states.Each(func(s State) {
		for _, sy := range a.NextSymbols(s) {
			out = value.Union(out, value.NewSet(sy))
		}
	})
	return out
}
