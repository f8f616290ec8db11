package meta

import (
	"github.com/limigo/limigo/automaton"
	"github.com/limigo/limigo/errs"
	"github.com/limigo/limigo/value"
)

// Automaton lifts an inner B-automaton to quotient-word semantics modulo
// an independence relation. Its states are *State — an inner state plus
// two bounded stacks of symbols pending a match. NextSymbols is
// intentionally not meaningful here (see NextSymbols below); the
// independence-aware engine pulls next-symbols from A alone.
type Automaton[InnerState value.Value[InnerState], Symbol Ordered[Symbol]] struct {
	Inner        automaton.Automaton[InnerState, Symbol]
	Independence Independence[Symbol]
}

// New builds a meta-automaton over inner with the given independence
// relation. inner must satisfy inner.NoEpsilonProduced() ||
// inner.CollapseEpsilon(), exactly like any B fed to an inclusion engine;
// callers are expected to have checked this already at the engine
// construction boundary (see independence.New).
func New[InnerState value.Value[InnerState], Symbol Ordered[Symbol]](inner automaton.Automaton[InnerState, Symbol], ind Independence[Symbol]) *Automaton[InnerState, Symbol] {
	if ind == nil {
		ind = None[Symbol]{}
	}
	return &Automaton[InnerState, Symbol]{Inner: inner, Independence: ind}
}

func (m *Automaton[InnerState, Symbol]) InitialStates() []*State[InnerState, Symbol] {
	out := make([]*State[InnerState, Symbol], 0)
	for _, s := range m.Inner.InitialStates() {
		out = append(out, NewState[InnerState, Symbol](s))
	}
	return out
}

func (m *Automaton[InnerState, Symbol]) IsFinal(s *State[InnerState, Symbol]) bool {
	return s.Depth() == 0 && m.Inner.IsFinal(s.Inner())
}

func (m *Automaton[InnerState, Symbol]) IsEpsilon(sigma Symbol) bool { return m.Inner.IsEpsilon(sigma) }

func (m *Automaton[InnerState, Symbol]) CollapseEpsilon() bool   { return m.Inner.CollapseEpsilon() }
func (m *Automaton[InnerState, Symbol]) NoEpsilonProduced() bool { return m.Inner.NoEpsilonProduced() }

// NextSymbols is unsupported: the meta-automaton cannot produce a set of
// next symbols on its own (it only ever advances on a symbol drawn from
// A's alphabet view). Calling it is a caller/engine bug; it panics with an
// *errs.Error of kind UnsupportedOperation.
func (m *Automaton[InnerState, Symbol]) NextSymbols(s *State[InnerState, Symbol]) []Symbol {
	panic(errs.New(errs.UnsupportedOperation, "NextSymbols queried on the meta-automaton; callers must use the underlying A automaton instead"))
}

// Successors computes, for every candidate inner transition on some
// sigmaB, the resulting meta-state(s) reachable by feeding (sigmaA,
// sigmaB) through the two-stage independence match described in the
// component design (late stack first, then early stack — the order is
// semantically relevant).
func (m *Automaton[InnerState, Symbol]) Successors(s *State[InnerState, Symbol], sigmaA Symbol) []*State[InnerState, Symbol] {
	var out []*State[InnerState, Symbol]
	for _, sigmaB := range m.Inner.NextSymbols(s.Inner()) {
		matched := m.matchStacks(s, sigmaA, sigmaB)
		if matched == nil {
			continue
		}
		innerSuccs := m.Inner.Successors(s.Inner(), sigmaB)
		for i, innerNext := range innerSuccs {
			st := matched
			if i > 0 {
				st = matched.Clone()
			}
			st.SetInner(innerNext)
			out = append(out, st)
		}
	}
	return out
}

// matchStacks performs the two-stage match: first sigmaB against late
// (B's view), then sigmaA against early (A's view). Returns nil if either
// stage finds a non-commuting, non-matching element (the transition is
// dead).
func (m *Automaton[InnerState, Symbol]) matchStacks(s *State[InnerState, Symbol], sigmaA, sigmaB Symbol) *State[InnerState, Symbol] {
	posLate := checkIndependence(s.Late(), sigmaB, m.Independence)
	if posLate == deadMatch {
		return nil
	}

	next := s.Clone()
	if posLate >= 0 {
		next.EraseLate(posLate)
	} else {
		next.AddEarly(sigmaB, m.Independence)
	}

	posEarly := checkIndependence(next.Early(), sigmaA, m.Independence)
	if posEarly == deadMatch {
		return nil
	}
	if posEarly >= 0 {
		next.EraseEarly(posEarly)
	} else {
		next.AddLate(sigmaA, m.Independence)
	}
	return next
}

const (
	noMatch   = -1
	deadMatch = -2
)

// checkIndependence scans stack left to right: if an element equals
// symbol, its position is returned (a match). If the first non-matching
// element does not commute with symbol, the scan is dead (deadMatch).
// Otherwise it returns noMatch once every element has been found to
// commute with symbol.
func checkIndependence[Symbol Ordered[Symbol]](stack []Symbol, symbol Symbol, ind Independence[Symbol]) int {
	for i, sy := range stack {
		if sy.Equal(symbol) {
			return i
		}
		if !ind.Independent(sy, symbol) {
			return deadMatch
		}
	}
	return noMatch
}
