// Package listauto implements the single-word automaton used to verify a
// counter-example returned by the independence-aware engine: replaying
// exactly one word against B at a bound equal to the word's length is
// always exact, so it settles whether a rejection was genuine or an
// artifact of bound pruning.
package listauto

import "github.com/limigo/limigo/value"

// Index is a position in the word, 0..len(word). It plays the role of a
// state in the automaton interface.
type Index uint32

func (i Index) Equal(other Index) bool { return i == other }
func (i Index) Hash() uint64           { return uint64(i) }

// Word is a linear automaton accepting exactly one word.
type Word[Symbol value.Value[Symbol]] struct {
	symbols           []Symbol
	isEpsilon         func(Symbol) bool
	noEpsilonProduced bool
}

// New builds a Word automaton over symbols. isEpsilon classifies symbols
// the same way the caller's real alphabet does; pass nil if the alphabet
// has no epsilon symbol at all.
func New[Symbol value.Value[Symbol]](symbols []Symbol, isEpsilon func(Symbol) bool) *Word[Symbol] {
	w := &Word[Symbol]{symbols: symbols, isEpsilon: isEpsilon, noEpsilonProduced: true}
	if isEpsilon != nil {
		for _, s := range symbols {
			if isEpsilon(s) {
				w.noEpsilonProduced = false
				break
			}
		}
	}
	return w
}

func (w *Word[Symbol]) InitialStates() []Index { return []Index{0} }

func (w *Word[Symbol]) IsFinal(s Index) bool { return int(s) == len(w.symbols) }

func (w *Word[Symbol]) Successors(s Index, sigma Symbol) []Index {
	i := int(s)
	if i >= len(w.symbols) || !w.symbols[i].Equal(sigma) {
		return nil
	}
	return []Index{Index(i + 1)}
}

func (w *Word[Symbol]) NextSymbols(s Index) []Symbol {
	i := int(s)
	if i >= len(w.symbols) {
		return nil
	}
	return []Symbol{w.symbols[i]}
}

func (w *Word[Symbol]) IsEpsilon(sigma Symbol) bool {
	if w.isEpsilon == nil {
		return false
	}
	return w.isEpsilon(sigma)
}

func (w *Word[Symbol]) CollapseEpsilon() bool   { return false }
func (w *Word[Symbol]) NoEpsilonProduced() bool { return w.noEpsilonProduced }

// Symbols returns the word this automaton accepts.
func (w *Word[Symbol]) Symbols() []Symbol { return w.symbols }
