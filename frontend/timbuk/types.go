// Package timbuk parses the informative text front-end format: symbol and
// independence declarations, a named automaton, its states, final states
// and transitions. It mirrors the integer-wrapper state/symbol
// representation of the original text front-end so both automata parsed
// from a pair of files share one symbol table.
package timbuk

// Symbol is a thin wrapper around an index into a SymbolTable.
type Symbol uint32

func (s Symbol) Equal(other Symbol) bool { return s == other }
func (s Symbol) Hash() uint64            { return uint64(s) }
func (s Symbol) Less(other Symbol) bool  { return s < other }

// State is a thin wrapper around a per-automaton state index.
type State uint32

func (s State) Equal(other State) bool { return s == other }
func (s State) Hash() uint64           { return uint64(s) }
