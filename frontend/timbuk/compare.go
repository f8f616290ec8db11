package timbuk

import (
	"github.com/limigo/limigo/classical"
	"github.com/limigo/limigo/independence"
)

// NewClassicalEngine builds a classical.Engine over two parsed automata.
func NewClassicalEngine(a, b *Automaton, cfg *classical.Config) (*classical.Engine[State, State, Symbol], error) {
	return classical.New[State, State, Symbol](a, b, cfg)
}

// NewIndependenceEngine builds an independence.Engine over two parsed
// automata, using st's declared independence relation.
func NewIndependenceEngine(a, b *Automaton, st *SymbolTable, cfg *independence.Config) (*independence.Engine[State, State, Symbol], error) {
	return independence.New[State, State, Symbol](a, b, st.Independence(), cfg)
}
