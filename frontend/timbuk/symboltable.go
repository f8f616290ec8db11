package timbuk

import (
	"github.com/limigo/limigo/errs"
	"github.com/limigo/limigo/internal/meta"
)

// SymbolTable maps names to Symbol indexes and holds the independence
// relation, shared between the two automata parsed from a pair of files so
// that the same name always maps to the same Symbol on both sides.
type SymbolTable struct {
	names   []string
	lookup  map[string]Symbol
	arities map[Symbol]int
	indep   map[[2]Symbol]bool
}

// NewSymbolTable creates an empty table.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		lookup:  make(map[string]Symbol),
		arities: make(map[Symbol]int),
		indep:   make(map[[2]Symbol]bool),
	}
}

// AddSymbol registers name with its declared arity if new and returns its
// Symbol; re-declaring an existing name with a different arity is a
// ParseError.
func (t *SymbolTable) AddSymbol(name string, arity int, line int) (Symbol, error) {
	if s, ok := t.lookup[name]; ok {
		if t.arities[s] != arity {
			return 0, errs.NewParse(line, "symbol %q redeclared with arity %d, was %d", name, arity, t.arities[s])
		}
		return s, nil
	}
	s := Symbol(len(t.names))
	t.names = append(t.names, name)
	t.lookup[name] = s
	t.arities[s] = arity
	return s, nil
}

// Find looks up an already-declared symbol by name.
func (t *SymbolTable) Find(name string) (Symbol, bool) {
	s, ok := t.lookup[name]
	return s, ok
}

// Lookup returns the declared name of a symbol.
func (t *SymbolTable) Lookup(s Symbol) string { return t.names[s] }

// AddIndependence marks a and b (and b and a) as commuting.
func (t *SymbolTable) AddIndependence(a, b Symbol) {
	t.indep[[2]Symbol{a, b}] = true
	t.indep[[2]Symbol{b, a}] = true
}

// Independent reports whether a and b were declared independent.
func (t *SymbolTable) Independent(a, b Symbol) bool { return t.indep[[2]Symbol{a, b}] }

// Empty reports whether no independence pair was ever declared, in which
// case the classical engine suffices and the independence engine would
// just be doing extra work for nothing.
func (t *SymbolTable) Empty() bool { return len(t.indep) == 0 }

// Independence adapts the table to meta.Independence[Symbol].
func (t *SymbolTable) Independence() meta.Independence[Symbol] {
	return meta.Func[Symbol](t.Independent)
}
