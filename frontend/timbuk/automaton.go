package timbuk

import "github.com/limigo/limigo/errs"

// Automaton is a parsed automaton: states and transitions are plain
// indexes into per-automaton slices, with NoEpsilonProduced always true
// since the front-end grammar has no way to declare an epsilon symbol.
type Automaton struct {
	Name string

	st *SymbolTable

	names       []string
	lookup      map[string]State
	successors  []map[Symbol][]State
	symbols     []map[Symbol]struct{}
	final       []bool
	initial     []State
	initialized map[State]bool
}

// NewAutomaton creates an automaton with no states; callers declare which
// ones are initial with "init -> q" transitions.
func NewAutomaton(name string, st *SymbolTable) *Automaton {
	return &Automaton{
		Name:        name,
		st:          st,
		lookup:      make(map[string]State),
		initialized: make(map[State]bool),
	}
}

func (a *Automaton) addState(name string) State {
	s := State(len(a.names))
	a.names = append(a.names, name)
	a.lookup[name] = s
	a.successors = append(a.successors, make(map[Symbol][]State))
	a.symbols = append(a.symbols, make(map[Symbol]struct{}))
	a.final = append(a.final, false)
	return s
}

// State returns the state named name, creating it if unseen.
func (a *Automaton) State(name string) State {
	if s, ok := a.lookup[name]; ok {
		return s
	}
	return a.addState(name)
}

// StateName returns the declared name of s.
func (a *Automaton) StateName(s State) string { return a.names[s] }

// MarkFinal marks s as an accepting state.
func (a *Automaton) MarkFinal(s State) { a.final[s] = true }

// MarkInitial adds s to the set of initial states, used by the
// "init -> q" transition form. There is no implicit initial state.
func (a *Automaton) MarkInitial(s State) {
	if a.initialized[s] {
		return
	}
	a.initialized[s] = true
	a.initial = append(a.initial, s)
}

// AddTransition records s -sigma-> successor.
func (a *Automaton) AddTransition(s State, sigma Symbol, successor State) {
	a.successors[s][sigma] = append(a.successors[s][sigma], successor)
	a.symbols[s][sigma] = struct{}{}
}

// Validate checks that at least one initial state was declared. States
// named only in transitions or Final States are created on first use and
// are not checked against the States section.
func (a *Automaton) Validate() error {
	if len(a.initial) == 0 {
		return errs.New(errs.ParseError, "automaton %q declares no initial state", a.Name)
	}
	return nil
}

func (a *Automaton) InitialStates() []State { return a.initial }

func (a *Automaton) IsFinal(s State) bool { return a.final[s] }

func (a *Automaton) Successors(s State, sigma Symbol) []State { return a.successors[s][sigma] }

func (a *Automaton) NextSymbols(s State) []Symbol {
	out := make([]Symbol, 0, len(a.symbols[s]))
	for sy := range a.symbols[s] {
		out = append(out, sy)
	}
	return out
}

// IsEpsilon is always false: the front-end grammar has no epsilon symbol.
func (a *Automaton) IsEpsilon(sigma Symbol) bool { return false }

func (a *Automaton) CollapseEpsilon() bool   { return false }
func (a *Automaton) NoEpsilonProduced() bool { return true }

// SymbolTable returns the table this automaton's symbols are drawn from.
func (a *Automaton) SymbolTable() *SymbolTable { return a.st }
