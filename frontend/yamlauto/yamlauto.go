// Package yamlauto loads an automaton definition from YAML, a supplemental
// front-end format alongside package timbuk for callers who'd rather write
// a config file than the line-oriented text grammar.
package yamlauto

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Symbol is a yaml-friendly symbol identity: plain string equality.
type Symbol string

func (s Symbol) Equal(other Symbol) bool { return s == other }
func (s Symbol) Hash() uint64            { return fnv64(string(s)) }
func (s Symbol) Less(other Symbol) bool  { return s < other }

// State is a yaml-friendly state identity: plain string equality.
type State string

func (s State) Equal(other State) bool { return s == other }
func (s State) Hash() uint64           { return fnv64(string(s)) }

func fnv64(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

// StateSpec is one entry of Config.States.
type StateSpec struct {
	Initial bool `yaml:"initial,omitempty"`
	Final   bool `yaml:"final,omitempty"`
}

// TransitionSpec is one entry of Config.Transitions.
type TransitionSpec struct {
	From   string `yaml:"from"`
	Symbol string `yaml:"symbol"`
	To     string `yaml:"to"`
}

// Config is the top-level YAML document describing one automaton.
type Config struct {
	ID            string              `yaml:"id"`
	Epsilon       string              `yaml:"epsilon,omitempty"`
	Symbols       []string            `yaml:"symbols"`
	Independence  [][2]string         `yaml:"independence,omitempty"`
	States        map[string]StateSpec `yaml:"states"`
	Transitions   []TransitionSpec    `yaml:"transitions"`
}

// Parse decodes a Config from raw YAML bytes and validates it.
func Parse(data []byte) (*Config, error) {
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("yamlauto: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the structural invariants Build relies on: a non-empty
// ID, a non-empty States map, at least one initial state, every transition
// referencing declared states and symbols (or the epsilon symbol), and
// every independence pair naming declared symbols.
func (c *Config) Validate() error {
	if c.ID == "" {
		return errors.New("yamlauto: id is required")
	}
	if len(c.States) == 0 {
		return errors.New("yamlauto: states is required and cannot be empty")
	}
	symbolSet := make(map[string]bool, len(c.Symbols))
	for _, s := range c.Symbols {
		symbolSet[s] = true
	}
	hasInitial := false
	for _, st := range c.States {
		if st.Initial {
			hasInitial = true
		}
	}
	if !hasInitial {
		return fmt.Errorf("yamlauto: machine %q declares no initial state", c.ID)
	}
	for i, t := range c.Transitions {
		if _, ok := c.States[t.From]; !ok {
			return fmt.Errorf("yamlauto: transition %d: state %q not declared", i, t.From)
		}
		if _, ok := c.States[t.To]; !ok {
			return fmt.Errorf("yamlauto: transition %d: state %q not declared", i, t.To)
		}
		if !symbolSet[t.Symbol] && t.Symbol != c.Epsilon {
			return fmt.Errorf("yamlauto: transition %d: symbol %q not declared", i, t.Symbol)
		}
	}
	for _, pair := range c.Independence {
		if !symbolSet[pair[0]] || !symbolSet[pair[1]] {
			return fmt.Errorf("yamlauto: independence pair %v references an undeclared symbol", pair)
		}
	}
	return nil
}

// Automaton is the in-memory automaton built from a Config.
type Automaton struct {
	id          string
	epsilon     Symbol
	hasEpsilon  bool
	initial     []State
	final       map[State]bool
	successors  map[State]map[Symbol][]State
	bySymbol    map[State]map[Symbol]struct{}
	independent map[[2]Symbol]bool
}

// Build converts a validated Config into an Automaton.
func (c *Config) Build() *Automaton {
	a := &Automaton{
		id:          c.ID,
		final:       make(map[State]bool),
		successors:  make(map[State]map[Symbol][]State),
		bySymbol:    make(map[State]map[Symbol]struct{}),
		independent: make(map[[2]Symbol]bool),
	}
	if c.Epsilon != "" {
		a.epsilon = Symbol(c.Epsilon)
		a.hasEpsilon = true
	}
	for name, spec := range c.States {
		s := State(name)
		if spec.Initial {
			a.initial = append(a.initial, s)
		}
		if spec.Final {
			a.final[s] = true
		}
		a.successors[s] = make(map[Symbol][]State)
		a.bySymbol[s] = make(map[Symbol]struct{})
	}
	for _, t := range c.Transitions {
		from, to, sigma := State(t.From), State(t.To), Symbol(t.Symbol)
		a.successors[from][sigma] = append(a.successors[from][sigma], to)
		a.bySymbol[from][sigma] = struct{}{}
	}
	for _, pair := range c.Independence {
		p, q := Symbol(pair[0]), Symbol(pair[1])
		a.independent[[2]Symbol{p, q}] = true
		a.independent[[2]Symbol{q, p}] = true
	}
	return a
}

func (a *Automaton) InitialStates() []State { return a.initial }

func (a *Automaton) IsFinal(s State) bool { return a.final[s] }

func (a *Automaton) Successors(s State, sigma Symbol) []State { return a.successors[s][sigma] }

func (a *Automaton) NextSymbols(s State) []Symbol {
	out := make([]Symbol, 0, len(a.bySymbol[s]))
	for sy := range a.bySymbol[s] {
		out = append(out, sy)
	}
	return out
}

func (a *Automaton) IsEpsilon(sigma Symbol) bool { return a.hasEpsilon && sigma == a.epsilon }

func (a *Automaton) CollapseEpsilon() bool   { return a.hasEpsilon }
func (a *Automaton) NoEpsilonProduced() bool { return !a.hasEpsilon }

// Independent reports whether p and q were declared independent.
func (a *Automaton) Independent(p, q Symbol) bool { return a.independent[[2]Symbol{p, q}] }
