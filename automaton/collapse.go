package automaton

import "github.com/limigo/limigo/value"

// Collapse presents an epsilon-free view of an inner automaton: every
// non-epsilon successor set is expanded by the transitive closure of
// epsilon edges, and epsilon symbols never appear in NextSymbols.
//
// A state is emitted into a closure image iff it has at least one
// outgoing non-epsilon edge or is itself final — pure intermediate nodes
// (states that only chain epsilon edges onward) are elided. This mirrors
// Limi::automaton::explore_epsilon in the original source.
type Collapse[State value.Value[State], Symbol value.Value[Symbol]] struct {
	Inner Automaton[State, Symbol]
	// Cache memoizes the epsilon closure of individual states. Safe to
	// leave on (the default) unless the inner automaton's successor
	// computation is cheap enough that the bookkeeping isn't worth it.
	Cache bool

	closures stateCache[State]
}

// NewCollapse wraps inner with epsilon-closure semantics.
func NewCollapse[State value.Value[State], Symbol value.Value[Symbol]](inner Automaton[State, Symbol]) *Collapse[State, Symbol] {
	return &Collapse[State, Symbol]{Inner: inner, Cache: true}
}

func (c *Collapse[State, Symbol]) InitialStates() []State {
	return c.closureOfSet(value.NewSet(c.Inner.InitialStates()...)).ToSlice()
}

func (c *Collapse[State, Symbol]) Successors(s State, sigma Symbol) []State {
	direct := value.NewSet(c.Inner.Successors(s, sigma)...)
	return c.closureOfSet(direct).ToSlice()
}

func (c *Collapse[State, Symbol]) NextSymbols(s State) []Symbol {
	raw := c.Inner.NextSymbols(s)
	out := make([]Symbol, 0, len(raw))
	for _, sy := range raw {
		if !c.Inner.IsEpsilon(sy) {
			out = append(out, sy)
		}
	}
	return out
}

func (c *Collapse[State, Symbol]) IsFinal(s State) bool      { return c.Inner.IsFinal(s) }
func (c *Collapse[State, Symbol]) IsEpsilon(sy Symbol) bool  { return c.Inner.IsEpsilon(sy) }
func (c *Collapse[State, Symbol]) CollapseEpsilon() bool     { return false }
func (c *Collapse[State, Symbol]) NoEpsilonProduced() bool   { return true }

// closureOfSet computes the union of the per-state epsilon closure of
// every state in seed.
func (c *Collapse[State, Symbol]) closureOfSet(seed *value.Set[State]) *value.Set[State] {
	out := value.NewSet[State]()
	seed.Each(func(s State) {
		out = value.Union(out, c.closureOfState(s))
	})
	return out
}

func (c *Collapse[State, Symbol]) closureOfState(s State) *value.Set[State] {
	if c.Cache {
		if cached, ok := c.closures.get(s); ok {
			return cached
		}
	}

	result := value.NewSet[State]()
	seen := value.NewSet[State]()
	frontier := []State{s}
	for len(frontier) > 0 {
		cur := frontier[0]
		frontier = frontier[1:]

		nextSymbols := c.Inner.NextSymbols(cur)
		emitted := c.Inner.IsFinal(cur)
		if emitted {
			result = value.Union(result, value.NewSet(cur))
		}
		for _, sy := range nextSymbols {
			if c.Inner.IsEpsilon(sy) {
				for _, succ := range c.Inner.Successors(cur, sy) {
					if !seen.Contains(succ) {
						seen = value.Union(seen, value.NewSet(succ))
						frontier = append(frontier, succ)
					}
				}
			} else if !emitted {
				emitted = true
				result = value.Union(result, value.NewSet(cur))
			}
		}
	}

	if c.Cache {
		c.closures.put(s, result)
	}
	return result
}

// stateCache is a small hash-bucketed memo table keyed by value.Value's
// Hash/Equal, mirroring the bucketing strategy of value.Set.
type stateCache[State value.Value[State]] struct {
	buckets map[uint64][]stateCacheEntry[State]
}

type stateCacheEntry[State value.Value[State]] struct {
	state  State
	result *value.Set[State]
}

func (c *stateCache[State]) get(s State) (*value.Set[State], bool) {
	if c.buckets == nil {
		return nil, false
	}
	for _, e := range c.buckets[s.Hash()] {
		if e.state.Equal(s) {
			return e.result, true
		}
	}
	return nil, false
}

func (c *stateCache[State]) put(s State, result *value.Set[State]) {
	if c.buckets == nil {
		c.buckets = make(map[uint64][]stateCacheEntry[State])
	}
	h := s.Hash()
	c.buckets[h] = append(c.buckets[h], stateCacheEntry[State]{state: s, result: result})
}
