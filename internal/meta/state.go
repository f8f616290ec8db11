package meta

import "github.com/limigo/limigo/value"

// State is a state of the meta-automaton: an inner B-state plus two
// ordered stacks of symbols pending a match ("early", symbols B is ahead
// on, and "late", symbols A is ahead on). Invariant: len(Early) ==
// len(Late) at all times. A precomputed hash is maintained incrementally
// (XOR of the inner state's hash with each stacked symbol's hash, late
// symbols contributing the bitwise complement) so Hash is O(1) and Equal
// is O(len(Early)+len(Late)).
type State[InnerState value.Value[InnerState], Symbol Ordered[Symbol]] struct {
	inner InnerState
	early []Symbol
	late  []Symbol
	hash  uint64
}

// NewState creates a meta-state wrapping inner with empty stacks.
func NewState[InnerState value.Value[InnerState], Symbol Ordered[Symbol]](inner InnerState) *State[InnerState, Symbol] {
	return &State[InnerState, Symbol]{inner: inner, hash: inner.Hash()}
}

// Inner returns the wrapped inner automaton state.
func (s *State[InnerState, Symbol]) Inner() InnerState { return s.inner }

// Early returns the early stack (do not mutate the returned slice).
func (s *State[InnerState, Symbol]) Early() []Symbol { return s.early }

// Late returns the late stack (do not mutate the returned slice).
func (s *State[InnerState, Symbol]) Late() []Symbol { return s.late }

// Depth returns len(Early) (== len(Late)).
func (s *State[InnerState, Symbol]) Depth() int { return len(s.early) }

// Clone returns a fresh, independently mutable copy of s.
func (s *State[InnerState, Symbol]) Clone() *State[InnerState, Symbol] {
	c := &State[InnerState, Symbol]{inner: s.inner, hash: s.hash}
	if len(s.early) > 0 {
		c.early = append([]Symbol(nil), s.early...)
	}
	if len(s.late) > 0 {
		c.late = append([]Symbol(nil), s.late...)
	}
	return c
}

// SetInner replaces the inner state in place, updating the incremental hash.
func (s *State[InnerState, Symbol]) SetInner(next InnerState) {
	s.hash ^= s.inner.Hash()
	s.inner = next
	s.hash ^= s.inner.Hash()
}

// canonicalInsertPos scans stack from its tail and returns the index at
// which symbol should be inserted: the greatest position where every
// symbol before it in the stack is either strictly smaller than symbol or
// not independent with it (i.e. the prefix commutation class boundary).
func canonicalInsertPos[Symbol Ordered[Symbol]](stack []Symbol, symbol Symbol, ind Independence[Symbol]) int {
	pos := len(stack) - 1
	for ; pos >= 0; pos-- {
		if stack[pos].Less(symbol) || !ind.Independent(symbol, stack[pos]) {
			break
		}
	}
	return pos + 1
}

// AddEarly inserts symbol into the early stack at its canonical position
// and updates the incremental hash.
func (s *State[InnerState, Symbol]) AddEarly(symbol Symbol, ind Independence[Symbol]) {
	s.hash ^= symbol.Hash()
	pos := canonicalInsertPos(s.early, symbol, ind)
	s.early = insertAt(s.early, pos, symbol)
}

// AddLate inserts symbol into the late stack at its canonical position and
// updates the incremental hash (late symbols contribute their hash's
// bitwise complement, so Early/Late insertions of the same symbol don't
// cancel each other out).
func (s *State[InnerState, Symbol]) AddLate(symbol Symbol, ind Independence[Symbol]) {
	s.hash ^= ^symbol.Hash()
	pos := canonicalInsertPos(s.late, symbol, ind)
	s.late = insertAt(s.late, pos, symbol)
}

// EraseEarly removes the symbol at position pos from the early stack.
func (s *State[InnerState, Symbol]) EraseEarly(pos int) {
	s.hash ^= s.early[pos].Hash()
	s.early = removeAt(s.early, pos)
}

// EraseLate removes the symbol at position pos from the late stack.
func (s *State[InnerState, Symbol]) EraseLate(pos int) {
	s.hash ^= ^s.late[pos].Hash()
	s.late = removeAt(s.late, pos)
}

// Hash returns the precomputed O(1) hash.
func (s *State[InnerState, Symbol]) Hash() uint64 { return s.hash }

// Equal compares inner state and both stacks elementwise.
func (s *State[InnerState, Symbol]) Equal(other *State[InnerState, Symbol]) bool {
	if other == nil {
		return false
	}
	if !s.inner.Equal(other.inner) {
		return false
	}
	if len(s.early) != len(other.early) || len(s.late) != len(other.late) {
		return false
	}
	for i := range s.early {
		if !s.early[i].Equal(other.early[i]) {
			return false
		}
	}
	for i := range s.late {
		if !s.late[i].Equal(other.late[i]) {
			return false
		}
	}
	return true
}

func insertAt[T any](s []T, pos int, v T) []T {
	s = append(s, v)
	copy(s[pos+1:], s[pos:len(s)-1])
	s[pos] = v
	return s
}

func removeAt[T any](s []T, pos int) []T {
	return append(s[:pos:pos], s[pos+1:]...)
}
