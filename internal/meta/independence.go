package meta

import "github.com/limigo/limigo/value"

// Independence is a symmetric, irreflexive relation on symbols: (a,b) in
// the relation means the words ab and ba are semantically equivalent.
type Independence[Symbol value.Value[Symbol]] interface {
	Independent(a, b Symbol) bool
}

// None is the empty independence relation — nothing commutes. Using it
// with the independence-aware engine is correct but wasteful; prefer the
// classical engine when the relation is empty.
type None[Symbol value.Value[Symbol]] struct{}

func (None[Symbol]) Independent(a, b Symbol) bool { return false }

// Func adapts a plain function to Independence.
type Func[Symbol value.Value[Symbol]] func(a, b Symbol) bool

func (f Func[Symbol]) Independent(a, b Symbol) bool { return f(a, b) }
