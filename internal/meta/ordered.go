package meta

import "github.com/limigo/limigo/value"

// Ordered extends value.Value with a total order, needed by the meta-state
// stacks to keep canonical, commutation-class-respecting insertion order.
// The original source compares symbols with operator> for exactly this
// purpose (Limi/internal/meta_state.h, add_early/add_late).
type Ordered[T any] interface {
	value.Value[T]
	Less(other T) bool
}
