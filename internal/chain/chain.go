// Package chain implements the counterexample chain: a persistent,
// append-only singly linked list of symbols built up during exploration so
// that a trace can be reconstructed without copying word prefixes at every
// step.
package chain

// Node is one link in a counterexample chain. Nodes are immutable once
// created; many frontier entries may share the same tail.
type Node[Symbol any] struct {
	Symbol Symbol
	Parent *Node[Symbol]
}

// Extend returns a new node appending symbol after parent. parent may be
// nil (start of the chain).
func Extend[Symbol any](symbol Symbol, parent *Node[Symbol]) *Node[Symbol] {
	return &Node[Symbol]{Symbol: symbol, Parent: parent}
}

// ToSequence walks the chain back to its root and reverses the result, so
// the returned slice is in first-symbol-first order. Safe to call on a nil
// node (returns an empty, non-nil slice).
func ToSequence[Symbol any](n *Node[Symbol]) []Symbol {
	var result []Symbol
	for c := n; c != nil; c = c.Parent {
		result = append(result, c.Symbol)
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	if result == nil {
		result = []Symbol{}
	}
	return result
}
