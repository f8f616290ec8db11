package timbuk

import (
	"fmt"
	"io"
)

// WriteDOT renders a as Graphviz DOT source to w. Initial states are
// pointed to by a dashed "init" edge from an unlabeled source node, final
// states are drawn as double octagons.
func WriteDOT(w io.Writer, a *Automaton) error {
	if _, err := fmt.Fprintf(w, "digraph %q {\n  rankdir=LR;\n  node [shape=circle, fontsize=10];\n", a.Name); err != nil {
		return err
	}

	for s, name := range a.names {
		shape := "circle"
		if a.final[s] {
			shape = "doubleoctagon"
		}
		if _, err := fmt.Fprintf(w, "  %q [shape=%s label=%q];\n", name, shape, name); err != nil {
			return err
		}
	}
	for _, s := range a.initial {
		if _, err := fmt.Fprintf(w, "  %q -> %q [style=dashed label=\"init\"];\n", "·", a.names[s]); err != nil {
			return err
		}
	}
	for s, bySymbol := range a.successors {
		from := a.names[s]
		for sigma, targets := range bySymbol {
			label := a.st.Lookup(sigma)
			for _, t := range targets {
				if _, err := fmt.Fprintf(w, "  %q -> %q [label=%q];\n", from, a.names[t], label); err != nil {
					return err
				}
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
