package listauto_test

import (
	"testing"

	"github.com/limigo/limigo/listauto"
)

type sym string

func (s sym) Equal(other sym) bool { return s == other }
func (s sym) Hash() uint64         { return uint64(len(s)) }

func isEps(s sym) bool { return s == "" }

func TestWordAcceptsExactlyItsOwnWord(t *testing.T) {
	w := listauto.New([]sym{"a", "b", "c"}, isEps)

	cur := w.InitialStates()
	if len(cur) != 1 || cur[0] != 0 {
		t.Fatalf("InitialStates() = %v, want [0]", cur)
	}

	word := []sym{"a", "b", "c"}
	s := listauto.Index(0)
	for _, sy := range word {
		next := w.Successors(s, sy)
		if len(next) != 1 {
			t.Fatalf("Successors(%d, %q) = %v, want exactly one successor", s, sy, next)
		}
		s = next[0]
	}
	if !w.IsFinal(s) {
		t.Fatalf("after consuming the full word, state %d should be final", s)
	}
}

func TestWordRejectsWrongSymbol(t *testing.T) {
	w := listauto.New([]sym{"a", "b"}, isEps)
	if got := w.Successors(0, "x"); got != nil {
		t.Fatalf("Successors(0, x) = %v, want nil (x is not the expected symbol)", got)
	}
}

func TestWordRejectsPastItsLength(t *testing.T) {
	w := listauto.New([]sym{"a"}, isEps)
	if got := w.Successors(1, "a"); got != nil {
		t.Fatalf("Successors(1, a) = %v, want nil (index 1 is already past the word)", got)
	}
	if got := w.NextSymbols(1); got != nil {
		t.Fatalf("NextSymbols(1) = %v, want nil", got)
	}
}

func TestWordIsFinalOnlyAtWordLength(t *testing.T) {
	w := listauto.New([]sym{"a", "b"}, isEps)
	if w.IsFinal(0) || w.IsFinal(1) {
		t.Fatal("intermediate indices must not be final")
	}
	if !w.IsFinal(2) {
		t.Fatal("index == len(word) must be final")
	}
}

func TestNoEpsilonProducedReflectsContent(t *testing.T) {
	withEps := listauto.New([]sym{"a", ""}, isEps)
	if withEps.NoEpsilonProduced() {
		t.Fatal("a word containing an epsilon symbol must report NoEpsilonProduced()==false")
	}

	withoutEps := listauto.New([]sym{"a", "b"}, isEps)
	if !withoutEps.NoEpsilonProduced() {
		t.Fatal("a word with no epsilon symbol must report NoEpsilonProduced()==true")
	}

	nilClassifier := listauto.New([]sym{"a"}, nil)
	if !nilClassifier.NoEpsilonProduced() {
		t.Fatal("a nil isEpsilon classifier means no epsilon symbol exists, NoEpsilonProduced()==true")
	}
	if nilClassifier.IsEpsilon("a") {
		t.Fatal("with a nil classifier, IsEpsilon must always report false")
	}
}

func TestSymbolsReturnsTheWord(t *testing.T) {
	w := listauto.New([]sym{"a", "b", "c"}, isEps)
	got := w.Symbols()
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("Symbols() = %v, want [a b c]", got)
	}
}
