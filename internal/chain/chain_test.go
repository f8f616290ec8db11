package chain

import "testing"

func TestExtendAndToSequence(t *testing.T) {
	n := Extend("a", nil)
	n = Extend("b", n)
	n = Extend("c", n)

	got := ToSequence(n)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestToSequenceEmptyIsNonNil(t *testing.T) {
	got := ToSequence[string](nil)
	if got == nil {
		t.Fatal("ToSequence(nil) should return an empty, non-nil slice")
	}
	if len(got) != 0 {
		t.Fatalf("len = %d, want 0", len(got))
	}
}

func TestExtendSharesTail(t *testing.T) {
	root := Extend("x", nil)
	left := Extend("y", root)
	right := Extend("z", root)

	if left.Parent != right.Parent {
		t.Fatal("branches from the same node should share the same parent pointer")
	}
}
