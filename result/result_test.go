package result_test

import (
	"testing"

	"github.com/limigo/limigo/result"
)

func TestFilterTraceRemovesMatchingSymbols(t *testing.T) {
	r := result.Result[string]{
		Included:       false,
		CounterExample: []string{"a", "b", "a", "c"},
	}
	r.FilterTrace(func(s string) bool { return s == "a" })

	want := []string{"b", "c"}
	if len(r.CounterExample) != len(want) {
		t.Fatalf("CounterExample = %v, want %v", r.CounterExample, want)
	}
	for i := range want {
		if r.CounterExample[i] != want[i] {
			t.Fatalf("CounterExample = %v, want %v", r.CounterExample, want)
		}
	}
}

func TestFilterTraceIsNoOpWhenIncluded(t *testing.T) {
	r := result.Result[string]{
		Included:       true,
		CounterExample: []string{"a"},
	}
	r.FilterTrace(func(s string) bool { return true })
	if len(r.CounterExample) != 1 {
		t.Fatalf("FilterTrace must be a no-op when Included is true, got %v", r.CounterExample)
	}
}

func TestFilterTraceExprRemovesMatchingSymbols(t *testing.T) {
	r := result.Result[int]{
		Included:       false,
		CounterExample: []int{1, 2, 3, 4},
	}
	toName := func(i int) string {
		if i%2 == 0 {
			return "even"
		}
		return "odd"
	}
	if err := r.FilterTraceExpr(`symbol == "even"`, toName); err != nil {
		t.Fatalf("FilterTraceExpr: %v", err)
	}
	want := []int{1, 3}
	if len(r.CounterExample) != len(want) {
		t.Fatalf("CounterExample = %v, want %v", r.CounterExample, want)
	}
	for i := range want {
		if r.CounterExample[i] != want[i] {
			t.Fatalf("CounterExample = %v, want %v", r.CounterExample, want)
		}
	}
}

func TestFilterTraceExprRejectsInvalidExpression(t *testing.T) {
	r := result.Result[int]{Included: false, CounterExample: []int{1}}
	err := r.FilterTraceExpr("symbol +++ not valid", func(i int) string { return "x" })
	if err == nil {
		t.Fatal("expected a compile error for a malformed expression")
	}
}

func TestFilterTraceExprRejectsNonBoolExpression(t *testing.T) {
	r := result.Result[int]{Included: false, CounterExample: []int{1}}
	err := r.FilterTraceExpr(`"not a bool"`, func(i int) string { return "x" })
	if err == nil {
		t.Fatal("expected an error: expr.AsBool should reject a string-typed expression")
	}
}
