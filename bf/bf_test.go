package bf

import (
	"fmt"
	"os"
	"testing"
)

func TestCNF(t *testing.T) {
	f := And(Or(Var("a"), Var("b")), Var("i"), Or(Var("g"), Var("h"), And(Var("c"), Or(Var("d"), Var("e")), Var("f"))))
	model := Solve(f)
	if model == nil {
		t.Errorf("problem was declared UNSAT")
	}
}

func TestUnique(t *testing.T) {
	f := And(Var("a"), Unique("a", "b", "c", "d", "e"))
	model := Solve(f)
	if model == nil {
		t.Errorf("problem is declared unsat")
	} else if !model["a"] || model["b"] || model["c"] || model["d"] || model["e"] {
		t.Errorf("invalid model %v", model)
	}
	f = And(Var("a"), Or(Var("b"), Var("c")), Unique("a", "b", "c", "d", "e"))
	model = Solve(f)
	if model != nil {
		t.Errorf("problem is declared sat, model: %v", model)
	}
}

func TestString(t *testing.T) {
	f := And(Or(Var("a"), Not(Var("b"))), Not(Var("c")))
	const expected = "and(or(a, not(b)), not(c))"
	if f.String() != expected {
		t.Errorf("string representation of formula not as expected: wanted %q, got %q", expected, f.String())
	}
}

func ExampleSolve() {
	f := Not(Implies(
		And(Var("a"), Var("b")), And(Or(Var("c"), Not(Var("d"))),
			Not(And(Var("c"), Eq(Var("e"), Not(Var("c"))))), Not(Xor(Var("a"), Var("b"))))))
	model := Solve(f)
	if model != nil {
		fmt.Printf("Problem is satisfiable")
	} else {
		fmt.Printf("Problem is unsatisfiable")
	}
	// Output: Problem is satisfiable
}

func ExampleUnique() {
	f := And(Var("a"), Unique("a", "b", "c", "d", "e"))
	model := Solve(f)
	if model != nil {
		fmt.Printf("Problem is satisfiable: a=%t, b=%t, c=%t, d=%t", model["a"], model["b"], model["c"], model["d"])
	} else {
		fmt.Printf("Problem is unsatisfiable")
	}
	// Output: Problem is satisfiable: a=true, b=false, c=false, d=false
}

func ExampleDimacs() {
	f := Eq(And(Or(Var("a"), Not(Var("b"))), Not(Var("a"))), Var("b"))
	if err := Dimacs(f, os.Stdout); err != nil {
		fmt.Printf("Could not generate DIMACS file: %v", err)
	}
	// Output:
	// p cnf 4 6
	// c a=2
	// c b=3
	// -2 -1 0
	// 3 -1 0
	// 1 2 3 0
	// 2 -3 -4 0
	// -2 -4 0
	// 4 -3 0
}

// TestSolveLargeConjunction exercises the front end's default flip
// budget on a few hundred variables. It checks satisfiability and that
// the returned model actually satisfies the formula, rather than an
// exact expected model, since the search is stochastic.
func TestSolveLargeConjunction(t *testing.T) {
	const n = 200
	vars := make([]string, n)
	for i := range vars {
		vars[i] = fmt.Sprintf("v%d", i)
	}
	var constraints []Formula
	for i := 0; i < n; i++ {
		constraints = append(constraints, Var(vars[i]))
	}
	for i := 0; i+1 < n; i += 2 {
		constraints = append(constraints, Or(Not(Var(vars[i])), Var(vars[i+1])))
	}
	f := And(constraints...)
	model := Solve(f)
	if model == nil {
		t.Fatal("expected a model for a satisfiable conjunction")
	}
	if !f.Eval(model) {
		t.Fatal("returned model does not satisfy the formula")
	}
}

func benchmarkUnique(n int) {
	vars := make([]string, n)
	for i := range vars {
		vars[i] = fmt.Sprintf("var-%d", i)
	}
	f := Unique(vars...)
	_ = Solve(f)
}

func BenchmarkUnique100(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchmarkUnique(100)
	}
}

func BenchmarkUnique1000(b *testing.B) {
	for i := 0; i < b.N; i++ {
		benchmarkUnique(1000)
	}
}
