/*
Package walksat implements Knuth's Algorithm W: a stochastic local-search
procedure for Boolean satisfiability (WalkSAT).

Given a formula in conjunctive normal form, a Solver either finds a
satisfying assignment or runs forever. WalkSAT is incomplete: it never
proves a formula unsatisfiable, except for the trivial case of an empty
clause caught at formula-construction time.

Describing a formula

A Formula is built once, from a flat slice of clauses:

	f, err := walksat.NewFormula([][]int{
		{1, 2, 3},
		{-1, -2},
		{2, -3},
	})

Clients that read DIMACS CNF files should use the sibling dimacs
package, which produces a *walksat.Formula directly.

Solving

	cfg := walksat.DefaultConfig()
	s := walksat.NewSolver(f, cfg)
	val := s.Solve()

Solve never returns without a model; on an unsatisfiable, non-trivial
formula it loops forever. Callers that need a bound should use
SolveWithBudget or SolveWithRestarts instead, both of which are outer
drivers layered on top of the core loop and do not change its
semantics.
*/
package walksat
