package walksat

import "math"

// Solver runs WalkSAT over a fixed Formula. A Solver owns all of its
// mutable state exclusively for its lifetime; the Formula it was built
// from is immutable and may be shared with other solvers.
type Solver struct {
	f   *Formula
	cfg Config
	rng *rng
	st  *state

	// Flips counts every W5 flip performed across the lifetime of this
	// Solver, including flips made by prior SolveWithBudget/
	// SolveWithRestarts attempts. It is informational only; nothing in
	// W1-W5 depends on it.
	Flips int64

	// Restarts counts re-initializations performed by SolveWithRestarts.
	// Unused by Solve and SolveWithBudget.
	Restarts int
}

// NewSolver builds a Solver for f under cfg. It does not touch f's
// contents; the initial assignment is drawn lazily by Solve/init.
func NewSolver(f *Formula, cfg Config) *Solver {
	return &Solver{
		f:   f,
		cfg: cfg,
		rng: newRNG(cfg.Seed),
	}
}

// Assignment returns the truth value of variable v (1..NumVars) under
// the solver's current assignment. It is meaningful only after Solve
// (or one of its variants) has returned a model, or mid-run for
// diagnostics/tests.
func (s *Solver) Assignment(v int) bool {
	return s.st.val[v]
}

// Model copies the current assignment into a 1-indexed slice of length
// NumVars+1 (index 0 is unused, kept for direct variable indexing).
func (s *Solver) Model() []bool {
	out := make([]bool, len(s.st.val))
	copy(out, s.st.val)
	return out
}

// init performs W1: draws a fresh biased random assignment, then builds
// numtrue, cost, f, w, and inv from scratch. Safe to call more than
// once on the same Solver (used by the outer restart driver).
func (s *Solver) init() {
	st := newState(s.f)
	nvars := s.f.NumVars()
	for v := 1; v <= nvars; v++ {
		st.val[v] = s.rng.flip(s.cfg.InitialBias)
	}
	for k := 0; k < s.f.NumClauses(); k++ {
		clause := s.f.Clause(k)
		var tl int32 = -1
		for _, l := range clause {
			st.appendInv(l, int32(k))
			if st.isTrue(l) {
				st.numtrue[k]++
				tl = varOf(l)
			}
		}
		switch st.numtrue[k] {
		case 0:
			st.registerUnsatisfied(int32(k))
		case 1:
			st.cost[tl]++
		}
	}
	s.st = st
}

// Solve runs the core WalkSAT loop (W1-W5) to completion. It returns
// the satisfying assignment as a 1-indexed []bool the first time f
// becomes fully satisfied; on an unsatisfiable, non-trivial formula it
// never returns. There is no internal retry, restart, or iteration cap:
// callers that need a bound should use SolveWithBudget or
// SolveWithRestarts instead.
func (s *Solver) Solve() []bool {
	s.init()
	for {
		if done, model := s.step(); done {
			return model
		}
	}
}

// step performs one pass of W2-W5: the termination test, clause and
// literal selection, and the flip with its incremental update. It
// returns (true, model) if the formula is now satisfied, else
// (false, nil).
func (s *Solver) step() (bool, []bool) {
	st := s.st
	// W2. Termination test.
	if len(st.f) == 0 {
		return true, s.Model()
	}

	// W3. Clause selection.
	q := s.rng.uniform(len(st.f))
	k := st.f[q]
	clause := s.f.Clause(int(k))

	// W4. Literal selection.
	choice := s.selectLiteral(clause)

	// W5. Flip and incremental update.
	s.flip(choice)
	s.Flips++
	return false, nil
}

// selectLiteral implements W4's reservoir-sampling literal choice over
// clause: uniformly among minimum-cost literals, or -- with probability
// cfg.NonGreedyChoice, when some literal has cost > 0 -- uniformly
// among all literals in the clause.
func (s *Solver) selectLiteral(clause []int32) int32 {
	all := s.rng.flip(s.cfg.NonGreedyChoice)
	var choice int32
	haveChoice := false
	k := 1
	minCost := int32(math.MaxInt32)
	for _, l := range clause {
		c := s.st.cost[varOf(l)]
		if c < minCost {
			minCost = c
			if !all || minCost == 0 {
				k = 1
			}
		}
		if (all && minCost > 0) || c == minCost {
			if s.rng.flip(1.0 / float64(k)) {
				choice = l
				haveChoice = true
			}
			k++
		}
	}
	if !haveChoice {
		panic("walksat: no flip literal chosen")
	}
	return choice
}

// flip performs W5: flips the variable underlying choice and
// incrementally repairs numtrue, cost, f, and w for every clause that
// lost or gained a true literal as a result.
func (s *Solver) flip(choice int32) {
	st := s.st
	v := varOf(choice)
	var pos int32
	if st.val[v] == (choice > 0) {
		pos = choice
	} else {
		pos = -choice
	}
	neg := -pos

	st.val[v] = !st.val[v]

	for _, k := range st.invOf(pos) {
		st.numtrue[k]--
		switch st.numtrue[k] {
		case 0:
			st.registerUnsatisfied(k)
			st.cost[v]--
		case 1:
			if other := s.findTrueLiteral(k, 0); other != 0 {
				st.cost[varOf(other)]++
			}
		}
	}

	for _, k := range st.invOf(neg) {
		st.numtrue[k]++
		switch st.numtrue[k] {
		case 1:
			st.registerSatisfied(k)
			st.cost[v]++
		case 2:
			if other := s.findTrueLiteral(k, neg); other != 0 {
				st.cost[varOf(other)]--
			}
		}
	}
}

// findTrueLiteral scans clause k for the first literal that is
// currently true and not equal to skip, returning it, or 0 if none is
// found. skip is 0 (never equal to a real literal) when the caller has
// no literal to exclude.
func (s *Solver) findTrueLiteral(k int32, skip int32) int32 {
	for _, l := range s.f.Clause(int(k)) {
		if l != skip && s.st.isTrue(l) {
			return l
		}
	}
	return 0
}
