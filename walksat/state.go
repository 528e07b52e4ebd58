package walksat

// clauseNil is the sentinel stored in w for a satisfied clause.
const clauseNil = -1

// state holds every piece of mutable solver data derived from the
// current assignment val. It is rebuilt (not cleared) each time
// Solver.init runs, so every call from an outer driver
// (SolveWithBudget, SolveWithRestarts) starts from freshly sized slices.
type state struct {
	val  []bool  // val[v], v in 1..nvars
	cost []int32 // cost[v], break count of v

	numtrue []int32 // numtrue[k], true-literal count of clause k

	f []int32 // stack of unsatisfied clause indices
	w []int32 // w[k] = position of k in f, or clauseNil

	// inv maps a literal to the clauses containing it. Literal l is
	// stored at inv[l+nvars], so that both polarities of every
	// variable 1..nvars have a slot in a single 2*nvars+1 array.
	inv [][]int32

	nvars int
}

func newState(f *Formula) *state {
	nvars := f.NumVars()
	nclauses := f.NumClauses()
	s := &state{
		val:     make([]bool, nvars+1),
		cost:    make([]int32, nvars+1),
		numtrue: make([]int32, nclauses),
		f:       make([]int32, 0, nclauses),
		w:       make([]int32, nclauses),
		inv:     make([][]int32, 2*nvars+1),
		nvars:   nvars,
	}
	for k := range s.w {
		s.w[k] = clauseNil
	}
	return s
}

// invSlot returns the index into s.inv for literal l.
func (s *state) invSlot(l int32) int {
	return int(l) + s.nvars
}

func (s *state) invOf(l int32) []int32 { return s.inv[s.invSlot(l)] }

func (s *state) appendInv(l int32, k int32) {
	slot := s.invSlot(l)
	s.inv[slot] = append(s.inv[slot], k)
}

// isTrue reports whether literal l is true under the current
// assignment.
func (s *state) isTrue(l int32) bool {
	v := varOf(l)
	return (l > 0) == s.val[v]
}

// registerUnsatisfied appends k to f and records its position in w.
// Idempotent: a no-op if k is already unsatisfied. This, together with
// registerSatisfied, is the only code allowed to mutate f or w.
func (s *state) registerUnsatisfied(k int32) {
	if s.w[k] != clauseNil {
		return
	}
	s.w[k] = int32(len(s.f))
	s.f = append(s.f, k)
}

// registerSatisfied removes k from f in O(1) by swapping it with the
// last element of f and fixing up the reverse index of whichever clause
// was swapped into k's old slot. Idempotent: a no-op if k is already
// satisfied.
//
// The reverse index must be updated on the element swapped into the
// vacated slot, not on k itself, before k's own slot in w is cleared.
func (s *state) registerSatisfied(k int32) {
	pos := s.w[k]
	if pos == clauseNil {
		return
	}
	last := int32(len(s.f) - 1)
	moved := s.f[last]
	s.f[pos] = moved
	s.w[moved] = pos
	s.w[k] = clauseNil
	s.f = s.f[:last]
}

func varOf(l int32) int32 {
	if l < 0 {
		return -l
	}
	return l
}
