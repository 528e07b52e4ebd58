package walksat

import "testing"

func TestRegisterUnsatisfiedThenSatisfiedRestoresInvariant(t *testing.T) {
	s := &state{w: []int32{clauseNil, clauseNil, clauseNil}, f: nil}
	s.registerUnsatisfied(0)
	s.registerUnsatisfied(2)
	if len(s.f) != 2 {
		t.Fatalf("len(f) = %d, want 2", len(s.f))
	}
	if s.w[0] == clauseNil || s.w[2] == clauseNil {
		t.Fatalf("w not updated for registered clauses: %v", s.w)
	}
	if s.f[s.w[0]] != 0 || s.f[s.w[2]] != 2 {
		t.Fatalf("w does not point back into f: w=%v f=%v", s.w, s.f)
	}

	s.registerSatisfied(0)
	if s.w[0] != clauseNil {
		t.Fatalf("w[0] = %d, want clauseNil after registerSatisfied", s.w[0])
	}
	if len(s.f) != 1 || s.f[0] != 2 {
		t.Fatalf("f = %v, want [2]", s.f)
	}
	if s.f[s.w[2]] != 2 {
		t.Fatalf("w does not point back into f after swap-remove: w=%v f=%v", s.w, s.f)
	}
}

func TestRegisterSatisfiedOnLastElementOfStack(t *testing.T) {
	s := &state{w: []int32{clauseNil}, f: nil}
	s.registerUnsatisfied(0)
	s.registerSatisfied(0)
	if len(s.f) != 0 {
		t.Fatalf("len(f) = %d, want 0", len(s.f))
	}
	if s.w[0] != clauseNil {
		t.Fatalf("w[0] = %d, want clauseNil", s.w[0])
	}
}

func TestRegisterOperationsAreIdempotent(t *testing.T) {
	s := &state{w: []int32{clauseNil}, f: nil}
	s.registerSatisfied(0) // already satisfied: no-op
	if len(s.f) != 0 {
		t.Fatalf("registerSatisfied on an already-satisfied clause mutated f: %v", s.f)
	}
	s.registerUnsatisfied(0)
	s.registerUnsatisfied(0) // already unsatisfied: no-op
	if len(s.f) != 1 {
		t.Fatalf("registerUnsatisfied duplicated an entry: %v", s.f)
	}
}

func TestInvSlotCoversBothPolarities(t *testing.T) {
	s := &state{nvars: 3, inv: make([][]int32, 2*3+1)}
	s.appendInv(3, 7)
	s.appendInv(-3, 9)
	if got := s.invOf(3); len(got) != 1 || got[0] != 7 {
		t.Errorf("invOf(3) = %v, want [7]", got)
	}
	if got := s.invOf(-3); len(got) != 1 || got[0] != 9 {
		t.Errorf("invOf(-3) = %v, want [9]", got)
	}
}

func TestInvPreservesMultiplicity(t *testing.T) {
	s := &state{nvars: 2, inv: make([][]int32, 2*2+1)}
	s.appendInv(1, 0)
	s.appendInv(1, 0) // same literal twice in the same clause
	if got := s.invOf(1); len(got) != 2 {
		t.Errorf("invOf(1) = %v, want two entries for clause 0", got)
	}
}
