package walksat

import (
	"context"
	"testing"
	"time"
)

func TestSolveWithBudgetSucceedsOnEasyFormula(t *testing.T) {
	f, err := NewFormula([][]int{{1, 2}, {3}})
	if err != nil {
		t.Fatal(err)
	}
	s := NewSolver(f, DefaultConfig())
	model, err := s.SolveWithBudget(context.Background(), 1000)
	if err != nil {
		t.Fatalf("SolveWithBudget: %v", err)
	}
	if !satisfiesAll(f, model) {
		t.Error("model does not satisfy all clauses")
	}
}

func TestSolveWithBudgetRespectsContextCancellation(t *testing.T) {
	f, err := NewFormula([][]int{{1}, {-1}})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewSolver(f, DefaultConfig())
	_, err = s.SolveWithBudget(ctx, 0)
	if err == nil {
		t.Fatal("expected an error from an already-canceled context")
	}
}

func TestSolveWithRestartsSucceedsOnEasyFormula(t *testing.T) {
	f, err := NewFormula([][]int{{1, 2, 3}, {-1, -2}, {-2, -3}})
	if err != nil {
		t.Fatal(err)
	}
	s := NewSolver(f, Config{InitialBias: 0.1, NonGreedyChoice: 0.65, Seed: 3})
	model, err := s.SolveWithRestarts(context.Background(), RestartConfig{LubyUnit: 50, MaxRestarts: 20})
	if err != nil {
		t.Fatalf("SolveWithRestarts: %v", err)
	}
	if !satisfiesAll(f, model) {
		t.Error("model does not satisfy all clauses")
	}
}

func TestSolveWithRestartsReturnsBudgetExhaustedOnUnsat(t *testing.T) {
	f, err := NewFormula([][]int{{1}, {-1}})
	if err != nil {
		t.Fatal(err)
	}
	s := NewSolver(f, DefaultConfig())
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err = s.SolveWithRestarts(ctx, RestartConfig{LubyUnit: 10, MaxRestarts: 5})
	if err != ErrBudgetExhausted && err != context.DeadlineExceeded {
		t.Fatalf("SolveWithRestarts err = %v, want ErrBudgetExhausted or DeadlineExceeded", err)
	}
}

func TestLubySequence(t *testing.T) {
	want := []uint{1, 1, 2, 1, 1, 2, 4, 1}
	for i, w := range want {
		if got := luby(uint(i + 1)); got != w {
			t.Errorf("luby(%d) = %d, want %d", i+1, got, w)
		}
	}
}
