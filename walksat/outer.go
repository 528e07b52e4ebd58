package walksat

import (
	"context"
	"errors"
)

// ErrBudgetExhausted is returned by SolveWithBudget when maxFlips flips
// pass without reaching a satisfying assignment. It is not evidence of
// unsatisfiability: WalkSAT is incomplete, and another budget or seed
// may succeed where this one did not.
var ErrBudgetExhausted = errors.New("walksat: flip budget exhausted without a model")

// SolveWithBudget is an outer driver around the core W1-W5 loop: it
// behaves exactly like Solve, except it also returns after maxFlips
// flips without a model (ErrBudgetExhausted), or as soon as ctx is
// done. maxFlips <= 0 means unbounded, i.e. identical to Solve except
// for ctx cancellation.
//
// This does not change the core loop's semantics: every flip it
// performs is the same W5 flip Solve would have performed; only the
// stopping condition differs.
func (s *Solver) SolveWithBudget(ctx context.Context, maxFlips int64) ([]bool, error) {
	s.init()
	var n int64
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if maxFlips > 0 && n >= maxFlips && len(s.st.f) > 0 {
			return nil, ErrBudgetExhausted
		}
		if done, model := s.step(); done {
			return model, nil
		}
		n++
	}
}

// RestartConfig configures SolveWithRestarts.
type RestartConfig struct {
	// LubyUnit scales the Luby reluctant-doubling sequence into a flip
	// budget for each restart attempt: attempt i gets
	// luby(i) * LubyUnit flips. Must be > 0.
	LubyUnit int64

	// MaxRestarts bounds the number of attempts. 0 means unbounded.
	MaxRestarts int
}

// DefaultRestartConfig returns a LubyUnit of 100 flips and an unbounded
// number of restarts.
func DefaultRestartConfig() RestartConfig {
	return RestartConfig{LubyUnit: 100}
}

// SolveWithRestarts is the restart schedule the original implementation
// left as a TODO ("call solve repeatedly with reluctant doubling
// sequence"): it repeatedly re-randomizes the initial assignment (a
// fresh W1) and runs a budgeted attempt via SolveWithBudget, growing the
// budget according to the Luby sequence between attempts. Like
// SolveWithBudget, it is layered strictly outside the core loop and
// changes none of W1-W5's semantics.
func (s *Solver) SolveWithRestarts(ctx context.Context, cfg RestartConfig) ([]bool, error) {
	if cfg.LubyUnit <= 0 {
		cfg.LubyUnit = DefaultRestartConfig().LubyUnit
	}
	for attempt := uint(1); cfg.MaxRestarts == 0 || int(attempt) <= cfg.MaxRestarts; attempt++ {
		budget := int64(luby(attempt)) * cfg.LubyUnit
		model, err := s.SolveWithBudget(ctx, budget)
		if err == nil {
			return model, nil
		}
		if !errors.Is(err, ErrBudgetExhausted) {
			return nil, err
		}
		s.Restarts++
	}
	return nil, ErrBudgetExhausted
}
