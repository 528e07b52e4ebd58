package walksat

// Config holds the parameters of a WalkSAT run. All fields are fixed
// for the lifetime of a Solver.
type Config struct {
	// InitialBias is the probability that a variable is initialized to
	// true during the initial random assignment (W1). Must be in
	// [0,1].
	InitialBias float64

	// NonGreedyChoice is the probability that, when at least one
	// literal in the candidate clause has cost > 0, literal selection
	// (W4) considers all literals in the clause rather than only the
	// minimum-cost ones. Must be in [0,1].
	NonGreedyChoice float64

	// Seed seeds the solver's pseudo-random generator. A zero value
	// seeds from wall-clock time.
	Seed int64
}

// DefaultConfig returns the configuration used by Knuth's original
// implementation: a 0.1 bias toward true, a 0.65 chance of non-greedy
// literal selection, and a wall-clock seed.
func DefaultConfig() Config {
	return Config{
		InitialBias:     0.1,
		NonGreedyChoice: 0.65,
		Seed:            0,
	}
}
