package walksat

import (
	"math/rand"
	"time"
)

// rng is the solver's private pseudo-random source. Every Solver owns
// its own instance rather than sharing a package-level generator, so
// that concurrent solvers are independent and a fixed seed makes a
// single solver's flip sequence reproducible.
type rng struct {
	r *rand.Rand
}

func newRNG(seed int64) *rng {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &rng{r: rand.New(rand.NewSource(seed))}
}

// flip draws a uniform variate in [0,1] and returns true iff it is <= p.
func (g *rng) flip(p float64) bool {
	return g.r.Float64() <= p
}

// uniform returns a uniform integer in [0, n), n > 0, via rejection
// sampling rather than modulo reduction: dividing the raw draw by a
// fixed divisor and redrawing whenever the quotient lands at or past n
// avoids the bias modulo would introduce when n does not evenly divide
// the generator's range.
func (g *rng) uniform(n int) int {
	if n <= 0 {
		panic("walksat: uniform requires n > 0")
	}
	if n == 1 {
		return 0
	}
	const randRange uint64 = 1 << 63 // one past math/rand.Rand.Int63's inclusive upper bound
	divisor := randRange / uint64(n)
	var q uint64
	for {
		q = uint64(g.r.Int63()) / divisor
		if int(q) < n {
			return int(q)
		}
	}
}
