package walksat

// Stats carries run counters meant for reporting only; nothing in the
// core loop reads them back.
type Stats struct {
	Flips    int64
	Restarts int
}

// Stats snapshots the solver's run counters.
func (s *Solver) Stats() Stats {
	return Stats{Flips: s.Flips, Restarts: s.Restarts}
}
