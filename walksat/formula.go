package walksat

import "fmt"

// A Formula is an immutable conjunction of clauses in conjunctive normal
// form. Clauses are stored as a sequential list of literals with no
// terminator between them; start keeps track of where each clause
// begins.
//
// Trivial is set when the formula was found unsatisfiable during
// construction, i.e. it contains an empty clause. No other field should
// be relied upon when Trivial is true.
type Formula struct {
	clauses []int32
	start   []int32
	nvars   int
	Trivial bool
}

// NewFormula builds a Formula from a slice of clauses, each clause being
// a slice of signed, non-zero literals. Variables are numbered 1..V; V
// is inferred as the largest variable magnitude appearing in cnf, or may
// be raised with NewFormulaVars.
//
// An empty clause anywhere in cnf makes the formula trivially
// unsatisfiable: NewFormula returns a Formula with Trivial set and a nil
// error.
func NewFormula(cnf [][]int) (*Formula, error) {
	nvars := 0
	for _, clause := range cnf {
		for _, lit := range clause {
			if lit == 0 {
				return nil, fmt.Errorf("walksat: literal 0 is not a valid literal")
			}
			if v := abs(lit); v > nvars {
				nvars = v
			}
		}
	}
	return NewFormulaVars(cnf, nvars)
}

// NewFormulaVars is like NewFormula but fixes the variable count to
// nvars rather than inferring it, so that formulas with trailing
// variables that never appear in any clause still size their state
// correctly.
func NewFormulaVars(cnf [][]int, nvars int) (*Formula, error) {
	f := &Formula{
		start: make([]int32, len(cnf)),
		nvars: nvars,
	}
	for k, clause := range cnf {
		if len(clause) == 0 {
			return &Formula{Trivial: true}, nil
		}
		f.start[k] = int32(len(f.clauses))
		for _, lit := range clause {
			v := abs(lit)
			if v == 0 || v > nvars {
				return nil, fmt.Errorf("walksat: literal %d out of range for %d variables", lit, nvars)
			}
			f.clauses = append(f.clauses, int32(lit))
		}
	}
	return f, nil
}

func abs(l int) int {
	if l < 0 {
		return -l
	}
	return l
}

// NumVars returns the number of variables V in the formula. Valid
// variables range from 1 to NumVars, inclusive.
func (f *Formula) NumVars() int { return f.nvars }

// NumClauses returns the number of clauses C in the formula.
func (f *Formula) NumClauses() int { return len(f.start) }

// clauseBegin and clauseEnd give the half-open literal range
// [clauseBegin(k), clauseEnd(k)) occupied by clause k in f.clauses.
func (f *Formula) clauseBegin(k int) int32 { return f.start[k] }

func (f *Formula) clauseEnd(k int) int32 {
	if k == len(f.start)-1 {
		return int32(len(f.clauses))
	}
	return f.start[k+1]
}

// Clause returns the literals of clause k, in DIMACS order. The
// returned slice aliases the formula's internal storage and must not be
// modified.
func (f *Formula) Clause(k int) []int32 {
	return f.clauses[f.clauseBegin(k):f.clauseEnd(k)]
}
