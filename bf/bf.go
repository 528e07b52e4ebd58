package bf

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/caldonovan/walksat/walksat"
)

// DefaultBudget bounds how many flips Solve gives the underlying
// WalkSAT driver before giving up. A nil model therefore means only
// "no model found within budget", never a proof of unsatisfiability --
// the one case WalkSAT can prove is an encoding that collapses to an
// empty clause, handled separately in tseitin.solve.
const DefaultBudget = 200_000

// Formula is any boolean formula, not necessarily in conjunctive
// normal form. Var, Not, And, Or and the derived connectors below build
// up a Formula tree; Solve and Dimacs both flatten it to CNF before
// doing anything with it.
type Formula interface {
	nnf() Formula
	String() string
	Eval(model map[string]bool) bool
}

// Solve encodes f to CNF and runs it through WalkSAT, bounded by
// DefaultBudget flips. It returns a binding for every variable named
// in f, or nil if no model was found within budget.
func Solve(f Formula) map[string]bool {
	return encode(f).solve()
}

// Dimacs writes the DIMACS CNF encoding of f to w, so it can be handed
// to any solver that reads that format. Variables introduced by the
// Tseitin transformation are omitted from the comment block; only f's
// own named variables are listed, each as a "c <name>=<index>" line
// between the problem line and the clauses.
func Dimacs(f Formula, w io.Writer) error {
	t := encode(f)
	header := fmt.Sprintf("p cnf %d %d\n", len(t.vars.index), len(t.clauses))
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("bf: could not write DIMACS header: %w", err)
	}
	names := make([]string, 0, len(t.vars.declared))
	for v := range t.vars.declared {
		names = append(names, v.name)
	}
	sort.Strings(names)
	for _, name := range names {
		idx := t.vars.declared[pbVar(name)]
		if _, err := io.WriteString(w, fmt.Sprintf("c %s=%d\n", name, idx)); err != nil {
			return fmt.Errorf("bf: could not write DIMACS comment: %w", err)
		}
	}
	for _, clause := range t.clauses {
		lits := make([]string, len(clause))
		for i, l := range clause {
			lits[i] = strconv.Itoa(l)
		}
		if _, err := io.WriteString(w, strings.Join(lits, " ")+" 0\n"); err != nil {
			return fmt.Errorf("bf: could not write DIMACS clause: %w", err)
		}
	}
	return nil
}

// trueConst is the constant tautology.
type trueConst struct{}

// True is the constant denoting a tautology.
var True Formula = trueConst{}

func (t trueConst) nnf() Formula                     { return t }
func (t trueConst) String() string                   { return "⊤" }
func (t trueConst) Eval(model map[string]bool) bool  { return true }

// falseConst is the constant contradiction.
type falseConst struct{}

// False is the constant denoting a contradiction.
var False Formula = falseConst{}

func (f falseConst) nnf() Formula                    { return f }
func (f falseConst) String() string                  { return "⊥" }
func (f falseConst) Eval(model map[string]bool) bool { return false }

// Var names a boolean variable to be used in a formula.
func Var(name string) Formula {
	return pbVar(name)
}

func pbVar(name string) variable {
	return variable{name: name, dummy: false}
}

func dummyVar(name string) variable {
	return variable{name: name, dummy: true}
}

// variable identifies a boolean unknown, either one the caller named
// directly (Var) or an auxiliary one introduced by the Tseitin pass
// (dummy, see varTable.newAux).
type variable struct {
	name  string
	dummy bool
}

func (v variable) nnf() Formula {
	return lit{signed: false, v: v}
}

func (v variable) String() string {
	return v.name
}

func (v variable) Eval(model map[string]bool) bool {
	b, ok := model[v.name]
	if !ok {
		panic(fmt.Errorf("bf: model has no binding for variable %q", v.name))
	}
	return b
}

// lit is a variable or its negation -- a formula already in negation
// normal form, one step from being a DIMACS literal.
type lit struct {
	v      variable
	signed bool
}

func (l lit) nnf() Formula { return l }

func (l lit) String() string {
	if l.signed {
		return "not(" + l.v.name + ")"
	}
	return l.v.name
}

func (l lit) Eval(model map[string]bool) bool {
	b := l.v.Eval(model)
	if l.signed {
		return !b
	}
	return b
}

// Not negates the given subformula.
func Not(f Formula) Formula {
	return not{f}
}

type not [1]Formula

func (n not) nnf() Formula {
	switch f := n[0].(type) {
	case variable:
		l := f.nnf().(lit)
		l.signed = true
		return l
	case lit:
		f.signed = !f.signed
		return f
	case not:
		return f[0].nnf()
	case and:
		subs := make([]Formula, len(f))
		for i, sub := range f {
			subs[i] = not{sub}.nnf()
		}
		return or(subs).nnf()
	case or:
		subs := make([]Formula, len(f))
		for i, sub := range f {
			subs[i] = not{sub}.nnf()
		}
		return and(subs).nnf()
	case trueConst:
		return False
	case falseConst:
		return True
	default:
		panic("bf: invalid formula type")
	}
}

func (n not) String() string {
	return "not(" + n[0].String() + ")"
}

func (n not) Eval(model map[string]bool) bool {
	return !n[0].Eval(model)
}

// And builds the conjunction of its subformulas.
func And(subs ...Formula) Formula {
	return and(subs)
}

type and []Formula

func (a and) nnf() Formula {
	var flat and
	for _, s := range a {
		switch sub := s.nnf().(type) {
		case and:
			flat = append(flat, sub...) // flatten a nested and into this one
		case trueConst:
			// a conjunct that is always true contributes nothing
		case falseConst:
			return False
		default:
			flat = append(flat, sub)
		}
	}
	switch len(flat) {
	case 0:
		return True
	case 1:
		return flat[0]
	default:
		return flat
	}
}

func (a and) String() string {
	parts := make([]string, len(a))
	for i, f := range a {
		parts[i] = f.String()
	}
	return "and(" + strings.Join(parts, ", ") + ")"
}

func (a and) Eval(model map[string]bool) bool {
	for _, s := range a {
		if !s.Eval(model) {
			return false
		}
	}
	return true
}

// Or builds the disjunction of its subformulas.
func Or(subs ...Formula) Formula {
	return or(subs)
}

type or []Formula

func (o or) nnf() Formula {
	var flat or
	for _, s := range o {
		switch sub := s.nnf().(type) {
		case or:
			flat = append(flat, sub...) // flatten a nested or into this one
		case falseConst:
			// a disjunct that is always false contributes nothing
		case trueConst:
			return True
		default:
			flat = append(flat, sub)
		}
	}
	switch len(flat) {
	case 0:
		return False
	case 1:
		return flat[0]
	default:
		return flat
	}
}

func (o or) String() string {
	parts := make([]string, len(o))
	for i, f := range o {
		parts[i] = f.String()
	}
	return "or(" + strings.Join(parts, ", ") + ")"
}

func (o or) Eval(model map[string]bool) bool {
	for _, s := range o {
		if s.Eval(model) {
			return true
		}
	}
	return false
}

// Implies builds "f1 implies f2".
func Implies(f1, f2 Formula) Formula {
	return or{not{f1}, f2}
}

// Eq builds "f1 is equivalent to f2".
func Eq(f1, f2 Formula) Formula {
	return and{or{not{f1}, f2}, or{f1, not{f2}}}
}

// Xor builds "exactly one of f1, f2 holds".
func Xor(f1, f2 Formula) Formula {
	return and{or{not{f1}, not{f2}}, or{f1, f2}}
}

// Unique builds "exactly one of the named variables is true". It may
// introduce auxiliary variables to keep the clause count manageable
// for large var lists.
func Unique(vars ...string) Formula {
	named := make([]variable, len(vars))
	for i, v := range vars {
		named[i] = pbVar(v)
	}
	return unique(named...)
}

// uniqueDirect is the quadratic "at most one, at least one" encoding:
// fine for a handful of variables, wasteful past that.
func uniqueDirect(vars ...variable) Formula {
	asForms := make([]Formula, len(vars))
	for i, v := range vars {
		asForms[i] = v
	}
	clauses := make([]Formula, 1, 1+(len(vars)*(len(vars)-1))/2)
	clauses[0] = Or(asForms...)
	for i := 0; i < len(vars)-1; i++ {
		for j := i + 1; j < len(vars); j++ {
			clauses = append(clauses, Or(Not(asForms[i]), Not(asForms[j])))
		}
	}
	return And(clauses...)
}

// unique recurses on a square grid of auxiliary row/column variables
// once the direct quadratic encoding would get too large, keeping the
// total clause count close to linear in len(vars).
func unique(vars ...variable) Formula {
	const directThreshold = 4
	if len(vars) <= directThreshold {
		return uniqueDirect(vars...)
	}
	n := len(vars)
	side := int(math.Sqrt(float64(n)) + 0.5)
	cols := int(math.Ceil(float64(n) / float64(side)))

	names := make([]string, n)
	for i, v := range vars {
		names[i] = v.name
	}
	tag := strings.Join(names, "-")

	rowVar := make([]variable, side)
	rowMembers := make([][]Formula, side)
	for i := range rowVar {
		rowVar[i] = dummyVar(fmt.Sprintf("row-%d-%s", i, tag))
	}
	colVar := make([]variable, cols)
	colMembers := make([][]Formula, cols)
	for i := range colVar {
		colVar[i] = dummyVar(fmt.Sprintf("col-%d-%s", i, tag))
	}
	for i, v := range vars {
		rowMembers[i/cols] = append(rowMembers[i/cols], v)
		colMembers[i%cols] = append(colMembers[i%cols], v)
	}

	constraints := make([]Formula, 0, 2*n+2)
	for i, rv := range rowVar {
		constraints = append(constraints, Eq(rv, Or(rowMembers[i]...)))
	}
	for i, cv := range colVar {
		constraints = append(constraints, Eq(cv, Or(colMembers[i]...)))
	}
	constraints = append(constraints, unique(rowVar...), unique(colVar...))
	return And(constraints...)
}

// varTable assigns DIMACS-style 1-based indices to variables the first
// time they are referenced while flattening a Formula to CNF.
type varTable struct {
	index    map[variable]int // every variable encountered, including auxiliaries
	declared map[variable]int // only the variables named by the caller
}

// indexOf returns the signed DIMACS literal for l, assigning l.v a
// fresh index on first reference.
func (vt *varTable) indexOf(l lit) int {
	idx, ok := vt.index[l.v]
	if !ok {
		idx = len(vt.index) + 1
		vt.index[l.v] = idx
		if !l.v.dummy {
			vt.declared[l.v] = idx
		}
	}
	if l.signed {
		return -idx
	}
	return idx
}

// newAux reserves a fresh auxiliary variable, used by the Tseitin
// transformation below, and returns its (always positive) index.
func (vt *varTable) newAux() int {
	idx := len(vt.index) + 1
	vt.index[dummyVar(fmt.Sprintf("aux-%d", idx))] = idx
	return idx
}

// tseitin carries the clauses produced while flattening a Formula to
// CNF, together with the variable table needed to translate a WalkSAT
// model back onto the formula's own variable names.
type tseitin struct {
	vars    varTable
	clauses [][]int
}

// solve hands t's clauses to a freshly-built walksat.Solver, bounded by
// DefaultBudget flips, and maps whatever assignment comes back onto the
// formula's declared variable names. A nil result means no model was
// found within budget, not a proof of unsatisfiability, except when the
// encoding itself collapsed to an empty clause (f.Trivial below).
func (t *tseitin) solve() map[string]bool {
	f, err := walksat.NewFormula(t.clauses)
	if err != nil {
		panic(err) // encodeCNF only ever emits well-formed clauses
	}
	if f.Trivial {
		return nil
	}
	s := walksat.NewSolver(f, walksat.DefaultConfig())
	m, err := s.SolveWithBudget(context.Background(), DefaultBudget)
	if err != nil {
		return nil
	}
	model := make(map[string]bool, len(t.vars.declared))
	for v, idx := range t.vars.declared {
		model[v.name] = m[idx]
	}
	return model
}

// encode flattens f into an equisatisfiable CNF via negation normal
// form followed by a Tseitin pass (encodeCNF), ready to be fed to
// WalkSAT or written out as DIMACS.
func encode(f Formula) *tseitin {
	vt := varTable{index: make(map[variable]int), declared: make(map[variable]int)}
	clauses := encodeCNF(f.nnf(), &vt)
	return &tseitin{vars: vt, clauses: clauses}
}

// encodeCNF walks an NNF formula and emits its CNF clauses. and-nodes
// simply concatenate their subformulas' clauses; or-nodes of literals
// become a single clause; an and nested inside an or gets a fresh
// auxiliary variable (the Tseitin trick) rather than being distributed
// out, which would blow the clause count up exponentially.
func encodeCNF(f Formula, vt *varTable) [][]int {
	switch f := f.(type) {
	case lit:
		return [][]int{{vt.indexOf(f)}}
	case and:
		var clauses [][]int
		for _, sub := range f {
			clauses = append(clauses, encodeCNF(sub, vt)...)
		}
		return clauses
	case or:
		var clauses [][]int
		var disjuncts []int
		for _, sub := range f {
			switch sub := sub.(type) {
			case lit:
				disjuncts = append(disjuncts, vt.indexOf(sub))
			case and:
				aux := vt.newAux()
				disjuncts = append(disjuncts, aux)
				for _, inner := range sub {
					innerClauses := encodeCNF(inner, vt)
					innerClauses[0] = append(innerClauses[0], -aux)
					clauses = append(clauses, innerClauses...)
				}
			default:
				panic("bf: or directly containing a non-literal, non-and subformula in NNF")
			}
		}
		return append(clauses, disjuncts)
	case trueConst:
		return [][]int{} // an always-true clause contributes nothing
	case falseConst:
		return [][]int{{}} // an always-false clause makes the whole encoding trivially UNSAT
	default:
		panic("bf: invalid NNF formula")
	}
}
