package dimacs

import (
	"strings"
	"testing"
)

func TestParseBasicFormula(t *testing.T) {
	in := "c a comment\np cnf 4 3\n1 2 0\n3 0\n-2 -3 4 0\n"
	f, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if f.Trivial {
		t.Fatal("formula should not be Trivial")
	}
	if got, want := f.NumVars(), 4; got != want {
		t.Errorf("NumVars() = %d, want %d", got, want)
	}
	if got, want := f.NumClauses(), 3; got != want {
		t.Errorf("NumClauses() = %d, want %d", got, want)
	}
	want := [][]int32{{1, 2}, {3}, {-2, -3, 4}}
	for k, wc := range want {
		got := f.Clause(k)
		if len(got) != len(wc) {
			t.Fatalf("clause %d = %v, want %v", k, got, wc)
		}
		for i := range wc {
			if got[i] != wc[i] {
				t.Fatalf("clause %d = %v, want %v", k, got, wc)
			}
		}
	}
}

func TestParseClausesSpanningLines(t *testing.T) {
	in := "p cnf 3 1\n1\n-2\n3\n0\n"
	f, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := f.NumClauses(), 1; got != want {
		t.Fatalf("NumClauses() = %d, want %d", got, want)
	}
}

func TestParseEmptyClauseIsTrivial(t *testing.T) {
	in := "p cnf 0 1\n0\n"
	f, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !f.Trivial {
		t.Fatal("expected Trivial for an empty clause")
	}
}

func TestParseRejectsClauseCountMismatch(t *testing.T) {
	in := "p cnf 2 2\n1 2 0\n"
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected an error for a declared/observed clause count mismatch")
	}
}

func TestParseRejectsMalformedProblemLine(t *testing.T) {
	in := "p cnf notanumber 2\n1 0\n"
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected an error for a malformed problem line")
	}
}

func TestParseRejectsOutOfRangeLiteral(t *testing.T) {
	in := "p cnf 2 1\n5 0\n"
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected an error for a literal exceeding the declared variable count")
	}
}

func TestParseRejectsUnterminatedClauseAtEOF(t *testing.T) {
	in := "p cnf 2 1\n1 2"
	if _, err := Parse(strings.NewReader(in)); err == nil {
		t.Fatal("expected an error for an unterminated clause at EOF")
	}
}

func TestParsePreservesLiteralSequenceAndPartition(t *testing.T) {
	in := "p cnf 5 2\n1 -2 3 0\n-4 5 0\n"
	f, err := Parse(strings.NewReader(in))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got, want := f.Clause(0), []int32{1, -2, 3}; !equalLits(got, want) {
		t.Errorf("clause 0 = %v, want %v", got, want)
	}
	if got, want := f.Clause(1), []int32{-4, 5}; !equalLits(got, want) {
		t.Errorf("clause 1 = %v, want %v", got, want)
	}
}

func equalLits(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
