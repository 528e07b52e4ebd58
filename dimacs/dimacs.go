/*
Package dimacs reads CNF formulas in the DIMACS input format and
produces a *walksat.Formula.

A DIMACS CNF file consists of zero or more comment lines starting with
'c', a single problem line "p cnf <nvars> <nclauses>", and then a
whitespace-separated stream of signed integers forming clauses, each
terminated by a literal 0.
*/
package dimacs

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/caldonovan/walksat/walksat"
)

// Parse reads a DIMACS CNF stream from r and returns the corresponding
// Formula.
//
// An empty clause in the input (a 0 with no preceding literals) is not
// an error: it makes the problem trivially unsatisfiable, and Parse
// returns a Formula with Trivial set and a nil error, mirroring the
// teacher's convention of reporting UNSAT as a clean terminal state
// rather than a parse failure.
func Parse(r io.Reader) (*walksat.Formula, error) {
	br := bufio.NewReader(r)

	nvars, nclauses, err := readHeader(br)
	if err != nil {
		return nil, err
	}

	clauses := make([][]int, 0, nclauses)
	for {
		clause, ok, err := readClause(br, nvars)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if len(clause) == 0 {
			return &walksat.Formula{Trivial: true}, nil
		}
		clauses = append(clauses, clause)
	}

	if len(clauses) != nclauses {
		return nil, fmt.Errorf("dimacs: declared %d clauses, found %d", nclauses, len(clauses))
	}

	f, err := walksat.NewFormulaVars(clauses, nvars)
	if err != nil {
		return nil, fmt.Errorf("dimacs: %w", err)
	}
	return f, nil
}

// readHeader skips comment and other non-problem lines until it finds
// the problem line "p cnf <nvars> <nclauses>", then returns the parsed
// counts.
func readHeader(br *bufio.Reader) (nvars, nclauses int, err error) {
	for {
		line, err := br.ReadString('\n')
		if err != nil && line == "" {
			return 0, 0, fmt.Errorf("dimacs: could not read problem line: %w", err)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 || fields[0] == "c" {
			if err == io.EOF {
				return 0, 0, fmt.Errorf("dimacs: no problem line found")
			}
			continue
		}
		if fields[0] != "p" {
			if err == io.EOF {
				return 0, 0, fmt.Errorf("dimacs: no problem line found")
			}
			continue
		}
		if len(fields) != 4 || fields[1] != "cnf" {
			return 0, 0, fmt.Errorf("dimacs: malformed problem line %q", line)
		}
		nvars, err1 := strconv.Atoi(fields[2])
		if err1 != nil || nvars < 0 {
			return 0, 0, fmt.Errorf("dimacs: invalid variable count %q", fields[2])
		}
		nclauses, err2 := strconv.Atoi(fields[3])
		if err2 != nil || nclauses < 0 {
			return 0, 0, fmt.Errorf("dimacs: invalid clause count %q", fields[3])
		}
		return nvars, nclauses, nil
	}
}

// readClause reads one zero-terminated clause from br. ok is false only
// at a clean EOF before any literal of a new clause has been read; a
// clause with zero literals (an explicit empty clause) is reported as
// ok=true with a nil/empty slice, distinct from EOF.
func readClause(br *bufio.Reader, nvars int) (clause []int, ok bool, err error) {
	for {
		val, eof, err := readInt(br)
		if err != nil {
			return nil, false, err
		}
		if eof {
			if len(clause) != 0 {
				return nil, false, fmt.Errorf("dimacs: unterminated clause at EOF")
			}
			return nil, false, nil
		}
		if val == 0 {
			return clause, true, nil
		}
		if abs(val) > nvars {
			return nil, false, fmt.Errorf("dimacs: literal %d out of range for %d variables", val, nvars)
		}
		clause = append(clause, val)
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// readInt reads one whitespace-delimited, optionally-signed integer
// from br, skipping leading whitespace and any comment lines
// encountered while doing so. eof is true only when the stream ends
// before any digit is seen.
func readInt(br *bufio.Reader) (val int, eof bool, err error) {
	b, err := br.ReadByte()
	for err == nil && (isSpace(b) || b == 'c') {
		if b == 'c' {
			for err == nil && b != '\n' {
				b, err = br.ReadByte()
			}
		}
		b, err = br.ReadByte()
	}
	if err == io.EOF {
		return 0, true, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("dimacs: %w", err)
	}

	neg := false
	if b == '-' {
		neg = true
		b, err = br.ReadByte()
		if err != nil {
			return 0, false, fmt.Errorf("dimacs: unexpected end of input after '-'")
		}
	}
	if b < '0' || b > '9' {
		return 0, false, fmt.Errorf("dimacs: %q is not a digit", b)
	}
	for {
		val = 10*val + int(b-'0')
		b, err = br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, false, fmt.Errorf("dimacs: %w", err)
		}
		if b < '0' || b > '9' {
			break
		}
	}
	if neg {
		val = -val
	}
	return val, false, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
