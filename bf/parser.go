package bf

import (
	"fmt"
	"io"
	"text/scanner"
)

// lexer wraps text/scanner.Scanner to give the recursive-descent parser
// below one token of lookahead (tok) and an explicit done flag, rather
// than having every parse* function re-check scanner.EOF itself.
type lexer struct {
	s    scanner.Scanner
	tok  string
	done bool
}

func newLexer(r io.Reader) *lexer {
	l := &lexer{}
	l.s.Init(r)
	l.advance()
	return l
}

func (l *lexer) advance() {
	if l.done {
		return
	}
	l.done = l.s.Scan() == scanner.EOF
	l.tok = l.s.TokenText()
}

func isBinaryOp(tok string) bool {
	return tok == "=" || tok == "->" || tok == "|" || tok == "&"
}

// Parse reads a boolean formula from r and returns the corresponding
// Formula.
//
// Operators, from lowest to highest precedence:
//
//   - "=" for equivalence
//   - "->" for implication
//   - "|" for disjunction
//   - "&" for conjunction
//   - "^" for negation (unary, binds tighter than any of the above)
//
// Parentheses group subformulas as usual.
func Parse(r io.Reader) (Formula, error) {
	l := newLexer(r)
	return parseEquiv(l)
}

func parseEquiv(l *lexer) (Formula, error) {
	if l.done {
		return nil, fmt.Errorf("bf: expected expression, found EOF at %s", l.s.Pos())
	}
	if isBinaryOp(l.tok) {
		return nil, fmt.Errorf("bf: unexpected token %q at %s", l.tok, l.s.Pos())
	}
	lhs, err := parseImplies(l)
	if err != nil {
		return nil, err
	}
	if l.done || l.tok != "=" {
		return lhs, nil
	}
	l.advance()
	if l.done {
		return nil, fmt.Errorf("bf: unexpected EOF after \"=\"")
	}
	rhs, err := parseEquiv(l)
	if err != nil {
		return nil, err
	}
	return Eq(lhs, rhs), nil
}

func parseImplies(l *lexer) (Formula, error) {
	lhs, err := parseOr(l)
	if err != nil {
		return nil, err
	}
	if l.done || l.tok != "-" {
		return lhs, nil
	}
	l.advance()
	if l.done {
		return nil, fmt.Errorf("bf: unexpected EOF after \"-\"")
	}
	if l.tok != ">" {
		return nil, fmt.Errorf("bf: invalid token %q at %s", "-"+l.tok, l.s.Pos())
	}
	l.advance()
	if l.done {
		return nil, fmt.Errorf("bf: unexpected EOF after \"->\"")
	}
	rhs, err := parseImplies(l)
	if err != nil {
		return nil, err
	}
	return Implies(lhs, rhs), nil
}

func parseOr(l *lexer) (Formula, error) {
	lhs, err := parseAnd(l)
	if err != nil {
		return nil, err
	}
	if l.done || l.tok != "|" {
		return lhs, nil
	}
	l.advance()
	if l.done {
		return nil, fmt.Errorf("bf: unexpected EOF after \"|\"")
	}
	rhs, err := parseOr(l)
	if err != nil {
		return nil, err
	}
	return Or(lhs, rhs), nil
}

func parseAnd(l *lexer) (Formula, error) {
	lhs, err := parseNot(l)
	if err != nil {
		return nil, err
	}
	if l.done || l.tok != "&" {
		return lhs, nil
	}
	l.advance()
	if l.done {
		return nil, fmt.Errorf("bf: unexpected EOF after \"&\"")
	}
	rhs, err := parseAnd(l)
	if err != nil {
		return nil, err
	}
	return And(lhs, rhs), nil
}

func parseNot(l *lexer) (Formula, error) {
	if isBinaryOp(l.tok) {
		return nil, fmt.Errorf("bf: unexpected token %q at %s", l.tok, l.s.Pos())
	}
	if l.tok != "^" {
		return parseAtom(l)
	}
	l.advance()
	if l.done {
		return nil, fmt.Errorf("bf: unexpected EOF after \"^\"")
	}
	sub, err := parseNot(l)
	if err != nil {
		return nil, err
	}
	return Not(sub), nil
}

func parseAtom(l *lexer) (Formula, error) {
	if isBinaryOp(l.tok) || l.tok == ")" {
		return nil, fmt.Errorf("bf: unexpected token %q at %s", l.tok, l.s.Pos())
	}
	if l.tok != "(" {
		name := l.tok
		l.advance()
		return Var(name), nil
	}
	l.advance()
	inner, err := parseEquiv(l)
	if err != nil {
		return nil, err
	}
	if l.done {
		return nil, fmt.Errorf("bf: expected closing parenthesis, found EOF at %s", l.s.Pos())
	}
	if l.tok != ")" {
		return nil, fmt.Errorf("bf: expected closing parenthesis, found %q at %s", l.tok, l.s.Pos())
	}
	l.advance()
	return inner, nil
}
