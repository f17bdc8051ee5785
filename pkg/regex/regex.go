// Package regex compiles regular expressions over letters and digits into
// NFAs using a two stack shift/reduce parser and Thompson fragments.
//
// Syntax: an ASCII letter or digit is a symbol, $ is the empty word, + is
// union, a postfix * is Kleene star, parentheses group, and adjacent
// operands are concatenated. Concatenation binds tighter than union.
package regex

import (
	"fmt"

	"github.com/ha1tch/fa-toolkit/pkg/dfa"
	"github.com/ha1tch/fa-toolkit/pkg/fa"
	"github.com/ha1tch/fa-toolkit/pkg/nfa"
)

const (
	opUnion  = '+'
	opConcat = '.'
	opStar   = '*'
	opOpen   = '('
	opClose  = ')'
	epsilon  = '$'
)

// ParseError describes a malformed expression. It wraps fa.ErrParse.
type ParseError struct {
	Expr string
	Pos  int  // byte offset of Char, len(Expr) at end of input
	Char byte // offending character, 0 at end of input
	Prev byte // character before it, 0 at the start
	Msg  string
}

func (e *ParseError) Error() string {
	switch {
	case e.Char == 0:
		return fmt.Sprintf("regex %q: %s at end of input", e.Expr, e.Msg)
	case e.Prev == 0:
		return fmt.Sprintf("regex %q: %s: '%c' at position %d", e.Expr, e.Msg, e.Char, e.Pos)
	}
	return fmt.Sprintf("regex %q: %s: '%c' after '%c' at position %d", e.Expr, e.Msg, e.Char, e.Prev, e.Pos)
}

func (e *ParseError) Unwrap() error { return fa.ErrParse }

func isSymbol(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// endsOperand reports whether c can close an operand, so that a following
// symbol or group is concatenated to it.
func endsOperand(c byte) bool {
	return isSymbol(c) || c == epsilon || c == opClose || c == opStar
}

type parser struct {
	expr    string
	pos     int
	prev    byte
	ops     []byte
	frags   []nfa.Fragment
	symbols []fa.Symbol
}

func (p *parser) errorf(format string, args ...any) error {
	var c byte
	if p.pos < len(p.expr) {
		c = p.expr[p.pos]
	}
	return &ParseError{
		Expr: p.expr,
		Pos:  p.pos,
		Char: c,
		Prev: p.prev,
		Msg:  fmt.Sprintf(format, args...),
	}
}

func (p *parser) pop() nfa.Fragment {
	f := p.frags[len(p.frags)-1]
	p.frags = p.frags[:len(p.frags)-1]
	return f
}

// apply reduces the fragment stack with op.
func (p *parser) apply(op byte) error {
	switch op {
	case opStar:
		if len(p.frags) < 1 {
			return p.errorf("missing operand for '*'")
		}
		p.frags = append(p.frags, nfa.Star(p.pop()))
	case opConcat, opUnion:
		if len(p.frags) < 2 {
			return p.errorf("missing operand for '%c'", op)
		}
		b := p.pop()
		a := p.pop()
		if op == opConcat {
			p.frags = append(p.frags, nfa.Concat(a, b))
		} else {
			p.frags = append(p.frags, nfa.Union(a, b))
		}
	case opOpen:
		return p.errorf("unmatched '('")
	}
	return nil
}

// push stacks a binary operator. Pushing a union first reduces any union or
// concatenation on top; pushing a concatenation reduces only a
// concatenation.
func (p *parser) push(op byte) error {
	for len(p.ops) > 0 {
		top := p.ops[len(p.ops)-1]
		if top == opOpen || (top != op && top != opConcat) {
			break
		}
		p.ops = p.ops[:len(p.ops)-1]
		if err := p.apply(top); err != nil {
			return err
		}
	}
	p.ops = append(p.ops, op)
	return nil
}

func (p *parser) parse() (nfa.Fragment, error) {
	if p.expr == "" {
		return nfa.Fragment{}, p.errorf("empty expression")
	}
	seen := make(map[fa.Symbol]bool)
	for p.pos = 0; p.pos < len(p.expr); p.pos++ {
		c := p.expr[p.pos]
		switch {
		case isSymbol(c) || c == epsilon:
			if endsOperand(p.prev) {
				if err := p.push(opConcat); err != nil {
					return nfa.Fragment{}, err
				}
			}
			if c == epsilon {
				p.frags = append(p.frags, nfa.Base(fa.Epsilon))
				break
			}
			sym := fa.Symbol(string(c))
			if !seen[sym] {
				seen[sym] = true
				p.symbols = append(p.symbols, sym)
			}
			p.frags = append(p.frags, nfa.Base(sym))

		case c == opOpen:
			if endsOperand(p.prev) {
				if err := p.push(opConcat); err != nil {
					return nfa.Fragment{}, err
				}
			}
			p.ops = append(p.ops, opOpen)

		case c == opClose:
			if p.prev == opUnion || p.prev == opOpen {
				return nfa.Fragment{}, p.errorf("empty operand")
			}
			for {
				if len(p.ops) == 0 {
					return nfa.Fragment{}, p.errorf("unmatched ')'")
				}
				top := p.ops[len(p.ops)-1]
				p.ops = p.ops[:len(p.ops)-1]
				if top == opOpen {
					break
				}
				if err := p.apply(top); err != nil {
					return nfa.Fragment{}, err
				}
			}

		case c == opStar:
			if !endsOperand(p.prev) || p.prev == opStar {
				return nfa.Fragment{}, p.errorf("misplaced '*'")
			}
			if err := p.apply(opStar); err != nil {
				return nfa.Fragment{}, err
			}

		case c == opUnion:
			if !endsOperand(p.prev) {
				return nfa.Fragment{}, p.errorf("misplaced '+'")
			}
			if err := p.push(opUnion); err != nil {
				return nfa.Fragment{}, err
			}

		default:
			return nfa.Fragment{}, p.errorf("symbol not allowed")
		}
		p.prev = c
	}

	// p.pos is len(expr) here, so errors point at the end of input
	for len(p.ops) > 0 {
		op := p.ops[len(p.ops)-1]
		p.ops = p.ops[:len(p.ops)-1]
		if err := p.apply(op); err != nil {
			return nfa.Fragment{}, err
		}
	}
	if len(p.frags) != 1 {
		return nfa.Fragment{}, p.errorf("expected one expression, found %d", len(p.frags))
	}
	return p.frags[0], nil
}

// Parse compiles expr into a Thompson fragment and returns it with the
// symbols that occur in expr.
func Parse(expr string) (nfa.Fragment, fa.Alphabet, error) {
	p := &parser{expr: expr}
	f, err := p.parse()
	if err != nil {
		return nfa.Fragment{}, nil, err
	}
	return f, fa.NewAlphabet(p.symbols...), nil
}

// Compile returns an NFA accepting the language of expr. Its alphabet is
// exactly the symbols occurring in expr and it has a single initial state.
func Compile(expr string) (*nfa.NFA, error) {
	f, alphabet, err := Parse(expr)
	if err != nil {
		return nil, err
	}
	return f.NFA(alphabet), nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(expr string) *nfa.NFA {
	n, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return n
}

// CompileDFA compiles expr, determinizes the result and minimizes it.
func CompileDFA(expr string) (*dfa.DFA, error) {
	n, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	d, err := n.ToDFA()
	if err != nil {
		return nil, fmt.Errorf("determinize %q: %w", expr, err)
	}
	m, err := d.Minify()
	if err != nil {
		return nil, fmt.Errorf("minimize %q: %w", expr, err)
	}
	return m, nil
}
