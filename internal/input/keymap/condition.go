package keymap

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrBadCondition is returned for malformed "when" expressions.
var ErrBadCondition = errors.New("invalid condition")

// Condition is a parsed "when" expression.
type Condition interface {
	Eval(ctx *LookupContext) bool
}

type (
	trueCond  struct{}
	keyCond   struct{ name string }
	notCond   struct{ c Condition }
	andCond   struct{ l, r Condition }
	orCond    struct{ l, r Condition }
	equalCond struct {
		name, value string
		negate      bool
	}
)

func (trueCond) Eval(*LookupContext) bool { return true }

func (c keyCond) Eval(ctx *LookupContext) bool {
	if ctx.Conditions[c.name] {
		return true
	}
	v, ok := ctx.Variables[c.name]
	return ok && v != "" && v != "false"
}

func (c notCond) Eval(ctx *LookupContext) bool { return !c.c.Eval(ctx) }
func (c andCond) Eval(ctx *LookupContext) bool { return c.l.Eval(ctx) && c.r.Eval(ctx) }
func (c orCond) Eval(ctx *LookupContext) bool  { return c.l.Eval(ctx) || c.r.Eval(ctx) }

func (c equalCond) Eval(ctx *LookupContext) bool {
	v, ok := ctx.Variables[c.name]
	if !ok {
		if b, set := ctx.Conditions[c.name]; set {
			v, ok = fmt.Sprint(b), true
		}
	}
	eq := ok && v == c.value
	return eq != c.negate
}

// ParseCondition parses a "when" expression. An empty expression is
// always true.
func ParseCondition(expr string) (Condition, error) {
	if strings.TrimSpace(expr) == "" {
		return trueCond{}, nil
	}
	p := &condParser{toks: tokenize(expr)}
	c, err := p.parseOr()
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrBadCondition, expr, err)
	}
	if p.pos != len(p.toks) {
		return nil, fmt.Errorf("%w %q: unexpected %q", ErrBadCondition, expr, p.toks[p.pos])
	}
	return c, nil
}

type condParser struct {
	toks []string
	pos  int
}

func (p *condParser) peek() string {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return ""
}

func (p *condParser) next() string {
	t := p.peek()
	p.pos++
	return t
}

func (p *condParser) parseOr() (Condition, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek() == "||" {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orCond{left, right}
	}
	return left, nil
}

func (p *condParser) parseAnd() (Condition, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek() == "&&" {
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andCond{left, right}
	}
	return left, nil
}

func (p *condParser) parseUnary() (Condition, error) {
	switch t := p.peek(); t {
	case "!":
		p.next()
		c, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notCond{c}, nil
	case "(":
		p.next()
		c, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.next() != ")" {
			return nil, errors.New("missing )")
		}
		return c, nil
	case "", ")", "&&", "||", "==", "!=":
		return nil, fmt.Errorf("unexpected %q", t)
	}

	name := p.next()
	switch op := p.peek(); op {
	case "==", "!=":
		p.next()
		value := p.next()
		if value == "" || isOperator(value) {
			return nil, fmt.Errorf("missing value after %s", op)
		}
		return equalCond{name: name, value: unquote(value), negate: op == "!="}, nil
	}
	return keyCond{name}, nil
}

func isOperator(t string) bool {
	switch t {
	case "!", "(", ")", "&&", "||", "==", "!=":
		return true
	}
	return false
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// tokenize splits an expression into identifiers, quoted strings and
// operators.
func tokenize(expr string) []string {
	var toks []string
	rs := []rune(expr)
	for i := 0; i < len(rs); {
		r := rs[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(' || r == ')':
			toks = append(toks, string(r))
			i++
		case i+1 < len(rs) && (string(rs[i:i+2]) == "&&" || string(rs[i:i+2]) == "||" ||
			string(rs[i:i+2]) == "==" || string(rs[i:i+2]) == "!="):
			toks = append(toks, string(rs[i:i+2]))
			i += 2
		case r == '!':
			toks = append(toks, "!")
			i++
		case r == '\'' || r == '"':
			j := i + 1
			for j < len(rs) && rs[j] != r {
				j++
			}
			if j < len(rs) {
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j
		default:
			j := i
			for j < len(rs) && !unicode.IsSpace(rs[j]) && !strings.ContainsRune("()!&|=", rs[j]) {
				j++
			}
			if j == i {
				// Lone '&', '|' or '='.
				j++
			}
			toks = append(toks, string(rs[i:j]))
			i = j
		}
	}
	return toks
}
