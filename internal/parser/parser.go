// Package parser turns contract source text into the small s-expression
// tree internal/eval walks. There is no reference implementation for this
// in the example pack — the execution-context core treats parsing as an
// external collaborator — so this is a compact, hand-written reader rather
// than an adaptation of existing code.
package parser

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/empower1/contractvm/internal/types"
	"github.com/empower1/contractvm/internal/vm"
)

// Expr is a single parsed node: either a literal value, a bare symbol
// (a variable or function name reference), or a parenthesized list of
// child expressions.
type Expr struct {
	Atom   *types.Value
	Symbol string
	List   []*Expr
}

// MatchAtomValue implements vm.Expression: it reports the node's literal
// value, if it is one. Symbols and lists are not atom values — they must
// be evaluated to produce one.
func (e *Expr) MatchAtomValue() (types.Value, bool) {
	if e.Atom == nil {
		return types.Value{}, false
	}
	return *e.Atom, true
}

// IsSymbol reports whether e is a bare symbol, and returns its name.
func (e *Expr) IsSymbol() (string, bool) {
	if e.Atom != nil || e.List != nil {
		return "", false
	}
	return e.Symbol, true
}

// Parser implements vm.Parser over Expr.
type Parser struct{}

// New returns a ready-to-use Parser.
func New() *Parser { return &Parser{} }

// Parse reads every top-level form in source and returns each as a
// vm.Expression.
func (p *Parser) Parse(source string) ([]vm.Expression, error) {
	tokens := tokenize(source)
	var out []vm.Expression
	pos := 0
	for pos < len(tokens) {
		expr, next, err := parseExpr(tokens, pos)
		if err != nil {
			return nil, vm.NewParseError(err.Error())
		}
		out = append(out, expr)
		pos = next
	}
	return out, nil
}

func tokenize(source string) []string {
	var tokens []string
	var current strings.Builder
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for _, r := range source {
		switch {
		case r == '(' || r == ')':
			flush()
			tokens = append(tokens, string(r))
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func parseExpr(tokens []string, pos int) (*Expr, int, error) {
	if pos >= len(tokens) {
		return nil, pos, fmt.Errorf("unexpected end of input")
	}

	tok := tokens[pos]
	switch tok {
	case "(":
		pos++
		var list []*Expr
		for {
			if pos >= len(tokens) {
				return nil, pos, fmt.Errorf("unterminated list")
			}
			if tokens[pos] == ")" {
				pos++
				return &Expr{List: list}, pos, nil
			}
			child, next, err := parseExpr(tokens, pos)
			if err != nil {
				return nil, pos, err
			}
			list = append(list, child)
			pos = next
		}
	case ")":
		return nil, pos, fmt.Errorf("unexpected )")
	default:
		return atomOrSymbol(tok), pos + 1, nil
	}
}

func atomOrSymbol(tok string) *Expr {
	if tok == "true" {
		v := types.BoolValue(true)
		return &Expr{Atom: &v}
	}
	if tok == "false" {
		v := types.BoolValue(false)
		return &Expr{Atom: &v}
	}
	if tok == "none" {
		v := types.NoneValue()
		return &Expr{Atom: &v}
	}
	if n, ok := new(big.Int).SetString(tok, 10); ok {
		v := types.IntValue(n)
		return &Expr{Atom: &v}
	}
	if strings.HasPrefix(tok, "did:key:") {
		if p, err := types.PrincipalFromDID(tok); err == nil {
			v := types.PrincipalValue(p)
			return &Expr{Atom: &v}
		}
	}
	return &Expr{Symbol: tok}
}
