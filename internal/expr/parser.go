package expr

import (
	"fmt"

	"github.com/erikmannerfelt/manus/internal/value"
)

// Builtin call names recognized by the expression language. The evaluator
// resolves them; the parser accepts any call syntactically.
const (
	BuiltinRound = "round"
	BuiltinPow   = "pow"
	BuiltinE     = "E"
)

// Parse parses raw expression text (marker already stripped) into an AST.
func Parse(raw string) (Expr, error) {
	tokens, err := tokenize(raw)
	if err != nil {
		return nil, err
	}
	p := &parser{tokens: tokens}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.current(); tok.kind != tokenEOF {
		return nil, &SyntaxError{Pos: tok.pos, Message: fmt.Sprintf("unexpected %s after expression", tok.describe())}
	}
	return node, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) current() token {
	return p.tokens[p.pos]
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	if tok.kind != tokenEOF {
		p.pos++
	}
	return tok
}

// parseExpr handles '+' and '-', left-associative.
func (p *parser) parseExpr() (Expr, error) {
	lhs, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current().kind {
		case tokenPlus:
			p.advance()
			rhs, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			lhs = &BinaryExpr{Op: "+", LHS: lhs, RHS: rhs}
		case tokenMinus:
			p.advance()
			rhs, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			lhs = &BinaryExpr{Op: "-", LHS: lhs, RHS: rhs}
		default:
			return lhs, nil
		}
	}
}

// parseTerm handles '*' and '/', binding tighter than '+' and '-'.
func (p *parser) parseTerm() (Expr, error) {
	lhs, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current().kind {
		case tokenStar:
			p.advance()
			rhs, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			lhs = &BinaryExpr{Op: "*", LHS: lhs, RHS: rhs}
		case tokenSlash:
			p.advance()
			rhs, err := p.parseFactor()
			if err != nil {
				return nil, err
			}
			lhs = &BinaryExpr{Op: "/", LHS: lhs, RHS: rhs}
		default:
			return lhs, nil
		}
	}
}

// parseFactor handles numbers, identifier references, calls and
// parenthesized expressions. There is no unary-minus production.
func (p *parser) parseFactor() (Expr, error) {
	tok := p.advance()
	switch tok.kind {
	case tokenNumber:
		return &NumberLit{Value: tok.num}, nil
	case tokenIdent:
		if p.current().kind == tokenLParen {
			return p.parseCall(tok.text)
		}
		return &Ref{Path: value.ParsePath(tok.text)}, nil
	case tokenLParen:
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if closing := p.advance(); closing.kind != tokenRParen {
			return nil, &SyntaxError{Pos: closing.pos, Message: fmt.Sprintf("expected ')', got %s", closing.describe())}
		}
		return inner, nil
	case tokenMinus:
		// The grammar has no unary minus; give the documented spelling.
		return nil, &SyntaxError{Pos: tok.pos, Message: "negative literals are not supported; write 0-1 instead of -1"}
	default:
		return nil, &SyntaxError{Pos: tok.pos, Message: fmt.Sprintf("expected a number, key or '(', got %s", tok.describe())}
	}
}

func (p *parser) parseCall(name string) (Expr, error) {
	p.advance() // consume '('
	call := &CallExpr{Name: name}
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)

		switch tok := p.advance(); tok.kind {
		case tokenComma:
			continue
		case tokenRParen:
			return call, nil
		default:
			return nil, &SyntaxError{Pos: tok.pos, Message: fmt.Sprintf("expected ',' or ')' in call to %s, got %s", name, tok.describe())}
		}
	}
}
