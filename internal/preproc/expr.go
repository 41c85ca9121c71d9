package preproc

import (
	"fmt"

	"slicec/internal/source"
)

// Expression evaluation for #if and #elif. The operators '&&' and '||' share
// one precedence level and associate to the left; an identifier is true iff
// it is currently defined.

type exprTokenKind uint8

const (
	exprIdent exprTokenKind = iota
	exprNot
	exprAnd
	exprOr
	exprLParen
	exprRParen
	exprEnd
)

type exprToken struct {
	kind exprTokenKind
	text string
	span source.Span
}

// parseExpression lexes and evaluates the conditional expression of the
// directive starting at hashStart. On a malformed expression it reports a
// diagnostic and returns ok=false; the caller recovers to DirectiveEnd.
func (p *Preprocessor) parseExpression(hashStart uint32) (value, ok bool) {
	tokens, ok := p.lexExpression()
	if !ok {
		return false, false
	}
	if len(tokens) == 1 {
		p.report(p.lineSpanFrom(hashStart), "expected an expression after the directive")
		return false, false
	}

	ev := exprEval{p: p, tokens: tokens}
	value, ok = ev.expr()
	if ok && ev.peek().kind != exprEnd {
		p.report(ev.peek().span, "unexpected token in preprocessor expression")
		return false, false
	}
	return value, ok
}

// lexExpression tokenizes the rest of the directive line.
func (p *Preprocessor) lexExpression() ([]exprToken, bool) {
	var tokens []exprToken
	for {
		p.skipHorizontal()
		if p.off >= p.limit || p.file.Content[p.off] == '\n' {
			break
		}
		b := p.file.Content[p.off]
		start := p.off
		switch {
		case isIdentStart(b):
			text := p.scanIdent()
			tokens = append(tokens, exprToken{kind: exprIdent, text: text, span: p.spanFrom(start)})
		case b == '!':
			p.off++
			tokens = append(tokens, exprToken{kind: exprNot, span: p.spanFrom(start)})
		case b == '&':
			if p.off+1 < p.limit && p.file.Content[p.off+1] == '&' {
				p.off += 2
				tokens = append(tokens, exprToken{kind: exprAnd, span: p.spanFrom(start)})
			} else {
				p.off++
				p.report(p.spanFrom(start), "unknown symbol '&', try using '&&' instead")
				return nil, false
			}
		case b == '|':
			if p.off+1 < p.limit && p.file.Content[p.off+1] == '|' {
				p.off += 2
				tokens = append(tokens, exprToken{kind: exprOr, span: p.spanFrom(start)})
			} else {
				p.off++
				p.report(p.spanFrom(start), "unknown symbol '|', try using '||' instead")
				return nil, false
			}
		case b == '(':
			p.off++
			tokens = append(tokens, exprToken{kind: exprLParen, span: p.spanFrom(start)})
		case b == ')':
			p.off++
			tokens = append(tokens, exprToken{kind: exprRParen, span: p.spanFrom(start)})
		case b == '/' && p.off+1 < p.limit && p.file.Content[p.off+1] == '/':
			// comment runs to the end of the directive line
			p.skipToLineEnd()
		default:
			p.off++
			p.report(p.spanFrom(start), fmt.Sprintf("unknown symbol '%c'", b))
			return nil, false
		}
	}
	tokens = append(tokens, exprToken{kind: exprEnd, span: p.spanFrom(p.off)})
	return tokens, true
}

func (p *Preprocessor) spanFrom(start uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: p.off}
}

type exprEval struct {
	p      *Preprocessor
	tokens []exprToken
	pos    int
}

func (ev *exprEval) peek() exprToken {
	return ev.tokens[ev.pos]
}

func (ev *exprEval) next() exprToken {
	t := ev.tokens[ev.pos]
	if ev.pos < len(ev.tokens)-1 {
		ev.pos++
	}
	return t
}

// expr := unary (('&&' | '||') unary)*
func (ev *exprEval) expr() (bool, bool) {
	value, ok := ev.unary()
	if !ok {
		return false, false
	}
	for {
		switch ev.peek().kind {
		case exprAnd:
			ev.next()
			rhs, ok := ev.unary()
			if !ok {
				return false, false
			}
			value = value && rhs
		case exprOr:
			ev.next()
			rhs, ok := ev.unary()
			if !ok {
				return false, false
			}
			value = value || rhs
		default:
			return value, true
		}
	}
}

// unary := '!'* term
func (ev *exprEval) unary() (bool, bool) {
	negate := false
	for ev.peek().kind == exprNot {
		ev.next()
		negate = !negate
	}
	value, ok := ev.term()
	if !ok {
		return false, false
	}
	return value != negate, true
}

// term := identifier | '(' expr ')'
func (ev *exprEval) term() (bool, bool) {
	switch tok := ev.peek(); tok.kind {
	case exprIdent:
		ev.next()
		return ev.p.Defined(tok.text), true
	case exprLParen:
		ev.next()
		value, ok := ev.expr()
		if !ok {
			return false, false
		}
		if ev.peek().kind != exprRParen {
			ev.p.report(ev.peek().span, "expected ')' in preprocessor expression")
			return false, false
		}
		ev.next()
		return value, true
	default:
		ev.p.report(tok.span, "expected an identifier or '(' in preprocessor expression")
		return false, false
	}
}
