package parser

import (
	"strconv"

	"slicec/internal/ast"
	"slicec/internal/diag"
	"slicec/internal/source"
	"slicec/internal/token"
)

// advance consumes the next token and tracks lastSpan.
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// diagSpan returns the best span for a diagnostic at the current position.
// At EOF the zero-length span after the last consumed token reads better
// than the empty EOF span.
func (p *Parser) diagSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect consumes a token of kind k or reports a syntax error.
func (p *Parser) expect(k token.Kind, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	sp := p.diagSpan()
	p.report(diag.Syntax, diag.SevError, sp, msg)
	return token.Token{Kind: token.Invalid, Span: sp}, false
}

func (p *Parser) err(msg string) {
	p.report(diag.Syntax, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) {
	if p.opts.Reporter == nil {
		return
	}
	if sev == diag.SevError {
		p.opts.CurrentErrors++
	}
	if !p.opts.Enough() {
		p.opts.Reporter.Report(code, sev, sp, msg, nil)
	}
}

// parseIdent expects a bare identifier. Reserved keywords are rejected with
// a dedicated message since they are the common mistake.
func (p *Parser) parseIdent(what string) (ast.Ident, bool) {
	tok := p.lx.Peek()
	if tok.Kind == token.Ident {
		p.advance()
		return ast.Ident{Value: tok.Text, Span: tok.Span}, true
	}
	if tok.IsKeyword() {
		p.report(diag.Syntax, diag.SevError, tok.Span,
			"the keyword '"+tok.Text+"' cannot be used as "+what)
		p.advance()
		return ast.Ident{Value: tok.Text, Span: tok.Span}, false
	}
	p.err("expected " + what)
	return ast.Ident{}, false
}

// parseScopedIdent parses Ident ('::' Ident)* and returns the '::'-joined
// form together with the covering span.
func (p *Parser) parseScopedIdent(what string) (ast.Ident, bool) {
	first, ok := p.parseIdent(what)
	if !ok {
		return first, false
	}
	value := first.Value
	span := first.Span
	for p.at(token.ColonColon) {
		p.advance()
		next, ok := p.parseIdent(what)
		if !ok {
			return ast.Ident{Value: value, Span: span}, false
		}
		value += "::" + next.Value
		span = span.Cover(next.Span)
	}
	return ast.Ident{Value: value, Span: span}, true
}

// parseInteger parses an optionally negated integer literal.
func (p *Parser) parseInteger(what string) (int64, source.Span, bool) {
	negative := false
	span := p.lx.Peek().Span
	if p.at(token.Minus) {
		negative = true
		p.advance()
	}
	tok, ok := p.expect(token.IntLit, "expected "+what)
	if !ok {
		return 0, span, false
	}
	span = span.Cover(tok.Span)
	value, err := strconv.ParseInt(tok.Text, 10, 64)
	if err != nil {
		p.report(diag.Syntax, diag.SevError, span, "integer literal '"+tok.Text+"' is out of range")
		return 0, span, false
	}
	if negative {
		value = -value
	}
	return value, span, true
}

// resyncDefinition recovers after a failed definition: it consumes tokens
// until a ';' at the current nesting depth (eaten) or the '}' that closes
// the enclosing container (left for the caller).
func (p *Parser) resyncDefinition() {
	depth := 0
	for {
		switch p.lx.Peek().Kind {
		case token.EOF:
			return
		case token.Semicolon:
			if depth == 0 {
				p.advance()
				return
			}
			p.advance()
		case token.LBrace:
			depth++
			p.advance()
		case token.RBrace:
			if depth == 0 {
				return
			}
			depth--
			if depth == 0 {
				p.advance()
				return
			}
			p.advance()
		default:
			p.advance()
		}
	}
}

// prelude is the doc comment and local attributes preceding a definition.
type prelude struct {
	docLines []string
	docSpan  source.Span
	hasDoc   bool
	attrs    []ast.AttrID
}

// parsePrelude collects doc comments (from token trivia) and local
// attributes until a non-attribute token is reached.
func (p *Parser) parsePrelude() prelude {
	var pre prelude
	for {
		tok := p.lx.Peek()
		if lines := tok.DocText(); len(lines) > 0 {
			pre.docLines = append(pre.docLines, lines...)
			if sp, ok := tok.DocSpan(); ok {
				if !pre.hasDoc {
					pre.docSpan = sp
				} else {
					pre.docSpan = pre.docSpan.Cover(sp)
				}
			}
			pre.hasDoc = true
		}
		if tok.Kind != token.LBracket {
			return pre
		}
		if attrID, ok := p.parseLocalAttr(); ok {
			pre.attrs = append(pre.attrs, attrID)
		} else {
			return pre
		}
	}
}

// makeDoc interns the prelude's doc comment, reporting malformed tags.
func (p *Parser) makeDoc(pre prelude) ast.DocID {
	if !pre.hasDoc {
		return ast.NoDocID
	}
	doc, problems := ast.ParseDocComment(pre.docLines, pre.docSpan)
	for _, problem := range problems {
		p.report(diag.Unknown, diag.SevWarning, pre.docSpan, problem)
	}
	return p.builder.AddDoc(doc)
}

// decl assembles the shared declaration header for the current scope.
func (p *Parser) decl(name ast.Ident, span source.Span, pre prelude) ast.Decl {
	return ast.Decl{
		Name:  name,
		Scope: p.scopeFQN(),
		Span:  span,
		File:  p.src,
		Doc:   p.makeDoc(pre),
		Attrs: pre.attrs,
	}
}
