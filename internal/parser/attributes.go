package parser

import (
	"slicec/internal/ast"
	"slicec/internal/diag"
	"slicec/internal/lexer"
	"slicec/internal/source"
	"slicec/internal/token"
)

// parseLocalAttr parses [name] or [name(args)].
func (p *Parser) parseLocalAttr() (ast.AttrID, bool) {
	open, _ := p.expect(token.LBracket, "expected '['")
	attr, ok := p.parseAttrBody(open.Span)
	if !ok {
		return ast.NoAttrID, false
	}
	closeTok, ok := p.expect(token.RBracket, "expected ']' to close the attribute")
	if !ok {
		return ast.NoAttrID, false
	}
	attr.Span = open.Span.Cover(closeTok.Span)
	return p.builder.AddAttr(attr), true
}

// parseFileAttr parses [[name]] or [[name(args)]].
func (p *Parser) parseFileAttr() (ast.AttrID, bool) {
	open, _ := p.expect(token.LLBracket, "expected '[['")
	attr, ok := p.parseAttrBody(open.Span)
	if !ok {
		return ast.NoAttrID, false
	}
	closeTok, ok := p.expect(token.RRBracket, "expected ']]' to close the file attribute")
	if !ok {
		return ast.NoAttrID, false
	}
	attr.Span = open.Span.Cover(closeTok.Span)
	return p.builder.AddAttr(attr), true
}

func (p *Parser) parseAttrBody(openSpan source.Span) (ast.Attr, bool) {
	name, ok := p.parseScopedIdent("an attribute directive")
	if !ok {
		return ast.Attr{}, false
	}
	attr := ast.Attr{Name: name, Span: openSpan.Cover(name.Span)}
	if !p.at(token.LParen) {
		return attr, true
	}
	p.advance() // '('
	for !p.at(token.RParen) && !p.at(token.EOF) {
		argTok := p.lx.Peek()
		switch argTok.Kind {
		case token.Ident:
			p.advance()
			attr.Args = append(attr.Args, ast.AttrArg{Value: argTok.Text, Span: argTok.Span})
		case token.StringLit:
			p.advance()
			value, err := lexer.DecodeString(argTok.Text)
			if err != nil {
				p.report(diag.Syntax, diag.SevError, argTok.Span, err.Error())
				value = argTok.Text
			}
			attr.Args = append(attr.Args, ast.AttrArg{Value: value, IsString: true, Span: argTok.Span})
		default:
			p.err("expected an identifier or string literal attribute argument")
			return attr, false
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, "expected ')' to close the attribute arguments"); !ok {
		return attr, false
	}
	return attr, true
}
