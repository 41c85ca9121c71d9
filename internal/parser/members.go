package parser

import (
	"slicec/internal/ast"
	"slicec/internal/source"
	"slicec/internal/token"
)

// parseFields parses the data members of a container until the terminator.
// Members may be separated by ';' or ','; since every field ends with its
// type, the separator is optional.
func (p *Parser) parseFields(terminator token.Kind) []ast.FieldID {
	var fields []ast.FieldID
	for !p.at(terminator) && !p.at(token.EOF) {
		before := p.lx.Peek().Span.Start
		fieldID, ok := p.parseField()
		if !ok {
			p.resyncListMember(terminator, before)
			continue
		}
		fields = append(fields, fieldID)
		if p.at(token.Semicolon) || p.at(token.Comma) {
			p.advance()
		}
	}
	return fields
}

// parseField parses Prelude ['tag' '(' Int ')'] Ident ':' TypeRef.
func (p *Parser) parseField() (ast.FieldID, bool) {
	pre := p.parsePrelude()
	start := p.lx.Peek().Span

	hasTag, tag, tagSpan, ok := p.parseTagModifier()
	if !ok {
		return ast.NoFieldID, false
	}

	name, ok := p.parseIdent("a field name")
	if !ok {
		return ast.NoFieldID, false
	}
	if _, ok := p.expect(token.Colon, "expected ':' after the field name"); !ok {
		return ast.NoFieldID, false
	}
	typeRef, ok := p.parseTypeRef()
	if !ok {
		return ast.NoFieldID, false
	}

	fieldID := p.builder.AddField(ast.Field{
		Decl:    p.decl(name, start.Cover(p.lastSpan), pre),
		Type:    typeRef,
		HasTag:  hasTag,
		Tag:     tag,
		TagSpan: tagSpan,
	})
	return fieldID, true
}

// parseTagModifier parses the optional 'tag' '(' Int ')' prefix.
func (p *Parser) parseTagModifier() (hasTag bool, tag int64, tagSpan source.Span, ok bool) {
	if !p.at(token.KwTag) {
		return false, 0, source.Span{}, true
	}
	kw := p.advance()
	if _, ok := p.expect(token.LParen, "expected '(' after 'tag'"); !ok {
		return false, 0, kw.Span, false
	}
	value, _, ok := p.parseInteger("a tag value")
	if !ok {
		return false, 0, kw.Span, false
	}
	closeTok, ok := p.expect(token.RParen, "expected ')' after the tag value")
	if !ok {
		return false, 0, kw.Span, false
	}
	return true, value, kw.Span.Cover(closeTok.Span), true
}

// resyncListMember recovers inside a member list delimited by terminator,
// guaranteeing progress: a stray closer that resyncMember refuses to eat is
// consumed here so the list loop cannot spin.
func (p *Parser) resyncListMember(terminator token.Kind, before uint32) {
	p.resyncMember()
	if !p.at(terminator) && !p.at(token.EOF) && p.lx.Peek().Span.Start == before {
		p.advance()
	}
}

// resyncMember recovers inside a member list: consume until a separator
// (eaten) or a closing bracket at the current depth (left for the caller,
// whose expect reports it if it closes the wrong thing).
func (p *Parser) resyncMember() {
	depth := 0
	for {
		switch p.lx.Peek().Kind {
		case token.EOF:
			return
		case token.Semicolon, token.Comma:
			p.advance()
			if depth == 0 {
				return
			}
		case token.LParen, token.LBrace:
			depth++
			p.advance()
		case token.RParen, token.RBrace:
			if depth == 0 {
				return
			}
			depth--
			p.advance()
		default:
			p.advance()
		}
	}
}

// parseEnumerators parses the body of an enum.
//
//	Enumerator := Prelude Ident ['(' fields ')'] ['=' Int]
func (p *Parser) parseEnumerators() []ast.EnumeratorID {
	var enumerators []ast.EnumeratorID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.lx.Peek().Span.Start
		enumeratorID, ok := p.parseEnumerator()
		if !ok {
			p.resyncListMember(token.RBrace, before)
			continue
		}
		enumerators = append(enumerators, enumeratorID)
		if p.at(token.Comma) || p.at(token.Semicolon) {
			p.advance()
		}
	}
	return enumerators
}

func (p *Parser) parseEnumerator() (ast.EnumeratorID, bool) {
	pre := p.parsePrelude()
	name, ok := p.parseIdent("an enumerator name")
	if !ok {
		return ast.NoEnumeratorID, false
	}

	var fields []ast.FieldID
	if p.at(token.LParen) {
		p.advance()
		p.pushScope(name.Value)
		fields = p.parseFields(token.RParen)
		p.popScopes(1)
		if _, ok := p.expect(token.RParen, "expected ')' to close the enumerator fields"); !ok {
			return ast.NoEnumeratorID, false
		}
	}

	hasValue := false
	var value int64
	var valueSpan source.Span
	if p.at(token.Equals) {
		p.advance()
		value, valueSpan, ok = p.parseInteger("an enumerator value")
		if !ok {
			return ast.NoEnumeratorID, false
		}
		hasValue = true
	}

	enumeratorID := p.builder.AddEnumerator(ast.Enumerator{
		Decl:      p.decl(name, name.Span.Cover(p.lastSpan), pre),
		HasValue:  hasValue,
		Value:     value,
		ValueSpan: valueSpan,
		Fields:    fields,
	})
	return enumeratorID, true
}

// parseOperations parses the body of an interface.
func (p *Parser) parseOperations() []ast.OperationID {
	var ops []ast.OperationID
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		before := p.lx.Peek().Span.Start
		opID, ok := p.parseOperation()
		if !ok {
			p.resyncListMember(token.RBrace, before)
			continue
		}
		ops = append(ops, opID)
	}
	return ops
}

// parseOperation parses
//
//	Prelude ['idempotent'] Ident '(' List<Parameter> ')' ['->' ReturnType] ';'
func (p *Parser) parseOperation() (ast.OperationID, bool) {
	pre := p.parsePrelude()
	start := p.lx.Peek().Span

	idempotent := false
	if p.at(token.KwIdempotent) {
		idempotent = true
		p.advance()
	}

	name, ok := p.parseIdent("an operation name")
	if !ok {
		return ast.NoOperationID, false
	}

	if _, ok := p.expect(token.LParen, "expected '(' after the operation name"); !ok {
		return ast.NoOperationID, false
	}
	p.pushScope(name.Value)
	params := p.parseParameterList()
	var returns []ast.ParameterID
	returnsTuple := false
	ok = true
	if _, closed := p.expect(token.RParen, "expected ')' to close the parameter list"); closed {
		returns, returnsTuple, ok = p.parseReturnType()
	}
	p.popScopes(1)
	if !ok {
		return ast.NoOperationID, false
	}
	p.expect(token.Semicolon, "expected ';' after the operation")

	opID := p.builder.AddOperation(ast.Operation{
		Decl:         p.decl(name, start.Cover(p.lastSpan), pre),
		Idempotent:   idempotent,
		Params:       params,
		Returns:      returns,
		ReturnsTuple: returnsTuple,
	})
	return opID, true
}

// parseParameterList parses comma-separated parameters until ')'.
func (p *Parser) parseParameterList() []ast.ParameterID {
	var params []ast.ParameterID
	for !p.at(token.RParen) && !p.at(token.EOF) {
		before := p.lx.Peek().Span.Start
		paramID, ok := p.parseParameter()
		if !ok {
			p.resyncListMember(token.RParen, before)
			continue
		}
		params = append(params, paramID)
		if p.at(token.Comma) {
			p.advance()
		} else if !p.at(token.RParen) {
			p.err("expected ',' or ')' after the parameter")
			p.resyncListMember(token.RParen, p.lx.Peek().Span.Start)
		}
	}
	return params
}

// parseParameter parses Prelude ['tag' '(' Int ')'] Ident ':' ['stream'] TypeRef.
func (p *Parser) parseParameter() (ast.ParameterID, bool) {
	pre := p.parsePrelude()
	start := p.lx.Peek().Span

	hasTag, tag, tagSpan, ok := p.parseTagModifier()
	if !ok {
		return ast.NoParameterID, false
	}

	name, ok := p.parseIdent("a parameter name")
	if !ok {
		return ast.NoParameterID, false
	}
	if _, ok := p.expect(token.Colon, "expected ':' after the parameter name"); !ok {
		return ast.NoParameterID, false
	}

	stream := false
	if p.at(token.KwStream) {
		stream = true
		p.advance()
	}

	typeRef, ok := p.parseTypeRef()
	if !ok {
		return ast.NoParameterID, false
	}

	paramID := p.builder.AddParameter(ast.Parameter{
		Decl:    p.decl(name, start.Cover(p.lastSpan), pre),
		Type:    typeRef,
		HasTag:  hasTag,
		Tag:     tag,
		TagSpan: tagSpan,
		Stream:  stream,
	})
	return paramID, true
}

// parseReturnType parses ['->' (AnnotatedTypeRef | '(' List<Parameter> ')')].
// A single return is an anonymous parameter; the tuple form requires names
// and, per the arity rule, at least two entries (checked in validation).
func (p *Parser) parseReturnType() (returns []ast.ParameterID, tuple bool, ok bool) {
	if !p.at(token.Arrow) {
		return nil, false, true
	}
	p.advance()

	if p.at(token.LParen) {
		p.advance()
		returns = p.parseParameterList()
		_, closed := p.expect(token.RParen, "expected ')' to close the return tuple")
		return returns, true, closed
	}

	start := p.lx.Peek().Span
	hasTag, tag, tagSpan, ok := p.parseTagModifier()
	if !ok {
		return nil, false, false
	}
	stream := false
	if p.at(token.KwStream) {
		stream = true
		p.advance()
	}
	typeRef, ok := p.parseTypeRef()
	if !ok {
		return nil, false, false
	}

	paramID := p.builder.AddParameter(ast.Parameter{
		Decl:    ast.Decl{Scope: p.scopeFQN(), Span: start.Cover(p.lastSpan), File: p.src},
		Type:    typeRef,
		HasTag:  hasTag,
		Tag:     tag,
		TagSpan: tagSpan,
		Stream:  stream,
	})
	return []ast.ParameterID{paramID}, false, true
}
