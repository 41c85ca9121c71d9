package parser

import (
	"slicec/internal/ast"
	"slicec/internal/token"
)

var primitiveByKind = map[token.Kind]ast.Primitive{
	token.KwBool:      ast.PrimBool,
	token.KwInt8:      ast.PrimInt8,
	token.KwUInt8:     ast.PrimUInt8,
	token.KwInt16:     ast.PrimInt16,
	token.KwUInt16:    ast.PrimUInt16,
	token.KwInt32:     ast.PrimInt32,
	token.KwUInt32:    ast.PrimUInt32,
	token.KwVarInt32:  ast.PrimVarInt32,
	token.KwVarUInt32: ast.PrimVarUInt32,
	token.KwInt64:     ast.PrimInt64,
	token.KwUInt64:    ast.PrimUInt64,
	token.KwVarInt62:  ast.PrimVarInt62,
	token.KwVarUInt62: ast.PrimVarUInt62,
	token.KwFloat32:   ast.PrimFloat32,
	token.KwFloat64:   ast.PrimFloat64,
	token.KwString:    ast.PrimString,
	token.KwAnyClass:  ast.PrimAnyClass,
}

// parseTypeRef parses LocalAttribute* TypeRefDef '?'?.
//
//	TypeRefDef := Primitive | Sequence '<' TypeRef '>'
//	            | Dictionary '<' TypeRef ',' TypeRef '>'
//	            | ScopedIdent | '::' ScopedIdent
func (p *Parser) parseTypeRef() (ast.TypeRefID, bool) {
	var attrs []ast.AttrID
	for p.at(token.LBracket) {
		if attrID, ok := p.parseLocalAttr(); ok {
			attrs = append(attrs, attrID)
		} else {
			return ast.NoTypeRefID, false
		}
	}

	tok := p.lx.Peek()
	ref := ast.TypeRef{
		Attrs: attrs,
		Span:  tok.Span,
		File:  p.src,
		Scope: p.scopeFQN(),
	}

	switch {
	case tok.IsPrimitive():
		p.advance()
		ref.Kind = ast.TypeRefPrimitive
		ref.Primitive = primitiveByKind[tok.Kind]

	case tok.Kind == token.KwSequence:
		p.advance()
		if _, ok := p.expect(token.LAngle, "expected '<' after 'Sequence'"); !ok {
			return ast.NoTypeRefID, false
		}
		elem, ok := p.parseTypeRef()
		if !ok {
			return ast.NoTypeRefID, false
		}
		if _, ok := p.expect(token.RAngle, "expected '>' to close the Sequence element type"); !ok {
			return ast.NoTypeRefID, false
		}
		ref.Kind = ast.TypeRefSequence
		ref.Elem = elem

	case tok.Kind == token.KwDictionary:
		p.advance()
		if _, ok := p.expect(token.LAngle, "expected '<' after 'Dictionary'"); !ok {
			return ast.NoTypeRefID, false
		}
		key, ok := p.parseTypeRef()
		if !ok {
			return ast.NoTypeRefID, false
		}
		if _, ok := p.expect(token.Comma, "expected ',' between the Dictionary key and value types"); !ok {
			return ast.NoTypeRefID, false
		}
		value, ok := p.parseTypeRef()
		if !ok {
			return ast.NoTypeRefID, false
		}
		if _, ok := p.expect(token.RAngle, "expected '>' to close the Dictionary types"); !ok {
			return ast.NoTypeRefID, false
		}
		ref.Kind = ast.TypeRefDictionary
		ref.Key = key
		ref.Value = value

	case tok.Kind == token.ColonColon:
		p.advance()
		name, ok := p.parseScopedIdent("a type name")
		if !ok {
			return ast.NoTypeRefID, false
		}
		ref.Kind = ast.TypeRefNamed
		ref.Name = name
		ref.Global = true
		ref.Span = tok.Span.Cover(name.Span)

	case tok.Kind == token.Ident:
		name, ok := p.parseScopedIdent("a type name")
		if !ok {
			return ast.NoTypeRefID, false
		}
		ref.Kind = ast.TypeRefNamed
		ref.Name = name
		ref.Span = name.Span

	default:
		p.err("expected a type")
		return ast.NoTypeRefID, false
	}

	if p.at(token.Question) {
		q := p.advance()
		ref.Optional = true
		ref.Span = ref.Span.Cover(q.Span)
	} else {
		ref.Span = ref.Span.Cover(p.lastSpan)
	}

	return p.builder.AddTypeRef(ref), true
}
