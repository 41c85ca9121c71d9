package parser

import (
	"strings"

	"slicec/internal/ast"
	"slicec/internal/diag"
	"slicec/internal/source"
	"slicec/internal/token"
)

// parseModule parses a block module or, at the top level, a file-level
// module that owns the rest of the file.
//
//	Module      := Prelude 'module' ScopedIdent '{' Definition* '}'
//	FileLevelMod := Prelude 'module' ScopedIdent ';' Definition*
func (p *Parser) parseModule(pre prelude) (def ast.DefID, fileLevel bool, ok bool) {
	kw := p.advance() // 'module'
	name, ok := p.parseScopedIdent("a module name")
	if !ok {
		return ast.NoDef, false, false
	}

	segments := strings.Split(name.Value, "::")

	var defs []ast.DefID
	var endSpan = name.Span

	switch p.lx.Peek().Kind {
	case token.LBrace:
		p.advance()
		for _, segment := range segments {
			p.pushScope(segment)
		}
		defs = p.parseDefinitions()
		p.popScopes(len(segments))
		closeTok, closed := p.expect(token.RBrace, "expected '}' to close the module body")
		if closed {
			endSpan = closeTok.Span
		}
	case token.Semicolon:
		semi := p.advance()
		if len(p.scopes) > 0 {
			p.err("a file-level module cannot be nested inside another module")
			return ast.NoDef, false, false
		}
		fileLevel = true
		for _, segment := range segments {
			p.pushScope(segment)
		}
		defs = p.parseDefinitions()
		p.popScopes(len(segments))
		endSpan = semi.Span.Cover(p.lastSpan)
	default:
		p.err("expected '{' or ';' after the module name")
		return ast.NoDef, false, false
	}

	span := kw.Span.Cover(endSpan)
	return p.buildModuleChain(segments, name, span, pre, defs), fileLevel, true
}

// buildModuleChain desugars 'module A::B::C' into nested module nodes, one
// per segment, innermost holding the definitions. The doc comment and
// attributes of the declaration belong to the innermost module.
func (p *Parser) buildModuleChain(segments []string, name ast.Ident, span source.Span, pre prelude, defs []ast.DefID) ast.DefID {
	scope := p.scopeFQN()
	// scopes of the segments, outermost first
	scopes := make([]string, len(segments))
	for i, segment := range segments {
		scopes[i] = scope
		scope = ast.JoinScope(scope, segment)
	}

	inner := defs
	var def ast.DefID
	for i := len(segments) - 1; i >= 0; i-- {
		decl := ast.Decl{
			Name:  ast.Ident{Value: segments[i], Span: name.Span},
			Scope: scopes[i],
			Span:  span,
			File:  p.src,
		}
		if i == len(segments)-1 {
			decl.Doc = p.makeDoc(pre)
			decl.Attrs = pre.attrs
		}
		modID := p.builder.AddModule(ast.Module{Decl: decl, Defs: inner})
		def = ast.DefID{Kind: ast.KindModule, Index: uint32(modID)}
		inner = []ast.DefID{def}
	}
	return def
}

// parseDefinitions parses the body of a module until '}' or EOF.
func (p *Parser) parseDefinitions() []ast.DefID {
	var defs []ast.DefID
	for {
		if p.at(token.RBrace) || p.at(token.EOF) {
			return defs
		}
		def, ok := p.parseDefinition()
		if !ok {
			p.resyncDefinition()
			continue
		}
		defs = append(defs, def)
	}
}

// parseDefinition dispatches on the keyword that starts a definition.
//
//	Definition := Module | Struct | Exception | Class | Interface | Enum
//	            | Trait | CustomType | TypeAlias
func (p *Parser) parseDefinition() (ast.DefID, bool) {
	pre := p.parsePrelude()
	switch p.lx.Peek().Kind {
	case token.KwModule:
		def, _, ok := p.parseModule(pre)
		return def, ok
	case token.KwCompact, token.KwStruct:
		return p.parseStruct(pre)
	case token.KwException:
		return p.parseException(pre)
	case token.KwClass:
		return p.parseClass(pre)
	case token.KwInterface:
		return p.parseInterface(pre)
	case token.KwUnchecked, token.KwEnum:
		return p.parseEnum(pre)
	case token.KwTrait:
		return p.parseTrait(pre)
	case token.KwCustom:
		return p.parseCustom(pre)
	case token.KwType:
		return p.parseAlias(pre)
	default:
		p.err("expected a definition")
		return ast.NoDef, false
	}
}

// parseStruct parses Prelude ['compact'] 'struct' Ident '{' fields '}'.
func (p *Parser) parseStruct(pre prelude) (ast.DefID, bool) {
	start := p.lx.Peek().Span
	compact := false
	if p.at(token.KwCompact) {
		compact = true
		p.advance()
		if !p.at(token.KwStruct) {
			p.err("expected 'struct' after 'compact'")
			return ast.NoDef, false
		}
	}
	p.advance() // 'struct'
	name, ok := p.parseIdent("a struct name")
	if !ok {
		return ast.NoDef, false
	}
	if _, ok := p.expect(token.LBrace, "expected '{' to open the struct body"); !ok {
		return ast.NoDef, false
	}
	p.pushScope(name.Value)
	fields := p.parseFields(token.RBrace)
	p.popScopes(1)
	closeTok, _ := p.expect(token.RBrace, "expected '}' to close the struct body")

	structID := p.builder.AddStruct(ast.Struct{
		Decl:    p.decl(name, start.Cover(closeTok.Span), pre),
		Compact: compact,
		Fields:  fields,
	})
	return ast.DefID{Kind: ast.KindStruct, Index: uint32(structID)}, true
}

// parseException parses Prelude 'exception' Ident [':' bases] '{' fields '}'.
func (p *Parser) parseException(pre prelude) (ast.DefID, bool) {
	start := p.advance().Span // 'exception'
	name, ok := p.parseIdent("an exception name")
	if !ok {
		return ast.NoDef, false
	}
	bases, ok := p.parseBaseList()
	if !ok {
		return ast.NoDef, false
	}
	if _, ok := p.expect(token.LBrace, "expected '{' to open the exception body"); !ok {
		return ast.NoDef, false
	}
	p.pushScope(name.Value)
	fields := p.parseFields(token.RBrace)
	p.popScopes(1)
	closeTok, _ := p.expect(token.RBrace, "expected '}' to close the exception body")

	excID := p.builder.AddException(ast.Exception{
		Decl:   p.decl(name, start.Cover(closeTok.Span), pre),
		Bases:  bases,
		Fields: fields,
	})
	return ast.DefID{Kind: ast.KindException, Index: uint32(excID)}, true
}

// parseClass parses Prelude 'class' Ident [CompactId] [':' bases] '{' fields '}'.
func (p *Parser) parseClass(pre prelude) (ast.DefID, bool) {
	start := p.advance().Span // 'class'
	name, ok := p.parseIdent("a class name")
	if !ok {
		return ast.NoDef, false
	}

	compactID := int64(-1)
	var compactIDSpan = name.Span
	if p.at(token.LParen) {
		p.advance()
		value, span, ok := p.parseInteger("a compact type ID")
		if !ok {
			return ast.NoDef, false
		}
		if value < 0 {
			p.report(diag.Syntax, diag.SevError, span, "a compact type ID cannot be negative")
		} else {
			compactID = value
			compactIDSpan = span
		}
		if _, ok := p.expect(token.RParen, "expected ')' after the compact type ID"); !ok {
			return ast.NoDef, false
		}
	}

	bases, ok := p.parseBaseList()
	if !ok {
		return ast.NoDef, false
	}
	if _, ok := p.expect(token.LBrace, "expected '{' to open the class body"); !ok {
		return ast.NoDef, false
	}
	p.pushScope(name.Value)
	fields := p.parseFields(token.RBrace)
	p.popScopes(1)
	closeTok, _ := p.expect(token.RBrace, "expected '}' to close the class body")

	classID := p.builder.AddClass(ast.Class{
		Decl:          p.decl(name, start.Cover(closeTok.Span), pre),
		CompactID:     compactID,
		CompactIDSpan: compactIDSpan,
		Bases:         bases,
		Fields:        fields,
	})
	return ast.DefID{Kind: ast.KindClass, Index: uint32(classID)}, true
}

// parseInterface parses Prelude 'interface' Ident [':' bases] '{' Operation* '}'.
func (p *Parser) parseInterface(pre prelude) (ast.DefID, bool) {
	start := p.advance().Span // 'interface'
	name, ok := p.parseIdent("an interface name")
	if !ok {
		return ast.NoDef, false
	}
	bases, ok := p.parseBaseList()
	if !ok {
		return ast.NoDef, false
	}
	if _, ok := p.expect(token.LBrace, "expected '{' to open the interface body"); !ok {
		return ast.NoDef, false
	}
	p.pushScope(name.Value)
	ops := p.parseOperations()
	p.popScopes(1)
	closeTok, _ := p.expect(token.RBrace, "expected '}' to close the interface body")

	ifaceID := p.builder.AddInterface(ast.Interface{
		Decl:       p.decl(name, start.Cover(closeTok.Span), pre),
		Bases:      bases,
		Operations: ops,
	})
	return ast.DefID{Kind: ast.KindInterface, Index: uint32(ifaceID)}, true
}

// parseEnum parses Prelude ['unchecked'] 'enum' Ident [':' TypeRef] '{' enumerators '}'.
func (p *Parser) parseEnum(pre prelude) (ast.DefID, bool) {
	start := p.lx.Peek().Span
	unchecked := false
	if p.at(token.KwUnchecked) {
		unchecked = true
		p.advance()
		if !p.at(token.KwEnum) {
			p.err("expected 'enum' after 'unchecked'")
			return ast.NoDef, false
		}
	}
	p.advance() // 'enum'
	name, ok := p.parseIdent("an enum name")
	if !ok {
		return ast.NoDef, false
	}

	underlying := ast.NoTypeRefID
	if p.at(token.Colon) {
		p.advance()
		underlying, ok = p.parseTypeRef()
		if !ok {
			return ast.NoDef, false
		}
	}

	if _, ok := p.expect(token.LBrace, "expected '{' to open the enum body"); !ok {
		return ast.NoDef, false
	}
	p.pushScope(name.Value)
	enumerators := p.parseEnumerators()
	p.popScopes(1)
	closeTok, _ := p.expect(token.RBrace, "expected '}' to close the enum body")

	enumID := p.builder.AddEnum(ast.Enum{
		Decl:        p.decl(name, start.Cover(closeTok.Span), pre),
		Unchecked:   unchecked,
		Underlying:  underlying,
		Enumerators: enumerators,
	})
	return ast.DefID{Kind: ast.KindEnum, Index: uint32(enumID)}, true
}

// parseTrait parses Prelude 'trait' Ident ';'.
func (p *Parser) parseTrait(pre prelude) (ast.DefID, bool) {
	start := p.advance().Span // 'trait'
	name, ok := p.parseIdent("a trait name")
	if !ok {
		return ast.NoDef, false
	}
	semi, _ := p.expect(token.Semicolon, "expected ';' after the trait declaration")

	traitID := p.builder.AddTrait(ast.Trait{
		Decl: p.decl(name, start.Cover(semi.Span), pre),
	})
	return ast.DefID{Kind: ast.KindTrait, Index: uint32(traitID)}, true
}

// parseCustom parses Prelude 'custom' Ident ';'.
func (p *Parser) parseCustom(pre prelude) (ast.DefID, bool) {
	start := p.advance().Span // 'custom'
	name, ok := p.parseIdent("a custom type name")
	if !ok {
		return ast.NoDef, false
	}
	semi, _ := p.expect(token.Semicolon, "expected ';' after the custom type declaration")

	customID := p.builder.AddCustom(ast.Custom{
		Decl: p.decl(name, start.Cover(semi.Span), pre),
	})
	return ast.DefID{Kind: ast.KindCustom, Index: uint32(customID)}, true
}

// parseAlias parses Prelude 'type' Ident '=' LocalAttribute* TypeRef ';'.
func (p *Parser) parseAlias(pre prelude) (ast.DefID, bool) {
	start := p.advance().Span // 'type'
	name, ok := p.parseIdent("a type alias name")
	if !ok {
		return ast.NoDef, false
	}
	if _, ok := p.expect(token.Equals, "expected '=' in the type alias"); !ok {
		return ast.NoDef, false
	}
	underlying, ok := p.parseTypeRef()
	if !ok {
		return ast.NoDef, false
	}
	semi, _ := p.expect(token.Semicolon, "expected ';' after the type alias")

	aliasID := p.builder.AddAlias(ast.Alias{
		Decl:       p.decl(name, start.Cover(semi.Span), pre),
		Underlying: underlying,
	})
	return ast.DefID{Kind: ast.KindAlias, Index: uint32(aliasID)}, true
}

// parseBaseList parses [':' TypeRef (',' TypeRef)*].
func (p *Parser) parseBaseList() ([]ast.TypeRefID, bool) {
	if !p.at(token.Colon) {
		return nil, true
	}
	p.advance()
	var bases []ast.TypeRefID
	for {
		base, ok := p.parseTypeRef()
		if !ok {
			return bases, false
		}
		bases = append(bases, base)
		if !p.at(token.Comma) {
			return bases, true
		}
		p.advance()
	}
}
