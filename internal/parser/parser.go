package parser

import (
	"strings"

	"slicec/internal/ast"
	"slicec/internal/diag"
	"slicec/internal/lexer"
	"slicec/internal/source"
	"slicec/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
}

// Parser holds the state for parsing one file's surviving blocks.
type Parser struct {
	lx       *lexer.Lexer
	builder  *ast.Builder
	src      source.FileID
	opts     Options
	scopes   []string    // current scope stack, one segment per entry
	lastSpan source.Span // span of the last consumed token
}

// ParseFile parses one preprocessed file into the shared builder.
// The lexer must be positioned at the start of the file's block stream.
func ParseFile(lx *lexer.Lexer, builder *ast.Builder, src source.FileID, opts Options) Result {
	p := Parser{
		lx:       lx,
		builder:  builder,
		src:      src,
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}

	file := ast.File{
		Source:   src,
		Encoding: ast.EncodingSlice2,
		Span:     lx.EmptySpan(),
	}

	p.parseFilePrelude(&file)
	file.Defs = p.parseTopLevel()
	file.Span = file.Span.Cover(p.lastSpan)

	fileID := builder.AddFile(file)
	return Result{File: fileID}
}

// parseFilePrelude consumes file attributes and the encoding declaration.
//
//	FilePrelude := (FileEncoding | FileAttribute)*
func (p *Parser) parseFilePrelude(file *ast.File) {
	for {
		switch p.lx.Peek().Kind {
		case token.LLBracket:
			if attrID, ok := p.parseFileAttr(); ok {
				file.Attrs = append(file.Attrs, attrID)
			}
		case token.KwEncoding:
			kw := p.advance()
			p.expect(token.Equals, "expected '=' after 'encoding'")
			valTok, ok := p.expect(token.IntLit, "expected an encoding version")
			sp := kw.Span.Cover(p.lastSpan)
			if ok {
				switch valTok.Text {
				case "1":
					file.Encoding = ast.EncodingSlice1
				case "2":
					file.Encoding = ast.EncodingSlice2
				default:
					p.report(diag.IncompatibleEncoding, diag.SevError, valTok.Span,
						"unknown encoding version '"+valTok.Text+"', expected 1 or 2")
				}
				if file.HasEncoding {
					p.report(diag.Syntax, diag.SevError, sp, "duplicate encoding declaration")
				}
				file.HasEncoding = true
				file.EncodingSpan = sp
			}
			p.expect(token.Semicolon, "expected ';' after the encoding declaration")
		default:
			return
		}
	}
}

// parseTopLevel parses the file body: either one file-level module followed
// by bare definitions, or any number of block modules.
func (p *Parser) parseTopLevel() []ast.DefID {
	var defs []ast.DefID
	for !p.at(token.EOF) {
		pre := p.parsePrelude()
		if !p.at(token.KwModule) {
			p.err("expected a module declaration at the top level")
			p.advance() // always make progress, even on a stray '}'
			p.resyncDefinition()
			continue
		}
		def, fileLevel, ok := p.parseModule(pre)
		if !ok {
			p.resyncDefinition()
			continue
		}
		defs = append(defs, def)
		if fileLevel {
			// a file-level module owns the rest of the file
			break
		}
	}
	if tok := p.lx.Peek(); tok.Kind != token.EOF {
		p.report(diag.Syntax, diag.SevError, tok.Span, "unexpected text after the file-level module body")
	}
	return defs
}

// scopeFQN returns the '::'-joined current scope, "" at the root.
func (p *Parser) scopeFQN() string {
	return strings.Join(p.scopes, "::")
}

func (p *Parser) pushScope(segment string) {
	p.scopes = append(p.scopes, segment)
}

func (p *Parser) popScopes(n int) {
	p.scopes = p.scopes[:len(p.scopes)-n]
}
