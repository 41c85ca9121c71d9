package preproc

import (
	"fmt"

	"fortio.org/safecast"

	"slicec/internal/diag"
	"slicec/internal/source"
)

// Preprocessor resolves #define/#undefine/#if/#elif/#else/#endif directives
// and slices a file into the source blocks that survive them.
//
// Directives inside skipped branches never mutate the symbol table, and the
// text of directive lines is never part of a block.
type Preprocessor struct {
	file     *source.File
	off      uint32
	limit    uint32
	symbols  map[string]struct{}
	reporter diag.Reporter

	blocks     []SourceBlock
	blockOpen  bool
	blockStart uint32
	stack      []condFrame
}

// condFrame tracks one #if/#elif/#else chain.
type condFrame struct {
	parentLive bool
	taken      bool // some branch of this chain already evaluated true
	live       bool // the current branch is emitting text
	seenElse   bool
	ifSpan     source.Span
}

// New creates a preprocessor for file with the caller-supplied defines.
func New(file *source.File, defines []string, reporter diag.Reporter) *Preprocessor {
	limit, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	symbols := make(map[string]struct{}, len(defines))
	for _, d := range defines {
		symbols[d] = struct{}{}
	}
	return &Preprocessor{
		file:     file,
		limit:    limit,
		symbols:  symbols,
		reporter: reporter,
	}
}

// Defined reports whether the symbol is currently defined.
func (p *Preprocessor) Defined(symbol string) bool {
	_, ok := p.symbols[symbol]
	return ok
}

// Run processes the whole file and returns the surviving blocks in order.
func (p *Preprocessor) Run() []SourceBlock {
	for p.off < p.limit {
		lineStart := p.off
		if p.isDirectiveLine() {
			p.flushBlock(lineStart)
			p.handleDirective()
			continue
		}
		p.skipToLineEnd()
		p.eatNewline()
		if p.live() {
			if !p.blockOpen {
				p.blockOpen = true
				p.blockStart = lineStart
			}
		}
	}
	p.flushBlock(p.off)
	for _, frame := range p.stack {
		p.report(frame.ifSpan, "unterminated #if directive")
	}
	p.stack = p.stack[:0]
	return p.blocks
}

// live reports whether text at the current position survives.
func (p *Preprocessor) live() bool {
	if len(p.stack) == 0 {
		return true
	}
	return p.stack[len(p.stack)-1].live
}

func (p *Preprocessor) flushBlock(end uint32) {
	if !p.blockOpen {
		return
	}
	p.blockOpen = false
	if end <= p.blockStart {
		return
	}
	p.blocks = append(p.blocks, SourceBlock{
		Span: source.Span{File: p.file.ID, Start: p.blockStart, End: end},
	})
}

// isDirectiveLine peeks whether the current line starts, ignoring leading
// horizontal whitespace, with '#'. The offset is left unchanged.
func (p *Preprocessor) isDirectiveLine() bool {
	off := p.off
	for off < p.limit {
		b := p.file.Content[off]
		if b == ' ' || b == '\t' {
			off++
			continue
		}
		return b == '#'
	}
	return false
}

func (p *Preprocessor) handleDirective() {
	p.skipHorizontal()
	hashStart := p.off
	p.off++ // '#'
	p.skipHorizontal()

	nameStart := p.off
	name := p.scanIdent()
	if name == "" {
		span := p.lineSpanFrom(hashStart)
		p.report(span, "missing preprocessor directive")
		p.recoverToDirectiveEnd()
		return
	}

	switch name {
	case "define", "undefine", "undef":
		p.skipHorizontal()
		symStart := p.off
		symbol := p.scanIdent()
		if symbol == "" {
			p.report(p.lineSpanFrom(hashStart), fmt.Sprintf("expected an identifier after '#%s'", name))
			p.recoverToDirectiveEnd()
			return
		}
		if !p.atDirectiveEnd() {
			p.report(p.lineSpanFrom(symStart), fmt.Sprintf("unexpected text after '#%s %s'", name, symbol))
			p.recoverToDirectiveEnd()
			return
		}
		p.eatDirectiveEnd()
		if p.live() {
			// (un)defining is idempotent
			if name == "define" {
				p.symbols[symbol] = struct{}{}
			} else {
				delete(p.symbols, symbol)
			}
		}

	case "if":
		value, ok := p.parseExpression(hashStart)
		if !ok {
			p.recoverToDirectiveEnd()
			return
		}
		p.eatDirectiveEnd()
		parentLive := p.live()
		p.stack = append(p.stack, condFrame{
			parentLive: parentLive,
			taken:      value,
			live:       parentLive && value,
			ifSpan:     source.Span{File: p.file.ID, Start: hashStart, End: p.off},
		})

	case "elif":
		value, ok := p.parseExpression(hashStart)
		if !ok {
			p.recoverToDirectiveEnd()
			return
		}
		p.eatDirectiveEnd()
		if len(p.stack) == 0 {
			p.report(p.lineSpanFrom(nameStart), "#elif without a matching #if")
			return
		}
		frame := &p.stack[len(p.stack)-1]
		if frame.seenElse {
			p.report(p.lineSpanFrom(nameStart), "#elif after #else")
			return
		}
		frame.live = frame.parentLive && !frame.taken && value
		if value {
			frame.taken = true
		}

	case "else":
		if !p.atDirectiveEnd() {
			p.report(p.lineSpanFrom(hashStart), "unexpected text after '#else'")
			p.recoverToDirectiveEnd()
			return
		}
		p.eatDirectiveEnd()
		if len(p.stack) == 0 {
			p.report(p.lineSpanFrom(nameStart), "#else without a matching #if")
			return
		}
		frame := &p.stack[len(p.stack)-1]
		if frame.seenElse {
			p.report(p.lineSpanFrom(nameStart), "multiple #else directives in one conditional")
			return
		}
		frame.seenElse = true
		frame.live = frame.parentLive && !frame.taken
		frame.taken = true

	case "endif":
		if !p.atDirectiveEnd() {
			p.report(p.lineSpanFrom(hashStart), "unexpected text after '#endif'")
			p.recoverToDirectiveEnd()
			return
		}
		p.eatDirectiveEnd()
		if len(p.stack) == 0 {
			p.report(p.lineSpanFrom(nameStart), "#endif without a matching #if")
			return
		}
		p.stack = p.stack[:len(p.stack)-1]

	default:
		p.report(p.lineSpanFrom(nameStart), fmt.Sprintf("unknown preprocessor directive: '%s'", name))
		p.recoverToDirectiveEnd()
	}
}

// recoverToDirectiveEnd consumes up to and including the next newline.
// Failed directives leave no trace in the block stream or the symbol table.
func (p *Preprocessor) recoverToDirectiveEnd() {
	p.skipToLineEnd()
	p.eatNewline()
}

// atDirectiveEnd reports whether only whitespace or a comment remains before
// the newline or EOF.
func (p *Preprocessor) atDirectiveEnd() bool {
	off := p.off
	for off < p.limit {
		b := p.file.Content[off]
		if b == ' ' || b == '\t' {
			off++
			continue
		}
		if b == '\n' {
			return true
		}
		if b == '/' && off+1 < p.limit && p.file.Content[off+1] == '/' {
			return true
		}
		return false
	}
	return true
}

func (p *Preprocessor) eatDirectiveEnd() {
	p.skipToLineEnd()
	p.eatNewline()
}

func (p *Preprocessor) skipHorizontal() {
	for p.off < p.limit {
		b := p.file.Content[p.off]
		if b != ' ' && b != '\t' {
			return
		}
		p.off++
	}
}

func (p *Preprocessor) skipToLineEnd() {
	for p.off < p.limit && p.file.Content[p.off] != '\n' {
		p.off++
	}
}

func (p *Preprocessor) eatNewline() {
	if p.off < p.limit && p.file.Content[p.off] == '\n' {
		p.off++
	}
}

func (p *Preprocessor) scanIdent() string {
	start := p.off
	if p.off >= p.limit || !isIdentStart(p.file.Content[p.off]) {
		return ""
	}
	for p.off < p.limit && isIdentContinue(p.file.Content[p.off]) {
		p.off++
	}
	return string(p.file.Content[start:p.off])
}

// lineSpanFrom builds a span from start to the end of the current line.
func (p *Preprocessor) lineSpanFrom(start uint32) source.Span {
	end := p.off
	for end < p.limit && p.file.Content[end] != '\n' {
		end++
	}
	if end < start {
		end = start
	}
	return source.Span{File: p.file.ID, Start: start, End: end}
}

func (p *Preprocessor) report(sp source.Span, msg string) {
	if p.reporter != nil {
		p.reporter.Report(diag.Syntax, diag.SevError, sp, msg, nil)
	}
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
