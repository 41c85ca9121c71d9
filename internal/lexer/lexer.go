package lexer

import (
	"slicec/internal/preproc"
	"slicec/internal/source"
	"slicec/internal/token"
)

// Lexer turns the surviving source blocks of one file into tokens.
// Doc comments, ordinary comments, and whitespace are collected as leading
// trivia on the next significant token.
type Lexer struct {
	file     *source.File
	blocks   []preproc.SourceBlock
	blockIdx int
	cursor   Cursor
	opts     Options
	look     *token.Token   // 1-token lookahead buffer
	hold     []token.Trivia // accumulated leading trivia
}

// New creates a lexer over the given blocks of file.
func New(file *source.File, blocks []preproc.SourceBlock, opts Options) *Lexer {
	lx := &Lexer{
		file:   file,
		blocks: blocks,
		opts:   opts,
	}
	if len(blocks) > 0 {
		lx.cursor = NewBlockCursor(file, blocks[0].Span.Start, blocks[0].Span.End)
	} else {
		lx.cursor = NewBlockCursor(file, 0, 0)
	}
	return lx
}

// NewWholeFile creates a lexer treating the entire file as one block.
// Used by debug surfaces that bypass the preprocessor.
func NewWholeFile(file *source.File, opts Options) *Lexer {
	return New(file, []preproc.SourceBlock{
		{Span: source.Span{File: file.ID, Start: 0, End: contentLen(file)}},
	}, opts)
}

// Next returns the next significant token with its Leading trivia attached.
// After the last block is exhausted it always returns EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	lx.collectLeadingTrivia()
	for lx.cursor.EOF() {
		if !lx.advanceBlock() {
			return token.Token{
				Kind: token.EOF,
				Span: lx.emptySpan(),
				Text: "",
			}
		}
		lx.collectLeadingTrivia()
	}

	ch := lx.cursor.Peek()
	var tok token.Token

	switch {
	case isIdentStartByte(ch):
		tok = lx.scanIdentOrKeyword()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"':
		tok = lx.scanString()
	default:
		tok = lx.scanPunct()
	}

	tok.Leading = lx.hold
	lx.hold = nil
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// advanceBlock moves to the next surviving block, if any.
func (lx *Lexer) advanceBlock() bool {
	if lx.blockIdx+1 >= len(lx.blocks) {
		return false
	}
	lx.blockIdx++
	b := lx.blocks[lx.blockIdx]
	lx.cursor = NewBlockCursor(lx.file, b.Span.Start, b.Span.End)
	return true
}

// EmptySpan returns a zero-length span at the current position.
func (lx *Lexer) EmptySpan() source.Span {
	return lx.emptySpan()
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
