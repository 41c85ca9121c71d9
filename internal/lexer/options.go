package lexer

import (
	"slicec/internal/diag"
	"slicec/internal/source"
)

type Options struct {
	// Reporter may be nil; lexing continues either way.
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(diag.Syntax, diag.SevError, sp, msg, nil)
	}
}
