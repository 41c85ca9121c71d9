package ast

import "slicec/internal/source"

// Attr is one attribute, local ([a::b(args)]) or file-level ([[a(args)]]).
// Which form it was written in is recorded by where it is referenced from:
// file-level attributes hang off the File node, local ones off declarations
// and type references.
type Attr struct {
	Name Ident // directive, possibly scoped ("deprecated", "cs::namespace")
	Args []AttrArg
	Span source.Span
}

// AttrArg is one attribute argument: an identifier or a string literal.
// For string literals Value holds the decoded text.
type AttrArg struct {
	Value    string
	IsString bool
	Span     source.Span
}
