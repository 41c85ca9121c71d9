package ast

import "slicec/internal/source"

// File is one parsed Slice file: its encoding, file-level attributes, and
// top-level definitions (always modules).
type File struct {
	Source       source.FileID
	Span         source.Span
	Encoding     Encoding
	EncodingSpan source.Span
	HasEncoding  bool
	Attrs        []AttrID
	Defs         []DefID
}

// Module is one definition site of a module. Modules may be re-opened
// across files; the scope table merges sites sharing an FQN into one
// logical module.
type Module struct {
	Decl
	Defs []DefID
}

type Struct struct {
	Decl
	Compact bool
	Fields  []FieldID
}

type Exception struct {
	Decl
	// parsed as a list; the single-parent rule is enforced in validation
	Bases  []TypeRefID
	Fields []FieldID
}

type Class struct {
	Decl
	CompactID     int64 // -1 when absent
	CompactIDSpan source.Span
	Bases         []TypeRefID
	Fields        []FieldID
}

type Interface struct {
	Decl
	Bases      []TypeRefID
	Operations []OperationID
}

type Enum struct {
	Decl
	Unchecked   bool
	Underlying  TypeRefID // NoTypeRefID when absent
	Enumerators []EnumeratorID
}

type Enumerator struct {
	Decl
	HasValue  bool
	Value     int64
	ValueSpan source.Span
	Fields    []FieldID // associated fields, Slice2 only
}

type Trait struct {
	Decl
}

type Custom struct {
	Decl
}

type Alias struct {
	Decl
	Underlying TypeRefID
}

type Operation struct {
	Decl
	Idempotent   bool
	Params       []ParameterID
	Returns      []ParameterID
	ReturnsTuple bool // written as a parenthesised parameter list
}

type Parameter struct {
	Decl
	Type    TypeRefID
	HasTag  bool
	Tag     int64
	TagSpan source.Span
	Stream  bool
}

type Field struct {
	Decl
	Type    TypeRefID
	HasTag  bool
	Tag     int64
	TagSpan source.Span
}
