package ast

import (
	"slicec/internal/source"
)

// NodeKind discriminates the definition kinds a DefID can point at.
type NodeKind uint8

const (
	KindNone NodeKind = iota
	KindModule
	KindStruct
	KindClass
	KindException
	KindInterface
	KindEnum
	KindEnumerator
	KindTrait
	KindCustom
	KindAlias
	KindOperation
	KindParameter
	KindField
)

func (k NodeKind) String() string {
	switch k {
	case KindModule:
		return "module"
	case KindStruct:
		return "struct"
	case KindClass:
		return "class"
	case KindException:
		return "exception"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindEnumerator:
		return "enumerator"
	case KindTrait:
		return "trait"
	case KindCustom:
		return "custom type"
	case KindAlias:
		return "type alias"
	case KindOperation:
		return "operation"
	case KindParameter:
		return "parameter"
	case KindField:
		return "field"
	}
	return "none"
}

// DefID is a weak handle to a definition: a kind plus the 1-based index in
// that kind's arena. The arena owns the node; DefIDs never keep it alive on
// their own, which is what lets the AST carry cycles without leaks.
type DefID struct {
	Kind  NodeKind
	Index uint32
}

// NoDef is the zero DefID.
var NoDef = DefID{}

func (d DefID) IsValid() bool {
	return d.Kind != KindNone && d.Index != 0
}

// Ident is a name with the span it was written at. For scoped identifiers
// Value holds the '::'-joined form without any leading '::'.
type Ident struct {
	Value string
	Span  source.Span
}

// Decl carries the header every named definition shares: its identifier,
// the fully qualified name of the enclosing scope, attributes, and an
// optional doc comment. The scope string is "" at the root.
type Decl struct {
	Name  Ident
	Scope string
	Span  source.Span
	File  source.FileID
	Doc   DocID
	Attrs []AttrID
}

// FQN returns the '::'-joined path from the root to this definition.
func (d *Decl) FQN() string {
	return JoinScope(d.Scope, d.Name.Value)
}

// JoinScope appends a name to a scope path.
func JoinScope(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "::" + name
}
