package ast

import "slicec/internal/source"

// TypeRefKind discriminates the forms a type reference can take.
// Primitive, Sequence, and Dictionary references are anonymous and never go
// through scope lookup; only Named references need patching.
type TypeRefKind uint8

const (
	TypeRefNamed TypeRefKind = iota
	TypeRefPrimitive
	TypeRefSequence
	TypeRefDictionary
)

// TypeRef is a use of a type. Named references start unpatched, holding the
// lexical identifier plus the scope they were written in; the patcher
// resolves them to a DefID exactly once.
type TypeRef struct {
	Kind      TypeRefKind
	Primitive Primitive // TypeRefPrimitive
	Elem      TypeRefID // TypeRefSequence
	Key       TypeRefID // TypeRefDictionary
	Value     TypeRefID // TypeRefDictionary

	Name   Ident  // TypeRefNamed: '::'-joined path, no leading '::'
	Global bool   // written with a leading '::'
	Scope  string // FQN of the referencing scope

	Optional bool
	Attrs    []AttrID
	Span     source.Span
	File     source.FileID

	Patched bool
	Target  DefID
}

// NeedsPatching reports whether the reference is a named one that has not
// been resolved yet.
func (t *TypeRef) NeedsPatching() bool {
	return t.Kind == TypeRefNamed && !t.Patched
}

// Patch resolves the reference. Patching twice is a programming error.
func (b *Builder) Patch(id TypeRefID, target DefID) {
	ref := b.TypeRefs.Get(uint32(id))
	if ref == nil {
		panic("patch of an invalid type reference")
	}
	if ref.Patched {
		panic("type reference patched twice")
	}
	ref.Patched = true
	ref.Target = target
}
