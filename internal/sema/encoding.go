package sema

import (
	"slicec/internal/ast"
	"slicec/internal/diag"
)

// checkEncodings enforces per-encoding type legality. The encoding of the
// file a reference or definition is written in decides what is allowed:
// classes and AnyClass exist only in Slice1; traits, enums with underlying
// types, enumerators with fields, and the Slice2-only primitives are
// rejected under Slice1.
func (c *Checker) checkEncodings() {
	// definition-site rules
	for i := range c.b.Classes.Slice() {
		class := &c.b.Classes.Slice()[i]
		if c.encodingOf(class.File) != ast.EncodingSlice1 {
			c.error(diag.IncompatibleEncoding, class.Name.Span,
				"class '"+class.Name.Value+"' requires the Slice1 encoding").Emit()
		}
	}
	for i := range c.b.Traits.Slice() {
		trait := &c.b.Traits.Slice()[i]
		if c.encodingOf(trait.File) == ast.EncodingSlice1 {
			c.error(diag.IncompatibleEncoding, trait.Name.Span,
				"trait '"+trait.Name.Value+"' is not supported by the Slice1 encoding").Emit()
		}
	}
	for i := range c.b.Enums.Slice() {
		enum := &c.b.Enums.Slice()[i]
		if c.encodingOf(enum.File) != ast.EncodingSlice1 {
			continue
		}
		if enum.Underlying.IsValid() {
			c.error(diag.IncompatibleEncoding, c.b.TypeRefs.Get(uint32(enum.Underlying)).Span,
				"enums with underlying types are not supported by the Slice1 encoding").Emit()
		}
		for _, enumeratorID := range enum.Enumerators {
			enumerator := c.b.Enumerators.Get(uint32(enumeratorID))
			if len(enumerator.Fields) > 0 {
				c.error(diag.IncompatibleEncoding, enumerator.Name.Span,
					"enumerators with associated fields are not supported by the Slice1 encoding").Emit()
			}
		}
	}

	// use-site rules
	v := ast.Visitor{
		TypeRef: func(_ ast.TypeRefID, ref *ast.TypeRef) {
			c.checkRefEncoding(ref)
		},
	}
	v.Walk(c.b)
}

func (c *Checker) checkRefEncoding(ref *ast.TypeRef) {
	enc := c.encodingOf(ref.File)
	switch ref.Kind {
	case ast.TypeRefPrimitive:
		if !ref.Primitive.SupportedIn(enc) {
			c.error(diag.IncompatibleEncoding, ref.Span,
				"'"+ref.Primitive.String()+"' is not supported by the "+enc.String()+" encoding").Emit()
		}
	case ast.TypeRefNamed:
		if !ref.Patched {
			return
		}
		switch ref.Target.Kind {
		case ast.KindClass:
			if enc != ast.EncodingSlice1 {
				decl := c.b.DeclOf(ref.Target)
				c.error(diag.IncompatibleEncoding, ref.Span,
					"class '"+decl.FQN()+"' can only be referenced from files using the Slice1 encoding").Emit()
			}
		case ast.KindTrait:
			if enc == ast.EncodingSlice1 {
				decl := c.b.DeclOf(ref.Target)
				c.error(diag.IncompatibleEncoding, ref.Span,
					"trait '"+decl.FQN()+"' is not supported by the Slice1 encoding").Emit()
			}
		}
	}
}
