package sema

import (
	"slicec/internal/ast"
	"slicec/internal/diag"
)

// checkDeprecatedUsage warns at every reference to a definition carrying
// the [deprecated] attribute. The attribute's string argument, if present,
// becomes part of the message.
func (c *Checker) checkDeprecatedUsage() {
	v := ast.Visitor{
		TypeRef: func(_ ast.TypeRefID, ref *ast.TypeRef) {
			if ref.Kind != ast.TypeRefNamed || !ref.Patched {
				return
			}
			decl := c.b.DeclOf(ref.Target)
			reason, deprecated := c.deprecationOf(decl)
			if !deprecated {
				return
			}
			msg := "'" + decl.FQN() + "' is deprecated"
			if reason != "" {
				msg += ": " + reason
			}
			c.warning(diag.DeprecatedUsage, ref.Span, msg).
				WithNote(decl.Name.Span, "'"+decl.FQN()+"' is deprecated here").
				Emit()
		},
	}
	v.Walk(c.b)
}

func (c *Checker) deprecationOf(decl *ast.Decl) (reason string, deprecated bool) {
	for _, attrID := range decl.Attrs {
		attr := c.b.Attrs.Get(uint32(attrID))
		if attr == nil || attr.Name.Value != "deprecated" {
			continue
		}
		if len(attr.Args) > 0 {
			return attr.Args[0].Value, true
		}
		return "", true
	}
	return "", false
}
