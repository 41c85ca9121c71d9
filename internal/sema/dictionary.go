package sema

import (
	"slicec/internal/ast"
	"slicec/internal/diag"
)

// checkDictionaryKeys enforces key-type legality for every dictionary in
// the compilation. A legal key is a non-optional simple type: a primitive
// other than float32, float64, and AnyClass; an enum without associated
// fields; or a struct whose fields all recursively satisfy the rule.
func (c *Checker) checkDictionaryKeys() {
	v := ast.Visitor{
		TypeRef: func(_ ast.TypeRefID, ref *ast.TypeRef) {
			if ref.Kind != ast.TypeRefDictionary {
				return
			}
			keyRef := c.b.TypeRefs.Get(uint32(ref.Key))
			if keyRef == nil {
				return
			}
			if reason := c.keyViolation(ref.Key, make(map[ast.StructID]struct{})); reason != "" {
				c.error(diag.InvalidDictionaryKey, keyRef.Span, reason).Emit()
			}
		},
		VisitUnpatched: true,
	}
	v.Walk(c.b)
}

// keyViolation returns "" for a legal key type, or the message explaining
// why it is illegal. visiting guards against struct recursion.
func (c *Checker) keyViolation(id ast.TypeRefID, visiting map[ast.StructID]struct{}) string {
	ref, optional := c.resolveAlias(id)
	if ref == nil {
		return ""
	}
	if optional {
		return "an optional type cannot be used as a dictionary key"
	}

	switch ref.Kind {
	case ast.TypeRefPrimitive:
		switch ref.Primitive {
		case ast.PrimFloat32, ast.PrimFloat64:
			return "'" + ref.Primitive.String() + "' cannot be used as a dictionary key"
		case ast.PrimAnyClass:
			return "'AnyClass' cannot be used as a dictionary key"
		default:
			return ""
		}
	case ast.TypeRefSequence:
		return "a Sequence cannot be used as a dictionary key"
	case ast.TypeRefDictionary:
		return "a Dictionary cannot be used as a dictionary key"
	}

	if !ref.Patched {
		return "" // unresolved; already reported
	}
	switch ref.Target.Kind {
	case ast.KindEnum:
		enum := c.b.Enums.Get(ref.Target.Index)
		for _, enumeratorID := range enum.Enumerators {
			if len(c.b.Enumerators.Get(uint32(enumeratorID)).Fields) > 0 {
				return "enum '" + enum.FQN() + "' cannot be used as a dictionary key because its enumerators have associated fields"
			}
		}
		return ""
	case ast.KindStruct:
		structID := ast.StructID(ref.Target.Index)
		if _, ok := visiting[structID]; ok {
			return "" // a containment cycle is the cycle validator's problem
		}
		visiting[structID] = struct{}{}
		s := c.b.Structs.Get(ref.Target.Index)
		for _, fieldID := range s.Fields {
			field := c.b.Fields.Get(uint32(fieldID))
			if reason := c.keyViolation(field.Type, visiting); reason != "" {
				return "struct '" + s.FQN() + "' cannot be used as a dictionary key because its field '" +
					field.Name.Value + "' is not a valid key type"
			}
		}
		delete(visiting, structID)
		return ""
	default:
		decl := c.b.DeclOf(ref.Target)
		return "'" + decl.FQN() + "' is a " + ref.Target.Kind.String() + " and cannot be used as a dictionary key"
	}
}
