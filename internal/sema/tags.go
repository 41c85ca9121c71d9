package sema

import (
	"strconv"

	"slicec/internal/ast"
	"slicec/internal/diag"
	"slicec/internal/source"
)

const maxTagValue = 2147483647 // 2^31 - 1

// taggedMember is the common view of a tagged field or parameter.
type taggedMember struct {
	name    string
	tag     int64
	tagSpan source.Span
	typeRef ast.TypeRefID
}

// checkTags validates tag values: the allowed range, uniqueness within each
// container, and that the tagged member's type supports tagging.
func (c *Checker) checkTags() {
	c.eachContainer(func(_ ast.DefID, _ *ast.Decl, fields []ast.FieldID) {
		c.checkTagGroup(c.taggedFields(fields))
	})

	for i := range c.b.Enumerators.Slice() {
		enumerator := &c.b.Enumerators.Slice()[i]
		if len(enumerator.Fields) > 0 {
			c.checkTagGroup(c.taggedFields(enumerator.Fields))
		}
	}

	for i := range c.b.Operations.Slice() {
		op := &c.b.Operations.Slice()[i]
		c.checkTagGroup(c.taggedParams(op.Params))
		c.checkTagGroup(c.taggedParams(op.Returns))
	}
}

func (c *Checker) taggedFields(ids []ast.FieldID) []taggedMember {
	var members []taggedMember
	for _, fieldID := range ids {
		field := c.b.Fields.Get(uint32(fieldID))
		if field.HasTag {
			members = append(members, taggedMember{
				name:    field.Name.Value,
				tag:     field.Tag,
				tagSpan: field.TagSpan,
				typeRef: field.Type,
			})
		}
	}
	return members
}

func (c *Checker) taggedParams(ids []ast.ParameterID) []taggedMember {
	var members []taggedMember
	for _, paramID := range ids {
		param := c.b.Parameters.Get(uint32(paramID))
		if param.HasTag {
			name := param.Name.Value
			if name == "" {
				name = "the return value"
			}
			members = append(members, taggedMember{
				name:    name,
				tag:     param.Tag,
				tagSpan: param.TagSpan,
				typeRef: param.Type,
			})
		}
	}
	return members
}

func (c *Checker) checkTagGroup(members []taggedMember) {
	seen := make(map[int64]taggedMember)
	for _, member := range members {
		if member.tag < 0 || member.tag > maxTagValue {
			c.error(diag.InvalidTag, member.tagSpan,
				"tag value "+strconv.FormatInt(member.tag, 10)+
					" is out of range: tags must be between 0 and 2147483647").Emit()
		} else if first, dup := seen[member.tag]; dup {
			c.error(diag.InvalidTag, member.tagSpan,
				"'"+member.name+"' and '"+first.name+"' cannot both use tag "+
					strconv.FormatInt(member.tag, 10)).
				WithNote(first.tagSpan, "'"+first.name+"' uses the tag here").
				Emit()
		} else {
			seen[member.tag] = member
		}
		c.checkTagCapable(member)
	}
}

// checkTagCapable rejects tags on types that cannot be encoded as tagged
// values. A tagged member's type must be optional, and it may not be (or
// transitively contain, through struct fields, sequence elements, or
// dictionary keys and values) a class: class instances are slotted, not
// inlined. Custom types and traits cannot be tagged either.
func (c *Checker) checkTagCapable(member taggedMember) {
	ref, optional := c.resolveAlias(member.typeRef)
	if ref == nil {
		return
	}
	if ref.Kind == ast.TypeRefNamed && !ref.Patched {
		return // unresolved; the patcher already reported it
	}

	if !optional {
		c.error(diag.InvalidTag, member.tagSpan,
			"'"+member.name+"' is tagged, so its type must be marked optional with '?'").Emit()
	}

	switch ref.Kind {
	case ast.TypeRefPrimitive:
		if ref.Primitive == ast.PrimAnyClass {
			c.error(diag.InvalidTag, member.tagSpan,
				"'"+member.name+"' cannot be tagged: AnyClass members do not support tags").Emit()
			return
		}
	case ast.TypeRefNamed:
		switch ref.Target.Kind {
		case ast.KindClass:
			c.error(diag.InvalidTag, member.tagSpan,
				"'"+member.name+"' cannot be tagged: class members do not support tags").Emit()
			return
		case ast.KindCustom:
			c.error(diag.InvalidTag, member.tagSpan,
				"'"+member.name+"' cannot be tagged: custom type members do not support tags").Emit()
			return
		case ast.KindTrait:
			c.error(diag.InvalidTag, member.tagSpan,
				"'"+member.name+"' cannot be tagged: trait members do not support tags").Emit()
			return
		}
	}

	if c.containsClass(member.typeRef, make(map[ast.StructID]struct{})) {
		c.error(diag.InvalidTag, member.tagSpan,
			"'"+member.name+"' cannot be tagged because its type contains a class").Emit()
	}
}

// containsClass reports whether the type transitively reaches a class or
// AnyClass through struct fields, sequence elements, or dictionary keys and
// values. Aliases are transparent; visiting guards against struct cycles.
func (c *Checker) containsClass(id ast.TypeRefID, visiting map[ast.StructID]struct{}) bool {
	ref, _ := c.resolveAlias(id)
	if ref == nil {
		return false
	}
	switch ref.Kind {
	case ast.TypeRefPrimitive:
		return ref.Primitive == ast.PrimAnyClass
	case ast.TypeRefSequence:
		return c.containsClass(ref.Elem, visiting)
	case ast.TypeRefDictionary:
		return c.containsClass(ref.Key, visiting) || c.containsClass(ref.Value, visiting)
	}
	if !ref.Patched {
		return false
	}
	switch ref.Target.Kind {
	case ast.KindClass:
		return true
	case ast.KindStruct:
		structID := ast.StructID(ref.Target.Index)
		if _, ok := visiting[structID]; ok {
			return false
		}
		visiting[structID] = struct{}{}
		s := c.b.Structs.Get(ref.Target.Index)
		for _, fieldID := range s.Fields {
			if c.containsClass(c.b.Fields.Get(uint32(fieldID)).Type, visiting) {
				return true
			}
		}
		delete(visiting, structID)
		return false
	default:
		return false
	}
}
