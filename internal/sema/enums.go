package sema

import (
	"strconv"

	"slicec/internal/ast"
	"slicec/internal/diag"
)

// checkEnums validates enum structure: the underlying type must be an
// integral primitive, explicit discriminants must fit its range, and unless
// the enum is unchecked, discriminants must be unique.
func (c *Checker) checkEnums() {
	for i := range c.b.Enums.Slice() {
		enum := &c.b.Enums.Slice()[i]
		c.checkEnum(enum)
	}
}

func (c *Checker) checkEnum(enum *ast.Enum) {
	// int32 bounds stand in when no underlying type is declared
	underlying := ast.PrimInt32
	if enum.Underlying.IsValid() {
		ref, _ := c.resolveAlias(enum.Underlying)
		switch {
		case ref == nil:
			return
		case ref.Kind == ast.TypeRefPrimitive && ref.Primitive.IsIntegral():
			underlying = ref.Primitive
		case ref.Kind == ast.TypeRefNamed && !ref.Patched:
			return // unresolved; already reported
		default:
			c.error(diag.InvalidEnum, c.b.TypeRefs.Get(uint32(enum.Underlying)).Span,
				"the underlying type of enum '"+enum.Name.Value+"' must be an integral primitive").Emit()
			return
		}
	}
	minVal, maxVal, _ := underlying.Bounds()

	if len(enum.Enumerators) == 0 && !enum.Unchecked {
		c.error(diag.InvalidEnum, enum.Name.Span,
			"enum '"+enum.Name.Value+"' must contain at least one enumerator").Emit()
	}

	type valueSite struct {
		decl  *ast.Decl
		value int64
	}
	var (
		next int64
		seen = make(map[int64]*ast.Decl)
	)
	for _, enumeratorID := range enum.Enumerators {
		enumerator := c.b.Enumerators.Get(uint32(enumeratorID))
		value := next
		if enumerator.HasValue {
			value = enumerator.Value
		}
		next = value + 1

		site := valueSite{decl: &enumerator.Decl, value: value}
		if value < minVal || (value >= 0 && uint64(value) > maxVal) {
			span := enumerator.ValueSpan
			if !enumerator.HasValue {
				span = enumerator.Name.Span
			}
			c.error(diag.InvalidEnum, span,
				"enumerator '"+enumerator.Name.Value+"' has value "+
					strconv.FormatInt(value, 10)+", which is outside the range of "+
					underlying.String()).Emit()
			continue
		}

		if first, dup := seen[value]; dup {
			if !enum.Unchecked {
				c.error(diag.InvalidEnum, site.decl.Name.Span,
					"enumerators '"+site.decl.Name.Value+"' and '"+first.Name.Value+
						"' cannot both have the value "+strconv.FormatInt(value, 10)).
					WithNote(first.Name.Span, "'"+first.Name.Value+"' is defined here").
					Emit()
			}
			continue
		}
		seen[value] = site.decl
	}
}
