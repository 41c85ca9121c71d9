package sema

import (
	"slicec/internal/ast"
	"slicec/internal/diag"
)

// checkOperations validates operation shapes: a tuple return needs at least
// two elements, and at most one streamed parameter may appear, in the last
// position of its list.
func (c *Checker) checkOperations() {
	for i := range c.b.Operations.Slice() {
		op := &c.b.Operations.Slice()[i]

		if op.ReturnsTuple && len(op.Returns) < 2 {
			c.error(diag.Unknown, op.Name.Span,
				"the return tuple of operation '"+op.Name.Value+"' must contain at least two elements").Emit()
		}

		c.checkStreamPosition(op.Params, "parameter list of operation '"+op.Name.Value+"'")
		if op.ReturnsTuple {
			c.checkStreamPosition(op.Returns, "return tuple of operation '"+op.Name.Value+"'")
		}
	}
}

func (c *Checker) checkStreamPosition(params []ast.ParameterID, where string) {
	streamSeen := false
	for idx, paramID := range params {
		param := c.b.Parameters.Get(uint32(paramID))
		if !param.Stream {
			continue
		}
		switch {
		case streamSeen:
			c.error(diag.Unknown, param.Span,
				"only one streamed member is allowed in the "+where).Emit()
		case idx != len(params)-1:
			c.error(diag.Unknown, param.Span,
				"the streamed member must be the last member of the "+where).Emit()
		}
		streamSeen = true
	}
}

// checkCompactTypeIDs enforces that compact class IDs are unique across the
// whole compilation. Classes without an ID (-1) are skipped; negative IDs are
// already rejected by the parser.
func (c *Checker) checkCompactTypeIDs() {
	seen := make(map[int64]*ast.Class)
	for i := range c.b.Classes.Slice() {
		class := &c.b.Classes.Slice()[i]
		if class.CompactID < 0 {
			continue
		}
		if first, dup := seen[class.CompactID]; dup {
			c.error(diag.Unknown, class.CompactIDSpan,
				"classes '"+class.Name.Value+"' and '"+first.Name.Value+
					"' cannot share a compact type ID").
				WithNote(first.CompactIDSpan, "'"+first.Name.Value+"' uses the ID here").
				Emit()
			continue
		}
		seen[class.CompactID] = class
	}
}
