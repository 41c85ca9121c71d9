package sema

import (
	"slices"

	"slicec/internal/ast"
	"slicec/internal/diag"
)

// attrShape describes the argument contract of a known attribute.
type attrShape struct {
	minArgs     int
	maxArgs     int // -1 for unbounded
	stringsOnly bool
}

var knownAttrs = map[string]attrShape{
	"deprecated":    {minArgs: 0, maxArgs: 1, stringsOnly: true},
	"cs::namespace": {minArgs: 1, maxArgs: 1, stringsOnly: true},
	"allow":         {minArgs: 1, maxArgs: -1},
	"oneway":        {minArgs: 0, maxArgs: 0},
	"compress":      {minArgs: 1, maxArgs: 2},
}

// checkAttributes validates every attribute in the compilation: unknown
// directives warn, known directives must match their argument shape.
func (c *Checker) checkAttributes() {
	for i := range c.b.Attrs.Slice() {
		attr := &c.b.Attrs.Slice()[i]
		shape, known := knownAttrs[attr.Name.Value]
		if !known {
			c.warning(diag.InvalidAttribute, attr.Name.Span,
				"unknown attribute '"+attr.Name.Value+"'").Emit()
			continue
		}
		if len(attr.Args) < shape.minArgs {
			c.error(diag.InvalidAttribute, attr.Span,
				"attribute '"+attr.Name.Value+"' requires an argument").Emit()
			continue
		}
		if shape.maxArgs >= 0 && len(attr.Args) > shape.maxArgs {
			c.error(diag.InvalidAttribute, attr.Span,
				"too many arguments for attribute '"+attr.Name.Value+"'").Emit()
			continue
		}
		if shape.stringsOnly {
			for _, arg := range attr.Args {
				if !arg.IsString {
					c.error(diag.InvalidAttribute, arg.Span,
						"attribute '"+attr.Name.Value+"' takes a string literal argument").Emit()
				}
			}
		}
		if attr.Name.Value == "allow" {
			c.checkAllowArgs(attr)
		}
	}
}

func (c *Checker) checkAllowArgs(attr *ast.Attr) {
	known := diag.KnownCodes()
	for _, arg := range attr.Args {
		if !slices.Contains(known, diag.Code(arg.Value)) {
			c.error(diag.InvalidAttribute, arg.Span,
				"'"+arg.Value+"' is not a known diagnostic code").Emit()
		}
	}
}
