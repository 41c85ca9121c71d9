package sema

import (
	"strings"

	"slicec/internal/ast"
	"slicec/internal/diag"
)

// checkDuplicateMembers enforces case-insensitive uniqueness of member
// identifiers within their container: fields of structs, classes,
// exceptions, and enumerators; operations of interfaces; parameters of
// operations; enumerators of enums.
func (c *Checker) checkDuplicateMembers() {
	c.eachContainer(func(_ ast.DefID, decl *ast.Decl, fields []ast.FieldID) {
		c.checkUniqueFields(decl, fields)
	})

	for i := range c.b.Interfaces.Slice() {
		iface := &c.b.Interfaces.Slice()[i]
		seen := make(map[string]*ast.Decl)
		for _, opID := range iface.Operations {
			op := c.b.Operations.Get(uint32(opID))
			c.noteDuplicate(seen, &op.Decl, "operation")
		}
	}

	for i := range c.b.Operations.Slice() {
		op := &c.b.Operations.Slice()[i]
		seen := make(map[string]*ast.Decl)
		for _, paramID := range op.Params {
			param := c.b.Parameters.Get(uint32(paramID))
			c.noteDuplicate(seen, &param.Decl, "parameter")
		}
		if op.ReturnsTuple {
			returnSeen := make(map[string]*ast.Decl)
			for _, paramID := range op.Returns {
				param := c.b.Parameters.Get(uint32(paramID))
				c.noteDuplicate(returnSeen, &param.Decl, "return element")
			}
		}
	}

	for i := range c.b.Enums.Slice() {
		enum := &c.b.Enums.Slice()[i]
		seen := make(map[string]*ast.Decl)
		for _, enumeratorID := range enum.Enumerators {
			enumerator := c.b.Enumerators.Get(uint32(enumeratorID))
			c.noteDuplicate(seen, &enumerator.Decl, "enumerator")
		}
	}

	for i := range c.b.Enumerators.Slice() {
		enumerator := &c.b.Enumerators.Slice()[i]
		if len(enumerator.Fields) > 0 {
			c.checkUniqueFields(&enumerator.Decl, enumerator.Fields)
		}
	}
}

func (c *Checker) checkUniqueFields(_ *ast.Decl, fields []ast.FieldID) {
	seen := make(map[string]*ast.Decl)
	for _, fieldID := range fields {
		field := c.b.Fields.Get(uint32(fieldID))
		c.noteDuplicate(seen, &field.Decl, "field")
	}
}

func (c *Checker) noteDuplicate(seen map[string]*ast.Decl, decl *ast.Decl, what string) {
	if decl.Name.Value == "" {
		return
	}
	key := strings.ToLower(decl.Name.Value)
	if first, ok := seen[key]; ok {
		c.error(diag.Redefinition, decl.Name.Span,
			"redefinition of "+what+" '"+decl.Name.Value+"'").
			WithNote(first.Name.Span, "'"+first.Name.Value+"' was previously defined here").
			Emit()
		return
	}
	seen[key] = decl
}
