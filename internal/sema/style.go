package sema

import (
	"slicec/internal/ast"
	"slicec/internal/diag"
)

// checkIdentifierStyle warns when identifiers stray from the language's
// naming conventions: PascalCase for module segments and type names,
// camelCase for fields, operations, and parameters. Enumerators follow the
// type convention.
func (c *Checker) checkIdentifierStyle() {
	pascal := func(decl *ast.Decl, what string) {
		if decl.Name.Value == "" || isPascalCase(decl.Name.Value) {
			return
		}
		c.warning(diag.StyleWarning, decl.Name.Span,
			what+" identifier '"+decl.Name.Value+"' should be PascalCase").Emit()
	}
	camel := func(decl *ast.Decl, what string) {
		if decl.Name.Value == "" || isCamelCase(decl.Name.Value) {
			return
		}
		c.warning(diag.StyleWarning, decl.Name.Span,
			what+" identifier '"+decl.Name.Value+"' should be camelCase").Emit()
	}

	v := ast.Visitor{
		Module:     func(_ ast.ModuleID, m *ast.Module) { pascal(&m.Decl, "module") },
		Struct:     func(_ ast.StructID, s *ast.Struct) { pascal(&s.Decl, "struct") },
		Class:      func(_ ast.ClassID, cl *ast.Class) { pascal(&cl.Decl, "class") },
		Exception:  func(_ ast.ExceptionID, e *ast.Exception) { pascal(&e.Decl, "exception") },
		Interface:  func(_ ast.InterfaceID, i *ast.Interface) { pascal(&i.Decl, "interface") },
		Enum:       func(_ ast.EnumID, e *ast.Enum) { pascal(&e.Decl, "enum") },
		Enumerator: func(_ ast.EnumeratorID, e *ast.Enumerator) { pascal(&e.Decl, "enumerator") },
		Trait:      func(_ ast.TraitID, t *ast.Trait) { pascal(&t.Decl, "trait") },
		Custom:     func(_ ast.CustomID, ct *ast.Custom) { pascal(&ct.Decl, "custom type") },
		Alias:      func(_ ast.AliasID, a *ast.Alias) { pascal(&a.Decl, "type alias") },
		Operation:  func(_ ast.OperationID, o *ast.Operation) { camel(&o.Decl, "operation") },
		Parameter: func(_ ast.ParameterID, p *ast.Parameter) {
			// single return values are anonymous
			if p.Name.Value != "" {
				camel(&p.Decl, "parameter")
			}
		},
		Field: func(_ ast.FieldID, f *ast.Field) { camel(&f.Decl, "field") },
	}
	v.Walk(c.b)
}

func isPascalCase(name string) bool {
	return name[0] >= 'A' && name[0] <= 'Z'
}

func isCamelCase(name string) bool {
	return name[0] >= 'a' && name[0] <= 'z'
}
