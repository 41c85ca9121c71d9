package scopes

import (
	"strings"

	"slicec/internal/ast"
	"slicec/internal/diag"
)

// Table maps fully qualified names to definitions. Lookup is case-sensitive;
// uniqueness is enforced case-insensitively, so definitions whose names
// differ only in case collide.
type Table struct {
	defs   map[string]ast.DefID // exact FQN -> definition
	folded map[string]ast.DefID // lowercased FQN -> first definition
}

// Build walks the AST after parsing completes for every file and fills the
// scope table. Modules with the same FQN across definition sites merge into
// one logical module (the first site stands for all of them); any other
// collision reports Redefinition and keeps the first definition.
func Build(b *ast.Builder, r diag.Reporter) *Table {
	t := &Table{
		defs:   make(map[string]ast.DefID),
		folded: make(map[string]ast.DefID),
	}

	insert := func(def ast.DefID) {
		t.insert(b, def, r)
	}

	v := ast.Visitor{
		Module: func(id ast.ModuleID, _ *ast.Module) {
			insert(ast.DefID{Kind: ast.KindModule, Index: uint32(id)})
		},
		Struct: func(id ast.StructID, _ *ast.Struct) {
			insert(ast.DefID{Kind: ast.KindStruct, Index: uint32(id)})
		},
		Class: func(id ast.ClassID, _ *ast.Class) {
			insert(ast.DefID{Kind: ast.KindClass, Index: uint32(id)})
		},
		Exception: func(id ast.ExceptionID, _ *ast.Exception) {
			insert(ast.DefID{Kind: ast.KindException, Index: uint32(id)})
		},
		Interface: func(id ast.InterfaceID, _ *ast.Interface) {
			insert(ast.DefID{Kind: ast.KindInterface, Index: uint32(id)})
		},
		Enum: func(id ast.EnumID, _ *ast.Enum) {
			insert(ast.DefID{Kind: ast.KindEnum, Index: uint32(id)})
		},
		Trait: func(id ast.TraitID, _ *ast.Trait) {
			insert(ast.DefID{Kind: ast.KindTrait, Index: uint32(id)})
		},
		Custom: func(id ast.CustomID, _ *ast.Custom) {
			insert(ast.DefID{Kind: ast.KindCustom, Index: uint32(id)})
		},
		Alias: func(id ast.AliasID, _ *ast.Alias) {
			insert(ast.DefID{Kind: ast.KindAlias, Index: uint32(id)})
		},
		VisitUnpatched: true,
	}
	v.Walk(b)
	return t
}

func (t *Table) insert(b *ast.Builder, def ast.DefID, r diag.Reporter) {
	decl := b.DeclOf(def)
	fqn := decl.FQN()
	lower := strings.ToLower(fqn)

	existing, ok := t.folded[lower]
	if !ok {
		t.folded[lower] = def
		t.defs[fqn] = def
		return
	}

	// re-opened module: merge into the first site silently
	if def.Kind == ast.KindModule && existing.Kind == ast.KindModule {
		if _, exact := t.defs[fqn]; exact {
			return
		}
	}

	existingDecl := b.DeclOf(existing)
	diag.ReportError(r, diag.Redefinition, decl.Name.Span,
		"redefinition of '"+fqn+"'").
		WithNote(existingDecl.Name.Span, "'"+existingDecl.FQN()+"' was previously defined here").
		Emit()
}

// Lookup resolves an exact FQN.
func (t *Table) Lookup(fqn string) (ast.DefID, bool) {
	def, ok := t.defs[fqn]
	return def, ok
}

// Len returns the number of distinct definitions in the table.
func (t *Table) Len() int {
	return len(t.defs)
}
