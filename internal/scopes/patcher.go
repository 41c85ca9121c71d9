package scopes

import (
	"strings"

	"slicec/internal/ast"
	"slicec/internal/diag"
)

// Patch resolves every unpatched named type reference against the table.
//
// A reference with a leading '::' is looked up absolutely. Otherwise the
// lookup starts at the referencing scope and walks outward one scope at a
// time until the root; the first hit wins, which is what makes inner
// definitions shadow outer ones.
//
// Resolving a type alias yields the alias itself; alias chains and their
// cycles are a validation concern.
func Patch(b *ast.Builder, t *Table, r diag.Reporter) {
	for i := range b.TypeRefs.Slice() {
		id := ast.TypeRefID(i + 1) //nolint:gosec // arena indices are 1-based
		ref := b.TypeRefs.Get(uint32(id))
		if !ref.NeedsPatching() {
			continue
		}

		target, ok := resolve(t, ref)
		if !ok {
			diag.ReportError(r, diag.DoesNotExist, ref.Name.Span,
				"no definition named '"+displayName(ref)+"' exists in this scope").Emit()
			continue
		}
		if !isTypeKind(target.Kind) {
			decl := b.DeclOf(target)
			diag.ReportError(r, diag.DoesNotExist, ref.Name.Span,
				"'"+decl.FQN()+"' is a "+target.Kind.String()+", not a type").
				WithNote(decl.Name.Span, "'"+decl.FQN()+"' is defined here").
				Emit()
			continue
		}
		b.Patch(id, target)
	}
}

func resolve(t *Table, ref *ast.TypeRef) (ast.DefID, bool) {
	if ref.Global {
		return t.Lookup(ref.Name.Value)
	}

	scope := ref.Scope
	for {
		if def, ok := t.Lookup(ast.JoinScope(scope, ref.Name.Value)); ok {
			return def, true
		}
		if scope == "" {
			return ast.NoDef, false
		}
		if idx := strings.LastIndex(scope, "::"); idx >= 0 {
			scope = scope[:idx]
		} else {
			scope = ""
		}
	}
}

func displayName(ref *ast.TypeRef) string {
	if ref.Global {
		return "::" + ref.Name.Value
	}
	return ref.Name.Value
}

func isTypeKind(k ast.NodeKind) bool {
	switch k {
	case ast.KindStruct, ast.KindClass, ast.KindException, ast.KindInterface,
		ast.KindEnum, ast.KindTrait, ast.KindCustom, ast.KindAlias:
		return true
	default:
		return false
	}
}
