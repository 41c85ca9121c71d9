package sema

import (
	"slicec/internal/ast"
	"slicec/internal/diag"
	"slicec/internal/scopes"
	"slicec/internal/source"
)

// Checker runs the semantic validators over a fully patched AST.
// Validators only report; they never mutate the tree.
type Checker struct {
	b         *ast.Builder
	table     *scopes.Table
	r         diag.Reporter
	encByFile map[source.FileID]ast.Encoding
}

// Check runs every validator in a fixed order so diagnostic output is
// deterministic before sorting.
func Check(b *ast.Builder, table *scopes.Table, r diag.Reporter) {
	c := &Checker{
		b:         b,
		table:     table,
		r:         r,
		encByFile: make(map[source.FileID]ast.Encoding),
	}
	for _, file := range b.Files.Slice() {
		c.encByFile[file.Source] = file.Encoding
	}

	c.checkIdentifierStyle()
	c.checkDuplicateMembers()
	c.checkInheritance()
	c.checkAliasCycles()
	c.checkTypeCycles()
	c.checkTags()
	c.checkEnums()
	c.checkDictionaryKeys()
	c.checkEncodings()
	c.checkOperations()
	c.checkAttributes()
	c.checkDeprecatedUsage()
	c.checkCompactTypeIDs()
}

func (c *Checker) encodingOf(file source.FileID) ast.Encoding {
	if enc, ok := c.encByFile[file]; ok {
		return enc
	}
	return ast.EncodingSlice2
}

func (c *Checker) error(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportError(c.r, code, sp, msg)
}

func (c *Checker) warning(code diag.Code, sp source.Span, msg string) *diag.ReportBuilder {
	return diag.ReportWarning(c.r, code, sp, msg)
}

// resolveAlias follows a type reference through alias chains to the
// underlying reference. Optionality accumulates: an optional alias of a
// required type yields an optional result. Alias cycles terminate the walk
// and return the last reference seen; checkAliasCycles reports them.
func (c *Checker) resolveAlias(id ast.TypeRefID) (ref *ast.TypeRef, optional bool) {
	seen := make(map[ast.AliasID]struct{})
	for {
		ref = c.b.TypeRefs.Get(uint32(id))
		if ref == nil {
			return nil, optional
		}
		optional = optional || ref.Optional
		if ref.Kind != ast.TypeRefNamed || !ref.Patched || ref.Target.Kind != ast.KindAlias {
			return ref, optional
		}
		aliasID := ast.AliasID(ref.Target.Index)
		if _, ok := seen[aliasID]; ok {
			return ref, optional
		}
		seen[aliasID] = struct{}{}
		id = c.b.Aliases.Get(ref.Target.Index).Underlying
	}
}

// targetOf returns the definition a patched named reference points at,
// resolving alias chains first.
func (c *Checker) targetOf(id ast.TypeRefID) (ast.DefID, bool) {
	ref, _ := c.resolveAlias(id)
	if ref == nil || ref.Kind != ast.TypeRefNamed || !ref.Patched {
		return ast.NoDef, false
	}
	return ref.Target, true
}

// eachContainer invokes fn for every struct, class, and exception with its
// fields, in arena order.
func (c *Checker) eachContainer(fn func(def ast.DefID, decl *ast.Decl, fields []ast.FieldID)) {
	for i, s := range c.b.Structs.Slice() {
		def := ast.DefID{Kind: ast.KindStruct, Index: uint32(i + 1)} //nolint:gosec // arena index
		fn(def, &c.b.Structs.Slice()[i].Decl, s.Fields)
	}
	for i, cl := range c.b.Classes.Slice() {
		def := ast.DefID{Kind: ast.KindClass, Index: uint32(i + 1)} //nolint:gosec // arena index
		fn(def, &c.b.Classes.Slice()[i].Decl, cl.Fields)
	}
	for i, e := range c.b.Exceptions.Slice() {
		def := ast.DefID{Kind: ast.KindException, Index: uint32(i + 1)} //nolint:gosec // arena index
		fn(def, &c.b.Exceptions.Slice()[i].Decl, e.Fields)
	}
}
