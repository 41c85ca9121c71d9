package sema

import (
	"slicec/internal/ast"
	"slicec/internal/diag"
)

// checkInheritance enforces the shape rules: exceptions extend exactly one
// exception at most, classes one class, interfaces any number of interfaces
// without cycles.
func (c *Checker) checkInheritance() {
	for i := range c.b.Exceptions.Slice() {
		exc := &c.b.Exceptions.Slice()[i]
		if len(exc.Bases) > 1 {
			second := c.b.TypeRefs.Get(uint32(exc.Bases[1]))
			c.error(diag.IllegalInheritance, second.Span,
				"exception '"+exc.Name.Value+"' can have only one base exception").Emit()
		}
		for _, baseID := range exc.Bases {
			c.requireBaseKind(baseID, ast.KindException, "exception", exc.Name.Value)
		}
	}

	for i := range c.b.Classes.Slice() {
		class := &c.b.Classes.Slice()[i]
		if len(class.Bases) > 1 {
			second := c.b.TypeRefs.Get(uint32(class.Bases[1]))
			c.error(diag.IllegalInheritance, second.Span,
				"class '"+class.Name.Value+"' can have only one base class").Emit()
		}
		for _, baseID := range class.Bases {
			c.requireBaseKind(baseID, ast.KindClass, "class", class.Name.Value)
		}
	}

	for i := range c.b.Interfaces.Slice() {
		iface := &c.b.Interfaces.Slice()[i]
		for _, baseID := range iface.Bases {
			c.requireBaseKind(baseID, ast.KindInterface, "interface", iface.Name.Value)
		}
	}
	c.checkInterfaceCycles()
}

// requireBaseKind reports when a base reference resolves to a different
// definition kind than the deriving one.
func (c *Checker) requireBaseKind(baseID ast.TypeRefID, want ast.NodeKind, wantName, derived string) {
	target, ok := c.targetOf(baseID)
	if !ok {
		return // unresolved; the patcher already reported it
	}
	if target.Kind == want {
		return
	}
	ref := c.b.TypeRefs.Get(uint32(baseID))
	decl := c.b.DeclOf(target)
	c.error(diag.IllegalInheritance, ref.Span,
		"'"+derived+"' is a "+wantName+" and can only extend another "+wantName+
			", but '"+decl.FQN()+"' is a "+target.Kind.String()).
		WithNote(decl.Name.Span, "'"+decl.FQN()+"' is defined here").
		Emit()
}

// checkInterfaceCycles walks the interface inheritance graph depth-first, in
// arena order, and reports a cycle at the interface where the walk closes it:
// the first interface of the cycle that the walk entered. Each interface is
// reported at most once.
func (c *Checker) checkInterfaceCycles() {
	count := int(c.b.Interfaces.Len())
	// edges[i] lists the base interfaces of interface i+1
	edges := make(map[int][]int, count)
	for i := range c.b.Interfaces.Slice() {
		iface := &c.b.Interfaces.Slice()[i]
		for _, baseID := range iface.Bases {
			target, ok := c.targetOf(baseID)
			if !ok || target.Kind != ast.KindInterface {
				continue
			}
			edges[i] = append(edges[i], int(target.Index)-1)
		}
	}

	const (
		unvisited = 0
		active    = 1
		done      = 2
	)
	state := make([]int, count)
	reported := make([]bool, count)

	var visit func(node int)
	visit = func(node int) {
		state[node] = active
		for _, next := range edges[node] {
			switch state[next] {
			case unvisited:
				visit(next)
			case active:
				if !reported[next] {
					reported[next] = true
					iface := c.b.Interfaces.Get(uint32(next + 1)) //nolint:gosec // arena index
					c.error(diag.IllegalInheritance, iface.Name.Span,
						"interface '"+iface.FQN()+"' inherits from itself").Emit()
				}
			}
		}
		state[node] = done
	}
	for i := 0; i < count; i++ {
		if state[i] == unvisited {
			visit(i)
		}
	}
}

// checkAliasCycles reports type aliases whose chains never reach a concrete
// type.
func (c *Checker) checkAliasCycles() {
	count := int(c.b.Aliases.Len())
	for i := 0; i < count; i++ {
		alias := c.b.Aliases.Get(uint32(i + 1)) //nolint:gosec // arena index
		seen := map[int]struct{}{i: {}}
		current := alias
		for {
			ref := c.b.TypeRefs.Get(uint32(current.Underlying))
			if ref == nil || ref.Kind != ast.TypeRefNamed || !ref.Patched || ref.Target.Kind != ast.KindAlias {
				break
			}
			next := int(ref.Target.Index) - 1
			if _, ok := seen[next]; ok {
				c.error(diag.InfiniteType, alias.Name.Span,
					"type alias '"+alias.FQN()+"' refers to itself").Emit()
				break
			}
			seen[next] = struct{}{}
			current = c.b.Aliases.Get(ref.Target.Index)
		}
	}
}
