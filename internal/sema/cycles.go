package sema

import (
	"sort"
	"strings"

	"slicec/internal/ast"
	"slicec/internal/diag"
)

// checkTypeCycles detects infinite types: structs, classes, and exceptions
// that transitively contain themselves through required fields. Optional
// fields break cycles, except for compact structs, which must be acyclic
// even through optional fields. Sequences and dictionaries are variable
// length and never create containment cycles; type aliases are transparent.
func (c *Checker) checkTypeCycles() {
	g := c.buildContainmentGraph()

	reported := make(map[int]bool)

	// required edges only: any non-trivial SCC is an infinite type
	for _, scc := range stronglyConnected(g.nodeCount, g.requiredEdges()) {
		if len(scc) > 1 || g.selfLoop(scc[0], false) {
			c.reportCycle(g, scc)
			for _, node := range scc {
				reported[node] = true
			}
		}
	}

	// all edges: a cycle is still illegal if a compact struct sits on it
	for _, scc := range stronglyConnected(g.nodeCount, g.allEdges()) {
		if len(scc) == 1 && !g.selfLoop(scc[0], true) {
			continue
		}
		hasCompact := false
		alreadyReported := true
		for _, node := range scc {
			if g.isCompact(c.b, node) {
				hasCompact = true
			}
			if !reported[node] {
				alreadyReported = false
			}
		}
		if hasCompact && !alreadyReported {
			c.reportCycle(g, scc)
			for _, node := range scc {
				reported[node] = true
			}
		}
	}
}

// containmentGraph numbers structs, classes, and exceptions consecutively.
type containmentGraph struct {
	nodeCount int
	structs   int // structs occupy [0, structs)
	classes   int // classes occupy [structs, structs+classes)
	required  map[int][]int
	optional  map[int][]int
	defs      []ast.DefID
}

func (c *Checker) buildContainmentGraph() *containmentGraph {
	g := &containmentGraph{
		structs:  int(c.b.Structs.Len()),
		classes:  int(c.b.Classes.Len()),
		required: make(map[int][]int),
		optional: make(map[int][]int),
	}
	g.nodeCount = g.structs + g.classes + int(c.b.Exceptions.Len())
	g.defs = make([]ast.DefID, g.nodeCount)

	node := func(def ast.DefID) (int, bool) {
		switch def.Kind {
		case ast.KindStruct:
			return int(def.Index) - 1, true
		case ast.KindClass:
			return g.structs + int(def.Index) - 1, true
		case ast.KindException:
			return g.structs + g.classes + int(def.Index) - 1, true
		default:
			return 0, false
		}
	}

	addEdges := func(def ast.DefID, fields []ast.FieldID) {
		from, ok := node(def)
		if !ok {
			return
		}
		g.defs[from] = def
		for _, fieldID := range fields {
			field := c.b.Fields.Get(uint32(fieldID))
			ref, optional := c.resolveAlias(field.Type)
			if ref == nil || ref.Kind != ast.TypeRefNamed || !ref.Patched {
				continue
			}
			to, ok := node(ref.Target)
			if !ok {
				continue
			}
			if optional {
				g.optional[from] = append(g.optional[from], to)
			} else {
				g.required[from] = append(g.required[from], to)
			}
		}
	}

	c.eachContainer(func(def ast.DefID, _ *ast.Decl, fields []ast.FieldID) {
		addEdges(def, fields)
	})
	return g
}

func (g *containmentGraph) requiredEdges() map[int][]int {
	return g.required
}

func (g *containmentGraph) allEdges() map[int][]int {
	all := make(map[int][]int, len(g.required))
	for from, tos := range g.required {
		all[from] = append(all[from], tos...)
	}
	for from, tos := range g.optional {
		all[from] = append(all[from], tos...)
	}
	return all
}

func (g *containmentGraph) selfLoop(node int, includeOptional bool) bool {
	for _, to := range g.required[node] {
		if to == node {
			return true
		}
	}
	if includeOptional {
		for _, to := range g.optional[node] {
			if to == node {
				return true
			}
		}
	}
	return false
}

func (g *containmentGraph) isCompact(b *ast.Builder, node int) bool {
	def := g.defs[node]
	if def.Kind != ast.KindStruct {
		return false
	}
	return b.Structs.Get(def.Index).Compact
}

func (c *Checker) reportCycle(g *containmentGraph, scc []int) {
	sort.Ints(scc)
	names := make([]string, 0, len(scc))
	for _, node := range scc {
		names = append(names, c.b.DeclOf(g.defs[node]).FQN())
	}

	first := c.b.DeclOf(g.defs[scc[0]])
	builder := c.error(diag.InfiniteType, first.Name.Span,
		"type '"+strings.Join(names, "', '")+"' cannot contain itself without an optional link")
	for _, node := range scc[1:] {
		decl := c.b.DeclOf(g.defs[node])
		builder.WithNote(decl.Name.Span, "'"+decl.FQN()+"' participates in the cycle")
	}
	builder.Emit()
}

// stronglyConnected returns the strongly connected components of the graph
// in a deterministic order (iterative Tarjan).
func stronglyConnected(nodeCount int, edges map[int][]int) [][]int {
	const undefined = -1
	index := make([]int, nodeCount)
	lowlink := make([]int, nodeCount)
	onStack := make([]bool, nodeCount)
	for i := range index {
		index[i] = undefined
	}

	var (
		counter int
		stack   []int
		sccs    [][]int
	)

	type frame struct {
		node int
		edge int
	}

	for start := 0; start < nodeCount; start++ {
		if index[start] != undefined {
			continue
		}
		callStack := []frame{{node: start}}
		index[start] = counter
		lowlink[start] = counter
		counter++
		stack = append(stack, start)
		onStack[start] = true

		for len(callStack) > 0 {
			f := &callStack[len(callStack)-1]
			if f.edge < len(edges[f.node]) {
				next := edges[f.node][f.edge]
				f.edge++
				if index[next] == undefined {
					index[next] = counter
					lowlink[next] = counter
					counter++
					stack = append(stack, next)
					onStack[next] = true
					callStack = append(callStack, frame{node: next})
				} else if onStack[next] {
					if index[next] < lowlink[f.node] {
						lowlink[f.node] = index[next]
					}
				}
				continue
			}

			node := f.node
			callStack = callStack[:len(callStack)-1]
			if len(callStack) > 0 {
				parent := &callStack[len(callStack)-1]
				if lowlink[node] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[node]
				}
			}
			if lowlink[node] == index[node] {
				var scc []int
				for {
					top := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[top] = false
					scc = append(scc, top)
					if top == node {
						break
					}
				}
				sccs = append(sccs, scc)
			}
		}
	}
	return sccs
}
