// SPDX-License-Identifier: MIT

package convgraph

import (
	"fmt"
	"sort"
)

// Node is the part of a unit the graph needs: its name and the name of the
// unit it converts into ("" for a base unit). *unit.Unit satisfies it.
type Node interface {
	Name() string
	ConversionUnit() string
}

// Edge is a declared direct conversion From → To.
type Edge struct {
	// From is the declaring unit.
	From string

	// To is the target unit named in the declaration.
	To string
}

// Graph is the explicit conversion graph of one unit collection.
// It is read-only after New and safe for concurrent reads.
type Graph struct {
	order    []string            // declaration order
	index    map[string]int      // name → position in order
	edges    map[string]Edge     // name → its single outgoing edge
	adjacent map[string][]string // name → declared units one edge away, declaration order
}

// New builds the graph of nodes in declaration order.
//
// Errors: ErrEmptyName, ErrDuplicateUnit.
func New[N Node](nodes []N) (*Graph, error) {
	g := &Graph{
		order:    make([]string, 0, len(nodes)),
		index:    make(map[string]int, len(nodes)),
		edges:    make(map[string]Edge, len(nodes)),
		adjacent: make(map[string][]string, len(nodes)),
	}

	// 1) Register names and outgoing edges.
	for _, n := range nodes {
		name := n.Name()
		if name == "" {
			return nil, ErrEmptyName
		}
		if _, dup := g.index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateUnit, name)
		}
		g.index[name] = len(g.order)
		g.order = append(g.order, name)

		if to := n.ConversionUnit(); to != "" {
			g.edges[name] = Edge{From: name, To: to}
		}
	}

	// 2) Index both directions of every edge between declared units.
	for _, e := range g.edges {
		if _, ok := g.index[e.To]; !ok {
			continue // dangling target
		}
		g.adjacent[e.From] = append(g.adjacent[e.From], e.To)
		if e.From != e.To {
			g.adjacent[e.To] = append(g.adjacent[e.To], e.From)
		}
	}

	// 3) Deterministic neighbor order.
	for name, nbs := range g.adjacent {
		sort.Slice(nbs, func(i, j int) bool { return g.index[nbs[i]] < g.index[nbs[j]] })
		g.adjacent[name] = nbs
	}

	return g, nil
}

// Len returns the number of declared units.
func (g *Graph) Len() int { return len(g.order) }

// Nodes returns the unit names in declaration order.
func (g *Graph) Nodes() []string { return append([]string(nil), g.order...) }

// Has reports whether name is declared.
func (g *Graph) Has(name string) bool {
	_, ok := g.index[name]

	return ok
}

// Edge returns the outgoing edge of name, if it declares one.
func (g *Graph) Edge(name string) (Edge, bool) {
	e, ok := g.edges[name]

	return e, ok
}

// Edges returns every declared edge in declaration order of its source.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, 0, len(g.edges))
	for _, name := range g.order {
		if e, ok := g.edges[name]; ok {
			out = append(out, e)
		}
	}

	return out
}

// Neighbors returns the declared units joined to name by one direct edge in
// either direction, in declaration order. Dangling targets are excluded.
func (g *Graph) Neighbors(name string) []string {
	return append([]string(nil), g.adjacent[name]...)
}

// Roots returns the base units (no outgoing edge) in declaration order.
func (g *Graph) Roots() []string {
	var roots []string
	for _, name := range g.order {
		if _, ok := g.edges[name]; !ok {
			roots = append(roots, name)
		}
	}

	return roots
}

// Chain returns the walk from name along outgoing edges, ending at a base
// unit or at the last unit whose target is undeclared.
//
// Errors: ErrUnknownUnit for an undeclared name; *CycleError when the walk
// revisits a unit.
func (g *Graph) Chain(name string) ([]string, error) {
	if !g.Has(name) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, name)
	}

	chain := []string{name}
	seen := map[string]bool{name: true}
	for at := name; ; {
		e, ok := g.edges[at]
		if !ok || !g.Has(e.To) {
			return chain, nil
		}
		if seen[e.To] {
			return nil, &CycleError{From: e.From, To: e.To, Cycle: closeCycle(chain, e.To)}
		}
		seen[e.To] = true
		chain = append(chain, e.To)
		at = e.To
	}
}
