// SPDX-License-Identifier: MIT

package table

import (
	"github.com/katalvlaran/measured/convgraph"
	"github.com/katalvlaran/measured/unit"
)

// pairKey identifies a direct-lookup query.
type pairKey struct{ to, from string }

// direct is a memoized direct-lookup result; ok is false when no edge joins
// the pair.
type direct struct {
	forward Conversion // from → to
	inverse Conversion // to → from
	ok      bool
}

// generator holds the state of one table construction. It is discarded
// once the table is built.
type generator struct {
	graph *convgraph.Graph
	rules map[string]unit.Conversion
	memo  map[pairKey]direct
}

func newGenerator(g *convgraph.Graph, units []*unit.Unit) *generator {
	rules := make(map[string]unit.Conversion, len(units))
	for _, u := range units {
		rules[u.Name()] = u.Conversion()
	}

	return &generator{
		graph: g,
		rules: rules,
		memo:  make(map[pairKey]direct, 2*len(units)),
	}
}

// generate assembles the dense table in declaration order.
func (gen *generator) generate() (Table, error) {
	nodes := gen.graph.Nodes()
	t := make(Table, len(nodes))
	processed := make([]string, 0, len(nodes))

	for _, name := range nodes {
		// 1) Diagonal: exact identity.
		row := make(map[string]Conversion, len(nodes))
		row[name] = Identity()

		// 2) Both directions against every unit already processed.
		for _, other := range processed {
			forward, inverse, err := gen.find(other, name)
			if err != nil {
				return nil, err
			}
			row[other] = forward
			t[other][name] = inverse
		}

		t[name] = row
		processed = append(processed, name)
	}

	return t, nil
}

// find returns the conversions from → to and to → from.
func (gen *generator) find(to, from string) (Conversion, Conversion, error) {
	if d := gen.direct(to, from); d.ok {
		return d.forward, d.inverse, nil
	}
	if forward, inverse, ok := gen.traverse(from, to); ok {
		return forward, inverse, nil
	}

	return Conversion{}, Conversion{}, &PathError{From: from, To: to}
}

// direct returns the memoized direct lookup of from → to.
func (gen *generator) direct(to, from string) direct {
	key := pairKey{to: to, from: from}
	if d, ok := gen.memo[key]; ok {
		return d
	}
	d := gen.lookupDirect(to, from)
	gen.memo[key] = d

	return d
}

// lookupDirect finds a declaration joining from and to, in either direction.
func (gen *generator) lookupDirect(to, from string) direct {
	if e, ok := gen.graph.Edge(from); ok && e.To == to {
		forward, inverse := fromRule(gen.rules[from])

		return direct{forward: forward, inverse: inverse, ok: true}
	}
	if e, ok := gen.graph.Edge(to); ok && e.To == from {
		forward, inverse := fromRule(gen.rules[to])

		return direct{forward: inverse, inverse: forward, ok: true}
	}

	return direct{}
}

// traverse searches depth-first from → to through declared units, carrying
// the composed forward and inverse conversions as explicit values.
func (gen *generator) traverse(from, to string) (Conversion, Conversion, bool) {
	visited := make(map[string]bool, gen.graph.Len())

	return gen.hop(from, to, visited, Identity(), Identity())
}

// hop explores the neighbors of at. forward converts the search origin into
// at; inverse converts at back into the origin.
func (gen *generator) hop(at, to string, visited map[string]bool, forward, inverse Conversion) (Conversion, Conversion, bool) {
	visited[at] = true

	for _, next := range gen.graph.Neighbors(at) {
		if visited[next] {
			continue
		}
		d := gen.direct(next, at)
		if !d.ok {
			continue
		}

		// origin → at → next, and next → at → origin.
		f := forward.Then(d.forward)
		i := d.inverse.Then(inverse)
		if next == to {
			return f, i, true
		}
		if f, i, ok := gen.hop(next, to, visited, f, i); ok {
			return f, i, true
		}
	}

	return Conversion{}, Conversion{}, false
}
