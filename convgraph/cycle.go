// SPDX-License-Identifier: MIT

package convgraph

import "fmt"

// Visitation states of a unit during cycle validation.
const (
	White = iota // not visited yet
	Gray         // on the current path
	Black        // its whole chain is proven acyclic
)

// ValidateNoCycles checks every conversion chain of the graph, starting a
// walk from each unit that declares a target.
// Returns *CycleError (wrapping ErrCycleDetected) for the first cycle found.
func (g *Graph) ValidateNoCycles() error {
	state := make(map[string]int, len(g.order))
	path := make([]string, 0, len(g.order))

	for _, origin := range g.order {
		if _, ok := g.edges[origin]; !ok || state[origin] != White {
			continue
		}
		if err := g.walk(origin, state, &path); err != nil {
			return err
		}
	}

	return nil
}

// ValidateNoCyclesFrom checks only the chain starting at origin.
//
// Errors: ErrUnknownUnit when origin is not declared; *CycleError otherwise.
func (g *Graph) ValidateNoCyclesFrom(origin string) error {
	if !g.Has(origin) {
		return fmt.Errorf("%w: %q", ErrUnknownUnit, origin)
	}
	path := make([]string, 0, len(g.order))

	return g.walk(origin, make(map[string]int, len(g.order)), &path)
}

// walk follows the single outgoing edge of each unit starting at origin.
// path holds the ordered units of the current walk; state is shared across
// walks so chains proven acyclic are not re-walked.
func (g *Graph) walk(origin string, state map[string]int, path *[]string) error {
	*path = (*path)[:0]
	cur := origin

	for {
		// 1) Push the current unit on the path.
		state[cur] = Gray
		*path = append(*path, cur)

		// 2) A base unit (or dangling target) ends the walk.
		e, ok := g.edges[cur]
		if !ok {
			break
		}

		// 3) Inspect the target.
		next := state[e.To]
		if next == Gray {
			return &CycleError{From: e.From, To: e.To, Cycle: closeCycle(*path, e.To)}
		}
		if next == Black {
			break
		}
		cur = e.To
	}

	// 4) Every unit on this path now leads to a root.
	for _, name := range *path {
		state[name] = Black
	}

	return nil
}

// closeCycle extracts [to, ..., last, to] from the current path.
func closeCycle(path []string, to string) []string {
	start := 0
	for i, name := range path {
		if name == to {
			start = i
			break
		}
	}
	cycle := append([]string(nil), path[start:]...)

	return append(cycle, to)
}
