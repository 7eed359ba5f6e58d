// SPDX-License-Identifier: MIT

// Package convgraph models the conversion graph of a unit collection and
// validates that it is acyclic.
//
// What:
//
//   - Nodes are unit names; a directed edge A → B exists iff unit A declares
//     its conversion in terms of unit B.
//   - Every unit has at most one outgoing edge, so a valid graph is a forest
//     of rooted trees whose roots are the base units.
//   - Graph is an explicit adjacency structure built once per table
//     construction: declaration order, name → outgoing edge, and a reverse
//     child index used for path discovery.
//
// Cycle validation:
//
//	ValidateNoCycles walks from EVERY unit that declares a target, following
//	its single outgoing edge, and keeps the ordered path of the current walk.
//	Reaching a unit already on that path fails with *CycleError carrying the
//	closing edge. Three-color marking (White, Gray, Black) lets later walks
//	stop as soon as they join a chain already proven acyclic.
//	An edge towards an undeclared unit ends the walk; such dangling targets
//	surface later as missing conversion paths.
//
// Complexity:
//
//   - New:              Time O(V log V), Memory O(V)
//   - ValidateNoCycles: Time O(V), Memory O(V)
//   - Neighbors:        Time O(d), d = number of adjacent units
//
// Errors:
//
//   - ErrEmptyName      a node has an empty name.
//   - ErrDuplicateUnit  two nodes share a name.
//   - ErrUnknownUnit    the requested origin is not declared.
//   - ErrCycleDetected  a conversion chain revisits a unit (wrapped by *CycleError).
package convgraph
