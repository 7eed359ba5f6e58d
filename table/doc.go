// SPDX-License-Identifier: MIT

// Package table builds the fully dense conversion table of a unit collection
// from its sparse parent→child declarations.
//
// What:
//
//   - Builder.Table() returns Table, where t[from][to] converts an amount of
//     unit from into unit to. Every ordered pair of declared units is present,
//     including the diagonal mapped to an exact identity.
//   - A cache hit is returned verbatim, without validation or generation.
//   - Builder.UpdateCache() always regenerates and writes the cache.
//
// Generation:
//
//  1. Build the conversion graph (convgraph) and validate it is acyclic.
//  2. Process units in declaration order. Each new unit U gets U→U = identity,
//     then for every unit V already processed:
//     a) direct lookup: U declares V as target, or V declares U (memoized per
//     (to, from) pair for the lifetime of this build);
//     b) otherwise a depth-first search from U through declared neighbors,
//     composing forward conversions source-first and inverse conversions in
//     mirrored order;
//     c) otherwise fail with *PathError.
//  3. Record t[U][V] and t[V][U].
//
// Numeric semantics:
//
//	Static factors are *big.Rat and compose by exact multiplication, so a
//	round trip A→B→A over static rules returns exactly the input. Dynamic
//	rules are trusted to be mutual inverses; WithRoundTripCheck verifies it
//	on demand and never alters the rules.
//
// Concurrency:
//
//	A Builder is synchronous and not safe for concurrent use. A returned
//	Table must be treated as read-only. At-most-once construction across
//	callers is the responsibility of the Cache implementation.
//
// Errors:
//
//   - ErrMissingConversionPath   two units share no direct or composed path (*PathError).
//   - ErrRoundTrip               opt-in round-trip check failed (*RoundTripError).
//   - ErrUnknownUnit             Convert/Lookup on a unit absent from the table.
//   - convgraph.ErrCycleDetected a declared cycle (*convgraph.CycleError).
//   - convgraph.ErrDuplicateUnit two units share a name.
package table
