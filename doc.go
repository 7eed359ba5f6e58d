// SPDX-License-Identifier: MIT

// Package measured derives exact conversion tables for systems of
// measurement units.
//
// A unit system is declared sparsely: every unit names at most one other
// unit it converts into, either by an exact rational amount ("10 mm") or by
// a dynamic function pair (x ↦ 10x + 10 with its inverse). From that forest
// of declarations the table builder produces the dense table: one exact
// conversion for every ordered pair of units.
//
// Packages:
//
//	unit/          Unit and its declared conversion rule, definition parsing
//	convgraph/     explicit conversion graph, cycle validation
//	table/         conversion accumulator, Table, Builder, Cache contract
//	cache/         Memory (LRU), File (msgpack) and SQLite table caches
//	unitfile/      HCL unit definition files
//	metrics/       Prometheus observer for table builds
//	cmd/measured   check, table and convert from the command line
//
// Quick example:
//
//	mm, _ := unit.New("mm")
//	cm, _ := unit.New("cm", unit.WithValue("10 mm"))
//	m, _ := unit.New("m", unit.WithValue("100 cm"))
//
//	t, err := table.NewBuilder([]*unit.Unit{mm, cm, m}).Table()
//	if err != nil {
//		// *convgraph.CycleError, *table.PathError, ...
//	}
//	x, _ := t.Convert(big.NewRat(5, 2), "m", "mm") // 2500
//
// Static chains compose by exact *big.Rat multiplication, so A→B→A over
// static rules returns the input exactly. Dynamic rules are composed as
// explicit step lists and trusted to be mutual inverses;
// table.WithRoundTripCheck verifies that on demand.
package measured
