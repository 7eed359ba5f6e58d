// SPDX-License-Identifier: MIT

// Package unit defines measurement units and the conversion rule each unit
// declares towards another unit.
//
// What:
//
//   - Conversion: the rule "1 of this unit = ... of unit u". Three kinds:
//   - None:    base unit, no outgoing conversion.
//   - Static:  exact rational amount a, meaning x ↦ a·x. The reciprocal 1/a
//     is computed once and reused for the inverse direction.
//   - Dynamic: an arbitrary forward/inverse Func pair over exact rationals,
//     supporting offset or non-linear relations (temperature-like scales).
//   - Unit: an immutable named entity (plus aliases) carrying its Conversion.
//   - Parse: turns a raw definition (nil, "10 mm", []any{amount, "mm"},
//     []any{Func, "mm"}, []any{DynamicSpec{...}, "mm"}) into a Conversion.
//
// Contract for dynamic rules:
//
//	Forward and Inverse are trusted to be mutual inverses. Nothing in this
//	package verifies it. When Inverse is omitted it defaults to
//	x ↦ 1/Forward(x), which is almost never what an author wants; the table
//	package offers an opt-in round-trip check to surface such rules.
//
// Errors:
//
//   - ErrUnit       conversion definition cannot be parsed (wrapped by *Error).
//   - ErrEmptyName  unit name is empty.
package unit
