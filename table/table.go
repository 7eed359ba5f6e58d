// SPDX-License-Identifier: MIT

package table

import (
	"fmt"
	"math/big"
	"sort"
)

// Table maps a unit name to the conversions from it into every unit:
// t[from][to].Apply(x) converts x of from into to.
type Table map[string]map[string]Conversion

// Lookup returns the conversion from → to.
func (t Table) Lookup(from, to string) (Conversion, bool) {
	row, ok := t[from]
	if !ok {
		return Conversion{}, false
	}
	c, ok := row[to]

	return c, ok
}

// Convert converts x of unit from into unit to.
//
// Errors: ErrUnknownUnit when either unit is absent.
func (t Table) Convert(x *big.Rat, from, to string) (*big.Rat, error) {
	c, ok := t.Lookup(from, to)
	if !ok {
		return nil, fmt.Errorf("%w: %q -> %q", ErrUnknownUnit, from, to)
	}

	return c.Apply(x), nil
}

// Units returns the unit names of the table, sorted.
func (t Table) Units() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Len returns the number of units in the table.
func (t Table) Len() int { return len(t) }

// Static reports whether every entry is an identity or an exact factor,
// i.e. whether the table can be represented without functions.
func (t Table) Static() bool {
	for _, row := range t {
		for _, c := range row {
			if c.Kind() == KindComposed {
				return false
			}
		}
	}

	return true
}
