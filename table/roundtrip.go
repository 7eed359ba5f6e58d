// SPDX-License-Identifier: MIT

package table

import "math/big"

// checkRoundTrips verifies t[b][a](t[a][b](x)) == x for every ordered pair
// and sample, in declaration order. The table is never modified.
func checkRoundTrips(t Table, order []string, samples []*big.Rat) error {
	for _, a := range order {
		for _, b := range order {
			if a == b {
				continue
			}
			there, back := t[a][b], t[b][a]
			for _, x := range samples {
				got := back.Apply(there.Apply(x))
				if got.Cmp(x) != 0 {
					return &RoundTripError{From: a, To: b, Sample: new(big.Rat).Set(x), Got: got}
				}
			}
		}
	}

	return nil
}
