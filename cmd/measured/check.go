// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/measured/convgraph"
	"github.com/katalvlaran/measured/table"
)

func newCheckCmd(a *app) *cobra.Command {
	var (
		samples []string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate that every pair of units converts, without using the cache",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			units, err := a.loadUnits()
			if err != nil {
				return err
			}

			var opts []table.Option
			if len(samples) > 0 {
				rats, err := parseSamples(samples)
				if err != nil {
					return err
				}
				opts = append(opts, table.WithRoundTripCheck(rats...))
			}

			// check always builds fresh.
			b := a.builder(units, nil, opts...)

			t, err := b.Table()
			if err != nil {
				return err
			}

			g, err := convgraph.New(b.Units())
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "ok: %d units, %d roots (%s)\n", t.Len(), len(g.Roots()), strings.Join(g.Roots(), ", "))
			if verbose {
				for _, name := range g.Nodes() {
					chain, err := g.Chain(name)
					if err != nil {
						return err
					}
					fmt.Fprintln(a.out, strings.Join(chain, " -> "))
				}
			}

			return nil
		},
	}
	cmd.Flags().StringSliceVar(&samples, "round-trip", nil, "verify A->B->A returns each sample exactly, e.g. --round-trip 1,-40")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print every unit's chain to its root")

	return cmd
}

func parseSamples(raw []string) ([]*big.Rat, error) {
	out := make([]*big.Rat, 0, len(raw))
	for _, s := range raw {
		r, ok := new(big.Rat).SetString(s)
		if !ok {
			return nil, fmt.Errorf("--round-trip: %q is not a rational", s)
		}
		out = append(out, r)
	}

	return out, nil
}
