// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/big"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/measured/table"
	"github.com/katalvlaran/measured/unit"
)

func newTableCmd(a *app) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the conversion factor of every pair of units",
		Long: `Print the conversion factor of every pair of units.

Static entries print their exact factor. Entries composed through a dynamic
rule print the value of one source unit, marked with "=".`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			units, err := a.loadUnits()
			if err != nil {
				return err
			}
			t, err := tableFor(a, units, refresh)
			if err != nil {
				return err
			}

			return printTable(a, t, units)
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "rebuild and rewrite the cache")

	return cmd
}

// tableFor serves the table from the --cache database when possible.
// Otherwise it builds once and writes the result back if it is static;
// tables with dynamic conversions are returned uncached.
func tableFor(a *app, units []*unit.Unit, refresh bool) (table.Table, error) {
	store, release, err := a.openCache(units)
	if err != nil {
		return nil, err
	}
	defer release()

	if store != nil && !refresh {
		b := a.builder(units, store)
		hit, err := b.Cached()
		if err != nil {
			return nil, err
		}
		if hit {
			return b.Table()
		}
	}

	t, err := a.builder(units, nil).Table()
	if err != nil || store == nil {
		return t, err
	}
	if !t.Static() {
		a.logger.Info("table not cached", "reason", "dynamic conversions have no serialized form")
		return t, nil
	}
	if err = store.Write(t); err != nil {
		return nil, fmt.Errorf("cache write: %w", err)
	}
	a.logger.Debug("conversion table cached", "units", t.Len())

	return t, nil
}

func printTable(a *app, t table.Table, units []*unit.Unit) error {
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tTO\tFACTOR")

	one := big.NewRat(1, 1)
	for _, from := range units {
		for _, to := range units {
			if from == to {
				continue
			}
			c := t[from.Name()][to.Name()]
			if f, ok := c.Factor(); ok {
				fmt.Fprintf(w, "%s\t%s\t%s\n", from.Name(), to.Name(), f.RatString())
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t= %s\n", from.Name(), to.Name(), c.Apply(one).RatString())
		}
	}

	return w.Flush()
}
