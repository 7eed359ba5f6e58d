// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"math/big"

	"github.com/spf13/cobra"
)

func newConvertCmd(a *app) *cobra.Command {
	var decimals int

	cmd := &cobra.Command{
		Use:     "convert <amount> <from> <to>",
		Short:   "Convert an exact amount between two units or aliases",
		Example: "measured convert -f length.hcl 5/2 m mm",
		Args:    cobra.ExactArgs(3),
		RunE: func(_ *cobra.Command, args []string) error {
			amount, ok := new(big.Rat).SetString(args[0])
			if !ok {
				return fmt.Errorf("amount %q is not a rational", args[0])
			}

			units, err := a.loadUnits()
			if err != nil {
				return err
			}
			names := newResolver(units)
			from, err := names.resolve(args[1])
			if err != nil {
				return err
			}
			to, err := names.resolve(args[2])
			if err != nil {
				return err
			}

			t, err := tableFor(a, units, false)
			if err != nil {
				return err
			}
			got, err := t.Convert(amount, from, to)
			if err != nil {
				return err
			}

			value := got.RatString()
			if decimals >= 0 {
				value = got.FloatString(decimals)
			}
			fmt.Fprintf(a.out, "%s %s = %s %s\n", amount.RatString(), from, value, to)

			return nil
		},
	}
	cmd.Flags().IntVar(&decimals, "decimals", -1, "print the result rounded to this many decimals instead of as a fraction")

	return cmd
}
