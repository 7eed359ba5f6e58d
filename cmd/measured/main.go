// SPDX-License-Identifier: MIT

// Command measured validates unit definition files and prints or applies
// their conversion tables.
//
//	measured check   -f units.hcl
//	measured table   -f units.hcl
//	measured convert -f units.hcl 5/2 m mm
//
// Every flag can also be set through a MEASURED_<FLAG> environment variable
// (dashes become underscores) or a config file passed with --config.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "measured:", err)
		os.Exit(1)
	}
}
