// SPDX-License-Identifier: MIT

// Package unitfile loads unit collections from HCL definition files.
//
//	unit "mm" {}
//
//	unit "cm" {
//	  value   = "10 mm"
//	  aliases = ["centimetre", "centimeter"]
//	}
//
//	unit "celsius" {
//	  to          = "kelvin"
//	  scale       = 1
//	  offset      = "5463/20"
//	  description = "kelvin - 273.15"
//	}
//
// A block declares at most one of value (a static "<amount> <unit>" string)
// and to. With to, x of the unit is scale·x + offset of the target; scale
// defaults to 1 and offset to 0. Without an offset the rule stays static and
// exact. scale and offset accept HCL numbers or rational strings such as
// "5/9". Units keep the order of their blocks.
package unitfile
