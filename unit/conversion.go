// SPDX-License-Identifier: MIT

package unit

import (
	"math/big"
)

// Func transforms an amount expressed in one unit into another unit.
// Implementations must not mutate x and must return a non-nil value.
type Func func(x *big.Rat) *big.Rat

// Kind tags the variant held by a Conversion.
type Kind uint8

const (
	// KindNone marks a base unit: no declared conversion.
	KindNone Kind = iota
	// KindStatic marks an exact rational factor.
	KindStatic
	// KindDynamic marks a forward/inverse function pair.
	KindDynamic
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindDynamic:
		return "dynamic"
	default:
		return "none"
	}
}

// Conversion is the rule a unit declares towards its target unit.
// The zero value is a valid base-unit conversion (KindNone).
type Conversion struct {
	kind Kind
	unit string // target unit name; empty for KindNone

	amount  *big.Rat // KindStatic: 1 of this = amount of unit
	inverse *big.Rat // KindStatic: cached 1/amount

	forward     Func   // KindDynamic
	backward    Func   // KindDynamic
	description string // KindDynamic display label, may be empty
}

// None returns the conversion of a base unit.
func None() Conversion {
	return Conversion{}
}

// Static returns the rule "1 of this unit = amount of unit to".
// The amount is copied; its reciprocal is computed once here.
//
// Errors: ErrUnit when amount is nil or zero, or when to is empty.
func Static(amount *big.Rat, to string) (Conversion, error) {
	if amount == nil {
		return Conversion{}, parseError(amount, "amount is nil")
	}
	if amount.Sign() == 0 {
		return Conversion{}, parseError(amount.RatString(), "amount must be non-zero")
	}
	if to == "" {
		return Conversion{}, parseError(amount.RatString(), "target unit is empty")
	}

	a := new(big.Rat).Set(amount)

	return Conversion{
		kind:    KindStatic,
		unit:    to,
		amount:  a,
		inverse: new(big.Rat).Inv(a),
	}, nil
}

// Dynamic returns the rule "x of this unit = forward(x) of unit to", with
// inverse mapping amounts of unit to back into this unit.
// A nil inverse falls back to x ↦ 1/forward(x).
//
// Errors: ErrUnit when forward is nil or when to is empty.
func Dynamic(to string, forward, inverse Func, description string) (Conversion, error) {
	if forward == nil {
		return Conversion{}, parseError(description, "forward function is nil")
	}
	if to == "" {
		return Conversion{}, parseError(description, "target unit is empty")
	}
	if inverse == nil {
		inverse = reciprocal(forward)
	}

	return Conversion{
		kind:        KindDynamic,
		unit:        to,
		forward:     forward,
		backward:    inverse,
		description: description,
	}, nil
}

// Kind reports which variant c holds.
func (c Conversion) Kind() Kind { return c.kind }

// IsStatic reports whether c is an exact rational factor.
func (c Conversion) IsStatic() bool { return c.kind == KindStatic }

// IsDynamic reports whether c is a function pair.
func (c Conversion) IsDynamic() bool { return c.kind == KindDynamic }

// Unit returns the target unit name, or "" for a base unit.
func (c Conversion) Unit() string { return c.unit }

// Amount returns a copy of the static factor.
func (c Conversion) Amount() (*big.Rat, bool) {
	if c.kind != KindStatic {
		return nil, false
	}

	return new(big.Rat).Set(c.amount), true
}

// InverseAmount returns a copy of the cached reciprocal of the static factor.
func (c Conversion) InverseAmount() (*big.Rat, bool) {
	if c.kind != KindStatic {
		return nil, false
	}

	return new(big.Rat).Set(c.inverse), true
}

// Forward returns the function converting this unit into the target unit.
// Static rules multiply by the amount. Base units return nil.
func (c Conversion) Forward() Func {
	switch c.kind {
	case KindStatic:
		return multiplier(c.amount)
	case KindDynamic:
		return c.forward
	default:
		return nil
	}
}

// Inverse returns the function converting the target unit back into this
// unit. Static rules multiply by the cached reciprocal. Base units return nil.
func (c Conversion) Inverse() Func {
	switch c.kind {
	case KindStatic:
		return multiplier(c.inverse)
	case KindDynamic:
		return c.backward
	default:
		return nil
	}
}

// Description returns the display label of a dynamic rule.
func (c Conversion) Description() string { return c.description }

// String renders the rule: the description of a dynamic rule, "<amount> <unit>"
// for a static rule, "" when there is nothing printable.
func (c Conversion) String() string {
	switch c.kind {
	case KindStatic:
		return c.amount.RatString() + " " + c.unit
	case KindDynamic:
		return c.description
	default:
		return ""
	}
}

func multiplier(factor *big.Rat) Func {
	return func(x *big.Rat) *big.Rat {
		return new(big.Rat).Mul(x, factor)
	}
}

func reciprocal(fn Func) Func {
	return func(x *big.Rat) *big.Rat {
		y := fn(x)
		if y.Sign() == 0 {
			return new(big.Rat)
		}

		return new(big.Rat).Inv(y)
	}
}
