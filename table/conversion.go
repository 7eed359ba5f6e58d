// SPDX-License-Identifier: MIT

package table

import (
	"math/big"
	"strconv"

	"github.com/katalvlaran/measured/unit"
)

// Kind tags the variant held by a Conversion.
type Kind uint8

const (
	// KindIdentity converts an amount to itself.
	KindIdentity Kind = iota
	// KindStatic multiplies by one exact rational factor.
	KindStatic
	// KindComposed applies an ordered list of steps.
	KindComposed
)

// step is one stage of a composed conversion: a factor or a function.
type step struct {
	factor *big.Rat
	fn     unit.Func
}

// Conversion is a derived unit-to-unit conversion. It is an explicit value,
// not a closure chain: composing never nests calls, and a static chain stays
// a single exact factor. The zero value is the identity.
type Conversion struct {
	kind   Kind
	factor *big.Rat // KindStatic
	steps  []step   // KindComposed, applied first to last
}

// Identity returns the exact identity conversion.
func Identity() Conversion {
	return Conversion{kind: KindIdentity}
}

// Scale returns the conversion x ↦ factor·x. The factor is copied.
func Scale(factor *big.Rat) Conversion {
	return Conversion{kind: KindStatic, factor: new(big.Rat).Set(factor)}
}

// Func returns the conversion applying fn. A nil fn yields the identity.
func Func(fn unit.Func) Conversion {
	if fn == nil {
		return Identity()
	}

	return Conversion{kind: KindComposed, steps: []step{{fn: fn}}}
}

// Kind reports which variant c holds.
func (c Conversion) Kind() Kind { return c.kind }

// Len returns the number of steps applied: 0 for the identity, 1 for a
// static factor.
func (c Conversion) Len() int {
	switch c.kind {
	case KindStatic:
		return 1
	case KindComposed:
		return len(c.steps)
	default:
		return 0
	}
}

// Factor returns the exact multiplicative factor of an identity or static
// conversion. Composed conversions report false.
func (c Conversion) Factor() (*big.Rat, bool) {
	switch c.kind {
	case KindIdentity:
		return big.NewRat(1, 1), true
	case KindStatic:
		return new(big.Rat).Set(c.factor), true
	default:
		return nil, false
	}
}

// Then returns the conversion applying c first and next afterwards.
// Identity is neutral; two factors fold into their exact product.
func (c Conversion) Then(next Conversion) Conversion {
	switch {
	case c.kind == KindIdentity:
		return next
	case next.kind == KindIdentity:
		return c
	case c.kind == KindStatic && next.kind == KindStatic:
		return Conversion{kind: KindStatic, factor: new(big.Rat).Mul(c.factor, next.factor)}
	}

	steps := make([]step, 0, c.Len()+next.Len())
	steps = appendSteps(steps, c)
	steps = appendSteps(steps, next)

	return Conversion{kind: KindComposed, steps: steps}
}

// appendSteps flattens c onto steps, folding adjacent factors.
func appendSteps(steps []step, c Conversion) []step {
	var tail []step
	switch c.kind {
	case KindStatic:
		tail = []step{{factor: c.factor}}
	case KindComposed:
		tail = c.steps
	}

	for _, s := range tail {
		if n := len(steps); n > 0 && s.factor != nil && steps[n-1].factor != nil {
			steps[n-1] = step{factor: new(big.Rat).Mul(steps[n-1].factor, s.factor)}
			continue
		}
		steps = append(steps, s)
	}

	return steps
}

// Apply converts x. The result is a fresh value; x is not modified.
func (c Conversion) Apply(x *big.Rat) *big.Rat {
	switch c.kind {
	case KindStatic:
		return new(big.Rat).Mul(x, c.factor)
	case KindComposed:
		v := x
		for _, s := range c.steps {
			if s.factor != nil {
				v = new(big.Rat).Mul(v, s.factor)
			} else {
				v = s.fn(v)
			}
		}
		if v == x {
			v = new(big.Rat).Set(x)
		}

		return v
	default:
		return new(big.Rat).Set(x)
	}
}

// String describes c: "identity", "x <factor>", or "composed(<n>)".
func (c Conversion) String() string {
	switch c.kind {
	case KindStatic:
		return "x " + c.factor.RatString()
	case KindComposed:
		return "composed(" + strconv.Itoa(len(c.steps)) + ")"
	default:
		return "identity"
	}
}

// fromRule returns the forward and inverse conversions of a declared rule.
func fromRule(rule unit.Conversion) (Conversion, Conversion) {
	if amount, ok := rule.Amount(); ok {
		inverse, _ := rule.InverseAmount()

		return Scale(amount), Scale(inverse)
	}

	return Func(rule.Forward()), Func(rule.Inverse())
}
