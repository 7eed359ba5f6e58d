// SPDX-License-Identifier: MIT

package unit

import (
	"math"
	"math/big"
	"strings"
	"unicode"
)

// DynamicSpec is the amount position of a dynamic definition:
//
//	[]any{unit.DynamicSpec{Forward: f, Inverse: g, Description: "10 arcane + 10"}, "arcane"}
type DynamicSpec struct {
	Forward     Func
	Inverse     Func
	Description string
}

// Parse converts a raw definition into a Conversion.
//
// Accepted shapes:
//   - nil                       base unit
//   - Conversion                returned as-is
//   - string "10 mm"            static; the amount is any big.Rat literal ("1/3", "5.5", "2e3")
//   - []any{amount, "mm"}       amount: integer, float, numeric string, *big.Rat, big.Rat, *big.Int
//   - []any{Func, "mm"}         dynamic, inverse defaults to 1/forward(x)
//   - []any{DynamicSpec, "mm"}  dynamic with explicit inverse and description
//   - []string{"5.5", "sweets"} same as the two-element []any form
//
// Errors: *Error wrapping ErrUnit for any other shape, wrong arity,
// an unparseable or zero amount, or an empty unit name.
func Parse(tokens any) (Conversion, error) {
	switch t := tokens.(type) {
	case nil:
		return None(), nil
	case Conversion:
		return t, nil
	case string:
		amount, name, err := splitDefinition(t)
		if err != nil {
			return Conversion{}, err
		}

		return parsePair(tokens, amount, name)
	case []string:
		if len(t) != 2 {
			return Conversion{}, parseError(tokens, "expected [amount, unit], got %d elements", len(t))
		}

		return parsePair(tokens, t[0], t[1])
	case []any:
		if len(t) != 2 {
			return Conversion{}, parseError(tokens, "expected [amount, unit], got %d elements", len(t))
		}
		name, ok := t[1].(string)
		if !ok {
			return Conversion{}, parseError(tokens, "unit name must be a string, got %T", t[1])
		}

		return parsePair(tokens, t[0], name)
	default:
		return Conversion{}, parseError(tokens, "definition must be a string or [amount, unit], got %T", tokens)
	}
}

// splitDefinition cuts "10 bitter pie" into ("10", "bitter pie").
func splitDefinition(s string) (string, string, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return "", "", parseError(s, "expected \"<amount> <unit>\"")
	}

	return s[:i], strings.TrimSpace(s[i:]), nil
}

func parsePair(input, amount any, name string) (Conversion, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Conversion{}, parseError(input, "unit name is empty")
	}

	switch a := amount.(type) {
	case Func:
		return Dynamic(name, a, nil, "")
	case func(*big.Rat) *big.Rat:
		return Dynamic(name, a, nil, "")
	case DynamicSpec:
		return Dynamic(name, a.Forward, a.Inverse, a.Description)
	case *DynamicSpec:
		if a == nil {
			return Conversion{}, parseError(input, "dynamic spec is nil")
		}

		return Dynamic(name, a.Forward, a.Inverse, a.Description)
	}

	r, err := toRat(input, amount)
	if err != nil {
		return Conversion{}, err
	}
	if r.Sign() == 0 {
		return Conversion{}, parseError(input, "amount must be non-zero")
	}

	return Static(r, name)
}

// toRat converts a numeric amount into an exact rational.
// Floats are converted exactly from their binary value.
func toRat(input, amount any) (*big.Rat, error) {
	switch a := amount.(type) {
	case int:
		return new(big.Rat).SetInt64(int64(a)), nil
	case int8:
		return new(big.Rat).SetInt64(int64(a)), nil
	case int16:
		return new(big.Rat).SetInt64(int64(a)), nil
	case int32:
		return new(big.Rat).SetInt64(int64(a)), nil
	case int64:
		return new(big.Rat).SetInt64(a), nil
	case uint:
		return new(big.Rat).SetUint64(uint64(a)), nil
	case uint8:
		return new(big.Rat).SetUint64(uint64(a)), nil
	case uint16:
		return new(big.Rat).SetUint64(uint64(a)), nil
	case uint32:
		return new(big.Rat).SetUint64(uint64(a)), nil
	case uint64:
		return new(big.Rat).SetUint64(a), nil
	case float32:
		return floatRat(input, float64(a))
	case float64:
		return floatRat(input, a)
	case string:
		r, ok := new(big.Rat).SetString(strings.TrimSpace(a))
		if !ok {
			return nil, parseError(input, "amount %q is not a number", a)
		}

		return r, nil
	case *big.Rat:
		if a == nil {
			return nil, parseError(input, "amount is nil")
		}

		return new(big.Rat).Set(a), nil
	case big.Rat:
		return new(big.Rat).Set(&a), nil
	case *big.Int:
		if a == nil {
			return nil, parseError(input, "amount is nil")
		}

		return new(big.Rat).SetInt(a), nil
	default:
		return nil, parseError(input, "amount must be numeric or a function, got %T", amount)
	}
}

func floatRat(input any, f float64) (*big.Rat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, parseError(input, "amount %v is not finite", f)
	}

	return new(big.Rat).SetFloat64(f), nil
}
