// SPDX-License-Identifier: MIT

package unitfile

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/katalvlaran/measured/unit"
)

// ErrInvalidDefinition indicates a unit block whose attributes do not form a
// conversion rule.
var ErrInvalidDefinition = errors.New("unitfile: invalid unit definition")

// hclFile is the top-level structure of a definition file.
type hclFile struct {
	Units []*hclUnit `hcl:"unit,block"`
}

// hclUnit is one unit block. scale and offset stay expressions so numbers
// and rational strings can both be accepted.
type hclUnit struct {
	Name        string         `hcl:"name,label"`
	Value       *string        `hcl:"value,optional"`
	Aliases     []string       `hcl:"aliases,optional"`
	To          *string        `hcl:"to,optional"`
	Scale       hcl.Expression `hcl:"scale,optional"`
	Offset      hcl.Expression `hcl:"offset,optional"`
	Description *string        `hcl:"description,optional"`
}

// Load parses the definition file at path.
func Load(path string) ([]*unit.Unit, error) {
	return LoadFiles(path)
}

// LoadFiles parses every file in order and concatenates their units.
// Duplicate names across files are left for the table builder to reject.
func LoadFiles(paths ...string) ([]*unit.Unit, error) {
	parser := hclparse.NewParser()

	var units []*unit.Unit
	for _, path := range paths {
		f, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("unitfile: parse %s: %w", path, diags)
		}
		parsed, err := decode(f, path)
		if err != nil {
			return nil, err
		}
		units = append(units, parsed...)
	}

	return units, nil
}

// Parse parses definitions held in memory; filename only labels diagnostics.
func Parse(src []byte, filename string) ([]*unit.Unit, error) {
	f, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("unitfile: parse %s: %w", filename, diags)
	}

	return decode(f, filename)
}

func decode(f *hcl.File, filename string) ([]*unit.Unit, error) {
	var parsed hclFile
	if diags := gohcl.DecodeBody(f.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("unitfile: decode %s: %w", filename, diags)
	}

	units := make([]*unit.Unit, 0, len(parsed.Units))
	for _, b := range parsed.Units {
		u, err := b.unit()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		units = append(units, u)
	}

	return units, nil
}

// unit converts the block into a Unit.
func (b *hclUnit) unit() (*unit.Unit, error) {
	def, err := b.definition()
	if err != nil {
		return nil, err
	}

	u, err := unit.New(b.Name, unit.WithAliases(b.Aliases...), unit.WithValue(def))
	if err != nil {
		return nil, fmt.Errorf("unit %q: %w", b.Name, err)
	}

	return u, nil
}

// definition returns the unit.Parse input described by the block.
func (b *hclUnit) definition() (any, error) {
	scale, err := rational(b.Scale)
	if err != nil {
		return nil, b.invalid("scale: %v", err)
	}
	offset, err := rational(b.Offset)
	if err != nil {
		return nil, b.invalid("offset: %v", err)
	}

	switch {
	case b.Value != nil && b.To != nil:
		return nil, b.invalid("value and to are mutually exclusive")
	case b.Value != nil:
		if scale != nil || offset != nil {
			return nil, b.invalid("scale and offset require to")
		}
		return *b.Value, nil
	case b.To == nil:
		if scale != nil || offset != nil {
			return nil, b.invalid("scale and offset require to")
		}
		return nil, nil // base unit
	}

	if scale == nil {
		scale = big.NewRat(1, 1)
	}
	if scale.Sign() == 0 {
		return nil, b.invalid("scale must be non-zero")
	}
	if offset == nil || offset.Sign() == 0 {
		return []any{scale, *b.To}, nil
	}

	description := fmt.Sprintf("%s %s + %s", scale.RatString(), *b.To, offset.RatString())
	if b.Description != nil {
		description = *b.Description
	}

	return []any{affine(scale, offset, description), *b.To}, nil
}

func (b *hclUnit) invalid(format string, args ...any) error {
	return fmt.Errorf("%w: unit %q: %s", ErrInvalidDefinition, b.Name, fmt.Sprintf(format, args...))
}

// affine returns x ↦ scale·x + offset and its exact inverse.
func affine(scale, offset *big.Rat, description string) unit.DynamicSpec {
	return unit.DynamicSpec{
		Forward: func(x *big.Rat) *big.Rat {
			y := new(big.Rat).Mul(x, scale)
			return y.Add(y, offset)
		},
		Inverse: func(x *big.Rat) *big.Rat {
			y := new(big.Rat).Sub(x, offset)
			return y.Quo(y, scale)
		},
		Description: description,
	}
}

// rational evaluates an optional numeric attribute. An absent attribute
// yields nil.
func rational(expr hcl.Expression) (*big.Rat, error) {
	if expr == nil {
		return nil, nil
	}
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if v.IsNull() {
		return nil, nil
	}
	if !v.IsKnown() {
		return nil, errors.New("value is unknown")
	}

	var lit string
	switch v.Type() {
	case cty.Number:
		// Shortest decimal form, so 0.1 stays exactly 1/10.
		lit = v.AsBigFloat().Text('g', -1)
	case cty.String:
		lit = v.AsString()
	default:
		return nil, fmt.Errorf("expected a number or rational string, got %s", v.Type().FriendlyName())
	}

	r, ok := new(big.Rat).SetString(lit)
	if !ok {
		return nil, fmt.Errorf("cannot parse %q as a rational", lit)
	}

	return r, nil
}
