// SPDX-License-Identifier: MIT

package unit

import (
	"cmp"
	"slices"
	"sort"
	"strings"
)

// Unit is a named measurement unit with an optional conversion towards
// another unit of the same collection. A Unit is immutable once constructed.
type Unit struct {
	name       string
	aliases    []string
	names      []string // name + aliases, sorted
	conversion Conversion
}

// Option configures a Unit under construction.
type Option func(*unitConfig)

type unitConfig struct {
	aliases []string
	value   any
}

// WithAliases sets the alternate names of the unit.
// Aliases are kept verbatim (case preserved); empty strings are dropped.
func WithAliases(aliases ...string) Option {
	return func(c *unitConfig) {
		c.aliases = append([]string(nil), aliases...)
	}
}

// WithValue sets the raw conversion definition, parsed with Parse.
func WithValue(tokens any) Option {
	return func(c *unitConfig) {
		c.value = tokens
	}
}

// WithConversion sets an already-built conversion.
func WithConversion(conv Conversion) Option {
	return func(c *unitConfig) {
		c.value = conv
	}
}

// New constructs a Unit. Without WithValue/WithConversion the unit is a base unit.
//
// Errors: ErrEmptyName for an empty name; ErrUnit when the definition
// cannot be parsed.
func New(name string, opts ...Option) (*Unit, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	var cfg unitConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	conv, err := Parse(cfg.value)
	if err != nil {
		return nil, err
	}

	aliases := make([]string, 0, len(cfg.aliases))
	for _, a := range cfg.aliases {
		if a != "" {
			aliases = append(aliases, a)
		}
	}

	names := append([]string{name}, aliases...)
	sort.Strings(names)

	return &Unit{
		name:       name,
		aliases:    aliases,
		names:      names,
		conversion: conv,
	}, nil
}

// With derives a new Unit from u, overriding whatever opts set.
func (u *Unit) With(opts ...Option) (*Unit, error) {
	base := []Option{WithAliases(u.aliases...), WithConversion(u.conversion)}

	return New(u.name, append(base, opts...)...)
}

// Name returns the unit's unique name.
func (u *Unit) Name() string { return u.name }

// Aliases returns a copy of the alternate names.
func (u *Unit) Aliases() []string { return append([]string(nil), u.aliases...) }

// Names returns a copy of the name and aliases, sorted.
func (u *Unit) Names() []string { return append([]string(nil), u.names...) }

// Conversion returns the declared conversion rule.
func (u *Unit) Conversion() Conversion { return u.conversion }

// ConversionUnit returns the declared target unit name, "" for a base unit.
func (u *Unit) ConversionUnit() string { return u.conversion.Unit() }

// IsBase reports whether the unit declares no conversion.
func (u *Unit) IsBase() bool { return u.conversion.Kind() == KindNone }

// Compare orders units by their sorted names, element by element, then by
// conversion amount. Base units sort before static ones, and static before
// dynamic; dynamic rules fall back to their descriptions. The target unit
// takes no part, so Compare is usable with slices.SortFunc.
func (u *Unit) Compare(other *Unit) int {
	if c := slices.Compare(u.names, other.names); c != 0 {
		return c
	}

	a, b := u.conversion, other.conversion
	if c := cmp.Compare(a.Kind(), b.Kind()); c != 0 {
		return c
	}
	switch a.Kind() {
	case KindStatic:
		return a.amount.Cmp(b.amount)
	case KindDynamic:
		return strings.Compare(a.description, b.description)
	}

	return 0
}

// String renders "cm (10 mm)", or just the name when the rule is not printable.
func (u *Unit) String() string {
	if s := u.conversion.String(); s != "" {
		return u.name + " (" + s + ")"
	}

	return u.name
}

// GoString renders the unit with its aliases, for %#v.
func (u *Unit) GoString() string {
	var b strings.Builder
	b.WriteString("#<Unit: ")
	b.WriteString(u.name)
	if len(u.aliases) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(u.aliases, ", "))
		b.WriteString(")")
	}
	if s := u.conversion.String(); s != "" {
		b.WriteString(" ")
		b.WriteString(s)
	}
	b.WriteString(">")

	return b.String()
}
