package table_test

import (
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/measured/table"
	"github.com/katalvlaran/measured/unit"
)

// mustUnit builds a unit or fails the test.
func mustUnit(t testing.TB, name string, value any, aliases ...string) *unit.Unit {
	t.Helper()
	u, err := unit.New(name, unit.WithValue(value), unit.WithAliases(aliases...))
	require.NoError(t, err)

	return u
}

// linear returns the dynamic definition x ↦ scale·x + offset with its exact inverse.
func linear(scale, offset *big.Rat, description string) unit.DynamicSpec {
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

// staticLength is mm ← cm ← dm ← m, all static.
func staticLength(t testing.TB) []*unit.Unit {
	return []*unit.Unit{
		mustUnit(t, "mm", nil),
		mustUnit(t, "cm", "10 mm"),
		mustUnit(t, "dm", "10 cm"),
		mustUnit(t, "m", "10 dm"),
	}
}

// dynamicLength mixes a dynamic cm with static dm and m.
func dynamicLength(t testing.TB) []*unit.Unit {
	return []*unit.Unit{
		mustUnit(t, "mm", nil),
		mustUnit(t, "cm", []any{linear(big.NewRat(10, 1), new(big.Rat), "10 mm"), "mm"}),
		mustUnit(t, "dm", "10 cm"),
		mustUnit(t, "m", "10 dm"),
	}
}

// dynamicMagic: 1 arcane = 10 magic_missile, 1 ultima = 10 arcane + 10.
func dynamicMagic(t testing.TB) []*unit.Unit {
	zero := new(big.Rat)
	return []*unit.Unit{
		mustUnit(t, "magic_missile", nil, "magic_missiles", "magic missile"),
		mustUnit(t, "fireball", "2/3 magic_missile", "fire", "fireballs"),
		mustUnit(t, "ice", []any{linear(big.NewRat(2, 1), zero, "2 magic missile"), "magic_missile"}),
		mustUnit(t, "arcane", []any{linear(big.NewRat(10, 1), zero, "10 magic missile"), "magic_missile"}),
		mustUnit(t, "ultima", []any{linear(big.NewRat(10, 1), big.NewRat(10, 1), "10 arcane + 10"), "arcane"}),
	}
}

// rat parses a rational literal for expectations.
func rat(t testing.TB, s string) *big.Rat {
	t.Helper()
	r, ok := new(big.Rat).SetString(s)
	require.True(t, ok, "bad rational %q", s)

	return r
}

// spyCache records every call and serves a configurable table.
type spyCache struct {
	stored table.Table
	exist  bool

	exists, reads, writes int

	existErr, readErr, writeErr error
}

func (c *spyCache) Exist() (bool, error) {
	c.exists++
	return c.exist, c.existErr
}

func (c *spyCache) Read() (table.Table, error) {
	c.reads++
	return c.stored, c.readErr
}

func (c *spyCache) Write(t table.Table) error {
	c.writes++
	if c.writeErr != nil {
		return c.writeErr
	}
	c.stored, c.exist = t, true

	return nil
}

// spyObserver counts observer callbacks.
type spyObserver struct {
	hits   int
	builds int
	units  int
	errs   int
}

func (o *spyObserver) ObserveCacheHit() { o.hits++ }

func (o *spyObserver) ObserveBuild(units int, _ time.Duration, err error) {
	o.builds++
	o.units = units
	if err != nil {
		o.errs++
	}
}
