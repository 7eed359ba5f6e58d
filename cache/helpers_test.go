package cache_test

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/measured/table"
	"github.com/katalvlaran/measured/unit"
)

func mustUnit(t testing.TB, name string, value any, aliases ...string) *unit.Unit {
	t.Helper()
	u, err := unit.New(name, unit.WithValue(value), unit.WithAliases(aliases...))
	require.NoError(t, err)

	return u
}

// length is mm ← cm ← m with a fractional inch.
func length(t testing.TB) []*unit.Unit {
	return []*unit.Unit{
		mustUnit(t, "mm", nil, "millimetre"),
		mustUnit(t, "cm", "10 mm"),
		mustUnit(t, "m", "100 cm", "metre", "meter"),
		mustUnit(t, "in", "127/5 mm", "inch"),
	}
}

// withDynamic adds a rule that only the Memory cache can hold.
func withDynamic(t testing.TB) []*unit.Unit {
	triple := unit.DynamicSpec{
		Forward:     func(x *big.Rat) *big.Rat { return new(big.Rat).Mul(x, big.NewRat(3, 1)) },
		Inverse:     func(x *big.Rat) *big.Rat { return new(big.Rat).Quo(x, big.NewRat(3, 1)) },
		Description: "3 mm",
	}

	return append(length(t), mustUnit(t, "tri", []any{triple, "mm"}))
}

func build(t testing.TB, units []*unit.Unit) table.Table {
	t.Helper()
	tbl, err := table.NewBuilder(units).Table()
	require.NoError(t, err)

	return tbl
}

// render flattens a table into comparable strings.
func render(t table.Table) map[string]map[string]string {
	out := make(map[string]map[string]string, len(t))
	for from, row := range t {
		out[from] = make(map[string]string, len(row))
		for to, c := range row {
			out[from][to] = c.String()
		}
	}

	return out
}

func requireSameTable(t testing.TB, want, got table.Table) {
	t.Helper()
	if diff := cmp.Diff(render(want), render(got)); diff != "" {
		t.Fatalf("table mismatch (-want +got):\n%s", diff)
	}
}
