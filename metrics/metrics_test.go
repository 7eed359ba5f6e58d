package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/measured/metrics"
	"github.com/katalvlaran/measured/table"
	"github.com/katalvlaran/measured/unit"
)

func mustUnit(t *testing.T, name string, value any) *unit.Unit {
	t.Helper()
	u, err := unit.New(name, unit.WithValue(value))
	require.NoError(t, err)

	return u
}

// hitCache always serves the same table.
type hitCache struct{ t table.Table }

func (c hitCache) Exist() (bool, error)       { return true, nil }
func (c hitCache) Read() (table.Table, error) { return c.t, nil }
func (c hitCache) Write(table.Table) error    { return nil }

func TestCollector_ObservesBuilder(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := metrics.New(reg)

	good := []*unit.Unit{mustUnit(t, "mm", nil), mustUnit(t, "cm", "10 mm"), mustUnit(t, "m", "100 cm")}
	bad := []*unit.Unit{mustUnit(t, "X", "1 Y"), mustUnit(t, "Y", "1 X")}

	_, err := table.NewBuilder(good, table.WithObserver(c)).Table()
	require.NoError(t, err)
	_, err = table.NewBuilder(bad, table.WithObserver(c)).Table()
	require.Error(t, err)
	_, err = table.NewBuilder(bad, table.WithObserver(c), table.WithCache(hitCache{table.Table{}})).Table()
	require.NoError(t, err)

	expected := `
# HELP measured_table_builds_total Conversion table generations by result.
# TYPE measured_table_builds_total counter
measured_table_builds_total{result="error"} 1
measured_table_builds_total{result="ok"} 1
# HELP measured_table_cache_hits_total Conversion tables served from the cache.
# TYPE measured_table_cache_hits_total counter
measured_table_cache_hits_total 1
# HELP measured_table_units Unit count of the last successfully built table.
# TYPE measured_table_units gauge
measured_table_units 3
`
	assert.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected),
		"measured_table_builds_total", "measured_table_cache_hits_total", "measured_table_units"))

	families, err := reg.Gather()
	require.NoError(t, err)
	var samples uint64
	for _, mf := range families {
		if mf.GetName() == "measured_table_build_seconds" {
			samples = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(2), samples)
}

func TestNew_NilRegisterer(t *testing.T) {
	c := metrics.New(nil)
	assert.NotPanics(t, func() { c.ObserveCacheHit() })
}

func TestNew_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	assert.Panics(t, func() { metrics.New(reg) })
}
