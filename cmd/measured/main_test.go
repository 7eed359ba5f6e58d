package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/measured/convgraph"
	"github.com/katalvlaran/measured/table"
)

// run executes the CLI with args and returns stdout and stderr.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), errOut.String(), err
}

func testdata(name string) string { return filepath.Join("testdata", name) }

func TestCheck(t *testing.T) {
	out, _, err := run(t, "check", "-f", testdata("length.hcl"), "-v")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 4 units, 1 roots (mm)")
	assert.Contains(t, out, "m -> cm -> mm")
	assert.Contains(t, out, "in -> mm")
}

func TestCheck_RoundTrip(t *testing.T) {
	out, _, err := run(t, "check", "-f", testdata("temperature.hcl"), "--round-trip", "1,-40,0")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: 3 units")

	_, _, err = run(t, "check", "-f", testdata("temperature.hcl"), "--round-trip", "warm")
	assert.Error(t, err)
}

func TestCheck_Failures(t *testing.T) {
	_, _, err := run(t, "check", "-f", testdata("cycle.hcl"))
	assert.ErrorIs(t, err, convgraph.ErrCycleDetected)

	_, _, err = run(t, "check", "-f", testdata("island.hcl"))
	assert.ErrorIs(t, err, table.ErrMissingConversionPath)

	_, _, err = run(t, "check")
	assert.ErrorContains(t, err, "no unit definition file")
}

func TestTable(t *testing.T) {
	out, _, err := run(t, "table", "-f", testdata("temperature.hcl"))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1+3*2)
	assert.Regexp(t, `^FROM\s+TO\s+FACTOR$`, lines[0])
	assert.Regexp(t, `celsius\s+kelvin\s+= 5483/20`, out)
	assert.Regexp(t, `kelvin\s+celsius\s+= -5443/20`, out)
}

func TestConvert(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"static", []string{"5/2", "m", "mm"}, "5/2 m = 2500 mm\n"},
		{"aliases", []string{"1", "metre", "millimetre"}, "1 m = 1000 mm\n"},
		{"decimal input", []string{"2.54", "cm", "in"}, "127/50 cm = 1 in\n"},
		{"decimals flag", []string{"1", "m", "in", "--decimals", "3"}, "1 m = 39.370 in\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append([]string{"convert", "-f", testdata("length.hcl")}, tc.args...)
			out, _, err := run(t, args...)
			require.NoError(t, err)
			assert.Equal(t, tc.want, out)
		})
	}
}

func TestConvert_Dynamic(t *testing.T) {
	out, _, err := run(t, "convert", "-f", testdata("temperature.hcl"), "212", "F", "K")
	require.NoError(t, err)
	assert.Equal(t, "212 fahrenheit = 7463/20 kelvin\n", out)
}

func TestConvert_Errors(t *testing.T) {
	_, _, err := run(t, "convert", "-f", testdata("length.hcl"), "1", "m", "parsec")
	assert.ErrorIs(t, err, table.ErrUnknownUnit)

	_, _, err = run(t, "convert", "-f", testdata("length.hcl"), "one", "m", "mm")
	assert.ErrorContains(t, err, "not a rational")

	_, _, err = run(t, "convert", "-f", testdata("length.hcl"), "1", "m")
	assert.Error(t, err)
}

func TestSQLiteCache(t *testing.T) {
	db := filepath.Join(t.TempDir(), "measured.db")

	_, logs, err := run(t, "table", "-f", testdata("length.hcl"), "--cache", db, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, logs, "conversion table cached")

	out, logs, err := run(t, "convert", "-f", testdata("length.hcl"), "--cache", db, "--log-level", "debug", "1", "m", "cm")
	require.NoError(t, err)
	assert.Equal(t, "1 m = 100 cm\n", out)
	assert.Contains(t, logs, "served from cache")
	assert.NotContains(t, logs, "conversion table built")

	// Dynamic tables fall back to an uncached build.
	_, logs, err = run(t, "table", "-f", testdata("temperature.hcl"), "--cache", db, "--log-level", "info")
	require.NoError(t, err)
	assert.Contains(t, logs, "table not cached")
}

func TestCachedCommandsBuildOnce(t *testing.T) {
	cases := []struct {
		name string
		args []string
		logs string
	}{
		{"static miss", []string{"table", "-f", testdata("length.hcl")}, "conversion table cached"},
		{"static refresh", []string{"table", "-f", testdata("length.hcl"), "--refresh"}, "conversion table cached"},
		{"dynamic", []string{"table", "-f", testdata("temperature.hcl")}, "table not cached"},
		{"dynamic convert", []string{"convert", "-f", testdata("temperature.hcl"), "0", "C", "F"}, "table not cached"},
	}
	db := filepath.Join(t.TempDir(), "measured.db")
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			args := append(tc.args, "--cache", db, "--metrics", "--log-level", "debug")
			_, logs, err := run(t, args...)
			require.NoError(t, err)
			assert.Contains(t, logs, tc.logs)
			assert.Contains(t, logs, `measured_table_builds_total{result="ok"} 1`)
			assert.Equal(t, 1, strings.Count(logs, "conversion table built"))
		})
	}

	// A cache hit builds nothing.
	_, logs, err := run(t, "table", "-f", testdata("length.hcl"), "--cache", db, "--metrics", "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, logs, "measured_table_cache_hits_total 1")
	assert.NotContains(t, logs, "conversion table built")
}

func TestEnvironmentAndMetrics(t *testing.T) {
	t.Setenv("MEASURED_LOG_LEVEL", "debug")
	t.Setenv("MEASURED_METRICS", "true")

	_, logs, err := run(t, "check", "-f", testdata("length.hcl"))
	require.NoError(t, err)
	assert.Contains(t, logs, "level=DEBUG")
	assert.Contains(t, logs, `measured_table_builds_total{result="ok"} 1`)
	assert.Contains(t, logs, "measured_table_units 4")
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "measured.yaml")
	abs, err := filepath.Abs(testdata("length.hcl"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg, []byte("file:\n  - "+abs+"\n"), 0o600))

	out, _, err := run(t, "convert", "--config", cfg, "3", "cm", "mm")
	require.NoError(t, err)
	assert.Equal(t, "3 cm = 30 mm\n", out)
}

func TestBadLogLevel(t *testing.T) {
	_, _, err := run(t, "check", "-f", testdata("length.hcl"), "--log-level", "loud")
	assert.ErrorContains(t, err, "--log-level")
}
