// SPDX-License-Identifier: MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/katalvlaran/measured/cache"
	"github.com/katalvlaran/measured/metrics"
	"github.com/katalvlaran/measured/table"
	"github.com/katalvlaran/measured/unit"
	"github.com/katalvlaran/measured/unitfile"
)

// app carries the state shared by every subcommand of one invocation.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer

	logger    *slog.Logger
	registry  *prometheus.Registry
	collector *metrics.Collector
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "measured",
		Short:         "Build and query exact unit conversion tables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.init()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.dumpMetrics()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (yaml, toml or json)")
	flags.StringSliceP("file", "f", nil, "unit definition file (repeatable, loaded in order)")
	flags.String("cache", "", "sqlite database caching static tables")
	flags.String("log-level", "warn", "log level: debug, info, warn, error")
	flags.Bool("metrics", false, "print build metrics to stderr on exit")
	_ = a.v.BindPFlags(flags)

	root.AddCommand(newCheckCmd(a), newTableCmd(a), newConvertCmd(a))

	return root
}

// init resolves configuration and sets up logging and metrics.
func (a *app) init() error {
	a.v.SetEnvPrefix("measured")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString("log-level"))); err != nil {
		return fmt.Errorf("--log-level: %w", err)
	}
	a.logger = slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))

	a.registry = prometheus.NewRegistry()
	a.collector = metrics.New(a.registry)

	return nil
}

// loadUnits parses every --file in order.
func (a *app) loadUnits() ([]*unit.Unit, error) {
	files := a.v.GetStringSlice("file")
	if len(files) == 0 {
		return nil, errors.New("no unit definition file: use --file or MEASURED_FILE")
	}
	units, err := unitfile.LoadFiles(files...)
	if err != nil {
		return nil, err
	}
	a.logger.Info("units loaded", "files", len(files), "units", len(units))

	return units, nil
}

// openCache opens the --cache database bound to units. Without --cache it
// returns a nil Cache.
func (a *app) openCache(units []*unit.Unit) (table.Cache, func(), error) {
	path := a.v.GetString("cache")
	if path == "" {
		return nil, func() {}, nil
	}

	key := cache.Key(units)
	store, err := cache.OpenSQLite(path, key)
	if err != nil {
		return nil, nil, err
	}
	a.logger.Debug("sqlite cache opened", "path", path, "key", key)

	return store, func() {
		if err := store.Close(); err != nil {
			a.logger.Warn("close sqlite cache", "error", err)
		}
	}, nil
}

// builder returns a Builder over units consulting c; a nil c means no cache.
func (a *app) builder(units []*unit.Unit, c table.Cache, opts ...table.Option) *table.Builder {
	opts = append([]table.Option{
		table.WithLogger(a.logger),
		table.WithObserver(a.collector),
		table.WithCache(c),
	}, opts...)

	return table.NewBuilder(units, opts...)
}

// dumpMetrics writes the registry in text exposition format when --metrics
// is set.
func (a *app) dumpMetrics() error {
	if !a.v.GetBool("metrics") || a.registry == nil {
		return nil
	}
	families, err := a.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err = expfmt.MetricFamilyToText(a.errOut, mf); err != nil {
			return err
		}
	}

	return nil
}

// resolver maps unit names and aliases to unit names.
type resolver map[string]string

func newResolver(units []*unit.Unit) resolver {
	r := make(resolver, len(units))
	for _, u := range units {
		for _, n := range u.Names() {
			r[n] = u.Name()
		}
	}

	return r
}

func (r resolver) resolve(name string) (string, error) {
	if canonical, ok := r[name]; ok {
		return canonical, nil
	}

	return "", fmt.Errorf("%w: %q", table.ErrUnknownUnit, name)
}
