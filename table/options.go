// SPDX-License-Identifier: MIT

package table

import (
	"io"
	"log/slog"
	"math/big"
	"time"
)

// Observer receives build events, e.g. for metrics.
type Observer interface {
	// ObserveCacheHit is called when Table() is served from the cache.
	ObserveCacheHit()

	// ObserveBuild is called after every generation attempt.
	ObserveBuild(units int, elapsed time.Duration, err error)
}

// Option configures a Builder.
type Option func(*config)

// config holds the resolved Builder options.
type config struct {
	cache    Cache
	logger   *slog.Logger
	observer Observer
	samples  []*big.Rat // round-trip samples; nil disables the check
}

// defaultConfig returns:
//   - NullCache
//   - a logger discarding every record
//   - no observer
//   - no round-trip check
func defaultConfig() config {
	return config{
		cache:    NullCache{},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
}

// WithCache sets the cache consulted by Table() and written by UpdateCache().
// A nil cache keeps NullCache.
func WithCache(c Cache) Option {
	return func(cfg *config) {
		if c != nil {
			cfg.cache = c
		}
	}
}

// WithLogger sets the structured logger for build events.
// A nil logger keeps the discarding default.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

// WithObserver installs o to receive build and cache-hit events.
func WithObserver(o Observer) Option {
	return func(cfg *config) {
		if o != nil {
			cfg.observer = o
		}
	}
}

// WithRoundTripCheck enables the debug assertion that every pair A, B
// satisfies t[B][A](t[A][B](x)) == x for each sample x. Without samples the
// check uses x = 1. Panics on a nil sample.
func WithRoundTripCheck(samples ...*big.Rat) Option {
	resolved := make([]*big.Rat, 0, len(samples))
	for _, s := range samples {
		if s == nil {
			panic("table: WithRoundTripCheck: nil sample")
		}
		resolved = append(resolved, new(big.Rat).Set(s))
	}
	if len(resolved) == 0 {
		resolved = append(resolved, big.NewRat(1, 1))
	}

	return func(cfg *config) {
		cfg.samples = resolved
	}
}

type nopObserver struct{}

func (nopObserver) ObserveCacheHit() {}

func (nopObserver) ObserveBuild(int, time.Duration, error) {}
