// SPDX-License-Identifier: MIT

package table

import (
	"fmt"
	"time"

	"github.com/katalvlaran/measured/convgraph"
	"github.com/katalvlaran/measured/unit"
)

// Builder derives the conversion Table of one unit collection.
type Builder struct {
	units []*unit.Unit
	cfg   config
}

// NewBuilder returns a Builder over units, kept in declaration order.
// The slice is copied; units are immutable so no further copy is needed.
func NewBuilder(units []*unit.Unit, opts ...Option) *Builder {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Builder{
		units: append([]*unit.Unit(nil), units...),
		cfg:   cfg,
	}
}

// Units returns the collection in declaration order.
func (b *Builder) Units() []*unit.Unit {
	return append([]*unit.Unit(nil), b.units...)
}

// Cached reports whether the cache holds a table.
func (b *Builder) Cached() (bool, error) {
	ok, err := b.cfg.cache.Exist()
	if err != nil {
		return false, fmt.Errorf("table: cache exist: %w", err)
	}

	return ok, nil
}

// Table returns the complete conversion table. A cached table is returned
// verbatim; otherwise the collection is validated and generated, and the
// result is not written to the cache.
func (b *Builder) Table() (Table, error) {
	hit, err := b.Cached()
	if err != nil {
		return nil, err
	}
	if hit {
		t, err := b.cfg.cache.Read()
		if err != nil {
			return nil, fmt.Errorf("table: cache read: %w", err)
		}
		b.cfg.observer.ObserveCacheHit()
		b.cfg.logger.Debug("conversion table served from cache", "units", len(t))

		return t, nil
	}

	return b.generate()
}

// UpdateCache regenerates the table regardless of the cache state and
// writes it, returning the fresh table.
func (b *Builder) UpdateCache() (Table, error) {
	t, err := b.generate()
	if err != nil {
		return nil, err
	}
	if err = b.cfg.cache.Write(t); err != nil {
		return nil, fmt.Errorf("table: cache write: %w", err)
	}
	b.cfg.logger.Debug("conversion table cached", "units", len(t))

	return t, nil
}

// generate validates and builds the table, reporting to the observer.
func (b *Builder) generate() (Table, error) {
	start := time.Now()
	t, err := b.build()
	elapsed := time.Since(start)
	b.cfg.observer.ObserveBuild(len(b.units), elapsed, err)

	if err != nil {
		b.cfg.logger.Debug("conversion table build failed", "units", len(b.units), "error", err)

		return nil, err
	}
	b.cfg.logger.Debug("conversion table built", "units", len(b.units), "elapsed", elapsed)

	return t, nil
}

func (b *Builder) build() (Table, error) {
	// 1) Explicit graph for this build only.
	g, err := convgraph.New(b.units)
	if err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}

	// 2) Acyclicity over every component.
	if err = g.ValidateNoCycles(); err != nil {
		return nil, fmt.Errorf("table: %w", err)
	}
	b.cfg.logger.Debug("conversion graph validated", "units", g.Len(), "roots", len(g.Roots()))

	// 3) Pairwise generation.
	t, err := newGenerator(g, b.units).generate()
	if err != nil {
		return nil, err
	}

	// 4) Optional debug assertion.
	if b.cfg.samples != nil {
		if err = checkRoundTrips(t, g.Nodes(), b.cfg.samples); err != nil {
			return nil, err
		}
	}

	return t, nil
}
