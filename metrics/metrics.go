// SPDX-License-Identifier: MIT

// Package metrics exports conversion-table build events to Prometheus.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/katalvlaran/measured/table"
)

var _ table.Observer = (*Collector)(nil)

// Result label values of measured_table_builds_total.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Collector implements table.Observer on top of Prometheus metrics.
type Collector struct {
	builds    *prometheus.CounterVec
	duration  prometheus.Histogram
	cacheHits prometheus.Counter
	units     prometheus.Gauge
}

// New creates the collector and registers its metrics with reg. A nil reg
// leaves the metrics unregistered. Panics if reg already holds them.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		builds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "measured_table_builds_total",
				Help: "Conversion table generations by result.",
			},
			[]string{"result"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "measured_table_build_seconds",
			Help:    "Time spent validating and generating a conversion table.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 10),
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "measured_table_cache_hits_total",
			Help: "Conversion tables served from the cache.",
		}),
		units: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "measured_table_units",
			Help: "Unit count of the last successfully built table.",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.builds, c.duration, c.cacheHits, c.units)
	}

	return c
}

// ObserveCacheHit counts a table served from the cache.
func (c *Collector) ObserveCacheHit() { c.cacheHits.Inc() }

// ObserveBuild records one generation attempt.
func (c *Collector) ObserveBuild(units int, elapsed time.Duration, err error) {
	c.duration.Observe(elapsed.Seconds())
	if err != nil {
		c.builds.WithLabelValues(ResultError).Inc()
		return
	}
	c.builds.WithLabelValues(ResultOK).Inc()
	c.units.Set(float64(units))
}
