// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package prometheus provides a Prometheus implementation of metrics.CacheMetrics.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/venkatsvpr/golang-timedcache/metrics"
)

type cacheMetrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
	clears    *prometheus.CounterVec
	entries   *prometheus.GaugeVec
}

// NewCacheMetrics creates the cache collectors and registers them with reg.
func NewCacheMetrics(reg prometheus.Registerer) metrics.CacheMetrics {
	m := &cacheMetrics{
		hits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timedcache_hits_total",
			Help: "Total number of calls served from the cache",
		}, []string{"cache"}),

		misses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timedcache_misses_total",
			Help: "Total number of calls that ran the wrapped computation",
		}, []string{"cache"}),

		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timedcache_evictions_total",
			Help: "Total number of entries evicted to make room",
		}, []string{"cache"}),

		clears: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timedcache_clears_total",
			Help: "Total number of whole-cache clears",
		}, []string{"cache", "reason"}),

		entries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "timedcache_entries",
			Help: "Current number of cached entries",
		}, []string{"cache"}),
	}

	reg.MustRegister(m.hits, m.misses, m.evictions, m.clears, m.entries)
	return m
}

func (m *cacheMetrics) Hit(cache string) {
	m.hits.WithLabelValues(cache).Inc()
}

func (m *cacheMetrics) Miss(cache string) {
	m.misses.WithLabelValues(cache).Inc()
}

func (m *cacheMetrics) Eviction(cache string) {
	m.evictions.WithLabelValues(cache).Inc()
}

func (m *cacheMetrics) Clear(cache, reason string) {
	m.clears.WithLabelValues(cache, reason).Inc()
}

func (m *cacheMetrics) Size(cache string, n int) {
	m.entries.WithLabelValues(cache).Set(float64(n))
}

var _ metrics.CacheMetrics = (*cacheMetrics)(nil)
