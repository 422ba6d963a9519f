// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplecache

import (
	"time"

	"go.uber.org/zap"

	"github.com/venkatsvpr/golang-timedcache/metrics"
)

// Single caches the one result of a computation that takes no arguments,
// such as a computed property. It skips key construction entirely.
// Max size and typed options have no effect on it.
type Single[V any] struct {
	fn     func() (V, error)
	result V
	valid  bool
	mode   CallMode
	pauses int
	timer  timer
	owner  Owner

	name    string
	logger  *zap.Logger
	metrics metrics.CacheMetrics
	stats   Stats
}

// NewSingle wraps fn in a single-result cache.
func NewSingle[V any](fn func() (V, error), opts ...Option) (*Single[V], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return &Single[V]{
		fn:      fn,
		mode:    cfg.mode,
		timer:   newTimer(cfg.clock, cfg.lifetime),
		name:    cfg.name,
		logger:  cfg.logger.With(zap.String("cache", cfg.name)),
		metrics: cfg.metrics,
	}, nil
}

// Get returns the stored result, computing it first if there is none.
func (s *Single[V]) Get() (V, error) {
	if s.owner != nil && !s.owner.CachingEnabled() {
		s.clear(metrics.ReasonOwner)
		return s.fn()
	}
	if s.pauses > 0 {
		return s.fn()
	}
	if s.mode == CallClearing {
		s.clear(metrics.ReasonClearing)
	} else if s.timer.expired() {
		s.logger.Debug("cache expired", zap.Time("expiration", s.timer.expiration))
		s.clear(metrics.ReasonExpired)
	}

	if s.valid {
		s.stats.Hits++
		s.metrics.Hit(s.name)
		return s.result, nil
	}
	s.stats.Misses++
	s.metrics.Miss(s.name)
	result, err := s.fn()
	if err != nil {
		return result, err
	}
	s.result, s.valid = result, true
	s.metrics.Size(s.name, 1)
	return result, nil
}

// Clear drops the stored result and restarts the lifetime.
func (s *Single[V]) Clear() {
	s.clear(metrics.ReasonManual)
}

func (s *Single[V]) clear(reason string) {
	var zero V
	s.result, s.valid = zero, false
	s.timer.reset()
	s.stats.Clears++
	s.metrics.Clear(s.name, reason)
	s.metrics.Size(s.name, 0)
}

// Cached reports whether a result is stored.
func (s *Single[V]) Cached() bool { return s.valid }

// SetLifetime changes the period between clears and restarts it.
func (s *Single[V]) SetLifetime(d time.Duration) error {
	if d < 0 {
		return &ConfigError{Field: "lifetime", Value: d, Err: ErrInvalidLifetime}
	}
	s.timer.setLifetime(d)
	return nil
}

// Expired reports whether the next Get clears the cache first.
func (s *Single[V]) Expired() bool { return s.timer.expired() }

// Pause clears the result and bypasses the cache until the matching Resume.
func (s *Single[V]) Pause() {
	s.pauses++
	if s.pauses == 1 {
		s.clear(metrics.ReasonPaused)
	}
}

// Resume ends one Pause.
func (s *Single[V]) Resume() {
	if s.pauses > 0 {
		s.pauses--
	}
}

// Bind attaches the cache to owner, see TimedCache.Bind.
func (s *Single[V]) Bind(owner Owner) { s.owner = owner }

// Unbind detaches the cache from its owner.
func (s *Single[V]) Unbind() { s.owner = nil }

// Stats returns the counters collected so far.
func (s *Single[V]) Stats() Stats { return s.stats }
