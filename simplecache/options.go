// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplecache

import (
	"time"

	clocks "github.com/vimeo/go-clocks"
	"go.uber.org/zap"

	"github.com/venkatsvpr/golang-timedcache/metrics"
)

// CallMode selects what happens before each call is dispatched.
type CallMode uint8

const (
	// CallCaching clears the cache only once its lifetime has elapsed.
	CallCaching CallMode = iota
	// CallClearing clears the cache before every call.
	CallClearing
)

func (m CallMode) String() string {
	switch m {
	case CallCaching:
		return "caching"
	case CallClearing:
		return "clearing"
	}
	return "unknown"
}

func (m CallMode) valid() bool {
	return m == CallCaching || m == CallClearing
}

type config struct {
	maxSize  int
	bounded  bool
	evict    bool
	typed    bool
	lifetime time.Duration
	mode     CallMode
	clock    clocks.Clock
	logger   *zap.Logger
	metrics  metrics.CacheMetrics
	name     string
}

// Option customizes a cache at construction.
type Option func(c *config) error

func newConfig(opts []Option) (config, error) {
	cfg := config{
		mode:    CallCaching,
		clock:   clocks.DefaultClock(),
		logger:  zap.NewNop(),
		metrics: metrics.Nop(),
		name:    "default",
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}
	return cfg, nil
}

// WithMaxSize bounds the number of cached results. Zero disables caching.
// Without this option the cache is unbounded.
func WithMaxSize(size int) Option {
	return func(c *config) error {
		if size < 0 {
			return &ConfigError{Field: "max size", Value: size, Err: ErrInvalidMaxSize}
		}
		c.maxSize = size
		c.bounded = true
		return nil
	}
}

// WithLRU makes a full cache evict its least recently used entry instead of
// refusing to store new results.
func WithLRU() Option {
	return func(c *config) error {
		c.evict = true
		return nil
	}
}

// WithTyped makes argument types part of the key.
func WithTyped() Option {
	return func(c *config) error {
		c.typed = true
		return nil
	}
}

// WithLifetime sets the period after which the whole cache is cleared.
// Zero turns expiration off.
func WithLifetime(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return &ConfigError{Field: "lifetime", Value: d, Err: ErrInvalidLifetime}
		}
		c.lifetime = d
		return nil
	}
}

// WithCallMode sets the call mode, CallCaching by default.
func WithCallMode(m CallMode) Option {
	return func(c *config) error {
		if !m.valid() {
			return &ConfigError{Field: "call mode", Value: uint8(m), Err: ErrUnknownCallMode}
		}
		c.mode = m
		return nil
	}
}

// WithClock sets the clock used for expiration, mostly useful for tests.
func WithClock(clock clocks.Clock) Option {
	return func(c *config) error {
		if clock != nil {
			c.clock = clock
		}
		return nil
	}
}

// WithLogger sets the logger for debug events.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) error {
		if l != nil {
			c.logger = l
		}
		return nil
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m metrics.CacheMetrics) Option {
	return func(c *config) error {
		if m != nil {
			c.metrics = m
		}
		return nil
	}
}

// WithName names the cache in logs and metrics.
func WithName(name string) Option {
	return func(c *config) error {
		c.name = name
		return nil
	}
}
