// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplecache

import (
	"time"

	"go.uber.org/zap"

	"github.com/venkatsvpr/golang-timedcache/internal"
	"github.com/venkatsvpr/golang-timedcache/metrics"
)

// Func is a computation whose results are cached.
type Func[V any] func(a Args) (V, error)

// Owner is an object a cache can be bound to. A bound cache asks its owner
// before every call and bypasses itself while caching is disabled.
type Owner interface {
	CachingEnabled() bool
}

// Strategy is the policy that decides whether and how results are stored.
type Strategy uint8

const (
	// StrategyDisabled always recomputes and never stores.
	StrategyDisabled Strategy = iota
	// StrategyUnbounded stores every result and never evicts.
	StrategyUnbounded
	// StrategyBounded stores results until the max size is reached and
	// then stops storing new ones.
	StrategyBounded
	// StrategyLRU evicts the least recently used result when full.
	StrategyLRU
)

func (s Strategy) String() string {
	switch s {
	case StrategyDisabled:
		return "disabled"
	case StrategyUnbounded:
		return "unbounded"
	case StrategyBounded:
		return "bounded"
	case StrategyLRU:
		return "lru"
	}
	return "unknown"
}

func strategyFor(bounded bool, size int, evict bool) Strategy {
	switch {
	case !bounded:
		return StrategyUnbounded
	case size == 0:
		return StrategyDisabled
	case evict:
		return StrategyLRU
	}
	return StrategyBounded
}

// Stats counts what a cache has done since it was created.
type Stats struct {
	Hits      uint64
	Misses    uint64
	Evictions uint64
	Clears    uint64
}

// TimedCache memoizes a computation and clears itself once its lifetime
// elapses. It is not safe for concurrent use; callers sharing one between
// goroutines must hold a lock around every method, or use the wrapper in the
// root package.
type TimedCache[V any] struct {
	fn       Func[V]
	maxSize  int
	bounded  bool
	evict    bool
	typed    bool
	mode     CallMode
	strategy Strategy
	pauses   int
	timer    timer

	items index[V]
	order *internal.Ring[*entry[V]]

	// owner is not owned by the cache, see Bind.
	owner Owner

	name    string
	logger  *zap.Logger
	metrics metrics.CacheMetrics
	stats   Stats
}

// New wraps fn in a cache. Without options the cache is unbounded, untyped
// and never expires.
func New[V any](fn Func[V], opts ...Option) (*TimedCache[V], error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	cfg, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	c := &TimedCache[V]{
		fn:       fn,
		maxSize:  cfg.maxSize,
		bounded:  cfg.bounded,
		evict:    cfg.evict,
		typed:    cfg.typed,
		mode:     cfg.mode,
		strategy: strategyFor(cfg.bounded, cfg.maxSize, cfg.evict),
		timer:    newTimer(cfg.clock, cfg.lifetime),
		items:    newIndex[V](),
		order:    internal.NewRing[*entry[V]](),
		name:     cfg.name,
		logger:   cfg.logger.With(zap.String("cache", cfg.name)),
		metrics:  cfg.metrics,
	}
	return c, nil
}

// NewLRU wraps fn in a cache holding at most size results, evicting the
// least recently used one when full.
func NewLRU[V any](fn Func[V], size int, opts ...Option) (*TimedCache[V], error) {
	return New(fn, append([]Option{WithMaxSize(size), WithLRU()}, opts...)...)
}

// Call runs the computation with positional arguments through the cache.
func (c *TimedCache[V]) Call(args ...any) (V, error) {
	return c.CallWith(Args{Positional: args})
}

// CallWith runs the computation through the cache. Errors from the
// computation are returned as is and nothing is stored for them.
func (c *TimedCache[V]) CallWith(a Args) (V, error) {
	if c.owner != nil && !c.owner.CachingEnabled() {
		c.clear(metrics.ReasonOwner)
		return c.fn(a)
	}
	if c.pauses > 0 {
		return c.fn(a)
	}

	if c.mode == CallClearing {
		c.clear(metrics.ReasonClearing)
	} else if c.timer.expired() {
		c.logger.Debug("cache expired", zap.Time("expiration", c.timer.expiration), zap.Int("entries", c.items.len()))
		c.clear(metrics.ReasonExpired)
	}

	switch c.strategy {
	case StrategyUnbounded:
		return c.unboundedCall(a)
	case StrategyBounded:
		return c.boundedCall(a)
	case StrategyLRU:
		return c.lruCall(a)
	}
	return c.fn(a)
}

func (c *TimedCache[V]) unboundedCall(a Args) (V, error) {
	key, err := MakeKey(a, c.typed)
	if err != nil {
		var zero V
		return zero, err
	}
	if e, ok := c.items.get(key); ok {
		c.hit(e)
		return e.result, nil
	}
	result, err := c.miss(a)
	if err != nil {
		return result, err
	}
	c.store(key, result)
	return result, nil
}

func (c *TimedCache[V]) boundedCall(a Args) (V, error) {
	key, err := MakeKey(a, c.typed)
	if err != nil {
		var zero V
		return zero, err
	}
	if e, ok := c.items.get(key); ok {
		c.hit(e)
		return e.result, nil
	}
	result, err := c.miss(a)
	if err != nil {
		return result, err
	}
	// a full cache drops new results, existing entries stay servable
	if c.items.len() < c.maxSize {
		c.store(key, result)
	}
	return result, nil
}

func (c *TimedCache[V]) lruCall(a Args) (V, error) {
	key, err := MakeKey(a, c.typed)
	if err != nil {
		var zero V
		return zero, err
	}
	if e, ok := c.items.get(key); ok {
		c.hit(e)
		return e.result, nil
	}
	result, err := c.miss(a)
	if err != nil {
		return result, err
	}
	if c.items.len() < c.maxSize {
		c.store(key, result)
		return result, nil
	}
	if e, ok := c.items.get(key); ok {
		// stored by a reentrant call while computing
		e.result = result
		c.order.MoveToFront(e.link)
		return result, nil
	}

	// recycle the least recently used entry and its node
	tail := c.order.Back()
	e := tail.Value
	c.items.remove(e)
	e.key, e.result = key, result
	c.order.MoveToFront(tail)
	c.items.put(e)
	c.stats.Evictions++
	c.metrics.Eviction(c.name)
	return result, nil
}

func (c *TimedCache[V]) hit(e *entry[V]) {
	if e.link != nil {
		c.order.MoveToFront(e.link)
	}
	c.stats.Hits++
	c.metrics.Hit(c.name)
}

func (c *TimedCache[V]) miss(a Args) (V, error) {
	c.stats.Misses++
	c.metrics.Miss(c.name)
	return c.fn(a)
}

// store adds a new entry, or updates the one a reentrant call may have
// stored for the same key while the result was computed.
func (c *TimedCache[V]) store(key Key, result V) {
	if e, ok := c.items.get(key); ok {
		e.result = result
		if e.link != nil {
			c.order.MoveToFront(e.link)
		}
		return
	}
	e := &entry[V]{key: key, result: result}
	if c.evict {
		e.link = c.order.PushFront(e)
	}
	c.items.put(e)
	c.metrics.Size(c.name, c.items.len())
}

// Clear drops every result and schedules the next expiration one lifetime
// from now.
func (c *TimedCache[V]) Clear() {
	c.clear(metrics.ReasonManual)
}

func (c *TimedCache[V]) clear(reason string) {
	c.items.clear()
	c.order.Init()
	c.timer.reset()
	c.stats.Clears++
	c.metrics.Clear(c.name, reason)
	c.metrics.Size(c.name, 0)
}

// SetMaxSize bounds the cache and reselects its strategy. Zero disables
// caching. An LRU cache holding more than size results evicts the least
// recently used ones right away.
func (c *TimedCache[V]) SetMaxSize(size int) error {
	if size < 0 {
		return &ConfigError{Field: "max size", Value: size, Err: ErrInvalidMaxSize}
	}
	c.maxSize, c.bounded = size, true
	c.setStrategy(strategyFor(c.bounded, c.maxSize, c.evict))
	if c.evict {
		c.trim()
	}
	return nil
}

// RemoveMaxSize makes the cache unbounded.
func (c *TimedCache[V]) RemoveMaxSize() {
	c.maxSize, c.bounded = 0, false
	c.setStrategy(StrategyUnbounded)
}

// MaxSize returns the bound and whether one is set.
func (c *TimedCache[V]) MaxSize() (size int, bounded bool) {
	return c.maxSize, c.bounded
}

func (c *TimedCache[V]) setStrategy(s Strategy) {
	if s == c.strategy {
		return
	}
	c.logger.Debug("strategy changed", zap.Stringer("from", c.strategy), zap.Stringer("to", s))
	c.strategy = s
}

// trim evicts from the tail until the bound holds. Has to be called on an
// eviction-enabled cache.
func (c *TimedCache[V]) trim() {
	evicted := 0
	for c.order.Len() > c.maxSize {
		e := c.order.RemoveBack()
		c.items.remove(e)
		c.stats.Evictions++
		c.metrics.Eviction(c.name)
		evicted++
	}
	if evicted > 0 {
		c.logger.Debug("cache trimmed", zap.Int("evicted", evicted), zap.Int("max_size", c.maxSize))
		c.metrics.Size(c.name, c.items.len())
	}
}

// Strategy returns the configured strategy. It is kept while paused.
func (c *TimedCache[V]) Strategy() Strategy { return c.strategy }

// SetLifetime changes the period between clears and restarts it. Zero turns
// expiration off.
func (c *TimedCache[V]) SetLifetime(d time.Duration) error {
	if d < 0 {
		return &ConfigError{Field: "lifetime", Value: d, Err: ErrInvalidLifetime}
	}
	c.timer.setLifetime(d)
	return nil
}

// Lifetime returns the period between clears, zero if the cache never expires.
func (c *TimedCache[V]) Lifetime() time.Duration { return c.timer.lifetime }

// Expiration returns when the cache is next due to be cleared. Only
// meaningful with a lifetime set.
func (c *TimedCache[V]) Expiration() time.Time { return c.timer.expiration }

// Expired reports whether the next call would clear the cache first.
func (c *TimedCache[V]) Expired() bool { return c.timer.expired() }

// SetCallMode changes the call mode.
func (c *TimedCache[V]) SetCallMode(m CallMode) error {
	if !m.valid() {
		return &ConfigError{Field: "call mode", Value: uint8(m), Err: ErrUnknownCallMode}
	}
	c.mode = m
	return nil
}

// CallMode returns the call mode.
func (c *TimedCache[V]) CallMode() CallMode { return c.mode }

// Pause clears the cache and bypasses it until the matching Resume. The
// strategy is kept, and SetMaxSize may still be called while paused.
// Pauses nest.
func (c *TimedCache[V]) Pause() {
	c.pauses++
	if c.pauses == 1 {
		c.clear(metrics.ReasonPaused)
		c.logger.Debug("caching paused")
	}
}

// Resume ends one Pause.
func (c *TimedCache[V]) Resume() {
	if c.pauses == 0 {
		return
	}
	c.pauses--
	if c.pauses == 0 {
		c.logger.Debug("caching resumed", zap.Stringer("strategy", c.strategy))
	}
}

// Paused runs fn with caching paused and resumes afterwards, even if fn panics.
func (c *TimedCache[V]) Paused(fn func() error) error {
	c.Pause()
	defer c.Resume()
	return fn()
}

// IsPaused reports whether calls currently bypass the cache.
func (c *TimedCache[V]) IsPaused() bool { return c.pauses > 0 }

// Bind attaches the cache to owner. The cache keeps a plain reference and
// does not manage the owner's lifetime: call Unbind before dropping the
// owner if the cache outlives it.
func (c *TimedCache[V]) Bind(owner Owner) {
	c.owner = owner
	c.logger.Debug("cache bound")
}

// Unbind detaches the cache from its owner.
func (c *TimedCache[V]) Unbind() {
	if c.owner != nil {
		c.logger.Debug("cache unbound")
	}
	c.owner = nil
}

// Owner returns the bound owner, nil if unbound.
func (c *TimedCache[V]) Owner() Owner { return c.owner }

// Func returns the wrapped computation, which bypasses the cache.
func (c *TimedCache[V]) Func() Func[V] { return c.fn }

// Typed reports whether argument types are part of the keys.
func (c *TimedCache[V]) Typed() bool { return c.typed }

// Name returns the name used in logs and metrics.
func (c *TimedCache[V]) Name() string { return c.name }

// Stats returns the counters collected so far.
func (c *TimedCache[V]) Stats() Stats { return c.stats }

// Len returns the number of stored results.
func (c *TimedCache[V]) Len() int { return c.items.len() }

// Keys returns the stored keys. An LRU cache returns them from oldest to
// newest, other caches in no particular order.
func (c *TimedCache[V]) Keys() []Key {
	keys := make([]Key, 0, c.items.len())
	if c.evict {
		c.order.DoBackward(func(e *entry[V]) bool {
			keys = append(keys, e.key)
			return true
		})
		return keys
	}
	c.items.each(func(e *entry[V]) {
		keys = append(keys, e.key)
	})
	return keys
}

// Contains checks if a result is stored for args, without updating the
// recent-ness or checking expiration.
func (c *TimedCache[V]) Contains(args ...any) bool {
	_, ok := c.PeekWith(Args{Positional: args})
	return ok
}

// Peek returns the stored result for args without updating the recent-ness.
func (c *TimedCache[V]) Peek(args ...any) (V, bool) {
	return c.PeekWith(Args{Positional: args})
}

// PeekWith is Peek for arguments with keywords.
func (c *TimedCache[V]) PeekWith(a Args) (result V, ok bool) {
	key, err := MakeKey(a, c.typed)
	if err != nil {
		return result, false
	}
	if e, found := c.items.get(key); found {
		return e.result, true
	}
	return result, false
}
