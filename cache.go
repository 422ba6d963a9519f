// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

import (
	"sync"
	"time"

	"github.com/venkatsvpr/golang-timedcache/simplecache"
)

type (
	// Args are the arguments of one call, see simplecache.Args.
	Args = simplecache.Args
	// Kwarg is a named argument.
	Kwarg = simplecache.Kwarg
	// Owner is what a cache can be bound to.
	Owner = simplecache.Owner
)

// Kw builds a keyword argument.
func Kw(name string, value any) Kwarg { return simplecache.Kw(name, value) }

// Cache is a thread-safe timed memoizing cache. The lock is held for the
// whole call, computation included, so a computation must not call back
// into its own Cache unless it was built with NoOpRWLocker.
type Cache[V any] struct {
	tc   *simplecache.TimedCache[V]
	lock RWLocker
}

// New wraps fn in a cache. See the simplecache options for the settings.
func New[V any](fn simplecache.Func[V], opts ...simplecache.Option) (*Cache[V], error) {
	return NewWithLocker(&sync.RWMutex{}, fn, opts...)
}

// NewLRU wraps fn in a cache of at most size results that evicts the least
// recently used one when full.
func NewLRU[V any](fn simplecache.Func[V], size int, opts ...simplecache.Option) (*Cache[V], error) {
	return NewWithLocker(&sync.RWMutex{}, fn, append([]simplecache.Option{simplecache.WithMaxSize(size), simplecache.WithLRU()}, opts...)...)
}

// NewWithLocker constructs a cache guarded by the given lock.
func NewWithLocker[V any](lock RWLocker, fn simplecache.Func[V], opts ...simplecache.Option) (*Cache[V], error) {
	tc, err := simplecache.New(fn, opts...)
	if err != nil {
		return nil, err
	}
	if lock == nil {
		lock = &sync.RWMutex{}
	}
	return &Cache[V]{tc: tc, lock: lock}, nil
}

// Call runs the computation with positional arguments through the cache.
func (c *Cache[V]) Call(args ...any) (V, error) {
	return c.CallWith(Args{Positional: args})
}

// CallWith runs the computation through the cache.
func (c *Cache[V]) CallWith(a Args) (V, error) {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.tc.CallWith(a)
}

// Contains checks if a result is stored for args, without updating the
// recent-ness.
func (c *Cache[V]) Contains(args ...any) bool {
	c.lock.RLock()
	containKey := c.tc.Contains(args...)
	c.lock.RUnlock()
	return containKey
}

// Peek returns the stored result for args without updating the recent-ness.
func (c *Cache[V]) Peek(args ...any) (result V, ok bool) {
	c.lock.RLock()
	result, ok = c.tc.Peek(args...)
	c.lock.RUnlock()
	return result, ok
}

// Keys returns the stored keys, oldest first for an LRU cache.
func (c *Cache[V]) Keys() []simplecache.Key {
	c.lock.RLock()
	keys := c.tc.Keys()
	c.lock.RUnlock()
	return keys
}

// Len returns the number of stored results.
func (c *Cache[V]) Len() int {
	c.lock.RLock()
	length := c.tc.Len()
	c.lock.RUnlock()
	return length
}

// Clear drops every result and restarts the lifetime.
func (c *Cache[V]) Clear() {
	c.lock.Lock()
	c.tc.Clear()
	c.lock.Unlock()
}

// SetMaxSize bounds the cache, zero disables caching.
func (c *Cache[V]) SetMaxSize(size int) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.tc.SetMaxSize(size)
}

// RemoveMaxSize makes the cache unbounded.
func (c *Cache[V]) RemoveMaxSize() {
	c.lock.Lock()
	c.tc.RemoveMaxSize()
	c.lock.Unlock()
}

// MaxSize returns the bound and whether one is set.
func (c *Cache[V]) MaxSize() (size int, bounded bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.tc.MaxSize()
}

// Strategy returns the current strategy.
func (c *Cache[V]) Strategy() simplecache.Strategy {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.tc.Strategy()
}

// SetLifetime changes the period between clears and restarts it.
func (c *Cache[V]) SetLifetime(d time.Duration) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.tc.SetLifetime(d)
}

// Expired reports whether the next call clears the cache first.
func (c *Cache[V]) Expired() bool {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.tc.Expired()
}

// SetCallMode changes the call mode.
func (c *Cache[V]) SetCallMode(m simplecache.CallMode) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.tc.SetCallMode(m)
}

// Pause clears the cache and bypasses it until the matching Resume.
func (c *Cache[V]) Pause() {
	c.lock.Lock()
	c.tc.Pause()
	c.lock.Unlock()
}

// Resume ends one Pause.
func (c *Cache[V]) Resume() {
	c.lock.Lock()
	c.tc.Resume()
	c.lock.Unlock()
}

// Paused runs fn with caching paused. fn runs without the lock held and
// may call the cache.
func (c *Cache[V]) Paused(fn func() error) error {
	c.Pause()
	defer c.Resume()
	return fn()
}

// Bind attaches the cache to owner, see simplecache.TimedCache.Bind.
func (c *Cache[V]) Bind(owner Owner) {
	c.lock.Lock()
	c.tc.Bind(owner)
	c.lock.Unlock()
}

// Unbind detaches the cache from its owner.
func (c *Cache[V]) Unbind() {
	c.lock.Lock()
	c.tc.Unbind()
	c.lock.Unlock()
}

// Name returns the name used in logs and metrics.
func (c *Cache[V]) Name() string {
	return c.tc.Name()
}

// Stats returns the counters collected so far.
func (c *Cache[V]) Stats() simplecache.Stats {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.tc.Stats()
}
