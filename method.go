// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

import (
	"sync"

	"github.com/venkatsvpr/golang-timedcache/simplecache"
)

// MethodOwner is a comparable owner, usually a pointer.
type MethodOwner interface {
	comparable
	Owner
}

// MethodFunc is a computation belonging to an owner.
type MethodFunc[O MethodOwner, V any] func(owner O, a Args) (V, error)

// Method caches a computation across the owners it is called on.
//
// A collective Method keeps one cache shared by all owners, with the owner
// as the first part of every key. A per-owner Method builds a separate
// cache bound to each owner on first use.
type Method[O MethodOwner, V any] struct {
	fn         MethodFunc[O, V]
	opts       []simplecache.Option
	collective bool

	shared *Cache[V]

	mu     sync.Mutex
	owners map[O]*Cache[V]
}

// NewMethod creates a collective method cache.
func NewMethod[O MethodOwner, V any](fn MethodFunc[O, V], opts ...simplecache.Option) (*Method[O, V], error) {
	if fn == nil {
		return nil, simplecache.ErrNilFunc
	}
	m := &Method[O, V]{fn: fn, opts: opts, collective: true}
	shared, err := New(func(a Args) (V, error) {
		owner := a.Positional[0].(O)
		return fn(owner, Args{Positional: a.Positional[1:], Keyword: a.Keyword})
	}, opts...)
	if err != nil {
		return nil, err
	}
	m.shared = shared
	return m, nil
}

// NewPerOwnerMethod creates a method cache holding one cache per owner,
// each built from opts.
func NewPerOwnerMethod[O MethodOwner, V any](fn MethodFunc[O, V], opts ...simplecache.Option) (*Method[O, V], error) {
	if fn == nil {
		return nil, simplecache.ErrNilFunc
	}
	// fail on bad options now rather than on the first call
	probe := func(Args) (V, error) {
		var zero V
		return zero, nil
	}
	if _, err := simplecache.New(probe, opts...); err != nil {
		return nil, err
	}
	return &Method[O, V]{fn: fn, opts: opts, owners: make(map[O]*Cache[V])}, nil
}

// Collective reports whether all owners share one cache.
func (m *Method[O, V]) Collective() bool { return m.collective }

// Call runs the computation for owner through the cache.
func (m *Method[O, V]) Call(owner O, args ...any) (V, error) {
	return m.CallWith(owner, Args{Positional: args})
}

// CallWith runs the computation for owner through the cache. The zero owner
// is rejected with ErrNilOwner. In a collective method an owner with caching
// disabled has the computation called directly and the results stored for
// other owners are kept.
func (m *Method[O, V]) CallWith(owner O, a Args) (V, error) {
	var zero O
	if owner == zero {
		var v V
		return v, ErrNilOwner
	}
	if !m.collective {
		c, err := m.Cache(owner)
		if err != nil {
			var v V
			return v, err
		}
		return c.CallWith(a)
	}
	if !owner.CachingEnabled() {
		return m.fn(owner, a)
	}
	pos := make([]any, 0, len(a.Positional)+1)
	pos = append(pos, owner)
	pos = append(pos, a.Positional...)
	return m.shared.CallWith(Args{Positional: pos, Keyword: a.Keyword})
}

// Cache returns the cache serving owner, creating and binding it on first
// use for a per-owner method.
func (m *Method[O, V]) Cache(owner O) (*Cache[V], error) {
	if m.collective {
		return m.shared, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.owners[owner]; ok {
		return c, nil
	}
	c, err := New(func(a Args) (V, error) {
		return m.fn(owner, a)
	}, m.opts...)
	if err != nil {
		return nil, err
	}
	c.Bind(owner)
	m.owners[owner] = c
	return c, nil
}

// Release drops the cache of owner so the owner can be collected. Keys of a
// collective method reference every owner, so its shared cache is cleared.
func (m *Method[O, V]) Release(owner O) {
	if m.collective {
		m.shared.Clear()
		return
	}
	m.mu.Lock()
	c, ok := m.owners[owner]
	delete(m.owners, owner)
	m.mu.Unlock()
	if ok {
		c.Unbind()
	}
}

// Owners returns how many per-owner caches exist.
func (m *Method[O, V]) Owners() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.owners)
}

// Clear clears every cache of the method.
func (m *Method[O, V]) Clear() {
	if m.collective {
		m.shared.Clear()
		return
	}
	m.mu.Lock()
	caches := make([]*Cache[V], 0, len(m.owners))
	for _, c := range m.owners {
		caches = append(caches, c)
	}
	m.mu.Unlock()
	for _, c := range caches {
		c.Clear()
	}
}
