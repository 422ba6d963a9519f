// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

import (
	"fmt"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Managed is what a Registry can manage. *Cache satisfies it for any V.
type Managed interface {
	Name() string
	Len() int
	Clear()
	SetMaxSize(size int) error
}

// Registry is a named set of caches belonging to one component, so they
// can be cleared or resized together.
type Registry struct {
	lock   sync.RWMutex
	caches map[string]Managed
	logger *zap.Logger
}

// NewRegistry creates an empty registry. A nil logger logs nothing.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		caches: make(map[string]Managed),
		logger: logger,
	}
}

// Register adds c under its name.
func (r *Registry) Register(c Managed) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	name := c.Name()
	if _, ok := r.caches[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCache, name)
	}
	r.caches[name] = c
	r.logger.Debug("cache registered", zap.String("cache", name))
	return nil
}

// Unregister removes the cache named name.
func (r *Registry) Unregister(name string) bool {
	r.lock.Lock()
	defer r.lock.Unlock()
	_, ok := r.caches[name]
	delete(r.caches, name)
	return ok
}

// Get returns the cache named name.
func (r *Registry) Get(name string) (Managed, bool) {
	r.lock.RLock()
	c, ok := r.caches[name]
	r.lock.RUnlock()
	return c, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.lock.RLock()
	names := make([]string, 0, len(r.caches))
	for name := range r.caches {
		names = append(names, name)
	}
	r.lock.RUnlock()
	sort.Strings(names)
	return names
}

// ClearAll clears every registered cache.
func (r *Registry) ClearAll() {
	for _, c := range r.snapshot() {
		c.Clear()
	}
	r.logger.Debug("caches cleared")
}

// Resize sets the max size of each named cache. Every entry is attempted;
// the failures are returned together.
func (r *Registry) Resize(sizes map[string]int) error {
	names := make([]string, 0, len(sizes))
	for name := range sizes {
		names = append(names, name)
	}
	sort.Strings(names)

	var result *multierror.Error
	for _, name := range names {
		c, ok := r.Get(name)
		if !ok {
			result = multierror.Append(result, fmt.Errorf("%w: %q", ErrUnknownCache, name))
			continue
		}
		if err := c.SetMaxSize(sizes[name]); err != nil {
			result = multierror.Append(result, fmt.Errorf("resize %q: %w", name, err))
			continue
		}
		r.logger.Debug("cache resized", zap.String("cache", name), zap.Int("max_size", sizes[name]))
	}
	return result.ErrorOrNil()
}

// Len returns the number of results stored across all caches.
func (r *Registry) Len() int {
	n := 0
	for _, c := range r.snapshot() {
		n += c.Len()
	}
	return n
}

func (r *Registry) snapshot() []Managed {
	r.lock.RLock()
	defer r.lock.RUnlock()
	caches := make([]Managed, 0, len(r.caches))
	for _, c := range r.caches {
		caches = append(caches, c)
	}
	return caches
}
