// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

import "go.uber.org/atomic"

// CachingObject can be embedded in a type to make it an owner whose caching
// is switched on and off at runtime. The zero value has caching enabled.
type CachingObject struct {
	disabled atomic.Bool
}

// CachingEnabled reports whether caches bound to the object may store results.
func (o *CachingObject) CachingEnabled() bool {
	return !o.disabled.Load()
}

// EnableCaching lets bound caches store results again.
func (o *CachingObject) EnableCaching() {
	o.disabled.Store(false)
}

// DisableCaching makes bound caches clear themselves and call through.
func (o *CachingObject) DisableCaching() {
	o.disabled.Store(true)
}
