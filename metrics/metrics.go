// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package metrics defines the instrumentation hooks used by the caches so that
// a metrics backend can be plugged in without the caches depending on it.
package metrics

// Clear reasons reported through CacheMetrics.Clear.
const (
	ReasonManual   = "manual"
	ReasonExpired  = "expired"
	ReasonClearing = "clearing_call"
	ReasonPaused   = "paused"
	ReasonOwner    = "owner_disabled"
)

// CacheMetrics receives cache events. Every method is labelled with the
// name of the cache that produced the event.
type CacheMetrics interface {
	// Hit records a call served from the cache.
	Hit(cache string)
	// Miss records a call that ran the wrapped computation.
	Miss(cache string)
	// Eviction records an entry dropped to make room for another.
	Eviction(cache string)
	// Clear records the whole cache being emptied.
	Clear(cache, reason string)
	// Size reports the current number of entries.
	Size(cache string, n int)
}
