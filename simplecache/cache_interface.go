// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package simplecache provides timed memoization caches that are not safe for
// concurrent use.
package simplecache

import "time"

// Memoizer is the interface shared by the timed caches.
type Memoizer[V any] interface {
	// Runs the computation through the cache.
	Call(args ...any) (V, error)

	// Runs the computation through the cache, with keyword arguments.
	CallWith(a Args) (V, error)

	// Checks if a result is stored without updating the recent-ness.
	Contains(args ...any) bool

	// Returns a stored result without updating the recent-ness.
	Peek(args ...any) (V, bool)

	// Returns the stored keys.
	Keys() []Key

	// Returns the number of stored results.
	Len() int

	// Clears all results and restarts the lifetime.
	Clear()

	// Bounds the cache, zero disables caching.
	SetMaxSize(size int) error

	// Makes the cache unbounded.
	RemoveMaxSize()

	// Changes the period between clears.
	SetLifetime(d time.Duration) error

	// Reports whether the next call clears the cache first.
	Expired() bool

	// Bypasses the cache until the matching Resume.
	Pause()

	// Ends one Pause.
	Resume()

	// Returns the counters collected so far.
	Stats() Stats
}

var _ Memoizer[any] = (*TimedCache[any])(nil)
