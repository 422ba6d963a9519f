// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package timedcache provides memoizing caches whose contents expire as a
// whole once a lifetime has elapsed.
//
// Cache wraps a computation and stores its results keyed by the call
// arguments. Depending on its max size a cache stores everything, stores
// until full, evicts the least recently used result, or stores nothing.
//
// Method caches a computation that belongs to an owner, either in one
// cache shared by all owners or in one cache per owner. Owners embedding
// CachingObject can turn caching off for themselves at runtime.
//
// All caches in this package take locks while operating, and are therefore
// thread-safe for consumers. The non thread-safe caches live in the
// simplecache package.
package timedcache
