// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

// RWLocker is the lock a Cache holds while operating. *sync.RWMutex
// satisfies it.
type RWLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// NoOpRWLocker skips locking, for caches only ever used from one goroutine.
// A computation may then call back into its own cache.
type NoOpRWLocker struct{}

// Lock does nothing.
func (nop NoOpRWLocker) Lock() {}

// Unlock does nothing.
func (nop NoOpRWLocker) Unlock() {}

// RLock does nothing.
func (nop NoOpRWLocker) RLock() {}

// RUnlock does nothing.
func (nop NoOpRWLocker) RUnlock() {}
