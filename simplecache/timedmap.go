// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplecache

import (
	"time"

	clocks "github.com/vimeo/go-clocks"
)

// TimedMap is a map that empties itself once its lifetime has elapsed. The
// lifetime is checked lazily on every access. TimedMap is not safe for
// concurrent use.
type TimedMap[K comparable, V any] struct {
	data  map[K]V
	timer timer
}

// NewTimedMap creates a map cleared every lifetime. Zero lifetime never clears.
// A nil clock uses the system clock.
func NewTimedMap[K comparable, V any](lifetime time.Duration, clock clocks.Clock) (*TimedMap[K, V], error) {
	if lifetime < 0 {
		return nil, &ConfigError{Field: "lifetime", Value: lifetime, Err: ErrInvalidLifetime}
	}
	if clock == nil {
		clock = clocks.DefaultClock()
	}
	return &TimedMap[K, V]{
		data:  make(map[K]V),
		timer: newTimer(clock, lifetime),
	}, nil
}

func (m *TimedMap[K, V]) verify() {
	if m.timer.expired() {
		m.Clear()
	}
}

// Get returns the value stored for key.
func (m *TimedMap[K, V]) Get(key K) (value V, ok bool) {
	m.verify()
	value, ok = m.data[key]
	return value, ok
}

// Set stores value under key.
func (m *TimedMap[K, V]) Set(key K, value V) {
	m.verify()
	m.data[key] = value
}

// Delete removes key, returning whether it was present.
func (m *TimedMap[K, V]) Delete(key K) bool {
	m.verify()
	_, ok := m.data[key]
	delete(m.data, key)
	return ok
}

// Len returns the number of stored values.
func (m *TimedMap[K, V]) Len() int {
	m.verify()
	return len(m.data)
}

// Range calls fn for every stored pair until fn returns false.
func (m *TimedMap[K, V]) Range(fn func(key K, value V) bool) {
	m.verify()
	for k, v := range m.data {
		if !fn(k, v) {
			return
		}
	}
}

// Clear empties the map and restarts the lifetime.
func (m *TimedMap[K, V]) Clear() {
	clear(m.data)
	m.timer.reset()
}

// Expiration returns when the map is next due to be cleared.
func (m *TimedMap[K, V]) Expiration() time.Time { return m.timer.expiration }

// PauseTimer stops the map from clearing while fn runs. Afterwards the map
// expires after whatever was left of its lifetime when fn started.
func (m *TimedMap[K, V]) PauseTimer(fn func()) {
	left := m.timer.remaining()
	m.timer.stopped = true
	defer func() {
		m.timer.stopped = false
		if m.timer.lifetime > 0 {
			m.timer.expiration = m.timer.clock.Now().Add(left)
		}
	}()
	fn()
}

// PauseResetTimer stops the map from clearing while fn runs and restarts
// the full lifetime afterwards.
func (m *TimedMap[K, V]) PauseResetTimer(fn func()) {
	m.timer.stopped = true
	defer func() {
		m.timer.stopped = false
		m.timer.reset()
	}()
	fn()
}
