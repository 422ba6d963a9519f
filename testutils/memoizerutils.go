// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

// Package testutils holds behaviour checks shared by the cache tests.
package testutils

import "testing"

// Memoizer is a cache over an identity computation on ints.
type Memoizer interface {
	Call(args ...any) (any, error)
	Contains(args ...any) bool
	Peek(args ...any) (any, bool)
	Len() int
	Clear()
	SetMaxSize(size int) error
}

func call(t *testing.T, c Memoizer, i int) {
	t.Helper()
	v, err := c.Call(i)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if v != i {
		t.Fatalf("bad value for %d: %v", i, v)
	}
}

// LRUTest checks an LRU cache of the given capacity. computed returns how
// many times the computation has run.
func LRUTest(t *testing.T, c Memoizer, capacity int, computed func() int) {
	// call twice the capacity to check if eviction occurs
	for i := 0; i < 2*capacity; i++ {
		call(t, c, i)
	}

	if c.Len() != capacity {
		t.Fatalf("bad len: %v", c.Len())
	}
	if computed() != 2*capacity {
		t.Fatalf("bad computed count: %v", computed())
	}

	// only capacity..2*capacity should be left, anything before that should
	// have been evicted
	for i := 0; i < capacity; i++ {
		if c.Contains(i) {
			t.Fatalf("%d should be evicted", i)
		}
	}
	for i := capacity; i < 2*capacity; i++ {
		call(t, c, i)
	}
	if computed() != 2*capacity {
		t.Fatalf("stored results were recomputed: %v", computed())
	}

	// this makes capacity the most recently used, so capacity+1 goes next
	call(t, c, capacity)
	call(t, c, 2*capacity)
	if !c.Contains(capacity) {
		t.Fatalf("%d should not be evicted", capacity)
	}
	if c.Contains(capacity + 1) {
		t.Fatalf("%d should be evicted", capacity+1)
	}

	if err := c.SetMaxSize(capacity / 2); err != nil {
		t.Fatalf("err: %v", err)
	}
	if c.Len() != capacity/2 {
		t.Fatalf("bad len after resize: %v", c.Len())
	}
	if !c.Contains(2 * capacity) {
		t.Fatalf("newest result should survive the resize")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Fatalf("bad len: %v", c.Len())
	}
	if c.Contains(2 * capacity) {
		t.Fatalf("should contain nothing")
	}
}

// BoundedTest checks a cache that stops storing once capacity is reached.
func BoundedTest(t *testing.T, c Memoizer, capacity int, computed func() int) {
	for i := 0; i < 2*capacity; i++ {
		call(t, c, i)
	}
	if c.Len() != capacity {
		t.Fatalf("bad len: %v", c.Len())
	}

	// the first results stay, the rest were never stored
	for i := 0; i < capacity; i++ {
		if !c.Contains(i) {
			t.Fatalf("%d should be stored", i)
		}
	}
	for i := capacity; i < 2*capacity; i++ {
		if c.Contains(i) {
			t.Fatalf("%d should not be stored", i)
		}
	}

	before := computed()
	for i := 0; i < capacity; i++ {
		call(t, c, i)
	}
	if computed() != before {
		t.Fatalf("stored results were recomputed")
	}
	call(t, c, 2*capacity)
	if computed() != before+1 {
		t.Fatalf("overflowing result should be recomputed")
	}
}

// ContainsTest checks that Contains does not update the recent-ness.
func ContainsTest(t *testing.T, c Memoizer, capacity int) {
	for i := 0; i < capacity; i++ {
		call(t, c, i)
	}

	// contains should not update the recent-ness so this item will remain the oldest
	if !c.Contains(0) {
		t.Errorf("0 should be contained")
	}

	// oldest (0) should have been evicted
	call(t, c, capacity)
	if c.Contains(0) {
		t.Errorf("Contains should not have updated recent-ness of 0")
	}
}

// PeekTest checks that Peek does not update the recent-ness.
func PeekTest(t *testing.T, c Memoizer, capacity int) {
	for i := 0; i < capacity; i++ {
		call(t, c, i)
	}

	if v, ok := c.Peek(1); !ok || v != 1 {
		t.Errorf("1 should be set to 1: %v, %v", v, ok)
	}

	call(t, c, capacity)
	if c.Contains(0) {
		t.Errorf("should have been removed to make room for the new item")
	}
}
