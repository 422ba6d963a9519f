// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package internal

// Node is an element of a Ring.
type Node[T any] struct {
	next, prev *Node[T]

	// The value stored with this node.
	Value T
}

// Next returns the node after n, towards the least recently used end.
func (n *Node[T]) Next() *Node[T] { return n.next }

// Prev returns the node before n, towards the most recently used end.
func (n *Node[T]) Prev() *Node[T] { return n.prev }

// Ring is a circular doubly linked list. The head is the most recently used
// node and head.prev is the least recently used one.
// The zero value is an empty ring ready to use. Ring is not safe for concurrent use.
type Ring[T any] struct {
	head *Node[T]
	len  int
}

// NewRing returns an initialized ring.
func NewRing[T any]() *Ring[T] { return new(Ring[T]) }

// Init clears ring r. Nodes are not unlinked one by one.
func (r *Ring[T]) Init() *Ring[T] {
	r.head = nil
	r.len = 0
	return r
}

// Len returns the number of nodes of ring r.
func (r *Ring[T]) Len() int { return r.len }

// Front returns the most recently used node or nil if the ring is empty.
func (r *Ring[T]) Front() *Node[T] { return r.head }

// Back returns the least recently used node or nil if the ring is empty.
func (r *Ring[T]) Back() *Node[T] {
	if r.head == nil {
		return nil
	}
	return r.head.prev
}

// PushFront inserts v as the new head and returns its node.
func (r *Ring[T]) PushFront(v T) *Node[T] {
	return r.Insert(v, 0)
}

// Insert links a new node holding v at logical position index, where 0 is the
// head and Len() is the tail. The node is returned so callers can keep a
// reference for later moves.
func (r *Ring[T]) Insert(v T, index int) *Node[T] {
	if index < 0 || index > r.len {
		panic("internal: ring index out of range")
	}
	n := &Node[T]{Value: v}
	if r.head == nil {
		n.next, n.prev = n, n
		r.head = n
		r.len = 1
		return n
	}
	at := r.head
	if index < r.len {
		at = r.nodeAt(index)
	}
	r.linkBefore(n, at)
	if index == 0 {
		r.head = n
	}
	r.len++
	return n
}

// MoveToFront makes n the head of the ring in O(1).
func (r *Ring[T]) MoveToFront(n *Node[T]) {
	if n == r.head {
		return
	}
	if n == r.head.prev {
		// the tail is already adjacent to the head, rotating keeps the order
		r.head = n
		return
	}
	r.unlink(n)
	r.linkBefore(n, r.head)
	r.head = n
}

// RemoveBack removes the least recently used node and returns its value.
// The ring must not be empty.
func (r *Ring[T]) RemoveBack() T {
	tail := r.head.prev
	r.Remove(tail)
	return tail.Value
}

// Remove unlinks n from the ring.
func (r *Ring[T]) Remove(n *Node[T]) {
	if r.len == 1 {
		r.head = nil
	} else {
		if n == r.head {
			r.head = n.next
		}
		r.unlink(n)
	}
	n.next, n.prev = nil, nil
	r.len--
}

// Do calls fn for each value from the most to the least recently used,
// stopping early when fn returns false.
func (r *Ring[T]) Do(fn func(v T) bool) {
	if r.head == nil {
		return
	}
	n := r.head
	for i := 0; i < r.len; i++ {
		next := n.next
		if !fn(n.Value) {
			return
		}
		n = next
	}
}

// DoBackward calls fn for each value from the least to the most recently used,
// stopping early when fn returns false.
func (r *Ring[T]) DoBackward(fn func(v T) bool) {
	if r.head == nil {
		return
	}
	n := r.head.prev
	for i := 0; i < r.len; i++ {
		prev := n.prev
		if !fn(n.Value) {
			return
		}
		n = prev
	}
}

// nodeAt walks from whichever end of the ring is closer to index.
func (r *Ring[T]) nodeAt(index int) *Node[T] {
	n := r.head
	if index <= r.len/2 {
		for i := 0; i < index; i++ {
			n = n.next
		}
		return n
	}
	for i := r.len; i > index; i-- {
		n = n.prev
	}
	return n
}

func (r *Ring[T]) linkBefore(n, at *Node[T]) {
	n.next = at
	n.prev = at.prev
	at.prev.next = n
	at.prev = n
}

func (r *Ring[T]) unlink(n *Node[T]) {
	n.prev.next = n.next
	n.next.prev = n.prev
}
