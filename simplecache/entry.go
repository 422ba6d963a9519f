// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplecache

import "github.com/venkatsvpr/golang-timedcache/internal"

// entry is used to hold a result in the cache. link is nil unless the
// cache tracks recency.
type entry[V any] struct {
	key    Key
	result V
	link   *internal.Node[*entry[V]]
}

// index maps keys to entries. Keys are bucketed by their cached hash and
// compared with Key.Equal inside a bucket.
type index[V any] struct {
	buckets map[uint64][]*entry[V]
	size    int
}

func newIndex[V any]() index[V] {
	return index[V]{buckets: make(map[uint64][]*entry[V])}
}

func (ix *index[V]) get(k Key) (*entry[V], bool) {
	for _, e := range ix.buckets[k.hash] {
		if e.key.Equal(k) {
			return e, true
		}
	}
	return nil, false
}

func (ix *index[V]) put(e *entry[V]) {
	ix.buckets[e.key.hash] = append(ix.buckets[e.key.hash], e)
	ix.size++
}

// remove drops e itself, not whatever entry compares equal to its key.
func (ix *index[V]) remove(e *entry[V]) bool {
	bucket := ix.buckets[e.key.hash]
	for i, b := range bucket {
		if b != e {
			continue
		}
		if len(bucket) == 1 {
			delete(ix.buckets, e.key.hash)
		} else {
			bucket[i] = bucket[len(bucket)-1]
			bucket[len(bucket)-1] = nil
			ix.buckets[e.key.hash] = bucket[:len(bucket)-1]
		}
		ix.size--
		return true
	}
	return false
}

func (ix *index[V]) len() int { return ix.size }

func (ix *index[V]) clear() {
	clear(ix.buckets)
	ix.size = 0
}

func (ix *index[V]) each(fn func(e *entry[V])) {
	for _, bucket := range ix.buckets {
		for _, e := range bucket {
			fn(e)
		}
	}
}
