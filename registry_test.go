// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
	"go.uber.org/zap/zaptest"

	"github.com/venkatsvpr/golang-timedcache/simplecache"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry(zaptest.NewLogger(t))

	var n atomic.Int64
	a, err := NewLRU(identity(&n), 8, simplecache.WithName("a"))
	require.NoError(t, err)
	b, err := New(identity(&n), simplecache.WithName("b"))
	require.NoError(t, err)

	require.NoError(t, r.Register(b))
	require.NoError(t, r.Register(a))
	require.ErrorIs(t, r.Register(a), ErrDuplicateCache)
	if diff := cmp.Diff([]string{"a", "b"}, r.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}

	got, ok := r.Get("a")
	require.True(t, ok)
	require.Same(t, a, got)

	for i := 0; i < 5; i++ {
		_, _ = a.Call(i)
		_, _ = b.Call(i)
	}
	require.Equal(t, 10, r.Len())

	require.NoError(t, r.Resize(map[string]int{"a": 2}))
	require.Equal(t, 2, a.Len())

	r.ClearAll()
	require.Equal(t, 0, r.Len())

	require.True(t, r.Unregister("b"))
	require.False(t, r.Unregister("b"))
	_, ok = r.Get("b")
	require.False(t, ok)
}

func TestRegistry_ResizeErrors(t *testing.T) {
	r := NewRegistry(nil)
	var n atomic.Int64
	a, err := New(identity(&n), simplecache.WithName("a"))
	require.NoError(t, err)
	require.NoError(t, r.Register(a))

	err = r.Resize(map[string]int{"a": -1, "missing": 3, "other": 1})
	require.Error(t, err)
	merr, ok := err.(*multierror.Error)
	require.True(t, ok)
	require.Len(t, merr.Errors, 3)
	require.ErrorIs(t, merr.Errors[0], simplecache.ErrInvalidMaxSize)
	require.ErrorIs(t, merr.Errors[1], ErrUnknownCache)
	require.ErrorIs(t, err, ErrUnknownCache)

	// failures do not stop the valid entries
	require.NoError(t, r.Resize(map[string]int{"a": 4}))
	size, bounded := a.MaxSize()
	require.Equal(t, 4, size)
	require.True(t, bounded)
}
