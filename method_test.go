// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/venkatsvpr/golang-timedcache/simplecache"
)

type account struct {
	CachingObject
	rate  int
	calls int
}

func interest(o *account, a Args) (int, error) {
	o.calls++
	return o.rate * a.Positional[0].(int), nil
}

func TestMethod_Collective(t *testing.T) {
	m, err := NewMethod(interest, simplecache.WithMaxSize(16))
	require.NoError(t, err)
	require.True(t, m.Collective())

	a, b := &account{rate: 2}, &account{rate: 3}
	v, err := m.Call(a, 10)
	require.NoError(t, err)
	require.Equal(t, 20, v)
	v, err = m.Call(b, 10)
	require.NoError(t, err)
	require.Equal(t, 30, v)

	_, _ = m.Call(a, 10)
	_, _ = m.Call(b, 10)
	require.Equal(t, 1, a.calls)
	require.Equal(t, 1, b.calls)

	shared, err := m.Cache(a)
	require.NoError(t, err)
	require.Equal(t, 2, shared.Len())
	require.Equal(t, 0, m.Owners())

	// a disabled owner calls through and leaves the other owners' results
	a.DisableCaching()
	_, _ = m.Call(a, 10)
	require.Equal(t, 2, a.calls)
	require.Equal(t, 2, shared.Len())

	m.Release(b)
	require.Equal(t, 0, shared.Len())
}

func TestMethod_PerOwner(t *testing.T) {
	m, err := NewPerOwnerMethod(interest, simplecache.WithMaxSize(4), simplecache.WithLRU())
	require.NoError(t, err)
	require.False(t, m.Collective())

	a, b := &account{rate: 2}, &account{rate: 3}
	for i := 0; i < 3; i++ {
		v, err := m.Call(a, 5)
		require.NoError(t, err)
		require.Equal(t, 10, v)
		v, err = m.CallWith(b, Args{Positional: []any{5}})
		require.NoError(t, err)
		require.Equal(t, 15, v)
	}
	require.Equal(t, 1, a.calls)
	require.Equal(t, 1, b.calls)
	require.Equal(t, 2, m.Owners())

	ca, err := m.Cache(a)
	require.NoError(t, err)
	cb, err := m.Cache(b)
	require.NoError(t, err)
	require.NotSame(t, ca, cb)
	require.Equal(t, 1, ca.Len())

	// the per-owner cache is bound, disabling clears it
	a.DisableCaching()
	_, _ = m.Call(a, 5)
	require.Equal(t, 2, a.calls)
	require.Equal(t, 0, ca.Len())
	require.Equal(t, 1, cb.Len())

	m.Clear()
	require.Equal(t, 0, cb.Len())

	m.Release(a)
	require.Equal(t, 1, m.Owners())
	m.Release(a)
	require.Equal(t, 1, m.Owners())
}

func TestMethod_Errors(t *testing.T) {
	_, err := NewMethod[*account, int](nil)
	require.ErrorIs(t, err, simplecache.ErrNilFunc)
	_, err = NewPerOwnerMethod[*account, int](nil)
	require.ErrorIs(t, err, simplecache.ErrNilFunc)

	_, err = NewPerOwnerMethod(interest, simplecache.WithMaxSize(-1))
	require.ErrorIs(t, err, simplecache.ErrInvalidMaxSize)
	_, err = NewMethod(interest, simplecache.WithMaxSize(-1))
	require.ErrorIs(t, err, simplecache.ErrInvalidMaxSize)

	m, err := NewMethod(interest)
	require.NoError(t, err)
	_, err = m.Call(nil, 1)
	require.ErrorIs(t, err, ErrNilOwner)
}
