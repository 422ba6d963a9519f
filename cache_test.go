// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vimeo/go-clocks/fake"
	"go.uber.org/atomic"

	"github.com/venkatsvpr/golang-timedcache/simplecache"
	"github.com/venkatsvpr/golang-timedcache/testutils"
)

func identity(n *atomic.Int64) simplecache.Func[any] {
	return func(a Args) (any, error) {
		n.Inc()
		return a.Positional[0], nil
	}
}

func BenchmarkCache_Parallel(b *testing.B) {
	var n atomic.Int64
	c, err := NewLRU(identity(&n), 1024)
	if err != nil {
		b.Fatalf("err: %v", err)
	}
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = c.Call(i % 2048)
			i++
		}
	})
	s := c.Stats()
	b.Logf("hit: %d miss: %d ratio: %f", s.Hits, s.Misses, float64(s.Hits)/float64(s.Hits+s.Misses))
}

func TestCache_LRU(t *testing.T) {
	var n atomic.Int64
	c, err := NewLRU(identity(&n), 128)
	require.NoError(t, err)
	testutils.LRUTest(t, c, 128, func() int { return int(n.Load()) })

	c, err = NewLRU(identity(&n), 128)
	require.NoError(t, err)
	testutils.ContainsTest(t, c, 128)

	c, err = NewLRU(identity(&n), 128)
	require.NoError(t, err)
	testutils.PeekTest(t, c, 128)
}

func TestCache_Bounded(t *testing.T) {
	var n atomic.Int64
	c, err := New(identity(&n), simplecache.WithMaxSize(32))
	require.NoError(t, err)
	testutils.BoundedTest(t, c, 32, func() int { return int(n.Load()) })
	require.Equal(t, simplecache.StrategyBounded, c.Strategy())
}

func TestCache_Concurrent(t *testing.T) {
	var n atomic.Int64
	c, err := New(identity(&n))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				v, err := c.Call(i % 10)
				if err != nil || v != i%10 {
					t.Errorf("bad result %v, %v", v, err)
					return
				}
			}
		}()
	}
	wg.Wait()

	// the lock is held across the computation, so each key ran once
	require.EqualValues(t, 10, n.Load())
	require.Equal(t, 10, c.Len())
	s := c.Stats()
	require.EqualValues(t, 1600, s.Hits+s.Misses)
}

func TestCache_NoOpLockerRecursion(t *testing.T) {
	var c *Cache[int]
	fib := func(a Args) (int, error) {
		k := a.Positional[0].(int)
		if k < 2 {
			return k, nil
		}
		x, err := c.Call(k - 1)
		if err != nil {
			return 0, err
		}
		y, err := c.Call(k - 2)
		return x + y, err
	}
	var err error
	c, err = NewWithLocker(NoOpRWLocker{}, fib, simplecache.WithMaxSize(8), simplecache.WithLRU())
	require.NoError(t, err)

	v, err := c.Call(30)
	require.NoError(t, err)
	require.Equal(t, 832040, v)
	require.LessOrEqual(t, c.Len(), 8)
}

func TestCache_Settings(t *testing.T) {
	clock := fake.NewClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	var n atomic.Int64
	c, err := New(identity(&n), simplecache.WithLifetime(time.Second), simplecache.WithClock(clock), simplecache.WithName("settings"))
	require.NoError(t, err)
	require.Equal(t, "settings", c.Name())

	_, _ = c.Call(1)
	clock.Advance(time.Second)
	require.True(t, c.Expired())
	_, _ = c.Call(1)
	require.EqualValues(t, 2, n.Load())

	require.NoError(t, c.SetLifetime(0))
	require.False(t, c.Expired())

	require.NoError(t, c.SetMaxSize(0))
	size, bounded := c.MaxSize()
	require.Equal(t, 0, size)
	require.True(t, bounded)
	require.Equal(t, simplecache.StrategyDisabled, c.Strategy())
	c.RemoveMaxSize()
	require.Equal(t, simplecache.StrategyUnbounded, c.Strategy())
	require.ErrorIs(t, c.SetMaxSize(-1), simplecache.ErrInvalidMaxSize)

	require.NoError(t, c.SetCallMode(simplecache.CallClearing))
	_, _ = c.Call(1)
	_, _ = c.Call(1)
	require.EqualValues(t, 4, n.Load())
	require.Len(t, c.Keys(), 1)

	_, err = New[int](nil)
	require.ErrorIs(t, err, simplecache.ErrNilFunc)
}

func TestCache_Paused(t *testing.T) {
	var n atomic.Int64
	c, err := New(identity(&n))
	require.NoError(t, err)

	_, _ = c.Call(1)
	boom := errors.New("boom")
	err = c.Paused(func() error {
		// fn runs without the lock held
		_, _ = c.Call(1)
		require.Equal(t, 0, c.Len())
		return boom
	})
	require.ErrorIs(t, err, boom)
	_, _ = c.Call(1)
	_, _ = c.Call(1)
	require.EqualValues(t, 3, n.Load())

	require.Equal(t, 1, c.Len())
	c.Pause()
	c.Resume()
	require.Equal(t, 0, c.Len())
}

func TestCache_Owner(t *testing.T) {
	var n atomic.Int64
	c, err := New(identity(&n))
	require.NoError(t, err)

	owner := &CachingObject{}
	c.Bind(owner)
	_, _ = c.Call(1)
	_, _ = c.Call(1)
	require.EqualValues(t, 1, n.Load())

	owner.DisableCaching()
	_, _ = c.Call(1)
	require.EqualValues(t, 2, n.Load())
	require.Equal(t, 0, c.Len())

	c.Unbind()
	_, _ = c.Call(1)
	_, _ = c.Call(1)
	require.EqualValues(t, 3, n.Load())
	c.Clear()
	require.Equal(t, 0, c.Len())
}

func TestCache_Keywords(t *testing.T) {
	c, err := New(func(a Args) (string, error) {
		v, _ := a.Lookup("greeting")
		return v.(string) + " " + a.Positional[0].(string), nil
	})
	require.NoError(t, err)

	v, err := c.CallWith(Args{Positional: []any{"bob"}, Keyword: []Kwarg{Kw("greeting", "hi")}})
	require.NoError(t, err)
	require.Equal(t, "hi bob", v)
	require.Equal(t, 1, c.Len())
	require.False(t, c.Contains("bob"))
}
