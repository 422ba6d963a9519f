// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplecache

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, a Args, typed bool) Key {
	t.Helper()
	k, err := MakeKey(a, typed)
	require.NoError(t, err)
	return k
}

func pos(args ...any) Args { return Args{Positional: args} }

func TestMakeKey_FastPath(t *testing.T) {
	k := mustKey(t, pos(5), false)
	require.Nil(t, k.parts)
	require.Equal(t, int64(5), k.fast)

	k = mustKey(t, pos("abc"), false)
	require.Nil(t, k.parts)
	require.Equal(t, "abc", k.fast)

	// not a fast type
	k = mustKey(t, pos(struct{ A int }{1}), false)
	require.Len(t, k.parts, 1)

	// typed keys never take the fast path
	k = mustKey(t, pos(5), true)
	require.NotNil(t, k.parts)
}

func TestMakeKey_UntypedNumbersShareKey(t *testing.T) {
	base := mustKey(t, pos(1), false)
	for _, v := range []any{int8(1), int16(1), int32(1), int64(1), uint(1), uint8(1), uint32(1), uint64(1), float32(1), 1.0} {
		k := mustKey(t, pos(v), false)
		require.True(t, base.Equal(k), "%T should share a key with int", v)
		require.Equal(t, base.Hash(), k.Hash())
	}

	require.False(t, base.Equal(mustKey(t, pos(1.5), false)))
	require.False(t, base.Equal(mustKey(t, pos("1"), false)))

	big := mustKey(t, pos(uint64(math.MaxUint64)), false)
	require.Equal(t, uint64(math.MaxUint64), big.fast)
}

func TestMakeKey_Typed(t *testing.T) {
	i := mustKey(t, pos(1), true)
	f := mustKey(t, pos(1.0), true)
	require.False(t, i.Equal(f))

	i2 := mustKey(t, pos(1), true)
	require.True(t, i.Equal(i2))

	ki := mustKey(t, Args{Keyword: []Kwarg{Kw("n", 1)}}, true)
	kf := mustKey(t, Args{Keyword: []Kwarg{Kw("n", 1.0)}}, true)
	require.False(t, ki.Equal(kf))
}

func TestMakeKey_Keywords(t *testing.T) {
	xy := mustKey(t, Args{Keyword: []Kwarg{Kw("x", 1), Kw("y", 2)}}, false)
	yx := mustKey(t, Args{Keyword: []Kwarg{Kw("y", 2), Kw("x", 1)}}, false)
	require.False(t, xy.Equal(yx), "keyword order is part of the key")

	xy2 := mustKey(t, Args{Keyword: []Kwarg{Kw("x", 1), Kw("y", 2)}}, false)
	require.True(t, xy.Equal(xy2))

	// the marker keeps keywords apart from positional values
	kw := mustKey(t, Args{Positional: []any{1}, Keyword: []Kwarg{Kw("x", 2)}}, false)
	flat := mustKey(t, pos(1, "x", 2), false)
	require.False(t, kw.Equal(flat))
}

func TestMakeKey_NoArgs(t *testing.T) {
	a := mustKey(t, Args{}, false)
	b := mustKey(t, Args{}, false)
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(mustKey(t, pos(0), false)))
	require.Equal(t, "()", a.String())
}

func TestMakeKey_Unhashable(t *testing.T) {
	_, err := MakeKey(pos(1, []int{1, 2}), false)
	require.ErrorIs(t, err, ErrUnhashable)
	var kerr *KeyError
	require.True(t, errors.As(err, &kerr))
	require.Equal(t, 1, kerr.Index)

	_, err = MakeKey(Args{Keyword: []Kwarg{Kw("m", map[string]int{})}}, false)
	require.True(t, errors.As(err, &kerr))
	require.Equal(t, "m", kerr.Name)
	require.Contains(t, err.Error(), `"m"`)

	type holder struct{ v any }
	_, err = MakeKey(pos(holder{v: []byte("x")}), true)
	require.ErrorIs(t, err, ErrUnhashable)

	_, err = MakeKey(pos(holder{v: "x"}), true)
	require.NoError(t, err)
}

func TestMakeKey_Nil(t *testing.T) {
	a := mustKey(t, pos(nil), false)
	b := mustKey(t, pos(nil), false)
	require.True(t, a.Equal(b))
}

func TestKey_String(t *testing.T) {
	require.Equal(t, "7", mustKey(t, pos(7), false).String())
	k := mustKey(t, Args{Positional: []any{1.5}, Keyword: []Kwarg{Kw("x", "y")}}, false)
	require.Equal(t, "(1.5, |, x, y)", k.String())
}

func TestArgs_Lookup(t *testing.T) {
	a := Args{Keyword: []Kwarg{Kw("x", 1)}}
	v, ok := a.Lookup("x")
	require.True(t, ok)
	require.Equal(t, 1, v)
	_, ok = a.Lookup("y")
	require.False(t, ok)
}
