// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplecache

import (
	"fmt"
	"hash/maphash"
	"math"
	"reflect"
	"strings"
)

// Kwarg is a named argument. Keyword arguments keep the order they were given in.
type Kwarg struct {
	Name  string
	Value any
}

// Kw is shorthand for building a Kwarg.
func Kw(name string, value any) Kwarg {
	return Kwarg{Name: name, Value: value}
}

// Args are the arguments of one call to a cached computation.
type Args struct {
	Positional []any
	Keyword    []Kwarg
}

// Lookup returns the value of the keyword argument name.
func (a Args) Lookup(name string) (any, bool) {
	for _, kw := range a.Keyword {
		if kw.Name == name {
			return kw.Value, true
		}
	}
	return nil, false
}

// kwdMarker separates positional from keyword values in a composite key.
// Its type is unexported so no caller value can ever equal it.
type kwdMarker struct{}

var (
	kwdMark = kwdMarker{}
	seed    = maphash.MakeSeed()
)

// Key identifies a call. Its hash is computed once when the key is built.
type Key struct {
	hash  uint64
	fast  any
	parts []any
}

// MakeKey builds the key for a call.
//
// f(x=1, y=2) and f(y=2, x=1) produce different keys since keyword order is
// kept. When typed is false numeric values are compared by value, so f(1) and
// f(1.0) share a key. When typed is true the type of every argument is part
// of the key.
func MakeKey(a Args, typed bool) (Key, error) {
	for i, v := range a.Positional {
		if !hashable(v) {
			return Key{}, &KeyError{Index: i, Type: reflect.TypeOf(v)}
		}
	}
	for _, kw := range a.Keyword {
		if !hashable(kw.Value) {
			return Key{}, &KeyError{Index: -1, Name: kw.Name, Type: reflect.TypeOf(kw.Value)}
		}
	}

	if !typed && len(a.Keyword) == 0 && len(a.Positional) == 1 {
		if v := normalize(a.Positional[0]); isFast(v) {
			var h maphash.Hash
			h.SetSeed(seed)
			maphash.WriteComparable(&h, v)
			return Key{hash: h.Sum64(), fast: v}, nil
		}
	}

	n := len(a.Positional)
	if len(a.Keyword) > 0 {
		n += 1 + 2*len(a.Keyword)
	}
	if typed {
		n += len(a.Positional) + len(a.Keyword)
	}
	parts := make([]any, 0, n)

	for _, v := range a.Positional {
		if !typed {
			v = normalize(v)
		}
		parts = append(parts, v)
	}
	if len(a.Keyword) > 0 {
		parts = append(parts, kwdMark)
		for _, kw := range a.Keyword {
			v := kw.Value
			if !typed {
				v = normalize(v)
			}
			parts = append(parts, kw.Name, v)
		}
	}
	if typed {
		for _, v := range a.Positional {
			parts = append(parts, reflect.TypeOf(v))
		}
		for _, kw := range a.Keyword {
			parts = append(parts, reflect.TypeOf(kw.Value))
		}
	}

	var h maphash.Hash
	h.SetSeed(seed)
	maphash.WriteComparable(&h, len(parts))
	for _, p := range parts {
		maphash.WriteComparable(&h, p)
	}
	return Key{hash: h.Sum64(), parts: parts}, nil
}

// Hash returns the hash computed when the key was built.
func (k Key) Hash() uint64 { return k.hash }

// Equal reports whether k and o identify the same call.
func (k Key) Equal(o Key) bool {
	if k.hash != o.hash {
		return false
	}
	if k.parts == nil || o.parts == nil {
		return k.parts == nil && o.parts == nil && k.fast == o.fast
	}
	if len(k.parts) != len(o.parts) {
		return false
	}
	for i := range k.parts {
		if k.parts[i] != o.parts[i] {
			return false
		}
	}
	return true
}

func (k Key) String() string {
	if k.parts == nil {
		return fmt.Sprintf("%v", k.fast)
	}
	var sb strings.Builder
	sb.WriteByte('(')
	for i, p := range k.parts {
		if i > 0 {
			sb.WriteString(", ")
		}
		if p == kwdMark {
			sb.WriteString("|")
			continue
		}
		fmt.Fprintf(&sb, "%v", p)
	}
	sb.WriteByte(')')
	return sb.String()
}

func hashable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).Comparable()
}

func isFast(v any) bool {
	switch v.(type) {
	case int64, uint64, string:
		return true
	}
	return false
}

// normalize folds the numeric kinds onto int64 where the value allows it.
// Values above math.MaxInt64 stay uint64 and non-integral floats stay float64.
func normalize(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case int64:
		return x
	case uint:
		return normalizeUint(uint64(x))
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case uint64:
		return normalizeUint(x)
	case float32:
		return normalizeFloat(float64(x))
	case float64:
		return normalizeFloat(x)
	}
	return v
}

func normalizeUint(x uint64) any {
	if x <= math.MaxInt64 {
		return int64(x)
	}
	return x
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && f >= math.MinInt64 && f < math.MaxInt64 {
		return int64(f)
	}
	return f
}
