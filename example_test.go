// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache_test

import (
	"fmt"
	"strings"
	"time"

	timedcache "github.com/venkatsvpr/golang-timedcache"
	"github.com/venkatsvpr/golang-timedcache/simplecache"
)

func ExampleCache() {
	computed := 0
	upper, err := timedcache.NewLRU(func(a timedcache.Args) (string, error) {
		computed++
		return strings.ToUpper(a.Positional[0].(string)), nil
	}, 2, simplecache.WithLifetime(time.Hour))
	if err != nil {
		panic(err)
	}

	for _, word := range []string{"a", "b", "a", "c", "a"} {
		v, _ := upper.Call(word)
		fmt.Print(v)
	}
	fmt.Println()
	fmt.Printf("computed: %d, stored: %d, b stored: %t\n", computed, upper.Len(), upper.Contains("b"))
	// Output:
	// ABACA
	// computed: 3, stored: 2, b stored: false
}
