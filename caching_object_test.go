// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCachingObject(t *testing.T) {
	var o CachingObject
	require.True(t, o.CachingEnabled())
	o.DisableCaching()
	require.False(t, o.CachingEnabled())
	o.EnableCaching()
	require.True(t, o.CachingEnabled())

	var _ Owner = &o
}
