// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package metrics

// nopCacheMetrics is a no-op implementation of CacheMetrics.
type nopCacheMetrics struct{}

func (nopCacheMetrics) Hit(string)           {}
func (nopCacheMetrics) Miss(string)          {}
func (nopCacheMetrics) Eviction(string)      {}
func (nopCacheMetrics) Clear(string, string) {}
func (nopCacheMetrics) Size(string, int)     {}

// Nop returns a CacheMetrics that discards every event.
func Nop() CacheMetrics { return nopCacheMetrics{} }

var _ CacheMetrics = nopCacheMetrics{}
