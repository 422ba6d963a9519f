// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package timedcache

import "errors"

var (
	// ErrDuplicateCache is returned when registering a second cache under a taken name.
	ErrDuplicateCache = errors.New("cache already registered")
	// ErrUnknownCache is returned when resizing a name nothing is registered under.
	ErrUnknownCache = errors.New("no cache registered")
	// ErrNilOwner is returned when a method is called without an owner.
	ErrNilOwner = errors.New("method called without an owner")
)
