// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplecache

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrUnhashable is returned when an argument cannot be used as part of a key.
	ErrUnhashable = errors.New("argument is not hashable")
	// ErrInvalidMaxSize is returned for a negative max size.
	ErrInvalidMaxSize = errors.New("max size must not be negative")
	// ErrInvalidLifetime is returned for a negative lifetime.
	ErrInvalidLifetime = errors.New("lifetime must not be negative")
	// ErrUnknownCallMode is returned for a call mode that is not defined.
	ErrUnknownCallMode = errors.New("unknown call mode")
	// ErrNilFunc is returned when no computation is given.
	ErrNilFunc = errors.New("must provide a function to cache")
)

// KeyError reports an argument that could not be turned into a key.
type KeyError struct {
	// Index is the position of the offending positional argument, or -1 for a keyword.
	Index int
	// Name is the keyword name, empty for positional arguments.
	Name string
	Type reflect.Type
}

func (e *KeyError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("keyword argument %q of type %v: %v", e.Name, e.Type, ErrUnhashable)
	}
	return fmt.Sprintf("argument %d of type %v: %v", e.Index, e.Type, ErrUnhashable)
}

func (e *KeyError) Unwrap() error { return ErrUnhashable }

// ConfigError reports an invalid setting given at construction or through a setter.
type ConfigError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
