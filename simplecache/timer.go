// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: MPL-2.0

package simplecache

import (
	"time"

	clocks "github.com/vimeo/go-clocks"
)

// timer tracks when a periodically cleared container is next due.
type timer struct {
	clock      clocks.Clock
	lifetime   time.Duration
	expiration time.Time
	stopped    bool
}

func newTimer(clock clocks.Clock, lifetime time.Duration) timer {
	t := timer{clock: clock, lifetime: lifetime}
	t.reset()
	return t
}

// expired reports whether the lifetime has elapsed since the last reset.
func (t *timer) expired() bool {
	return !t.stopped && t.lifetime > 0 && !t.clock.Now().Before(t.expiration)
}

// reset schedules the next expiration one lifetime from now.
func (t *timer) reset() {
	if t.lifetime > 0 {
		t.expiration = t.clock.Now().Add(t.lifetime)
	}
}

func (t *timer) setLifetime(d time.Duration) {
	t.lifetime = d
	t.reset()
}

func (t *timer) remaining() time.Duration {
	if t.lifetime <= 0 {
		return 0
	}
	return t.expiration.Sub(t.clock.Now())
}
