// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package platform defines the capability interfaces the runtime core
// depends on (time, filesystem, sockets) together with their default
// implementations over the Go standard library.
//
// The core packages accept these interfaces instead of reaching for the
// OS directly, so tests can substitute deterministic implementations.
package platform

import (
	"time"
)

// Tick is a monotonic tick value. The unit is milliseconds; only
// differences between ticks are meaningful.
type Tick uint64

// GCSyncInterval is the interval, in ticks, between two safepoint
// checks taken by a mutator thread.
const GCSyncInterval Tick = 2

// DateTime is a broken-down local time.
type DateTime struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// Clock provides the time capabilities used by the runtime.
type Clock interface {
	// TickCount returns the current monotonic tick count. Used to
	// measure time intervals for GC synchronization.
	TickCount() Tick

	// TimeMillis returns the current wall-clock time in milliseconds.
	TimeMillis() int64

	// CurrentTime returns the current broken-down local time.
	CurrentTime() DateTime
}

type systemClock struct {
	start time.Time
}

// SystemClock is the default Clock backed by the process monotonic
// clock and the system wall clock.
var SystemClock Clock = &systemClock{start: time.Now()}

func (c *systemClock) TickCount() Tick {
	return Tick(time.Since(c.start) / time.Millisecond)
}

func (c *systemClock) TimeMillis() int64 {
	return time.Now().UnixMilli()
}

func (c *systemClock) CurrentTime() DateTime {
	now := time.Now()
	return DateTime{
		Year:   now.Year(),
		Month:  int(now.Month()),
		Day:    now.Day(),
		Hour:   now.Hour(),
		Minute: now.Minute(),
		Second: now.Second(),
	}
}
