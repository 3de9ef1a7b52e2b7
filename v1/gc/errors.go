// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package gc

import (
	"errors"
	"fmt"
)

// Error codes returned by the collector.
const (
	// OutOfMemoryErr indicates that an allocation could not be
	// satisfied even after a collection cycle.
	OutOfMemoryErr = "gc_out_of_memory_error"

	// InternalErr indicates an unexpected internal condition.
	InternalErr = "gc_internal_error"
)

// Error is the error type returned by the GC public surface.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return fmt.Sprintf("%v: %v", e.Code, e.Message)
}

// IsOutOfMemory returns true if the error indicates heap exhaustion.
func IsOutOfMemory(err error) bool {
	var gerr *Error
	return errors.As(err, &gerr) && gerr.Code == OutOfMemoryErr
}

func outOfMemory(format string, a ...any) *Error {
	return &Error{Code: OutOfMemoryErr, Message: fmt.Sprintf(format, a...)}
}
