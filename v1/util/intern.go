// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package util holds the small shared utilities of the module: string
// interning for grammar names and the write-once cell used by the IR
// extension records.
package util

import "unique"

// StringHandle is an interned string handle. Handles of equal strings
// compare equal, making name comparison a single word compare.
type StringHandle = unique.Handle[string]

// Intern interns a string.
func Intern(s string) StringHandle {
	return unique.Make(s)
}

// EmptyHandle returns the zero handle, used for absent names.
func EmptyHandle() StringHandle {
	return StringHandle{}
}

// HandleString retrieves the value from a handle. The zero handle
// yields an empty string.
func HandleString(h StringHandle) string {
	if h == (StringHandle{}) {
		return ""
	}
	return h.Value()
}
