// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package gc

// AllocObserver receives paired notifications for every managed
// allocation and deletion. A single observer may be installed at
// startup; it is purely observational and must not call back into the
// collector.
type AllocObserver interface {
	MemoryAllocated(size uintptr)
	MemoryDeleted(size uintptr)
}
