// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package gc

import (
	"math/bits"

	"github.com/synbin/synbin/v1/util"
)

// Header word layout: the two high bits hold the reachable and mock
// flags, the rest holds the logical object size.
const (
	sizeBits               = bits.UintSize
	reachableFlag  uintptr = 1 << (sizeBits - 1)
	mockFlag       uintptr = 1 << (sizeBits - 2)
	sizeMask               = mockFlag - 1
	wordSize       uintptr = bits.UintSize / 8
)

// MaxSize is the largest logical object size accepted by Create.
const MaxSize uintptr = sizeMask

// physicalBlockSize returns the heap charge for an object of the given
// logical size: the size plus three words of bookkeeping, rounded up
// to the word size.
func physicalBlockSize(logical uintptr) uintptr {
	const mask = wordSize - 1
	return (logical + wordSize*3 + mask) &^ mask
}

// Object is the interface of every managed value. Concrete managed
// types embed Header, which supplies the header access and a default
// empty EnumerateRefs; types holding references override
// EnumerateRefs to report every Ref slot exactly once.
type Object interface {
	header() *Header

	// EnumerateRefs calls v.Visit once for every in-object reference,
	// in a fixed order. The collector uses it to trace the object
	// graph; finish uses it to validate the registered references.
	EnumerateRefs(v *RefVisitor)
}

// Disposer is implemented by managed types that need to release
// non-managed resources when the collector deletes them.
type Disposer interface {
	Dispose()
}

// Header is the managed object header: one word of size and flags plus
// the links threading the object into exactly one object list at any
// time. It must be embedded as the first field of a managed type.
type Header struct {
	sizeAndFlags uintptr
	links        dlinks[Header]

	// self is the managed object owning this header. Set by finish;
	// nil for mock list sentinels.
	self Object
}

func (h *Header) header() *Header { return h }

// EnumerateRefs is the default implementation for managed types
// without references.
func (h *Header) EnumerateRefs(*RefVisitor) {}

// newMockHead returns a list sentinel. A mock carries only the links;
// it has no payload and takes part in no rooting or reference
// protocol.
func newMockHead() *Header {
	h := &Header{sizeAndFlags: mockFlag}
	objectList.init(h)
	return h
}

func (h *Header) isMock() bool {
	return h.sizeAndFlags&mockFlag != 0
}

func (h *Header) size() uintptr {
	return h.sizeAndFlags & sizeMask
}

// manage writes the header of a freshly created object: its size and
// the current value of the reachable flag.
func (h *Header) manage(size uintptr, flag uintptr, self Object) {
	if h.isMock() {
		panic(util.Invariantf("gc: mock object cannot be managed"))
	}
	if size > MaxSize {
		panic(util.Invariantf("gc: object size out of range"))
	}
	h.sizeAndFlags = flag | (size & sizeMask)
	h.self = self
}

// listAddTo links the object into the list headed by head. The object
// is not removed from its old list; the caller must take care of that.
func (h *Header) listAddTo(head *Header) {
	if !head.isMock() || h.isMock() {
		panic(util.Invariantf("gc: bad list linkage"))
	}
	objectList.add(head, h)
}

func (h *Header) listRemoveFrom() {
	if h.isMock() {
		panic(util.Invariantf("gc: cannot unlink a mock head"))
	}
	objectList.remove(h)
}
