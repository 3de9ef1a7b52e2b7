// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package gc

import (
	"math/bits"
	"testing"
)

func listElems(head *Header) []*Header {
	var elems []*Header
	for h := head.links.next; h != head; h = h.links.next {
		elems = append(elems, h)
	}
	return elems
}

func checkLinks(t *testing.T, head *Header) {
	t.Helper()
	for h := head; ; {
		next := h.links.next
		if next.links.prev != h {
			t.Fatalf("broken links around %p", h)
		}
		h = next
		if h == head {
			return
		}
	}
}

func TestListAddRemove(t *testing.T) {
	head := newMockHead()
	if !objectList.isEmpty(head) {
		t.Fatal("new list must be empty")
	}

	a, b, c := &Header{}, &Header{}, &Header{}
	objectList.add(head, a)
	objectList.add(head, b)
	objectList.add(head, c)
	checkLinks(t, head)

	if got := listElems(head); len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("unexpected order after add: %v", got)
	}

	objectList.remove(b)
	checkLinks(t, head)
	if got := listElems(head); len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("unexpected content after remove: %v", got)
	}

	objectList.remove(a)
	objectList.remove(c)
	if !objectList.isEmpty(head) {
		t.Fatal("list must be empty after removing everything")
	}
}

func TestListMoveReplace(t *testing.T) {
	src := newMockHead()
	dst := newMockHead()

	a, b := &Header{}, &Header{}
	objectList.add(src, a)
	objectList.add(src, b)
	objectList.add(dst, &Header{}) // discarded by moveReplace

	objectList.moveReplace(src, dst)
	checkLinks(t, dst)

	if !objectList.isEmpty(src) {
		t.Fatal("source must be empty after moveReplace")
	}
	if got := listElems(dst); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("unexpected destination content: %v", got)
	}

	// Replacing with an empty source clears the destination.
	empty := newMockHead()
	objectList.moveReplace(empty, dst)
	if !objectList.isEmpty(dst) {
		t.Fatal("destination must be empty after replacing with an empty list")
	}
}

func TestListMoveAdd(t *testing.T) {
	src := newMockHead()
	dst := newMockHead()

	a, b, c := &Header{}, &Header{}, &Header{}
	objectList.add(dst, a)
	objectList.add(src, b)
	objectList.add(src, c)

	objectList.moveAdd(src, dst)
	checkLinks(t, dst)

	if !objectList.isEmpty(src) {
		t.Fatal("source must be empty after moveAdd")
	}
	if got := listElems(dst); len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("unexpected concatenation order: %v", got)
	}

	// Adding an empty source is a no-op.
	empty := newMockHead()
	objectList.moveAdd(empty, dst)
	if got := listElems(dst); len(got) != 3 {
		t.Fatalf("moveAdd of empty list changed the destination: %v", got)
	}
}

func TestHeaderFlags(t *testing.T) {
	head := newMockHead()
	if !head.isMock() {
		t.Fatal("sentinel must be a mock")
	}
	if head.size() != 0 {
		t.Fatal("mock size must read as zero")
	}

	h := &Header{}
	h.manage(123, reachableFlag, nil)
	if h.isMock() {
		t.Fatal("managed object must not be a mock")
	}
	if h.size() != 123 {
		t.Fatalf("unexpected size %d", h.size())
	}
	if h.sizeAndFlags&reachableFlag == 0 {
		t.Fatal("reachable flag not written")
	}
}

func TestPhysicalBlockSize(t *testing.T) {
	if bits.UintSize != 64 {
		t.Skip("expectations assume a 64-bit word")
	}

	tests := []struct {
		logical  uintptr
		physical uintptr
	}{
		{0, 24},
		{1, 32},
		{8, 32},
		{9, 40},
		{64, 88},
	}
	for _, tc := range tests {
		if got := physicalBlockSize(tc.logical); got != tc.physical {
			t.Fatalf("physicalBlockSize(%d) = %d, expected %d", tc.logical, got, tc.physical)
		}
	}
}
