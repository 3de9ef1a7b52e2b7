// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package gc

// Intrusive circular doubly-linked lists. Every object collection of
// the collector (per-thread local list, global managed list, reachable
// scratch list, roots list, thread registry) is such a list headed by
// a sentinel element. All operations are O(1) and none of them touch
// the links of a removed element.

// dlinks is the link pair embedded into a list element.
type dlinks[T any] struct {
	prev *T
	next *T
}

// dlist manipulates intrusive lists of *T. link resolves an element to
// its embedded link pair.
type dlist[T any] struct {
	link func(*T) *dlinks[T]
}

// init points the element's links at itself, forming an empty list
// when the element is a head.
func (l dlist[T]) init(e *T) {
	lk := l.link(e)
	lk.prev = e
	lk.next = e
}

// clear empties the list by pointing the head's links at itself.
func (l dlist[T]) clear(head *T) {
	l.init(head)
}

// add splices e before head, i.e. at the tail of the list.
func (l dlist[T]) add(head, e *T) {
	hl := l.link(head)
	el := l.link(e)
	prev := hl.prev

	el.next = head
	el.prev = prev
	l.link(prev).next = e
	hl.prev = e
}

// remove unlinks e. Only the links of the neighbours are modified.
func (l dlist[T]) remove(e *T) {
	el := l.link(e)
	l.link(el.prev).next = el.next
	l.link(el.next).prev = el.prev
}

// isEmpty reports whether the list headed by head has no elements.
func (l dlist[T]) isEmpty(head *T) bool {
	return l.link(head).next == head
}

// moveReplace transfers the whole chain of src to dst, discarding any
// previous content of dst. src becomes empty.
func (l dlist[T]) moveReplace(src, dst *T) {
	if l.isEmpty(src) {
		l.clear(dst)
		return
	}

	sl := l.link(src)
	first := sl.next
	last := sl.prev

	dl := l.link(dst)
	dl.next = first
	dl.prev = last
	l.link(first).prev = dst
	l.link(last).next = dst

	l.clear(src)
}

// moveAdd concatenates the chain of src to the tail of dst. src
// becomes empty.
func (l dlist[T]) moveAdd(src, dst *T) {
	if l.isEmpty(src) {
		return
	}

	sl := l.link(src)
	srcFirst := sl.next
	srcLast := sl.prev
	dstLast := l.link(dst).prev

	l.link(dstLast).next = srcFirst
	l.link(srcFirst).prev = dstLast
	l.link(dst).prev = srcLast
	l.link(srcLast).next = dst

	l.clear(src)
}

var (
	objectList = dlist[Header]{link: func(h *Header) *dlinks[Header] { return &h.links }}
	rootList   = dlist[rootElem]{link: func(e *rootElem) *dlinks[rootElem] { return &e.links }}
	threadList = dlist[Thread]{link: func(t *Thread) *dlinks[Thread] { return &t.links }}
)
