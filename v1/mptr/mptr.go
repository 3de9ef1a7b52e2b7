// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package mptr implements bulk-owned storage for compiler data
// structures: large collections of objects that live and die together,
// like the nodes of an abstract syntax tree.
//
// A Container owns objects homogeneous under a common base type and
// drops them in bulk. A Heap owns arbitrary objects, containers and
// nested heaps; a Root is a Heap with a designated top pointer.
// Individual references between owned objects are unowning Ptr
// handles, valid exactly as long as the owning container is alive.
package mptr

import (
	"github.com/synbin/synbin/v1/util"
)

// pageSize is the number of object slots per container page.
const pageSize = 256

// Ptr is an unowning handle to an object owned by some container or
// heap. The zero Ptr is null.
type Ptr[T any] struct {
	value T
	ok    bool
}

// Null returns the null handle.
func Null[T any]() Ptr[T] {
	return Ptr[T]{}
}

// MakePtr wraps a value into a handle. Calls of this function are
// easier to find than an exported constructor field would be; the
// caller asserts that the value is owned by a live container.
func MakePtr[T any](v T) Ptr[T] {
	return Ptr[T]{value: v, ok: true}
}

// Get returns the wrapped value, or the zero value for a null handle.
func (p Ptr[T]) Get() T {
	return p.value
}

// IsNull reports whether the handle is null.
func (p Ptr[T]) IsNull() bool {
	return !p.ok
}

// Disposer is implemented by owned objects that release resources when
// their container is dropped.
type Disposer interface {
	Dispose()
}

// Container owns objects assignable to the base type T, stored in
// fixed-size pages. A container is move-only with respect to heaps:
// once added to a Heap it cannot be added again.
type Container[T any] struct {
	pages   [][]T
	inHeap  bool
	dropped bool
}

// NewContainer creates an empty container.
func NewContainer[T any]() *Container[T] {
	return &Container[T]{}
}

// Add appends the object to the container and returns a handle to it.
func (c *Container[T]) Add(obj T) Ptr[T] {
	if c.dropped {
		panic(util.Invariantf("mptr: add to a dropped container"))
	}

	n := len(c.pages)
	if n == 0 || len(c.pages[n-1]) >= pageSize {
		c.pages = append(c.pages, make([]T, 0, pageSize))
		n++
	}
	c.pages[n-1] = append(c.pages[n-1], obj)

	return MakePtr(obj)
}

// ForEach calls f for every owned object in insertion order.
func (c *Container[T]) ForEach(f func(T)) {
	for _, page := range c.pages {
		for _, obj := range page {
			f(obj)
		}
	}
}

// Len returns the number of owned objects.
func (c *Container[T]) Len() int {
	n := len(c.pages)
	if n == 0 {
		return 0
	}
	return (n-1)*pageSize + len(c.pages[n-1])
}

// Drop disposes every owned object in insertion order and releases the
// pages. Disposal continues past panics; the first panic value is
// re-raised after the sweep.
func (c *Container[T]) Drop() {
	if c.dropped {
		return
	}
	c.dropped = true

	var firstPanic any
	for _, page := range c.pages {
		for _, obj := range page {
			if d, ok := any(obj).(Disposer); ok {
				if p := safeDispose(d); p != nil && firstPanic == nil {
					firstPanic = p
				}
			}
		}
	}
	c.pages = nil

	if firstPanic != nil {
		panic(firstPanic)
	}
}

func safeDispose(d Disposer) (panicked any) {
	defer func() {
		panicked = recover()
	}()
	d.Dispose()
	return nil
}

// entry is a type-erased owned object: only its destroyer remains.
type entry struct {
	destroy func()
}

// Heap owns a collection of arbitrary objects, containers and nested
// heaps. Dropping the heap runs every destroyer in insertion order.
type Heap struct {
	entries []entry
	dropped bool
}

// NewHeap creates an empty heap.
func NewHeap() *Heap {
	return &Heap{}
}

// AddObject transfers ownership of obj to the heap and returns a
// handle to it.
func AddObject[T any](h *Heap, obj T) Ptr[T] {
	if h.dropped {
		panic(util.Invariantf("mptr: add to a dropped heap"))
	}
	h.entries = append(h.entries, entry{destroy: func() {
		if d, ok := any(obj).(Disposer); ok {
			d.Dispose()
		}
	}})
	return MakePtr(obj)
}

// AddContainer transfers ownership of the container to the heap.
func AddContainer[T any](h *Heap, c *Container[T]) Ptr[*Container[T]] {
	if h.dropped {
		panic(util.Invariantf("mptr: add to a dropped heap"))
	}
	if c.inHeap {
		panic(util.Invariantf("mptr: container is already owned by a heap"))
	}
	c.inHeap = true
	h.entries = append(h.entries, entry{destroy: c.Drop})
	return MakePtr(c)
}

// NewContainerIn creates a container owned by the heap.
func NewContainerIn[T any](h *Heap) Ptr[*Container[T]] {
	return AddContainer(h, NewContainer[T]())
}

// AddHeap transfers ownership of a nested heap.
func (h *Heap) AddHeap(child *Heap) Ptr[*Heap] {
	if h.dropped {
		panic(util.Invariantf("mptr: add to a dropped heap"))
	}
	h.entries = append(h.entries, entry{destroy: child.Drop})
	return MakePtr(child)
}

// Drop runs every destroyer in insertion order. Destruction continues
// past panics; the first panic value is re-raised after the sweep.
func (h *Heap) Drop() {
	if h.dropped {
		return
	}
	h.dropped = true

	var firstPanic any
	for i := range h.entries {
		if p := safeDestroy(h.entries[i].destroy); p != nil && firstPanic == nil {
			firstPanic = p
		}
	}
	h.entries = nil

	if firstPanic != nil {
		panic(firstPanic)
	}
}

func safeDestroy(destroy func()) (panicked any) {
	defer func() {
		panicked = recover()
	}()
	destroy()
	return nil
}

// Root is a heap holding an additional handle to a designated root
// object, typically the top node of a syntax tree whose nodes the heap
// owns.
type Root[S any] struct {
	Heap
	value Ptr[S]
}

// NewRoot creates a root around the given handle.
func NewRoot[S any](value Ptr[S]) *Root[S] {
	return &Root[S]{value: value}
}

// Ptr returns the designated root handle.
func (r *Root[S]) Ptr() Ptr[S] {
	return r.value
}

// Get returns the designated root object.
func (r *Root[S]) Get() S {
	return r.value.Get()
}
