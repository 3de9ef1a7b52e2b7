// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package gc

import (
	"github.com/synbin/synbin/v1/util"
)

// rootElem is an element of a thread's roots list: the held object
// plus the intrusive links.
type rootElem struct {
	links  dlinks[rootElem]
	object Object
}

// Root is a stack-scoped strong reference to a managed object, forming
// a root of the traced graph. Roots of a thread must be released in
// LIFO order.
type Root[T Object] struct {
	thread   *Thread
	elem     rootElem
	released bool
}

// NewRoot registers a root holding obj on the thread's roots list.
func NewRoot[T Object](t *Thread, obj T) *Root[T] {
	t.assertLive()

	r := &Root[T]{thread: t}
	r.elem.object = checkedObject(obj)
	rootList.add(t.roots, &r.elem)
	return r
}

// Get returns the held object.
func (r *Root[T]) Get() T {
	r.thread.assertLive()
	r.assertHeld()
	if r.elem.object == nil {
		var zero T
		return zero
	}
	return r.elem.object.(T)
}

// Set replaces the held object.
func (r *Root[T]) Set(obj T) {
	r.thread.assertLive()
	r.assertHeld()
	r.elem.object = checkedObject(obj)
}

// Clear drops the held object while keeping the root registered.
func (r *Root[T]) Clear() {
	r.thread.assertLive()
	r.assertHeld()
	r.elem.object = nil
}

// Release unlinks the root. Roots must be released in the reverse
// order of their registration.
func (r *Root[T]) Release() {
	r.thread.assertLive()
	r.assertHeld()
	if r.thread.roots.links.prev != &r.elem {
		panic(util.Invariantf("gc: roots must be released in LIFO order"))
	}
	rootList.remove(&r.elem)
	r.released = true
}

func (r *Root[T]) assertHeld() {
	if r.released {
		panic(util.Invariantf("gc: root already released"))
	}
}

// refState is the raw slot behind a Ref: null or a managed object.
type refState struct {
	object Object
}

// AnyRef is the type-erased view of a Ref passed to RefVisitor.Visit.
type AnyRef interface {
	refState() *refState
}

// Ref is an in-object reference slot. It may only be initialized
// during the construction of its owning object (InitRef); once the
// object is live, Set and Get require an enabled thread outside of
// construction.
type Ref[T Object] struct {
	state refState
}

func (r *Ref[T]) refState() *refState {
	return &r.state
}

// InitRef registers the reference slot with the thread constructing
// the current object. The slot starts out null.
func InitRef[T Object](t *Thread, r *Ref[T]) {
	t.assertManaged()
	if !t.enabled {
		panic(util.Invariantf("gc: thread %q is not enabled", t.name))
	}
	if !t.creating {
		panic(util.Invariantf("gc: references may only be initialized during construction"))
	}

	r.state.object = nil
	t.refsOfNewObject = append(t.refsOfNewObject, &r.state)
}

// Get returns the referenced object, or the zero value if the slot is
// null.
func (r *Ref[T]) Get(t *Thread) T {
	t.assertLive()
	if r.state.object == nil {
		var zero T
		return zero
	}
	return r.state.object.(T)
}

// Set points the slot at obj.
func (r *Ref[T]) Set(t *Thread, obj T) {
	t.assertLive()
	r.state.object = checkedObject(obj)
}

// Clear nulls the slot.
func (r *Ref[T]) Clear(t *Thread) {
	t.assertLive()
	r.state.object = nil
}

// RefVisitor is passed to EnumerateRefs. During a collection cycle it
// marks the referenced objects; during finalization it validates the
// enumeration against the references registered at construction.
type RefVisitor struct {
	// check is the thread validating a just-created object, or nil
	// while the collector is tracing.
	check *Thread
}

// Visit reports one reference slot of the enumerated object.
func (v *RefVisitor) Visit(r AnyRef) {
	if v.check != nil {
		v.check.checkReference(r.refState())
		return
	}
	global.collectReference(r.refState().object)
}

// checkedObject validates a user-supplied object before storing it in
// a root or reference slot.
func checkedObject(obj Object) Object {
	if obj == nil {
		return nil
	}
	if obj.header().isMock() {
		panic(util.Invariantf("gc: mock object used as a value"))
	}
	return obj
}
