// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

package gc

import (
	"github.com/google/uuid"

	"github.com/synbin/synbin/v1/platform"
	"github.com/synbin/synbin/v1/util"
)

// Thread is the per-mutator GC state. A goroutine acting as a mutator
// obtains a Thread from ManageThread and passes it to every GC
// operation; the handle is owned by that goroutine and must not be
// shared.
type Thread struct {
	links dlinks[Thread]

	name    string
	managed bool
	enabled bool

	// creating is true while Create is constructing an object on this
	// thread. Nested allocation is disallowed.
	creating bool

	// roots heads the intrusive list of root handles of this thread.
	roots *rootElem

	// managedObjects heads the list of objects allocated by this
	// thread since the last collection consolidated them away.
	managedObjects *Header

	nextSyncTick platform.Tick

	// Reference registration state used to verify that EnumerateRefs
	// reports exactly the references initialized at construction time,
	// in order.
	checkingRefs    bool
	refsOfNewObject []*refState
	refOfs          int
}

// newThreadSentinel builds the head of the global thread registry.
func newThreadSentinel() *Thread {
	t := &Thread{name: "<mock>"}
	threadList.init(t)
	return t
}

// ManageThread registers the calling goroutine as a mutator thread and
// returns its handle. An empty name is replaced by a generated one.
// The handle must be released with Close.
func ManageThread(name string) *Thread {
	if name == "" {
		name = "thread-" + uuid.NewString()[:8]
	}

	t := &Thread{
		name:           name,
		managed:        true,
		managedObjects: newMockHead(),
		roots:          &rootElem{},
	}
	rootList.init(t.roots)

	g := global
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.startedUp {
		panic(util.Invariantf("gc: not started up"))
	}
	g.addManagedThread(t)
	return t
}

// Close unregisters the thread. The thread must be disabled; its local
// objects are handed over to the global managed list.
func (t *Thread) Close() {
	t.assertManaged()
	if t.enabled {
		panic(util.Invariantf("gc: thread %q closed while enabled", t.name))
	}

	g := global
	g.mu.Lock()
	defer g.mu.Unlock()
	objectList.moveAdd(t.managedObjects, g.managedObjects)
	g.removeManagedThread(t)
	t.managed = false
}

// Name returns the thread name.
func (t *Thread) Name() string {
	return t.name
}

// Enabled reports whether the thread currently takes part in mutation.
func (t *Thread) Enabled() bool {
	return t.enabled
}

// Enable marks the thread as a running mutator. If a collection is in
// progress, Enable waits for it to finish first - no thread may become
// enabled while a cycle is underway.
func (t *Thread) Enable() {
	t.assertManaged()
	if t.enabled {
		panic(util.Invariantf("gc: thread %q already enabled", t.name))
	}
	if t.creating {
		panic(util.Invariantf("gc: thread %q enabled during construction", t.name))
	}

	g := global
	g.mu.Lock()
	defer g.mu.Unlock()

	g.waitForGarbageCollectionEnd()

	t.nextSyncTick = g.clock.TickCount() + platform.GCSyncInterval
	t.setEnabled(true)
}

// Disable voluntarily parks the thread. A disabled thread contributes
// nothing to the root set beyond its registered roots.
func (t *Thread) Disable() {
	t.assertLive()

	g := global
	g.mu.Lock()
	defer g.mu.Unlock()
	t.setEnabled(false)
}

// Synchronize is the safepoint check, called by mutator code on
// bounded intervals. When the safepoint deadline has passed, the slow
// path parks the thread for the duration of any in-progress cycle.
func (t *Thread) Synchronize() {
	t.assertLive()

	g := global
	tick := g.clock.TickCount()
	if tick >= t.nextSyncTick {
		g.synchronize(t)
		t.nextSyncTick = g.clock.TickCount() + platform.GCSyncInterval
	}
}

// Collect runs a collection cycle. If another thread is already
// collecting, the calling thread parks until that cycle ends.
func (t *Thread) Collect() {
	t.assertLive()

	g := global
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.collecting {
		// GC is already in progress in another thread. Disable the
		// current thread, letting GC complete.
		t.suspendDuringGC()
		return
	}

	// Perform GC in the current thread.
	g.suspendEnabledThreads()
	defer g.resumeSuspendedThreads()
	g.collectSynchronized()
}

// suspendDuringGC disables the thread until the end of the cycle. GC
// can be performed only when all other threads are disabled. Callers
// hold the global lock.
func (t *Thread) suspendDuringGC() {
	if t.creating {
		panic(util.Invariantf("gc: thread %q parked during construction", t.name))
	}
	t.setEnabled(false)
	defer t.setEnabled(true)
	global.waitForGarbageCollectionEnd()
}

// setEnabled flips the enabled state and updates the global counter.
// Callers hold the global lock.
func (t *Thread) setEnabled(enabled bool) {
	t.assertManaged()
	if t.enabled == enabled {
		panic(util.Invariantf("gc: thread %q enabled state already %v", t.name, enabled))
	}
	t.enabled = enabled
	global.threadEnabled(enabled)
}

func (t *Thread) assertManaged() {
	if !t.managed {
		panic(util.Invariantf("gc: thread is not managed"))
	}
}

// assertLive verifies the thread is enabled and not mid-construction,
// the precondition of every mutator-side GC operation.
func (t *Thread) assertLive() {
	t.assertManaged()
	if !t.enabled {
		panic(util.Invariantf("gc: thread %q is not enabled", t.name))
	}
	if t.creating {
		panic(util.Invariantf("gc: thread %q is mid-construction", t.name))
	}
}

// allocate is the allocation fast path: reject oversized requests,
// charge the heap, and open the construction window.
func (t *Thread) allocate(size uintptr) error {
	t.assertLive()

	if size > MaxSize {
		return outOfMemory("object size %d exceeds the maximum managed size", size)
	}

	physical := physicalBlockSize(size)
	if err := global.acquireMemory(t, physical); err != nil {
		return err
	}

	t.creating = true
	t.refsOfNewObject = t.refsOfNewObject[:0]
	t.refOfs = 0

	if global.observer != nil {
		global.observer.MemoryAllocated(size)
	}
	return nil
}

// finish links the new object into the thread's local list, writes its
// header and validates the reference enumeration contract.
func (t *Thread) finish(obj Object, size uintptr) {
	t.assertManaged()
	if !t.creating {
		panic(util.Invariantf("gc: finish outside of construction"))
	}

	h := obj.header()
	h.listAddTo(t.managedObjects)
	h.manage(size, global.currentReachableFlag(), obj)

	t.creating = false
	t.checkReferences(obj)
}

// fail aborts a construction: the heap charge is refunded and the
// observer notified.
func (t *Thread) fail(size uintptr) {
	t.assertManaged()
	if !t.creating {
		panic(util.Invariantf("gc: fail outside of construction"))
	}

	if global.observer != nil {
		global.observer.MemoryDeleted(size)
	}
	global.releaseMemory(physicalBlockSize(size))
	t.creating = false
}

// checkReferences runs EnumerateRefs on the just-created object and
// verifies it visits exactly the registered references in order.
func (t *Thread) checkReferences(obj Object) {
	if t.checkingRefs {
		panic(util.Invariantf("gc: recursive reference check"))
	}
	t.checkingRefs = true
	defer func() { t.checkingRefs = false }()

	obj.EnumerateRefs(&RefVisitor{check: t})

	if t.refOfs != len(t.refsOfNewObject) {
		panic(util.Invariantf("gc: EnumerateRefs of %q visited %d of %d references",
			t.name, t.refOfs, len(t.refsOfNewObject)))
	}
	t.refsOfNewObject = t.refsOfNewObject[:0]
	t.refOfs = 0
}

func (t *Thread) checkReference(s *refState) {
	if t.refOfs >= len(t.refsOfNewObject) {
		panic(util.Invariantf("gc: EnumerateRefs visited an unregistered reference"))
	}
	if t.refsOfNewObject[t.refOfs] != s {
		panic(util.Invariantf("gc: EnumerateRefs visited references out of order"))
	}
	t.refOfs++
}

// Create allocates and initializes a managed object of logical size
// size, returning a root holding it. construct runs between the
// allocation and finalization steps; it must initialize every Ref
// field of the object with InitRef. On error or panic the allocation
// is refunded and the failure propagated.
func Create[T Object](t *Thread, size uintptr, construct func() (T, error)) (*Root[T], error) {
	if err := t.allocate(size); err != nil {
		return nil, err
	}

	finished := false
	defer func() {
		// The construction window may already be closed when finish
		// panics on a broken enumeration contract.
		if !finished && t.creating {
			t.fail(size)
		}
	}()

	obj, err := construct()
	if err != nil {
		return nil, err
	}

	t.finish(obj, size)
	finished = true
	return NewRoot(t, obj), nil
}
