// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package gc implements a stop-the-world tracing garbage collector for
// a multi-threaded scripting runtime.
//
// The collector provides:
//   - A global heap quota charged by an atomic free-heap counter
//   - Per-thread allocation with a CAS fast path
//   - Stack-scoped roots and in-object references
//   - Synchronous collection cycles that park all other mutators at
//     safepoints, trace the object graph and delete what is unreached
//   - An optional allocation observer receiving paired notifications
//
// Mutator threads are represented by explicit Thread handles obtained
// from ManageThread. A thread must be enabled to allocate or touch
// roots; it parks at safepoints (Synchronize) while a cycle is in
// progress. Reachability marking flips the interpretation of the
// header flag bit each cycle, so survivors need no clearing pass.
package gc

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/synbin/synbin/v1/platform"
	"github.com/synbin/synbin/v1/util"
)

const (
	gcTimeout      = 10 * time.Second
	gcTimeoutLimit = 6
)

var logger = logrus.WithField("component", "gc")

// SetLogger replaces the package logger.
func SetLogger(entry *logrus.Entry) {
	if entry != nil {
		logger = entry
	}
}

// globalState is the collector singleton. Its mutable fields are
// protected by mu; the free-heap counter is atomic and accessed
// outside the lock.
type globalState struct {
	mu sync.Mutex

	// waitCh is closed and replaced on every broadcast; together with
	// mu it forms the monitor used for cycle synchronization.
	waitCh chan struct{}

	startedUp bool
	observer  AllocObserver
	clock     platform.Clock

	heapSize uintptr
	freeHeap atomic.Uintptr

	// enumeratingRefs is true while the collector is tracing
	// references of reachable objects.
	enumeratingRefs bool

	threadsCount   int
	threadsHead    *Thread
	enabledThreads int

	// managedObjects holds all managed objects outside a cycle. On
	// collection, thread-local objects are consolidated here, the
	// reachable ones move to reachableObjects, the rest are deleted,
	// and the survivors move back.
	managedObjects *Header

	// reachableObjects is the scratch list populated during marking.
	reachableObjects *Header

	// reachableFlag alternates between 0 and the flag bit each cycle,
	// so survivors read as unreachable next cycle without a clearing
	// pass.
	reachableFlag uintptr

	collecting bool
}

var global = newGlobalState()

func newGlobalState() *globalState {
	g := &globalState{
		waitCh:           make(chan struct{}),
		clock:            platform.SystemClock,
		managedObjects:   newMockHead(),
		reachableObjects: newMockHead(),
	}
	g.threadsHead = newThreadSentinel()
	return g
}

// Opt configures the collector at startup.
type Opt func(*globalState)

// WithObserver installs the single allocation observer.
func WithObserver(o AllocObserver) Opt {
	return func(g *globalState) { g.observer = o }
}

// WithClock substitutes the clock used for safepoint deadlines and
// cycle timing.
func WithClock(c platform.Clock) Opt {
	return func(g *globalState) {
		if c != nil {
			g.clock = c
		}
	}
}

// WithLogger replaces the package logger at startup.
func WithLogger(entry *logrus.Entry) Opt {
	return func(*globalState) { SetLogger(entry) }
}

// Startup initializes the collector with the given heap quota. It must
// be called exactly once before any thread is managed.
func Startup(heapSize uintptr, opts ...Opt) {
	g := global
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.startedUp {
		panic(util.Invariantf("gc: already started up"))
	}
	if heapSize == 0 {
		panic(util.Invariantf("gc: zero heap size"))
	}

	g.heapSize = heapSize
	g.freeHeap.Store(heapSize)
	for _, opt := range opts {
		opt(g)
	}
	g.startedUp = true
}

// Shutdown tears the collector down. All threads must be unregistered
// and no collection may be in progress. Residual managed objects are
// deleted.
func Shutdown() {
	g := global
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.startedUp {
		panic(util.Invariantf("gc: not started up"))
	}
	if !threadList.isEmpty(g.threadsHead) || g.threadsCount != 0 || g.enabledThreads != 0 {
		panic(util.Invariantf("gc: shutdown with registered threads"))
	}
	if g.collecting {
		panic(util.Invariantf("gc: shutdown during collection"))
	}

	// Delete residual managed objects - for safety.
	g.collectDeleteManagedObjects()

	if !objectList.isEmpty(g.managedObjects) {
		panic(util.Invariantf("gc: managed objects remain after shutdown sweep"))
	}
	if g.freeHeap.Load() != g.heapSize {
		panic(util.Invariantf("gc: heap accounting mismatch on shutdown"))
	}

	g.heapSize = 0
	g.freeHeap.Store(0)
	g.observer = nil
	g.clock = platform.SystemClock
	objectList.clear(g.reachableObjects)
	g.reachableFlag = 0
	g.startedUp = false
}

// currentReachableFlag is read without the lock: the flag only changes
// during a cycle, when every mutator that could observe it is parked.
func (g *globalState) currentReachableFlag() uintptr {
	return g.reachableFlag
}

// broadcast wakes every waiter of the monitor. Callers hold mu.
func (g *globalState) broadcast() {
	close(g.waitCh)
	g.waitCh = make(chan struct{})
}

// waitFor blocks until pred holds, waiting in 10 s slices up to 6
// attempts. Exceeding the budget is fatal: the collector cannot make
// progress. Callers hold mu; the lock is released while waiting.
func (g *globalState) waitFor(pred func() bool) {
	for attempt := 0; attempt < gcTimeoutLimit; attempt++ {
		if g.waitSlice(pred, gcTimeout) {
			return
		}
		logger.Warn("GC synchronization timeout")
	}
	logger.Fatal("GC synchronization failed")
}

// waitSlice waits until pred holds or the timeout elapses, returning
// whether pred holds. mu is held on entry and on return.
func (g *globalState) waitSlice(pred func() bool, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	for !pred() {
		ch := g.waitCh
		g.mu.Unlock()
		select {
		case <-ch:
			g.mu.Lock()
		case <-timer.C:
			g.mu.Lock()
			return pred()
		}
	}
	return true
}

func (g *globalState) waitForGarbageCollectionEnd() {
	g.waitFor(func() bool {
		return !g.collecting
	})
}

// suspendEnabledThreads starts a cycle: it raises the in-progress flag
// and waits until the calling thread is the only enabled one.
func (g *globalState) suspendEnabledThreads() {
	if g.collecting {
		panic(util.Invariantf("gc: collection already in progress"))
	}
	g.collecting = true

	g.waitFor(func() bool {
		return g.enabledThreads == 1
	})
}

func (g *globalState) resumeSuspendedThreads() {
	if !g.collecting {
		panic(util.Invariantf("gc: no collection in progress"))
	}
	g.collecting = false
	g.broadcast()
}

// collectSynchronized runs a full cycle. The caller holds mu and is
// the sole enabled thread.
func (g *globalState) collectSynchronized() {
	// Step 1. Move all managed objects from threads to the global list.
	for th := g.threadsHead.links.next; th != g.threadsHead; th = th.links.next {
		objectList.moveAdd(th.managedObjects, g.managedObjects)
	}

	// Step 2. Process root references.
	for th := g.threadsHead.links.next; th != g.threadsHead; th = th.links.next {
		for e := th.roots.links.next; e != th.roots; e = e.links.next {
			g.collectObject(e.object)
		}
	}

	// Step 3. Process references of reachable objects.
	g.collectReferences()

	// Step 4. Delete non-referenced objects.
	g.collectDeleteManagedObjects()

	// Step 5. Move objects from the reachable list to the managed list.
	objectList.moveReplace(g.reachableObjects, g.managedObjects)

	// Step 6. Invert the reachable flag.
	g.reachableFlag ^= reachableFlag
}

// collectObject marks the object as reachable and moves it to the
// reachable list, unless it is already marked.
func (g *globalState) collectObject(obj Object) {
	if obj == nil {
		return
	}
	h := obj.header()
	if h.sizeAndFlags&reachableFlag == g.reachableFlag {
		h.sizeAndFlags ^= reachableFlag
		h.listRemoveFrom()
		h.listAddTo(g.reachableObjects)
	}
}

func (g *globalState) collectReference(obj Object) {
	if !g.enumeratingRefs {
		panic(util.Invariantf("gc: reference visited outside of tracing"))
	}
	g.collectObject(obj)
}

// collectReferences iterates the reachable list and marks every object
// referenced from it. The list grows at the tail while iterating;
// termination is guaranteed because each object is moved into it at
// most once.
func (g *globalState) collectReferences() {
	g.enumeratingRefs = true
	defer func() { g.enumeratingRefs = false }()

	v := &RefVisitor{}
	for h := g.reachableObjects.links.next; h != g.reachableObjects; h = h.links.next {
		h.self.EnumerateRefs(v)
	}
}

// collectDeleteManagedObjects deletes everything left on the managed
// list and refunds the heap.
func (g *globalState) collectDeleteManagedObjects() {
	var deletedSize uintptr
	deletedCnt := 0

	start := g.clock.TimeMillis()

	head := g.managedObjects
	for h := head.links.next; h != head; {
		next := h.links.next

		size := h.size()
		g.collectDelete(h, size)
		deletedSize += physicalBlockSize(size)
		deletedCnt++

		h = next
	}

	g.freeHeap.Add(deletedSize)

	logger.WithFields(logrus.Fields{
		"objects": deletedCnt,
		"bytes":   deletedSize,
		"ms":      g.clock.TimeMillis() - start,
	}).Debug("GC: collection finished")
}

func (g *globalState) collectDelete(h *Header, size uintptr) {
	h.listRemoveFrom()
	if d, ok := h.self.(Disposer); ok {
		d.Dispose()
	}
	if g.observer != nil {
		g.observer.MemoryDeleted(size)
	}
	h.self = nil
}

// acquireMemory charges the free-heap counter with size bytes. If the
// charge fails, a collection is performed; if it still fails, an
// OutOfMemory error is returned.
func (g *globalState) acquireMemory(t *Thread, size uintptr) error {
	if g.acquireMemoryTry(size) {
		return nil
	}

	// Not enough free memory. Start GC.

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.collecting {
		// GC is already in progress in another thread. Suspend this
		// thread and allow GC to complete.
		t.suspendDuringGC()
		if g.acquireMemoryTry(size) {
			return nil
		}
	}

	// Start GC in the current thread.
	g.suspendEnabledThreads()
	defer g.resumeSuspendedThreads()
	if !g.acquireMemoryTry(size) {
		g.collectSynchronized()
		if !g.acquireMemoryTry(size) {
			return outOfMemory("cannot allocate %d bytes", size)
		}
	}
	return nil
}

func (g *globalState) releaseMemory(size uintptr) {
	g.freeHeap.Add(size)
}

// acquireMemoryTry decrements the free-heap counter by size using CAS.
// The counter may transiently under-approximate free memory between
// retries, never over-approximate.
func (g *globalState) acquireMemoryTry(size uintptr) bool {
	free := g.freeHeap.Load()
	for {
		if free < size {
			return false
		}
		if g.freeHeap.CompareAndSwap(free, free-size) {
			return true
		}
		free = g.freeHeap.Load()
	}
}

func (g *globalState) addManagedThread(t *Thread) {
	threadList.add(g.threadsHead, t)
	g.threadsCount++
}

func (g *globalState) removeManagedThread(t *Thread) {
	threadList.remove(t)
	g.threadsCount--
}

func (g *globalState) threadEnabled(enabled bool) {
	if enabled {
		g.enabledThreads++
	} else {
		g.enabledThreads--
		g.broadcast()
	}
}

// synchronize is the safepoint slow path: park the thread if a cycle
// is in progress.
func (g *globalState) synchronize(t *Thread) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.collecting {
		t.suspendDuringGC()
	}
}
