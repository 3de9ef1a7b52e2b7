// Copyright 2026 The Synbin Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package metrics provides a Prometheus-backed allocation observer for
// the collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/synbin/synbin/v1/gc"
)

// Observer exports allocation and deletion counters and a live-bytes
// gauge. It implements gc.AllocObserver.
type Observer struct {
	allocatedBytes prometheus.Counter
	deletedBytes   prometheus.Counter
	allocations    prometheus.Counter
	deletions      prometheus.Counter
	liveBytes      prometheus.Gauge
}

var _ gc.AllocObserver = (*Observer)(nil)

// NewObserver builds an Observer and registers its collectors with
// reg. A nil registerer skips registration.
func NewObserver(reg prometheus.Registerer) *Observer {
	o := &Observer{
		allocatedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synbin_gc_allocated_bytes_total",
			Help: "Total logical bytes allocated on the managed heap.",
		}),
		deletedBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synbin_gc_deleted_bytes_total",
			Help: "Total logical bytes deleted from the managed heap.",
		}),
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synbin_gc_allocations_total",
			Help: "Total managed allocations.",
		}),
		deletions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "synbin_gc_deletions_total",
			Help: "Total managed deletions.",
		}),
		liveBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "synbin_gc_live_bytes",
			Help: "Logical bytes currently live on the managed heap.",
		}),
	}

	if reg != nil {
		reg.MustRegister(o.allocatedBytes, o.deletedBytes, o.allocations, o.deletions, o.liveBytes)
	}
	return o
}

// MemoryAllocated implements gc.AllocObserver.
func (o *Observer) MemoryAllocated(size uintptr) {
	o.allocations.Inc()
	o.allocatedBytes.Add(float64(size))
	o.liveBytes.Add(float64(size))
}

// MemoryDeleted implements gc.AllocObserver.
func (o *Observer) MemoryDeleted(size uintptr) {
	o.deletions.Inc()
	o.deletedBytes.Add(float64(size))
	o.liveBytes.Sub(float64(size))
}
