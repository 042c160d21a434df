// synth_params.go - Lock-free control-to-render parameter handoff

/*
Entrain Engine - real-time binaural tone and panning synthesis

(c) 2025 - 2026 The Entrain Engine Authors
https://github.com/entrainfx/EntrainEngine
License: GPLv3 or later
*/

package main

import "sync/atomic"

type paramOp int

const (
	OP_LAYER_FREQ paramOp = iota
	OP_LAYER_GAIN
	OP_PAN_DEPTH
	OP_PAN_CYCLE
)

// ParamIntent is one control-side request: "set layer i frequency to v",
// "set panning depth to v", and so on. Intents are converted into ramp
// targets by the render context, never applied as steps.
type ParamIntent struct {
	Op    paramOp
	Layer int
	Value float64
}

// paramQueue is the bounded single-producer/single-consumer handoff between
// the control context (Push) and the render context (Pop). The render side
// takes no locks and performs no allocation. When the queue is full the
// OLDEST unapplied intent is dropped and counted: losing a stale update is
// strictly better than ever blocking the audio thread.
//
// head is advanced by CAS from both sides - by the consumer on a normal pop
// and by the producer when it must evict. A consumer whose CAS loses simply
// discards what it read and retries, so an eviction racing a pop is safe.
type paramQueue struct {
	slots   [PARAM_QUEUE_SIZE]atomic.Pointer[ParamIntent]
	head    atomic.Uint64 // next slot to consume
	tail    atomic.Uint64 // next slot to fill
	dropped atomic.Uint64
}

// Push enqueues an intent, evicting the oldest pending one if the queue is
// full. Control context only; allocation happens here, never on Pop.
func (q *paramQueue) Push(in ParamIntent) {
	t := q.tail.Load()
	for {
		h := q.head.Load()
		if t-h < PARAM_QUEUE_SIZE {
			break
		}
		if q.head.CompareAndSwap(h, h+1) {
			q.dropped.Add(1)
		}
	}
	item := in
	q.slots[t%PARAM_QUEUE_SIZE].Store(&item)
	q.tail.Store(t + 1)
}

// Pop dequeues one intent if any is pending. Render context, plus the
// control context while no session is installed (activation flushes stale
// intents through here); the CAS loop keeps concurrent poppers safe.
func (q *paramQueue) Pop() (ParamIntent, bool) {
	for {
		h := q.head.Load()
		if h == q.tail.Load() {
			return ParamIntent{}, false
		}
		p := q.slots[h%PARAM_QUEUE_SIZE].Load()
		if q.head.CompareAndSwap(h, h+1) {
			if p == nil {
				continue
			}
			return *p, true
		}
		// Lost the slot to an eviction; what we read is stale.
	}
}

// Dropped returns how many intents were evicted unapplied. Observability
// only; overflow is policy, not an error.
func (q *paramQueue) Dropped() uint64 { return q.dropped.Load() }

// Pending reports whether at least one intent is queued.
func (q *paramQueue) Pending() bool {
	return q.head.Load() != q.tail.Load()
}
