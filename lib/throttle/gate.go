// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package throttle

import (
	"container/list"
	"context"
	"sync"
)

// Gate is a counting admission gate with FIFO fairness. The
// concurrency bound is fixed at construction.
//
// Invariant: the number of admitted callers never exceeds the bound.
// A slot freed by Release is handed directly to the oldest waiter, so
// the count never dips during a handoff and a newer caller can never
// overtake a queued one.
type Gate struct {
	mu       sync.Mutex
	limit    int
	inFlight int
	waiters  list.List // of *waiter, oldest at the front
}

// waiter is one queued Acquire. ready is closed exactly once when the
// slot transfers; granted records the transfer so a caller that is
// cancelled in the same instant can pass the slot on instead of
// leaking it.
type waiter struct {
	ready   chan struct{}
	granted bool
}

// NewGate creates a gate admitting at most limit concurrent holders.
// A limit below one is treated as one.
func NewGate(limit int) *Gate {
	if limit < 1 {
		limit = 1
	}
	return &Gate{limit: limit}
}

// Acquire blocks until a slot is available or ctx is done. On success
// the caller holds one slot and must call Release exactly once,
// normally via defer so error paths cannot leak it.
//
// A caller cancelled while queued is unlinked without disturbing the
// order of the remaining waiters. If cancellation and admission race,
// the slot is handed to the next waiter and the cancellation wins.
func (g *Gate) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.Lock()
	// Admit immediately only when a slot is free AND nobody is queued
	// ahead, otherwise a fast new arrival would overtake the queue.
	if g.inFlight < g.limit && g.waiters.Len() == 0 {
		g.inFlight++
		g.mu.Unlock()
		return nil
	}
	w := &waiter{ready: make(chan struct{})}
	element := g.waiters.PushBack(w)
	g.mu.Unlock()

	select {
	case <-w.ready:
		return nil
	case <-ctx.Done():
		g.mu.Lock()
		if w.granted {
			// The slot arrived in the same instant we were cancelled.
			// Pass it on so it is not leaked.
			g.handOffLocked()
		} else {
			g.waiters.Remove(element)
		}
		g.mu.Unlock()
		return ctx.Err()
	}
}

// Release returns the caller's slot. If anyone is queued, the slot
// transfers to the oldest waiter without the in-flight count ever
// dropping; otherwise the count decrements.
func (g *Gate) Release() {
	g.mu.Lock()
	g.handOffLocked()
	g.mu.Unlock()
}

func (g *Gate) handOffLocked() {
	if front := g.waiters.Front(); front != nil {
		w := front.Value.(*waiter)
		g.waiters.Remove(front)
		w.granted = true
		close(w.ready)
		return
	}
	g.inFlight--
}

// InFlight reports the number of currently admitted holders.
func (g *Gate) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight
}

// Limit reports the gate's fixed concurrency bound.
func (g *Gate) Limit() int {
	return g.limit
}
