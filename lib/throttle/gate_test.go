// Copyright 2026 The Peekaboo Authors
// SPDX-License-Identifier: Apache-2.0

package throttle

import (
	"context"
	"testing"
	"time"

	"github.com/peekaboo-foundation/peekaboo/lib/testutil"
)

const waitTimeout = 5 * time.Second

// acquireAsync starts an Acquire in a goroutine and returns a channel
// that delivers its result.
func acquireAsync(ctx context.Context, g *Gate) <-chan error {
	done := make(chan error, 1)
	go func() { done <- g.Acquire(ctx) }()
	return done
}

func TestImmediateAdmissionUpToLimit(t *testing.T) {
	g := NewGate(3)
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := g.Acquire(ctx); err != nil {
			t.Fatalf("Acquire %d: %v", i, err)
		}
	}
	if got := g.InFlight(); got != 3 {
		t.Errorf("InFlight = %d, want 3", got)
	}
}

func TestExcessCallersQueue(t *testing.T) {
	g := NewGate(2)
	ctx := context.Background()

	// Fill the gate.
	for i := 0; i < 2; i++ {
		if err := g.Acquire(ctx); err != nil {
			t.Fatalf("Acquire: %v", err)
		}
	}

	// Three more callers must all queue.
	queued := make([]<-chan error, 3)
	for i := range queued {
		queued[i] = acquireAsync(ctx, g)
	}
	for i, done := range queued {
		testutil.RequireNoReceive(t, done, 50*time.Millisecond, "caller %d should be queued", i)
	}

	// Each release admits exactly one waiter, in order.
	for i := range queued {
		g.Release()
		if err := testutil.RequireReceive(t, queued[i], waitTimeout, "waiter %d admission", i); err != nil {
			t.Fatalf("waiter %d: %v", i, err)
		}
		for j := i + 1; j < len(queued); j++ {
			testutil.RequireNoReceive(t, queued[j], 20*time.Millisecond, "waiter %d admitted early", j)
		}
	}

	if got := g.InFlight(); got != 2 {
		t.Errorf("InFlight = %d, want 2", got)
	}
}

// TestReleaseHandsSlotToOldestWaiter is the three-caller scenario:
// with a gate of two, a third caller queues; one release admits
// exactly that third caller while the first two stay admitted.
func TestReleaseHandsSlotToOldestWaiter(t *testing.T) {
	g := NewGate(2)
	ctx := context.Background()

	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("first Acquire: %v", err)
	}
	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("second Acquire: %v", err)
	}

	third := acquireAsync(ctx, g)
	testutil.RequireNoReceive(t, third, 50*time.Millisecond, "third caller should queue")

	g.Release()
	if err := testutil.RequireReceive(t, third, waitTimeout, "third caller admission"); err != nil {
		t.Fatalf("third caller: %v", err)
	}
	if got := g.InFlight(); got != 2 {
		t.Errorf("InFlight after handoff = %d, want 2", got)
	}
}

func TestFIFOOrderAcrossManyWaiters(t *testing.T) {
	g := NewGate(1)
	ctx := context.Background()
	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	// Start waiters one at a time with a settle delay so the queue
	// order matches the loop index.
	const waiterCount = 8
	admitted := make(chan int, waiterCount)
	for i := 0; i < waiterCount; i++ {
		i := i
		go func() {
			if err := g.Acquire(ctx); err != nil {
				t.Errorf("waiter %d: %v", i, err)
				return
			}
			admitted <- i
			g.Release()
		}()
		time.Sleep(10 * time.Millisecond)
	}

	g.Release()
	for want := 0; want < waiterCount; want++ {
		got := testutil.RequireReceive(t, admitted, waitTimeout, "admission %d", want)
		if got != want {
			t.Fatalf("admission order: got waiter %d, want %d", got, want)
		}
	}
}

func TestCancelledWaiterLeavesQueueIntact(t *testing.T) {
	g := NewGate(1)
	ctx := context.Background()
	if err := g.Acquire(ctx); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	firstCtx, cancelFirst := context.WithCancel(ctx)
	first := acquireAsync(firstCtx, g)
	time.Sleep(10 * time.Millisecond)
	second := acquireAsync(ctx, g)
	time.Sleep(10 * time.Millisecond)

	// Cancel the older waiter; the younger one must keep its place
	// and be admitted on the next release.
	cancelFirst()
	if err := testutil.RequireReceive(t, first, waitTimeout, "cancelled waiter result"); err == nil {
		t.Fatal("cancelled waiter acquired the gate")
	}

	g.Release()
	if err := testutil.RequireReceive(t, second, waitTimeout, "surviving waiter admission"); err != nil {
		t.Fatalf("surviving waiter: %v", err)
	}
	if got := g.InFlight(); got != 1 {
		t.Errorf("InFlight = %d, want 1", got)
	}
}

func TestAcquireOnDoneContextFailsFast(t *testing.T) {
	g := NewGate(1)
	cancelled, cancel := context.WithCancel(context.Background())
	cancel()
	if err := g.Acquire(cancelled); err == nil {
		t.Fatal("Acquire succeeded on a cancelled context")
	}
	if got := g.InFlight(); got != 0 {
		t.Errorf("InFlight = %d, want 0", got)
	}
}

func TestLimitFloor(t *testing.T) {
	g := NewGate(0)
	if g.Limit() != 1 {
		t.Errorf("Limit = %d, want 1", g.Limit())
	}
}
