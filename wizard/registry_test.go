// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package wizard

import (
	"context"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.now = f.now.Add(d)
}

func TestRegistryCreateGetRemove(t *testing.T) {
	t.Parallel()

	r := NewRegistry(CannedAnalyzer{})

	c := r.Create()
	if c.Step() != StepLanding {
		t.Fatalf("expected landing, got %s", c.Step())
	}

	got, ok := r.Get(c.ID())
	if !ok || got != c {
		t.Fatal("expected to find created controller")
	}

	if _, ok := r.Get("unknown"); ok {
		t.Fatal("expected unknown id to be missing")
	}

	r.Remove(c.ID())

	if r.Len() != 0 {
		t.Fatalf("expected empty registry, got %d", r.Len())
	}
}

func TestRegistrySessionsAreIndependent(t *testing.T) {
	t.Parallel()

	r := NewRegistry(CannedAnalyzer{})
	a := r.Create()
	b := r.Create()

	if a.ID() == b.ID() {
		t.Fatal("expected distinct ids")
	}

	_ = a.Start()

	if b.Step() != StepLanding {
		t.Fatalf("second session moved to %s", b.Step())
	}
}

func TestRegistrySweep(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	r := NewRegistry(CannedAnalyzer{})
	r.now = clock.Now

	idle := r.Create()
	active := r.Create()

	clock.Advance(20 * time.Minute)
	r.Get(active.ID())
	clock.Advance(15 * time.Minute)

	if n := r.Sweep(30 * time.Minute); n != 1 {
		t.Fatalf("expected one eviction, got %d", n)
	}

	if _, ok := r.Get(idle.ID()); ok {
		t.Fatal("expected idle controller to be evicted")
	}

	if _, ok := r.Get(active.ID()); !ok {
		t.Fatal("expected active controller to survive")
	}
}

func TestRunSweeperClosesOnShutdown(t *testing.T) {
	t.Parallel()

	r := NewRegistry(CannedAnalyzer{})
	r.Create()
	r.Create()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- r.RunSweeper(ctx, time.Hour, time.Hour)
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("RunSweeper returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("RunSweeper did not stop")
	}

	if r.Len() != 0 {
		t.Fatalf("expected all controllers to be closed, got %d", r.Len())
	}
}
