package api

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestWorkerPoolBasic(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{
		MaxAIWorkers:  2,
		MaxSimWorkers: 1,
	})

	ctx := context.Background()
	if err := pool.Acquire(ctx, LaneAI); err != nil {
		t.Fatalf("Acquire(LaneAI) = %v", err)
	}

	stats := pool.Stats()
	if stats.ActiveAI != 1 {
		t.Errorf("ActiveAI = %d, want 1", stats.ActiveAI)
	}

	pool.Release(LaneAI)
	stats = pool.Stats()
	if stats.ActiveAI != 0 {
		t.Errorf("ActiveAI after release = %d, want 0", stats.ActiveAI)
	}
	if stats.TotalAI != 1 {
		t.Errorf("TotalAI = %d, want 1", stats.TotalAI)
	}
}

func TestWorkerPoolSimLaneLimit(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{
		MaxAIWorkers:  10,
		MaxSimWorkers: 2,
	})

	if !pool.TryAcquire(LaneSim) {
		t.Fatal("first TryAcquire(LaneSim) refused")
	}
	if !pool.TryAcquire(LaneSim) {
		t.Fatal("second TryAcquire(LaneSim) refused")
	}
	if pool.TryAcquire(LaneSim) {
		t.Fatal("third TryAcquire(LaneSim) succeeded past the limit")
	}

	// The AI lane is independent of the sim lane.
	if !pool.TryAcquire(LaneAI) {
		t.Fatal("TryAcquire(LaneAI) refused while sim lane full")
	}
	pool.Release(LaneAI)

	pool.Release(LaneSim)
	if !pool.TryAcquire(LaneSim) {
		t.Fatal("TryAcquire(LaneSim) refused after a release")
	}
	pool.Release(LaneSim)
	pool.Release(LaneSim)
}

func TestWorkerPoolAcquireTimeout(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxAIWorkers: 1, MaxSimWorkers: 1})

	if err := pool.AcquireWithTimeout(LaneSim, time.Second); err != nil {
		t.Fatalf("AcquireWithTimeout() = %v", err)
	}
	if err := pool.AcquireWithTimeout(LaneSim, 20*time.Millisecond); err == nil {
		t.Error("AcquireWithTimeout() on a full lane returned nil, want error")
	}
	pool.Release(LaneSim)
}

func TestWorkerPoolCancelledContext(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxAIWorkers: 1, MaxSimWorkers: 1})

	ctx := context.Background()
	if err := pool.Acquire(ctx, LaneAI); err != nil {
		t.Fatalf("Acquire() = %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := pool.Acquire(cancelled, LaneAI); err == nil {
		t.Error("Acquire() with cancelled context returned nil, want error")
	}
	pool.Release(LaneAI)
}

func TestWorkerPoolConcurrent(t *testing.T) {
	pool := NewWorkerPool(PoolConfig{MaxAIWorkers: 4, MaxSimWorkers: 1})

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer wg.Done()
			if err := pool.Acquire(context.Background(), LaneAI); err != nil {
				t.Errorf("Acquire() = %v", err)
				return
			}
			time.Sleep(time.Millisecond)
			pool.Release(LaneAI)
		}()
	}
	wg.Wait()

	stats := pool.Stats()
	if stats.ActiveAI != 0 {
		t.Errorf("ActiveAI after drain = %d, want 0", stats.ActiveAI)
	}
	if stats.TotalAI != n {
		t.Errorf("TotalAI = %d, want %d", stats.TotalAI, n)
	}
}
