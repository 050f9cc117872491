package api

import (
	"context"
	"sync/atomic"
	"time"
)

// Lane separates cheap requests from expensive ones so a burst of
// simulations can never starve interactive play.
type Lane int

const (
	// LaneAI covers per-request AI work: choosing a move, ranking hints.
	LaneAI Lane = iota
	// LaneSim covers batch self-play simulations.
	LaneSim

	numLanes
)

func (l Lane) String() string {
	if l == LaneSim {
		return "sim"
	}
	return "ai"
}

// WorkerPool caps concurrent work per lane with channel semaphores and
// keeps running counters for the stats endpoint.
type WorkerPool struct {
	sems   [numLanes]chan struct{}
	queued [numLanes]int64
	active [numLanes]int64
	total  [numLanes]int64
}

// PoolConfig sizes the lanes.
type PoolConfig struct {
	MaxAIWorkers  int // concurrent AI move/hint requests (default 100)
	MaxSimWorkers int // concurrent simulations (default 4)
}

// DefaultPoolConfig returns the default lane sizes.
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{MaxAIWorkers: 100, MaxSimWorkers: 4}
}

// NewWorkerPool builds a pool with the given lane sizes.
func NewWorkerPool(cfg PoolConfig) *WorkerPool {
	if cfg.MaxAIWorkers <= 0 {
		cfg.MaxAIWorkers = 100
	}
	if cfg.MaxSimWorkers <= 0 {
		cfg.MaxSimWorkers = 4
	}
	p := &WorkerPool{}
	p.sems[LaneAI] = make(chan struct{}, cfg.MaxAIWorkers)
	p.sems[LaneSim] = make(chan struct{}, cfg.MaxSimWorkers)
	return p
}

// Acquire blocks for a slot in the lane until the context is done.
func (p *WorkerPool) Acquire(ctx context.Context, lane Lane) error {
	atomic.AddInt64(&p.queued[lane], 1)
	defer atomic.AddInt64(&p.queued[lane], -1)

	select {
	case p.sems[lane] <- struct{}{}:
		atomic.AddInt64(&p.active[lane], 1)
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryAcquire takes a slot without blocking.
func (p *WorkerPool) TryAcquire(lane Lane) bool {
	select {
	case p.sems[lane] <- struct{}{}:
		atomic.AddInt64(&p.active[lane], 1)
		return true
	default:
		return false
	}
}

// AcquireWithTimeout blocks for a slot at most the given duration.
func (p *WorkerPool) AcquireWithTimeout(lane Lane, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return p.Acquire(ctx, lane)
}

// Release returns a slot to the lane.
func (p *WorkerPool) Release(lane Lane) {
	atomic.AddInt64(&p.active[lane], -1)
	atomic.AddInt64(&p.total[lane], 1)
	<-p.sems[lane]
}

// PoolStats is the stats endpoint's snapshot of pool load.
type PoolStats struct {
	ActiveAI  int64 `json:"active_ai"`
	ActiveSim int64 `json:"active_sim"`
	QueuedAI  int64 `json:"queued_ai"`
	QueuedSim int64 `json:"queued_sim"`
	TotalAI   int64 `json:"total_ai"`
	TotalSim  int64 `json:"total_sim"`
	MaxAI     int   `json:"max_ai"`
	MaxSim    int   `json:"max_sim"`
}

// Stats samples the counters.
func (p *WorkerPool) Stats() PoolStats {
	return PoolStats{
		ActiveAI:  atomic.LoadInt64(&p.active[LaneAI]),
		ActiveSim: atomic.LoadInt64(&p.active[LaneSim]),
		QueuedAI:  atomic.LoadInt64(&p.queued[LaneAI]),
		QueuedSim: atomic.LoadInt64(&p.queued[LaneSim]),
		TotalAI:   atomic.LoadInt64(&p.total[LaneAI]),
		TotalSim:  atomic.LoadInt64(&p.total[LaneSim]),
		MaxAI:     cap(p.sems[LaneAI]),
		MaxSim:    cap(p.sems[LaneSim]),
	}
}
