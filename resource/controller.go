package resource

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Config holds resource limits.
type Config struct {
	// MemoryLimitBytes is the hard limit for power-set buffers.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64

	// MaxConcurrentFusions is the maximum number of fusion steps that may
	// evaluate at the same time. If 0, defaults to 1.
	MaxConcurrentFusions int64
}

// Controller manages memory and concurrency budgets for fusion.
type Controller struct {
	cfg Config

	// Memory
	memSem  *semaphore.Weighted // nil if unlimited
	memUsed atomic.Int64

	// Concurrency
	fusionSem *semaphore.Weighted
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentFusions <= 0 {
		cfg.MaxConcurrentFusions = 1
	}

	c := &Controller{
		cfg:       cfg,
		fusionSem: semaphore.NewWeighted(cfg.MaxConcurrentFusions),
	}

	if cfg.MemoryLimitBytes > 0 {
		c.memSem = semaphore.NewWeighted(cfg.MemoryLimitBytes)
	}

	return c
}

// Config returns the effective configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// AcquireMemory attempts to reserve memory.
// If a hard limit is configured and usage would exceed it,
// this blocks until memory is available or ctx is canceled.
// A request larger than the limit fails immediately with ErrOverBudget.
func (c *Controller) AcquireMemory(ctx context.Context, bytes int64) error {
	if c == nil {
		return nil
	}
	if bytes <= 0 {
		return nil
	}

	if c.memSem != nil {
		if bytes > c.cfg.MemoryLimitBytes {
			return &OverBudgetError{Requested: bytes, Limit: c.cfg.MemoryLimitBytes}
		}
		if err := c.memSem.Acquire(ctx, bytes); err != nil {
			return err
		}
	}

	c.memUsed.Add(bytes)
	return nil
}

// TryAcquireMemory attempts to reserve memory without blocking.
// Returns true if acquired, false if limit would be exceeded.
func (c *Controller) TryAcquireMemory(bytes int64) bool {
	if c == nil {
		return true
	}
	if bytes <= 0 {
		return true
	}

	if c.memSem != nil {
		if !c.memSem.TryAcquire(bytes) {
			return false
		}
	}

	c.memUsed.Add(bytes)
	return true
}

// ReleaseMemory releases reserved memory.
func (c *Controller) ReleaseMemory(bytes int64) {
	if c == nil {
		return
	}
	if bytes <= 0 {
		return
	}

	if c.memSem != nil {
		c.memSem.Release(bytes)
	}
	c.memUsed.Add(-bytes)
}

// MemoryUsage returns the current memory usage in bytes.
func (c *Controller) MemoryUsage() int64 {
	if c == nil {
		return 0
	}
	return c.memUsed.Load()
}

// AcquireFusion reserves a fusion slot.
// Blocks if all slots are busy.
func (c *Controller) AcquireFusion(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.fusionSem.Acquire(ctx, 1)
}

// TryAcquireFusion attempts to reserve a fusion slot without blocking.
func (c *Controller) TryAcquireFusion() bool {
	if c == nil {
		return true
	}
	return c.fusionSem.TryAcquire(1)
}

// ReleaseFusion releases a fusion slot.
func (c *Controller) ReleaseFusion() {
	if c == nil {
		return
	}
	c.fusionSem.Release(1)
}
