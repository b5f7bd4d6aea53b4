package resource

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// ErrBudgetExceeded is returned when a matrix would exceed the cell budget.
var ErrBudgetExceeded = errors.New("matrix cell budget exceeded")

// Config holds batch limits.
type Config struct {
	// MaxConcurrentJobs bounds how many batch jobs run at once.
	// If 0, defaults to 1.
	MaxConcurrentJobs int64

	// ItemsPerSecond throttles how fast a job may score outer elements
	// (genes, diseases, matrix rows). If 0, unlimited.
	ItemsPerSecond float64

	// Burst is the number of items that may be scored without waiting.
	// If 0, defaults to max(1, ItemsPerSecond).
	Burst int

	// MaxMatrixCells caps the cells held by live pairwise matrices.
	// If 0, no hard limit is enforced (only tracking).
	MaxMatrixCells int64
}

// Controller admits batch jobs, paces their items and tracks matrix memory.
// A nil Controller admits everything.
type Controller struct {
	cfg Config

	jobs *semaphore.Weighted

	items *rate.Limiter

	cellSem  *semaphore.Weighted // nil if unlimited
	cellUsed atomic.Int64
}

// NewController creates a new resource controller.
func NewController(cfg Config) *Controller {
	if cfg.MaxConcurrentJobs <= 0 {
		cfg.MaxConcurrentJobs = 1
	}

	c := &Controller{
		cfg:  cfg,
		jobs: semaphore.NewWeighted(cfg.MaxConcurrentJobs),
	}

	if cfg.ItemsPerSecond > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = max(1, int(cfg.ItemsPerSecond))
		}
		c.items = rate.NewLimiter(rate.Limit(cfg.ItemsPerSecond), burst)
	}

	if cfg.MaxMatrixCells > 0 {
		c.cellSem = semaphore.NewWeighted(cfg.MaxMatrixCells)
	}

	return c
}

// Config returns the effective limits.
func (c *Controller) Config() Config {
	if c == nil {
		return Config{}
	}
	return c.cfg
}

// AcquireJob blocks until a job slot is free.
func (c *Controller) AcquireJob(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.jobs.Acquire(ctx, 1)
}

// TryAcquireJob reserves a job slot without blocking.
func (c *Controller) TryAcquireJob() bool {
	if c == nil {
		return true
	}
	return c.jobs.TryAcquire(1)
}

// ReleaseJob frees a job slot.
func (c *Controller) ReleaseJob() {
	if c == nil {
		return
	}
	c.jobs.Release(1)
}

// WaitItem blocks until the item rate allows one more item.
func (c *Controller) WaitItem(ctx context.Context) error {
	if c == nil || c.items == nil {
		return ctx.Err()
	}
	return c.items.Wait(ctx)
}

// AcquireCells reserves room for n matrix cells.
// Non-blocking - returns ErrBudgetExceeded if the budget is exhausted.
func (c *Controller) AcquireCells(n int64) error {
	if c == nil || n <= 0 {
		return nil
	}

	if c.cellSem != nil && !c.cellSem.TryAcquire(n) {
		return ErrBudgetExceeded
	}

	c.cellUsed.Add(n)
	return nil
}

// ReleaseCells returns n cells to the budget.
func (c *Controller) ReleaseCells(n int64) {
	if c == nil || n <= 0 {
		return
	}

	if c.cellSem != nil {
		c.cellSem.Release(n)
	}
	c.cellUsed.Add(-n)
}

// CellsInUse returns the number of reserved matrix cells.
func (c *Controller) CellsInUse() int64 {
	if c == nil {
		return 0
	}
	return c.cellUsed.Load()
}
