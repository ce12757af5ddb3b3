/*
Package worker runs filesystem tasks on a bounded set of goroutines with
optional rate limiting and context cancellation.

Basic usage:

	pool, err := worker.NewPool(worker.Config{
		Workers:   4,
		RateLimit: 0, // unlimited
	})

	pool.Start(ctx)
	pool.Submit(worker.Task{
		ID: 1,
		Execute: func(ctx context.Context) (worker.Result, error) {
			return worker.Result{ID: 1, Data: int64(42)}, nil
		},
	})

	results, err := pool.Wait() // ordered by submission
*/
package worker

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

// Task represents a unit of work to be processed by the worker pool
type Task struct {
	// ID identifies the task in results and errors
	ID int

	// Execute performs the work and must honour ctx cancellation
	Execute func(context.Context) (Result, error)
}

// Result represents the output of a processed task
type Result struct {
	// ID matches the task ID that produced this result
	ID int

	// Data holds the task output
	Data interface{}

	order int
}

// Config holds the configuration for the worker pool
type Config struct {
	// Workers is the number of concurrent workers
	Workers int

	// RateLimit is the maximum number of tasks started per second (0 for unlimited)
	RateLimit int
}

// Pool defines the interface for a worker pool
type Pool interface {
	// Start prepares the pool; tasks submitted afterwards run under ctx
	Start(context.Context) error

	// Submit schedules a task, blocking while all workers are busy
	Submit(Task) error

	// Wait blocks until all submitted tasks are processed and returns
	// their results in submission order. The first task error wins.
	Wait() ([]Result, error)

	// GetStats returns current statistics about the pool
	GetStats() Stats

	// Status returns the current status of the pool
	Status() Status

	// Stop cancels outstanding work and waits for workers to return
	Stop() error
}

type pool struct {
	config  Config
	limiter *rate.Limiter

	mu      sync.Mutex
	group   *errgroup.Group
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	stopped bool
	waited  bool

	results   []Result
	resultsMu sync.Mutex
	order     int

	active    atomic.Int32
	completed atomic.Int64
	failed    atomic.Int64
	startTime time.Time
}

// NewPool creates a new worker pool with the given configuration
func NewPool(config Config) (Pool, error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}

	return &pool{
		config:  config,
		limiter: limiter,
	}, nil
}

func validateConfig(config Config) error {
	if config.Workers <= 0 {
		return fmt.Errorf("number of workers must be positive")
	}
	if config.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}
	return nil
}

// Start initializes the worker pool
func (p *pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return fmt.Errorf("pool already started")
	}

	base, cancel := context.WithCancel(ctx)
	group, groupCtx := errgroup.WithContext(base)
	group.SetLimit(p.config.Workers)

	p.group = group
	p.ctx = groupCtx
	p.cancel = cancel
	p.started = true
	p.startTime = time.Now()

	return nil
}

// Submit adds a task to the pool for processing
func (p *pool) Submit(task Task) error {
	p.mu.Lock()
	if !p.started || p.stopped || p.waited {
		p.mu.Unlock()
		return fmt.Errorf("pool not accepting tasks")
	}
	if err := p.ctx.Err(); err != nil {
		p.mu.Unlock()
		return fmt.Errorf("pool is shutting down: %w", err)
	}
	order := p.order
	p.order++
	group, ctx := p.group, p.ctx
	p.mu.Unlock()

	group.Go(func() error {
		return p.run(ctx, task, order)
	})

	return nil
}

func (p *pool) run(ctx context.Context, task Task, order int) error {
	p.active.Add(1)
	defer p.active.Add(-1)

	if p.limiter != nil {
		if err := p.limiter.Wait(ctx); err != nil {
			p.failed.Add(1)
			return fmt.Errorf("rate limiter error: %w", err)
		}
	}

	result, err := task.Execute(ctx)
	if err != nil {
		p.failed.Add(1)
		return fmt.Errorf("task %d failed: %w", task.ID, err)
	}

	result.order = order
	p.resultsMu.Lock()
	p.results = append(p.results, result)
	p.resultsMu.Unlock()
	p.completed.Add(1)

	return nil
}

// Wait blocks until all submitted tasks are processed
func (p *pool) Wait() ([]Result, error) {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return nil, fmt.Errorf("pool not started")
	}
	p.waited = true
	group := p.group
	p.mu.Unlock()

	if err := group.Wait(); err != nil {
		return nil, err
	}

	p.resultsMu.Lock()
	defer p.resultsMu.Unlock()

	results := make([]Result, len(p.results))
	copy(results, p.results)
	sort.Slice(results, func(i, j int) bool {
		return results[i].order < results[j].order
	})

	return results, nil
}

// Stop gracefully shuts down the pool
func (p *pool) Stop() error {
	p.mu.Lock()
	if p.stopped || !p.started {
		p.stopped = true
		p.mu.Unlock()
		return nil
	}
	p.stopped = true
	p.cancel()
	group := p.group
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = group.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-time.After(500 * time.Millisecond):
		return fmt.Errorf("shutdown timed out")
	}
}

// GetStats returns a snapshot of the pool counters
func (p *pool) GetStats() Stats {
	p.mu.Lock()
	start := p.startTime
	p.mu.Unlock()

	var uptime time.Duration
	if !start.IsZero() {
		uptime = time.Since(start)
	}

	return Stats{
		ActiveWorkers:  int(p.active.Load()),
		CompletedTasks: int(p.completed.Load()),
		FailedTasks:    int(p.failed.Load()),
		Status:         p.Status(),
		Uptime:         uptime,
	}
}

// Status reports the lifecycle state of the pool
func (p *pool) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch {
	case !p.started || p.stopped:
		return StatusStopped
	case p.ctx.Err() != nil:
		return StatusShuttingDown
	case p.active.Load() > 0:
		return StatusProcessing
	default:
		return StatusIdle
	}
}
