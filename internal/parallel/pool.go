package parallel

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Result records the outcome of one submitted job.
type Result struct {
	Key      string
	Err      error
	Duration time.Duration
}

// WorkerPool runs keyed jobs with at most maxWorkers in flight.
type WorkerPool struct {
	slots    chan struct{} // nil when unbounded
	failFast bool
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup

	mu      sync.Mutex
	results []Result
	errs    []error
}

// NewWorkerPool returns a pool bound to ctx. maxWorkers <= 0 means no limit.
// With failFast the first failing job cancels everything still queued.
func NewWorkerPool(ctx context.Context, maxWorkers int, failFast bool) *WorkerPool {
	ctx, cancel := context.WithCancel(ctx)
	p := &WorkerPool{failFast: failFast, ctx: ctx, cancel: cancel}
	if maxWorkers > 0 {
		p.slots = make(chan struct{}, maxWorkers)
	}
	return p
}

// Submit schedules fn under key. Jobs submitted after cancellation, or
// still waiting for a slot when it happens, never run and record no result.
func (p *WorkerPool) Submit(key string, fn func(ctx context.Context) error) {
	if p.ctx.Err() != nil {
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if !p.acquire() {
			return
		}
		defer p.release()
		p.run(key, fn)
	}()
}

func (p *WorkerPool) acquire() bool {
	if p.slots != nil {
		select {
		case p.slots <- struct{}{}:
		case <-p.ctx.Done():
			return false
		}
	}
	if p.ctx.Err() != nil {
		p.release()
		return false
	}
	return true
}

func (p *WorkerPool) release() {
	if p.slots != nil {
		<-p.slots
	}
}

func (p *WorkerPool) run(key string, fn func(ctx context.Context) error) {
	start := time.Now()
	err := fn(p.ctx)
	res := Result{Key: key, Err: err, Duration: time.Since(start)}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.results = append(p.results, res)
	if err == nil {
		return
	}
	p.errs = append(p.errs, fmt.Errorf("%s: %w", key, err))
	if p.failFast {
		p.cancel()
	}
}

// Wait blocks until every started job finishes. Results are in completion
// order; errors are prefixed with their job key. The pool is unusable after.
func (p *WorkerPool) Wait() ([]Result, []error) {
	p.wg.Wait()
	p.cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Result(nil), p.results...), append([]error(nil), p.errs...)
}

// Cancel stops jobs that have not started yet.
func (p *WorkerPool) Cancel() {
	p.cancel()
}
