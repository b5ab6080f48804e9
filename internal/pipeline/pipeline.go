// Package pipeline provides a bounded fan-out pool for independent
// assessment units.
package pipeline

import (
	"context"
	"runtime"
	"sync"

	"github.com/teampulse/pulse/pkg/metrics"
)

// Pool executes batches of independent units with bounded parallelism.
// Units are addressed by index, so callers collect results into their
// own index-addressed slices and input order is preserved without any
// synchronization beyond the pool's own.
type Pool struct {
	workers int
}

// NewPool creates a pool sized to the machine unless configured
// otherwise.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		workers: runtime.NumCPU(),
	}

	for _, opt := range opts {
		opt(p)
	}

	metrics.UpdatePoolWorkers(p.workers)
	return p
}

// Workers reports the configured parallelism.
func (p *Pool) Workers() int { return p.workers }

// Run executes fn for every index in [0,n) and waits for completion.
// fn must be safe for concurrent invocation on distinct indices. A
// canceled context stops dispatching further units; units already in
// flight finish.
func (p *Pool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	if n <= 0 {
		return
	}

	workers := p.workers
	if workers > n {
		workers = n
	}

	tasks := make(chan int)
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range tasks {
				if ctx.Err() != nil {
					continue
				}
				fn(ctx, i)
				metrics.RecordPoolTask()
			}
		}()
	}

	if ctx.Err() == nil {
	dispatch:
		for i := 0; i < n; i++ {
			select {
			case tasks <- i:
			case <-ctx.Done():
				break dispatch
			}
		}
	}
	close(tasks)

	wg.Wait()
}
