// Package parallel runs batch jobs on a fixed set of goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

type (
	WorkerFunc func(func())
	WaitFunc   func(done bool)
	CancelFunc func()
)

// Pool hands submitted jobs to its workers. Once ctx is done, jobs that have
// not started yet are dropped and counted as skipped.
type Pool struct {
	wg      sync.WaitGroup
	skipped atomic.Uint64
	Workers int
	Do      WorkerFunc
	Wait    WaitFunc
	Cancel  CancelFunc
}

// Start launches numWorkers workers, or GOMAXPROCS when numWorkers < 1. A
// single worker pool runs every job inline on the caller's goroutine.
func Start(ctx context.Context, numWorkers int) *Pool {
	if numWorkers < 1 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	pool := &Pool{Workers: numWorkers}
	run := func(f func()) {
		if ctx.Err() != nil {
			pool.skipped.Add(1)
			return
		}
		f()
	}

	pool.Do = run
	pool.Wait = func(bool) {}
	pool.Cancel = func() {}

	if numWorkers > 1 {
		workChan := make(chan func(), numWorkers)

		for range numWorkers {
			pool.wg.Go(func() {
				for f := range workChan {
					run(f)
				}
			})
		}

		pool.Do = func(f func()) {
			select {
			case workChan <- f:
			case <-ctx.Done():
				pool.skipped.Add(1)
			}
		}

		pool.Wait = func(done bool) {
			if done {
				pool.Cancel()
			}
			pool.wg.Wait()
		}
		pool.Cancel = sync.OnceFunc(func() { close(workChan) })
	}

	return pool
}

// Skipped returns how many jobs were dropped because the context ended.
func (p *Pool) Skipped() uint64 {
	return p.skipped.Load()
}
