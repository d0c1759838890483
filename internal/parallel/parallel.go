// Package parallel runs independent training jobs on a bounded number of
// goroutines.
package parallel

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Config controls parallel execution behavior.
type Config struct {
	Enabled    bool // Whether parallel execution is enabled.
	NumWorkers int  // Number of worker goroutines to use.
}

// DefaultConfig returns sensible defaults based on CPU count.
func DefaultConfig() Config {
	n := runtime.NumCPU()
	return Config{
		Enabled:    n > 1,
		NumWorkers: n,
	}
}

// For executes f(ctx, i) for i in [0, n) and returns the error of the lowest
// failing index.
//
// The first failure cancels the context passed to the remaining jobs; jobs
// not yet started are skipped. Falls back to sequential execution in index
// order if parallelism is disabled or there is at most one job.
func For(ctx context.Context, n int, f func(ctx context.Context, i int) error, cfg Config) error {
	if !cfg.Enabled || cfg.NumWorkers <= 1 || n <= 1 {
		for i := range n {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := f(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errs := make([]error, n)
	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(cfg.NumWorkers, n) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					errs[i] = err
					continue
				}
				if err := f(ctx, i); err != nil {
					errs[i] = err
					cancel()
				}
			}
		}()
	}

	for i := range n {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	// Prefer a job's own failure over the cancellations it caused.
	for _, err := range errs {
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
