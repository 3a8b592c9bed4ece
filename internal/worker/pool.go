// Package worker runs shard-parallel jobs on a bounded set of goroutines.
package worker

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers returns the worker count used when none is configured.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Map runs fn once per shard on up to workers goroutines and returns the
// results indexed by shard, so callers can reduce them in a fixed order.
//
// fn never sees another shard's result. A canceled context stops shards that
// have not started yet and Map returns the context error.
func Map[T any](ctx context.Context, shards []Range, workers int, fn func(Range) T) ([]T, error) {
	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > len(shards) {
		workers = len(shards)
	}

	results := make([]T, len(shards))
	jobs := make(chan int, workers)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for idx := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[idx] = fn(shards[idx])
			}
			return nil
		})
	}

feed:
	for i := range shards {
		select {
		case jobs <- i:
		case <-gctx.Done():
			break feed
		}
	}
	close(jobs)

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// Run is Map for jobs that write their output in place.
func Run(ctx context.Context, shards []Range, workers int, fn func(Range)) error {
	_, err := Map(ctx, shards, workers, func(r Range) struct{} {
		fn(r)
		return struct{}{}
	})
	return err
}
