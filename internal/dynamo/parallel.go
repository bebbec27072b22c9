package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is the worker count used when a caller asks for zero.
func DefaultWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// ParallelFor splits [0, n) into chunks of at most chunk indices and runs fn
// over them on at most workers goroutines. Chunks are handed out in order as
// workers free up, so uneven chunk costs balance out. The first error (or
// context cancellation) stops scheduling further chunks and is returned after
// every started chunk has finished.
func ParallelFor(ctx context.Context, n, chunk, workers int, fn func(start, end int) error) error {
	if n <= 0 {
		return nil
	}
	if chunk < 1 {
		chunk = 1
	}
	if workers < 1 {
		workers = DefaultWorkers()
	}

	if workers == 1 || n <= chunk {
		for start := 0; start < n; start += chunk {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(start, min(start+chunk, n)); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for start := 0; start < n; start += chunk {
		if gctx.Err() != nil {
			break
		}
		s, e := start, min(start+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(s, e)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
