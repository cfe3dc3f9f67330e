package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ForEach calls fn for every index in [0, items) with at most workers calls in flight.
// workers <= 0 means one worker per CPU core. With a single worker the calls run
// sequentially in index order on the calling goroutine.
//
// The first error returned by fn cancels the context passed to the remaining calls
// and is returned once every started call has finished.
func ForEach(ctx context.Context, items, workers int, fn func(ctx context.Context, i int) error) error {
	if items <= 0 {
		return nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items // No need for more workers than items
	}

	if workers == 1 {
		for i := 0; i < items; i++ {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < items; i++ {
		g.Go(func() error {
			return fn(gctx, i)
		})
	}
	return g.Wait()
}

// Workers returns the effective worker count ForEach would use for items.
func Workers(items, workers int) int {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > items {
		workers = items
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}
