// Package parallel runs the iterations of a loop concurrently
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// For runs fn(ctx, i) for every i in [0, n), at most GOMAXPROCS at a time.
// Every iteration runs even if an earlier one failed; the first error
// returned by any iteration is returned.
func For(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	return MaybeFor(ctx, n, fn, true)
}

// MaybeFor is For when parallelize is true. Otherwise the iterations run in
// order on the calling goroutine and the loop stops at the first error.
func MaybeFor(ctx context.Context, n int, fn func(ctx context.Context, i int) error, parallelize bool) error {
	if !parallelize {
		for i := 0; i < n; i++ {
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := 0; i < n; i++ {
		g.Go(func() error {
			return fn(ctx, i)
		})
	}
	return g.Wait()
}
