/*
Package threadpool provides a resizable pool of worker goroutines that all
consume one shared FIFO queue, with futures for results and chunked dispatch
for large batches of small tasks.

# Overview

This package implements:
- A fixed set of workers that can be grown or shrunk at runtime
- Futures carrying a task's value, its returned error, or a recovered panic
- Asynchronous and deferred launch modes
- Chunked dispatch, with one future per task or one future per chunk
- Stable thread indices for per-thread scratch space
- Optional idle OS scheduling priority for worker threads
- Optional Prometheus metrics

# Core Components

## Pool

Owns the shared queue and the ordered worker list. The position of a worker
in the list is its thread index. SetThreadCount adds workers at the end or
removes them from the end, so indices below the new count never change.

## Worker

One goroutine popping batches from the queue and running every unit of a
batch in order. When idle priority is configured the goroutine is locked to
its OS thread and the thread's priority is lowered before the first pop.

## Future

Fulfilled exactly once, readable any number of times. Tasks launched with
LaunchDeferred run in the goroutine that first calls Get or Wait.

# Chunking

Submitting millions of tiny tasks one by one costs more in queue traffic
than in work. LaunchInChunks and LaunchIndexedInChunks keep one future per
task but queue consecutive tasks together; LaunchChunks and its variants go
further and return one future per chunk. DesiredChunkSize picks a chunk size
from the expected task uniformity.

# Usage Example

	pool, err := threadpool.New(threadpool.DefaultConfig())
	if err != nil {
		return err
	}
	defer pool.Close()

	futures, err := threadpool.LaunchIndexedInChunks(pool,
		func(ctx context.Context, i int) (int, error) {
			return i * i, nil
		}, 1000, 0)
	if err != nil {
		return err
	}

	for _, f := range futures {
		square, err := f.Get()
		...
	}

# Shutdown

Close stops accepting work, lets every worker finish the batch it is
running, joins them all and fails the futures of batches still queued with
types.ErrPoolClosed.

A task must not call SetThreadCount or Close on its own pool: both wait for
running batches to finish.
*/
package threadpool
