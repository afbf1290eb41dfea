package threadpool

import (
	"context"
	"fmt"
	"math/bits"

	"github.com/jzx17/gopool/pkg/numeric"
	"github.com/jzx17/gopool/pkg/types"
)

// Chunk is the half-open task index range [Begin, End)
type Chunk struct {
	Begin int
	End   int
}

// Len returns the number of tasks in the chunk
func (c Chunk) Len() int {
	return c.End - c.Begin
}

// DesiredChunkSize picks a chunk size between 1 and ceil(taskCount/threadCount).
//
// uniformity describes how evenly the tasks are expected to take time:
// -Inf for highly non-uniform tasks (chunk size 1), +Inf for highly uniform
// ones (one chunk per thread), anything in between for the power mean of the
// two extremes. The result never decreases as uniformity grows.
func DesiredChunkSize(taskCount, threadCount int, uniformity float64) (int, error) {
	if taskCount <= 0 {
		return 1, nil
	}
	if threadCount <= 0 {
		threadCount = 1
	}

	largest := numeric.DivideRoundingUp(taskCount, threadCount)
	mean := numeric.PowerMean([]float64{1, float64(largest)}, uniformity)

	size, err := numeric.Round[int](mean)
	if err != nil {
		return 0, fmt.Errorf("chunk size for uniformity %g: %w", uniformity, err)
	}
	return min(max(size, 1), largest), nil
}

// DefaultDesiredChunkSize is DesiredChunkSize for the pool's current thread count
func (p *Pool) DefaultDesiredChunkSize(taskCount int, uniformity float64) (int, error) {
	return DesiredChunkSize(taskCount, p.ThreadCount(), uniformity)
}

// chunkSize resolves a caller-supplied chunk size; desired <= 0 selects the
// default for moderately uniform tasks
func (p *Pool) chunkSize(taskCount, desired int) (int, error) {
	if desired > 0 {
		return desired, nil
	}
	return p.DefaultDesiredChunkSize(taskCount, 0)
}

// Partition splits [0, taskCount) into chunkCount consecutive chunks whose
// sizes differ by at most one
func Partition(taskCount, chunkCount int) []Chunk {
	if chunkCount <= 0 {
		return nil
	}
	taskCount = max(taskCount, 0)

	chunks := make([]Chunk, chunkCount)
	for i := range chunks {
		chunks[i] = Chunk{
			Begin: chunkStart(i, taskCount, chunkCount),
			End:   chunkStart(i+1, taskCount, chunkCount),
		}
	}
	return chunks
}

// chunkStart returns round(i*taskCount/chunkCount), halves up, for
// 0 <= i <= chunkCount. The product is kept in 128 bits so any int
// taskCount works.
func chunkStart(i, taskCount, chunkCount int) int {
	hi, lo := bits.Mul64(uint64(i), uint64(taskCount))
	lo, carry := bits.Add64(lo, uint64(chunkCount/2), 0)
	// the quotient is at most taskCount, so hi < chunkCount and Div64 cannot panic
	quotient, _ := bits.Div64(hi+carry, lo, uint64(chunkCount))
	return int(quotient)
}

// dispatch builds one unit per index in [0, count), groups consecutive units
// into batches of chunkSize and enqueues them together
func dispatch(p *Pool, count, chunkSize int, build func(i int) workUnit) error {
	if count == 0 {
		return nil
	}

	batches := make([]batch, 0, numeric.DivideRoundingUp(count, chunkSize))
	current := make(batch, 0, min(chunkSize, count))
	for i := 0; i < count; i++ {
		current = append(current, build(i))
		if len(current) >= chunkSize {
			batches = append(batches, current)
			current = make(batch, 0, min(chunkSize, count-i-1))
		}
	}
	if len(current) > 0 {
		batches = append(batches, current)
	}

	return p.enqueue(batches...)
}

// launchPerTask creates one future per index, chunkSize tasks per batch
func launchPerTask[R any](p *Pool, count, chunkSize int, fn func(context.Context, int) (R, error)) ([]*Future[R], error) {
	futures := make([]*Future[R], count)
	err := dispatch(p, count, chunkSize, func(i int) workUnit {
		t := newTask(p, func(ctx context.Context) (R, error) {
			return fn(ctx, i)
		})
		futures[i] = t.future
		return t
	})
	if err != nil {
		return nil, err
	}
	return futures, nil
}

// launchPerChunk creates one future per balanced chunk. The chunk stops at
// its first failing task and its future holds the results so far.
func launchPerChunk[R any](p *Pool, taskCount, desired int, fn func(context.Context, int) (R, error)) ([]*Future[[]R], error) {
	chunks, err := p.partitionTasks(taskCount, desired)
	if err != nil {
		return nil, err
	}

	return launchPerTask(p, len(chunks), 1, func(ctx context.Context, c int) ([]R, error) {
		chunk := chunks[c]
		results := make([]R, 0, chunk.Len())
		for i := chunk.Begin; i < chunk.End; i++ {
			r, err := fn(ctx, i)
			if err != nil {
				return results, err
			}
			results = append(results, r)
		}
		return results, nil
	})
}

func (p *Pool) partitionTasks(taskCount, desired int) ([]Chunk, error) {
	if taskCount == 0 {
		return nil, nil
	}
	size, err := p.chunkSize(taskCount, desired)
	if err != nil {
		return nil, err
	}
	return Partition(taskCount, numeric.DivideRoundingUp(taskCount, size)), nil
}

func checkTaskCount(count int) error {
	if count < 0 {
		return fmt.Errorf("task count must not be negative, got %d", count)
	}
	return nil
}

// LaunchInChunks runs fn once per argument and returns one future per
// argument, in argument order. Consecutive tasks are queued together in
// chunks of desired tasks (desired <= 0 picks a default) and run back to
// back on one worker.
func LaunchInChunks[A, R any](p *Pool, fn func(context.Context, A) (R, error), args []A, desired int) ([]*Future[R], error) {
	if fn == nil {
		return nil, types.ErrNilTask
	}
	size, err := p.chunkSize(len(args), desired)
	if err != nil {
		return nil, err
	}
	return launchPerTask(p, len(args), size, func(ctx context.Context, i int) (R, error) {
		return fn(ctx, args[i])
	})
}

// LaunchIndexedInChunks is LaunchInChunks over the indices 0..count-1
func LaunchIndexedInChunks[R any](p *Pool, fn func(context.Context, int) (R, error), count, desired int) ([]*Future[R], error) {
	if fn == nil {
		return nil, types.ErrNilTask
	}
	if err := checkTaskCount(count); err != nil {
		return nil, err
	}
	size, err := p.chunkSize(count, desired)
	if err != nil {
		return nil, err
	}
	return launchPerTask(p, count, size, fn)
}

// LaunchChunks runs fn for every index in [0, taskCount) and returns a single
// future per chunk holding that chunk's results in index order. Chunk
// boundaries follow Partition.
func LaunchChunks[R any](p *Pool, fn func(context.Context, int) (R, error), taskCount, desired int) ([]*Future[[]R], error) {
	if fn == nil {
		return nil, types.ErrNilTask
	}
	if err := checkTaskCount(taskCount); err != nil {
		return nil, err
	}
	return launchPerChunk(p, taskCount, desired, fn)
}

// LaunchChunksWithArgs is LaunchChunks with one argument per task
func LaunchChunksWithArgs[A, R any](p *Pool, fn func(context.Context, A) (R, error), args []A, desired int) ([]*Future[[]R], error) {
	if fn == nil {
		return nil, types.ErrNilTask
	}
	return launchPerChunk(p, len(args), desired, func(ctx context.Context, i int) (R, error) {
		return fn(ctx, args[i])
	})
}

// LaunchChunksVoid is LaunchChunks for tasks without results
func LaunchChunksVoid(p *Pool, fn func(context.Context, int) error, taskCount, desired int) ([]*Future[struct{}], error) {
	if fn == nil {
		return nil, types.ErrNilTask
	}
	if err := checkTaskCount(taskCount); err != nil {
		return nil, err
	}

	chunks, err := p.partitionTasks(taskCount, desired)
	if err != nil {
		return nil, err
	}

	return launchPerTask(p, len(chunks), 1, func(ctx context.Context, c int) (struct{}, error) {
		for i := chunks[c].Begin; i < chunks[c].End; i++ {
			if err := fn(ctx, i); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
}
