package threadpool

import (
	"context"
	"fmt"
	"runtime"

	"github.com/jzx17/gopool/pkg/types"
)

// workUnit is one queued piece of work. Exactly one of run or abandon is
// called for every unit.
type workUnit interface {
	run(ctx context.Context) error
	abandon(err error)
}

// batch is the queue element: units dequeued together and run in order by
// a single worker
type batch []workUnit

// task binds a user function to the future it fulfils
type task[R any] struct {
	fn     func(context.Context) (R, error)
	future *Future[R]
}

func newTask[R any](p *Pool, fn func(context.Context) (R, error)) *task[R] {
	return &task[R]{fn: fn, future: newFuture[R](p.config.Clock)}
}

func (t *task[R]) run(ctx context.Context) error {
	value, err := call(ctx, t.fn)
	t.future.fulfil(value, err)
	return err
}

func (t *task[R]) abandon(err error) {
	var zero R
	t.future.fulfil(zero, err)
}

// call runs fn, converting a panic into a *types.TaskPanicError
func call[R any](ctx context.Context, fn func(context.Context) (R, error)) (result R, err error) {
	defer func() {
		if r := recover(); r != nil {
			var buf [4096]byte
			n := runtime.Stack(buf[:], false)

			panicErr := types.NewTaskPanicError(r, buf[:n])
			if id, ok := WorkerIDFromContext(ctx); ok {
				panicErr.WithContext("worker_id", id)
			}
			var zero R
			result, err = zero, panicErr
		}
	}()

	return fn(ctx)
}

// LaunchMode selects when a launched task runs
type LaunchMode int

const (
	// LaunchAsync enqueues the task to a worker immediately
	LaunchAsync LaunchMode = iota + 1
	// LaunchDeferred runs the task in the goroutine that first reads the future
	LaunchDeferred
)

// String returns the string representation of LaunchMode
func (m LaunchMode) String() string {
	switch m {
	case LaunchAsync:
		return "async"
	case LaunchDeferred:
		return "deferred"
	default:
		return fmt.Sprintf("LaunchMode(%d)", int(m))
	}
}

// Submit enqueues fn and returns a future for its result without waiting.
// The ctx passed to fn identifies the worker running it.
func Submit[R any](p *Pool, fn func(context.Context) (R, error)) (*Future[R], error) {
	if fn == nil {
		return nil, types.ErrNilTask
	}

	t := newTask(p, fn)
	if err := p.enqueue(batch{t}); err != nil {
		return nil, err
	}
	return t.future, nil
}

// Do enqueues fn, which produces no value
func Do(p *Pool, fn func(context.Context) error) (*Future[struct{}], error) {
	if fn == nil {
		return nil, types.ErrNilTask
	}
	return Submit(p, discardResult(fn))
}

// Launch runs fn according to mode. LaunchAsync behaves like Submit;
// LaunchDeferred does not touch the pool and runs fn synchronously on the
// first Get or Wait of the returned future.
func Launch[R any](p *Pool, mode LaunchMode, fn func(context.Context) (R, error)) (*Future[R], error) {
	switch mode {
	case LaunchAsync:
		return Submit(p, fn)
	case LaunchDeferred:
		if fn == nil {
			return nil, types.ErrNilTask
		}
		f := newFuture[R](p.config.Clock)
		f.deferred = func(ctx context.Context) {
			f.fulfil(call(ctx, fn))
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrInvalidLaunchMode, mode)
	}
}

func discardResult(fn func(context.Context) error) func(context.Context) (struct{}, error) {
	return func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}
}
