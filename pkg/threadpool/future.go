package threadpool

import (
	"context"
	"sync"
	"time"

	"github.com/jzx17/gopool/pkg/types"
)

// Future holds the eventual result of one submitted task or chunk.
// It is fulfilled exactly once and may be read any number of times.
type Future[R any] struct {
	done     chan struct{}
	complete sync.Once

	value R
	err   error

	clock types.Clock

	// deferred is run by the first reader when the future was launched
	// with LaunchDeferred
	deferred     func(ctx context.Context)
	deferredOnce sync.Once
}

func newFuture[R any](clock types.Clock) *Future[R] {
	if clock == nil {
		clock = types.NewRealClock()
	}
	return &Future[R]{done: make(chan struct{}), clock: clock}
}

// fulfil stores the outcome; later calls are ignored
func (f *Future[R]) fulfil(value R, err error) {
	f.complete.Do(func() {
		f.value = value
		f.err = err
		close(f.done)
	})
}

func (f *Future[R]) runDeferred(ctx context.Context) {
	if f.deferred == nil {
		return
	}
	f.deferredOnce.Do(func() {
		f.deferred(ctx)
	})
}

// Get blocks until the result is available and returns it. Errors returned
// by the task and recovered panics are returned as err.
func (f *Future[R]) Get() (R, error) {
	return f.GetWithContext(context.Background())
}

// GetWithContext is like Get but stops waiting when ctx is done. A deferred
// task runs synchronously in the calling goroutine with ctx and is not
// interrupted by it.
func (f *Future[R]) GetWithContext(ctx context.Context) (R, error) {
	f.runDeferred(ctx)

	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// GetWithTimeout is like Get but gives up with types.ErrTimeout after d,
// measured on the pool's clock
func (f *Future[R]) GetWithTimeout(d time.Duration) (R, error) {
	f.runDeferred(context.Background())

	timer := f.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.value, f.err
	case <-timer.C():
		var zero R
		return zero, types.ErrTimeout
	}
}

// Wait blocks until the future is fulfilled
func (f *Future[R]) Wait() {
	_, _ = f.Get()
}

// Done returns a channel closed once the future is fulfilled. For deferred
// futures the channel only closes after a Get or Wait call ran the task.
func (f *Future[R]) Done() <-chan struct{} {
	return f.done
}

// IsReady reports whether the future is fulfilled without blocking
func (f *Future[R]) IsReady() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// IsDeferred reports whether the future runs its task on first read
func (f *Future[R]) IsDeferred() bool {
	return f.deferred != nil
}

// WaitAll waits for every future and returns the first error in slice order
func WaitAll[R any](futures []*Future[R]) error {
	var first error
	for _, f := range futures {
		if _, err := f.Get(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
