// Package queue provides an unbounded blocking FIFO shared between producer
// and consumer goroutines
package queue

import (
	"context"
	"sync"
	"time"

	deque "github.com/eapache/queue"
	"github.com/jzx17/gopool/pkg/types"
)

// SharedQueue is an unbounded, mutex-guarded FIFO. Push never blocks;
// PopWait blocks while the queue is empty and has not been halted.
//
// Halt is terminal: once halted, PopWait never blocks again. Items that are
// still queued at that point can still be popped.
type SharedQueue[T any] struct {
	mu    sync.Mutex
	items *deque.Queue

	// signal holds at most one pending wake-up for a waiter
	signal chan struct{}

	halted   chan struct{}
	haltOnce sync.Once

	clock types.Clock
}

// New creates a shared queue that waits on the real clock
func New[T any]() *SharedQueue[T] {
	return NewWithClock[T](types.NewRealClock())
}

// NewWithClock creates a shared queue that uses clock for timed waits
func NewWithClock[T any](clock types.Clock) *SharedQueue[T] {
	if clock == nil {
		clock = types.NewRealClock()
	}

	return &SharedQueue[T]{
		items:  deque.New(),
		signal: make(chan struct{}, 1),
		halted: make(chan struct{}),
		clock:  clock,
	}
}

// Push appends value to the back of the queue and wakes a waiter
func (q *SharedQueue[T]) Push(value T) {
	q.mu.Lock()
	q.items.Add(value)
	q.mu.Unlock()

	q.notify()
}

// TryPop removes and returns the front item without waiting
func (q *SharedQueue[T]) TryPop() (T, bool) {
	q.mu.Lock()
	if q.items.Length() == 0 {
		q.mu.Unlock()
		var zero T
		return zero, false
	}
	value := q.items.Remove().(T)
	more := q.items.Length() > 0
	q.mu.Unlock()

	// pass the wake-up on so a second waiter sees the remaining items
	if more {
		q.notify()
	}
	return value, true
}

// PopWait removes and returns the front item, waiting up to timeout for one
// to arrive. It reports false if the timeout elapses, the queue is halted,
// or ctx is cancelled first. A non-positive timeout checks once.
func (q *SharedQueue[T]) PopWait(ctx context.Context, timeout time.Duration) (T, bool) {
	if value, ok := q.TryPop(); ok || timeout <= 0 || q.Halted() {
		return value, ok
	}

	timer := q.clock.NewTimer(timeout)
	defer timer.Stop()

	for {
		select {
		case <-q.signal:
			if value, ok := q.TryPop(); ok {
				return value, true
			}
		case <-q.halted:
			return q.TryPop()
		case <-timer.C():
			var zero T
			return zero, false
		case <-ctx.Done():
			var zero T
			return zero, false
		}
	}
}

// Halt releases every goroutine blocked in PopWait and makes all later
// PopWait calls return without blocking. Safe to call more than once.
func (q *SharedQueue[T]) Halt() {
	q.haltOnce.Do(func() {
		close(q.halted)
	})
}

// Halted reports whether Halt has been called
func (q *SharedQueue[T]) Halted() bool {
	select {
	case <-q.halted:
		return true
	default:
		return false
	}
}

// Len returns a snapshot of the number of queued items
func (q *SharedQueue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.items.Length()
}

// IsEmpty reports whether the queue held no items at the time of the call
func (q *SharedQueue[T]) IsEmpty() bool {
	return q.Len() == 0
}

func (q *SharedQueue[T]) notify() {
	select {
	case q.signal <- struct{}{}:
	default:
	}
}
