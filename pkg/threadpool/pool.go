package threadpool

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jzx17/gopool/pkg/queue"
	"github.com/jzx17/gopool/pkg/types"
)

// Pool runs submitted work on a resizable set of workers that all consume
// one shared FIFO queue
type Pool struct {
	id      string
	config  Config
	logger  *slog.Logger
	queue   *queue.SharedQueue[batch]
	metrics *Metrics

	// resizeMu serializes SetThreadCount and Close
	resizeMu sync.Mutex
	// workers is replaced wholesale on every resize; index order is the
	// thread index order
	workers atomic.Pointer[[]*worker]

	// submitMu orders enqueues against Close: enqueues hold it shared
	submitMu  sync.RWMutex
	closed    atomic.Bool
	closeOnce sync.Once

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	abandoned atomic.Int64
}

// New creates a pool and starts config.ThreadCount workers. A nil config
// uses DefaultConfig.
func New(config *Config) (*Pool, error) {
	if config == nil {
		config = DefaultConfig()
	}

	cfg := *config
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	p := &Pool{
		id:     id,
		config: cfg,
		logger: cfg.Logger.With("component", "threadpool", "pool", cfg.Name, "pool_id", id),
		queue:  queue.NewWithClock[batch](cfg.Clock),
	}
	empty := make([]*worker, 0)
	p.workers.Store(&empty)

	if cfg.MetricsRegisterer != nil {
		metrics, err := newMetrics(p, cfg.MetricsRegisterer)
		if err != nil {
			return nil, err
		}
		p.metrics = metrics
	}

	p.resizeMu.Lock()
	p.resize(cfg.ThreadCount)
	p.resizeMu.Unlock()

	p.logger.Info("thread pool started",
		"threads", cfg.ThreadCount,
		"priority", cfg.Priority.String())

	return p, nil
}

// SetThreadCount grows or shrinks the pool to n workers. Shrinking removes
// the workers with the highest indices and blocks until each has finished
// the batch it is running.
func (p *Pool) SetThreadCount(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: thread count must not be negative, got %d",
			types.ErrInvalidThreadCount, n)
	}

	p.resizeMu.Lock()
	defer p.resizeMu.Unlock()

	if p.closed.Load() {
		return types.ErrPoolClosed
	}

	from := p.resize(n)
	if from != n {
		p.logger.Info("thread pool resized", "from", from, "to", n)
	}
	return nil
}

// resize replaces the worker list with one of n workers and returns the
// previous count. Callers hold resizeMu.
func (p *Pool) resize(n int) int {
	current := *p.workers.Load()
	switch {
	case n > len(current):
		next := make([]*worker, len(current), n)
		copy(next, current)
		for i := len(current); i < n; i++ {
			next = append(next, newWorker(p))
		}
		// publish before starting so every running worker can find its index
		p.workers.Store(&next)
		for _, w := range next[len(current):] {
			w.start()
		}

	case n < len(current):
		removed := current[n:]
		for _, w := range removed {
			w.tellToDie()
		}
		// removed workers keep their index until they have been joined
		for _, w := range removed {
			w.join()
		}
		next := make([]*worker, n)
		copy(next, current[:n])
		p.workers.Store(&next)
	}
	return len(current)
}

// ID returns the unique id assigned to the pool at construction; it tells
// apart pools sharing a name in logs
func (p *Pool) ID() string {
	return p.id
}

// ThreadCount returns the number of live workers
func (p *Pool) ThreadCount() int {
	return len(*p.workers.Load())
}

// ThreadIndex returns the 0-based index of the worker with the given id
func (p *Pool) ThreadIndex(id WorkerID) (int, error) {
	for i, w := range *p.workers.Load() {
		if w.id == id {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: worker %d", types.ErrNotPoolWorker, id)
}

// ThisThreadIndex returns the index of the worker running the task that
// received ctx. It fails with types.ErrNotPoolWorker when ctx does not come
// from one of this pool's tasks.
func (p *Pool) ThisThreadIndex(ctx context.Context) (int, error) {
	id, ok := WorkerIDFromContext(ctx)
	if !ok {
		return 0, types.ErrNotPoolWorker
	}
	return p.ThreadIndex(id)
}

// enqueue pushes batches onto the shared queue, failing once the pool is
// closed
func (p *Pool) enqueue(batches ...batch) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if p.closed.Load() {
		return types.ErrPoolClosed
	}

	units := 0
	for _, b := range batches {
		units += len(b)
		p.queue.Push(b)
	}
	p.submitted.Add(int64(units))
	p.metrics.recordSubmitted(units)
	return nil
}

// observe records the outcome of one work unit run by a worker
func (p *Pool) observe(d time.Duration, err error) {
	if err != nil {
		p.failed.Add(1)
	} else {
		p.completed.Add(1)
	}
	p.metrics.recordCompleted(d, err)
}

// Close stops all workers and waits for them to exit. Work still queued is
// not run: its futures fail with types.ErrPoolClosed. Close is idempotent.
func (p *Pool) Close() error {
	p.closeOnce.Do(func() {
		p.submitMu.Lock()
		p.closed.Store(true)
		p.submitMu.Unlock()

		p.resizeMu.Lock()
		defer p.resizeMu.Unlock()

		workers := *p.workers.Load()
		for _, w := range workers {
			w.tellToDie()
		}
		p.queue.Halt()
		for _, w := range workers {
			w.join()
		}

		empty := make([]*worker, 0)
		p.workers.Store(&empty)

		abandoned := p.abandonQueued()

		p.logger.Info("thread pool closed",
			"threads", len(workers),
			"abandoned", abandoned)
	})
	return nil
}

// abandonQueued drains the queue and fails every unit left in it
func (p *Pool) abandonQueued() int {
	count := 0
	for {
		b, ok := p.queue.TryPop()
		if !ok {
			break
		}
		for _, unit := range b {
			unit.abandon(types.ErrPoolClosed)
		}
		count += len(b)
	}

	p.abandoned.Add(int64(count))
	p.metrics.recordAbandoned(count)
	return count
}

// Closed reports whether Close has been called
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// QueueLength returns the number of batches waiting in the shared queue
func (p *Pool) QueueLength() int {
	return p.queue.Len()
}

// Stats returns a snapshot of the pool counters
func (p *Pool) Stats() types.PoolStats {
	return types.PoolStats{
		ThreadCount:   p.ThreadCount(),
		QueuedBatches: p.queue.Len(),
		Submitted:     p.submitted.Load(),
		Completed:     p.completed.Load(),
		Failed:        p.failed.Load(),
		Abandoned:     p.abandoned.Load(),
	}
}

// WorkerStats returns per-worker statistics in thread index order
func (p *Pool) WorkerStats() []WorkerStats {
	workers := *p.workers.Load()
	stats := make([]WorkerStats, len(workers))
	for i, w := range workers {
		stats[i] = w.Stats(i)
	}
	return stats
}
