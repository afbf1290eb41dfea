package threadpool

import (
	"context"
	"log/slog"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/jzx17/gopool/internal/osthread"
	"github.com/jzx17/gopool/pkg/queue"
	"github.com/jzx17/gopool/pkg/types"
)

// WorkerID identifies a worker uniquely within the process
type WorkerID uint64

// workerIDCounter is the global worker ID counter
var workerIDCounter atomic.Uint64

type workerIDKey struct{}

// WorkerIDFromContext returns the id of the worker running the task that
// received ctx
func WorkerIDFromContext(ctx context.Context) (WorkerID, bool) {
	id, ok := ctx.Value(workerIDKey{}).(WorkerID)
	return id, ok
}

// WorkerState defines the lifecycle state of a worker
type WorkerState int32

const (
	// WorkerStateCreated represents a worker whose goroutine has not started
	WorkerStateCreated WorkerState = iota
	// WorkerStateRunning represents a worker consuming the queue
	WorkerStateRunning
	// WorkerStateToldToDie represents a worker finishing its current batch
	WorkerStateToldToDie
	// WorkerStateJoined represents a worker whose goroutine has exited
	WorkerStateJoined
)

// String returns the string representation of WorkerState
func (ws WorkerState) String() string {
	switch ws {
	case WorkerStateCreated:
		return "created"
	case WorkerStateRunning:
		return "running"
	case WorkerStateToldToDie:
		return "told-to-die"
	case WorkerStateJoined:
		return "joined"
	default:
		return "unknown"
	}
}

// worker consumes batches from the shared queue on its own goroutine
type worker struct {
	id    WorkerID
	state atomic.Int32
	die   atomic.Bool

	queue        *queue.SharedQueue[batch]
	priority     ThreadPriority
	pollInterval time.Duration

	// taskCtx is handed to every task and is never cancelled
	taskCtx context.Context
	// stopCtx is cancelled when the worker is told to die
	stopCtx context.Context
	stop    context.CancelFunc
	done    chan struct{}

	// statistics
	totalProcessed atomic.Int64
	totalFailed    atomic.Int64

	// observe is called after each work unit
	observe func(time.Duration, error)

	clock  types.Clock
	logger *slog.Logger
}

func newWorker(p *Pool) *worker {
	id := WorkerID(workerIDCounter.Add(1))
	stopCtx, stop := context.WithCancel(context.Background())

	return &worker{
		id:           id,
		queue:        p.queue,
		priority:     p.config.Priority,
		pollInterval: p.config.PollInterval,
		taskCtx:      context.WithValue(context.Background(), workerIDKey{}, id),
		stopCtx:      stopCtx,
		stop:         stop,
		done:         make(chan struct{}),
		observe:      p.observe,
		clock:        p.config.Clock,
		logger:       p.logger.With("worker_id", uint64(id)),
	}
}

// State returns the current worker state
func (w *worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

func (w *worker) start() {
	w.state.Store(int32(WorkerStateRunning))
	go w.run()
}

func (w *worker) run() {
	defer close(w.done)

	if w.priority == IdlePriority {
		// never unlocked: the runtime discards a thread whose goroutine exits
		// while locked, so the lowered priority does not leak to other goroutines
		runtime.LockOSThread()
		if err := osthread.SetCurrentThreadToIdlePriority(); err != nil {
			w.logger.Warn("failed to lower worker thread priority", "error", err)
		}
	}

	w.logger.Debug("worker started", "priority", w.priority.String())

	for !w.die.Load() {
		units, ok := w.queue.PopWait(w.stopCtx, w.pollInterval)
		if !ok {
			continue
		}
		for _, unit := range units {
			w.execute(unit)
		}
	}

	w.logger.Debug("worker stopped",
		"processed", w.totalProcessed.Load(),
		"failed", w.totalFailed.Load())
}

// execute runs one unit; a failing unit never stops the worker
func (w *worker) execute(unit workUnit) {
	startTime := w.clock.Now()
	err := unit.run(w.taskCtx)

	if err != nil {
		w.totalFailed.Add(1)
	} else {
		w.totalProcessed.Add(1)
	}

	if w.observe != nil {
		w.observe(w.clock.Since(startTime), err)
	}
}

// tellToDie asks the worker to exit after its current batch
func (w *worker) tellToDie() {
	w.die.Store(true)
	w.state.CompareAndSwap(int32(WorkerStateRunning), int32(WorkerStateToldToDie))
	w.stop()
}

// join blocks until the worker goroutine has exited
func (w *worker) join() {
	<-w.done
	w.state.Store(int32(WorkerStateJoined))
}

// Stats gets worker statistics
func (w *worker) Stats(index int) WorkerStats {
	return WorkerStats{
		ID:             w.id,
		Index:          index,
		State:          w.State(),
		TotalProcessed: w.totalProcessed.Load(),
		TotalFailed:    w.totalFailed.Load(),
	}
}

// WorkerStats defines worker statistics
type WorkerStats struct {
	ID             WorkerID
	Index          int
	State          WorkerState
	TotalProcessed int64
	TotalFailed    int64
}

// GetSuccessRate gets the success rate
func (ws WorkerStats) GetSuccessRate() float64 {
	total := ws.TotalProcessed + ws.TotalFailed
	if total == 0 {
		return 0
	}
	return float64(ws.TotalProcessed) / float64(total)
}
