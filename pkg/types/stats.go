package types

// PoolStats defines basic statistics for a thread pool
type PoolStats struct {
	// ThreadCount is the number of live workers
	ThreadCount int

	// QueuedBatches is the number of batches waiting in the shared queue
	QueuedBatches int

	// Submitted is the total number of work units enqueued
	Submitted int64

	// Completed is the number of work units that returned without error
	Completed int64

	// Failed is the number of work units that returned an error or panicked
	Failed int64

	// Abandoned is the number of work units discarded at shutdown before running
	Abandoned int64
}

// Pending returns the number of submitted work units that have not finished yet
func (s PoolStats) Pending() int64 {
	return s.Submitted - s.Completed - s.Failed - s.Abandoned
}
