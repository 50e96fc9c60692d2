package pool

import (
	"errors"
)

var (
	// ErrPoolClosed is returned by Submit once Shutdown has begun
	ErrPoolClosed = errors.New("pool is closed")

	// ErrNilTask is returned by Submit for a nil task
	ErrNilTask = errors.New("task cannot be nil")

	// ErrInvalidWorkerCount is returned by New when Config.Workers < 1
	ErrInvalidWorkerCount = errors.New("worker count must be at least 1")
)

// PoolStats is a point-in-time snapshot of pool counters
type PoolStats struct {
	Workers        int   // Fixed number of worker goroutines
	QueuedTasks    int64 // Tasks accepted but not yet picked up by a worker
	InFlightTasks  int64 // Tasks currently executing
	SubmittedTasks int64 // Total tasks accepted by Submit
	CompletedTasks int64 // Total tasks that finished without error
	FailedTasks    int64 // Total tasks that returned an error or panicked
	RejectedTasks  int64 // Total submissions refused
}

// Pool owns a fixed set of workers consuming from a shared unbounded queue.
// Every task accepted by Submit executes exactly once; Shutdown drains the
// queue completely before returning.
type Pool interface {
	// Submit queues a task for execution. On success the task is guaranteed
	// to eventually execute, exactly once. Returns ErrPoolClosed once
	// Shutdown has begun and ErrNilTask for a nil task.
	Submit(task Task) error

	// Shutdown closes the queue to new submissions and blocks until every
	// previously accepted task has finished executing and every worker has
	// terminated. It does not cancel queued or in-flight tasks; it drains
	// them. Calling it again is a no-op that waits for the first call.
	Shutdown()

	// Stats returns a snapshot of the pool's counters
	Stats() PoolStats

	// Workers returns the fixed worker count
	Workers() int

	// IsRunning returns true while the pool still accepts submissions
	IsRunning() bool
}
