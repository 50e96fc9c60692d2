package pool

import (
	"errors"
)

var (
	// ErrQueueClosed is returned by Send after the queue has transitioned to Closed
	ErrQueueClosed = errors.New("task queue is closed")
)

// Queue is an unbounded FIFO handoff between task producers and workers.
// It has two states, Open and Closed; the transition is one-way and is
// performed exactly once, by the owning pool's Shutdown.
type Queue interface {
	// Send appends a task to the tail of the queue and wakes at most one
	// blocked receiver. Returns ErrQueueClosed once the queue is Closed;
	// a rejected task is never silently dropped.
	Send(task Task) error

	// Receive blocks until a task is available or the queue is Closed and
	// empty. The second return value is false only for the closed signal;
	// tasks queued before Close are still delivered in FIFO order.
	Receive() (Task, bool)

	// Close transitions the queue from Open to Closed and wakes every
	// blocked receiver. Pending tasks still drain after Close.
	Close()

	// Len returns the current number of pending tasks
	Len() int

	// IsClosed returns true once the queue has transitioned to Closed
	IsClosed() bool
}
