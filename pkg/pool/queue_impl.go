package pool

import (
	"sync"
)

// unboundedQueue implements Queue with a mutex/cond guarded slice.
// Send never blocks and never exerts backpressure; under sustained
// overproduction memory grows without bound. That is the documented
// trade-off of this queue, not a bug to fix here.
type unboundedQueue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	pending  []Task
	closed   bool
}

// NewQueue creates an Open, empty queue.
func NewQueue() Queue {
	q := &unboundedQueue{}
	q.notEmpty = sync.NewCond(&q.mu)
	return q
}

// Send implements Queue interface
func (q *unboundedQueue) Send(task Task) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	q.pending = append(q.pending, task)
	q.notEmpty.Signal()
	return nil
}

// Receive implements Queue interface
// Blocks with no timeout; the only wake-ups are a new task or Close.
func (q *unboundedQueue) Receive() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.pending) == 0 && !q.closed {
		q.notEmpty.Wait()
	}

	if len(q.pending) == 0 {
		// Closed and fully drained
		return nil, false
	}

	task := q.pending[0]
	q.pending[0] = nil // release the task for GC once executed
	q.pending = q.pending[1:]
	return task, true
}

// Close implements Queue interface
func (q *unboundedQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}

	q.closed = true
	q.notEmpty.Broadcast()
}

// Len implements Queue interface
func (q *unboundedQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// IsClosed implements Queue interface
func (q *unboundedQueue) IsClosed() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed
}
