package pool

import (
	"time"
)

// Observer receives task lifecycle events from the pool. This is the
// injection point for metrics, tracing, and any other error sink.
// Hooks are called inline from worker goroutines and from Submit, so
// implementations must be safe for concurrent use and should be fast.
type Observer interface {
	// TaskStarted is called just before a worker begins executing a task
	TaskStarted(task Task)

	// TaskCompleted is called after a task returns without error or panic
	TaskCompleted(task Task, duration time.Duration)

	// TaskFailed is called when a task returns an error or panics.
	// A panic is delivered as a wrapped error carrying the panic value.
	TaskFailed(task Task, duration time.Duration, err error)

	// TaskRejected is called when Submit turns a task away
	TaskRejected(task Task, err error)
}

// NopObserver is an Observer that ignores every event
type NopObserver struct{}

// TaskStarted implements Observer interface
func (NopObserver) TaskStarted(Task) {}

// TaskCompleted implements Observer interface
func (NopObserver) TaskCompleted(Task, time.Duration) {}

// TaskFailed implements Observer interface
func (NopObserver) TaskFailed(Task, time.Duration, error) {}

// TaskRejected implements Observer interface
func (NopObserver) TaskRejected(Task, error) {}

// MultiObserver fans every event out to each of the given observers, in order.
func MultiObserver(observers ...Observer) Observer {
	return multiObserver(observers)
}

type multiObserver []Observer

func (m multiObserver) TaskStarted(task Task) {
	for _, o := range m {
		o.TaskStarted(task)
	}
}

func (m multiObserver) TaskCompleted(task Task, duration time.Duration) {
	for _, o := range m {
		o.TaskCompleted(task, duration)
	}
}

func (m multiObserver) TaskFailed(task Task, duration time.Duration, err error) {
	for _, o := range m {
		o.TaskFailed(task, duration, err)
	}
}

func (m multiObserver) TaskRejected(task Task, err error) {
	for _, o := range m {
		o.TaskRejected(task, err)
	}
}
