package pool

import (
	"context"

	"github.com/google/uuid"
)

// Task is a unit of work executed by the pool.
// A task runs to completion on exactly one worker; the pool never preempts it.
type Task interface {
	// Execute performs the work. The context is the pool's base context and
	// is not cancelled by Shutdown; a non-nil error is reported to the
	// pool's error sink, never to the submitter.
	Execute(ctx context.Context) error

	// Name returns a human-readable name for logging and tracing.
	Name() string
}

// TaskFunc is a function type that implements Task
// Allows functions to be submitted without declaring a struct
type TaskFunc func(ctx context.Context) error

// Execute implements Task interface for TaskFunc
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Name returns a default name for TaskFunc
func (f TaskFunc) Name() string {
	return "TaskFunc"
}

// NamedTask wraps a TaskFunc with a caller-supplied name and a generated ID.
// The ID correlates log lines and trace spans for the same submission.
type NamedTask struct {
	id   string
	name string
	task TaskFunc
}

// NewNamedTask creates a NamedTask with a fresh unique ID.
func NewNamedTask(name string, task TaskFunc) *NamedTask {
	return &NamedTask{
		id:   uuid.New().String(),
		name: name,
		task: task,
	}
}

// Execute implements Task interface
func (nt *NamedTask) Execute(ctx context.Context) error {
	return nt.task(ctx)
}

// Name returns the task name
func (nt *NamedTask) Name() string {
	return nt.name
}

// ID returns the task's unique identifier
func (nt *NamedTask) ID() string {
	return nt.id
}
