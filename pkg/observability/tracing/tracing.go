package tracing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/drainio/drainpool/pkg/pool"
)

const instrumentationName = "github.com/drainio/drainpool"

// TaskTracer records one span per executed task. It implements
// pool.Observer; spans are created after the fact from the reported
// duration, so no per-task state has to be correlated across hooks.
type TaskTracer struct {
	tracer   trace.Tracer
	poolName string
}

// NewTaskTracer creates a TaskTracer using the globally registered
// tracer provider.
func NewTaskTracer(poolName string) *TaskTracer {
	return &TaskTracer{
		tracer:   otel.Tracer(instrumentationName),
		poolName: poolName,
	}
}

// TaskStarted implements pool.Observer interface
func (t *TaskTracer) TaskStarted(pool.Task) {}

// TaskCompleted implements pool.Observer interface
func (t *TaskTracer) TaskCompleted(task pool.Task, duration time.Duration) {
	t.record(task, duration, nil)
}

// TaskFailed implements pool.Observer interface
func (t *TaskTracer) TaskFailed(task pool.Task, duration time.Duration, err error) {
	t.record(task, duration, err)
}

// TaskRejected implements pool.Observer interface
func (t *TaskTracer) TaskRejected(pool.Task, error) {}

func (t *TaskTracer) record(task pool.Task, duration time.Duration, err error) {
	end := time.Now()

	attrs := []attribute.KeyValue{
		attribute.String("pool.name", t.poolName),
		attribute.String("task.name", task.Name()),
	}
	if nt, ok := task.(*pool.NamedTask); ok {
		attrs = append(attrs, attribute.String("task.id", nt.ID()))
	}

	_, span := t.tracer.Start(context.Background(), task.Name(),
		trace.WithTimestamp(end.Add(-duration)),
		trace.WithAttributes(attrs...),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End(trace.WithTimestamp(end))
}
