package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/drainio/drainpool/pkg/pool"
)

// PoolMetrics exposes pool task lifecycle events as Prometheus metrics.
// It implements pool.Observer and is registered on its own registry,
// wrapped with a "pool" label so several pools can coexist in one process.
type PoolMetrics struct {
	registry   *prometheus.Registry
	registerer prometheus.Registerer

	TasksStartedTotal   prometheus.Counter
	TasksCompletedTotal prometheus.Counter
	TasksFailedTotal    prometheus.Counter
	TasksRejectedTotal  prometheus.Counter
	TaskDuration        prometheus.Histogram
}

// NewPoolMetrics creates a metrics collection labeled with the pool name
func NewPoolMetrics(poolName string) *PoolMetrics {
	registry := prometheus.NewRegistry()
	registerer := prometheus.WrapRegistererWith(prometheus.Labels{"pool": poolName}, registry)

	return &PoolMetrics{
		registry:   registry,
		registerer: registerer,

		TasksStartedTotal: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "drainpool_tasks_started_total",
				Help: "Total number of tasks picked up by a worker",
			},
		),
		TasksCompletedTotal: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "drainpool_tasks_completed_total",
				Help: "Total number of tasks that finished without error",
			},
		),
		TasksFailedTotal: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "drainpool_tasks_failed_total",
				Help: "Total number of tasks that returned an error or panicked",
			},
		),
		TasksRejectedTotal: promauto.With(registerer).NewCounter(
			prometheus.CounterOpts{
				Name: "drainpool_tasks_rejected_total",
				Help: "Total number of submissions refused by the pool",
			},
		),
		TaskDuration: promauto.With(registerer).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "drainpool_task_duration_seconds",
				Help:    "Task execution duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

// ObservePool registers gauges backed by the pool's own counters:
// queue depth, in-flight tasks, and the fixed worker count.
func (m *PoolMetrics) ObservePool(p pool.Pool) {
	promauto.With(m.registerer).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "drainpool_queue_depth",
			Help: "Number of tasks accepted but not yet picked up by a worker",
		},
		func() float64 { return float64(p.Stats().QueuedTasks) },
	)
	promauto.With(m.registerer).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "drainpool_tasks_in_flight",
			Help: "Number of tasks currently executing",
		},
		func() float64 { return float64(p.Stats().InFlightTasks) },
	)
	promauto.With(m.registerer).NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "drainpool_workers",
			Help: "Fixed number of worker goroutines",
		},
		func() float64 { return float64(p.Workers()) },
	)
}

// Registry returns the underlying registry for serving or test scraping
func (m *PoolMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// TaskStarted implements pool.Observer interface
func (m *PoolMetrics) TaskStarted(pool.Task) {
	m.TasksStartedTotal.Inc()
}

// TaskCompleted implements pool.Observer interface
func (m *PoolMetrics) TaskCompleted(_ pool.Task, duration time.Duration) {
	m.TasksCompletedTotal.Inc()
	m.TaskDuration.Observe(duration.Seconds())
}

// TaskFailed implements pool.Observer interface
func (m *PoolMetrics) TaskFailed(_ pool.Task, duration time.Duration, _ error) {
	m.TasksFailedTotal.Inc()
	m.TaskDuration.Observe(duration.Seconds())
}

// TaskRejected implements pool.Observer interface
func (m *PoolMetrics) TaskRejected(pool.Task, error) {
	m.TasksRejectedTotal.Inc()
}
