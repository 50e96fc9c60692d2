package prometheus

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/drainio/drainpool/pkg/pool"
)

func noopTask() pool.Task {
	return pool.TaskFunc(func(context.Context) error { return nil })
}

func TestPoolMetrics_Counters(t *testing.T) {
	m := NewPoolMetrics("test")
	task := noopTask()

	m.TaskStarted(task)
	m.TaskStarted(task)
	m.TaskCompleted(task, 5*time.Millisecond)
	m.TaskFailed(task, time.Millisecond, errors.New("boom"))
	m.TaskRejected(task, pool.ErrPoolClosed)

	if got := testutil.ToFloat64(m.TasksStartedTotal); got != 2 {
		t.Errorf("tasks_started_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.TasksCompletedTotal); got != 1 {
		t.Errorf("tasks_completed_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.TasksFailedTotal); got != 1 {
		t.Errorf("tasks_failed_total = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.TasksRejectedTotal); got != 1 {
		t.Errorf("tasks_rejected_total = %v, want 1", got)
	}
}

func TestPoolMetrics_ObservePool(t *testing.T) {
	m := NewPoolMetrics("test")

	p, err := pool.New(context.Background(), pool.Config{
		Name:     "test",
		Workers:  4,
		Observer: m,
	})
	if err != nil {
		t.Fatalf("pool.New() error = %v", err)
	}
	m.ObservePool(p)

	for i := 0; i < 10; i++ {
		if err := p.Submit(noopTask()); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
	}
	p.Shutdown()

	if got := gaugeValue(t, m, "drainpool_workers"); got != 4 {
		t.Errorf("drainpool_workers = %v, want 4", got)
	}
	if got := gaugeValue(t, m, "drainpool_queue_depth"); got != 0 {
		t.Errorf("drainpool_queue_depth after drain = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.TasksCompletedTotal); got != 10 {
		t.Errorf("tasks_completed_total = %v, want 10", got)
	}
}

// gaugeValue scrapes the registry for a gauge registered via GaugeFunc
func gaugeValue(t *testing.T, m *PoolMetrics, name string) float64 {
	t.Helper()

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, fam := range families {
		if fam.GetName() == name {
			if len(fam.GetMetric()) == 0 {
				t.Fatalf("metric family %s is empty", name)
			}
			return fam.GetMetric()[0].GetGauge().GetValue()
		}
	}

	t.Fatalf("metric family %s not found", name)
	return 0
}

func TestPoolMetrics_PoolLabel(t *testing.T) {
	m := NewPoolMetrics("payments")
	m.TaskStarted(noopTask())

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	for _, fam := range families {
		if fam.GetName() == "drainpool_tasks_started_total" {
			labels := fam.GetMetric()[0].GetLabel()
			for _, l := range labels {
				if l.GetName() == "pool" && l.GetValue() == "payments" {
					return
				}
			}
		}
	}

	t.Error(`metrics should carry the pool="payments" label`)
}
