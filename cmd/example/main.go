package main

import (
	"context"
	"errors"
	"time"

	"github.com/drainio/drainpool/pkg/failfast"
	"github.com/drainio/drainpool/pkg/log"
	"github.com/drainio/drainpool/pkg/pool"
)

func main() {
	logger := log.NewDefaultLogger()
	logger.SetLevel(log.LevelDebug)

	p, err := pool.New(context.Background(), pool.Config{
		Name:    "example",
		Workers: 4,
		Logger:  logger,
	})
	failfast.Err(err)

	for i := 0; i < 8; i++ {
		task := pool.NewNamedTask("greet", func(context.Context) error {
			time.Sleep(10 * time.Millisecond)
			logger.Info("hello from a worker")
			return nil
		})
		failfast.Err(p.Submit(task))
	}

	// A failing task is contained by the worker loop; the pool keeps going.
	failfast.Err(p.Submit(pool.NewNamedTask("flaky", func(context.Context) error {
		return errors.New("simulated task failure")
	})))

	p.Shutdown()

	stats := p.Stats()
	logger.Infof("completed=%d failed=%d rejected=%d",
		stats.CompletedTasks, stats.FailedTasks, stats.RejectedTasks)

	// Submissions after Shutdown are rejected, never executed
	if err := p.Submit(pool.NewNamedTask("late", func(context.Context) error { return nil })); err != nil {
		logger.Warnf("late submission rejected: %v", err)
	}
}
