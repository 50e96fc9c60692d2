package pool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/drainio/drainpool/pkg/log"
)

// defaultPool implements Pool with one goroutine per worker and an
// unbounded queue, so Submit never blocks producers.
type defaultPool struct {
	name    string
	workers int
	queue   Queue
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc

	logger   log.Logger
	observer Observer

	closed       int32 // Atomic flag, set once Shutdown begins
	shutdownOnce sync.Once

	// Counters (atomic)
	submitted int64
	completed int64
	failed    int64
	rejected  int64
	inFlight  int64
}

// Config configures a Pool
type Config struct {
	// Name labels the pool in logs, metrics, and traces
	Name string

	// Workers is the fixed number of worker goroutines. Must be >= 1;
	// the pool never resizes after construction.
	Workers int

	// Logger receives worker lifecycle and task failure logs
	// (default: log.NewDefaultLogger())
	Logger log.Logger

	// Observer receives task lifecycle events (default: NopObserver)
	Observer Observer
}

// DefaultConfig returns default pool configuration
func DefaultConfig() Config {
	return Config{
		Name:    "drainpool",
		Workers: 8,
	}
}

// New creates a Pool with cfg.Workers workers, each already running its
// consume loop against the queue when New returns. Fails fast with
// ErrInvalidWorkerCount for a non-positive worker count; it never clamps
// and never returns a partially started pool.
func New(ctx context.Context, cfg Config) (Pool, error) {
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("pool %q: %w (got %d)", cfg.Name, ErrInvalidWorkerCount, cfg.Workers)
	}
	if cfg.Name == "" {
		cfg.Name = "drainpool"
	}
	if cfg.Logger == nil {
		cfg.Logger = log.NewDefaultLogger()
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, cancel := context.WithCancel(ctx)

	p := &defaultPool{
		name:     cfg.Name,
		workers:  cfg.Workers,
		queue:    NewQueue(),
		ctx:      ctx,
		cancel:   cancel,
		logger:   cfg.Logger,
		observer: cfg.Observer,
	}

	p.wg.Add(p.workers)
	for i := 0; i < p.workers; i++ {
		go p.worker(i)
	}

	return p, nil
}

// worker consumes tasks until the queue reports closed-and-empty
func (p *defaultPool) worker(id int) {
	defer p.wg.Done()

	p.logger.Debugf("pool %s: worker %d started", p.name, id)

	for {
		task, ok := p.queue.Receive()
		if !ok {
			// Closed signal: queue drained, worker terminates
			p.logger.Debugf("pool %s: worker %d terminated", p.name, id)
			return
		}
		p.execute(id, task)
	}
}

// execute runs one task with panic containment at the loop boundary.
// A task fault is reported to the logger and observer and the worker
// keeps consuming; it never shrinks pool capacity.
func (p *defaultPool) execute(id int, task Task) {
	atomic.AddInt64(&p.inFlight, 1)
	p.observer.TaskStarted(task)
	start := time.Now()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("task %s panicked: %v\n%s", task.Name(), r, debug.Stack())
			}
		}()
		err = task.Execute(p.ctx)
	}()

	duration := time.Since(start)
	atomic.AddInt64(&p.inFlight, -1)

	if err != nil {
		atomic.AddInt64(&p.failed, 1)
		p.observer.TaskFailed(task, duration, err)
		p.logger.Errorf("pool %s: worker %d: task %s failed: %v", p.name, id, task.Name(), err)
		return
	}

	atomic.AddInt64(&p.completed, 1)
	p.observer.TaskCompleted(task, duration)
}

// Submit implements Pool interface
func (p *defaultPool) Submit(task Task) error {
	if task == nil {
		return ErrNilTask
	}

	if atomic.LoadInt32(&p.closed) == 1 {
		atomic.AddInt64(&p.rejected, 1)
		p.observer.TaskRejected(task, ErrPoolClosed)
		return ErrPoolClosed
	}

	if err := p.queue.Send(task); err != nil {
		// Lost the race with Shutdown closing the queue
		atomic.AddInt64(&p.rejected, 1)
		p.observer.TaskRejected(task, ErrPoolClosed)
		return ErrPoolClosed
	}

	atomic.AddInt64(&p.submitted, 1)
	return nil
}

// Shutdown implements Pool interface
func (p *defaultPool) Shutdown() {
	p.shutdownOnce.Do(func() {
		atomic.StoreInt32(&p.closed, 1)
		p.queue.Close()
		p.wg.Wait()
		// Cancel only after the drain completes: tasks run with a live
		// context for their whole lifetime, Shutdown never cancels them.
		p.cancel()
		p.logger.Infof("pool %s: shut down, %d tasks completed, %d failed",
			p.name, atomic.LoadInt64(&p.completed), atomic.LoadInt64(&p.failed))
	})
}

// Stats implements Pool interface
func (p *defaultPool) Stats() PoolStats {
	return PoolStats{
		Workers:        p.workers,
		QueuedTasks:    int64(p.queue.Len()),
		InFlightTasks:  atomic.LoadInt64(&p.inFlight),
		SubmittedTasks: atomic.LoadInt64(&p.submitted),
		CompletedTasks: atomic.LoadInt64(&p.completed),
		FailedTasks:    atomic.LoadInt64(&p.failed),
		RejectedTasks:  atomic.LoadInt64(&p.rejected),
	}
}

// Workers implements Pool interface
func (p *defaultPool) Workers() int {
	return p.workers
}

// IsRunning implements Pool interface
func (p *defaultPool) IsRunning() bool {
	return atomic.LoadInt32(&p.closed) == 0
}
