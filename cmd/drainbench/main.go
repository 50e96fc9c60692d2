package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/drainio/drainpool/pkg/config"
	"github.com/drainio/drainpool/pkg/failfast"
	"github.com/drainio/drainpool/pkg/log"
	"github.com/drainio/drainpool/pkg/observability/prometheus"
	"github.com/drainio/drainpool/pkg/observability/tracing"
	"github.com/drainio/drainpool/pkg/pool"
)

// benchConfig drives the benchmark harness. Every field can be overridden
// with DRAINBENCH_SECTION_FIELD environment variables.
type benchConfig struct {
	Pool struct {
		Name    string `yaml:"name"`
		Workers int    `yaml:"workers"`
	} `yaml:"pool"`
	Bench struct {
		Tasks       int `yaml:"tasks"`
		WarmupTasks int `yaml:"warmup_tasks"`
	} `yaml:"bench"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Addr    string `yaml:"addr"`
	} `yaml:"metrics"`
	Tracing struct {
		Enabled bool `yaml:"enabled"`
	} `yaml:"tracing"`
	LogLevel string `yaml:"log_level"`
}

func defaultBenchConfig() benchConfig {
	var cfg benchConfig
	cfg.Pool.Name = "drainbench"
	cfg.Pool.Workers = 8
	cfg.Bench.Tasks = 100000
	cfg.Bench.WarmupTasks = 100
	cfg.Metrics.Addr = ":9090"
	cfg.LogLevel = "info"
	return cfg
}

// checksum is the benchmark payload: a fixed-cost arithmetic loop so run
// times are comparable across worker counts.
func checksum(n uint64) uint64 {
	var result uint64
	for i := uint64(0); i < 1000; i++ {
		result += n * i
	}
	return result
}

// runBench creates a fresh pool, pushes taskCount checksum tasks through it,
// and returns the wall-clock time from first submit to full drain.
func runBench(ctx context.Context, cfg benchConfig, taskCount int, logger log.Logger, observer pool.Observer) (time.Duration, uint64) {
	p, err := pool.New(ctx, pool.Config{
		Name:     cfg.Pool.Name,
		Workers:  cfg.Pool.Workers,
		Logger:   logger,
		Observer: observer,
	})
	failfast.Err(err)

	var counter uint64

	start := time.Now()
	for i := 0; i < taskCount; i++ {
		n := uint64(i)
		err := p.Submit(pool.TaskFunc(func(context.Context) error {
			atomic.AddUint64(&counter, checksum(n))
			return nil
		}))
		failfast.Err(err)
	}
	p.Shutdown()
	elapsed := time.Since(start)

	return elapsed, atomic.LoadUint64(&counter)
}

func main() {
	configPath := flag.String("config", "", "path to YAML/JSON config file")
	flag.Parse()

	cfg := defaultBenchConfig()
	if *configPath != "" {
		failfast.Err(config.LoadWithEnv(*configPath, "DRAINBENCH", &cfg))
	} else {
		failfast.Err(config.ApplyEnvOverrides("DRAINBENCH", &cfg))
	}
	failfast.Err(config.Validate(&cfg,
		config.Required("Pool.Name"),
		config.IntRange("Pool.Workers", 1, 4096),
		config.IntRange("Bench.Tasks", 1, 100000000),
	))

	logger := log.NewDefaultLogger()
	logger.SetLevel(log.ParseLevel(cfg.LogLevel))

	ctx := context.Background()

	observers := []pool.Observer{}

	var metrics *prometheus.PoolMetrics
	if cfg.Metrics.Enabled {
		metrics = prometheus.NewPoolMetrics(cfg.Pool.Name)
		observers = append(observers, metrics)
		go func() {
			if err := metrics.Serve(cfg.Metrics.Addr); err != nil {
				logger.Errorf("metrics server failed: %v", err)
			}
		}()
		logger.Infof("serving metrics on %s/metrics", cfg.Metrics.Addr)
	}

	if cfg.Tracing.Enabled {
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
		failfast.Err(err)
		tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
		otel.SetTracerProvider(tp)
		defer func() {
			if err := tp.Shutdown(ctx); err != nil {
				logger.Errorf("tracer provider shutdown failed: %v", err)
			}
		}()
		observers = append(observers, tracing.NewTaskTracer(cfg.Pool.Name))
	}

	observer := pool.Observer(pool.NopObserver{})
	if len(observers) > 0 {
		observer = pool.MultiObserver(observers...)
	}

	// Warm-up pool, discarded
	if cfg.Bench.WarmupTasks > 0 {
		_, _ = runBench(ctx, cfg, cfg.Bench.WarmupTasks, logger, pool.NopObserver{})
	}

	elapsed, finalCount := runBench(ctx, cfg, cfg.Bench.Tasks, logger, observer)

	fmt.Printf("%.6f\n", elapsed.Seconds())
	logger.Infof("final count: %d (%d tasks, %d workers)", finalCount, cfg.Bench.Tasks, cfg.Pool.Workers)

	if cfg.Metrics.Enabled {
		logger.Info("benchmark done, metrics still being served; Ctrl+C to exit")
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
	}
}
