package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sql-batch-queue/internal/config"
	"sql-batch-queue/internal/event"
	"sql-batch-queue/internal/generator"
	"sql-batch-queue/internal/logger"
	"sql-batch-queue/internal/queue_metrics"
	"sql-batch-queue/internal/queue_wrapper"
	"sql-batch-queue/internal/scheduler"
	"syscall"
	"time"

	"go.uber.org/zap"
)

const configPathEnv = "SQLQUEUE_CONFIG"

func main() {
	cfg, err := config.Load(os.Getenv(configPathEnv))
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal(err.Error())
	}

	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		zap.Must(zap.NewProduction()).Fatal(err.Error())
	}
	zap.ReplaceGlobals(log)
	defer func() {
		_ = log.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := queue_metrics.NewMetrics()

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Metrics.Port),
		Handler: mux,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal(err.Error())
		}
	}()

	saveFn, closeSink, err := newSaveFn(ctx, cfg)
	if err != nil {
		zap.L().Fatal(err.Error())
	}
	defer closeSink()

	exec := scheduler.NewExecutor()
	defer exec.Close()

	queues, err := queue_wrapper.NewWrapper[event.TsKvEntry](cfg.QueueParams(), func(e event.TsKvEntry) string {
		return e.EntityID.String()
	})
	if err != nil {
		zap.L().Fatal(err.Error())
	}

	if err := metrics.CollectQueues(queues); err != nil {
		zap.L().Fatal(err.Error())
	}

	if err := queues.Init(ctx, exec, saveFn); err != nil {
		zap.L().Fatal(err.Error())
	}

	gen := generator.NewGenerator(cfg.Generator.Entities)
	if err := gen.SetMode(generator.Mode(cfg.Generator.Mode)); err != nil {
		zap.L().Fatal(err.Error())
	}
	if err := gen.SetInvalidRate(cfg.Generator.InvalidRate); err != nil {
		zap.L().Fatal(err.Error())
	}

	if err := metrics.CollectGenerator(gen); err != nil {
		zap.L().Fatal(err.Error())
	}

	go func() {
		<-ctx.Done()
		gen.Close()
	}()

	zap.L().Info(
		"sqlqueue started",
		zap.String("sink", cfg.Sink.Type),
		zap.Int("threads", cfg.Queue.Threads),
		zap.Int("batch_size", cfg.Queue.BatchSize),
	)

	for entry := range gen.Listen() {
		if entry.Meta.IsInvalid {
			zap.L().Debug("skip invalid entry", zap.String("entity_id", entry.Entry.EntityID.String()))
			continue
		}

		future := queues.Add(entry.Entry)
		go waitSaved(ctx, entry.Entry, future.Wait)
	}

	shutdown(queues, server, cfg.ShutdownTimeout())
}

func waitSaved(ctx context.Context, entry event.TsKvEntry, wait func(context.Context) error) {
	err := wait(ctx)
	if errors.Is(err, context.Canceled) {
		return
	}

	zap.L().Debug(
		"entry saved",
		zap.String("entity_id", entry.EntityID.String()),
		zap.String("key", entry.Key),
		zap.Bool("success", err == nil),
	)
}

// shutdown останавливает воркеры. Сохранение, начатое до остановки, не прерывается,
// поэтому ожидание ограничено timeout, а не отменой контекста.
func shutdown(queues *queue_wrapper.Wrapper[event.TsKvEntry], server *http.Server, timeout time.Duration) {
	zap.L().Info("shutting down", zap.Int("unsaved", queues.Len()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	queues.Destroy()
	if err := queues.Wait(shutdownCtx); err != nil {
		zap.L().Warn(
			"shutdown is waiting on an in-flight save",
			zap.Duration("timeout", timeout),
			zap.Error(err),
		)
	}

	if err := server.Shutdown(shutdownCtx); err != nil {
		zap.L().Error(err.Error())
	}
}
