package main

import (
	"context"
	"sql-batch-queue/internal/config"
	"sql-batch-queue/internal/dispatcher"
	"sql-batch-queue/internal/event"
	"sql-batch-queue/internal/queue"
	"sql-batch-queue/internal/sink"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// newSaveFn собирает функцию сохранения для выбранного приемника.
// Возвращаемая функция закрытия освобождает соединения приемника.
func newSaveFn(ctx context.Context, cfg *config.Config) (queue.SaveFn[event.TsKvEntry], func(), error) {
	var (
		saveFn    queue.SaveFn[event.TsKvEntry]
		closeSink func()
	)

	switch cfg.Sink.Type {
	case config.SinkPostgres:
		pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, sink.MapError(err)
		}

		saveFn = sink.NewPostgresSink(pool, sink.PostgresConfig{Table: cfg.Postgres.Table}).Save
		closeSink = pool.Close
	default:
		s := sink.NewKafkaSink(sink.KafkaConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})

		saveFn = s.Save
		closeSink = func() {
			if err := s.Close(); err != nil {
				zap.L().Error(err.Error())
			}
		}
	}

	if cfg.Sink.Retry {
		saveFn = dispatcher.NewDispatcherWithConfig(saveFn, cfg.RetryConfig()).Save
	}

	return saveFn, closeSink, nil
}
