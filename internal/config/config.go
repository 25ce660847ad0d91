package config

import (
	"sql-batch-queue/internal/dispatcher"
	"sql-batch-queue/internal/partitioner"
	"sql-batch-queue/internal/queue"
	"sql-batch-queue/internal/queue_wrapper"
	"time"
)

// Config — полная конфигурация приложения.
type Config struct {
	Log       LogConfig       `mapstructure:"log" validate:"required"`
	Queue     QueueConfig     `mapstructure:"queue" validate:"required"`
	Sink      SinkConfig      `mapstructure:"sink" validate:"required"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Postgres  PostgresConfig  `mapstructure:"postgres"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
	Generator GeneratorConfig `mapstructure:"generator" validate:"required"`
	Shutdown  ShutdownConfig  `mapstructure:"shutdown" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

type QueueConfig struct {
	LogName              string `mapstructure:"log_name" validate:"required"`
	BatchSize            int    `mapstructure:"batch_size" validate:"gt=0"`
	MaxDelayMs           int    `mapstructure:"max_delay_ms" validate:"gt=0"`
	StatsPrintIntervalMs int    `mapstructure:"stats_print_interval_ms" validate:"gt=0"`
	Threads              int    `mapstructure:"threads" validate:"gt=0,lte=256"`
	// key сохраняет порядок записей одной сущности; round_robin и random его не сохраняют.
	PartitionMode        string `mapstructure:"partition_mode" validate:"oneof=key round_robin random"`
}

type SinkConfig struct {
	Type           string  `mapstructure:"type" validate:"oneof=kafka postgres"`
	Retry          bool    `mapstructure:"retry"`
	RetryAttempts  int     `mapstructure:"retry_attempts" validate:"gte=0"`
	RetryTimeoutMs int     `mapstructure:"retry_timeout_ms" validate:"gte=0"`
	RetryMultiply  float64 `mapstructure:"retry_multiply" validate:"gte=0"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers" validate:"omitempty,dive,hostname_port"`
	Topic   string   `mapstructure:"topic"`
}

type PostgresConfig struct {
	URL   string `mapstructure:"url" validate:"omitempty,url"`
	Table string `mapstructure:"table"`
}

// ShutdownConfig ограничивает время ожидания воркеров при остановке.
// Бюджет повторов приемника должен в него укладываться.
type ShutdownConfig struct {
	TimeoutMs int `mapstructure:"timeout_ms" validate:"gt=0"`
}

type MetricsConfig struct {
	Port int `mapstructure:"port" validate:"gt=0,lt=65536"`
}

type GeneratorConfig struct {
	Mode        string  `mapstructure:"mode" validate:"oneof=regular pick night"`
	Entities    int     `mapstructure:"entities" validate:"gt=0"`
	InvalidRate float64 `mapstructure:"invalid_rate" validate:"gte=0,lte=1"`
}

// QueueParams переводит конфигурацию в параметры набора очередей.
func (c *Config) QueueParams() queue_wrapper.Params {
	return queue_wrapper.Params{
		Queue: queue.Params{
			LogName:            c.Queue.LogName,
			BatchSize:          c.Queue.BatchSize,
			MaxDelay:           time.Duration(c.Queue.MaxDelayMs) * time.Millisecond,
			StatsPrintInterval: time.Duration(c.Queue.StatsPrintIntervalMs) * time.Millisecond,
		},
		Threads: c.Queue.Threads,
		Mode:    partitioner.Mode(c.Queue.PartitionMode),
	}
}

// ShutdownTimeout — время ожидания незавершенного сохранения при остановке.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.Shutdown.TimeoutMs) * time.Millisecond
}

// RetryConfig переводит настройки повторов приемника в параметры dispatcher.
func (c *Config) RetryConfig() dispatcher.Config {
	return dispatcher.Config{
		AttemptCount: c.Sink.RetryAttempts,
		StartTimeout: time.Duration(c.Sink.RetryTimeoutMs) * time.Millisecond,
		Multiply:     c.Sink.RetryMultiply,
	}
}
