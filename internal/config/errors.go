package config

import "errors"

var (
	ErrInvalidConfig    = errors.New("invalid config")
	ErrKafkaRequired    = errors.New("kafka.brokers and kafka.topic are required for kafka sink")
	ErrPostgresRequired = errors.New("postgres.url is required for postgres sink")
	ErrRetryBudget      = errors.New("sink retry budget exceeds shutdown.timeout_ms")
)
