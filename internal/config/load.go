package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const envPrefix = "SQLQUEUE"

var defaults = map[string]any{
	"log.level": "info",

	"queue.log_name":                "ts",
	"queue.batch_size":              1000,
	"queue.max_delay_ms":            100,
	"queue.stats_print_interval_ms": 10_000,
	"queue.threads":                 4,
	"queue.partition_mode":          "key",

	"sink.type":             "kafka",
	"sink.retry":            false,
	"sink.retry_attempts":   0,
	"sink.retry_timeout_ms": 0,
	"sink.retry_multiply":   0.0,

	"kafka.brokers": []string{"localhost:9092"},
	"kafka.topic":   "ts_kv",

	"postgres.url":   "",
	"postgres.table": "ts_kv",

	"metrics.port": 8090,

	"generator.mode":         "regular",
	"generator.entities":     100,
	"generator.invalid_rate": 0.0,

	"shutdown.timeout_ms": 10_000,
}

// Load читает конфигурацию из значений по умолчанию, файла path (если задан)
// и переменных окружения с префиксом SQLQUEUE_. Переменные окружения имеют приоритет.
func Load(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate проверяет теги validate и секцию выбранного приемника.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	switch c.Sink.Type {
	case SinkKafka:
		if len(c.Kafka.Brokers) == 0 || c.Kafka.Topic == "" {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrKafkaRequired)
		}
	case SinkPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, ErrPostgresRequired)
		}
	}

	if c.Sink.Retry {
		if budget := c.RetryConfig().Budget(); budget >= c.ShutdownTimeout() {
			return fmt.Errorf("%w: %w: %s >= %s", ErrInvalidConfig, ErrRetryBudget, budget, c.ShutdownTimeout())
		}
	}

	return nil
}
