package dispatcher

import (
	"errors"
	"time"
)

const (
	defaultBackoffMultiply     = 1.2
	defaultStartBackoffTimeout = 1 * time.Second
	defaultBackoffAttemptCount = 5
)

var (
	ErrBackoffTimeout = errors.New("backoff timeout")
)

// Config задает параметры повторных попыток.
type Config struct {
	AttemptCount int
	StartTimeout time.Duration
	Multiply     float64
}

func DefaultConfig() Config {
	return Config{
		AttemptCount: defaultBackoffAttemptCount,
		StartTimeout: defaultStartBackoffTimeout,
		Multiply:     defaultBackoffMultiply,
	}
}

func (c Config) withDefaults() Config {
	if c.AttemptCount <= 0 {
		c.AttemptCount = defaultBackoffAttemptCount
	}
	if c.StartTimeout <= 0 {
		c.StartTimeout = defaultStartBackoffTimeout
	}
	if c.Multiply < 1 {
		c.Multiply = defaultBackoffMultiply
	}
	return c
}

// Budget — наибольшее суммарное время всех попыток сохранения одной пачки.
func (c Config) Budget() time.Duration {
	c = c.withDefaults()

	var total time.Duration
	timeout := c.StartTimeout
	for range c.AttemptCount {
		total += timeout
		timeout = time.Duration(float64(timeout) * c.Multiply)
	}

	return total
}
