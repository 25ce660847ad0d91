package queue_wrapper

import "errors"

var (
	ErrInvalidThreads = errors.New("threads must be positive")
)
