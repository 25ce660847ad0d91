package queue

import "errors"

var (
	ErrInvalidBatchSize     = errors.New("batch size must be positive")
	ErrInvalidMaxDelay      = errors.New("max delay must be positive")
	ErrInvalidStatsInterval = errors.New("stats print interval must be positive")
	ErrNilSaveFn            = errors.New("save function not found")
	ErrNilScheduler         = errors.New("scheduler not found")
	ErrAlreadyInitialized   = errors.New("queue already initialized")
	ErrDestroyed            = errors.New("queue destroyed")
	ErrSavePanic            = errors.New("save function panicked")
	ErrPending              = errors.New("future is not resolved yet")
)
