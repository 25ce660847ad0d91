package scheduler

import "errors"

var (
	ErrClosed        = errors.New("executor closed")
	ErrInvalidPeriod = errors.New("invalid period")
	ErrTaskPanic     = errors.New("scheduled task panicked")
)
