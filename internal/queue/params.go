package queue

import "time"

// Params описывает неизменяемые параметры очереди.
type Params struct {
	LogName            string
	BatchSize          int
	MaxDelay           time.Duration
	StatsPrintInterval time.Duration
}

// Validate проверяет, что все параметры находятся в допустимых границах.
func (p Params) Validate() error {
	if p.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if p.MaxDelay <= 0 {
		return ErrInvalidMaxDelay
	}
	if p.StatsPrintInterval <= 0 {
		return ErrInvalidStatsInterval
	}
	return nil
}
