package partitioner

import "errors"

var (
	ErrInvalidKey   = errors.New("partition key function not found")
	ErrInvalidCount = errors.New("shard count must be positive")
	ErrInvalidMode  = errors.New("unknown partition mode")
)
