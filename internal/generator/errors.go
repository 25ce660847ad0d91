package generator

import "errors"

var (
	ErrInvalidMode = errors.New("invalid mode")
	ErrInvalidRate = errors.New("invalid rate")
)
