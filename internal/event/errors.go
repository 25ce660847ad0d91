package event

import "errors"

var (
	ErrNoEntity     = errors.New("entity id is empty")
	ErrEmptyKey     = errors.New("key is empty")
	ErrInvalidValue = errors.New("entry must hold exactly one valid value")
)
