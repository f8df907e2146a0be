package event

import "errors"

// ErrInvalidInput indicates an event that cannot be recorded.
var ErrInvalidInput = errors.New("invalid event input")
