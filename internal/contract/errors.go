package contract

import "github.com/juju/errors"

const (
	// ErrInvalidMessage indicates a message that does not select exactly one operation.
	ErrInvalidMessage = errors.ConstError("invalid message")
	// ErrMissingCaller indicates an invocation without a caller identity.
	ErrMissingCaller = errors.ConstError("missing caller")
)
