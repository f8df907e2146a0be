package host

import "github.com/juju/errors"

const (
	// ErrAlreadyInitialized is returned by a second instantiate.
	ErrAlreadyInitialized = errors.ConstError("contract already initialized")
	// ErrUnknownMethod indicates a dispatch method the host does not serve.
	ErrUnknownMethod = errors.ConstError("unknown method")
	// ErrInvalidParams indicates params that could not be decoded.
	ErrInvalidParams = errors.ConstError("invalid params")
)
