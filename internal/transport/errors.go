package transport

import (
	"errors"

	"github.com/ganot/peerconnect/internal/address"
	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/ganot/peerconnect/internal/host"
)

// MapError maps a dispatch error to a JSON-RPC error code. Unknown errors
// map to ErrInternal and keep their message out of the response.
func MapError(err error) (int, string) {
	switch {
	case errors.Is(err, project.ErrUnauthorized):
		return ErrUnauthorizedCode, err.Error()
	case errors.Is(err, project.ErrProjectNotFound),
		errors.Is(err, collaboration.ErrRequestNotFound):
		return ErrNotFoundCode, err.Error()
	case errors.Is(err, project.ErrProjectExists),
		errors.Is(err, collaboration.ErrAlreadyRequested),
		errors.Is(err, host.ErrAlreadyInitialized):
		return ErrConflictCode, err.Error()
	case errors.Is(err, project.ErrNotInitialized):
		return ErrNotInitializedCode, err.Error()
	case errors.Is(err, host.ErrUnknownMethod):
		return ErrMethodNotFound, err.Error()
	case errors.Is(err, project.ErrInvalidStatus),
		errors.Is(err, contract.ErrInvalidMessage),
		errors.Is(err, contract.ErrMissingCaller),
		errors.Is(err, address.ErrInvalidAddress),
		errors.Is(err, collaboration.ErrOwnerRequest),
		errors.Is(err, collaboration.ErrInvalidStatus),
		errors.Is(err, collaboration.ErrInvalidInput),
		errors.Is(err, host.ErrInvalidParams):
		return ErrInvalidParams, err.Error()
	default:
		return ErrInternal, "internal error"
	}
}
