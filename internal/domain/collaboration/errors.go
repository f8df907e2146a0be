package collaboration

import "github.com/juju/errors"

const (
	// ErrRequestNotFound indicates no request exists for the project and requester.
	ErrRequestNotFound = errors.ConstError("collaboration request not found")
	// ErrAlreadyRequested indicates the requester already has a request on the project.
	ErrAlreadyRequested = errors.ConstError("you have already requested to join this project")
	// ErrOwnerRequest indicates the owner tried to join their own project.
	ErrOwnerRequest = errors.ConstError("you are the owner of this project")
	// ErrInvalidStatus indicates an unknown request status.
	ErrInvalidStatus = errors.ConstError("invalid collaboration status")
	// ErrInvalidInput indicates a request missing its project or requester.
	ErrInvalidInput = errors.ConstError("invalid collaboration input")
)
