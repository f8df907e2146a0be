package project

import (
	"fmt"

	"github.com/juju/errors"
)

const (
	// ErrProjectNotFound indicates the referenced project id is not in the collection.
	ErrProjectNotFound = errors.ConstError("project not found")
	// ErrUnauthorized indicates the caller lacks the required relationship to the project.
	ErrUnauthorized = errors.ConstError("Unauthorized")
	// ErrNotInitialized indicates a storage slot was never saved.
	ErrNotInitialized = errors.ConstError("not initialized")
	// ErrProjectExists indicates a generated id collided with a live project.
	ErrProjectExists = errors.ConstError("project already exists")
	// ErrInvalidStatus indicates an unknown project status.
	ErrInvalidStatus = errors.ConstError("invalid project status")
)

// idError carries the project id in the message while matching its kind with errors.Is.
type idError struct {
	kind errors.ConstError
	id   string
}

func (e *idError) Error() string {
	switch e.kind {
	case ErrProjectNotFound:
		return fmt.Sprintf("Project with ID %s not found", e.id)
	case ErrProjectExists:
		return fmt.Sprintf("Project with ID %s already exists", e.id)
	default:
		return fmt.Sprintf("%s: %s", e.kind, e.id)
	}
}

func (e *idError) Unwrap() error {
	return e.kind
}

func notFound(id string) error {
	return &idError{kind: ErrProjectNotFound, id: id}
}

func alreadyExists(id string) error {
	return &idError{kind: ErrProjectExists, id: id}
}
