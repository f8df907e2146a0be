package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/peerconnect/internal/address"
	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/project"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
	cause        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.cause
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_projects to find valid ids", cause: err}
	case errors.Is(err, project.ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: err.Error(), RecoveryHint: "Only the owner (or the admin, for deletes) may do this", cause: err}
	case errors.Is(err, project.ErrNotInitialized):
		return &APIError{Code: "NOT_INITIALIZED", Message: err.Error(), RecoveryHint: "Run `peerconnect init` first", cause: err}
	case errors.Is(err, project.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: err.Error(), RecoveryHint: "Use Open, InProgress or Completed", cause: err}
	case errors.Is(err, project.ErrProjectExists):
		return &APIError{Code: "PROJECT_EXISTS", Message: err.Error(), cause: err}
	case errors.Is(err, collaboration.ErrRequestNotFound):
		return &APIError{Code: "REQUEST_NOT_FOUND", Message: err.Error(), RecoveryHint: "Call list_collaborators to see who asked", cause: err}
	case errors.Is(err, collaboration.ErrAlreadyRequested):
		return &APIError{Code: "ALREADY_REQUESTED", Message: err.Error(), cause: err}
	case errors.Is(err, collaboration.ErrOwnerRequest):
		return &APIError{Code: "OWNER_REQUEST", Message: err.Error(), cause: err}
	case errors.Is(err, collaboration.ErrInvalidStatus):
		return &APIError{Code: "INVALID_STATUS", Message: err.Error(), RecoveryHint: "Use Approved or Rejected", cause: err}
	case errors.Is(err, contract.ErrMissingCaller), errors.Is(err, address.ErrInvalidAddress),
		errors.Is(err, collaboration.ErrInvalidInput):
		return &APIError{Code: "INVALID_CALLER", Message: err.Error(), cause: err}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
