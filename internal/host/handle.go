package host

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/event"
)

// ListEventsParams filters the event log.
type ListEventsParams struct {
	ProjectID string `json:"project_id,omitempty"`
	Caller    string `json:"caller,omitempty"`
	Method    string `json:"method,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}

// CollaborationParams names a project and, for owner actions, a requester.
type CollaborationParams struct {
	ProjectID string `json:"project_id"`
	Requester string `json:"requester,omitempty"`
	Role      string `json:"role,omitempty"`
	Status    string `json:"status,omitempty"`
}

// UserProjectsParams names the user to look up; empty means the caller.
type UserProjectsParams struct {
	User string `json:"user,omitempty"`
}

// Handle dispatches a JSON-RPC method on behalf of caller. Params for
// instantiate, execute and query are the contract messages themselves.
func (h *Host) Handle(ctx context.Context, caller, method string, params json.RawMessage) (any, error) {
	switch method {
	case "instantiate":
		msg, err := contract.DecodeInstantiate(params)
		if err != nil {
			return nil, err
		}
		return h.Instantiate(ctx, caller, msg)
	case "execute":
		msg, err := contract.DecodeExecute(params)
		if err != nil {
			return nil, err
		}
		return h.Execute(ctx, caller, msg)
	case "query":
		msg, err := contract.DecodeQuery(params)
		if err != nil {
			return nil, err
		}
		return h.Query(ctx, msg)
	case "list_events":
		var req ListEventsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.ListEvents(ctx, event.ListOptions{
			ProjectID: req.ProjectID,
			Caller:    req.Caller,
			Method:    req.Method,
			Limit:     req.Limit,
			Offset:    req.Offset,
		})
	case "request_to_join":
		req, err := decodeCollaboration(params, false)
		if err != nil {
			return nil, err
		}
		return h.Collaborate(ctx, caller, req.ProjectID, req.Role)
	case "respond_to_request":
		req, err := decodeCollaboration(params, true)
		if err != nil {
			return nil, err
		}
		return h.RespondCollaboration(ctx, caller, req.ProjectID, req.Requester, collaboration.Status(req.Status))
	case "remove_collaborator":
		req, err := decodeCollaboration(params, true)
		if err != nil {
			return nil, err
		}
		return h.RemoveCollaborator(ctx, caller, req.ProjectID, req.Requester)
	case "list_collaborators":
		req, err := decodeCollaboration(params, false)
		if err != nil {
			return nil, err
		}
		return h.ListCollaborators(ctx, req.ProjectID)
	case "user_projects":
		var req UserProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if req.User == "" {
			req.User = caller
		}
		return h.UserProjects(ctx, req.User)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, method)
	}
}

func decodeCollaboration(params json.RawMessage, needRequester bool) (CollaborationParams, error) {
	var req CollaborationParams
	if err := decodeParams(params, &req); err != nil {
		return req, err
	}
	if req.ProjectID == "" {
		return req, fmt.Errorf("%w: missing project_id", ErrInvalidParams)
	}
	if needRequester && req.Requester == "" {
		return req, fmt.Errorf("%w: missing requester", ErrInvalidParams)
	}
	return req, nil
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}
