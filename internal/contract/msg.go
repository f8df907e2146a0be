package contract

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ganot/peerconnect/internal/domain/project"
)

// InstantiateMsg configures a fresh contract.
type InstantiateMsg struct {
	Admin *string `json:"admin,omitempty"`
}

type CreateProjectMsg struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	SkillsRequired []string `json:"skills_required"`
	IsPaid         bool     `json:"is_paid"`
}

type UpdateProjectStatusMsg struct {
	ProjectID string         `json:"project_id"`
	Status    project.Status `json:"status"`
}

type RequestCollaborationMsg struct {
	ProjectID    string `json:"project_id"`
	Collaborator string `json:"collaborator"`
}

type DeleteProjectMsg struct {
	ProjectID string `json:"project_id"`
}

// ExecuteMsg selects one state-changing operation. Exactly one field is set.
type ExecuteMsg struct {
	CreateProject        *CreateProjectMsg        `json:"CreateProject,omitempty"`
	UpdateProjectStatus  *UpdateProjectStatusMsg  `json:"UpdateProjectStatus,omitempty"`
	RequestCollaboration *RequestCollaborationMsg `json:"RequestCollaboration,omitempty"`
	DeleteProject        *DeleteProjectMsg        `json:"DeleteProject,omitempty"`
}

// Method returns the snake_case name of the selected operation.
func (m ExecuteMsg) Method() (string, error) {
	var names []string
	if m.CreateProject != nil {
		names = append(names, "create_project")
	}
	if m.UpdateProjectStatus != nil {
		names = append(names, "update_project_status")
	}
	if m.RequestCollaboration != nil {
		names = append(names, "request_collaboration")
	}
	if m.DeleteProject != nil {
		names = append(names, "delete_project")
	}
	return exactlyOne(names)
}

type GetProjectMsg struct {
	ProjectID string `json:"project_id"`
}

type ListProjectsMsg struct{}

// QueryMsg selects one read-only operation. Exactly one field is set.
type QueryMsg struct {
	GetProject   *GetProjectMsg   `json:"GetProject,omitempty"`
	ListProjects *ListProjectsMsg `json:"ListProjects,omitempty"`
}

// Method returns the snake_case name of the selected query.
func (m QueryMsg) Method() (string, error) {
	var names []string
	if m.GetProject != nil {
		names = append(names, "get_project")
	}
	if m.ListProjects != nil {
		names = append(names, "list_projects")
	}
	return exactlyOne(names)
}

// DecodeExecute parses an externally tagged execute message.
func DecodeExecute(data []byte) (ExecuteMsg, error) {
	var msg ExecuteMsg
	if err := decodeStrict(data, &msg); err != nil {
		return ExecuteMsg{}, err
	}
	if _, err := msg.Method(); err != nil {
		return ExecuteMsg{}, err
	}
	if err := requireFields(data, executeFields); err != nil {
		return ExecuteMsg{}, err
	}
	return msg, nil
}

// DecodeQuery parses an externally tagged query message.
func DecodeQuery(data []byte) (QueryMsg, error) {
	var msg QueryMsg
	if err := decodeStrict(data, &msg); err != nil {
		return QueryMsg{}, err
	}
	if _, err := msg.Method(); err != nil {
		return QueryMsg{}, err
	}
	if err := requireFields(data, queryFields); err != nil {
		return QueryMsg{}, err
	}
	return msg, nil
}

// DecodeInstantiate parses an instantiate message. Empty input means no admin override.
func DecodeInstantiate(data []byte) (InstantiateMsg, error) {
	var msg InstantiateMsg
	if len(data) == 0 {
		return msg, nil
	}
	if err := decodeStrict(data, &msg); err != nil {
		return InstantiateMsg{}, err
	}
	return msg, nil
}

func decodeStrict(data []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, project.ErrInvalidStatus) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return nil
}

// Every variant field is required; only InstantiateMsg.admin is optional.
var (
	executeFields = map[string][]string{
		"CreateProject":        {"title", "description", "skills_required", "is_paid"},
		"UpdateProjectStatus":  {"project_id", "status"},
		"RequestCollaboration": {"project_id", "collaborator"},
		"DeleteProject":        {"project_id"},
	}
	queryFields = map[string][]string{
		"GetProject":   {"project_id"},
		"ListProjects": nil,
	}
)

// requireFields rejects a decoded message whose variant omits a field or sets it to null.
func requireFields(data []byte, variants map[string][]string) error {
	var outer map[string]json.RawMessage
	if err := json.Unmarshal(data, &outer); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	for variant, body := range outer {
		fields := variants[variant]
		if len(fields) == 0 {
			continue
		}
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(body, &inner); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidMessage, variant, err)
		}
		for _, field := range fields {
			raw, ok := inner[field]
			if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
				return fmt.Errorf("%w: %s: missing field %q", ErrInvalidMessage, variant, field)
			}
		}
	}
	return nil
}

func exactlyOne(names []string) (string, error) {
	switch len(names) {
	case 1:
		return names[0], nil
	case 0:
		return "", fmt.Errorf("%w: no operation selected", ErrInvalidMessage)
	default:
		return "", fmt.Errorf("%w: multiple operations selected: %v", ErrInvalidMessage, names)
	}
}
