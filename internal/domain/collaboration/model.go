package collaboration

import (
	"time"

	"github.com/ganot/peerconnect/internal/domain/project"
)

// Status is the state of a collaboration request.
type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// DefaultRole is assigned when a requester names no role.
const DefaultRole = "Contributor"

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Request is one caller's request to join a project. A requester holds at
// most one request per project.
type Request struct {
	ID        int64     `json:"id"`
	ProjectID string    `json:"project_id"`
	Requester string    `json:"requester"`
	Role      string    `json:"role"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Membership is a project seen from a requester's side.
type Membership struct {
	Project project.Project `json:"project"`
	Role    string          `json:"role"`
	Status  Status          `json:"status"`
}

// UserProjects groups the live projects a user owns or has asked to join.
type UserProjects struct {
	Owned         []project.Project `json:"owned"`
	Collaborating []Membership      `json:"collaborating"`
}
