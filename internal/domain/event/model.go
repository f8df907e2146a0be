package event

import (
	"time"

	"github.com/ganot/peerconnect/internal/domain/project"
)

// EntryPoint names the entry point that produced an event
type EntryPoint string

const (
	EntryInstantiate EntryPoint = "instantiate"
	EntryExecute     EntryPoint = "execute"
)

// Event is the record of one successful state-changing invocation
type Event struct {
	ID           int64               `json:"id"`
	InvocationID string              `json:"invocation_id"`
	EntryPoint   EntryPoint          `json:"entry_point"`
	Method       string              `json:"method"`
	Caller       string              `json:"caller"`
	ProjectID    *string             `json:"project_id,omitempty"`
	Attributes   []project.Attribute `json:"attributes"`
	CreatedAt    time.Time           `json:"created_at"`
}
