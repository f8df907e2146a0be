package collaboration

import (
	"context"
	"time"
)

// Repository persists collaboration requests. Lookups by project and
// requester return ErrRequestNotFound when no row matches.
type Repository interface {
	Create(ctx context.Context, req *Request) error
	Get(ctx context.Context, projectID, requester string) (*Request, error)
	UpdateStatus(ctx context.Context, projectID, requester string, status Status, at time.Time) (*Request, error)
	Delete(ctx context.Context, projectID, requester string) (*Request, error)
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
	ListByProject(ctx context.Context, projectID string) ([]Request, error)
	ListByRequester(ctx context.Context, requester string) ([]Request, error)
}
