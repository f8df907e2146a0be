package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/peerconnect/internal/domain/project"
)

// Service handles event log operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new event service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Record logs the attributes of a response emitted by an entry point.
func (s *Service) Record(ctx context.Context, invocationID string, entry EntryPoint, caller string, resp *project.Response, at time.Time) (*Event, error) {
	if resp == nil || invocationID == "" {
		return nil, ErrInvalidInput
	}
	ev := &Event{
		InvocationID: invocationID,
		EntryPoint:   entry,
		Method:       resp.Method(),
		Caller:       caller,
		Attributes:   resp.Attributes,
		CreatedAt:    at,
	}
	if id, ok := resp.Attr("project_id"); ok {
		ev.ProjectID = &id
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = time.Now()
	}
	if err := s.repo.Log(ctx, ev); err != nil {
		return nil, fmt.Errorf("logging event: %w", err)
	}
	return ev, nil
}

// List returns recorded events, newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Event, error) {
	events, err := s.repo.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	if events == nil {
		events = []Event{}
	}
	return events, nil
}
