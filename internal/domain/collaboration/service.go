// Package collaboration tracks requests to join projects. It sits beside the
// contract state: requests never change a project, and the project itself is
// resolved by the caller before every operation.
package collaboration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ganot/peerconnect/internal/domain/project"
)

// Service handles collaboration requests.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new collaboration service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// Request files a Pending request by caller to join proj.
func (s *Service) Request(ctx context.Context, caller string, proj project.Project, role string, at time.Time) (*Request, error) {
	if caller == "" {
		return nil, ErrInvalidInput
	}
	if proj.Owner == caller {
		return nil, ErrOwnerRequest
	}

	existing, err := s.repo.Get(ctx, proj.ID, caller)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w (status %s)", ErrAlreadyRequested, existing.Status)
	case !errors.Is(err, ErrRequestNotFound):
		return nil, fmt.Errorf("loading collaboration request: %w", err)
	}

	role = strings.TrimSpace(role)
	if role == "" {
		role = DefaultRole
	}
	req := &Request{
		ProjectID: proj.ID,
		Requester: caller,
		Role:      role,
		Status:    StatusPending,
		CreatedAt: at,
		UpdatedAt: at,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, fmt.Errorf("creating collaboration request: %w", err)
	}

	s.logger.Debug("collaboration requested", "project_id", proj.ID, "requester", caller, "role", role)
	return req, nil
}

// Respond approves or rejects requester's request. Only the owner may respond.
func (s *Service) Respond(ctx context.Context, caller string, proj project.Project, requester string, status Status, at time.Time) (*Request, error) {
	if status != StatusApproved && status != StatusRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}
	if proj.Owner != caller {
		return nil, project.ErrUnauthorized
	}

	req, err := s.repo.UpdateStatus(ctx, proj.ID, requester, status, at)
	if err != nil {
		return nil, fmt.Errorf("updating collaboration request: %w", err)
	}

	s.logger.Debug("collaboration request answered", "project_id", proj.ID, "requester", requester, "status", status)
	return req, nil
}

// Remove deletes requester's request or membership. Only the owner may remove.
func (s *Service) Remove(ctx context.Context, caller string, proj project.Project, requester string) (*Request, error) {
	if proj.Owner != caller {
		return nil, project.ErrUnauthorized
	}

	req, err := s.repo.Delete(ctx, proj.ID, requester)
	if err != nil {
		return nil, fmt.Errorf("removing collaborator: %w", err)
	}

	s.logger.Debug("collaborator removed", "project_id", proj.ID, "requester", requester)
	return req, nil
}

// Forget drops every request on a deleted project.
func (s *Service) Forget(ctx context.Context, projectID string) error {
	n, err := s.repo.DeleteByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("dropping collaboration requests: %w", err)
	}
	if n > 0 {
		s.logger.Debug("collaboration requests dropped", "project_id", projectID, "count", n)
	}
	return nil
}

// ListByProject returns the requests filed against projectID, oldest first.
func (s *Service) ListByProject(ctx context.Context, projectID string) ([]Request, error) {
	reqs, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing collaboration requests: %w", err)
	}
	if reqs == nil {
		reqs = []Request{}
	}
	return reqs, nil
}

// UserProjects splits the live projects into those user owns and those user
// has asked to join. Requests on projects missing from projects are skipped.
func (s *Service) UserProjects(ctx context.Context, user string, projects []project.Project) (*UserProjects, error) {
	out := &UserProjects{Owned: []project.Project{}, Collaborating: []Membership{}}
	byID := make(map[string]project.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
		if p.Owner == user {
			out.Owned = append(out.Owned, p)
		}
	}

	reqs, err := s.repo.ListByRequester(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("listing collaboration requests: %w", err)
	}
	for _, req := range reqs {
		p, ok := byID[req.ProjectID]
		if !ok {
			continue
		}
		out.Collaborating = append(out.Collaborating, Membership{Project: p, Role: req.Role, Status: req.Status})
	}
	return out, nil
}
