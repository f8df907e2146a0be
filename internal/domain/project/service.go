package project

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"time"
)

// Service is the project lifecycle engine. Every operation loads the slots it
// needs, validates against the in-memory copy and saves only after all checks pass.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(store Store, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{store: store, logger: logger}
}

// CreateRequest defines project creation inputs.
type CreateRequest struct {
	Title          string
	Description    string
	SkillsRequired []string
	IsPaid         bool
}

// Initialize writes the empty collection, a zero counter and the admin config.
func (s *Service) Initialize(ctx context.Context, admin string) error {
	if err := s.store.SaveProjects(ctx, []Project{}); err != nil {
		return fmt.Errorf("saving projects: %w", err)
	}
	if err := s.store.SaveCount(ctx, 0); err != nil {
		return fmt.Errorf("saving project count: %w", err)
	}
	if err := s.store.SaveConfig(ctx, Config{Admin: admin}); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	return nil
}

// Create appends a new Open project owned by caller.
func (s *Service) Create(ctx context.Context, caller string, blockTime time.Time, req CreateRequest) (*Response, error) {
	count, err := s.store.LoadCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading project count: %w", err)
	}
	next := count + 1
	id := NewID(next, blockTime, caller)

	projects, err := s.store.LoadProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	// Unreachable while the counter slot only moves forward.
	if indexOf(projects, id) >= 0 {
		return nil, alreadyExists(id)
	}

	skills := make([]string, len(req.SkillsRequired))
	copy(skills, req.SkillsRequired)

	projects = append(projects, Project{
		ID:             id,
		Title:          req.Title,
		Description:    req.Description,
		Owner:          caller,
		SkillsRequired: skills,
		Status:         StatusOpen,
		IsPaid:         req.IsPaid,
	})

	if err := s.store.SaveProjects(ctx, projects); err != nil {
		return nil, fmt.Errorf("saving projects: %w", err)
	}
	if err := s.store.SaveCount(ctx, next); err != nil {
		return nil, fmt.Errorf("saving project count: %w", err)
	}

	s.logger.Debug("project created", "project_id", id, "owner", caller, "is_paid", req.IsPaid)

	return NewResponse("create_project").
		Add("project_id", id).
		Add("is_paid", strconv.FormatBool(req.IsPaid)), nil
}

// UpdateStatus overwrites the status of a project. Only the owner may do so;
// any transition between known statuses is allowed.
func (s *Service) UpdateStatus(ctx context.Context, caller, id string, status Status) (*Response, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, string(status))
	}

	projects, err := s.store.LoadProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	idx := indexOf(projects, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	if projects[idx].Owner != caller {
		return nil, ErrUnauthorized
	}

	from := projects[idx].Status
	projects[idx].Status = status
	if err := s.store.SaveProjects(ctx, projects); err != nil {
		return nil, fmt.Errorf("saving projects: %w", err)
	}

	s.logger.Debug("project status updated", "project_id", id, "from", from, "to", status)

	return NewResponse("update_project_status").Add("project_id", id), nil
}

// RequestCollaboration records nothing; it only confirms the project exists
// and reports who asked for whom.
func (s *Service) RequestCollaboration(ctx context.Context, caller, id, collaborator string) (*Response, error) {
	projects, err := s.store.LoadProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	if indexOf(projects, id) < 0 {
		return nil, notFound(id)
	}

	return NewResponse("request_collaboration").
		Add("project_id", id).
		Add("requester", caller).
		Add("collaborator", collaborator), nil
}

// Delete removes a project. The admin and the owner may delete; deleted_by
// reports "admin" whenever the caller is the admin.
func (s *Service) Delete(ctx context.Context, caller, id string) (*Response, error) {
	projects, err := s.store.LoadProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}

	idx := indexOf(projects, id)
	if idx < 0 {
		return nil, notFound(id)
	}

	cfg, err := s.store.LoadConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	isAdmin := caller == cfg.Admin
	isOwner := projects[idx].Owner == caller
	if !isAdmin && !isOwner {
		return nil, ErrUnauthorized
	}

	projects = slices.Delete(projects, idx, idx+1)
	if err := s.store.SaveProjects(ctx, projects); err != nil {
		return nil, fmt.Errorf("saving projects: %w", err)
	}

	deletedBy := "owner"
	if isAdmin {
		deletedBy = "admin"
	}
	s.logger.Debug("project deleted", "project_id", id, "deleted_by", deletedBy)

	return NewResponse("delete_project").
		Add("project_id", id).
		Add("deleted_by", deletedBy), nil
}

func indexOf(projects []Project, id string) int {
	return slices.IndexFunc(projects, func(p Project) bool { return p.ID == id })
}
