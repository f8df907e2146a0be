package project

import (
	"context"
	"fmt"
)

// Get fetches a project by ID.
func (s *Service) Get(ctx context.Context, id string) (*Project, error) {
	projects, err := s.store.LoadProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	idx := indexOf(projects, id)
	if idx < 0 {
		return nil, notFound(id)
	}
	proj := projects[idx]
	return &proj, nil
}

// List returns every live project in creation order.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	projects, err := s.store.LoadProjects(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading projects: %w", err)
	}
	if projects == nil {
		projects = []Project{}
	}
	return projects, nil
}
