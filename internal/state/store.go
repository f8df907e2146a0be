// Package state maps the three persisted slots onto a key/value store.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/ganot/peerconnect/internal/repository"
)

// Slot keys.
const (
	KeyProjects     = "projects"
	KeyConfig       = "config"
	KeyProjectCount = "project_count"
)

// Store implements project.Store by JSON-encoding each slot under its own key.
type Store struct {
	kv repository.KV
}

var _ project.Store = (*Store)(nil)

// New creates a Store over kv.
func New(kv repository.KV) *Store {
	return &Store{kv: kv}
}

func (s *Store) LoadProjects(ctx context.Context) ([]project.Project, error) {
	var projects []project.Project
	if err := s.load(ctx, KeyProjects, &projects); err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []project.Project{}
	}
	return projects, nil
}

func (s *Store) SaveProjects(ctx context.Context, projects []project.Project) error {
	if projects == nil {
		projects = []project.Project{}
	}
	return s.save(ctx, KeyProjects, projects)
}

func (s *Store) LoadConfig(ctx context.Context) (project.Config, error) {
	var cfg project.Config
	if err := s.load(ctx, KeyConfig, &cfg); err != nil {
		return project.Config{}, err
	}
	return cfg, nil
}

func (s *Store) SaveConfig(ctx context.Context, cfg project.Config) error {
	return s.save(ctx, KeyConfig, cfg)
}

func (s *Store) LoadCount(ctx context.Context) (uint64, error) {
	var count uint64
	if err := s.load(ctx, KeyProjectCount, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *Store) SaveCount(ctx context.Context, count uint64) error {
	return s.save(ctx, KeyProjectCount, count)
}

// Initialized reports whether the config slot has been written.
func (s *Store) Initialized(ctx context.Context) (bool, error) {
	_, err := s.kv.Get(ctx, KeyConfig)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", KeyConfig, err)
	}
	return true, nil
}

func (s *Store) load(ctx context.Context, key string, out any) error {
	data, err := s.kv.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s: %w", key, project.ErrNotInitialized)
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", key, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding %s: %w", key, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, data); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
