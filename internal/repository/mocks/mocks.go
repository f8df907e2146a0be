package mocks

import (
	"context"
	"time"

	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/event"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/stretchr/testify/mock"
)

// KV is a mock for repository.KV.
type KV struct {
	mock.Mock
}

func (m *KV) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if value, ok := args.Get(0).([]byte); ok {
		return value, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *KV) Set(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// ProjectStore is a mock for project.Store.
type ProjectStore struct {
	mock.Mock
}

func (m *ProjectStore) LoadProjects(ctx context.Context) ([]project.Project, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]project.Project); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectStore) SaveProjects(ctx context.Context, projects []project.Project) error {
	args := m.Called(ctx, projects)
	return args.Error(0)
}

func (m *ProjectStore) LoadConfig(ctx context.Context) (project.Config, error) {
	args := m.Called(ctx)
	return args.Get(0).(project.Config), args.Error(1)
}

func (m *ProjectStore) SaveConfig(ctx context.Context, cfg project.Config) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *ProjectStore) LoadCount(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *ProjectStore) SaveCount(ctx context.Context, count uint64) error {
	args := m.Called(ctx, count)
	return args.Error(0)
}

// EventRepository is a mock for repository.EventRepository.
type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Log(ctx context.Context, entry *event.Event) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *EventRepository) List(ctx context.Context, opts event.ListOptions) ([]event.Event, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]event.Event); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

// APIKeyRepository is a mock for repository.APIKeyRepository.
type APIKeyRepository struct {
	mock.Mock
}

func (m *APIKeyRepository) Add(ctx context.Context, token, caller, description string) error {
	args := m.Called(ctx, token, caller, description)
	return args.Error(0)
}

func (m *APIKeyRepository) ResolveCaller(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

// CollaborationRepository is a mock for repository.CollaborationRepository.
type CollaborationRepository struct {
	mock.Mock
}

func (m *CollaborationRepository) Create(ctx context.Context, req *collaboration.Request) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *CollaborationRepository) Get(ctx context.Context, projectID, requester string) (*collaboration.Request, error) {
	args := m.Called(ctx, projectID, requester)
	if req, ok := args.Get(0).(*collaboration.Request); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CollaborationRepository) UpdateStatus(ctx context.Context, projectID, requester string, status collaboration.Status, at time.Time) (*collaboration.Request, error) {
	args := m.Called(ctx, projectID, requester, status, at)
	if req, ok := args.Get(0).(*collaboration.Request); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CollaborationRepository) Delete(ctx context.Context, projectID, requester string) (*collaboration.Request, error) {
	args := m.Called(ctx, projectID, requester)
	if req, ok := args.Get(0).(*collaboration.Request); ok {
		return req, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CollaborationRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	args := m.Called(ctx, projectID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *CollaborationRepository) ListByProject(ctx context.Context, projectID string) ([]collaboration.Request, error) {
	args := m.Called(ctx, projectID)
	if list, ok := args.Get(0).([]collaboration.Request); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *CollaborationRepository) ListByRequester(ctx context.Context, requester string) ([]collaboration.Request, error) {
	args := m.Called(ctx, requester)
	if list, ok := args.Get(0).([]collaboration.Request); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
