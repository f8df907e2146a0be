package project

import "context"

// Store provides typed access to the persisted slots.
// Load methods return ErrNotInitialized when the slot was never saved.
type Store interface {
	LoadProjects(ctx context.Context) ([]Project, error)
	SaveProjects(ctx context.Context, projects []Project) error
	LoadConfig(ctx context.Context) (Config, error)
	SaveConfig(ctx context.Context, cfg Config) error
	LoadCount(ctx context.Context) (uint64, error)
	SaveCount(ctx context.Context, count uint64) error
}
