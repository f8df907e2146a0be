package repository

import (
	"context"

	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/event"
)

// KV is an opaque key/value store. Each Set replaces the whole value.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// EventRepository manages event log persistence
type EventRepository interface {
	Log(ctx context.Context, entry *event.Event) error
	List(ctx context.Context, opts event.ListOptions) ([]event.Event, error)
}

// APIKeyRepository maps bearer tokens to caller identities
type APIKeyRepository interface {
	Add(ctx context.Context, token, caller, description string) error
	ResolveCaller(ctx context.Context, token string) (string, error)
}

// CollaborationRepository manages collaboration request persistence
type CollaborationRepository interface {
	collaboration.Repository
}
