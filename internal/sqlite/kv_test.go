package sqlite

import (
	"context"
	"testing"

	"github.com/ganot/peerconnect/internal/repository"
	"github.com/stretchr/testify/require"
)

func TestKVStore_GetSet(t *testing.T) {
	db := NewTestDB(t)
	kv := NewKVStore(db)
	ctx := context.Background()

	_, err := kv.Get(ctx, "projects")
	require.Equal(t, repository.ErrNotFound, err)

	require.NoError(t, kv.Set(ctx, "projects", []byte(`[]`)))
	value, err := kv.Get(ctx, "projects")
	require.NoError(t, err)
	require.Equal(t, `[]`, string(value))

	// Set replaces the whole value
	require.NoError(t, kv.Set(ctx, "projects", []byte(`[{"id":"p1"}]`)))
	value, err = kv.Get(ctx, "projects")
	require.NoError(t, err)
	require.Equal(t, `[{"id":"p1"}]`, string(value))

	var rows int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM kv`).Scan(&rows))
	require.Equal(t, 1, rows)
}

func TestKVStore_EmptyKey(t *testing.T) {
	db := NewTestDB(t)
	err := NewKVStore(db).Set(context.Background(), "", []byte("x"))
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}
