package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/ganot/peerconnect/internal/domain/event"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func logEvent(t *testing.T, repo *EventRepository, method, caller string, projectID *string) *event.Event {
	t.Helper()
	ev := &event.Event{
		InvocationID: "inv-" + method,
		EntryPoint:   event.EntryExecute,
		Method:       method,
		Caller:       caller,
		ProjectID:    projectID,
		Attributes:   []project.Attribute{{Key: "method", Value: method}},
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Log(context.Background(), ev))
	return ev
}

func TestEventRepository_LogAndList(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	p1 := "p1"
	p2 := "p2"
	first := logEvent(t, repo, "create_project", "alice", &p1)
	require.NotZero(t, first.ID)
	logEvent(t, repo, "create_project", "bob", &p2)
	logEvent(t, repo, "delete_project", "carol", &p1)

	all, err := repo.List(ctx, event.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, "delete_project", all[0].Method)
	require.Equal(t, first.ID, all[2].ID)
	require.Equal(t, []project.Attribute{{Key: "method", Value: "create_project"}}, all[2].Attributes)
	require.Equal(t, "p1", *all[2].ProjectID)

	byProject, err := repo.List(ctx, event.ListOptions{ProjectID: "p1"})
	require.NoError(t, err)
	require.Len(t, byProject, 2)

	byCaller, err := repo.List(ctx, event.ListOptions{Caller: "bob"})
	require.NoError(t, err)
	require.Len(t, byCaller, 1)

	byMethod, err := repo.List(ctx, event.ListOptions{Method: "create_project", Limit: 1})
	require.NoError(t, err)
	require.Len(t, byMethod, 1)
	require.Equal(t, "bob", byMethod[0].Caller)

	paged, err := repo.List(ctx, event.ListOptions{Offset: 2})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	require.Equal(t, first.ID, paged[0].ID)
}

func TestEventRepository_NullProject(t *testing.T) {
	db := NewTestDB(t)
	repo := NewEventRepository(db)

	logEvent(t, repo, "instantiate", "carol", nil)

	events, err := repo.List(context.Background(), event.ListOptions{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	require.Nil(t, events[0].ProjectID)
}
