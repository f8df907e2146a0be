package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/event"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/ganot/peerconnect/internal/host"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type runtimeStub struct {
	executeFn func(context.Context, string, contract.ExecuteMsg) (*project.Response, error)
	queryFn   func(context.Context, contract.QueryMsg) (any, error)
	eventsFn  func(context.Context, event.ListOptions) ([]event.Event, error)

	collaborateFn func(ctx context.Context, caller, projectID, role string) (*collaboration.Request, error)
	respondFn     func(ctx context.Context, caller, projectID, requester string, status collaboration.Status) (*collaboration.Request, error)
	removeFn      func(ctx context.Context, caller, projectID, requester string) (*collaboration.Request, error)
	listFn        func(ctx context.Context, projectID string) ([]collaboration.Request, error)
	userFn        func(ctx context.Context, user string) (*collaboration.UserProjects, error)
}

func (r runtimeStub) Execute(ctx context.Context, caller string, msg contract.ExecuteMsg) (*project.Response, error) {
	return r.executeFn(ctx, caller, msg)
}
func (r runtimeStub) Query(ctx context.Context, msg contract.QueryMsg) (any, error) {
	return r.queryFn(ctx, msg)
}
func (r runtimeStub) ListEvents(ctx context.Context, opts event.ListOptions) ([]event.Event, error) {
	return r.eventsFn(ctx, opts)
}
func (r runtimeStub) Collaborate(ctx context.Context, caller, projectID, role string) (*collaboration.Request, error) {
	return r.collaborateFn(ctx, caller, projectID, role)
}
func (r runtimeStub) RespondCollaboration(ctx context.Context, caller, projectID, requester string, status collaboration.Status) (*collaboration.Request, error) {
	return r.respondFn(ctx, caller, projectID, requester, status)
}
func (r runtimeStub) RemoveCollaborator(ctx context.Context, caller, projectID, requester string) (*collaboration.Request, error) {
	return r.removeFn(ctx, caller, projectID, requester)
}
func (r runtimeStub) ListCollaborators(ctx context.Context, projectID string) ([]collaboration.Request, error) {
	return r.listFn(ctx, projectID)
}
func (r runtimeStub) UserProjects(ctx context.Context, user string) (*collaboration.UserProjects, error) {
	return r.userFn(ctx, user)
}

func connect(t *testing.T, rt Runtime) *sdkmcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	server := NewServer(Config{
		Runtime:       rt,
		DefaultCaller: "alice",
		TransportMode: "stdio",
	})
	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	return result
}

func textOf(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	t.Fatalf("no text content")
	return ""
}

func TestTools_CreateProjectUsesDefaultCaller(t *testing.T) {
	var gotCaller string
	var gotMsg contract.ExecuteMsg
	var gotInvocation bool
	session := connect(t, runtimeStub{
		executeFn: func(ctx context.Context, caller string, msg contract.ExecuteMsg) (*project.Response, error) {
			gotCaller = caller
			gotMsg = msg
			_, gotInvocation = host.InvocationIDFromContext(ctx)
			return project.NewResponse("create_project").Add("project_id", "proj-1-1-alice").Add("is_paid", "true"), nil
		},
	})

	result := callTool(t, session, "create_project", map[string]any{
		"title":           "Build API",
		"skills_required": []string{"go"},
		"is_paid":         true,
	})
	require.False(t, result.IsError)
	require.Equal(t, "alice", gotCaller)
	require.NotNil(t, gotMsg.CreateProject)
	require.Equal(t, "Build API", gotMsg.CreateProject.Title)
	require.Equal(t, []string{"go"}, gotMsg.CreateProject.SkillsRequired)
	require.True(t, gotMsg.CreateProject.IsPaid)
	require.False(t, gotInvocation)

	var out responseOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &out))
	require.Equal(t, "method", out.Attributes[0].Key)
	require.Equal(t, "create_project", out.Attributes[0].Value)
}

func TestTools_ErrorsAreToolErrors(t *testing.T) {
	session := connect(t, runtimeStub{
		executeFn: func(context.Context, string, contract.ExecuteMsg) (*project.Response, error) {
			return nil, project.ErrUnauthorized
		},
		queryFn: func(context.Context, contract.QueryMsg) (any, error) {
			return nil, project.ErrNotInitialized
		},
	})

	result := callTool(t, session, "delete_project", map[string]any{"project_id": "proj-1"})
	require.True(t, result.IsError)
	require.Contains(t, textOf(t, result), "UNAUTHORIZED")

	result = callTool(t, session, "list_projects", map[string]any{})
	require.True(t, result.IsError)
	require.Contains(t, textOf(t, result), "NOT_INITIALIZED")
}

func TestTools_Queries(t *testing.T) {
	proj := project.Project{ID: "proj-1", Title: "t", Owner: "alice", SkillsRequired: []string{}, Status: project.StatusOpen}
	pid := proj.ID
	session := connect(t, runtimeStub{
		queryFn: func(_ context.Context, msg contract.QueryMsg) (any, error) {
			if msg.GetProject != nil {
				require.Equal(t, "proj-1", msg.GetProject.ProjectID)
				return &proj, nil
			}
			return []project.Project{proj}, nil
		},
		eventsFn: func(_ context.Context, opts event.ListOptions) ([]event.Event, error) {
			require.Equal(t, "proj-1", opts.ProjectID)
			require.Equal(t, 5, opts.Limit)
			return []event.Event{{ID: 1, InvocationID: "inv", EntryPoint: event.EntryExecute, Method: "create_project", Caller: "alice", ProjectID: &pid, Attributes: []project.Attribute{{Key: "method", Value: "create_project"}}}}, nil
		},
	})

	var one projectOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, callTool(t, session, "get_project", map[string]any{"project_id": "proj-1"}))), &one))
	require.Equal(t, proj, one.Project)

	var many projectsOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, callTool(t, session, "list_projects", map[string]any{}))), &many))
	require.Len(t, many.Projects, 1)

	var events eventsOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, callTool(t, session, "list_events", map[string]any{"project_id": "proj-1", "limit": 5}))), &events))
	require.Len(t, events.Events, 1)
	require.Equal(t, "proj-1", events.Events[0].ProjectID)
}

func TestMapError(t *testing.T) {
	require.Nil(t, MapError(nil))
	require.Nil(t, MapError(context.Canceled))

	apiErr := MapError(project.ErrProjectNotFound)
	require.Equal(t, "PROJECT_NOT_FOUND", apiErr.Code)
	require.ErrorIs(t, apiErr, project.ErrProjectNotFound)

	require.Equal(t, "INVALID_STATUS", MapError(project.ErrInvalidStatus).Code)
	require.Equal(t, "REQUEST_NOT_FOUND", MapError(collaboration.ErrRequestNotFound).Code)
	require.Equal(t, "ALREADY_REQUESTED", MapError(collaboration.ErrAlreadyRequested).Code)
	require.Equal(t, "OWNER_REQUEST", MapError(collaboration.ErrOwnerRequest).Code)

	notInit := fmt.Errorf("projects: %w", project.ErrNotInitialized)
	require.Equal(t, notInit.Error(), MapError(notInit).Message)
	require.Equal(t, "Unauthorized", MapError(project.ErrUnauthorized).Message)
}

func TestTools_Collaboration(t *testing.T) {
	proj := project.Project{ID: "proj-1", Title: "t", Owner: "alice", SkillsRequired: []string{}, Status: project.StatusOpen}
	at := time.Unix(1700000000, 0)
	var gotCaller, gotRole string
	var gotStatus collaboration.Status
	session := connect(t, runtimeStub{
		collaborateFn: func(_ context.Context, caller, projectID, role string) (*collaboration.Request, error) {
			gotCaller, gotRole = caller, role
			return &collaboration.Request{ProjectID: projectID, Requester: caller, Role: collaboration.DefaultRole, Status: collaboration.StatusPending, UpdatedAt: at}, nil
		},
		respondFn: func(_ context.Context, caller, projectID, requester string, status collaboration.Status) (*collaboration.Request, error) {
			gotStatus = status
			if caller != proj.Owner {
				return nil, project.ErrUnauthorized
			}
			return &collaboration.Request{ProjectID: projectID, Requester: requester, Role: "Designer", Status: status, UpdatedAt: at}, nil
		},
		removeFn: func(context.Context, string, string, string) (*collaboration.Request, error) {
			return nil, collaboration.ErrRequestNotFound
		},
		listFn: func(_ context.Context, projectID string) ([]collaboration.Request, error) {
			return []collaboration.Request{{ProjectID: projectID, Requester: "bob", Role: "Designer", Status: collaboration.StatusApproved, UpdatedAt: at}}, nil
		},
		userFn: func(_ context.Context, user string) (*collaboration.UserProjects, error) {
			require.Equal(t, "alice", user)
			return &collaboration.UserProjects{Owned: []project.Project{proj}, Collaborating: []collaboration.Membership{}}, nil
		},
	})

	var joined requestOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, callTool(t, session, "request_to_join", map[string]any{"project_id": "proj-1"}))), &joined))
	require.Equal(t, "alice", gotCaller)
	require.Empty(t, gotRole)
	require.Equal(t, "Pending", joined.Status)
	require.Equal(t, "2023-11-14T22:13:20Z", joined.UpdatedAt)

	var answered requestOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, callTool(t, session, "respond_to_request", map[string]any{
		"project_id": "proj-1", "requester": "bob", "status": "Approved",
	}))), &answered))
	require.Equal(t, collaboration.StatusApproved, gotStatus)
	require.Equal(t, "Approved", answered.Status)

	result := callTool(t, session, "remove_collaborator", map[string]any{"project_id": "proj-1", "requester": "dave"})
	require.True(t, result.IsError)
	require.Contains(t, textOf(t, result), "REQUEST_NOT_FOUND")

	var listed requestsOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, callTool(t, session, "list_collaborators", map[string]any{"project_id": "proj-1"}))), &listed))
	require.Len(t, listed.Requests, 1)
	require.Equal(t, "bob", listed.Requests[0].Requester)

	var mine userProjectsOutput
	require.NoError(t, json.Unmarshal([]byte(textOf(t, callTool(t, session, "list_user_projects", map[string]any{}))), &mine))
	require.Len(t, mine.Owned, 1)
	require.Empty(t, mine.Collaborating)
}
