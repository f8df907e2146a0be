package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/event"
	"github.com/ganot/peerconnect/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

type createProjectInput struct {
	Title          string   `json:"title" jsonschema:"Project title"`
	Description    string   `json:"description,omitempty" jsonschema:"Free-form description"`
	SkillsRequired []string `json:"skills_required,omitempty" jsonschema:"Skills a collaborator should have"`
	IsPaid         bool     `json:"is_paid" jsonschema:"Whether the work is paid"`
}

type updateProjectStatusInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	Status    string `json:"status" jsonschema:"New status: Open, InProgress or Completed"`
}

type requestCollaborationInput struct {
	ProjectID    string `json:"project_id" jsonschema:"Project ID"`
	Collaborator string `json:"collaborator" jsonschema:"Identity of the proposed collaborator"`
}

type projectIDInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
}

type listProjectsInput struct{}

type requestToJoinInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	Role      string `json:"role,omitempty" jsonschema:"Role you want on the project (default Contributor)"`
}

type respondToRequestInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	Requester string `json:"requester" jsonschema:"Identity of the requester"`
	Status    string `json:"status" jsonschema:"Approved or Rejected"`
}

type requesterInput struct {
	ProjectID string `json:"project_id" jsonschema:"Project ID"`
	Requester string `json:"requester" jsonschema:"Identity of the collaborator"`
}

type userProjectsInput struct {
	User string `json:"user,omitempty" jsonschema:"Identity to look up (default: the caller)"`
}

type listEventsInput struct {
	ProjectID string `json:"project_id,omitempty" jsonschema:"Only events for this project"`
	Caller    string `json:"caller,omitempty" jsonschema:"Only events sent by this caller"`
	Method    string `json:"method,omitempty" jsonschema:"Only events of this operation"`
	Limit     int    `json:"limit,omitempty" jsonschema:"Maximum number of events"`
	Offset    int    `json:"offset,omitempty" jsonschema:"Number of events to skip"`
}

type responseOutput struct {
	Attributes []project.Attribute `json:"attributes"`
}

type projectOutput struct {
	Project project.Project `json:"project"`
}

type projectsOutput struct {
	Projects []project.Project `json:"projects"`
}

type eventOutput struct {
	ID           int64               `json:"id"`
	InvocationID string              `json:"invocation_id"`
	EntryPoint   string              `json:"entry_point"`
	Method       string              `json:"method"`
	Caller       string              `json:"caller"`
	ProjectID    string              `json:"project_id,omitempty"`
	Attributes   []project.Attribute `json:"attributes"`
	CreatedAt    string              `json:"created_at"`
}

type eventsOutput struct {
	Events []eventOutput `json:"events"`
}

type requestOutput struct {
	ProjectID string `json:"project_id"`
	Requester string `json:"requester"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	UpdatedAt string `json:"updated_at"`
}

type requestsOutput struct {
	Requests []requestOutput `json:"requests"`
}

type membershipOutput struct {
	Project project.Project `json:"project"`
	Role    string          `json:"role"`
	Status  string          `json:"status"`
}

type userProjectsOutput struct {
	Owned         []project.Project  `json:"owned"`
	Collaborating []membershipOutput `json:"collaborating"`
}

func registerTools(server *sdkmcp.Server, rt Runtime) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_project",
		Description: "Create a new Open project owned by the caller",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args createProjectInput) (*sdkmcp.CallToolResult, responseOutput, error) {
		return execute(ctx, rt, contract.ExecuteMsg{CreateProject: &contract.CreateProjectMsg{
			Title:          args.Title,
			Description:    args.Description,
			SkillsRequired: args.SkillsRequired,
			IsPaid:         args.IsPaid,
		}})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_project_status",
		Description: "Set the status of a project you own",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args updateProjectStatusInput) (*sdkmcp.CallToolResult, responseOutput, error) {
		return execute(ctx, rt, contract.ExecuteMsg{UpdateProjectStatus: &contract.UpdateProjectStatusMsg{
			ProjectID: args.ProjectID,
			Status:    project.Status(args.Status),
		}})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "request_collaboration",
		Description: "Ask to collaborate on a project; nothing is stored on the project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args requestCollaborationInput) (*sdkmcp.CallToolResult, responseOutput, error) {
		return execute(ctx, rt, contract.ExecuteMsg{RequestCollaboration: &contract.RequestCollaborationMsg{
			ProjectID:    args.ProjectID,
			Collaborator: args.Collaborator,
		}})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_project",
		Description: "Delete a project (owner or admin only)",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args projectIDInput) (*sdkmcp.CallToolResult, responseOutput, error) {
		return execute(ctx, rt, contract.ExecuteMsg{DeleteProject: &contract.DeleteProjectMsg{
			ProjectID: args.ProjectID,
		}})
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_project",
		Description: "Get a project by ID",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args projectIDInput) (*sdkmcp.CallToolResult, projectOutput, error) {
		result, err := rt.Query(ctx, contract.QueryMsg{GetProject: &contract.GetProjectMsg{ProjectID: args.ProjectID}})
		if err != nil {
			return nil, projectOutput{}, mapError(err)
		}
		proj, ok := result.(*project.Project)
		if !ok {
			return nil, projectOutput{}, fmt.Errorf("unexpected get_project result %T", result)
		}
		return nil, projectOutput{Project: *proj}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_projects",
		Description: "List every project in creation order",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, _ listProjectsInput) (*sdkmcp.CallToolResult, projectsOutput, error) {
		result, err := rt.Query(ctx, contract.QueryMsg{ListProjects: &contract.ListProjectsMsg{}})
		if err != nil {
			return nil, projectsOutput{}, mapError(err)
		}
		projects, ok := result.([]project.Project)
		if !ok {
			return nil, projectsOutput{}, fmt.Errorf("unexpected list_projects result %T", result)
		}
		return nil, projectsOutput{Projects: projects}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_events",
		Description: "List recorded invocations, newest first",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args listEventsInput) (*sdkmcp.CallToolResult, eventsOutput, error) {
		events, err := rt.ListEvents(ctx, event.ListOptions{
			ProjectID: args.ProjectID,
			Caller:    args.Caller,
			Method:    args.Method,
			Limit:     args.Limit,
			Offset:    args.Offset,
		})
		if err != nil {
			return nil, eventsOutput{}, mapError(err)
		}
		out := eventsOutput{Events: make([]eventOutput, 0, len(events))}
		for _, ev := range events {
			out.Events = append(out.Events, eventOutput{
				ID:           ev.ID,
				InvocationID: ev.InvocationID,
				EntryPoint:   string(ev.EntryPoint),
				Method:       ev.Method,
				Caller:       ev.Caller,
				ProjectID:    stringValue(ev.ProjectID),
				Attributes:   ev.Attributes,
				CreatedAt:    ev.CreatedAt.UTC().Format(time.RFC3339),
			})
		}
		return nil, out, nil
	})

	registerCollaborationTools(server, rt)
}

func execute(ctx context.Context, rt Runtime, msg contract.ExecuteMsg) (*sdkmcp.CallToolResult, responseOutput, error) {
	resp, err := rt.Execute(ctx, getCaller(ctx), msg)
	if err != nil {
		return nil, responseOutput{}, mapError(err)
	}
	return nil, responseOutput{Attributes: resp.Attributes}, nil
}

func stringValue(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}

func registerCollaborationTools(server *sdkmcp.Server, rt Runtime) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "request_to_join",
		Description: "File a Pending request to join a project you do not own",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args requestToJoinInput) (*sdkmcp.CallToolResult, requestOutput, error) {
		req, err := rt.Collaborate(ctx, getCaller(ctx), args.ProjectID, args.Role)
		if err != nil {
			return nil, requestOutput{}, mapError(err)
		}
		return nil, toRequestOutput(*req), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "respond_to_request",
		Description: "Approve or reject a request to join a project you own",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args respondToRequestInput) (*sdkmcp.CallToolResult, requestOutput, error) {
		req, err := rt.RespondCollaboration(ctx, getCaller(ctx), args.ProjectID, args.Requester, collaboration.Status(args.Status))
		if err != nil {
			return nil, requestOutput{}, mapError(err)
		}
		return nil, toRequestOutput(*req), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "remove_collaborator",
		Description: "Remove a collaborator or pending request from a project you own",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args requesterInput) (*sdkmcp.CallToolResult, requestOutput, error) {
		req, err := rt.RemoveCollaborator(ctx, getCaller(ctx), args.ProjectID, args.Requester)
		if err != nil {
			return nil, requestOutput{}, mapError(err)
		}
		return nil, toRequestOutput(*req), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_collaborators",
		Description: "List requests and collaborators on a project",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args projectIDInput) (*sdkmcp.CallToolResult, requestsOutput, error) {
		reqs, err := rt.ListCollaborators(ctx, args.ProjectID)
		if err != nil {
			return nil, requestsOutput{}, mapError(err)
		}
		out := requestsOutput{Requests: make([]requestOutput, 0, len(reqs))}
		for _, req := range reqs {
			out.Requests = append(out.Requests, toRequestOutput(req))
		}
		return nil, out, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_user_projects",
		Description: "List the projects a user owns and the ones they asked to join",
	}, func(ctx context.Context, _ *sdkmcp.CallToolRequest, args userProjectsInput) (*sdkmcp.CallToolResult, userProjectsOutput, error) {
		user := args.User
		if user == "" {
			user = getCaller(ctx)
		}
		got, err := rt.UserProjects(ctx, user)
		if err != nil {
			return nil, userProjectsOutput{}, mapError(err)
		}
		out := userProjectsOutput{
			Owned:         got.Owned,
			Collaborating: make([]membershipOutput, 0, len(got.Collaborating)),
		}
		for _, m := range got.Collaborating {
			out.Collaborating = append(out.Collaborating, membershipOutput{Project: m.Project, Role: m.Role, Status: string(m.Status)})
		}
		return nil, out, nil
	})
}

func toRequestOutput(req collaboration.Request) requestOutput {
	return requestOutput{
		ProjectID: req.ProjectID,
		Requester: req.Requester,
		Role:      req.Role,
		Status:    string(req.Status),
		UpdatedAt: req.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
