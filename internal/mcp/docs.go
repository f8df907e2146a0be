package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `peerconnect is a project board where people post projects and look for collaborators.

Core concepts:
- Project: title, description, owner, skills_required, status, is_paid. IDs look like proj-<n>-<unix>-<owner prefix>.
- Status: Open, InProgress or Completed. The owner may move between any of them.
- Admin: one identity set at init time. The admin may delete any project.

Tools:
1) Browse: list_projects, get_project.
2) Write: create_project, update_project_status (owner only), delete_project (owner or admin).
3) Reach out: request_collaboration. It stores nothing on the project; the request only shows up in list_events.
4) Join: request_to_join files a Pending request; the owner answers with respond_to_request (Approved or Rejected)
   and may remove_collaborator. list_collaborators and list_user_projects read them back.
5) Audit: list_events filters the invocation log by project_id, caller or method.

Docs:
- peerconnect://docs/index
- peerconnect://docs/lifecycle
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "peerconnect://docs/index",
		Name:        "docs_index",
		Title:       "peerconnect docs index",
		Description: "What the server stores and which tool to call for what.",
		Content: `# peerconnect: Agent Docs Index

## Identity

Every call runs as a caller. Over HTTP the caller comes from the bearer token;
over stdio (or with auth disabled) it is the configured default caller.

## Tools

| Tool | Who may call | Effect |
|---|---|---|
| create_project | anyone | appends an Open project owned by the caller |
| update_project_status | owner | overwrites status |
| request_collaboration | anyone | no state change, recorded in the event log |
| delete_project | owner or admin | removes the project |
| get_project / list_projects | anyone | read only |
| list_events | anyone | read only |
| request_to_join | anyone but the owner | files one Pending request per caller and project |
| respond_to_request | owner | sets a request to Approved or Rejected |
| remove_collaborator | owner | drops a request or collaborator |
| list_collaborators / list_user_projects | anyone | read only |

## Errors

- PROJECT_NOT_FOUND: the id does not exist (or was deleted).
- UNAUTHORIZED: the caller is not the owner (or admin, for deletes).
- NOT_INITIALIZED: nobody ran ` + "`peerconnect init`" + ` yet.
- INVALID_STATUS: status must be Open, InProgress or Completed (Approved or Rejected when answering a request).
- REQUEST_NOT_FOUND / ALREADY_REQUESTED / OWNER_REQUEST: join request problems.
`,
	},
	{
		URI:         "peerconnect://docs/lifecycle",
		Name:        "docs_lifecycle",
		Title:       "Project lifecycle",
		Description: "Statuses, ownership and deletion rules.",
		Content: `# Project lifecycle

- New projects start Open.
- Owners may set any status at any time, including moving back from Completed.
- Deleting removes the project for good; other projects keep their order.
- A delete by the admin reports deleted_by=admin even when the admin owns the project.
- IDs are never reused: the counter behind them only grows.
- Deleting a project also drops its join requests.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		doc := doc

		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
