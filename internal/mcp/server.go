package mcp

import (
	"context"
	"log/slog"

	"github.com/ganot/peerconnect/internal/contract"
	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/event"
	"github.com/ganot/peerconnect/internal/domain/project"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Runtime runs contract entry points on behalf of a caller.
type Runtime interface {
	Execute(ctx context.Context, caller string, msg contract.ExecuteMsg) (*project.Response, error)
	Query(ctx context.Context, msg contract.QueryMsg) (any, error)
	ListEvents(ctx context.Context, opts event.ListOptions) ([]event.Event, error)

	Collaborate(ctx context.Context, caller, projectID, role string) (*collaboration.Request, error)
	RespondCollaboration(ctx context.Context, caller, projectID, requester string, status collaboration.Status) (*collaboration.Request, error)
	RemoveCollaborator(ctx context.Context, caller, projectID, requester string) (*collaboration.Request, error)
	ListCollaborators(ctx context.Context, projectID string) ([]collaboration.Request, error)
	UserProjects(ctx context.Context, user string) (*collaboration.UserProjects, error)
}

// Config contains server configuration.
type Config struct {
	Runtime       Runtime
	Resolver      CallerResolver
	AuthEnabled   bool
	DefaultCaller string
	TransportMode string // "stdio" or "http"
	Version       string
	Logger        *slog.Logger
}

// NewServer creates and configures an MCP server with all tools and middleware.
func NewServer(cfg Config) *sdkmcp.Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Version == "" {
		cfg.Version = "0.1.0"
	}

	server := sdkmcp.NewServer(&sdkmcp.Implementation{
		Name:    "peerconnect",
		Version: cfg.Version,
	}, &sdkmcp.ServerOptions{
		Instructions: serverInstructions,
		Logger:       cfg.Logger,
	})

	registerDocResources(server)

	// Stdio is local only and never authenticates.
	if cfg.TransportMode != "stdio" && cfg.AuthEnabled {
		server.AddReceivingMiddleware(authMiddleware(cfg.Resolver))
	} else {
		server.AddReceivingMiddleware(noAuthMiddleware(cfg.DefaultCaller))
	}
	server.AddReceivingMiddleware(invocationMiddleware())
	server.AddReceivingMiddleware(trafficLoggingMiddleware(cfg.Logger, "inbound"))
	server.AddSendingMiddleware(trafficLoggingMiddleware(cfg.Logger, "outbound"))

	registerTools(server, cfg.Runtime)

	return server
}
