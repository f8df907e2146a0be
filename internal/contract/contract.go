// Package contract routes the three entry points (instantiate, execute,
// query) to the project lifecycle engine.
package contract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/peerconnect/internal/address"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/ganot/peerconnect/internal/repository"
	"github.com/ganot/peerconnect/internal/state"
)

// Env describes the environment an invocation runs in.
type Env struct {
	BlockTime time.Time
}

// MessageInfo identifies who sent a message.
type MessageInfo struct {
	Sender string
}

// Contract dispatches decoded messages against a key/value store.
type Contract struct {
	validator address.Validator
	logger    *slog.Logger
}

// New creates a new Contract.
func New(validator address.Validator, logger *slog.Logger) *Contract {
	if validator == nil {
		validator = address.BasicValidator{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Contract{validator: validator, logger: logger}
}

func (c *Contract) service(kv repository.KV) *project.Service {
	return project.NewService(state.New(kv), c.logger)
}

// Instantiate sets up an empty collection, a zero counter and the admin.
// The admin defaults to the sender when msg.Admin is nil.
func (c *Contract) Instantiate(ctx context.Context, kv repository.KV, _ Env, info MessageInfo, msg InstantiateMsg) (*project.Response, error) {
	if info.Sender == "" {
		return nil, ErrMissingCaller
	}

	admin := info.Sender
	if msg.Admin != nil {
		validated, err := c.validator.Validate(*msg.Admin)
		if err != nil {
			return nil, fmt.Errorf("validating admin: %w", err)
		}
		admin = validated
	}

	if err := c.service(kv).Initialize(ctx, admin); err != nil {
		return nil, err
	}

	c.logger.Info("contract instantiated", "admin", admin, "sender", info.Sender)
	return project.NewResponse("instantiate").Add("admin", admin), nil
}

// Execute routes a state-changing message to the lifecycle engine.
func (c *Contract) Execute(ctx context.Context, kv repository.KV, env Env, info MessageInfo, msg ExecuteMsg) (*project.Response, error) {
	if info.Sender == "" {
		return nil, ErrMissingCaller
	}
	if _, err := msg.Method(); err != nil {
		return nil, err
	}

	svc := c.service(kv)
	switch {
	case msg.CreateProject != nil:
		m := msg.CreateProject
		return svc.Create(ctx, info.Sender, env.BlockTime, project.CreateRequest{
			Title:          m.Title,
			Description:    m.Description,
			SkillsRequired: m.SkillsRequired,
			IsPaid:         m.IsPaid,
		})
	case msg.UpdateProjectStatus != nil:
		m := msg.UpdateProjectStatus
		return svc.UpdateStatus(ctx, info.Sender, m.ProjectID, m.Status)
	case msg.RequestCollaboration != nil:
		m := msg.RequestCollaboration
		return svc.RequestCollaboration(ctx, info.Sender, m.ProjectID, m.Collaborator)
	default:
		return svc.Delete(ctx, info.Sender, msg.DeleteProject.ProjectID)
	}
}

// Query routes a read-only message. The result is a *project.Project for
// GetProject and a []project.Project for ListProjects.
func (c *Contract) Query(ctx context.Context, kv repository.KV, _ Env, msg QueryMsg) (any, error) {
	if _, err := msg.Method(); err != nil {
		return nil, err
	}

	svc := c.service(kv)
	if msg.GetProject != nil {
		return svc.Get(ctx, msg.GetProject.ProjectID)
	}
	return svc.List(ctx)
}
