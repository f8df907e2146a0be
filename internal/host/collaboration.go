package host

import (
	"context"
	"log/slog"

	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/ganot/peerconnect/internal/sqlite"
	"github.com/ganot/peerconnect/internal/state"
)

const entryCollaboration = "collaboration"

// Collaborate files a request by caller to join projectID.
func (h *Host) Collaborate(ctx context.Context, caller, projectID, role string) (*collaboration.Request, error) {
	return h.collaborate(ctx, "request_to_join", caller, func(tx sqlite.Querier) (*collaboration.Request, error) {
		proj, err := projects(tx, h.logger).Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return collaborations(tx, h.logger).Request(ctx, caller, *proj, role, h.clock.Now())
	})
}

// RespondCollaboration lets the owner of projectID approve or reject requester.
func (h *Host) RespondCollaboration(ctx context.Context, caller, projectID, requester string, status collaboration.Status) (*collaboration.Request, error) {
	return h.collaborate(ctx, "respond_to_request", caller, func(tx sqlite.Querier) (*collaboration.Request, error) {
		proj, err := projects(tx, h.logger).Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return collaborations(tx, h.logger).Respond(ctx, caller, *proj, requester, status, h.clock.Now())
	})
}

// RemoveCollaborator lets the owner of projectID drop requester.
func (h *Host) RemoveCollaborator(ctx context.Context, caller, projectID, requester string) (*collaboration.Request, error) {
	return h.collaborate(ctx, "remove_collaborator", caller, func(tx sqlite.Querier) (*collaboration.Request, error) {
		proj, err := projects(tx, h.logger).Get(ctx, projectID)
		if err != nil {
			return nil, err
		}
		return collaborations(tx, h.logger).Remove(ctx, caller, *proj, requester)
	})
}

// ListCollaborators returns the requests filed against a live project.
func (h *Host) ListCollaborators(ctx context.Context, projectID string) ([]collaboration.Request, error) {
	if _, err := projects(h.db, h.logger).Get(ctx, projectID); err != nil {
		return nil, err
	}
	return collaborations(h.db, h.logger).ListByProject(ctx, projectID)
}

// UserProjects returns the live projects user owns or has asked to join.
func (h *Host) UserProjects(ctx context.Context, user string) (*collaboration.UserProjects, error) {
	live, err := projects(h.db, h.logger).List(ctx)
	if err != nil {
		return nil, err
	}
	return collaborations(h.db, h.logger).UserProjects(ctx, user, live)
}

func (h *Host) collaborate(ctx context.Context, method, caller string, fn func(tx sqlite.Querier) (*collaboration.Request, error)) (*collaboration.Request, error) {
	if caller == "" {
		return nil, collaboration.ErrInvalidInput
	}

	start := h.clock.Now()
	var req *collaboration.Request
	err := h.db.InTx(ctx, func(tx sqlite.Querier) error {
		var err error
		req, err = fn(tx)
		return err
	})
	h.metrics.observe(entryCollaboration, method, h.clock.Now().Sub(start), err)
	if err != nil {
		h.logger.Debug("collaboration failed", "method", method, "caller", caller, "error", err)
		return nil, err
	}

	h.logger.Info("collaboration", "method", method, "caller", caller, "project_id", req.ProjectID)
	return req, nil
}

func projects(q sqlite.Querier, logger *slog.Logger) *project.Service {
	return project.NewService(state.New(sqlite.NewKVStore(q)), logger)
}

func collaborations(q sqlite.Querier, logger *slog.Logger) *collaboration.Service {
	return collaboration.NewService(sqlite.NewCollaborationRepository(q), logger)
}
