package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ganot/peerconnect/internal/domain/collaboration"
	"github.com/ganot/peerconnect/internal/repository"
)

const collaborationColumns = `id, project_id, requester, role, status, created_at, updated_at`

// CollaborationRepository implements repository.CollaborationRepository for SQLite
type CollaborationRepository struct {
	q Querier
}

var _ repository.CollaborationRepository = (*CollaborationRepository)(nil)

// NewCollaborationRepository creates a CollaborationRepository on a database or a transaction
func NewCollaborationRepository(q Querier) *CollaborationRepository {
	return &CollaborationRepository{q: q}
}

// Create inserts a new request
func (r *CollaborationRepository) Create(ctx context.Context, req *collaboration.Request) error {
	if req.ProjectID == "" || req.Requester == "" {
		return collaboration.ErrInvalidInput
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	if req.UpdatedAt.IsZero() {
		req.UpdatedAt = req.CreatedAt
	}

	result, err := r.q.ExecContext(ctx, `
		INSERT INTO collaborations (project_id, requester, role, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, req.ProjectID, req.Requester, req.Role, req.Status, req.CreatedAt.UTC(), req.UpdatedAt.UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return collaboration.ErrAlreadyRequested
		}
		return fmt.Errorf("failed to create collaboration request: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		req.ID = id
	}
	return nil
}

// Get returns the request requester filed against projectID
func (r *CollaborationRepository) Get(ctx context.Context, projectID, requester string) (*collaboration.Request, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+collaborationColumns+` FROM collaborations WHERE project_id = ? AND requester = ?`,
		projectID, requester,
	)
	return scanRequest(row)
}

// UpdateStatus sets the status of a request and returns the updated row
func (r *CollaborationRepository) UpdateStatus(ctx context.Context, projectID, requester string, status collaboration.Status, at time.Time) (*collaboration.Request, error) {
	if at.IsZero() {
		at = time.Now()
	}
	row := r.q.QueryRowContext(ctx,
		`UPDATE collaborations SET status = ?, updated_at = ?
		WHERE project_id = ? AND requester = ?
		RETURNING `+collaborationColumns,
		status, at.UTC(), projectID, requester,
	)
	return scanRequest(row)
}

// Delete removes a request and returns the removed row
func (r *CollaborationRepository) Delete(ctx context.Context, projectID, requester string) (*collaboration.Request, error) {
	row := r.q.QueryRowContext(ctx,
		`DELETE FROM collaborations WHERE project_id = ? AND requester = ? RETURNING `+collaborationColumns,
		projectID, requester,
	)
	return scanRequest(row)
}

// DeleteByProject removes every request on projectID
func (r *CollaborationRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	result, err := r.q.ExecContext(ctx, `DELETE FROM collaborations WHERE project_id = ?`, projectID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete collaboration requests: %w", err)
	}
	return result.RowsAffected()
}

// ListByProject returns the requests on projectID, oldest first
func (r *CollaborationRepository) ListByProject(ctx context.Context, projectID string) ([]collaboration.Request, error) {
	return r.list(ctx, `WHERE project_id = ?`, projectID)
}

// ListByRequester returns the requests filed by requester, oldest first
func (r *CollaborationRepository) ListByRequester(ctx context.Context, requester string) ([]collaboration.Request, error) {
	return r.list(ctx, `WHERE requester = ?`, requester)
}

func (r *CollaborationRepository) list(ctx context.Context, where string, arg any) ([]collaboration.Request, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+collaborationColumns+` FROM collaborations `+where+` ORDER BY id`, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list collaboration requests: %w", err)
	}
	defer rows.Close()

	var reqs []collaboration.Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating collaboration rows: %w", err)
	}
	return reqs, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRequest(row rowScanner) (*collaboration.Request, error) {
	var req collaboration.Request
	err := row.Scan(
		&req.ID,
		&req.ProjectID,
		&req.Requester,
		&req.Role,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, collaboration.ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan collaboration request: %w", err)
	}
	return &req, nil
}
