package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ganot/peerconnect/internal/domain/event"
	"github.com/ganot/peerconnect/internal/domain/project"
	"github.com/ganot/peerconnect/internal/repository"
)

// EventRepository implements repository.EventRepository for SQLite
type EventRepository struct {
	q Querier
}

var _ repository.EventRepository = (*EventRepository)(nil)

// NewEventRepository creates a new EventRepository on a database or a transaction
func NewEventRepository(q Querier) *EventRepository {
	return &EventRepository{q: q}
}

// Log inserts a new event
func (r *EventRepository) Log(ctx context.Context, entry *event.Event) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	attrs, err := json.Marshal(entry.Attributes)
	if err != nil {
		return fmt.Errorf("failed to encode attributes: %w", err)
	}

	query := `
		INSERT INTO events (
			invocation_id, entry_point, method, caller,
			project_id, attributes, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := r.q.ExecContext(ctx, query,
		entry.InvocationID,
		entry.EntryPoint,
		entry.Method,
		entry.Caller,
		entry.ProjectID,
		string(attrs),
		createdAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to log event: %w", err)
	}

	id, err := result.LastInsertId()
	if err == nil {
		entry.ID = id
	}
	entry.CreatedAt = createdAt

	return nil
}

// List returns events matching the given filters, newest first
func (r *EventRepository) List(ctx context.Context, opts event.ListOptions) ([]event.Event, error) {
	query := `
		SELECT
			id, invocation_id, entry_point, method, caller,
			project_id, attributes, created_at
		FROM events
	`

	args := []any{}
	conditions := []string{}

	if opts.ProjectID != "" {
		conditions = append(conditions, "project_id = ?")
		args = append(args, opts.ProjectID)
	}
	if opts.Caller != "" {
		conditions = append(conditions, "caller = ?")
		args = append(args, opts.Caller)
	}
	if opts.Method != "" {
		conditions = append(conditions, "method = ?")
		args = append(args, opts.Method)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY id DESC"

	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	var entries []event.Event
	for rows.Next() {
		var entry event.Event
		var projectID sql.NullString
		var attrs string
		if err := rows.Scan(
			&entry.ID,
			&entry.InvocationID,
			&entry.EntryPoint,
			&entry.Method,
			&entry.Caller,
			&projectID,
			&attrs,
			&entry.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if projectID.Valid {
			entry.ProjectID = &projectID.String
		}
		var decoded []project.Attribute
		if err := json.Unmarshal([]byte(attrs), &decoded); err != nil {
			return nil, fmt.Errorf("failed to decode attributes for event %d: %w", entry.ID, err)
		}
		entry.Attributes = decoded
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating event rows: %w", err)
	}

	return entries, nil
}
