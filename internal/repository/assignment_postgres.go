package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
)

type assignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a new PostgreSQL assignment repository
func NewAssignmentRepository(db *sql.DB) domain.AssignmentRepository {
	return &assignmentRepository{db: db}
}

func (r *assignmentRepository) AssignTx(ctx context.Context, tx *sql.Tx, ticketID, assigneeID, assignerID int64) (bool, error) {
	query := `
		INSERT INTO ticket_assignees (ticket_id, assignee_id, assigner_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ticket_id, assignee_id) DO NOTHING
	`
	result, err := tx.ExecContext(ctx, query, ticketID, assigneeID, assignerID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to assign user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *assignmentRepository) UnassignTx(ctx context.Context, tx *sql.Tx, ticketID, assigneeID int64) (bool, error) {
	query := `DELETE FROM ticket_assignees WHERE ticket_id = $1 AND assignee_id = $2`
	result, err := tx.ExecContext(ctx, query, ticketID, assigneeID)
	if err != nil {
		return false, fmt.Errorf("failed to unassign user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *assignmentRepository) ListForTicket(ctx context.Context, ticketID int64) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.remote_id, u.username, u.email, u.notify_self, u.created_at, u.updated_at
		FROM users u
		JOIN ticket_assignees ta ON ta.assignee_id = u.id
		WHERE ta.ticket_id = $1
		ORDER BY ta.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignees: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		user, err := domain.ScanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
