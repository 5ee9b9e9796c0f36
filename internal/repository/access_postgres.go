package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
)

const userAccessColumns = `id, tracker_id, user_id, permissions, created_at`

type accessRepository struct {
	db *sql.DB
}

// NewAccessRepository creates a new PostgreSQL access repository
func NewAccessRepository(db *sql.DB) domain.AccessRepository {
	return &accessRepository{db: db}
}

func (r *accessRepository) GetForUser(ctx context.Context, trackerID, userID int64) (*domain.UserAccess, error) {
	query := `SELECT ` + userAccessColumns + ` FROM user_accesses WHERE tracker_id = $1 AND user_id = $2`
	access, err := domain.ScanUserAccess(r.db.QueryRowContext(ctx, query, trackerID, userID))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrUserAccessNotFound{Message: "user access not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user access: %w", err)
	}
	return access, nil
}

func (r *accessRepository) Upsert(ctx context.Context, access *domain.UserAccess) error {
	query := `
		INSERT INTO user_accesses (tracker_id, user_id, permissions, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (tracker_id, user_id)
		DO UPDATE SET permissions = EXCLUDED.permissions
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		access.TrackerID,
		access.UserID,
		int(access.Permissions),
		time.Now().UTC(),
	).Scan(&access.ID, &access.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert user access: %w", err)
	}
	return nil
}

func (r *accessRepository) Delete(ctx context.Context, trackerID, userID int64) error {
	query := `DELETE FROM user_accesses WHERE tracker_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, trackerID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user access: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrUserAccessNotFound{Message: "user access not found"}
	}
	return nil
}

func (r *accessRepository) ListForTracker(ctx context.Context, trackerID int64) ([]*domain.UserAccess, error) {
	query := `SELECT ` + userAccessColumns + ` FROM user_accesses WHERE tracker_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, trackerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user accesses: %w", err)
	}
	defer rows.Close()

	var accesses []*domain.UserAccess
	for rows.Next() {
		access, err := domain.ScanUserAccess(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user access: %w", err)
		}
		accesses = append(accesses, access)
	}
	return accesses, rows.Err()
}
