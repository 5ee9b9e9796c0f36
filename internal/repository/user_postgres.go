package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/tracknest/tracknest/internal/domain"
)

const userColumns = `id, remote_id, username, email, notify_self, created_at, updated_at`

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new PostgreSQL user repository
func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// isUniqueViolation reports whether err is a PostgreSQL unique
// constraint violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := domain.ScanUser(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrUserNotFound{Message: "user not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByRemoteID(ctx context.Context, remoteID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE remote_id = $1`
	user, err := domain.ScanUser(r.db.QueryRowContext(ctx, query, remoteID))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrUserNotFound{Message: "user not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := domain.ScanUser(r.db.QueryRowContext(ctx, query, username))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrUserNotFound{Message: "user not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := domain.ScanUser(r.db.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrUserNotFound{Message: "user not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *userRepository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	query := `
		INSERT INTO users (remote_id, username, email, notify_self, created_at, updated_at)
		VALUES ($1, $2, $3, FALSE, $4, $4)
		ON CONFLICT (remote_id) DO UPDATE
		SET username = EXCLUDED.username,
			email = EXCLUDED.email,
			updated_at = $4
		RETURNING ` + userColumns + `
	`
	stored, err := domain.ScanUser(r.db.QueryRowContext(ctx, query,
		user.RemoteID,
		user.Username,
		user.Email,
		now,
	))
	if isUniqueViolation(err) {
		// remote_id is the conflict target, so this is the username.
		return nil, domain.NewConflictError("username already taken")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return stored, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE users
		SET username = $1,
			email = $2,
			notify_self = $3,
			updated_at = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		user.Username,
		user.Email,
		user.NotifySelf,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrUserNotFound{Message: "user not found"}
	}
	return nil
}

// Delete removes a user together with the trackers they own and the
// rows referencing them. The schema carries no foreign keys, so the
// cascade is spelled out here.
func (r *userRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cascade := []string{
		`DELETE FROM event_notifications WHERE event_id IN (
			SELECT e.id FROM events e
			JOIN tickets t ON t.id = e.ticket_id
			JOIN trackers tr ON tr.id = t.tracker_id
			WHERE tr.owner_id = $1)`,
		`DELETE FROM events WHERE ticket_id IN (
			SELECT t.id FROM tickets t
			JOIN trackers tr ON tr.id = t.tracker_id
			WHERE tr.owner_id = $1)`,
		`DELETE FROM ticket_comments WHERE ticket_id IN (
			SELECT t.id FROM tickets t
			JOIN trackers tr ON tr.id = t.tracker_id
			WHERE tr.owner_id = $1)`,
		`DELETE FROM ticket_labels WHERE ticket_id IN (
			SELECT t.id FROM tickets t
			JOIN trackers tr ON tr.id = t.tracker_id
			WHERE tr.owner_id = $1)`,
		`DELETE FROM ticket_assignees WHERE ticket_id IN (
			SELECT t.id FROM tickets t
			JOIN trackers tr ON tr.id = t.tracker_id
			WHERE tr.owner_id = $1)`,
		`DELETE FROM ticket_subscriptions WHERE ticket_id IN (
			SELECT t.id FROM tickets t
			JOIN trackers tr ON tr.id = t.tracker_id
			WHERE tr.owner_id = $1)`,
		`DELETE FROM ticket_subscriptions WHERE tracker_id IN (
			SELECT id FROM trackers WHERE owner_id = $1)`,
		`DELETE FROM webhook_subscriptions WHERE tracker_id IN (
			SELECT id FROM trackers WHERE owner_id = $1)`,
		`DELETE FROM tickets WHERE tracker_id IN (
			SELECT id FROM trackers WHERE owner_id = $1)`,
		`DELETE FROM labels WHERE tracker_id IN (
			SELECT id FROM trackers WHERE owner_id = $1)`,
		`DELETE FROM user_accesses WHERE tracker_id IN (
			SELECT id FROM trackers WHERE owner_id = $1)`,
		`DELETE FROM trackers WHERE owner_id = $1`,
		`DELETE FROM event_notifications WHERE user_id = $1`,
		`DELETE FROM ticket_assignees WHERE assignee_id = $1`,
		`DELETE FROM user_accesses WHERE user_id = $1`,
		`DELETE FROM webhook_subscriptions WHERE scope = 'user' AND user_id = $1`,
		`DELETE FROM ticket_subscriptions WHERE participant_id IN (
			SELECT id FROM participants WHERE participant_type = 'user' AND user_id = $1)`,
		`DELETE FROM participants WHERE participant_type = 'user' AND user_id = $1`,
	}
	for _, query := range cascade {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete user data: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrUserNotFound{Message: "user not found"}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
