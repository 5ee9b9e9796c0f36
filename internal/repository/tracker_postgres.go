package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tracknest/tracknest/internal/domain"
)

// trackerColumns joins users for the owner's username.
const trackerColumns = `t.id, t.owner_id, u.username, t.name, t.description, t.visibility, t.default_access, t.next_ticket_id, t.import_in_progress, t.created_at, t.updated_at`

const trackerFrom = `FROM trackers t JOIN users u ON u.id = t.owner_id`

type trackerRepository struct {
	db *sql.DB
}

// NewTrackerRepository creates a new PostgreSQL tracker repository
func NewTrackerRepository(db *sql.DB) domain.TrackerRepository {
	return &trackerRepository{db: db}
}

func (r *trackerRepository) Create(ctx context.Context, tracker *domain.Tracker) error {
	now := time.Now().UTC()
	tracker.CreatedAt = now
	tracker.UpdatedAt = now
	tracker.NextTicketID = 1

	query := `
		INSERT INTO trackers (owner_id, name, description, visibility, default_access, next_ticket_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		tracker.OwnerID,
		tracker.Name,
		tracker.Description,
		tracker.Visibility,
		int(tracker.DefaultAccess),
		tracker.NextTicketID,
		tracker.CreatedAt,
		tracker.UpdatedAt,
	).Scan(&tracker.ID)
	if isUniqueViolation(err) {
		return domain.NewConflictError(fmt.Sprintf("tracker %q already exists", tracker.Name))
	}
	if err != nil {
		return fmt.Errorf("failed to create tracker: %w", err)
	}
	return nil
}

func (r *trackerRepository) GetByID(ctx context.Context, id int64) (*domain.Tracker, error) {
	query := `SELECT ` + trackerColumns + ` ` + trackerFrom + ` WHERE t.id = $1`
	tracker, err := domain.ScanTracker(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracker: %w", err)
	}
	return tracker, nil
}

func (r *trackerRepository) GetByName(ctx context.Context, owner, name string) (*domain.Tracker, error) {
	query := `SELECT ` + trackerColumns + ` ` + trackerFrom + ` WHERE u.username = $1 AND t.name = $2`
	tracker, err := domain.ScanTracker(r.db.QueryRowContext(ctx, query, owner, name))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tracker: %w", err)
	}
	return tracker, nil
}

func (r *trackerRepository) ListByOwner(ctx context.Context, ownerID int64, visibilities []domain.Visibility, cursor *domain.Cursor) ([]*domain.Tracker, *domain.Cursor, error) {
	if cursor == nil {
		cursor = domain.NewCursor(0)
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(
		"t.id", "t.owner_id", "u.username", "t.name", "t.description", "t.visibility",
		"t.default_access", "t.next_ticket_id", "t.import_in_progress", "t.created_at", "t.updated_at",
	).
		From("trackers t").
		Join("users u ON u.id = t.owner_id").
		Where(sq.Eq{"t.owner_id": ownerID}).
		OrderBy("t.id ASC").
		Limit(uint64(cursor.Count) + 1)

	if len(visibilities) > 0 {
		values := make([]string, len(visibilities))
		for i, v := range visibilities {
			values[i] = string(v)
		}
		queryBuilder = queryBuilder.Where(sq.Eq{"t.visibility": values})
	}
	if cursor.Next > 0 {
		queryBuilder = queryBuilder.Where(sq.Gt{"t.id": cursor.Next})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list trackers: %w", err)
	}
	defer rows.Close()

	var trackers []*domain.Tracker
	for rows.Next() {
		tracker, err := domain.ScanTracker(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan tracker: %w", err)
		}
		trackers = append(trackers, tracker)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(trackers) > cursor.Count {
		trackers = trackers[:cursor.Count]
		next = &domain.Cursor{Next: trackers[len(trackers)-1].ID, Count: cursor.Count}
	}
	return trackers, next, nil
}

// Update writes the mutable fields. UpdatedAt is written as passed, the
// caller decides whether an edit bumps it.
func (r *trackerRepository) Update(ctx context.Context, tracker *domain.Tracker) error {
	if tracker.UpdatedAt.IsZero() {
		tracker.UpdatedAt = time.Now().UTC()
	}
	query := `
		UPDATE trackers
		SET description = $1,
			visibility = $2,
			default_access = $3,
			updated_at = $4
		WHERE id = $5
	`
	result, err := r.db.ExecContext(ctx, query,
		tracker.Description,
		tracker.Visibility,
		int(tracker.DefaultAccess),
		tracker.UpdatedAt,
		tracker.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tracker: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}
	return nil
}

func (r *trackerRepository) SetImportInProgress(ctx context.Context, trackerID int64, inProgress bool) error {
	query := `UPDATE trackers SET import_in_progress = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, inProgress, trackerID)
	if err != nil {
		return fmt.Errorf("failed to set import flag: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}
	return nil
}

func (r *trackerRepository) TouchUpdated(ctx context.Context, trackerID int64) error {
	query := `UPDATE trackers SET updated_at = $1 WHERE id = $2`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UTC(), trackerID); err != nil {
		return fmt.Errorf("failed to touch tracker: %w", err)
	}
	return nil
}

// Delete removes a tracker and everything under it. The schema carries
// no foreign keys, so the cascade is spelled out here.
func (r *trackerRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cascade := []string{
		`DELETE FROM event_notifications WHERE event_id IN (
			SELECT e.id FROM events e
			JOIN tickets t ON t.id = e.ticket_id
			WHERE t.tracker_id = $1)`,
		`DELETE FROM events WHERE ticket_id IN (
			SELECT id FROM tickets WHERE tracker_id = $1)`,
		`DELETE FROM ticket_comments WHERE ticket_id IN (
			SELECT id FROM tickets WHERE tracker_id = $1)`,
		`DELETE FROM ticket_labels WHERE ticket_id IN (
			SELECT id FROM tickets WHERE tracker_id = $1)`,
		`DELETE FROM ticket_assignees WHERE ticket_id IN (
			SELECT id FROM tickets WHERE tracker_id = $1)`,
		`DELETE FROM ticket_subscriptions WHERE ticket_id IN (
			SELECT id FROM tickets WHERE tracker_id = $1)`,
		`DELETE FROM ticket_subscriptions WHERE tracker_id = $1`,
		`DELETE FROM webhook_subscriptions WHERE tracker_id = $1`,
		`DELETE FROM tickets WHERE tracker_id = $1`,
		`DELETE FROM labels WHERE tracker_id = $1`,
		`DELETE FROM user_accesses WHERE tracker_id = $1`,
	}
	for _, query := range cascade {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete tracker data: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM trackers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tracker: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
