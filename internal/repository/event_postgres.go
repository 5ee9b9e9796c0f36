package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
)

const eventColumns = `id, event_type, participant_id, ticket_id, comment_id, label_id, by_participant_id, from_ticket_id, old_status, new_status, old_resolution, new_resolution, created_at`

type eventRepository struct {
	db *sql.DB
}

// NewEventRepository creates a new PostgreSQL event repository
func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) InsertTx(ctx context.Context, tx *sql.Tx, event *domain.Event) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO events (event_type, participant_id, ticket_id, comment_id, label_id, by_participant_id, from_ticket_id, old_status, new_status, old_resolution, new_resolution, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	err := tx.QueryRowContext(ctx, query,
		int(event.EventType),
		event.ParticipantID,
		event.TicketID,
		event.CommentID,
		event.LabelID,
		event.ByParticipantID,
		event.FromTicketID,
		event.OldStatus,
		event.NewStatus,
		event.OldResolution,
		event.NewResolution,
		event.CreatedAt,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	event, err := domain.ScanEvent(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrEventNotFound{Message: "event not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (r *eventRepository) ListByTicket(ctx context.Context, ticketID int64, cursor *domain.Cursor) ([]*domain.Event, *domain.Cursor, error) {
	if cursor == nil {
		cursor = domain.NewCursor(0)
	}

	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE ticket_id = $1 AND id > $2
		ORDER BY id ASC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, ticketID, cursor.Next, cursor.Count+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events, err := scanEventRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(events) > cursor.Count {
		events = events[:cursor.Count]
		next = &domain.Cursor{Next: events[len(events)-1].ID, Count: cursor.Count}
	}
	return events, next, nil
}

func (r *eventRepository) ListAllByTicket(ctx context.Context, ticketID int64) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE ticket_id = $1 ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	return scanEventRows(rows)
}

func (r *eventRepository) ListForUser(ctx context.Context, userID int64, cursor *domain.Cursor) ([]*domain.Event, *domain.Cursor, error) {
	if cursor == nil {
		cursor = domain.NewCursor(0)
	}

	query := `
		SELECT e.id, e.event_type, e.participant_id, e.ticket_id, e.comment_id, e.label_id, e.by_participant_id, e.from_ticket_id, e.old_status, e.new_status, e.old_resolution, e.new_resolution, e.created_at
		FROM events e
		JOIN event_notifications n ON n.event_id = e.id
		WHERE n.user_id = $1 AND ($2 = 0 OR e.id < $2)
		ORDER BY e.id DESC
		LIMIT $3
	`
	rows, err := r.db.QueryContext(ctx, query, userID, cursor.Next, cursor.Count+1)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	events, err := scanEventRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(events) > cursor.Count {
		events = events[:cursor.Count]
		next = &domain.Cursor{Next: events[len(events)-1].ID, Count: cursor.Count}
	}
	return events, next, nil
}

func (r *eventRepository) GetLatestByCommentTx(ctx context.Context, tx *sql.Tx, commentID int64) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE comment_id = $1 ORDER BY id DESC LIMIT 1`
	event, err := domain.ScanEvent(tx.QueryRowContext(ctx, query, commentID))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrEventNotFound{Message: "event not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (r *eventRepository) RepointCommentTx(ctx context.Context, tx *sql.Tx, eventID, commentID int64) error {
	query := `UPDATE events SET comment_id = $1 WHERE id = $2`
	result, err := tx.ExecContext(ctx, query, commentID, eventID)
	if err != nil {
		return fmt.Errorf("failed to repoint event: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrEventNotFound{Message: "event not found"}
	}
	return nil
}

func (r *eventRepository) InsertNotificationTx(ctx context.Context, tx *sql.Tx, eventID, userID int64) error {
	query := `
		INSERT INTO event_notifications (event_id, user_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, user_id) DO NOTHING
	`
	if _, err := tx.ExecContext(ctx, query, eventID, userID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func scanEventRows(rows *sql.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		event, err := domain.ScanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	return events, rows.Err()
}
