package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
)

const subscriptionColumns = `id, participant_id, tracker_id, ticket_id, created_at`

type subscriptionRepository struct {
	db *sql.DB
}

// NewSubscriptionRepository creates a new PostgreSQL subscription repository
func NewSubscriptionRepository(db *sql.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

// SubscribeTracker is idempotent, resubscribing returns the existing
// row. The no-op DO UPDATE makes RETURNING yield the row on conflict
// too.
func (r *subscriptionRepository) SubscribeTracker(ctx context.Context, participantID, trackerID int64) (*domain.TicketSubscription, error) {
	query := `
		INSERT INTO ticket_subscriptions (participant_id, tracker_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (participant_id, tracker_id) WHERE tracker_id IS NOT NULL
		DO UPDATE SET created_at = ticket_subscriptions.created_at
		RETURNING ` + subscriptionColumns + `
	`
	sub, err := domain.ScanTicketSubscription(r.db.QueryRowContext(ctx, query, participantID, trackerID, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to tracker: %w", err)
	}
	return sub, nil
}

const subscribeTicketQuery = `
	INSERT INTO ticket_subscriptions (participant_id, ticket_id, created_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (participant_id, ticket_id) WHERE ticket_id IS NOT NULL
	DO UPDATE SET created_at = ticket_subscriptions.created_at
	RETURNING ` + subscriptionColumns

func (r *subscriptionRepository) SubscribeTicket(ctx context.Context, participantID, ticketID int64) (*domain.TicketSubscription, error) {
	sub, err := domain.ScanTicketSubscription(r.db.QueryRowContext(ctx, subscribeTicketQuery, participantID, ticketID, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to ticket: %w", err)
	}
	return sub, nil
}

func (r *subscriptionRepository) SubscribeTicketTx(ctx context.Context, tx *sql.Tx, participantID, ticketID int64) (*domain.TicketSubscription, error) {
	sub, err := domain.ScanTicketSubscription(tx.QueryRowContext(ctx, subscribeTicketQuery, participantID, ticketID, time.Now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to ticket: %w", err)
	}
	return sub, nil
}

func (r *subscriptionRepository) UnsubscribeTracker(ctx context.Context, participantID, trackerID int64) error {
	query := `DELETE FROM ticket_subscriptions WHERE participant_id = $1 AND tracker_id = $2`
	result, err := r.db.ExecContext(ctx, query, participantID, trackerID)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe from tracker: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrSubscriptionNotFound{Message: "subscription not found"}
	}
	return nil
}

func (r *subscriptionRepository) UnsubscribeTicket(ctx context.Context, participantID, ticketID int64) error {
	query := `DELETE FROM ticket_subscriptions WHERE participant_id = $1 AND ticket_id = $2`
	result, err := r.db.ExecContext(ctx, query, participantID, ticketID)
	if err != nil {
		return fmt.Errorf("failed to unsubscribe from ticket: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrSubscriptionNotFound{Message: "subscription not found"}
	}
	return nil
}

func (r *subscriptionRepository) GetForTracker(ctx context.Context, participantID, trackerID int64) (*domain.TicketSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM ticket_subscriptions WHERE participant_id = $1 AND tracker_id = $2`
	sub, err := domain.ScanTicketSubscription(r.db.QueryRowContext(ctx, query, participantID, trackerID))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrSubscriptionNotFound{Message: "subscription not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

func (r *subscriptionRepository) GetForTicket(ctx context.Context, participantID, ticketID int64) (*domain.TicketSubscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM ticket_subscriptions WHERE participant_id = $1 AND ticket_id = $2`
	sub, err := domain.ScanTicketSubscription(r.db.QueryRowContext(ctx, query, participantID, ticketID))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrSubscriptionNotFound{Message: "subscription not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	return sub, nil
}

// ListSubscribers merges tracker-level and ticket-level subscribers,
// each participant once.
func (r *subscriptionRepository) ListSubscribers(ctx context.Context, trackerID, ticketID int64) ([]*domain.Participant, error) {
	query := `
		SELECT DISTINCT ON (p.id) ` + participantColumns + `
		FROM participants p
		LEFT JOIN users u ON u.id = p.user_id
		JOIN ticket_subscriptions s ON s.participant_id = p.id
		WHERE s.tracker_id = $1 OR s.ticket_id = $2
		ORDER BY p.id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, trackerID, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	var participants []*domain.Participant
	for rows.Next() {
		participant, err := domain.ScanParticipant(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}
	return participants, rows.Err()
}
