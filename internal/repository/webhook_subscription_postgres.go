package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
)

const webhookColumns = `id, scope, user_id, tracker_id, ticket_id, url, events, created_at`

// webhookRepository implements domain.WebhookRepository for PostgreSQL
type webhookRepository struct {
	db *sql.DB
}

// NewWebhookRepository creates a new PostgreSQL webhook repository
func NewWebhookRepository(db *sql.DB) domain.WebhookRepository {
	return &webhookRepository{db: db}
}

func (r *webhookRepository) Create(ctx context.Context, sub *domain.WebhookSubscription) error {
	sub.CreatedAt = time.Now().UTC()

	query := `
		INSERT INTO webhook_subscriptions (scope, user_id, tracker_id, ticket_id, url, events, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		string(sub.Scope),
		sub.UserID,
		sub.TrackerID,
		sub.TicketID,
		sub.URL,
		strings.Join(sub.Events, ","),
		sub.CreatedAt,
	).Scan(&sub.ID)
	if err != nil {
		return fmt.Errorf("failed to create webhook subscription: %w", err)
	}
	return nil
}

func (r *webhookRepository) GetByID(ctx context.Context, id int64) (*domain.WebhookSubscription, error) {
	query := `SELECT ` + webhookColumns + ` FROM webhook_subscriptions WHERE id = $1`
	sub, err := domain.ScanWebhookSubscription(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrWebhookNotFound{Message: "webhook subscription not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get webhook subscription: %w", err)
	}
	return sub, nil
}

// ListForEvent matches subscriptions across the three scopes. The
// events column holds a comma-joined list, containment is tested with
// delimiters glued on both sides.
func (r *webhookRepository) ListForEvent(ctx context.Context, event string, userID, trackerID, ticketID int64) ([]*domain.WebhookSubscription, error) {
	query := `
		SELECT ` + webhookColumns + `
		FROM webhook_subscriptions
		WHERE ',' || events || ',' LIKE '%,' || $1 || ',%'
		AND (
			(scope = 'user' AND $2 > 0 AND user_id = $2)
			OR (scope = 'tracker' AND $3 > 0 AND tracker_id = $3)
			OR (scope = 'ticket' AND $4 > 0 AND ticket_id = $4)
		)
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, event, userID, trackerID, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook subscriptions: %w", err)
	}
	defer rows.Close()
	return scanWebhookRows(rows)
}

func (r *webhookRepository) ListByScope(ctx context.Context, scope domain.WebhookScope, scopeID int64) ([]*domain.WebhookSubscription, error) {
	var column string
	switch scope {
	case domain.WebhookScopeUser:
		column = "user_id"
	case domain.WebhookScopeTracker:
		column = "tracker_id"
	case domain.WebhookScopeTicket:
		column = "ticket_id"
	default:
		return nil, fmt.Errorf("unknown webhook scope %q", scope)
	}

	query := fmt.Sprintf(`SELECT %s FROM webhook_subscriptions WHERE scope = $1 AND %s = $2 ORDER BY id ASC`, webhookColumns, column)
	rows, err := r.db.QueryContext(ctx, query, string(scope), scopeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list webhook subscriptions: %w", err)
	}
	defer rows.Close()
	return scanWebhookRows(rows)
}

func (r *webhookRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM webhook_subscriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete webhook subscription: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrWebhookNotFound{Message: "webhook subscription not found"}
	}
	return nil
}

func (r *webhookRepository) Enqueue(ctx context.Context, delivery *domain.WebhookDelivery) error {
	if delivery.CreatedAt.IsZero() {
		delivery.CreatedAt = time.Now().UTC()
	}
	if delivery.Status == "" {
		delivery.Status = domain.WebhookDeliveryPending
	}
	if delivery.NextAttemptAt.IsZero() {
		delivery.NextAttemptAt = delivery.CreatedAt
	}

	query := `
		INSERT INTO webhook_deliveries (id, subscription_id, event, url, payload, signature, status, attempts, next_attempt_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		delivery.ID,
		delivery.SubscriptionID,
		delivery.Event,
		delivery.URL,
		delivery.Payload,
		delivery.Signature,
		delivery.Status,
		delivery.Attempts,
		delivery.NextAttemptAt,
		delivery.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue webhook delivery: %w", err)
	}
	return nil
}

// NextDeliveries claims due pending deliveries by pushing their
// next_attempt_at one minute out. A worker that crashes mid-batch
// loses its claim when the lease expires. FOR UPDATE SKIP LOCKED keeps
// concurrent workers from claiming the same rows.
func (r *webhookRepository) NextDeliveries(ctx context.Context, limit int) ([]*domain.WebhookDelivery, error) {
	query := `
		UPDATE webhook_deliveries
		SET next_attempt_at = NOW() + INTERVAL '1 minute'
		WHERE id IN (
			SELECT id FROM webhook_deliveries
			WHERE status = 'pending' AND next_attempt_at <= NOW()
			ORDER BY next_attempt_at ASC
			LIMIT $1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, subscription_id, event, url, payload, signature, status, attempts, next_attempt_at, last_error, created_at
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to claim webhook deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []*domain.WebhookDelivery
	for rows.Next() {
		d := &domain.WebhookDelivery{}
		err := rows.Scan(
			&d.ID,
			&d.SubscriptionID,
			&d.Event,
			&d.URL,
			&d.Payload,
			&d.Signature,
			&d.Status,
			&d.Attempts,
			&d.NextAttemptAt,
			&d.LastError,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan webhook delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	return deliveries, rows.Err()
}

func (r *webhookRepository) MarkDelivered(ctx context.Context, deliveryID string) error {
	query := `UPDATE webhook_deliveries SET status = 'delivered', attempts = attempts + 1, last_error = NULL WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, deliveryID); err != nil {
		return fmt.Errorf("failed to mark webhook delivery as delivered: %w", err)
	}
	return nil
}

func (r *webhookRepository) ScheduleRetry(ctx context.Context, deliveryID string, attempts int, nextAttempt time.Time, lastError string) error {
	query := `UPDATE webhook_deliveries SET attempts = $2, next_attempt_at = $3, last_error = $4 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, deliveryID, attempts, nextAttempt, lastError); err != nil {
		return fmt.Errorf("failed to schedule webhook delivery retry: %w", err)
	}
	return nil
}

func (r *webhookRepository) MarkFailed(ctx context.Context, deliveryID string, attempts int, lastError string) error {
	query := `UPDATE webhook_deliveries SET status = 'failed', attempts = $2, last_error = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, deliveryID, attempts, lastError); err != nil {
		return fmt.Errorf("failed to mark webhook delivery as failed: %w", err)
	}
	return nil
}

func (r *webhookRepository) CleanupDeliveries(ctx context.Context, olderThan time.Time) (int64, error) {
	query := `DELETE FROM webhook_deliveries WHERE status IN ('delivered', 'failed') AND created_at < $1`
	result, err := r.db.ExecContext(ctx, query, olderThan)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup webhook deliveries: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

func scanWebhookRows(rows *sql.Rows) ([]*domain.WebhookSubscription, error) {
	var subs []*domain.WebhookSubscription
	for rows.Next() {
		sub, err := domain.ScanWebhookSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan webhook subscription: %w", err)
		}
		subs = append(subs, sub)
	}
	return subs, rows.Err()
}
