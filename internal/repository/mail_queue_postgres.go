package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
)

type mailQueueRepository struct {
	db *sql.DB
}

// NewMailQueueRepository creates a new PostgreSQL mail queue repository
func NewMailQueueRepository(db *sql.DB) domain.MailQueueRepository {
	return &mailQueueRepository{db: db}
}

func (r *mailQueueRepository) Enqueue(ctx context.Context, message *domain.MailMessage) error {
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO mail_queue (id, sender, recipient, raw, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query,
		message.ID,
		message.Sender,
		message.Recipient,
		message.Raw,
		message.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue mail: %w", err)
	}
	return nil
}

func (r *mailQueueRepository) PendingCount(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM mail_queue`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count queued mail: %w", err)
	}
	return count, nil
}
