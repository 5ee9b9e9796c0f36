package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
)

const labelColumns = `id, tracker_id, name, color, text_color, created_at`

type labelRepository struct {
	db *sql.DB
}

// NewLabelRepository creates a new PostgreSQL label repository
func NewLabelRepository(db *sql.DB) domain.LabelRepository {
	return &labelRepository{db: db}
}

func (r *labelRepository) Create(ctx context.Context, label *domain.Label) error {
	if label.CreatedAt.IsZero() {
		label.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO labels (tracker_id, name, color, text_color, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowContext(ctx, query,
		label.TrackerID,
		label.Name,
		label.Color,
		label.TextColor,
		label.CreatedAt,
	).Scan(&label.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("label %q already exists", label.Name))
		}
		return fmt.Errorf("failed to create label: %w", err)
	}
	return nil
}

func (r *labelRepository) GetByID(ctx context.Context, id int64) (*domain.Label, error) {
	query := `SELECT ` + labelColumns + ` FROM labels WHERE id = $1`
	label, err := domain.ScanLabel(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrLabelNotFound{Message: "label not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return label, nil
}

func (r *labelRepository) GetByName(ctx context.Context, trackerID int64, name string) (*domain.Label, error) {
	query := `SELECT ` + labelColumns + ` FROM labels WHERE tracker_id = $1 AND name = $2`
	label, err := domain.ScanLabel(r.db.QueryRowContext(ctx, query, trackerID, name))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrLabelNotFound{Message: "label not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get label: %w", err)
	}
	return label, nil
}

func (r *labelRepository) ListByTracker(ctx context.Context, trackerID int64) ([]*domain.Label, error) {
	query := `SELECT ` + labelColumns + ` FROM labels WHERE tracker_id = $1 ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query, trackerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	defer rows.Close()
	return scanLabelRows(rows)
}

func (r *labelRepository) Update(ctx context.Context, label *domain.Label) error {
	query := `UPDATE labels SET name = $1, color = $2, text_color = $3 WHERE id = $4`
	result, err := r.db.ExecContext(ctx, query, label.Name, label.Color, label.TextColor, label.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflictError(fmt.Sprintf("label %q already exists", label.Name))
		}
		return fmt.Errorf("failed to update label: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrLabelNotFound{Message: "label not found"}
	}
	return nil
}

// Delete removes the label, its ticket associations and the events
// recorded for them.
func (r *labelRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cascade := []string{
		`DELETE FROM event_notifications WHERE event_id IN (
			SELECT id FROM events WHERE label_id = $1)`,
		`DELETE FROM events WHERE label_id = $1`,
		`DELETE FROM ticket_labels WHERE label_id = $1`,
	}
	for _, query := range cascade {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete label data: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM labels WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete label: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrLabelNotFound{Message: "label not found"}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *labelRepository) AddToTicketTx(ctx context.Context, tx *sql.Tx, ticketID, labelID, userID int64) (bool, error) {
	query := `
		INSERT INTO ticket_labels (ticket_id, label_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (ticket_id, label_id) DO NOTHING
	`
	result, err := tx.ExecContext(ctx, query, ticketID, labelID, userID, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to add label to ticket: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *labelRepository) RemoveFromTicketTx(ctx context.Context, tx *sql.Tx, ticketID, labelID int64) (bool, error) {
	query := `DELETE FROM ticket_labels WHERE ticket_id = $1 AND label_id = $2`
	result, err := tx.ExecContext(ctx, query, ticketID, labelID)
	if err != nil {
		return false, fmt.Errorf("failed to remove label from ticket: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *labelRepository) ListForTicket(ctx context.Context, ticketID int64) ([]*domain.Label, error) {
	query := `
		SELECT l.id, l.tracker_id, l.name, l.color, l.text_color, l.created_at
		FROM labels l
		JOIN ticket_labels tl ON tl.label_id = l.id
		WHERE tl.ticket_id = $1
		ORDER BY l.name ASC
	`
	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket labels: %w", err)
	}
	defer rows.Close()
	return scanLabelRows(rows)
}

func scanLabelRows(rows *sql.Rows) ([]*domain.Label, error) {
	var labels []*domain.Label
	for rows.Next() {
		label, err := domain.ScanLabel(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan label: %w", err)
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}
