package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tracknest/tracknest/internal/domain"
)

const commentColumns = `id, ticket_id, submitter_id, comment_text, authenticity, superseded_by_id, created_at`

type commentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sql.DB) domain.CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) InsertTx(ctx context.Context, tx *sql.Tx, comment *domain.TicketComment) error {
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO ticket_comments (ticket_id, submitter_id, comment_text, authenticity, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := tx.QueryRowContext(ctx, query,
		comment.TicketID,
		comment.SubmitterID,
		comment.Text,
		int(comment.Authenticity),
		comment.CreatedAt,
	).Scan(&comment.ID)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (r *commentRepository) GetByID(ctx context.Context, id int64) (*domain.TicketComment, error) {
	query := `SELECT ` + commentColumns + ` FROM ticket_comments WHERE id = $1`
	comment, err := domain.ScanTicketComment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrCommentNotFound{Message: "comment not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}
	return comment, nil
}

func (r *commentRepository) ListByTicket(ctx context.Context, ticketID int64) ([]*domain.TicketComment, error) {
	query := `
		SELECT ` + commentColumns + `
		FROM ticket_comments
		WHERE ticket_id = $1 AND superseded_by_id IS NULL
		ORDER BY id ASC
	`
	rows, err := r.db.QueryContext(ctx, query, ticketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.TicketComment
	for rows.Next() {
		comment, err := domain.ScanTicketComment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (r *commentRepository) SupersedeTx(ctx context.Context, tx *sql.Tx, oldID, newID int64) error {
	query := `UPDATE ticket_comments SET superseded_by_id = $1 WHERE id = $2`
	result, err := tx.ExecContext(ctx, query, newID, oldID)
	if err != nil {
		return fmt.Errorf("failed to supersede comment: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrCommentNotFound{Message: "comment not found"}
	}
	return nil
}

// Resolve walks the supersession chain to the current revision. The
// depth bound stops a corrupted chain from recursing forever.
func (r *commentRepository) Resolve(ctx context.Context, id int64) (*domain.TicketComment, error) {
	query := `
		WITH RECURSIVE chain AS (
			SELECT ` + commentColumns + `, 0 AS depth FROM ticket_comments WHERE id = $1
			UNION ALL
			SELECT c.id, c.ticket_id, c.submitter_id, c.comment_text, c.authenticity, c.superseded_by_id, c.created_at, chain.depth + 1
			FROM ticket_comments c
			JOIN chain ON c.id = chain.superseded_by_id
			WHERE chain.depth < 1000
		)
		SELECT ` + commentColumns + ` FROM chain WHERE superseded_by_id IS NULL
	`
	comment, err := domain.ScanTicketComment(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrCommentNotFound{Message: "comment not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve comment: %w", err)
	}
	return comment, nil
}

func (r *commentRepository) CountCurrentByTicket(ctx context.Context, ticketID int64) (int, error) {
	query := `SELECT COUNT(*) FROM ticket_comments WHERE ticket_id = $1 AND superseded_by_id IS NULL`
	var count int
	if err := r.db.QueryRowContext(ctx, query, ticketID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
