package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/tracknest/tracknest/internal/domain"
)

// ticketColumns joins trackers and users for the ref fields.
const ticketColumns = `t.id, t.tracker_id, t.scoped_id, tr.name, u.username, t.title, t.description, t.submitter_id, t.status, t.resolution, t.comment_count, t.authenticity, t.created_at, t.updated_at`

const ticketFrom = `FROM tickets t JOIN trackers tr ON tr.id = t.tracker_id JOIN users u ON u.id = tr.owner_id`

type ticketRepository struct {
	db *sql.DB
}

// NewTicketRepository creates a new PostgreSQL ticket repository
func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) WithTransaction(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// InsertTx allocates the next scoped id under the tracker row lock and
// creates the ticket in the same statement. Pre-set timestamps survive,
// imports carry the dump's times.
func (r *ticketRepository) InsertTx(ctx context.Context, tx *sql.Tx, ticket *domain.Ticket) error {
	now := time.Now().UTC()
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = now
	}
	if ticket.UpdatedAt.IsZero() {
		ticket.UpdatedAt = ticket.CreatedAt
	}

	query := `
		WITH tr AS (
			UPDATE trackers
			SET next_ticket_id = next_ticket_id + 1, updated_at = $2
			WHERE id = $1
			RETURNING next_ticket_id - 1 AS scoped_id
		)
		INSERT INTO tickets (tracker_id, scoped_id, title, description, submitter_id, status, resolution, comment_count, authenticity, created_at, updated_at)
		SELECT $1, tr.scoped_id, $3, $4, $5, $6, $7, 0, $8, $9, $10 FROM tr
		RETURNING id, scoped_id
	`
	err := tx.QueryRowContext(ctx, query,
		ticket.TrackerID,
		now,
		ticket.Title,
		ticket.Description,
		ticket.SubmitterID,
		int(ticket.Status),
		int(ticket.Resolution),
		int(ticket.Authenticity),
		ticket.CreatedAt,
		ticket.UpdatedAt,
	).Scan(&ticket.ID, &ticket.ScopedID)
	if err == sql.ErrNoRows {
		return &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}
	if err != nil {
		return fmt.Errorf("failed to insert ticket: %w", err)
	}
	return nil
}

// InsertImportedTx keeps the dump's scoped id and timestamps, and moves
// the tracker's counter past the imported id so later submissions do
// not collide.
func (r *ticketRepository) InsertImportedTx(ctx context.Context, tx *sql.Tx, ticket *domain.Ticket) error {
	query := `
		WITH tr AS (
			UPDATE trackers
			SET next_ticket_id = GREATEST(next_ticket_id, $2 + 1)
			WHERE id = $1
			RETURNING id
		)
		INSERT INTO tickets (tracker_id, scoped_id, title, description, submitter_id, status, resolution, comment_count, authenticity, created_at, updated_at)
		SELECT tr.id, $2, $3, $4, $5, $6, $7, 0, $8, $9, $10 FROM tr
		RETURNING id
	`
	err := tx.QueryRowContext(ctx, query,
		ticket.TrackerID,
		ticket.ScopedID,
		ticket.Title,
		ticket.Description,
		ticket.SubmitterID,
		int(ticket.Status),
		int(ticket.Resolution),
		int(ticket.Authenticity),
		ticket.CreatedAt,
		ticket.UpdatedAt,
	).Scan(&ticket.ID)
	if err == sql.ErrNoRows {
		return &domain.ErrTrackerNotFound{Message: "tracker not found"}
	}
	if err != nil {
		return fmt.Errorf("failed to insert imported ticket: %w", err)
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` ` + ticketFrom + ` WHERE t.id = $1`
	ticket, err := domain.ScanTicket(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTicketNotFound{Message: "ticket not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

func (r *ticketRepository) GetByScopedID(ctx context.Context, trackerID, scopedID int64) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` ` + ticketFrom + ` WHERE t.tracker_id = $1 AND t.scoped_id = $2`
	ticket, err := domain.ScanTicket(r.db.QueryRowContext(ctx, query, trackerID, scopedID))
	if err == sql.ErrNoRows {
		return nil, &domain.ErrTicketNotFound{Message: "ticket not found"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ticket: %w", err)
	}
	return ticket, nil
}

func (r *ticketRepository) List(ctx context.Context, trackerID int64, cursor *domain.Cursor) ([]*domain.Ticket, *domain.Cursor, error) {
	if cursor == nil {
		cursor = domain.NewCursor(0)
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(ticketSelectColumns()...).
		From("tickets t").
		Join("trackers tr ON tr.id = t.tracker_id").
		Join("users u ON u.id = tr.owner_id").
		Where(sq.Eq{"t.tracker_id": trackerID}).
		OrderBy("t.scoped_id DESC").
		Limit(uint64(cursor.Count) + 1)

	if cursor.Next > 0 {
		queryBuilder = queryBuilder.Where(sq.Lt{"t.scoped_id": cursor.Next})
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	tickets, err := scanTicketRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(tickets) > cursor.Count {
		tickets = tickets[:cursor.Count]
		next = &domain.Cursor{Next: tickets[len(tickets)-1].ScopedID, Count: cursor.Count}
	}
	return tickets, next, nil
}

func (r *ticketRepository) ListAll(ctx context.Context, trackerID int64) ([]*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` ` + ticketFrom + ` WHERE t.tracker_id = $1 ORDER BY t.scoped_id ASC`
	rows, err := r.db.QueryContext(ctx, query, trackerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}
	defer rows.Close()

	return scanTicketRows(rows)
}

func (r *ticketRepository) Search(ctx context.Context, q *domain.TicketSearchQuery, cursor *domain.Cursor) ([]*domain.Ticket, *domain.Cursor, error) {
	if cursor == nil {
		cursor = domain.NewCursor(0)
	}

	orderColumn := "t.updated_at"
	switch q.OrderBy {
	case "created":
		orderColumn = "t.created_at"
	case "comments":
		orderColumn = "t.comment_count"
	}
	direction := "DESC"
	if q.Asc {
		direction = "ASC"
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	queryBuilder := psql.Select(ticketSelectColumns()...).
		From("tickets t").
		Join("trackers tr ON tr.id = t.tracker_id").
		Join("users u ON u.id = tr.owner_id").
		Where(sq.Eq{"t.tracker_id": q.TrackerID}).
		OrderBy(orderColumn+" "+direction, "t.id "+direction).
		Limit(uint64(cursor.Count) + 1)

	for _, term := range q.Terms {
		queryBuilder = queryBuilder.Where(searchTermSqlizer(term))
	}

	// Keyset pagination on (order column, id) anchored at the last row
	// of the previous page.
	if cursor.Next > 0 {
		cmp := "<"
		if q.Asc {
			cmp = ">"
		}
		anchor := fmt.Sprintf(
			"(%s, t.id) %s (SELECT %s, a.id FROM tickets a WHERE a.id = ?)",
			orderColumn, cmp, strings.Replace(orderColumn, "t.", "a.", 1))
		queryBuilder = queryBuilder.Where(sq.Expr(anchor, cursor.Next))
	}

	query, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search tickets: %w", err)
	}
	defer rows.Close()

	tickets, err := scanTicketRows(rows)
	if err != nil {
		return nil, nil, err
	}

	var next *domain.Cursor
	if len(tickets) > cursor.Count {
		tickets = tickets[:cursor.Count]
		next = &domain.Cursor{Next: tickets[len(tickets)-1].ID, Count: cursor.Count}
	}
	return tickets, next, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	ticket.UpdatedAt = time.Now().UTC()
	query := `
		UPDATE tickets
		SET title = $1,
			description = $2,
			updated_at = $3
		WHERE id = $4
	`
	result, err := r.db.ExecContext(ctx, query,
		ticket.Title,
		ticket.Description,
		ticket.UpdatedAt,
		ticket.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update ticket: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrTicketNotFound{Message: "ticket not found"}
	}
	return nil
}

func (r *ticketRepository) UpdateStatusTx(ctx context.Context, tx *sql.Tx, ticketID int64, status domain.TicketStatus, resolution domain.TicketResolution) error {
	query := `UPDATE tickets SET status = $1, resolution = $2, updated_at = $3 WHERE id = $4`
	result, err := tx.ExecContext(ctx, query, int(status), int(resolution), time.Now().UTC(), ticketID)
	if err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrTicketNotFound{Message: "ticket not found"}
	}
	return nil
}

func (r *ticketRepository) AdjustCommentCountTx(ctx context.Context, tx *sql.Tx, ticketID int64, delta int) error {
	query := `UPDATE tickets SET comment_count = comment_count + $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, query, delta, ticketID); err != nil {
		return fmt.Errorf("failed to adjust comment count: %w", err)
	}
	return nil
}

func (r *ticketRepository) TouchTx(ctx context.Context, tx *sql.Tx, ticketID int64) error {
	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx, `UPDATE tickets SET updated_at = $1 WHERE id = $2`, now, ticketID); err != nil {
		return fmt.Errorf("failed to touch ticket: %w", err)
	}
	query := `UPDATE trackers SET updated_at = $1 WHERE id = (SELECT tracker_id FROM tickets WHERE id = $2)`
	if _, err := tx.ExecContext(ctx, query, now, ticketID); err != nil {
		return fmt.Errorf("failed to touch tracker: %w", err)
	}
	return nil
}

// Delete removes a ticket and its dependent rows.
func (r *ticketRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	cascade := []string{
		`DELETE FROM event_notifications WHERE event_id IN (
			SELECT id FROM events WHERE ticket_id = $1)`,
		`DELETE FROM events WHERE ticket_id = $1`,
		`DELETE FROM ticket_comments WHERE ticket_id = $1`,
		`DELETE FROM ticket_labels WHERE ticket_id = $1`,
		`DELETE FROM ticket_assignees WHERE ticket_id = $1`,
		`DELETE FROM ticket_subscriptions WHERE ticket_id = $1`,
		`DELETE FROM webhook_subscriptions WHERE scope = 'ticket' AND ticket_id = $1`,
	}
	for _, query := range cascade {
		if _, err := tx.ExecContext(ctx, query, id); err != nil {
			return fmt.Errorf("failed to delete ticket data: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete ticket: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return &domain.ErrTicketNotFound{Message: "ticket not found"}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func ticketSelectColumns() []string {
	return []string{
		"t.id", "t.tracker_id", "t.scoped_id", "tr.name", "u.username",
		"t.title", "t.description", "t.submitter_id", "t.status", "t.resolution",
		"t.comment_count", "t.authenticity", "t.created_at", "t.updated_at",
	}
}

func scanTicketRows(rows *sql.Rows) ([]*domain.Ticket, error) {
	var tickets []*domain.Ticket
	for rows.Next() {
		ticket, err := domain.ScanTicket(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan ticket: %w", err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

// searchTermSqlizer maps one normalized search term to SQL. Unknown
// keys and values were rejected upstream, they match nothing here.
func searchTermSqlizer(term domain.SearchTerm) sq.Sqlizer {
	var expr sq.Sqlizer
	switch term.Key {
	case "":
		pattern := "%" + escapeLike(term.Value) + "%"
		expr = sq.Or{
			sq.ILike{"t.title": pattern},
			sq.ILike{"t.description": pattern},
			sq.Expr(`EXISTS (
				SELECT 1 FROM ticket_comments tc
				WHERE tc.ticket_id = t.id AND tc.superseded_by_id IS NULL AND tc.comment_text ILIKE ?)`, pattern),
		}
	case "status":
		switch term.Value {
		case "open":
			expr = sq.NotEq{"t.status": int(domain.StatusResolved)}
		case "closed":
			expr = sq.Eq{"t.status": int(domain.StatusResolved)}
		default:
			status, err := domain.ParseTicketStatus(term.Value)
			if err != nil {
				expr = sq.Expr("FALSE")
			} else {
				expr = sq.Eq{"t.status": int(status)}
			}
		}
	case "submitter":
		expr = sq.Expr(`EXISTS (
			SELECT 1 FROM participants p
			JOIN users su ON su.id = p.user_id
			WHERE p.id = t.submitter_id AND su.username ILIKE ?)`, escapeLike(term.Value))
	case "assigned":
		expr = sq.Expr(`EXISTS (
			SELECT 1 FROM ticket_assignees ta
			JOIN users au ON au.id = ta.assignee_id
			WHERE ta.ticket_id = t.id AND au.username ILIKE ?)`, escapeLike(term.Value))
	case "label":
		expr = sq.Expr(`EXISTS (
			SELECT 1 FROM ticket_labels tl
			JOIN labels l ON l.id = tl.label_id
			WHERE tl.ticket_id = t.id AND l.name = ?)`, term.Value)
	case "no":
		switch term.Value {
		case "assignee":
			expr = sq.Expr(`NOT EXISTS (SELECT 1 FROM ticket_assignees ta WHERE ta.ticket_id = t.id)`)
		case "label":
			expr = sq.Expr(`NOT EXISTS (SELECT 1 FROM ticket_labels tl WHERE tl.ticket_id = t.id)`)
		default:
			expr = sq.Expr("FALSE")
		}
	case "nothing":
		// Placed by the search service when a term cannot match, such
		// as submitter:me for an anonymous viewer.
		expr = sq.Expr("FALSE")
	default:
		expr = sq.Expr("FALSE")
	}

	if term.Inverse {
		return notSqlizer{expr}
	}
	return expr
}

type notSqlizer struct {
	expr sq.Sqlizer
}

func (n notSqlizer) ToSql() (string, []interface{}, error) {
	query, args, err := n.expr.ToSql()
	if err != nil {
		return "", nil, err
	}
	return "NOT (" + query + ")", args, nil
}

func escapeLike(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
