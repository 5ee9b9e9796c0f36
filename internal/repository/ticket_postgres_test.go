package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tracknest/tracknest/internal/domain"
)

func TestTicketRepository(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewTicketRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	ticketCols := []string{"id", "tracker_id", "scoped_id", "name", "username", "title", "description", "submitter_id", "status", "resolution", "comment_count", "authenticity", "created_at", "updated_at"}

	ticketRow := func(id, scopedID int64) *sqlmock.Rows {
		return sqlmock.NewRows(ticketCols).
			AddRow(id, int64(1), scopedID, "myproject", "alice", "Crash on startup", "Stack trace attached", int64(3), 0, 0, 0, 0, now, now)
	}

	t.Run("WithTransaction", func(t *testing.T) {
		t.Run("commits on success", func(t *testing.T) {
			sqlMock.ExpectBegin()
			sqlMock.ExpectCommit()

			err := repo.WithTransaction(ctx, func(tx *sql.Tx) error { return nil })
			require.NoError(t, err)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("rolls back on error", func(t *testing.T) {
			sqlMock.ExpectBegin()
			sqlMock.ExpectRollback()

			wantErr := errors.New("boom")
			err := repo.WithTransaction(ctx, func(tx *sql.Tx) error { return wantErr })
			assert.Equal(t, wantErr, err)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	})

	t.Run("InsertTx", func(t *testing.T) {
		t.Run("allocates the next scoped id", func(t *testing.T) {
			sqlMock.ExpectBegin()
			sqlMock.ExpectQuery(regexp.QuoteMeta(`UPDATE trackers`)).
				WithArgs(int64(1), sqlmock.AnyArg(), "Crash on startup", "Stack trace attached", int64(3), 0, 0, 0, sqlmock.AnyArg(), sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id", "scoped_id"}).AddRow(int64(10), int64(4)))
			sqlMock.ExpectCommit()

			ticket := &domain.Ticket{
				TrackerID:   1,
				Title:       "Crash on startup",
				Description: "Stack trace attached",
				SubmitterID: 3,
			}
			err := repo.WithTransaction(ctx, func(tx *sql.Tx) error {
				return repo.InsertTx(ctx, tx, ticket)
			})
			require.NoError(t, err)
			assert.Equal(t, int64(10), ticket.ID)
			assert.Equal(t, int64(4), ticket.ScopedID)
			assert.False(t, ticket.CreatedAt.IsZero())
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("missing tracker", func(t *testing.T) {
			sqlMock.ExpectBegin()
			sqlMock.ExpectQuery(regexp.QuoteMeta(`UPDATE trackers`)).
				WillReturnError(sql.ErrNoRows)
			sqlMock.ExpectRollback()

			err := repo.WithTransaction(ctx, func(tx *sql.Tx) error {
				return repo.InsertTx(ctx, tx, &domain.Ticket{TrackerID: 99, Title: "Lost", SubmitterID: 3})
			})
			require.Error(t, err)
			var notFound *domain.ErrTrackerNotFound
			assert.True(t, errors.As(err, &notFound))
		})

		t.Run("keeps imported timestamps", func(t *testing.T) {
			imported := time.Date(2020, 5, 1, 12, 0, 0, 0, time.UTC)
			sqlMock.ExpectBegin()
			sqlMock.ExpectQuery(regexp.QuoteMeta(`UPDATE trackers`)).
				WithArgs(int64(1), sqlmock.AnyArg(), "Old bug", "", int64(3), 0, 0, 1, imported, imported).
				WillReturnRows(sqlmock.NewRows([]string{"id", "scoped_id"}).AddRow(int64(11), int64(5)))
			sqlMock.ExpectCommit()

			ticket := &domain.Ticket{
				TrackerID:    1,
				Title:        "Old bug",
				SubmitterID:  3,
				Authenticity: domain.AuthenticityUnauthenticated,
				CreatedAt:    imported,
				UpdatedAt:    imported,
			}
			err := repo.WithTransaction(ctx, func(tx *sql.Tx) error {
				return repo.InsertTx(ctx, tx, ticket)
			})
			require.NoError(t, err)
			assert.Equal(t, imported, ticket.CreatedAt)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	})

	t.Run("InsertImportedTx keeps the scoped id", func(t *testing.T) {
		imported := time.Date(2021, 2, 3, 9, 30, 0, 0, time.UTC)
		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(`GREATEST\(next_ticket_id`).
			WithArgs(int64(1), int64(42), "Imported bug", "", int64(3), 8, 1, 0, imported, imported).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(20)))
		sqlMock.ExpectCommit()

		ticket := &domain.Ticket{
			TrackerID:   1,
			ScopedID:    42,
			Title:       "Imported bug",
			SubmitterID: 3,
			Status:      domain.StatusResolved,
			Resolution:  domain.ResolutionFixed,
			CreatedAt:   imported,
			UpdatedAt:   imported,
		}
		err := repo.WithTransaction(ctx, func(tx *sql.Tx) error {
			return repo.InsertImportedTx(ctx, tx, ticket)
		})
		require.NoError(t, err)
		assert.Equal(t, int64(20), ticket.ID)
		assert.Equal(t, int64(42), ticket.ScopedID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("ListAll returns tickets by scoped id ascending", func(t *testing.T) {
		rows := sqlmock.NewRows(ticketCols).
			AddRow(int64(10), int64(1), int64(1), "myproject", "alice", "First", "", int64(3), 0, 0, 0, 0, now, now).
			AddRow(int64(11), int64(1), int64(2), "myproject", "alice", "Second", "", int64(3), 0, 0, 0, 0, now, now)
		sqlMock.ExpectQuery(regexp.QuoteMeta(`ORDER BY t.scoped_id ASC`)).
			WithArgs(int64(1)).
			WillReturnRows(rows)

		tickets, err := repo.ListAll(ctx, 1)
		require.NoError(t, err)
		require.Len(t, tickets, 2)
		assert.Equal(t, int64(1), tickets[0].ScopedID)
		assert.Equal(t, int64(2), tickets[1].ScopedID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("GetByID", func(t *testing.T) {
		t.Run("found", func(t *testing.T) {
			sqlMock.ExpectQuery(regexp.QuoteMeta(`WHERE t.id = $1`)).
				WithArgs(int64(10)).
				WillReturnRows(ticketRow(10, 4))

			ticket, err := repo.GetByID(ctx, 10)
			require.NoError(t, err)
			assert.Equal(t, "Crash on startup", ticket.Title)
			assert.Equal(t, "myproject", ticket.TrackerName)
			assert.Equal(t, "alice", ticket.OwnerName)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("not found", func(t *testing.T) {
			sqlMock.ExpectQuery(regexp.QuoteMeta(`WHERE t.id = $1`)).
				WithArgs(int64(99)).
				WillReturnError(sql.ErrNoRows)

			_, err := repo.GetByID(ctx, 99)
			require.Error(t, err)
			var notFound *domain.ErrTicketNotFound
			assert.True(t, errors.As(err, &notFound))
		})
	})

	t.Run("GetByScopedID", func(t *testing.T) {
		sqlMock.ExpectQuery(regexp.QuoteMeta(`WHERE t.tracker_id = $1 AND t.scoped_id = $2`)).
			WithArgs(int64(1), int64(4)).
			WillReturnRows(ticketRow(10, 4))

		ticket, err := repo.GetByScopedID(ctx, 1, 4)
		require.NoError(t, err)
		assert.Equal(t, int64(10), ticket.ID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("List", func(t *testing.T) {
		t.Run("pages by scoped id descending", func(t *testing.T) {
			rows := sqlmock.NewRows(ticketCols).
				AddRow(int64(12), int64(1), int64(6), "myproject", "alice", "Six", "", int64(3), 0, 0, 0, 0, now, now).
				AddRow(int64(11), int64(1), int64(5), "myproject", "alice", "Five", "", int64(3), 0, 0, 0, 0, now, now)
			sqlMock.ExpectQuery(`SELECT .+ FROM tickets t JOIN trackers tr`).
				WillReturnRows(rows)

			tickets, next, err := repo.List(ctx, 1, &domain.Cursor{Count: 1})
			require.NoError(t, err)
			require.Len(t, tickets, 1)
			assert.Equal(t, int64(6), tickets[0].ScopedID)
			require.NotNil(t, next)
			assert.Equal(t, int64(6), next.Next)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("last page has no cursor", func(t *testing.T) {
			sqlMock.ExpectQuery(`SELECT .+ FROM tickets t JOIN trackers tr`).
				WillReturnRows(ticketRow(10, 4))

			tickets, next, err := repo.List(ctx, 1, nil)
			require.NoError(t, err)
			require.Len(t, tickets, 1)
			assert.Nil(t, next)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	})

	t.Run("Search", func(t *testing.T) {
		t.Run("builds term filters", func(t *testing.T) {
			sqlMock.ExpectQuery(`SELECT .+ FROM tickets t JOIN trackers tr`).
				WithArgs(int64(1), 8, "alice", "%crash%", "%crash%", "%crash%").
				WillReturnRows(ticketRow(10, 4))

			q := &domain.TicketSearchQuery{
				TrackerID: 1,
				Terms: []domain.SearchTerm{
					{Key: "status", Value: "closed"},
					{Key: "submitter", Value: "alice"},
					{Value: "crash"},
				},
			}
			tickets, next, err := repo.Search(ctx, q, nil)
			require.NoError(t, err)
			require.Len(t, tickets, 1)
			assert.Nil(t, next)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("anchors keyset pagination at the cursor row", func(t *testing.T) {
			sqlMock.ExpectQuery(`SELECT .+ FROM tickets t JOIN trackers tr`).
				WithArgs(int64(1), int64(10)).
				WillReturnRows(ticketRow(9, 3))

			tickets, _, err := repo.Search(ctx, &domain.TicketSearchQuery{TrackerID: 1}, &domain.Cursor{Next: 10, Count: 25})
			require.NoError(t, err)
			require.Len(t, tickets, 1)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	})

	t.Run("UpdateStatusTx", func(t *testing.T) {
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`UPDATE tickets SET status = $1, resolution = $2`)).
			WithArgs(int(domain.StatusResolved), int(domain.ResolutionFixed), sqlmock.AnyArg(), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		err := repo.WithTransaction(ctx, func(tx *sql.Tx) error {
			return repo.UpdateStatusTx(ctx, tx, 10, domain.StatusResolved, domain.ResolutionFixed)
		})
		require.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("AdjustCommentCountTx", func(t *testing.T) {
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`UPDATE tickets SET comment_count = comment_count + $1 WHERE id = $2`)).
			WithArgs(1, int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		err := repo.WithTransaction(ctx, func(tx *sql.Tx) error {
			return repo.AdjustCommentCountTx(ctx, tx, 10, 1)
		})
		require.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("TouchTx bumps ticket and tracker", func(t *testing.T) {
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`UPDATE tickets SET updated_at = $1 WHERE id = $2`)).
			WithArgs(sqlmock.AnyArg(), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectExec(regexp.QuoteMeta(`UPDATE trackers SET updated_at = $1`)).
			WithArgs(sqlmock.AnyArg(), int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		err := repo.WithTransaction(ctx, func(tx *sql.Tx) error {
			return repo.TouchTx(ctx, tx, 10)
		})
		require.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("Delete", func(t *testing.T) {
		sqlMock.ExpectBegin()
		for i := 0; i < 7; i++ {
			sqlMock.ExpectExec(`DELETE FROM`).
				WithArgs(int64(10)).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM tickets WHERE id = $1`)).
			WithArgs(int64(10)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		err := repo.Delete(ctx, 10)
		require.NoError(t, err)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
