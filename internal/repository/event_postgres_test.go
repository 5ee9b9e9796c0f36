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

func TestEventRepository(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewEventRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	eventCols := []string{"id", "event_type", "participant_id", "ticket_id", "comment_id", "label_id", "by_participant_id", "from_ticket_id", "old_status", "new_status", "old_resolution", "new_resolution", "created_at"}

	commentEventRow := func(id int64) *sqlmock.Rows {
		return sqlmock.NewRows(eventCols).
			AddRow(id, int(domain.EventComment), int64(3), int64(10), int64(5), nil, nil, nil, nil, nil, nil, nil, now)
	}

	t.Run("InsertTx", func(t *testing.T) {
		t.Run("comment event", func(t *testing.T) {
			sqlMock.ExpectBegin()
			sqlMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO events`)).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(20)))
			sqlMock.ExpectCommit()

			tx, err := db.Begin()
			require.NoError(t, err)
			participantID, ticketID, commentID := int64(3), int64(10), int64(5)
			event := &domain.Event{
				EventType:     domain.EventComment,
				ParticipantID: &participantID,
				TicketID:      &ticketID,
				CommentID:     &commentID,
			}
			require.NoError(t, repo.InsertTx(ctx, tx, event))
			require.NoError(t, tx.Commit())

			assert.Equal(t, int64(20), event.ID)
			assert.False(t, event.CreatedAt.IsZero())
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("status change carries old and new pairs", func(t *testing.T) {
			sqlMock.ExpectBegin()
			oldStatus, newStatus := domain.StatusReported, domain.StatusResolved
			oldRes, newRes := domain.ResolutionUnresolved, domain.ResolutionFixed
			participantID, ticketID := int64(3), int64(10)
			sqlMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO events`)).
				WithArgs(int(domain.EventStatusChange), participantID, ticketID, nil, nil, nil, nil,
					int64(oldStatus), int64(newStatus), int64(oldRes), int64(newRes), sqlmock.AnyArg()).
				WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(21)))
			sqlMock.ExpectCommit()

			tx, err := db.Begin()
			require.NoError(t, err)
			event := &domain.Event{
				EventType:     domain.EventStatusChange,
				ParticipantID: &participantID,
				TicketID:      &ticketID,
				OldStatus:     &oldStatus,
				NewStatus:     &newStatus,
				OldResolution: &oldRes,
				NewResolution: &newRes,
			}
			require.NoError(t, repo.InsertTx(ctx, tx, event))
			require.NoError(t, tx.Commit())
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})
	})

	t.Run("GetByID", func(t *testing.T) {
		t.Run("found", func(t *testing.T) {
			sqlMock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = $1`)).
				WithArgs(int64(20)).
				WillReturnRows(commentEventRow(20))

			event, err := repo.GetByID(ctx, 20)
			require.NoError(t, err)
			assert.True(t, event.EventType.Has(domain.EventComment))
			require.NotNil(t, event.CommentID)
			assert.Equal(t, int64(5), *event.CommentID)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("not found", func(t *testing.T) {
			sqlMock.ExpectQuery(regexp.QuoteMeta(`FROM events WHERE id = $1`)).
				WithArgs(int64(99)).
				WillReturnError(sql.ErrNoRows)

			_, err := repo.GetByID(ctx, 99)
			require.Error(t, err)
			var notFound *domain.ErrEventNotFound
			assert.True(t, errors.As(err, &notFound))
		})
	})

	t.Run("ListByTicket pages ascending", func(t *testing.T) {
		rows := sqlmock.NewRows(eventCols).
			AddRow(int64(20), int(domain.EventComment), int64(3), int64(10), int64(5), nil, nil, nil, nil, nil, nil, nil, now).
			AddRow(int64(21), int(domain.EventComment), int64(3), int64(10), int64(6), nil, nil, nil, nil, nil, nil, nil, now)
		sqlMock.ExpectQuery(regexp.QuoteMeta(`WHERE ticket_id = $1 AND id > $2`)).
			WithArgs(int64(10), int64(0), 2).
			WillReturnRows(rows)

		events, next, err := repo.ListByTicket(ctx, 10, &domain.Cursor{Count: 1})
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, int64(20), events[0].ID)
		require.NotNil(t, next)
		assert.Equal(t, int64(20), next.Next)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("ListAllByTicket returns every event ascending", func(t *testing.T) {
		rows := sqlmock.NewRows(eventCols).
			AddRow(int64(19), int(domain.EventCreated), int64(3), int64(10), nil, nil, nil, nil, nil, nil, nil, nil, now).
			AddRow(int64(20), int(domain.EventComment), int64(3), int64(10), int64(5), nil, nil, nil, nil, nil, nil, nil, now)
		sqlMock.ExpectQuery(regexp.QuoteMeta(`WHERE ticket_id = $1 ORDER BY id ASC`)).
			WithArgs(int64(10)).
			WillReturnRows(rows)

		events, err := repo.ListAllByTicket(ctx, 10)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, int64(19), events[0].ID)
		assert.Equal(t, domain.EventComment, events[1].EventType)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("ListForUser pages the feed descending", func(t *testing.T) {
		sqlMock.ExpectQuery(regexp.QuoteMeta(`JOIN event_notifications n ON n.event_id = e.id`)).
			WithArgs(int64(7), int64(0), 26).
			WillReturnRows(commentEventRow(20))

		events, next, err := repo.ListForUser(ctx, 7, nil)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Nil(t, next)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("GetLatestByCommentTx", func(t *testing.T) {
		sqlMock.ExpectBegin()
		sqlMock.ExpectQuery(regexp.QuoteMeta(`WHERE comment_id = $1 ORDER BY id DESC LIMIT 1`)).
			WithArgs(int64(5)).
			WillReturnRows(commentEventRow(20))
		sqlMock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		event, err := repo.GetLatestByCommentTx(ctx, tx, 5)
		require.NoError(t, err)
		assert.Equal(t, int64(20), event.ID)
		require.NoError(t, tx.Commit())
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("RepointCommentTx", func(t *testing.T) {
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`UPDATE events SET comment_id = $1 WHERE id = $2`)).
			WithArgs(int64(8), int64(20)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		require.NoError(t, repo.RepointCommentTx(ctx, tx, 20, 8))
		require.NoError(t, tx.Commit())
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("InsertNotificationTx is idempotent", func(t *testing.T) {
		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO event_notifications`)).
			WithArgs(int64(20), int64(7), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		require.NoError(t, repo.InsertNotificationTx(ctx, tx, 20, 7))
		require.NoError(t, tx.Commit())
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
