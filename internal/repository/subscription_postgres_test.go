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

func TestSubscriptionRepository(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewSubscriptionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	subCols := []string{"id", "participant_id", "tracker_id", "ticket_id", "created_at"}

	t.Run("SubscribeTracker", func(t *testing.T) {
		t.Run("returns the row on conflict too", func(t *testing.T) {
			rows := sqlmock.NewRows(subCols).AddRow(int64(1), int64(3), int64(1), nil, now)
			sqlMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ticket_subscriptions (participant_id, tracker_id, created_at)`)).
				WithArgs(int64(3), int64(1), sqlmock.AnyArg()).
				WillReturnRows(rows)

			sub, err := repo.SubscribeTracker(ctx, 3, 1)
			require.NoError(t, err)
			require.NotNil(t, sub.TrackerID)
			assert.Equal(t, int64(1), *sub.TrackerID)
			assert.Nil(t, sub.TicketID)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("database error", func(t *testing.T) {
			sqlMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ticket_subscriptions`)).
				WillReturnError(errors.New("database error"))

			_, err := repo.SubscribeTracker(ctx, 3, 1)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to subscribe to tracker")
		})
	})

	t.Run("SubscribeTicket", func(t *testing.T) {
		rows := sqlmock.NewRows(subCols).AddRow(int64(2), int64(3), nil, int64(10), now)
		sqlMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ticket_subscriptions (participant_id, ticket_id, created_at)`)).
			WithArgs(int64(3), int64(10), sqlmock.AnyArg()).
			WillReturnRows(rows)

		sub, err := repo.SubscribeTicket(ctx, 3, 10)
		require.NoError(t, err)
		require.NotNil(t, sub.TicketID)
		assert.Equal(t, int64(10), *sub.TicketID)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("SubscribeTicketTx", func(t *testing.T) {
		sqlMock.ExpectBegin()
		rows := sqlmock.NewRows(subCols).AddRow(int64(2), int64(3), nil, int64(10), now)
		sqlMock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO ticket_subscriptions (participant_id, ticket_id, created_at)`)).
			WithArgs(int64(3), int64(10), sqlmock.AnyArg()).
			WillReturnRows(rows)
		sqlMock.ExpectCommit()

		tx, err := db.Begin()
		require.NoError(t, err)
		sub, err := repo.SubscribeTicketTx(ctx, tx, 3, 10)
		require.NoError(t, err)
		require.NotNil(t, sub.TicketID)
		assert.Equal(t, int64(10), *sub.TicketID)
		require.NoError(t, tx.Commit())
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("UnsubscribeTracker", func(t *testing.T) {
		t.Run("removes the row", func(t *testing.T) {
			sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM ticket_subscriptions WHERE participant_id = $1 AND tracker_id = $2`)).
				WithArgs(int64(3), int64(1)).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := repo.UnsubscribeTracker(ctx, 3, 1)
			require.NoError(t, err)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("not subscribed", func(t *testing.T) {
			sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM ticket_subscriptions WHERE participant_id = $1 AND tracker_id = $2`)).
				WillReturnResult(sqlmock.NewResult(0, 0))

			err := repo.UnsubscribeTracker(ctx, 3, 1)
			require.Error(t, err)
			var notFound *domain.ErrSubscriptionNotFound
			assert.True(t, errors.As(err, &notFound))
		})
	})

	t.Run("GetForTicket", func(t *testing.T) {
		t.Run("found", func(t *testing.T) {
			rows := sqlmock.NewRows(subCols).AddRow(int64(2), int64(3), nil, int64(10), now)
			sqlMock.ExpectQuery(regexp.QuoteMeta(`WHERE participant_id = $1 AND ticket_id = $2`)).
				WithArgs(int64(3), int64(10)).
				WillReturnRows(rows)

			sub, err := repo.GetForTicket(ctx, 3, 10)
			require.NoError(t, err)
			assert.Equal(t, int64(3), sub.ParticipantID)
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("not found", func(t *testing.T) {
			sqlMock.ExpectQuery(regexp.QuoteMeta(`WHERE participant_id = $1 AND ticket_id = $2`)).
				WithArgs(int64(3), int64(99)).
				WillReturnError(sql.ErrNoRows)

			_, err := repo.GetForTicket(ctx, 3, 99)
			require.Error(t, err)
			var notFound *domain.ErrSubscriptionNotFound
			assert.True(t, errors.As(err, &notFound))
		})
	})

	t.Run("ListSubscribers merges scopes without duplicates", func(t *testing.T) {
		participantCols := []string{"id", "participant_type", "user_id", "username", "email", "email_name", "external_id", "external_url", "created_at"}
		rows := sqlmock.NewRows(participantCols).
			AddRow(int64(3), "user", int64(7), "alice", nil, nil, nil, nil, now).
			AddRow(int64(4), "email", nil, nil, "bob@example.com", nil, nil, nil, now)
		sqlMock.ExpectQuery(regexp.QuoteMeta(`WHERE s.tracker_id = $1 OR s.ticket_id = $2`)).
			WithArgs(int64(1), int64(10)).
			WillReturnRows(rows)

		participants, err := repo.ListSubscribers(ctx, 1, 10)
		require.NoError(t, err)
		require.Len(t, participants, 2)
		assert.Equal(t, domain.ParticipantTypeUser, participants[0].Type)
		assert.Equal(t, domain.ParticipantTypeEmail, participants[1].Type)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
