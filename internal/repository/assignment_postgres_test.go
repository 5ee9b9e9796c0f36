package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentRepository(t *testing.T) {
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	repo := NewAssignmentRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("AssignTx", func(t *testing.T) {
		t.Run("new assignment", func(t *testing.T) {
			sqlMock.ExpectBegin()
			sqlMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO ticket_assignees`)).
				WithArgs(int64(10), int64(7), int64(3), sqlmock.AnyArg()).
				WillReturnResult(sqlmock.NewResult(0, 1))
			sqlMock.ExpectCommit()

			tx, err := db.Begin()
			require.NoError(t, err)
			assigned, err := repo.AssignTx(ctx, tx, 10, 7, 3)
			require.NoError(t, err)
			assert.True(t, assigned)
			require.NoError(t, tx.Commit())
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("already assigned", func(t *testing.T) {
			sqlMock.ExpectBegin()
			sqlMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO ticket_assignees`)).
				WillReturnResult(sqlmock.NewResult(0, 0))
			sqlMock.ExpectCommit()

			tx, err := db.Begin()
			require.NoError(t, err)
			assigned, err := repo.AssignTx(ctx, tx, 10, 7, 3)
			require.NoError(t, err)
			assert.False(t, assigned)
			require.NoError(t, tx.Commit())
		})
	})

	t.Run("UnassignTx", func(t *testing.T) {
		t.Run("drops the assignment", func(t *testing.T) {
			sqlMock.ExpectBegin()
			sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM ticket_assignees WHERE ticket_id = $1 AND assignee_id = $2`)).
				WithArgs(int64(10), int64(7)).
				WillReturnResult(sqlmock.NewResult(0, 1))
			sqlMock.ExpectCommit()

			tx, err := db.Begin()
			require.NoError(t, err)
			removed, err := repo.UnassignTx(ctx, tx, 10, 7)
			require.NoError(t, err)
			assert.True(t, removed)
			require.NoError(t, tx.Commit())
			assert.NoError(t, sqlMock.ExpectationsWereMet())
		})

		t.Run("was not assigned", func(t *testing.T) {
			sqlMock.ExpectBegin()
			sqlMock.ExpectExec(regexp.QuoteMeta(`DELETE FROM ticket_assignees`)).
				WillReturnResult(sqlmock.NewResult(0, 0))
			sqlMock.ExpectCommit()

			tx, err := db.Begin()
			require.NoError(t, err)
			removed, err := repo.UnassignTx(ctx, tx, 10, 7)
			require.NoError(t, err)
			assert.False(t, removed)
			require.NoError(t, tx.Commit())
		})
	})

	t.Run("ListForTicket", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "remote_id", "username", "email", "notify_self", "created_at", "updated_at"}).
			AddRow(int64(7), "remote-7", "carol", "carol@example.com", false, now, now)
		sqlMock.ExpectQuery(regexp.QuoteMeta(`JOIN ticket_assignees ta ON ta.assignee_id = u.id`)).
			WithArgs(int64(10)).
			WillReturnRows(rows)

		users, err := repo.ListForTicket(ctx, 10)
		require.NoError(t, err)
		require.Len(t, users, 1)
		assert.Equal(t, "carol", users[0].Username)
		assert.NoError(t, sqlMock.ExpectationsWereMet())
	})
}
