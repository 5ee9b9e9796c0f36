package database

import (
	"testing"

	"github.com/tracknest/tracknest/internal/database/schema"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeDatabase(t *testing.T) {

	t.Run("creates tables successfully", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// Setup expectations for table creation
		for range schema.TableDefinitions {
			mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		// Setup expectations for migration statements
		for range schema.GetMigrationStatements() {
			mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		err = InitializeDatabase(db)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("handles table creation error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// First table creation fails
		mock.ExpectExec("").WillReturnError(assert.AnError)

		err = InitializeDatabase(db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create table")
	})

	t.Run("handles migration error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		// Setup expectations for table creation
		for range schema.TableDefinitions {
			mock.ExpectExec("").WillReturnResult(sqlmock.NewResult(0, 0))
		}

		// First migration statement fails
		mock.ExpectExec("").WillReturnError(assert.AnError)

		err = InitializeDatabase(db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to run migration")
	})
}

func TestCleanDatabase(t *testing.T) {
	t.Run("drops tables in reverse order", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		for i := len(schema.TableNames) - 1; i >= 0; i-- {
			mock.ExpectExec("DROP TABLE IF EXISTS " + schema.TableNames[i]).
				WillReturnResult(sqlmock.NewResult(0, 0))
		}

		err = CleanDatabase(db)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("handles drop error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("DROP TABLE IF EXISTS").WillReturnError(assert.AnError)

		err = CleanDatabase(db)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to drop table")
	})
}
