// internal/services/user_service_test.go
package services

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteAccountCascadesInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	userID := uuid.New()
	logID := uuid.New()
	blogID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(logID.String()))
	mock.ExpectExec(`DELETE FROM "nutritions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "sleeps"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "moods"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "waters"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "daily_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT "id" FROM "blogs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(blogID.String()))
	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "comments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "comments"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "blogs"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "users"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := svc.DeleteAccount(userID)
	require.NoError(t, err)

	// Every owned row went inside the single BEGIN/COMMIT above.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccountRollsBackWhenAStepFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	userID := uuid.New()
	logID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(logID.String()))
	mock.ExpectExec(`DELETE FROM "nutritions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "sleeps"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "moods"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "waters"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "daily_logs"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := svc.DeleteAccount(userID)
	require.Error(t, err)

	// Rollback fired; nothing past the failing delete was attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAccountUnknownUserRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewUserService(db)

	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`DELETE FROM "daily_logs"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT "id" FROM "blogs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectExec(`DELETE FROM "likes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "comments"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "blogs"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "users"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := svc.DeleteAccount(userID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
