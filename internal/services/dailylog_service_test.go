// internal/services/dailylog_service_test.go
package services

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Abhi-Verma2005/healthBackend/internal/models"
)

func nutritionInput() *DailyLogInput {
	return &DailyLogInput{
		Date: time.Date(2025, 6, 1, 14, 30, 0, 0, time.UTC),
		Nutrition: &NutritionInput{
			FinalScore: 40,
			Protein:    20,
			Carbs:      120,
			Fats:       30,
			Vitamins:   50,
			Calories:   1800,
		},
	}
}

func TestUpsertCreatesLogAndNutrition(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDailyLogService(db)

	userID := uuid.New()
	logID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(logID.String()))
	mock.ExpectQuery(`SELECT "id","goal" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "goal"}).
			AddRow(userID.String(), string(models.GoalLoseWeight)))
	mock.ExpectQuery(`SELECT \* FROM "nutritions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "nutritions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	result, err := svc.Upsert(userID, nutritionInput())
	require.NoError(t, err)

	assert.True(t, result.Created)
	assert.Equal(t, logID, result.DailyLogID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertUpdatesExistingRecordInPlace(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDailyLogService(db)

	userID := uuid.New()
	logID := uuid.New()
	nutritionID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).
			AddRow(logID.String(), userID.String()))
	mock.ExpectQuery(`SELECT "id","goal" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "goal"}).
			AddRow(userID.String(), ""))
	mock.ExpectQuery(`SELECT \* FROM "nutritions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "daily_log_id", "final_score"}).
			AddRow(nutritionID.String(), logID.String(), 90.0))
	mock.ExpectExec(`UPDATE "nutritions"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	result, err := svc.Upsert(userID, nutritionInput())
	require.NoError(t, err)

	// The second submission revises the existing row; nothing new is created.
	assert.False(t, result.Created)
	assert.Equal(t, logID, result.DailyLogID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertRollsBackWhenSubRecordFails(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDailyLogService(db)

	userID := uuid.New()
	logID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(logID.String()))
	mock.ExpectQuery(`SELECT "id","goal" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "goal"}).
			AddRow(userID.String(), ""))
	mock.ExpectQuery(`SELECT \* FROM "nutritions"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "nutritions"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Upsert(userID, nutritionInput())
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertCreateRaceFallsBackToLookup(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDailyLogService(db)

	userID := uuid.New()
	logID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "daily_logs"`).
		WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectQuery(`SELECT \* FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).
			AddRow(logID.String(), userID.String()))
	mock.ExpectQuery(`SELECT "id","goal" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "goal"}).
			AddRow(userID.String(), ""))
	mock.ExpectCommit()

	result, err := svc.Upsert(userID, &DailyLogInput{Date: time.Now()})
	require.NoError(t, err)

	// The concurrent creator's row is reused; this call did not create.
	assert.False(t, result.Created)
	assert.Equal(t, logID, result.DailyLogID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTodayNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDailyLogService(db)

	mock.ExpectQuery(`SELECT \* FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Today(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgressWithoutLogReportsZeroCompletion(t *testing.T) {
	db, mock := newMockDB(t)
	svc := NewDailyLogService(db)

	mock.ExpectQuery(`SELECT \* FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	progress, err := svc.Progress(uuid.New(), time.Now())
	require.NoError(t, err)

	assert.Equal(t, 0.0, progress.Percentage)
	for _, category := range models.Categories {
		assert.False(t, progress.Completed[category])
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
