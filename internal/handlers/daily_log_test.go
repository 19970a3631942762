// internal/handlers/daily_log_test.go
package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Abhi-Verma2005/healthBackend/internal/services"
)

// newUpsertRouter wires the upsert handler behind a stub identity middleware
// over a sqlmock connection.
func newUpsertRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	handler := NewDailyLogHandler(services.NewDailyLogService(db))

	r := gin.New()
	r.POST("/daily-log", func(c *gin.Context) {
		c.Set("user_id", uuid.New().String())
		c.Set("username", "healthnut")
	}, handler.Upsert)
	return r, mock
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertIncompleteCategoryPayloadIs400(t *testing.T) {
	r, mock := newUpsertRouter(t)

	// finalScore alone is not enough once nutritionData is present.
	w := postJSON(r, "/daily-log", `{"nutritionData": {"finalScore": 40}}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")

	// Validation failed before the transaction opened; zero statements ran.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertBadDateIs400(t *testing.T) {
	r, mock := newUpsertRouter(t)

	w := postJSON(r, "/daily-log", `{"date": "June 1st"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertMalformedJSONIs400(t *testing.T) {
	r, mock := newUpsertRouter(t)

	w := postJSON(r, "/daily-log", `{"nutritionData": `)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertZeroScoresAreValid(t *testing.T) {
	r, mock := newUpsertRouter(t)

	logID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "daily_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(logID.String()))
	mock.ExpectQuery(`SELECT "id","goal" FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "goal"}).
			AddRow(uuid.New().String(), ""))
	mock.ExpectQuery(`SELECT \* FROM "waters"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "waters"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(uuid.New().String()))
	mock.ExpectCommit()

	// An explicit zero must pass the required check on pointer fields.
	w := postJSON(r, "/daily-log", `{"waterData": {"finalScore": 0, "intake": 0, "target": 2.5}}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "dailyLogId")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The handler never trusts a body-supplied identity; it reads the one the
// auth middleware attached.
func TestUpsertUsesVerifiedIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	handler := NewDailyLogHandler(services.NewDailyLogService(db))

	r := gin.New()
	// No identity middleware: the request reaches the handler anonymous.
	r.POST("/daily-log", handler.Upsert)

	w := postJSON(r, "/daily-log", `{"userId": "`+uuid.New().String()+`"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

