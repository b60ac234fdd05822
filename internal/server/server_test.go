package server

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/boldenardo/astrotarot-hub-sub001/internal/config"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/database"
	"github.com/boldenardo/astrotarot-hub-sub001/internal/models"
	"github.com/google/uuid"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) (http.Handler, *Services, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	cfg := &config.Config{
		Env:              "test",
		JWTSecret:        "router-test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: time.Hour,
		CORSAllowOrigins: []string{"*"},
		Readings:         config.ReadingsConfig{HistoryLimit: config.MaxReadingsHistory},
	}
	db := &database.DB{Pool: mock}
	svc := NewServices(cfg, db)
	return NewRouter(cfg, zerolog.Nop(), db, svc), svc, mock
}

func TestRouter_Health(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_ReadingHistoryRequiresToken(t *testing.T) {
	router, _, mock := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/user/readings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_ReadingHistoryEmpty(t *testing.T) {
	router, svc, mock := setupRouter(t)
	userID := uuid.New()

	pair, err := svc.JWT.GenerateTokenPair(userID, "leitor@example.com")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM tarot_readings`).
		WithArgs(userID, config.MaxReadingsHistory).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "deck_type", "spread_type", "cards", "interpretation", "is_premium", "created_at",
		}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/readings", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body, _ := io.ReadAll(rec.Body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"readings":[]}`, string(body))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_MalformedReadingIDIsBadRequest(t *testing.T) {
	router, svc, _ := setupRouter(t)

	pair, err := svc.JWT.GenerateTokenPair(uuid.New(), "leitor@example.com")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/readings/not-a-uuid", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_ServesOpenAPIDocument(t *testing.T) {
	router, _, _ := setupRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/openapi.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"/user/readings"`)
}

func userRows(id uuid.UUID, plan string, readingsLeft int) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{
		"id", "email", "password_hash", "name", "birth_date", "birth_time", "birth_location",
		"subscription_plan", "subscription_status", "readings_left", "created_at", "updated_at",
	}).AddRow(
		id, "leitor@example.com", "hash", (*string)(nil), (*time.Time)(nil), (*string)(nil), (*string)(nil),
		plan, models.SubscriptionActive, readingsLeft, now, now,
	)
}

func postReading(t *testing.T, router http.Handler, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/readings", strings.NewReader(`{"deck_type":"NORMAL","spread_type":"SINGLE"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_CreateReadingSpendsAllowance(t *testing.T) {
	router, svc, mock := setupRouter(t)
	userID := uuid.New()

	pair, err := svc.JWT.GenerateTokenPair(userID, "leitor@example.com")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnRows(userRows(userID, models.PlanFree, 1))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE users SET readings_left = readings_left - 1`).
		WithArgs(userID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectQuery(`INSERT INTO tarot_readings`).
		WithArgs(userID, "NORMAL", "SINGLE", pgxmock.AnyArg(), pgxmock.AnyArg(), false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(uuid.New(), time.Now()))
	mock.ExpectCommit()

	rec := postReading(t, router, pair.AccessToken)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"needs_payment":true`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_CreateReadingWithoutAllowance(t *testing.T) {
	router, svc, mock := setupRouter(t)
	userID := uuid.New()

	pair, err := svc.JWT.GenerateTokenPair(userID, "leitor@example.com")
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT .+ FROM users WHERE id = \$1`).
		WithArgs(userID).
		WillReturnRows(userRows(userID, models.PlanFree, 0))

	rec := postReading(t, router, pair.AccessToken)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"needs_payment":true`)
	require.NoError(t, mock.ExpectationsWereMet())
}
