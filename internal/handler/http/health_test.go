package http

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stac-index/internal/observability/metrics"
)

func newPingDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func getHealth(t *testing.T, h *HealthHandler) (int, HealthResponse, http.Header) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var response HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
	return rec.Code, response, rec.Header()
}

/* ───────── /health ───────── */

func TestHealthHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
	}{
		{name: "healthy database", wantCode: http.StatusOK, wantStatus: "healthy"},
		{name: "database connection error", pingErr: sql.ErrConnDone, wantCode: http.StatusServiceUnavailable, wantStatus: "unhealthy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newPingDB(t)
			mock.ExpectPing().WillReturnError(tt.pingErr)

			code, response, header := getHealth(t, &HealthHandler{DB: db, Version: "1.4.0"})

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, response.Status)
			assert.Equal(t, "1.4.0", response.Version)
			assert.NotEmpty(t, response.Timestamp)
			assert.Contains(t, response.Checks, "database")
			assert.Equal(t, "no-cache, no-store, must-revalidate", header.Get("Cache-Control"))
			assert.Equal(t, "application/json", header.Get("Content-Type"))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_NoDatabaseConfigured(t *testing.T) {
	code, response, _ := getHealth(t, &HealthHandler{})

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "unhealthy", response.Status)
	assert.Equal(t, "not configured", response.Checks["database"].Message)
}

func TestHealthHandler_SanitizesPingError(t *testing.T) {
	db, mock := newPingDB(t)
	mock.ExpectPing().WillReturnError(errors.New("connect postgres://stac:hunter2@db:5432/stac failed"))

	_, response, _ := getHealth(t, &HealthHandler{DB: db})

	msg := response.Checks["database"].Message
	assert.NotContains(t, msg, "hunter2")
	assert.Contains(t, msg, "stac:****@")
}

func TestHealthHandler_PoolDetails(t *testing.T) {
	tests := []struct {
		name            string
		maxOpen         int
		wantStatus      string
		wantUtilization bool
	}{
		// 0 は無制限: 使用率は計算しない
		{name: "unlimited pool", maxOpen: 0, wantStatus: "degraded", wantUtilization: false},
		{name: "single connection", maxOpen: 1, wantStatus: "healthy", wantUtilization: true},
		{name: "default pool", maxOpen: 25, wantStatus: "healthy", wantUtilization: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newPingDB(t)
			db.SetMaxOpenConns(tt.maxOpen)
			mock.ExpectPing()

			code, response, _ := getHealth(t, &HealthHandler{DB: db})

			// degraded でも全体は healthy
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "healthy", response.Status)

			check := response.Checks["database"]
			assert.Equal(t, tt.wantStatus, check.Status)
			assert.Equal(t, float64(tt.maxOpen), check.Details["max_open_connections"])
			_, hasUtilization := check.Details["utilization_percent"]
			assert.Equal(t, tt.wantUtilization, hasUtilization)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHealthHandler_UpdatesPoolGauges(t *testing.T) {
	db, mock := newPingDB(t)
	mock.ExpectPing()
	metrics.UpdateDBConnectionStats(7, 7)

	getHealth(t, &HealthHandler{DB: db})

	stats := db.Stats()
	assert.Equal(t, float64(stats.InUse), testutil.ToFloat64(metrics.DBConnectionsActive))
	assert.Equal(t, float64(stats.Idle), testutil.ToFloat64(metrics.DBConnectionsIdle))
}

type fixedBreaker gobreaker.State

func (b fixedBreaker) State() gobreaker.State { return gobreaker.State(b) }

func TestHealthHandler_CircuitBreaker(t *testing.T) {
	tests := []struct {
		state      gobreaker.State
		wantStatus string
	}{
		{state: gobreaker.StateClosed, wantStatus: "healthy"},
		{state: gobreaker.StateHalfOpen, wantStatus: "degraded"},
		{state: gobreaker.StateOpen, wantStatus: "degraded"},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			db, mock := newPingDB(t)
			mock.ExpectPing()

			code, response, _ := getHealth(t, &HealthHandler{DB: db, Breaker: fixedBreaker(tt.state)})

			// ブレーカーの状態は全体のステータスに影響しない
			assert.Equal(t, http.StatusOK, code)
			assert.Equal(t, "healthy", response.Status)
			assert.Equal(t, tt.wantStatus, response.Checks["circuit_breaker"].Status)
			assert.Equal(t, tt.state.String(), response.Checks["circuit_breaker"].Details["state"])
		})
	}
}

/* ───────── /ready, /live ───────── */

type pingFunc func(context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestReadyHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name     string
		db       Pinger
		wantCode int
		wantBody string
	}{
		{
			name:     "ready",
			db:       pingFunc(func(context.Context) error { return nil }),
			wantCode: http.StatusOK,
			wantBody: "ready",
		},
		{
			name:     "database not ready",
			db:       pingFunc(func(context.Context) error { return sql.ErrConnDone }),
			wantCode: http.StatusServiceUnavailable,
			wantBody: "database not ready\n",
		},
		{
			name:     "breaker open",
			db:       pingFunc(func(context.Context) error { return gobreaker.ErrOpenState }),
			wantCode: http.StatusServiceUnavailable,
			wantBody: "database not ready\n",
		},
		{
			name:     "not configured",
			wantCode: http.StatusServiceUnavailable,
			wantBody: "database not configured\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			(&ReadyHandler{DB: tt.db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
		})
	}
}

func TestReadyHandler_Timeout(t *testing.T) {
	db, mock := newPingDB(t)
	mock.ExpectPing().WillDelayFor(3 * time.Second)

	rec := httptest.NewRecorder()
	(&ReadyHandler{DB: db}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestLiveHandler_ServeHTTP(t *testing.T) {
	rec := httptest.NewRecorder()
	(&LiveHandler{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alive", rec.Body.String())
	assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
}
