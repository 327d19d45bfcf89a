package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(body string, status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func TestMetricsMiddleware_PathNormalization(t *testing.T) {
	httpRequestsTotal.Reset()
	httpRequestDuration.Reset()

	handler := MetricsMiddleware(okHandler("OK", http.StatusOK))

	for _, path := range []string{"/catalogs/earth-search", "/catalogs/cbers", "/catalogs/usgs/"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.InDelta(t, 3, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/catalogs/:slug", "200")), 0.001)
	// 1 label combination only
	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestsTotal))
}

func TestMetricsMiddleware_QueryParameters(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware(okHandler("{}", http.StatusOK))
	req := httptest.NewRequest(http.MethodGet, "/proxy?https%3A%2F%2Fexample.com%2Fa.json", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.InDelta(t, 1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/proxy", "200")), 0.001)
}

func TestMetricsMiddleware_StatusCodes(t *testing.T) {
	httpRequestsTotal.Reset()

	tests := []struct {
		status int
		label  string
	}{
		{http.StatusOK, "200"},
		{http.StatusBadRequest, "400"},
		{http.StatusNotFound, "404"},
		{http.StatusInternalServerError, "500"},
	}

	for _, tt := range tests {
		handler := MetricsMiddleware(okHandler("x", tt.status))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/add", nil))
		assert.InDelta(t, 1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/add", tt.label)), 0.001, tt.label)
	}
}

func TestMetricsMiddleware_ImplicitStatus(t *testing.T) {
	httpRequestsTotal.Reset()

	// WriteHeader未呼び出しの場合は200として記録
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/tags", nil))

	assert.InDelta(t, 1, testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/tags", "200")), 0.001)
}

func TestMetricsMiddleware_RequestAndResponseSize(t *testing.T) {
	httpRequestSize.Reset()
	httpResponseSize.Reset()

	handler := MetricsMiddleware(okHandler(strings.Repeat("b", 300), http.StatusOK))
	req := httptest.NewRequest(http.MethodPost, "/add", strings.NewReader(`{"type":"catalog"}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestSize))
	assert.Equal(t, 1, testutil.CollectAndCount(httpResponseSize))
}

func TestMetricsMiddleware_InFlight(t *testing.T) {
	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	}))

	before := testutil.ToFloat64(httpRequestsInFlight)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.InDelta(t, before+1, during, 0.001)
	assert.InDelta(t, before, testutil.ToFloat64(httpRequestsInFlight), 0.001)
}

func TestMetricsHandler(t *testing.T) {
	MetricsMiddleware(okHandler("x", http.StatusOK)).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/catalogs", nil))

	rr := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body, err := io.ReadAll(rr.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
	assert.Contains(t, string(body), "http_request_duration_seconds")
}
