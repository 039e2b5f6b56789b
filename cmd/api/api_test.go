package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"paygate/internal/ratelimiter"
)

func newTestApplication(t *testing.T) *application {
	t.Helper()

	return &application{
		config: config{
			addr: ":0",
			env:  "test",
			auth: authConfig{
				basic: basicConfig{user: "admin", pass: "secret"},
			},
			rateLimiter: ratelimiter.Config{Enabled: false},
		},
		logger: zap.NewNop().Sugar(),
	}
}

func TestMount_HealthRequiresBasicAuth(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/health", nil)
	req.SetBasicAuth("admin", "secret")
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"status":"ok"`)
}

func TestMount_UnknownRouteIs404(t *testing.T) {
	app := newTestApplication(t)
	mux := app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
