package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nnmc-digital/projectboard/internal/adapters/http/handlers"
	"github.com/nnmc-digital/projectboard/internal/ports"
)

// stubRegistry implements ports.HealthRegistry returning fixed results.
type stubRegistry struct {
	results map[string]error
}

func (s *stubRegistry) Register(ports.HealthChecker) {}

func (s *stubRegistry) CheckAll(context.Context) map[string]error {
	return s.results
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

func TestLiveness_AlwaysOK(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(&stubRegistry{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	h.Liveness(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[map[string]string](t, rec)
	assert.Equal(t, "ok", resp["status"])
}

func TestReadiness_AllHealthy(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(&stubRegistry{results: map[string]error{
		"identity-provider": nil,
		"database":          nil,
	}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	h.Readiness(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "ready", resp["status"])

	checks, ok := resp["checks"].(map[string]any)
	require.True(t, ok, "checks field not a map")
	assert.Equal(t, "ok", checks["identity-provider"])
	assert.Equal(t, "ok", checks["database"])
}

func TestReadiness_Unhealthy(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(&stubRegistry{results: map[string]error{
		"identity-provider": errors.New("connection refused"),
		"database":          nil,
	}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	h.Readiness(rec, req)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	resp := decodeJSON[map[string]any](t, rec)
	assert.Equal(t, "not_ready", resp["status"])

	checks, ok := resp["checks"].(map[string]any)
	require.True(t, ok, "checks field not a map")
	assert.Equal(t, "connection refused", checks["identity-provider"])
	assert.Equal(t, "ok", checks["database"])
}

func TestReadiness_NoCheckers(t *testing.T) {
	t.Parallel()

	h := handlers.NewHealthHandler(&stubRegistry{results: map[string]error{}})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	h.Readiness(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}
