package adminhttp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intervals-icu-mcp/configs"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestMux(check CredentialCheck) *http.ServeMux {
	mux := http.NewServeMux()
	NewHandlers(check, testLogger()).RegisterAdminRoutes(mux)
	return mux
}

func writeCredentials(t *testing.T, body string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("ICU_CONFIG_FILE", path)
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestMux(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok\n", rec.Body.String())
}

func TestCredentialsNotConfigured(t *testing.T) {
	writeCredentials(t, "api_key: \"\"\nathlete_id: \"\"\n")

	rec := httptest.NewRecorder()
	newTestMux(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/credentials", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp CredentialsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Configured)
	assert.Empty(t, resp.AthleteID)
}

func TestCredentialsVerified(t *testing.T) {
	writeCredentials(t, "api_key: secret\nathlete_id: i12345\n")

	var gotKey string
	check := func(_ context.Context, cfg *configs.Config) error {
		gotKey = cfg.APIKey
		return nil
	}

	rec := httptest.NewRecorder()
	newTestMux(check).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/credentials", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "secret", gotKey)

	var resp CredentialsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Configured)
	assert.Equal(t, "i12345", resp.AthleteID)
	assert.Empty(t, resp.Error)
}

func TestCredentialsVerificationFailure(t *testing.T) {
	writeCredentials(t, "api_key: stale\nathlete_id: i12345\n")

	check := func(context.Context, *configs.Config) error {
		return errors.New("API error 401: Invalid API key")
	}

	rec := httptest.NewRecorder()
	newTestMux(check).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/credentials", nil))

	var resp CredentialsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Configured)
	assert.Equal(t, "API error 401: Invalid API key", resp.Error)
}
