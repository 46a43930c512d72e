package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deikotec/socialflow/internal/app"
	"github.com/deikotec/socialflow/internal/config"
	"github.com/deikotec/socialflow/internal/infrastructure/auth"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/handlers"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/routes"
	v1 "github.com/deikotec/socialflow/internal/interfaces/httpserver/routes/v1"
)

func testConfig() *config.Config {
	return &config.Config{
		ServiceName:         "socialflow-test",
		Environment:         "test",
		AppName:             "SocialFlow",
		PublicBaseURL:       "http://api.test",
		DashboardURL:        "http://dashboard.test",
		DocumentStore:       config.DocumentStoreMemory,
		AuthMode:            config.AuthModeDisabled,
		MediaMirror:         config.MediaMirrorNone,
		DriveDownloadHost:   "https://drive.google.com",
		FolderTimezone:      "UTC",
		PublishPollAttempts: 1,
		MaxUploadBytes:      1 << 20,
	}
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()
	cfg := testConfig()
	log := zerolog.Nop()

	components, err := app.Build(ctx, cfg, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = components.Close() })

	validator, err := auth.NewValidator(ctx, cfg, nil, log)
	require.NoError(t, err)

	provider := handlers.NewProvider(
		components.Company,
		components.Content,
		components.Assets,
		components.Orchestrator,
		components.Strategy,
		components.Ideas,
		components.Integrations,
		components.Portal,
	)
	server := httpserver.New(cfg, log, routes.NewProvider(v1.NewRoutes(provider, validator, cfg.MaxUploadBytes, log)), components.Ready)
	return server.Handler()
}

func do(t *testing.T, handler http.Handler, method, path, userID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != "" {
		req.Header.Set(auth.DevUserHeader, userID)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestCoreRoutes(t *testing.T) {
	handler := newTestServer(t)

	for _, path := range []string{"/", "/healthz", "/readyz"} {
		rec := do(t, handler, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}

	rec := do(t, handler, http.MethodGet, "/", "", nil)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}

func TestContentWorkflow(t *testing.T) {
	handler := newTestServer(t)

	rec := do(t, handler, http.MethodPost, "/v1/companies", "owner", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	companyID, _ := created["id"].(string)
	portalToken, _ := created["portalToken"].(string)
	require.NotEmpty(t, companyID)
	require.NotEmpty(t, portalToken)
	assert.Equal(t, false, created["driveConnected"])

	rec = do(t, handler, http.MethodGet, "/v1/companies/"+companyID, "stranger", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, handler, http.MethodPost, "/v1/companies", "owner", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	base := "/v1/companies/" + companyID
	rec = do(t, handler, http.MethodPost, base+"/content", "owner", map[string]any{"topic": "Launch", "platforms": []string{"instagram"}, "format": "reel"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	piece := decode[map[string]any](t, rec)
	contentID, _ := piece["id"].(string)
	require.NotEmpty(t, contentID)
	assert.Equal(t, "idea", piece["status"])

	rec = do(t, handler, http.MethodPatch, base+"/content/"+contentID+"/status", "owner", map[string]any{"status": "archived"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, handler, http.MethodPatch, base+"/content/"+contentID+"/status", "owner", map[string]any{"status": "review"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, handler, http.MethodGet, "/v1/portal/"+portalToken, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[struct {
		CompanyName string `json:"companyName"`
		Content     []struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"content"`
	}](t, rec)
	assert.Equal(t, "Acme", view.CompanyName)
	require.Len(t, view.Content, 1)
	assert.Equal(t, contentID, view.Content[0].ID)

	rec = do(t, handler, http.MethodPost, "/v1/portal/"+portalToken+"/content/"+contentID+"/reject", "", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, handler, http.MethodPost, "/v1/portal/"+portalToken+"/content/"+contentID+"/approve", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, handler, http.MethodGet, base+"/content", "owner", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]map[string]any](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, "approved", listed[0]["status"])

	rec = do(t, handler, http.MethodGet, "/v1/portal/unknown-token", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPublishWithoutMedia(t *testing.T) {
	handler := newTestServer(t)

	rec := do(t, handler, http.MethodPost, "/v1/companies", "owner", map[string]any{"name": "Acme"})
	require.Equal(t, http.StatusCreated, rec.Code)
	companyID := decode[map[string]any](t, rec)["id"].(string)

	base := "/v1/companies/" + companyID
	rec = do(t, handler, http.MethodPost, base+"/content", "owner", map[string]any{"topic": "Launch", "platforms": []string{"instagram"}})
	require.Equal(t, http.StatusCreated, rec.Code)
	contentID := decode[map[string]any](t, rec)["id"].(string)

	rec = do(t, handler, http.MethodPost, base+"/content/"+contentID+"/publish", "owner", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "No media file linked to this content", body["error"])

	rec = do(t, handler, http.MethodPost, base+"/content/"+contentID+"/publish", "stranger", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestIntegrations(t *testing.T) {
	handler := newTestServer(t)

	rec := do(t, handler, http.MethodGet, "/v1/integrations/google/login?companyId=cmp_1", "owner", nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)

	rec = do(t, handler, http.MethodGet, "/v1/integrations/dropbox/login?companyId=cmp_1", "owner", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, handler, http.MethodGet, "/v1/integrations/tiktok/callback?error=access_denied", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	location := rec.Header().Get("Location")
	assert.True(t, strings.HasPrefix(location, "http://dashboard.test/settings?error="), location)

	rec = do(t, handler, http.MethodGet, "/v1/integrations/tiktok/callback?code=abc&state=forged", "", nil)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "error=invalid_state")
}
