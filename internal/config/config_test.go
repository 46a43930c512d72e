package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"DOCUMENT_STORE", "AUTH_MODE", "MEDIA_MIRROR", "APP_NAME", "PUBLISH_POLL_ATTEMPTS", "PUBLISH_POLL_INTERVAL", "TIKTOK_REFRESH_CRON", "FOLDER_TIMEZONE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DocumentStoreMemory, cfg.DocumentStore)
	assert.Equal(t, AuthModeDisabled, cfg.AuthMode)
	assert.Equal(t, MediaMirrorNone, cfg.MediaMirror)
	assert.Equal(t, "SocialFlow", cfg.AppName)
	assert.Equal(t, 10, cfg.PublishPollAttempts)
	assert.Equal(t, 3*time.Second, cfg.PublishPollInterval)
	assert.Equal(t, "*/30 * * * *", cfg.TikTokRefreshCron)
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown store", map[string]string{"DOCUMENT_STORE": "mongo"}},
		{"firestore without project", map[string]string{"DOCUMENT_STORE": "firestore", "FIREBASE_PROJECT_ID": ""}},
		{"jwks without issuer", map[string]string{"AUTH_MODE": "jwks", "AUTH_ISSUER": "", "AUTH_JWKS_URL": "https://idp/jwks"}},
		{"firebase auth without project", map[string]string{"AUTH_MODE": "firebase", "FIREBASE_PROJECT_ID": ""}},
		{"unknown mirror", map[string]string{"MEDIA_MIRROR": "ftp"}},
		{"zero poll attempts", map[string]string{"PUBLISH_POLL_ATTEMPTS": "0"}},
		{"bad timezone", map[string]string{"FOLDER_TIMEZONE": "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestHelpers(t *testing.T) {
	cfg := &Config{HTTPPort: 9090, PublicBaseURL: "https://api.example.com/", FolderTimezone: "Europe/Madrid"}

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "https://api.example.com/v1/integrations/tiktok/callback", cfg.OAuthCallbackURL("tiktok"))
	assert.Equal(t, "Europe/Madrid", cfg.FolderLocation().String())

	cfg.FolderTimezone = "nowhere"
	assert.Equal(t, time.UTC, cfg.FolderLocation())
}
