package mediamirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/infrastructure/metrics"
)

// LocalMirror writes media under a directory served over HTTP at baseURL.
type LocalMirror struct {
	basePath string
	baseURL  string
	log      zerolog.Logger
}

func NewLocalMirror(basePath, baseURL string, log zerolog.Logger) (*LocalMirror, error) {
	logger := log.With().Str("component", "local-mirror").Logger()

	basePath = strings.TrimSpace(basePath)
	if basePath == "" {
		return nil, errors.New("MEDIA_LOCAL_STORAGE_PATH is required for the local media mirror")
	}
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("a public base URL is required for the local media mirror")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory: %w", err)
	}

	logger.Info().Str("path", basePath).Str("base_url", baseURL).Msg("local media mirror initialized")
	return &LocalMirror{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		log:      logger,
	}, nil
}

// Mirror writes body to <basePath>/<key> and returns its public URL.
func (l *LocalMirror) Mirror(_ context.Context, key, _ string, body io.Reader) (string, error) {
	start := time.Now()
	clean := path.Clean("/" + key)[1:]
	if clean == "" {
		return "", fmt.Errorf("invalid media key %q", key)
	}

	fullPath := filepath.Join(l.basePath, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	written, err := io.Copy(file, body)
	if err != nil {
		metrics.RecordMirror("local", false, time.Since(start).Seconds())
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	metrics.RecordMirror("local", true, time.Since(start).Seconds())
	l.log.Debug().Str("key", clean).Int64("bytes", written).Msg("media mirrored")
	return l.baseURL + "/" + escapePath(clean), nil
}

// BasePath is the directory served at the mirror's base URL.
func (l *LocalMirror) BasePath() string {
	return l.basePath
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}
