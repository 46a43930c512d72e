package mediamirror

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalMirror(t *testing.T) {
	dir := t.TempDir()
	mirror, err := NewLocalMirror(dir, "https://api.example.com/media/", zerolog.Nop())
	require.NoError(t, err)

	u, err := mirror.Mirror(context.Background(), "cmp_1/file 1", "image/png", strings.NewReader("png"))
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com/media/cmp_1/file%201", u)

	data, err := os.ReadFile(filepath.Join(dir, "cmp_1", "file 1"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))
}

func TestLocalMirrorKeepsKeysInsideBase(t *testing.T) {
	dir := t.TempDir()
	mirror, err := NewLocalMirror(filepath.Join(dir, "media"), "https://api/media", zerolog.Nop())
	require.NoError(t, err)

	u, err := mirror.Mirror(context.Background(), "../../escape", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "https://api/media/escape", u)
	_, err = os.Stat(filepath.Join(dir, "media", "escape"))
	assert.NoError(t, err)
}

func TestLocalMirrorRequiresConfig(t *testing.T) {
	_, err := NewLocalMirror("", "https://api/media", zerolog.Nop())
	assert.Error(t, err)
	_, err = NewLocalMirror(t.TempDir(), "", zerolog.Nop())
	assert.Error(t, err)
}
