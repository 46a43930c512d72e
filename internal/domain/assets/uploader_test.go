package assets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

func TestFileName(t *testing.T) {
	assert.Equal(t, "reel_clip.mp4", FileName("reel", "clip.mp4"))
	assert.Equal(t, "carousel_slide 1.png", FileName("carousel", "slide 1.png"))
	assert.Equal(t, "clip.mp4", FileName("", "clip.mp4"))
}

func TestUploadAssetStoresInTargetFolder(t *testing.T) {
	storage := newFakeStorage()
	uploader := NewUploader(storage, zerolog.Nop())

	result, err := uploader.UploadAsset(context.Background(), "refresh", "day-folder", "reel_clip.mp4", "video/mp4", strings.NewReader("bytes"))
	require.NoError(t, err)

	assert.Empty(t, result.Warning)
	assert.Equal(t, "day-folder", result.FolderID)
	require.Len(t, storage.uploads, 1)
	assert.Equal(t, "reel_clip.mp4", storage.uploads[0].fileName)
}

func TestUploadAssetRetriesAtRootWhenFolderIsMissing(t *testing.T) {
	storage := newFakeStorage()
	storage.UploadErrFunc = func(folderID string) error {
		if folderID != "" {
			return staleErr(folderID)
		}
		return nil
	}
	uploader := NewUploader(storage, zerolog.Nop())

	result, err := uploader.UploadAsset(context.Background(), "refresh", "deleted-folder", "static_photo.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)

	assert.Equal(t, WarningUploadedToRoot, result.Warning)
	assert.NotEmpty(t, result.ID)
	require.Len(t, storage.uploads, 2)
	assert.Equal(t, "deleted-folder", storage.uploads[0].folderID)
	assert.Equal(t, "", storage.uploads[1].folderID)
	assert.Equal(t, "jpeg-bytes", storage.uploads[1].body)
}

func TestUploadAssetFailsWhenRootRetryFails(t *testing.T) {
	storage := newFakeStorage()
	storage.UploadErrFunc = func(folderID string) error {
		if folderID != "" {
			return staleErr(folderID)
		}
		return fmt.Errorf("%w: 403 storage quota exceeded", platformerrors.ErrRemoteAPI)
	}
	uploader := NewUploader(storage, zerolog.Nop())

	_, err := uploader.UploadAsset(context.Background(), "refresh", "deleted-folder", "reel_clip.mp4", "video/mp4", strings.NewReader("bytes"))
	require.Error(t, err)

	assert.True(t, errors.Is(err, platformerrors.ErrUpload))
	assert.Contains(t, err.Error(), "reel_clip.mp4")
	assert.Len(t, storage.uploads, 2)
}

func TestUploadAssetDoesNotRetryOtherFailures(t *testing.T) {
	storage := newFakeStorage()
	storage.UploadErrFunc = func(folderID string) error {
		return fmt.Errorf("%w: invalid_grant", platformerrors.ErrRemoteAuth)
	}
	uploader := NewUploader(storage, zerolog.Nop())

	_, err := uploader.UploadAsset(context.Background(), "refresh", "day-folder", "reel_clip.mp4", "video/mp4", strings.NewReader("bytes"))
	require.Error(t, err)

	assert.True(t, errors.Is(err, platformerrors.ErrUpload))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeUnauthorized))
	assert.Len(t, storage.uploads, 1)
}
