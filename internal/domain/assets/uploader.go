package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// WarningUploadedToRoot annotates uploads that fell back to the storage root.
const WarningUploadedToRoot = "Uploaded to root (Folder missing)"

// UploadResult describes a stored asset.
type UploadResult struct {
	ID        string `json:"id"`
	ShareLink string `json:"shareLink"`
	FileName  string `json:"fileName"`
	FolderID  string `json:"folderId"`
	Warning   string `json:"warning,omitempty"`
}

// FileName prefixes the original name with the content format when known.
func FileName(format, originalName string) string {
	format = strings.TrimSpace(format)
	if format == "" {
		return originalName
	}
	return format + "_" + originalName
}

// Uploader stores media in remote storage.
type Uploader struct {
	storage RemoteStorage
	log     zerolog.Logger
}

// NewUploader wraps a remote storage.
func NewUploader(storage RemoteStorage, log zerolog.Logger) *Uploader {
	return &Uploader{
		storage: storage,
		log:     log.With().Str("component", "asset-uploader").Logger(),
	}
}

// UploadAsset stores body in folderID. When the folder no longer exists the
// upload is retried once at the storage root and the result carries a warning.
func (u *Uploader) UploadAsset(ctx context.Context, credential, folderID, fileName, mimeType string, body io.ReadSeeker) (UploadResult, error) {
	file, err := u.storage.UploadFile(ctx, credential, folderID, fileName, mimeType, body)
	if err == nil {
		return UploadResult{ID: file.ID, ShareLink: file.ShareLink, FileName: fileName, FolderID: folderID}, nil
	}
	if folderID == "" || !platformerrors.IsStaleReference(err) {
		return UploadResult{}, uploadError(ctx, fileName, err)
	}

	u.log.Warn().Err(err).Str("folder_id", folderID).Str("file_name", fileName).Msg("target folder missing, retrying at storage root")
	if _, seekErr := body.Seek(0, io.SeekStart); seekErr != nil {
		return UploadResult{}, uploadError(ctx, fileName, seekErr)
	}
	file, err = u.storage.UploadFile(ctx, credential, "", fileName, mimeType, body)
	if err != nil {
		return UploadResult{}, uploadError(ctx, fileName, err)
	}
	return UploadResult{
		ID:        file.ID,
		ShareLink: file.ShareLink,
		FileName:  fileName,
		Warning:   WarningUploadedToRoot,
	}, nil
}

func uploadError(ctx context.Context, fileName string, err error) error {
	errorType := platformerrors.ErrorTypeExternal
	if errors.Is(err, platformerrors.ErrRemoteAuth) {
		errorType = platformerrors.ErrorTypeUnauthorized
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, errorType,
		"failed to upload "+fileName, fmt.Errorf("%w: %w", platformerrors.ErrUpload, err),
		"d4e6f8a0-2b4c-4d6e-9f1a-3c5e7a9b1d79", map[string]any{"file_name": fileName})
}
