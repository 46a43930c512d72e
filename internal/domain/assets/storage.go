package assets

import (
	"context"
	"io"
)

// Folder is a remote storage folder.
type Folder struct {
	ID        string `json:"id"`
	ShareLink string `json:"shareLink"`
}

// File is a remote storage file.
type File struct {
	ID        string `json:"id"`
	ShareLink string `json:"shareLink"`
}

// RemoteStorage is the file storage account of a company, reached with its
// refresh credential. Implementations report a missing parent or object with
// an error wrapping platformerrors.ErrStaleReference, a rejected credential
// with ErrRemoteAuth and other failures with ErrRemoteAPI.
type RemoteStorage interface {
	// FindFolder looks up a non-trashed folder by exact name, scoped to parentID when set.
	FindFolder(ctx context.Context, credential, name, parentID string) (Folder, bool, error)
	CreateFolder(ctx context.Context, credential, name, parentID string) (Folder, error)
	// UploadFile stores body under folderID, or the storage root when folderID is empty.
	UploadFile(ctx context.Context, credential, folderID, fileName, mimeType string, body io.Reader) (File, error)
	DownloadFile(ctx context.Context, credential, fileID string) (io.ReadCloser, string, error)
}

// Locker serializes work on a key across processes.
type Locker interface {
	WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error
}
