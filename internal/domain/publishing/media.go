package publishing

import (
	"context"
	"io"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/assets"
)

// MediaMirror republishes media bytes at a URL platforms can fetch.
type MediaMirror interface {
	Mirror(ctx context.Context, key, mimeType string, body io.Reader) (string, error)
}

// MediaURLResolver builds the fetchable URL platforms pull media from.
type MediaURLResolver struct {
	downloadHost string
	storage      assets.RemoteStorage
	mirror       MediaMirror
	log          zerolog.Logger
}

// NewMediaURLResolver wires a resolver. storage and mirror may be nil, which
// keeps direct download URLs.
func NewMediaURLResolver(downloadHost string, storage assets.RemoteStorage, mirror MediaMirror, log zerolog.Logger) *MediaURLResolver {
	return &MediaURLResolver{
		downloadHost: strings.TrimRight(downloadHost, "/"),
		storage:      storage,
		mirror:       mirror,
		log:          log.With().Str("component", "media-url").Logger(),
	}
}

// DirectURL returns the direct download URL of a stored file.
func (r *MediaURLResolver) DirectURL(fileID string) string {
	return r.downloadHost + "/uc?id=" + url.QueryEscape(fileID) + "&export=download"
}

// Resolve returns the URL for a file id, falling back to the stored link when
// there is no id. With a mirror configured the bytes are copied to the mirror
// first; a failed copy keeps the direct download URL.
func (r *MediaURLResolver) Resolve(ctx context.Context, companyID, credential, fileID, link string) string {
	if fileID == "" {
		return link
	}
	direct := r.DirectURL(fileID)
	if r.mirror == nil || r.storage == nil || credential == "" {
		return direct
	}

	body, mimeType, err := r.storage.DownloadFile(ctx, credential, fileID)
	if err != nil {
		r.log.Warn().Err(err).Str("file_id", fileID).Msg("could not download media for mirroring")
		return direct
	}
	defer body.Close()

	mirrored, err := r.mirror.Mirror(ctx, companyID+"/"+fileID, mimeType, body)
	if err != nil {
		r.log.Warn().Err(err).Str("file_id", fileID).Msg("could not mirror media")
		return direct
	}
	return mirrored
}
