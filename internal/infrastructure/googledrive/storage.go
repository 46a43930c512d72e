package googledrive

import (
	"context"
	"fmt"
	"io"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/deikotec/socialflow/internal/domain/assets"
)

const (
	folderMimeType = "application/vnd.google-apps.folder"
	tokenCacheSize = 256
)

// Storage implements assets.RemoteStorage on Google Drive v3, acting with
// each company's refresh token.
type Storage struct {
	config     *oauth2.Config
	endpoint   string
	tokens     *lru.Cache[string, oauth2.TokenSource]
	newService func(ctx context.Context, credential string) (*drive.Service, error)
	log        zerolog.Logger
}

// NewStorage creates the Drive adapter. endpoint overrides the API base URL when set.
func NewStorage(config *oauth2.Config, endpoint string, log zerolog.Logger) (*Storage, error) {
	tokens, err := lru.New[string, oauth2.TokenSource](tokenCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create token cache: %w", err)
	}
	s := &Storage{
		config:   config,
		endpoint: endpoint,
		tokens:   tokens,
		log:      log.With().Str("component", "google-drive").Logger(),
	}
	s.newService = s.service
	return s, nil
}

// service builds a Drive client for credential. Token sources are cached per
// credential so access tokens are reused until they expire.
func (s *Storage) service(ctx context.Context, credential string) (*drive.Service, error) {
	ts, ok := s.tokens.Get(credential)
	if !ok {
		ts = oauth2.ReuseTokenSource(nil, s.config.TokenSource(context.Background(), &oauth2.Token{RefreshToken: credential}))
		s.tokens.Add(credential, ts)
	}
	opts := []option.ClientOption{option.WithTokenSource(ts)}
	if s.endpoint != "" {
		opts = append(opts, option.WithEndpoint(s.endpoint))
	}
	return drive.NewService(ctx, opts...)
}

// FindFolder returns the first non-trashed folder named name.
func (s *Storage) FindFolder(ctx context.Context, credential, name, parentID string) (assets.Folder, bool, error) {
	svc, err := s.newService(ctx, credential)
	if err != nil {
		return assets.Folder{}, false, mapError(ctx, "find folder", err)
	}

	list, err := svc.Files.List().
		Q(folderQuery(name, parentID)).
		Fields("files(id, name, webViewLink)").
		Spaces("drive").
		PageSize(1).
		Context(ctx).
		Do()
	if err != nil {
		return assets.Folder{}, false, mapError(ctx, "find folder", err)
	}
	if len(list.Files) == 0 {
		return assets.Folder{}, false, nil
	}
	f := list.Files[0]
	return assets.Folder{ID: f.Id, ShareLink: f.WebViewLink}, true, nil
}

// CreateFolder creates a folder under parentID, or at the root when empty.
func (s *Storage) CreateFolder(ctx context.Context, credential, name, parentID string) (assets.Folder, error) {
	svc, err := s.newService(ctx, credential)
	if err != nil {
		return assets.Folder{}, mapError(ctx, "create folder", err)
	}

	meta := &drive.File{Name: name, MimeType: folderMimeType}
	if parentID != "" {
		meta.Parents = []string{parentID}
	}
	f, err := svc.Files.Create(meta).Fields("id, webViewLink").Context(ctx).Do()
	if err != nil {
		return assets.Folder{}, mapError(ctx, "create folder", err)
	}
	s.log.Debug().Str("folder_id", f.Id).Str("name", name).Msg("created folder")
	return assets.Folder{ID: f.Id, ShareLink: f.WebViewLink}, nil
}

// UploadFile stores body as a new file.
func (s *Storage) UploadFile(ctx context.Context, credential, folderID, fileName, mimeType string, body io.Reader) (assets.File, error) {
	svc, err := s.newService(ctx, credential)
	if err != nil {
		return assets.File{}, mapError(ctx, "upload file", err)
	}

	meta := &drive.File{Name: fileName}
	if folderID != "" {
		meta.Parents = []string{folderID}
	}
	f, err := svc.Files.Create(meta).
		Media(body, googleapi.ContentType(mimeType)).
		Fields("id, webViewLink").
		Context(ctx).
		Do()
	if err != nil {
		return assets.File{}, mapError(ctx, "upload file", err)
	}
	return assets.File{ID: f.Id, ShareLink: f.WebViewLink}, nil
}

// DownloadFile streams a file's content. The caller closes the body.
func (s *Storage) DownloadFile(ctx context.Context, credential, fileID string) (io.ReadCloser, string, error) {
	svc, err := s.newService(ctx, credential)
	if err != nil {
		return nil, "", mapError(ctx, "download file", err)
	}

	resp, err := svc.Files.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", mapError(ctx, "download file", err)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func folderQuery(name, parentID string) string {
	q := fmt.Sprintf("mimeType='%s' and name='%s' and trashed=false", folderMimeType, escapeQuery(name))
	if parentID != "" {
		q += fmt.Sprintf(" and '%s' in parents", escapeQuery(parentID))
	}
	return q
}

// escapeQuery escapes a string literal for the Drive search syntax.
func escapeQuery(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

var _ assets.RemoteStorage = (*Storage)(nil)
