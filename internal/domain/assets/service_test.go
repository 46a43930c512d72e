package assets

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/content"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

type fakeCompanyAccess struct {
	GetFunc func(ctx context.Context, userID, companyID string) (*company.Company, error)
}

func (f *fakeCompanyAccess) Get(ctx context.Context, userID, companyID string) (*company.Company, error) {
	return f.GetFunc(ctx, userID, companyID)
}

type fakeContentRepo struct {
	pieces map[string]*content.Piece
}

func (r *fakeContentRepo) Get(ctx context.Context, companyID, id string) (*content.Piece, error) {
	piece, ok := r.pieces[id]
	if !ok {
		return nil, docstore.NotFound(ctx, content.CollectionPath(companyID), id)
	}
	copied := *piece
	return &copied, nil
}

func (r *fakeContentRepo) Create(ctx context.Context, companyID string, piece *content.Piece) error {
	r.pieces[piece.ID] = piece
	return nil
}

func (r *fakeContentRepo) Update(ctx context.Context, companyID, id string, fields map[string]any) error {
	piece := r.pieces[id]
	if v, ok := fields["drive_file_id"].(string); ok {
		piece.DriveFileID = v
	}
	if v, ok := fields["drive_link"].(string); ok {
		piece.DriveLink = v
	}
	if v, ok := fields["carouselFiles"].([]content.CarouselFile); ok {
		piece.CarouselFiles = v
	}
	return nil
}

func (r *fakeContentRepo) List(ctx context.Context, companyID string, statuses ...content.Status) ([]*content.Piece, error) {
	return nil, nil
}

func newTestService(storage *fakeStorage, c *company.Company, repo *fakeContentRepo) *Service {
	access := &fakeCompanyAccess{GetFunc: func(ctx context.Context, userID, companyID string) (*company.Company, error) {
		return c, nil
	}}
	builder := newTestBuilder(storage, &fakeCompanyUpdater{}, time.UTC)
	return NewService(access, repo, builder, NewUploader(storage, zerolog.Nop()), zerolog.Nop())
}

func TestUploadContentAssetLinksSingleAsset(t *testing.T) {
	storage := newFakeStorage()
	scheduled := time.Date(2026, time.January, 15, 18, 0, 0, 0, time.UTC)
	repo := &fakeContentRepo{pieces: map[string]*content.Piece{
		"cnt_1": {ID: "cnt_1", Format: content.FormatReel, ScheduledDate: &scheduled},
	}}
	c := &company.Company{ID: "cmp_1", Name: "Acme", DriveRefreshCredential: "refresh"}
	svc := newTestService(storage, c, repo)

	result, err := svc.UploadContentAsset(context.Background(), "user-1", UploadInput{
		CompanyID: "cmp_1",
		ContentID: "cnt_1",
		FileName:  "clip.mp4",
		MimeType:  "video/mp4",
		Body:      strings.NewReader("video-bytes"),
	})
	require.NoError(t, err)

	assert.Equal(t, "reel_clip.mp4", result.FileName)
	assert.Equal(t, []string{"SocialFlow - Acme", "Enero 2026", "15"}, storage.pathOf(result.FolderID))
	assert.Equal(t, result.ID, repo.pieces["cnt_1"].DriveFileID)
	assert.Equal(t, result.ShareLink, repo.pieces["cnt_1"].DriveLink)
}

func TestUploadContentAssetAppendsCarouselItems(t *testing.T) {
	storage := newFakeStorage()
	repo := &fakeContentRepo{pieces: map[string]*content.Piece{
		"cnt_1": {ID: "cnt_1", Format: content.FormatCarousel},
	}}
	c := &company.Company{ID: "cmp_1", Name: "Acme", DriveRefreshCredential: "refresh"}
	svc := newTestService(storage, c, repo)
	png := "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"

	for _, name := range []string{"slide-a.png", "slide-b.png"} {
		_, err := svc.UploadContentAsset(context.Background(), "user-1", UploadInput{
			CompanyID: "cmp_1",
			ContentID: "cnt_1",
			FileName:  name,
			Body:      strings.NewReader(png),
		})
		require.NoError(t, err)
	}

	files := repo.pieces["cnt_1"].CarouselFiles
	require.Len(t, files, 2)
	assert.Equal(t, 0, files[0].Order)
	assert.Equal(t, 1, files[1].Order)
	assert.Equal(t, "slide-b.png", files[1].Name)
	assert.Equal(t, "image/png", files[0].MimeType)
	assert.Equal(t, "carousel_slide-a.png", storage.uploads[0].fileName)
	assert.Equal(t, png, storage.uploads[0].body)
}

func TestUploadContentAssetRequiresDriveConnection(t *testing.T) {
	storage := newFakeStorage()
	c := &company.Company{ID: "cmp_1", Name: "Acme"}
	svc := newTestService(storage, c, &fakeContentRepo{pieces: map[string]*content.Piece{}})

	_, err := svc.UploadContentAsset(context.Background(), "user-1", UploadInput{
		CompanyID: "cmp_1",
		FileName:  "clip.mp4",
		Body:      strings.NewReader("bytes"),
	})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
	assert.Empty(t, storage.uploads)
}
