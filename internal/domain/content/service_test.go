package content_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/content"
	"github.com/deikotec/socialflow/internal/infrastructure/docstore"
	contentrepo "github.com/deikotec/socialflow/internal/infrastructure/repository/content"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

type fakeCompanies struct {
	GetFunc func(ctx context.Context, userID, companyID string) (*company.Company, error)
}

func (f *fakeCompanies) Get(ctx context.Context, userID, companyID string) (*company.Company, error) {
	return f.GetFunc(ctx, userID, companyID)
}

func ownedBy(owner string, c *company.Company) *fakeCompanies {
	return &fakeCompanies{GetFunc: func(ctx context.Context, userID, companyID string) (*company.Company, error) {
		if userID != owner {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "forbidden", nil, "")
		}
		return c, nil
	}}
}

func newService(t *testing.T, c *company.Company) (*content.Service, *contentrepo.DocstoreRepository) {
	t.Helper()
	repo := contentrepo.NewDocstoreRepository(docstore.NewMemoryStore())
	return content.NewService(repo, ownedBy("owner", c), zerolog.Nop()), repo
}

func TestCreateStartsAsIdea(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t, &company.Company{ID: "cmp"})

	scheduled := time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)
	piece, err := svc.Create(ctx, "owner", "cmp", content.CreateInput{
		Topic:         "  Launch  ",
		Platforms:     []string{"Instagram", "tiktok", "instagram"},
		Format:        content.FormatReel,
		ScheduledDate: &scheduled,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, piece.ID)
	assert.Equal(t, "Launch", piece.Topic)
	assert.Equal(t, content.StatusIdea, piece.Status)
	assert.Equal(t, []string{"instagram", "tiktok"}, piece.Platforms)
	assert.Equal(t, "owner", piece.CreatedBy)

	stored, err := repo.Get(ctx, "cmp", piece.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.ScheduledDate)
	assert.True(t, scheduled.Equal(*stored.ScheduledDate))
}

func TestCreateRejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, &company.Company{ID: "cmp"})

	_, err := svc.Create(ctx, "owner", "cmp", content.CreateInput{Topic: " "})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.Create(ctx, "stranger", "cmp", content.CreateInput{Topic: "x"})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))
}

func TestListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t, &company.Company{ID: "cmp"})

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"old", "mid", "new"} {
		require.NoError(t, repo.Create(ctx, "cmp", &content.Piece{ID: id, Topic: id, Status: content.StatusIdea, CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	pieces, err := svc.List(ctx, "owner", "cmp")
	require.NoError(t, err)
	require.Len(t, pieces, 3)
	assert.Equal(t, "new", pieces[0].ID)
	assert.Equal(t, "old", pieces[2].ID)
}

func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t, &company.Company{ID: "cmp"})
	require.NoError(t, repo.Create(ctx, "cmp", &content.Piece{ID: "p1", Topic: "t", Status: content.StatusIdea}))

	require.NoError(t, svc.UpdateStatus(ctx, "owner", "cmp", "p1", content.StatusFilming))
	stored, err := repo.Get(ctx, "cmp", "p1")
	require.NoError(t, err)
	assert.Equal(t, content.StatusFilming, stored.Status)

	tests := []struct {
		name      string
		userID    string
		contentID string
		status    content.Status
		errType   platformerrors.ErrorType
	}{
		{"unknown status", "owner", "p1", "archived", platformerrors.ErrorTypeValidation},
		{"missing piece", "owner", "nope", content.StatusReview, platformerrors.ErrorTypeNotFound},
		{"not owner", "stranger", "p1", content.StatusReview, platformerrors.ErrorTypeForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.UpdateStatus(ctx, tt.userID, "cmp", tt.contentID, tt.status)
			assert.True(t, platformerrors.IsErrorType(err, tt.errType), "got %v", err)
		})
	}
}

func TestNotifyTeamMember(t *testing.T) {
	ctx := context.Background()
	c := &company.Company{ID: "cmp", Team: []company.TeamMember{
		{ID: "m1", Name: "Ana", Email: "ana@example.com"},
		{ID: "m2", Name: "Luis"},
	}}
	svc, repo := newService(t, c)
	require.NoError(t, repo.Create(ctx, "cmp", &content.Piece{ID: "p1", Topic: "Reel de verano", Status: content.StatusScripting}))

	notification, err := svc.NotifyTeamMember(ctx, "owner", "cmp", "p1", "m1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", notification.Email)
	assert.Equal(t, "Nueva tarea asignada: Reel de verano", notification.Subject)

	stored, err := repo.Get(ctx, "cmp", "p1")
	require.NoError(t, err)
	assert.Equal(t, "m1", stored.AssignedTo)

	_, err = svc.NotifyTeamMember(ctx, "owner", "cmp", "p1", "m2")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	_, err = svc.NotifyTeamMember(ctx, "owner", "cmp", "p1", "ghost")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestNormalizePlatformsLegacyField(t *testing.T) {
	assert.Equal(t, []string{"tiktok"}, content.NormalizePlatforms(&content.Piece{Platform: " TikTok "}))
	assert.Empty(t, content.NormalizePlatforms(&content.Piece{}))
}

func TestNextCarouselOrder(t *testing.T) {
	p := &content.Piece{CarouselFiles: []content.CarouselFile{{Order: 0}, {Order: 3}, {Order: 1}}}
	assert.Equal(t, 4, p.NextCarouselOrder())
	assert.Equal(t, 0, (&content.Piece{}).NextCarouselOrder())
}

func TestHasMedia(t *testing.T) {
	files := []content.CarouselFile{{DriveFileID: "a"}}
	tests := []struct {
		name  string
		piece content.Piece
		want  bool
	}{
		{"single file id", content.Piece{DriveFileID: "f"}, true},
		{"single link", content.Piece{DriveLink: "https://drive/f"}, true},
		{"carousel items only", content.Piece{Format: content.FormatCarousel, CarouselFiles: files}, true},
		{"items on a non-carousel", content.Piece{Format: content.FormatStatic, CarouselFiles: files}, false},
		{"empty carousel", content.Piece{Format: content.FormatCarousel}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.piece.HasMedia())
		})
	}
}
