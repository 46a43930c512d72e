package portal_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/content"
	"github.com/deikotec/socialflow/internal/domain/portal"
	"github.com/deikotec/socialflow/internal/infrastructure/docstore"
	companyrepo "github.com/deikotec/socialflow/internal/infrastructure/repository/company"
	contentrepo "github.com/deikotec/socialflow/internal/infrastructure/repository/content"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

type fixture struct {
	svc      *portal.Service
	contents *contentrepo.DocstoreRepository
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	companies := companyrepo.NewDocstoreRepository(store)
	contents := contentrepo.NewDocstoreRepository(store)

	require.NoError(t, companies.Create(ctx, &company.Company{ID: "cmp_a", Name: "Acme", PortalToken: "token-a"}))
	require.NoError(t, companies.Create(ctx, &company.Company{ID: "cmp_b", Name: "Other", PortalToken: "token-b"}))

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, p := range []struct {
		id     string
		status content.Status
	}{
		{"c1", content.StatusReview},
		{"c2", content.StatusIdea},
		{"c3", content.StatusApproved},
		{"c4", content.StatusRejected},
	} {
		require.NoError(t, contents.Create(ctx, "cmp_a", &content.Piece{
			ID:        p.id,
			Topic:     "topic " + p.id,
			Status:    p.status,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}
	require.NoError(t, contents.Create(ctx, "cmp_b", &content.Piece{ID: "foreign", Status: content.StatusReview, CreatedAt: base}))

	return fixture{svc: portal.NewService(companies, contents, zerolog.Nop()), contents: contents}
}

func TestList(t *testing.T) {
	f := newFixture(t)

	view, err := f.svc.List(context.Background(), "token-a")
	require.NoError(t, err)
	assert.Equal(t, "cmp_a", view.CompanyID)
	assert.Equal(t, "Acme", view.CompanyName)

	ids := make([]string, 0, len(view.Content))
	for _, p := range view.Content {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"c4", "c3", "c1"}, ids)
}

func TestInvalidToken(t *testing.T) {
	f := newFixture(t)

	for _, token := range []string{"", "nope"} {
		_, err := f.svc.List(context.Background(), token)
		assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound), token)
	}
}

func TestApprove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.Approve(ctx, "token-a", "c1", "  "))
	piece, err := f.contents.Get(ctx, "cmp_a", "c1")
	require.NoError(t, err)
	assert.Equal(t, content.StatusApproved, piece.Status)
	assert.Empty(t, piece.Feedback)
	assert.False(t, piece.UpdatedAt.IsZero())
}

func TestReject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.Reject(ctx, "token-a", "c1", "")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	require.NoError(t, f.svc.Reject(ctx, "token-a", "c1", "Cambiar la portada"))
	piece, err := f.contents.Get(ctx, "cmp_a", "c1")
	require.NoError(t, err)
	assert.Equal(t, content.StatusRejected, piece.Status)
	assert.Equal(t, "Cambiar la portada", piece.Feedback)
}

func TestReviewForeignContent(t *testing.T) {
	f := newFixture(t)

	err := f.svc.Approve(context.Background(), "token-a", "foreign", "")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	piece, err := f.contents.Get(context.Background(), "cmp_b", "foreign")
	require.NoError(t, err)
	assert.Equal(t, content.StatusReview, piece.Status)
}
