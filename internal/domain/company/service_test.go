package company_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/infrastructure/docstore"
	companyrepo "github.com/deikotec/socialflow/internal/infrastructure/repository/company"
	"github.com/deikotec/socialflow/internal/utils/crypto"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newService(t *testing.T, secret string) (*company.Service, *docstore.MemoryStore) {
	t.Helper()
	store := docstore.NewMemoryStore()
	return company.NewService(companyrepo.NewDocstoreRepository(store), secret, zerolog.Nop()), store
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, store := newService(t, "")

	_, err := svc.Create(ctx, "user-1", company.CreateInput{Name: "   "})
	require.Error(t, err)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	created, err := svc.Create(ctx, "user-1", company.CreateInput{Name: " Acme ", DriveFolderID: "folder-1"})
	require.NoError(t, err)
	assert.Equal(t, "Acme", created.Name)
	assert.Equal(t, "user-1", created.OwnerID)
	assert.Equal(t, "folder-1", created.DriveRootFolderID)
	assert.NotEmpty(t, created.PortalToken)
	assert.NotEmpty(t, created.ID)

	second, err := svc.Create(ctx, "user-1", company.CreateInput{Name: "Beta"})
	require.NoError(t, err)

	profile, err := store.Get(ctx, company.UsersCollection, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []any{created.ID, second.ID}, profile.Data["owned_companies"])

	listed, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	ids := make([]string, 0, len(listed))
	for _, c := range listed {
		ids = append(ids, c.ID)
	}
	assert.ElementsMatch(t, []string{created.ID, second.ID}, ids)

	others, err := svc.List(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestGetChecksOwnership(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, "")

	created, err := svc.Create(ctx, "owner", company.CreateInput{Name: "Acme"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "owner", created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = svc.Get(ctx, "intruder", created.ID)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))

	_, err = svc.Get(ctx, "owner", "missing")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
}

func TestUpdateEncryptsAndKeepsAIKey(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, testSecret)

	created, err := svc.Create(ctx, "owner", company.CreateInput{Name: "Acme"})
	require.NoError(t, err)

	tone := "  friendly "
	updated, err := svc.Update(ctx, "owner", created.ID, company.Patch{
		Tone:     &tone,
		Settings: &company.Settings{AIProvider: company.AIProviderClaude, AIAPIKey: "sk-live"},
		Team:     &[]company.TeamMember{{ID: "m1", Name: "Ana"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "friendly", updated.Tone)
	assert.Equal(t, company.AIProviderClaude, updated.AIProvider())
	assert.True(t, crypto.IsEncrypted(updated.Settings.AIAPIKey))
	member, ok := updated.Member("m1")
	require.True(t, ok)
	assert.Equal(t, "Ana", member.Name)

	key, err := svc.AIKey(updated)
	require.NoError(t, err)
	assert.Equal(t, "sk-live", key)

	// A settings patch without a key keeps the stored one.
	updated, err = svc.Update(ctx, "owner", created.ID, company.Patch{
		Settings: &company.Settings{AIProvider: company.AIProviderOpenAI, Website: "https://acme.test"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://acme.test", updated.Settings.Website)
	key, err = svc.AIKey(updated)
	require.NoError(t, err)
	assert.Equal(t, "sk-live", key)
}

func TestUpdateRejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t, "")

	created, err := svc.Create(ctx, "owner", company.CreateInput{Name: "Acme"})
	require.NoError(t, err)

	empty := " "
	_, err = svc.Update(ctx, "owner", created.ID, company.Patch{Name: &empty})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))

	name := "Renamed"
	_, err = svc.Update(ctx, "intruder", created.ID, company.Patch{Name: &name})
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeForbidden))
}

func TestAIProviderDefaultsToGemini(t *testing.T) {
	c := &company.Company{Settings: company.Settings{AIProvider: "mistral"}}
	assert.Equal(t, company.AIProviderGemini, c.AIProvider())
}

func TestRevealAIKeyPlaintext(t *testing.T) {
	key, err := company.RevealAIKey(&company.Company{Settings: company.Settings{AIAPIKey: "plain"}}, "")
	require.NoError(t, err)
	assert.Equal(t, "plain", key)
}
