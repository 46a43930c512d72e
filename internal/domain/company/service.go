package company

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/crypto"
	"github.com/deikotec/socialflow/internal/utils/idgen"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// CreateInput is the payload accepted when registering a company.
type CreateInput struct {
	Name          string `json:"name" binding:"required"`
	DriveFolderID string `json:"driveFolderId,omitempty"`
}

// Service describes company management for authenticated users.
type Service struct {
	repo   Repository
	secret string
	log    zerolog.Logger
}

// NewService wires the company service. secret encrypts per-company AI keys; empty stores them as given.
func NewService(repo Repository, secret string, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		secret: secret,
		log:    log.With().Str("component", "company-service").Logger(),
	}
}

// Create registers a company owned by userID.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*Company, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "company name is required", nil, "9b0b8d3f-2e51-4c1e-8a77-5d0c4e6f1a32")
	}

	now := docstore.Now()
	company := &Company{
		ID:                idgen.New("cmp"),
		Name:              name,
		OwnerID:           userID,
		PortalToken:       uuid.NewString(),
		DriveRootFolderID: strings.TrimSpace(input.DriveFolderID),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	if err := s.repo.AddOwnedCompany(ctx, userID, company.ID); err != nil {
		return nil, err
	}

	s.log.Info().Str("company_id", company.ID).Str("owner_id", userID).Msg("company created")
	return company, nil
}

// Get returns a company the caller owns.
func (s *Service) Get(ctx context.Context, userID, companyID string) (*Company, error) {
	company, err := s.repo.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company.OwnerID != userID {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeForbidden, "company belongs to another user", nil, "c7e25f0a-61d4-4b8e-9f3c-0a8d2b6e4c15")
	}
	return company, nil
}

// List returns the companies owned by the caller.
func (s *Service) List(ctx context.Context, userID string) ([]*Company, error) {
	return s.repo.ListByOwner(ctx, userID)
}

// Update applies a patch to a company the caller owns.
func (s *Service) Update(ctx context.Context, userID, companyID string, patch Patch) (*Company, error) {
	current, err := s.Get(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "company name cannot be empty", nil, "0d4f7a2c-93b1-4e5a-8c6d-1f2e3a4b5c61")
		}
		fields["name"] = name
	}
	if patch.Settings != nil {
		settings := *patch.Settings
		// Responses never carry the key, so an empty key keeps the stored one.
		if settings.AIAPIKey == "" {
			settings.AIAPIKey = current.Settings.AIAPIKey
		}
		if settings.AIAPIKey != "" && s.secret != "" && !crypto.IsEncrypted(settings.AIAPIKey) {
			encrypted, err := crypto.EncryptString(s.secret, settings.AIAPIKey)
			if err != nil {
				return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal, "encrypt ai api key", err, "6a1e9c4b-2d7f-4b3a-a5e8-7c0d9f1b2e43")
			}
			settings.AIAPIKey = encrypted
		}
		fields["settings"] = settings
	}
	setString(fields, "sector", patch.Sector)
	setString(fields, "description", patch.Description)
	setString(fields, "targetAudience", patch.TargetAudience)
	setString(fields, "usp", patch.USP)
	setString(fields, "tone", patch.Tone)
	if patch.Products != nil {
		fields["products"] = *patch.Products
	}
	if patch.Team != nil {
		fields["team"] = *patch.Team
	}
	if patch.LeadMagnets != nil {
		fields["leadMagnets"] = *patch.LeadMagnets
	}
	fields["updatedAt"] = docstore.Now()

	if err := s.repo.Update(ctx, companyID, fields); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, companyID)
}

// AIKey returns the company's plaintext AI provider key.
func (s *Service) AIKey(c *Company) (string, error) {
	return RevealAIKey(c, s.secret)
}

// RevealAIKey decrypts the stored AI key when it was encrypted at rest.
func RevealAIKey(c *Company, secret string) (string, error) {
	key := c.Settings.AIAPIKey
	if key == "" || !crypto.IsEncrypted(key) {
		return key, nil
	}
	return crypto.DecryptString(secret, key)
}

func setString(fields map[string]any, key string, value *string) {
	if value != nil {
		fields[key] = strings.TrimSpace(*value)
	}
}
