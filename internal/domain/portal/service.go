package portal

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/content"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/pii"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// Statuses a client sees in the review portal.
var visibleStatuses = []content.Status{content.StatusReview, content.StatusApproved, content.StatusRejected}

// CompanyFinder resolves a company from its portal token.
type CompanyFinder interface {
	FindByPortalToken(ctx context.Context, token string) (*company.Company, error)
}

// View is what the portal renders for a token.
type View struct {
	CompanyID   string           `json:"companyId"`
	CompanyName string           `json:"companyName"`
	BrandColor  string           `json:"brandColor,omitempty"`
	Content     []*content.Piece `json:"content"`
}

// Service backs the token-scoped client review portal.
type Service struct {
	companies CompanyFinder
	contents  content.Repository
	log       zerolog.Logger
}

func NewService(companies CompanyFinder, contents content.Repository, log zerolog.Logger) *Service {
	return &Service{
		companies: companies,
		contents:  contents,
		log:       log.With().Str("component", "portal-service").Logger(),
	}
}

// Validate returns the company owning token.
func (s *Service) Validate(ctx context.Context, token string) (*company.Company, error) {
	if strings.TrimSpace(token) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
			"invalid portal token", platformerrors.ErrNotFound, "a1c3e5a7-9b1d-4f3a-8c5e-7a9b1c3d5e08")
	}
	return s.companies.FindByPortalToken(ctx, token)
}

// List returns the pieces awaiting or past review, newest first.
func (s *Service) List(ctx context.Context, token string) (*View, error) {
	c, err := s.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	pieces, err := s.contents.List(ctx, c.ID, visibleStatuses...)
	if err != nil {
		return nil, err
	}
	return &View{
		CompanyID:   c.ID,
		CompanyName: c.Name,
		BrandColor:  c.Settings.BrandColor,
		Content:     pieces,
	}, nil
}

// Approve marks a piece approved with optional feedback.
func (s *Service) Approve(ctx context.Context, token, contentID, feedback string) error {
	return s.review(ctx, token, contentID, content.StatusApproved, strings.TrimSpace(feedback))
}

// Reject marks a piece rejected. Feedback is required.
func (s *Service) Reject(ctx context.Context, token, contentID, feedback string) error {
	feedback = strings.TrimSpace(feedback)
	if feedback == "" {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"feedback is required to reject content", nil, "b2d4f6b8-0c2e-4a4b-9d6f-8b0c2d4e6f19")
	}
	return s.review(ctx, token, contentID, content.StatusRejected, feedback)
}

func (s *Service) review(ctx context.Context, token, contentID string, status content.Status, feedback string) error {
	c, err := s.Validate(ctx, token)
	if err != nil {
		return err
	}
	// Get is scoped to the token's company, so foreign ids read as not found.
	if _, err := s.contents.Get(ctx, c.ID, contentID); err != nil {
		return err
	}

	err = s.contents.Update(ctx, c.ID, contentID, map[string]any{
		"status":    status,
		"feedback":  feedback,
		"updatedAt": docstore.Now(),
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("company_id", c.ID).Str("content_id", contentID).Str("status", string(status)).Str("feedback", pii.Text(feedback)).Msg("content reviewed")
	return nil
}
