package content

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/pii"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// CompanyAccess resolves a company the caller is allowed to manage.
type CompanyAccess interface {
	Get(ctx context.Context, userID, companyID string) (*company.Company, error)
}

// CreateInput is the payload accepted when planning a content piece.
type CreateInput struct {
	Topic         string     `json:"topic" binding:"required"`
	Title         string     `json:"title"`
	Script        string     `json:"script"`
	Caption       string     `json:"caption"`
	Platforms     []string   `json:"platforms" binding:"omitempty,dive,oneof=instagram tiktok youtube"`
	Format        string     `json:"format" binding:"omitempty,oneof=reel carousel static story"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	RecordingDate *time.Time `json:"recordingDate"`
	AssignedTo    string     `json:"assignedTo"`
	ReferenceLink string     `json:"referenceLink"`
}

// Notification is what a team member is told about an assignment.
type Notification struct {
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Subject  string `json:"subject"`
}

// Service manages content pieces for company owners.
type Service struct {
	repo      Repository
	companies CompanyAccess
	log       zerolog.Logger
}

// NewService wires the content service.
func NewService(repo Repository, companies CompanyAccess, log zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		companies: companies,
		log:       log.With().Str("component", "content-service").Logger(),
	}
}

// Create stores a new piece in idea status.
func (s *Service) Create(ctx context.Context, userID, companyID string, input CreateInput) (*Piece, error) {
	if _, err := s.companies.Get(ctx, userID, companyID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Topic) == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "topic is required", nil, "b2c4e6f8-1a3c-4e5f-8b7d-9a1c3e5f7b02")
	}

	now := docstore.Now()
	piece := &Piece{
		Topic:         strings.TrimSpace(input.Topic),
		Title:         input.Title,
		Script:        input.Script,
		Caption:       input.Caption,
		Status:        StatusIdea,
		Platforms:     input.Platforms,
		Format:        input.Format,
		ScheduledDate: input.ScheduledDate,
		RecordingDate: input.RecordingDate,
		AssignedTo:    input.AssignedTo,
		ReferenceLink: input.ReferenceLink,
		CreatedBy:     userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	piece.Platforms = NormalizePlatforms(piece)
	if err := s.repo.Create(ctx, companyID, piece); err != nil {
		return nil, err
	}
	return piece, nil
}

// List returns a company's pieces newest first.
func (s *Service) List(ctx context.Context, userID, companyID string) ([]*Piece, error) {
	if _, err := s.companies.Get(ctx, userID, companyID); err != nil {
		return nil, err
	}
	return s.repo.List(ctx, companyID)
}

// UpdateStatus moves a piece to another workflow status.
func (s *Service) UpdateStatus(ctx context.Context, userID, companyID, contentID string, status Status) error {
	if !status.Valid() {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "unknown content status: "+string(status), nil, "e1f3a5c7-9b2d-4f6e-8a0c-2d4f6a8c0e13")
	}
	if _, err := s.companies.Get(ctx, userID, companyID); err != nil {
		return err
	}
	if _, err := s.repo.Get(ctx, companyID, contentID); err != nil {
		return err
	}
	return s.repo.Update(ctx, companyID, contentID, map[string]any{
		"status":    status,
		"updatedAt": docstore.Now(),
	})
}

// NotifyTeamMember assigns the piece to a team member and notifies them.
// Delivery is logged; members without an email address cannot be notified.
func (s *Service) NotifyTeamMember(ctx context.Context, userID, companyID, contentID, memberID string) (Notification, error) {
	c, err := s.companies.Get(ctx, userID, companyID)
	if err != nil {
		return Notification{}, err
	}
	piece, err := s.repo.Get(ctx, companyID, contentID)
	if err != nil {
		return Notification{}, err
	}

	member, ok := c.Member(memberID)
	if !ok {
		return Notification{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "team member not found", platformerrors.ErrNotFound, "f2a4c6e8-0b1d-4e3f-9a5c-7e9b1d3f5a24")
	}
	if strings.TrimSpace(member.Email) == "" {
		return Notification{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, "team member has no email", nil, "a3b5d7f9-1c2e-4a4b-8d6f-0b2d4f6a8c35")
	}

	if err := s.repo.Update(ctx, companyID, contentID, map[string]any{
		"assignedTo": member.ID,
		"updatedAt":  docstore.Now(),
	}); err != nil {
		return Notification{}, err
	}

	title := piece.Title
	if title == "" {
		title = piece.Topic
	}
	notification := Notification{
		MemberID: member.ID,
		Name:     member.Name,
		Email:    member.Email,
		Subject:  "Nueva tarea asignada: " + title,
	}
	s.log.Info().
		Str("company_id", companyID).
		Str("content_id", contentID).
		Str("member_id", member.ID).
		Str("email", pii.Email(member.Email)).
		Msg("team member notified")
	return notification, nil
}
