package assets

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/content"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// CompanyAccess resolves a company the caller is allowed to manage.
type CompanyAccess interface {
	Get(ctx context.Context, userID, companyID string) (*company.Company, error)
}

// UploadInput is one asset sent by a dashboard user.
type UploadInput struct {
	CompanyID string
	ContentID string
	Format    string
	FileName  string
	MimeType  string
	Body      io.ReadSeeker
}

// Service uploads creative assets into the company folder hierarchy.
type Service struct {
	companies CompanyAccess
	contents  content.Repository
	hierarchy *HierarchyBuilder
	uploader  *Uploader
	log       zerolog.Logger
}

// NewService wires the asset upload use case.
func NewService(companies CompanyAccess, contents content.Repository, hierarchy *HierarchyBuilder, uploader *Uploader, log zerolog.Logger) *Service {
	return &Service{
		companies: companies,
		contents:  contents,
		hierarchy: hierarchy,
		uploader:  uploader,
		log:       log.With().Str("component", "asset-service").Logger(),
	}
}

// UploadContentAsset stores an asset under the date folder of its content
// piece and, when a content id is given, links the file onto the piece.
func (s *Service) UploadContentAsset(ctx context.Context, userID string, input UploadInput) (UploadResult, error) {
	c, err := s.companies.Get(ctx, userID, input.CompanyID)
	if err != nil {
		return UploadResult{}, err
	}
	if c.DriveRefreshCredential == "" {
		return UploadResult{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"Google Drive is not connected for this company", nil, "e5f7a9b1-3c5d-4e7f-8a2b-4d6f8b0c2e81")
	}
	if input.Body == nil || strings.TrimSpace(input.FileName) == "" {
		return UploadResult{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"file is required", nil, "f6a8b0c2-4d6e-4f8a-9b3c-5e7a9c1d3f92")
	}

	var piece *content.Piece
	if input.ContentID != "" {
		piece, err = s.contents.Get(ctx, input.CompanyID, input.ContentID)
		if err != nil {
			return UploadResult{}, err
		}
	}

	format := input.Format
	if format == "" && piece != nil {
		format = piece.Format
	}

	mimeType, err := detectMimeType(input.MimeType, input.Body)
	if err != nil {
		return UploadResult{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"could not read uploaded file", err, "a7b9c1d3-5e7f-4a9b-8c4d-6f8a0b2d4e03")
	}

	folderID, err := s.hierarchy.ResolveTargetFolder(ctx, c, scheduledFor(piece))
	if err != nil {
		return UploadResult{}, err
	}

	result, err := s.uploader.UploadAsset(ctx, c.DriveRefreshCredential, folderID, FileName(format, input.FileName), mimeType, input.Body)
	if err != nil {
		return UploadResult{}, err
	}
	s.log.Info().
		Str("company_id", c.ID).
		Str("content_id", input.ContentID).
		Str("file_id", result.ID).
		Str("folder_id", result.FolderID).
		Msg("asset uploaded")

	if piece == nil {
		return result, nil
	}
	if err := s.linkAsset(ctx, input.CompanyID, piece, result, mimeType, input.FileName); err != nil {
		return UploadResult{}, err
	}
	return result, nil
}

func (s *Service) linkAsset(ctx context.Context, companyID string, piece *content.Piece, result UploadResult, mimeType, originalName string) error {
	fields := map[string]any{"updatedAt": docstore.Now()}
	if piece.IsCarousel() {
		files := append([]content.CarouselFile{}, piece.CarouselFiles...)
		files = append(files, content.CarouselFile{
			DriveFileID: result.ID,
			DriveLink:   result.ShareLink,
			MimeType:    mimeType,
			Order:       piece.NextCarouselOrder(),
			Name:        originalName,
		})
		fields["carouselFiles"] = files
	} else {
		fields["drive_file_id"] = result.ID
		fields["drive_link"] = result.ShareLink
	}
	return s.contents.Update(ctx, companyID, piece.ID, fields)
}

func scheduledFor(piece *content.Piece) *time.Time {
	if piece == nil {
		return nil
	}
	return piece.ScheduledDate
}

// detectMimeType sniffs the body when the client sent no specific type.
func detectMimeType(declared string, body io.ReadSeeker) (string, error) {
	declared = strings.TrimSpace(declared)
	if declared != "" && declared != "application/octet-stream" {
		return declared, nil
	}
	mtype, err := mimetype.DetectReader(body)
	if err != nil {
		return "", err
	}
	if _, err := body.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mtype.String(), nil
}
