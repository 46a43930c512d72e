package publishing

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/content"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// Per-platform outcomes.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Instagram accepts scheduled posts between these bounds from now.
const (
	MinScheduleLead = 10 * time.Minute
	MaxScheduleLead = 75 * 24 * time.Hour
)

const (
	reasonNotSupported   = "Not supported"
	noSingleMediaMessage = "No single media file linked to this content"
)

// PlatformResult is the outcome of publishing to one platform.
type PlatformResult struct {
	Platform string `json:"platform"`
	Status   string `json:"status"`
	PostID   string `json:"postId,omitempty"`
	Error    string `json:"error,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// PublishResult aggregates a publish call. Success means at least one platform published.
type PublishResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Status  content.Status   `json:"status"`
	Results []PlatformResult `json:"results"`
}

// CompanyReader loads companies by id.
type CompanyReader interface {
	Get(ctx context.Context, id string) (*company.Company, error)
}

// Options tune the orchestrator.
type Options struct {
	PollAttempts int
	PollInterval time.Duration
}

// Orchestrator publishes a content piece to every target platform.
type Orchestrator struct {
	companies  CompanyReader
	contents   content.Repository
	publishers map[string]SocialPublisher
	media      *MediaURLResolver
	opts       Options
	now        func() time.Time
	log        zerolog.Logger
}

// NewOrchestrator wires the orchestrator. publishers is keyed by platform name.
func NewOrchestrator(companies CompanyReader, contents content.Repository, publishers map[string]SocialPublisher, media *MediaURLResolver, opts Options, log zerolog.Logger) *Orchestrator {
	if opts.PollAttempts <= 0 {
		opts.PollAttempts = 10
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	return &Orchestrator{
		companies:  companies,
		contents:   contents,
		publishers: publishers,
		media:      media,
		opts:       opts,
		now:        time.Now,
		log:        log.With().Str("component", "publish-orchestrator").Logger(),
	}
}

// Publish drives every target platform of a content piece and marks the piece
// posted when at least one platform succeeds. Platform failures are isolated
// and reported per platform; only lookup and media errors abort the call.
func (o *Orchestrator) Publish(ctx context.Context, companyID, contentID string) (PublishResult, error) {
	c, err := o.companies.Get(ctx, companyID)
	if err != nil {
		return PublishResult{}, err
	}
	piece, err := o.contents.Get(ctx, companyID, contentID)
	if err != nil {
		return PublishResult{}, err
	}
	if !piece.HasMedia() {
		return PublishResult{}, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"No media file linked to this content", platformerrors.ErrNoMedia, "b8c0d2e4-6f8a-4b0c-9d5e-7a9c1e3f5b14")
	}

	log := o.log.With().Str("company_id", companyID).Str("content_id", contentID).Logger()
	// Resolved on first use; carousel-only pieces have no single asset.
	mediaURL := sync.OnceValue(func() string {
		return o.media.Resolve(ctx, companyID, c.DriveRefreshCredential, piece.DriveFileID, piece.DriveLink)
	})

	platforms := content.NormalizePlatforms(piece)
	results := make([]PlatformResult, len(platforms))
	var g errgroup.Group
	for i, platform := range platforms {
		g.Go(func() error {
			results[i] = o.publishTo(ctx, platform, c, piece, mediaURL)
			if results[i].Status == StatusFailed {
				log.Warn().Str("platform", platform).Str("error", results[i].Error).Msg("platform publish failed")
			}
			return nil
		})
	}
	_ = g.Wait()

	result := PublishResult{Status: piece.Status, Results: results}
	for _, r := range results {
		if r.Status == StatusSuccess {
			result.Success = true
			break
		}
	}

	now := docstore.Now()
	fields := map[string]any{"lastPublishResults": outcomes(results, now)}
	if result.Success {
		fields["status"] = content.StatusPosted
		fields["updatedAt"] = now
		result.Status = content.StatusPosted
	}
	if err := o.contents.Update(ctx, companyID, contentID, fields); err != nil {
		// The platforms already published; a failed write must not hide that.
		log.Error().Err(err).Bool("success", result.Success).Msg("could not persist publish outcome")
	}

	result.Message = summary(results)
	log.Info().Bool("success", result.Success).Str("summary", result.Message).Msg("publish finished")
	return result, nil
}

func (o *Orchestrator) publishTo(ctx context.Context, platform string, c *company.Company, piece *content.Piece, mediaURL func() string) PlatformResult {
	result := PlatformResult{Platform: platform}
	publisher, ok := o.publishers[platform]
	if !ok {
		result.Status = StatusSkipped
		result.Reason = reasonNotSupported
		return result
	}

	var (
		postID string
		err    error
	)
	switch platform {
	case content.PlatformInstagram:
		postID, err = o.publishInstagram(ctx, publisher, c, piece, mediaURL)
	case content.PlatformTikTok:
		postID, err = o.publishTikTok(ctx, publisher, c, piece, mediaURL)
	default:
		result.Status = StatusSkipped
		result.Reason = reasonNotSupported
		return result
	}
	if err != nil {
		result.Status = StatusFailed
		result.Error = errorMessage(err)
		return result
	}
	result.Status = StatusSuccess
	result.PostID = postID
	return result
}

func (o *Orchestrator) publishInstagram(ctx context.Context, publisher SocialPublisher, c *company.Company, piece *content.Piece, mediaURL func() string) (string, error) {
	ig := c.SocialConnections.Instagram
	if !ig.Connected() || ig.InstagramUserID == "" {
		return "", errors.New("Instagram not connected")
	}
	conn := Connection{AccessToken: ig.AccessToken, AccountID: ig.InstagramUserID}
	scheduledAt := o.scheduleTime(piece.ScheduledDate)

	if piece.IsCarousel() && len(piece.CarouselFiles) > 0 {
		return o.publishCarousel(ctx, publisher, conn, c, piece, scheduledAt)
	}

	if !piece.HasSingleAsset() {
		return "", errors.New(noSingleMediaMessage)
	}
	mediaType := MediaImage
	if piece.Format == content.FormatReel || strings.HasSuffix(strings.ToLower(piece.DriveLink), ".mp4") {
		mediaType = MediaVideo
	}
	containerID, err := publisher.CreateContainer(ctx, conn, ContainerRequest{
		MediaURL:    mediaURL(),
		MediaType:   mediaType,
		Caption:     piece.Caption,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		return "", err
	}
	if mediaType == MediaVideo {
		if err := publisher.PollUntilReady(ctx, conn, containerID, o.opts.PollAttempts, o.opts.PollInterval); err != nil {
			return "", err
		}
	}
	return publisher.Publish(ctx, conn, containerID)
}

func (o *Orchestrator) publishCarousel(ctx context.Context, publisher SocialPublisher, conn Connection, c *company.Company, piece *content.Piece, scheduledAt *time.Time) (string, error) {
	files := append([]content.CarouselFile{}, piece.CarouselFiles...)
	sort.SliceStable(files, func(i, j int) bool { return files[i].Order < files[j].Order })

	children := make([]string, 0, len(files))
	for _, file := range files {
		mediaType := MediaImage
		if strings.HasPrefix(file.MimeType, "video") {
			mediaType = MediaVideo
		}
		itemURL := o.media.Resolve(ctx, c.ID, c.DriveRefreshCredential, file.DriveFileID, file.DriveLink)
		itemID, err := publisher.CreateContainer(ctx, conn, ContainerRequest{
			MediaURL:       itemURL,
			MediaType:      mediaType,
			IsCarouselItem: true,
		})
		if err != nil {
			return "", err
		}
		if mediaType == MediaVideo {
			if err := publisher.PollUntilReady(ctx, conn, itemID, o.opts.PollAttempts, o.opts.PollInterval); err != nil {
				return "", err
			}
		}
		children = append(children, itemID)
	}

	containerID, err := publisher.CreateContainer(ctx, conn, ContainerRequest{
		MediaType:   MediaCarousel,
		Caption:     piece.Caption,
		Children:    children,
		ScheduledAt: scheduledAt,
	})
	if err != nil {
		return "", err
	}
	return publisher.Publish(ctx, conn, containerID)
}

func (o *Orchestrator) publishTikTok(ctx context.Context, publisher SocialPublisher, c *company.Company, piece *content.Piece, mediaURL func() string) (string, error) {
	tt := c.SocialConnections.TikTok
	if !tt.Connected() {
		return "", errors.New("TikTok not connected")
	}
	if !piece.HasSingleAsset() {
		return "", errors.New(noSingleMediaMessage)
	}
	conn := Connection{AccessToken: tt.AccessToken, AccountID: tt.OpenID}

	title := piece.Title
	if title == "" {
		title = "New Video"
	}
	publishID, err := publisher.CreateContainer(ctx, conn, ContainerRequest{
		MediaURL:  mediaURL(),
		MediaType: MediaVideo,
		Caption:   title,
	})
	if err != nil {
		return "", err
	}
	if err := publisher.PollUntilReady(ctx, conn, publishID, o.opts.PollAttempts, o.opts.PollInterval); err != nil {
		return "", err
	}
	return publisher.Publish(ctx, conn, publishID)
}

// scheduleTime returns the scheduled date when it lies inside the platform's
// scheduling window, otherwise nil for an immediate publish.
func (o *Orchestrator) scheduleTime(scheduled *time.Time) *time.Time {
	if scheduled == nil || scheduled.IsZero() {
		return nil
	}
	lead := scheduled.Sub(o.now())
	if lead <= MinScheduleLead || lead > MaxScheduleLead {
		return nil
	}
	t := *scheduled
	return &t
}

func outcomes(results []PlatformResult, at time.Time) map[string]content.PublishOutcome {
	out := make(map[string]content.PublishOutcome, len(results))
	for _, r := range results {
		message := r.Error
		if message == "" {
			message = r.Reason
		}
		out[r.Platform] = content.PublishOutcome{
			Status:      r.Status,
			PostID:      r.PostID,
			Error:       message,
			AttemptedAt: at,
		}
	}
	return out
}

func summary(results []PlatformResult) string {
	succeeded := 0
	for _, r := range results {
		if r.Status == StatusSuccess {
			succeeded++
		}
	}
	switch {
	case len(results) == 0:
		return "No platforms selected"
	case succeeded == len(results):
		return "Published to all platforms"
	case succeeded > 0:
		return fmt.Sprintf("Published to %d of %d platforms", succeeded, len(results))
	default:
		return "Publishing failed on every platform"
	}
}

// errorMessage prefers the innermost platform message over the layered error string.
func errorMessage(err error) string {
	if pe := platformerrors.GetPlatformError(err); pe != nil && pe.Message != "" {
		return pe.Message
	}
	return err.Error()
}
