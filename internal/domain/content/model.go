package content

import (
	"strings"
	"time"
)

// CollectionPath returns the content collection of a company.
func CollectionPath(companyID string) string {
	return "companies/" + companyID + "/content"
}

// Status is a step of the content workflow.
type Status string

const (
	StatusIdea      Status = "idea"
	StatusScripting Status = "scripting"
	StatusFilming   Status = "filming"
	StatusEditing   Status = "editing"
	StatusReview    Status = "review"
	StatusApproved  Status = "approved"
	StatusScheduled Status = "scheduled"
	StatusPosted    Status = "posted"
	StatusRejected  Status = "rejected"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusIdea, StatusScripting, StatusFilming, StatusEditing, StatusReview,
		StatusApproved, StatusScheduled, StatusPosted, StatusRejected:
		return true
	}
	return false
}

// Platforms content can target.
const (
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
	PlatformYouTube   = "youtube"
)

// Formats of a content piece.
const (
	FormatReel     = "reel"
	FormatCarousel = "carousel"
	FormatStatic   = "static"
	FormatStory    = "story"
)

// Piece is one planned or published unit of content.
type Piece struct {
	ID            string         `json:"-"`
	Topic         string         `json:"topic"`
	Title         string         `json:"title,omitempty"`
	Script        string         `json:"script,omitempty"`
	Caption       string         `json:"caption,omitempty"`
	Status        Status         `json:"status"`
	Platforms     []string       `json:"platforms,omitempty"`
	Platform      string         `json:"platform,omitempty"`
	Format        string         `json:"format,omitempty"`
	ScheduledDate *time.Time     `json:"scheduledDate,omitempty"`
	RecordingDate *time.Time     `json:"recordingDate,omitempty"`
	DriveFileID   string         `json:"drive_file_id,omitempty"`
	DriveLink     string         `json:"drive_link,omitempty"`
	CarouselFiles []CarouselFile `json:"carouselFiles,omitempty"`
	AssignedTo    string         `json:"assignedTo,omitempty"`
	Feedback      string         `json:"feedback,omitempty"`
	ReferenceLink string         `json:"referenceLink,omitempty"`
	CreatedBy     string         `json:"createdBy,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`

	LastPublishResults map[string]PublishOutcome `json:"lastPublishResults,omitempty"`
}

// CarouselFile is one item of a carousel post.
type CarouselFile struct {
	DriveFileID string `json:"drive_file_id"`
	DriveLink   string `json:"drive_link"`
	MimeType    string `json:"mimeType"`
	Order       int    `json:"order"`
	Name        string `json:"name,omitempty"`
}

// PublishOutcome is the last publish attempt recorded for one platform.
type PublishOutcome struct {
	Status      string    `json:"status"`
	PostID      string    `json:"postId,omitempty"`
	Error       string    `json:"error,omitempty"`
	AttemptedAt time.Time `json:"attemptedAt"`
}

// NormalizePlatforms returns the target platforms, falling back to the legacy
// single platform field of older records. Entries are lowercased and deduplicated.
func NormalizePlatforms(p *Piece) []string {
	source := p.Platforms
	if len(source) == 0 && strings.TrimSpace(p.Platform) != "" {
		source = []string{p.Platform}
	}

	seen := make(map[string]struct{}, len(source))
	platforms := make([]string, 0, len(source))
	for _, platform := range source {
		platform = strings.ToLower(strings.TrimSpace(platform))
		if platform == "" {
			continue
		}
		if _, ok := seen[platform]; ok {
			continue
		}
		seen[platform] = struct{}{}
		platforms = append(platforms, platform)
	}
	return platforms
}

// IsCarousel reports whether carousel files are authoritative for the piece.
func (p *Piece) IsCarousel() bool {
	return p.Format == FormatCarousel
}

// HasMedia reports whether the piece has anything to publish: carousel files
// for carousels, otherwise the single asset.
func (p *Piece) HasMedia() bool {
	if p.IsCarousel() && len(p.CarouselFiles) > 0 {
		return true
	}
	return p.HasSingleAsset()
}

// HasSingleAsset reports whether a single asset reference exists.
func (p *Piece) HasSingleAsset() bool {
	return p.DriveFileID != "" || p.DriveLink != ""
}

// NextCarouselOrder returns the order assigned to a newly appended carousel item.
func (p *Piece) NextCarouselOrder() int {
	next := 0
	for _, f := range p.CarouselFiles {
		if f.Order >= next {
			next = f.Order + 1
		}
	}
	return next
}
