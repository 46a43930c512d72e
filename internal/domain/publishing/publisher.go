package publishing

import (
	"context"
	"time"
)

// MediaType is the kind of media a container holds.
type MediaType string

const (
	MediaImage    MediaType = "IMAGE"
	MediaVideo    MediaType = "VIDEO"
	MediaCarousel MediaType = "CAROUSEL"
)

// Connection is the platform account a publisher acts on.
type Connection struct {
	AccessToken string
	// AccountID is the Instagram business account id or the TikTok open id.
	AccountID string
}

// ContainerRequest describes media staged on a platform before publishing.
type ContainerRequest struct {
	MediaURL  string
	MediaType MediaType
	// Caption is the post caption, or the video title on platforms without captions.
	Caption        string
	IsCarouselItem bool
	// Children are item container ids of a carousel, in display order.
	Children    []string
	ScheduledAt *time.Time
}

// SocialPublisher drives one platform's container, processing and publish protocol.
type SocialPublisher interface {
	CreateContainer(ctx context.Context, conn Connection, req ContainerRequest) (string, error)
	// PollUntilReady waits interval before each of at most maxAttempts status checks.
	PollUntilReady(ctx context.Context, conn Connection, containerID string, maxAttempts int, interval time.Duration) error
	Publish(ctx context.Context, conn Connection, containerID string) (string, error)
}
