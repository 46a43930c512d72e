package tiktok

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/deikotec/socialflow/internal/domain/publishing"
	"github.com/deikotec/socialflow/internal/utils/httpclients"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

const (
	privacyPublic  = "PUBLIC_TO_EVERYONE"
	sourcePullURL  = "PULL_FROM_URL"
	coverTimestamp = 1000
)

type apiErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	LogID   string `json:"log_id"`
}

type errorResponse struct {
	Err apiErrorBody `json:"error"`
}

type postInfo struct {
	Title                 string `json:"title"`
	PrivacyLevel          string `json:"privacy_level"`
	DisableDuet           bool   `json:"disable_duet"`
	DisableComment        bool   `json:"disable_comment"`
	DisableStitch         bool   `json:"disable_stitch"`
	VideoCoverTimestampMS int    `json:"video_cover_timestamp_ms"`
}

type sourceInfo struct {
	Source   string `json:"source"`
	VideoURL string `json:"video_url"`
}

type initRequest struct {
	PostInfo   postInfo   `json:"post_info"`
	SourceInfo sourceInfo `json:"source_info"`
}

type initResponse struct {
	Data struct {
		PublishID string `json:"publish_id"`
	} `json:"data"`
	Err apiErrorBody `json:"error"`
}

// Client publishes videos through the TikTok Content Posting API. TikTok pulls
// the video from the URL and finishes the post itself, so the publish id
// returned by CreateContainer is the final post reference.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient creates a TikTok client rooted at baseURL, e.g. https://open.tiktokapis.com/v2.
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := httpclients.NewClient("tiktok")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Client{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// CreateContainer starts a direct post pulled from req.MediaURL and returns the publish id.
func (c *Client) CreateContainer(ctx context.Context, conn publishing.Connection, req publishing.ContainerRequest) (string, error) {
	body := initRequest{
		PostInfo: postInfo{
			Title:                 req.Caption,
			PrivacyLevel:          privacyPublic,
			VideoCoverTimestampMS: coverTimestamp,
		},
		SourceInfo: sourceInfo{Source: sourcePullURL, VideoURL: req.MediaURL},
	}

	var result initResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetAuthToken(conn.AccessToken).
		SetHeader("Content-Type", "application/json; charset=UTF-8").
		SetBody(body).
		SetResult(&result).
		SetError(&errorResponse{}).
		Post(c.baseURL + "/post/publish/video/init/")
	if err != nil {
		return "", transportError(ctx, "init TikTok upload", err)
	}
	if resp.IsError() {
		message := ""
		if e, ok := resp.Error().(*errorResponse); ok {
			message = e.Err.Message
		}
		return "", apiError(ctx, "init TikTok upload", message, resp.StatusCode())
	}
	if code := result.Err.Code; code != "" && code != "ok" {
		return "", apiError(ctx, "init TikTok upload", result.Err.Message, resp.StatusCode())
	}
	if result.Data.PublishID == "" {
		return "", apiError(ctx, "init TikTok upload", "missing publish id", resp.StatusCode())
	}
	return result.Data.PublishID, nil
}

// PollUntilReady returns immediately; TikTok processes pulled videos asynchronously.
func (c *Client) PollUntilReady(ctx context.Context, _ publishing.Connection, _ string, _ int, _ time.Duration) error {
	return ctx.Err()
}

// Publish returns the publish id; the init call already queued the post.
func (c *Client) Publish(_ context.Context, _ publishing.Connection, publishID string) (string, error) {
	return publishID, nil
}

func apiError(ctx context.Context, action, message string, status int) error {
	if message == "" {
		message = "Unknown error"
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("Failed to %s: %s", action, message),
		fmt.Errorf("%w: tiktok returned %d", platformerrors.ErrPlatformAPI, status),
		"a3b5c7d9-1e3f-4a5b-8c0d-2f4a6b8c0e69", map[string]any{"platform": "tiktok", "status": status})
}

func transportError(ctx context.Context, action string, err error) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("Failed to %s: %v", action, err), fmt.Errorf("%w: %w", platformerrors.ErrPlatformAPI, err),
		"b4c6d8e0-2f4a-4b6c-9d1e-3a5b7c9d1f70", map[string]any{"platform": "tiktok"})
}
