package instagram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/deikotec/socialflow/internal/domain/publishing"
	"github.com/deikotec/socialflow/internal/utils/httpclients"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// Container processing states reported by the Graph API.
const (
	StatusFinished = "FINISHED"
	StatusError    = "ERROR"
)

type graphErrorResponse struct {
	Err struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type idResponse struct {
	ID string `json:"id"`
}

type containerStatusResponse struct {
	StatusCode string `json:"status_code"`
	Status     string `json:"status"`
}

// Client publishes media through the Instagram Graph API.
type Client struct {
	client  *resty.Client
	baseURL string
}

// NewClient creates a Graph API client rooted at baseURL, e.g. https://graph.facebook.com/v20.0.
func NewClient(baseURL string, timeout time.Duration) *Client {
	client := httpclients.NewClient("instagram")
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Client{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

// CreateContainer stages an image, reel, carousel item or carousel.
func (c *Client) CreateContainer(ctx context.Context, conn publishing.Connection, req publishing.ContainerRequest) (string, error) {
	params := map[string]string{"access_token": conn.AccessToken}

	switch req.MediaType {
	case publishing.MediaCarousel:
		params["media_type"] = "CAROUSEL"
		params["caption"] = req.Caption
		params["children"] = strings.Join(req.Children, ",")
	default:
		if req.IsCarouselItem {
			params["is_carousel_item"] = "true"
		} else {
			params["caption"] = req.Caption
		}
		if req.MediaType == publishing.MediaVideo {
			params["media_type"] = "REELS"
			params["video_url"] = req.MediaURL
		} else {
			params["image_url"] = req.MediaURL
		}
	}

	if req.ScheduledAt != nil && !req.IsCarouselItem {
		params["published"] = "false"
		params["scheduled_publish_time"] = strconv.FormatInt(req.ScheduledAt.Unix(), 10)
	}

	action := "create container"
	if req.MediaType == publishing.MediaCarousel {
		action = "create carousel container"
	}

	var result idResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(&result).
		SetError(&graphErrorResponse{}).
		Post(c.baseURL + "/" + conn.AccountID + "/media")
	if err != nil {
		return "", transportError(ctx, action, err)
	}
	if resp.IsError() {
		return "", apiError(ctx, resp, action)
	}
	return result.ID, nil
}

// PollUntilReady waits for a container to finish processing.
func (c *Client) PollUntilReady(ctx context.Context, conn publishing.Connection, containerID string, maxAttempts int, interval time.Duration) error {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}

		status, err := c.containerStatus(ctx, conn, containerID)
		if err != nil {
			return err
		}
		switch status.StatusCode {
		case StatusFinished:
			return nil
		case StatusError:
			return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
				"Media processing failed on Instagram", fmt.Errorf("%w: %s", platformerrors.ErrMediaProcessing, status.Status),
				"c9d1e3f5-7a9b-4c1d-8e6f-8b0d2f4a6c25", map[string]any{"container_id": containerID})
		}
	}

	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeTimeout,
		"Media processing timed out", platformerrors.ErrMediaProcessingTimeout,
		"d0e2f4a6-8b0c-4d2e-9f7a-9c1e3a5b7d36", map[string]any{"container_id": containerID, "attempts": maxAttempts})
}

// Publish turns a finished container into a post.
func (c *Client) Publish(ctx context.Context, conn publishing.Connection, containerID string) (string, error) {
	var result idResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"access_token": conn.AccessToken,
			"creation_id":  containerID,
		}).
		SetResult(&result).
		SetError(&graphErrorResponse{}).
		Post(c.baseURL + "/" + conn.AccountID + "/media_publish")
	if err != nil {
		return "", transportError(ctx, "publish media", err)
	}
	if resp.IsError() {
		return "", apiError(ctx, resp, "publish media")
	}
	return result.ID, nil
}

func (c *Client) containerStatus(ctx context.Context, conn publishing.Connection, containerID string) (containerStatusResponse, error) {
	var result containerStatusResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       "status_code,status",
			"access_token": conn.AccessToken,
		}).
		SetResult(&result).
		SetError(&graphErrorResponse{}).
		Get(c.baseURL + "/" + containerID)
	if err != nil {
		return result, transportError(ctx, "get container status", err)
	}
	if resp.IsError() {
		return result, apiError(ctx, resp, "get container status")
	}
	return result, nil
}

func apiError(ctx context.Context, resp *resty.Response, action string) error {
	message := "Unknown error"
	if body, ok := resp.Error().(*graphErrorResponse); ok && body.Err.Message != "" {
		message = body.Err.Message
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("Failed to %s: %s", action, message),
		fmt.Errorf("%w: instagram returned %d", platformerrors.ErrPlatformAPI, resp.StatusCode()),
		"e1f3a5b7-9c1d-4e3f-8a8b-0d2f4b6c8e47", map[string]any{"platform": "instagram", "status": resp.StatusCode()})
}

func transportError(ctx context.Context, action string, err error) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("Failed to %s: %v", action, err), fmt.Errorf("%w: %w", platformerrors.ErrPlatformAPI, err),
		"f2a4b6c8-0d2e-4f4a-9b9c-1e3a5c7d9f58", map[string]any{"platform": "instagram"})
}
