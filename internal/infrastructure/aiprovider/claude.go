package aiprovider

import (
	"context"
	"strings"
	"time"

	"resty.dev/v3"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/infrastructure/metrics"
	"github.com/deikotec/socialflow/internal/utils/httpclients"
)

const anthropicVersion = "2023-06-01"

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type claudeErrorResponse struct {
	Err struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Claude calls the Anthropic Messages API with the company's own key.
type Claude struct {
	client    *resty.Client
	baseURL   string
	model     string
	maxTokens int
}

func NewClaude(baseURL, model string, maxTokens int, timeout time.Duration) *Claude {
	client := httpclients.NewClient("claude")
	client.SetTimeout(timeout)
	return &Claude{
		client:    client,
		baseURL:   strings.TrimRight(baseURL, "/"),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (c *Claude) Name() string { return company.AIProviderClaude }

func (c *Claude) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", missingKey(ctx, "Claude")
	}

	start := time.Now()
	var result claudeResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", anthropicVersion).
		SetBody(claudeRequest{
			Model:     c.model,
			MaxTokens: c.maxTokens,
			Messages:  []claudeMessage{{Role: "user", Content: prompt}},
		}).
		SetResult(&result).
		SetError(&claudeErrorResponse{}).
		Post(c.baseURL + "/messages")
	if err != nil {
		metrics.RecordAIRequest(c.Name(), false, time.Since(start).Seconds())
		return "", upstreamError(ctx, "Claude", err.Error(), 0, err)
	}
	if resp.IsError() {
		metrics.RecordAIRequest(c.Name(), false, time.Since(start).Seconds())
		message := ""
		if e, ok := resp.Error().(*claudeErrorResponse); ok {
			message = e.Err.Message
		}
		return "", upstreamError(ctx, "Claude", message, resp.StatusCode(), nil)
	}
	metrics.RecordAIRequest(c.Name(), true, time.Since(start).Seconds())

	if len(result.Content) == 0 {
		return "", nil
	}
	return result.Content[0].Text, nil
}
