package aiprovider

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/infrastructure/metrics"
)

// OpenAI calls chat completions with the company's own key.
type OpenAI struct {
	baseURL    string
	model      string
	maxTokens  int
	httpClient *http.Client
}

func NewOpenAI(baseURL, model string, maxTokens int, timeout time.Duration) *OpenAI {
	return &OpenAI{
		baseURL:    baseURL,
		model:      model,
		maxTokens:  maxTokens,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (o *OpenAI) Name() string { return company.AIProviderOpenAI }

func (o *OpenAI) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	if apiKey == "" {
		return "", missingKey(ctx, "OpenAI")
	}

	cfg := openai.DefaultConfig(apiKey)
	if o.baseURL != "" {
		cfg.BaseURL = o.baseURL
	}
	cfg.HTTPClient = o.httpClient
	client := openai.NewClientWithConfig(cfg)

	start := time.Now()
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: o.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		metrics.RecordAIRequest(o.Name(), false, time.Since(start).Seconds())
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", upstreamError(ctx, "OpenAI", apiErr.Message, apiErr.HTTPStatusCode, err)
		}
		return "", upstreamError(ctx, "OpenAI", err.Error(), 0, err)
	}
	metrics.RecordAIRequest(o.Name(), true, time.Since(start).Seconds())

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
