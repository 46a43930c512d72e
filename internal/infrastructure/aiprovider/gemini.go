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

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		MaxOutputTokens int `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

type googleErrorResponse struct {
	Err struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Gemini calls the Generative Language REST API.
type Gemini struct {
	client     *resty.Client
	baseURL    string
	model      string
	defaultKey string
	maxTokens  int
}

// NewGemini creates the Gemini provider. defaultKey is used when a company has no key of its own.
func NewGemini(baseURL, model, defaultKey string, maxTokens int, timeout time.Duration) *Gemini {
	client := httpclients.NewClient("gemini")
	client.SetTimeout(timeout)
	return &Gemini{
		client:     client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		defaultKey: defaultKey,
		maxTokens:  maxTokens,
	}
}

func (g *Gemini) Name() string { return company.AIProviderGemini }

func (g *Gemini) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	key := apiKey
	if key == "" {
		key = g.defaultKey
	}
	if key == "" {
		return "", missingKey(ctx, "Gemini")
	}

	body := geminiRequest{Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}}}
	body.GenerationConfig.MaxOutputTokens = g.maxTokens

	start := time.Now()
	var result geminiResponse
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("key", key).
		SetBody(body).
		SetResult(&result).
		SetError(&googleErrorResponse{}).
		Post(g.baseURL + "/models/" + g.model + ":generateContent")
	if err != nil {
		metrics.RecordAIRequest(g.Name(), false, time.Since(start).Seconds())
		return "", upstreamError(ctx, "Gemini", err.Error(), 0, err)
	}
	if resp.IsError() {
		metrics.RecordAIRequest(g.Name(), false, time.Since(start).Seconds())
		message := ""
		if e, ok := resp.Error().(*googleErrorResponse); ok {
			message = e.Err.Message
		}
		return "", upstreamError(ctx, "Gemini", message, resp.StatusCode(), nil)
	}
	metrics.RecordAIRequest(g.Name(), true, time.Since(start).Seconds())

	var text strings.Builder
	if len(result.Candidates) > 0 {
		for _, part := range result.Candidates[0].Content.Parts {
			text.WriteString(part.Text)
		}
	}
	return text.String(), nil
}
