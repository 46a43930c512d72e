package ai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

type fakeProvider struct {
	name         string
	CompleteFunc func(ctx context.Context, apiKey, prompt string) (string, error)
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Complete(ctx context.Context, apiKey, prompt string) (string, error) {
	return f.CompleteFunc(ctx, apiKey, prompt)
}

func TestParseFencedJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []GeneratedIdea
	}{
		{name: "plain", raw: `[{"title":"A"}]`, want: []GeneratedIdea{{Title: "A"}}},
		{name: "json fence", raw: "```json\n[{\"title\":\"B\"}]\n```", want: []GeneratedIdea{{Title: "B"}}},
		{name: "upper fence", raw: "```JSON\n[{\"title\":\"C\"}]```", want: []GeneratedIdea{{Title: "C"}}},
		{name: "bare fence", raw: "```\n[{\"title\":\"D\",\"visual_cues\":\"zoom\"}]\n```", want: []GeneratedIdea{{Title: "D", VisualCues: "zoom"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFencedJSON[[]GeneratedIdea](context.Background(), tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFencedJSONInvalid(t *testing.T) {
	_, err := ParseFencedJSON[map[string]any](context.Background(), "Sure! Here is your strategy: {")
	require.Error(t, err)
	assert.True(t, errors.Is(err, platformerrors.ErrAIResponseParse))
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeExternal))
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(&fakeProvider{name: "gemini"}, &fakeProvider{name: "claude"}, nil)
	assert.Equal(t, []string{"claude", "gemini"}, r.Names())

	p, err := r.Get(context.Background(), " Claude ")
	require.NoError(t, err)
	assert.Equal(t, "claude", p.Name())

	_, err = r.Get(context.Background(), "openai")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}

func TestNewCompanyContextDefaults(t *testing.T) {
	c := &company.Company{Name: "Acme"}
	got := NewCompanyContext(c, "")
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "No especificado", got.Sector)
	assert.Equal(t, "Profesional y cercano", got.Tone)
	assert.Equal(t, defaultNetworks, got.TargetNetworks)
	assert.Equal(t, "No especificados", got.Products)

	c.Settings.TargetNetworks = []string{"instagram", "tiktok"}
	c.Settings.Website = "https://acme.test"
	c.Products = []company.ProductService{{Name: "Widget", Type: "product", Description: "Blue"}}
	got = NewCompanyContext(c, "")
	assert.Equal(t, "instagram, tiktok", got.TargetNetworks)
	assert.Equal(t, "https://acme.test", got.Website)
	assert.Equal(t, "- Widget (product): Blue", got.Products)

	assert.Equal(t, "scraped", NewCompanyContext(c, "scraped").Website)
}

func TestRenderPrompts(t *testing.T) {
	cc := NewCompanyContext(&company.Company{
		Name:     "Acme",
		Settings: company.Settings{ManychatAutomations: "Comenta GUIA"},
	}, "")

	strategy, err := Render(PromptStrategy, cc)
	require.NoError(t, err)
	assert.Contains(t, strategy, "- Nombre: Acme")
	assert.Contains(t, strategy, `"Comenta GUIA"`)
	assert.Contains(t, strategy, `"contentLibrary"`)

	single, err := Render(PromptSingleIdea, map[string]any{
		"Company": cc,
		"Old":     map[string]string{"Title": "Old", "Pillar": "Educa", "Channel": "linkedin", "Format": "linkedin_post", "LibraryType": "linkedin"},
	})
	require.NoError(t, err)
	assert.Contains(t, single, `"format": "linkedin_post"`)
	assert.Contains(t, single, `debe ser "linkedin"`)

	monthly, err := Render(PromptMonthly, map[string]any{
		"Company":   cc,
		"Summary":   "Resumen",
		"Channels":  []string{"instagram"},
		"Pillars":   []string{"Educa", "Vende"},
		"PastIdeas": []string{"Idea vieja"},
	})
	require.NoError(t, err)
	assert.Contains(t, monthly, "Pilares de contenido a utilizar: Educa, Vende")
	assert.Contains(t, monthly, "- Idea vieja")

	monthly, err = Render(PromptMonthly, map[string]any{"Company": cc, "Pillars": []string{}, "Channels": []string{}})
	require.NoError(t, err)
	assert.False(t, strings.Contains(monthly, "NO REPETIR"))
}

func TestGenerateIdeas(t *testing.T) {
	var gotPrompt, gotKey string
	provider := &fakeProvider{name: "gemini", CompleteFunc: func(ctx context.Context, apiKey, prompt string) (string, error) {
		gotKey, gotPrompt = apiKey, prompt
		return "```json\n[{\"title\":\"T\",\"hook\":\"H\",\"body\":\"B\",\"cta\":\"C\",\"visual_cues\":\"V\"}]\n```", nil
	}}
	svc := NewIdeasService(provider, zerolog.Nop())

	ideas, err := svc.GenerateIdeas(context.Background(), "  coffee  ")
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, GeneratedIdea{Title: "T", Hook: "H", Body: "B", CTA: "C", VisualCues: "V"}, ideas[0])
	assert.Empty(t, gotKey)
	assert.Contains(t, gotPrompt, `User Topic: "coffee"`)

	_, err = svc.GenerateIdeas(context.Background(), " ")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}
