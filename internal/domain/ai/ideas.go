package ai

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// GeneratedIdea is a short-form video script draft.
type GeneratedIdea struct {
	Title      string `json:"title"`
	Hook       string `json:"hook"`
	Body       string `json:"body"`
	CTA        string `json:"cta"`
	VisualCues string `json:"visual_cues"`
}

// IdeasService drafts video ideas for a topic with the server's default provider.
type IdeasService struct {
	provider Provider
	log      zerolog.Logger
}

func NewIdeasService(provider Provider, log zerolog.Logger) *IdeasService {
	return &IdeasService{
		provider: provider,
		log:      log.With().Str("component", "ideas-service").Logger(),
	}
}

// GenerateIdeas returns the model's ideas for topic.
func (s *IdeasService) GenerateIdeas(ctx context.Context, topic string) ([]GeneratedIdea, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"topic is required", nil, "d2e4f6a8-0b2c-4d4e-9f9a-1c3d5e7f9b58")
	}

	prompt, err := Render(PromptIdeas, map[string]string{"Topic": topic})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "render ideas prompt")
	}
	raw, err := s.provider.Complete(ctx, "", prompt)
	if err != nil {
		return nil, err
	}
	ideas, err := ParseFencedJSON[[]GeneratedIdea](ctx, raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("ideas response could not be parsed")
		return nil, err
	}
	return ideas, nil
}
