package strategy

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/ai"
	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// CompanyAccess resolves companies the caller manages and their AI key.
type CompanyAccess interface {
	Get(ctx context.Context, userID, companyID string) (*company.Company, error)
	AIKey(c *company.Company) (string, error)
}

// CompanyWriter persists company fields.
type CompanyWriter interface {
	Update(ctx context.Context, id string, fields map[string]any) error
}

// WebsiteReader extracts readable text from a web page.
type WebsiteReader interface {
	ReadText(ctx context.Context, url string) (string, error)
}

// Service generates and maintains company content strategies.
type Service struct {
	companies CompanyAccess
	writer    CompanyWriter
	providers *ai.Registry
	website   WebsiteReader
	now       func() time.Time
	log       zerolog.Logger
}

// NewService wires the strategy service. website may be nil to skip scraping.
func NewService(companies CompanyAccess, writer CompanyWriter, providers *ai.Registry, website WebsiteReader, log zerolog.Logger) *Service {
	return &Service{
		companies: companies,
		writer:    writer,
		providers: providers,
		website:   website,
		now:       time.Now,
		log:       log.With().Str("component", "strategy-service").Logger(),
	}
}

type singleIdea struct {
	Idea           ContentIdea        `json:"idea"`
	ContentLibrary ContentLibraryItem `json:"contentLibrary"`
}

type monthlyContent struct {
	ContentIdeas   []ContentIdea        `json:"contentIdeas"`
	WeeklyCalendar []CalendarDay        `json:"weeklyCalendar"`
	ContentLibrary []ContentLibraryItem `json:"contentLibrary"`
}

type oldIdea struct {
	Title       string
	Pillar      string
	Channel     string
	Format      string
	LibraryType string
}

// Generate builds a new strategy for the company and stores it.
func (s *Service) Generate(ctx context.Context, userID, companyID string) (*FullStrategy, error) {
	c, err := s.companies.Get(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	prompt, err := ai.Render(ai.PromptStrategy, ai.NewCompanyContext(c, s.websiteContext(ctx, c.Settings.Website)))
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "render strategy prompt")
	}
	raw, err := s.complete(ctx, c, prompt)
	if err != nil {
		return nil, err
	}
	strategy, err := ai.ParseFencedJSON[FullStrategy](ctx, raw)
	if err != nil {
		return nil, err
	}
	strategy.GeneratedAt = s.now().UTC().Format(time.RFC3339)

	if err := s.save(ctx, c.ID, &strategy); err != nil {
		return nil, err
	}
	s.log.Info().Str("company_id", c.ID).Int("ideas", len(strategy.ContentIdeas)).Msg("strategy generated")
	return &strategy, nil
}

// RegenerateIdea replaces the idea and library item at index with a new draft
// of the same pillar, channel and format.
func (s *Service) RegenerateIdea(ctx context.Context, userID, companyID string, index int) (*FullStrategy, error) {
	c, strategy, err := s.load(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(strategy.ContentIdeas) || index >= len(strategy.ContentLibrary) {
		return nil, ideaNotFound(ctx, index)
	}

	idea, item := strategy.ContentIdeas[index], strategy.ContentLibrary[index]
	prompt, err := ai.Render(ai.PromptSingleIdea, map[string]any{
		"Company": ai.NewCompanyContext(c, ""),
		"Old": oldIdea{
			Title:       item.Title,
			Pillar:      item.Pillar,
			Channel:     idea.Channel,
			Format:      idea.Format,
			LibraryType: libraryType(idea.Format),
		},
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "render idea prompt")
	}
	raw, err := s.complete(ctx, c, prompt)
	if err != nil {
		return nil, err
	}
	replacement, err := ai.ParseFencedJSON[singleIdea](ctx, raw)
	if err != nil {
		return nil, err
	}

	strategy.ContentIdeas[index] = replacement.Idea
	strategy.ContentLibrary[index] = replacement.ContentLibrary
	if err := s.save(ctx, c.ID, strategy); err != nil {
		return nil, err
	}
	s.log.Info().Str("company_id", c.ID).Int("index", index).Msg("strategy idea regenerated")
	return strategy, nil
}

// SetIdeaUsed marks the library item at index as used or unused.
func (s *Service) SetIdeaUsed(ctx context.Context, userID, companyID string, index int, used bool) (*FullStrategy, error) {
	c, strategy, err := s.load(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(strategy.ContentLibrary) {
		return nil, ideaNotFound(ctx, index)
	}

	strategy.ContentLibrary[index].IsUsed = used
	if err := s.save(ctx, c.ID, strategy); err != nil {
		return nil, err
	}
	return strategy, nil
}

// RegenerateMonthly replaces ideas, calendar and library with a new batch,
// recording used titles so later batches avoid them.
func (s *Service) RegenerateMonthly(ctx context.Context, userID, companyID string) (*FullStrategy, error) {
	c, strategy, err := s.load(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}

	past := append([]string{}, strategy.PastUsedIdeas...)
	for _, item := range strategy.ContentLibrary {
		if item.IsUsed && !slices.Contains(past, item.Title) {
			past = append(past, item.Title)
		}
	}
	pillars := make([]string, 0, len(strategy.Pillars))
	for _, p := range strategy.Pillars {
		pillars = append(pillars, p.Name)
	}

	prompt, err := ai.Render(ai.PromptMonthly, map[string]any{
		"Company":   ai.NewCompanyContext(c, ""),
		"Summary":   strategy.Summary,
		"Channels":  strategy.TargetChannels,
		"Pillars":   pillars,
		"PastIdeas": past,
	})
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "render monthly prompt")
	}
	raw, err := s.complete(ctx, c, prompt)
	if err != nil {
		return nil, err
	}
	batch, err := ai.ParseFencedJSON[monthlyContent](ctx, raw)
	if err != nil {
		return nil, err
	}

	strategy.ContentIdeas = nonNil(batch.ContentIdeas)
	strategy.WeeklyCalendar = nonNil(batch.WeeklyCalendar)
	strategy.ContentLibrary = nonNil(batch.ContentLibrary)
	strategy.PastUsedIdeas = past
	if err := s.save(ctx, c.ID, strategy); err != nil {
		return nil, err
	}
	s.log.Info().Str("company_id", c.ID).Int("ideas", len(strategy.ContentIdeas)).Int("past_ideas", len(past)).Msg("monthly content regenerated")
	return strategy, nil
}

func (s *Service) load(ctx context.Context, userID, companyID string) (*company.Company, *FullStrategy, error) {
	c, err := s.companies.Get(ctx, userID, companyID)
	if err != nil {
		return nil, nil, err
	}
	if len(c.AIStrategy) == 0 {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"Strategy not generated yet", nil, "e3f5a7b9-1c3d-4e5f-8a0b-2d4e6f8a0c69")
	}
	var strategy FullStrategy
	if err := docstore.Decode(c.AIStrategy, &strategy); err != nil {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"stored strategy is malformed", err, "f4a6b8c0-2d4e-4f6a-9b1c-3e5f7a9b1d70")
	}
	return c, &strategy, nil
}

func (s *Service) save(ctx context.Context, companyID string, strategy *FullStrategy) error {
	data, err := docstore.Encode(strategy)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"encode strategy", err, "a5b7c9d1-3e5f-4a7b-8c2d-4f6a8b0c2e81")
	}
	return s.writer.Update(ctx, companyID, map[string]any{"aiStrategy": data})
}

func (s *Service) complete(ctx context.Context, c *company.Company, prompt string) (string, error) {
	provider, err := s.providers.Get(ctx, c.AIProvider())
	if err != nil {
		return "", err
	}
	key, err := s.companies.AIKey(c)
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeInternal,
			"could not read the company AI key", err, "b6c8d0e2-4f6a-4b8c-9d3e-5a7b9c1d3f92")
	}
	return provider.Complete(ctx, key, prompt)
}

// websiteContext returns the page text to prompt with. Scrape failures fall
// back to the bare URL.
func (s *Service) websiteContext(ctx context.Context, site string) string {
	if s.website == nil || !strings.HasPrefix(site, "http") {
		return site
	}
	text, err := s.website.ReadText(ctx, site)
	if err != nil {
		s.log.Warn().Err(err).Str("url", site).Msg("website scrape failed")
		text = site
	}
	return fmt.Sprintf("URL: %s\n\nResumen de contenido web:\n%s", site, text)
}

func ideaNotFound(ctx context.Context, index int) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound,
		"Idea not found at that index", platformerrors.ErrNotFound, "c7d9e1f3-5a7b-4c9d-8e4f-6b8c0d2e4a03", map[string]any{"index": index})
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
