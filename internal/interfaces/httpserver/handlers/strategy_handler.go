package handlers

import (
	"context"

	"github.com/deikotec/socialflow/internal/domain/ai"
	"github.com/deikotec/socialflow/internal/domain/strategy"
)

// StrategyHandler drives AI strategy generation.
type StrategyHandler struct {
	service *strategy.Service
}

func NewStrategyHandler(service *strategy.Service) *StrategyHandler {
	return &StrategyHandler{service: service}
}

func (h *StrategyHandler) Generate(ctx context.Context, userID, companyID string) (*strategy.FullStrategy, error) {
	return h.service.Generate(ctx, userID, companyID)
}

func (h *StrategyHandler) RegenerateMonthly(ctx context.Context, userID, companyID string) (*strategy.FullStrategy, error) {
	return h.service.RegenerateMonthly(ctx, userID, companyID)
}

func (h *StrategyHandler) RegenerateIdea(ctx context.Context, userID, companyID string, index int) (*strategy.FullStrategy, error) {
	return h.service.RegenerateIdea(ctx, userID, companyID, index)
}

func (h *StrategyHandler) SetIdeaUsed(ctx context.Context, userID, companyID string, index int, used bool) (*strategy.FullStrategy, error) {
	return h.service.SetIdeaUsed(ctx, userID, companyID, index, used)
}

// IdeasHandler drafts ideas for a free topic.
type IdeasHandler struct {
	service *ai.IdeasService
}

func NewIdeasHandler(service *ai.IdeasService) *IdeasHandler {
	return &IdeasHandler{service: service}
}

func (h *IdeasHandler) Generate(ctx context.Context, topic string) ([]ai.GeneratedIdea, error) {
	return h.service.GenerateIdeas(ctx, topic)
}
