package handlers

import (
	"context"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/publishing"
	"github.com/deikotec/socialflow/internal/infrastructure/metrics"
)

// PublishHandler publishes content pieces for their owners.
type PublishHandler struct {
	companies    *company.Service
	orchestrator *publishing.Orchestrator
}

func NewPublishHandler(companies *company.Service, orchestrator *publishing.Orchestrator) *PublishHandler {
	return &PublishHandler{companies: companies, orchestrator: orchestrator}
}

func (h *PublishHandler) Publish(ctx context.Context, userID, companyID, contentID string) (publishing.PublishResult, error) {
	if _, err := h.companies.Get(ctx, userID, companyID); err != nil {
		return publishing.PublishResult{}, err
	}
	result, err := h.orchestrator.Publish(ctx, companyID, contentID)
	if err != nil {
		return result, err
	}
	for _, r := range result.Results {
		metrics.RecordPublish(r.Platform, r.Status)
	}
	return result, nil
}
