package handlers

import (
	"github.com/deikotec/socialflow/internal/domain/ai"
	"github.com/deikotec/socialflow/internal/domain/assets"
	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/content"
	"github.com/deikotec/socialflow/internal/domain/integrations"
	"github.com/deikotec/socialflow/internal/domain/portal"
	"github.com/deikotec/socialflow/internal/domain/publishing"
	"github.com/deikotec/socialflow/internal/domain/strategy"
)

// Provider wires all HTTP handlers for dependency injection.
type Provider struct {
	Company     *CompanyHandler
	Content     *ContentHandler
	Asset       *AssetHandler
	Publish     *PublishHandler
	Strategy    *StrategyHandler
	Ideas       *IdeasHandler
	Integration *IntegrationHandler
	Portal      *PortalHandler
}

// NewProvider constructs the handler provider with domain services.
func NewProvider(
	companyService *company.Service,
	contentService *content.Service,
	assetService *assets.Service,
	orchestrator *publishing.Orchestrator,
	strategyService *strategy.Service,
	ideasService *ai.IdeasService,
	integrationService *integrations.Service,
	portalService *portal.Service,
) *Provider {
	return &Provider{
		Company:     NewCompanyHandler(companyService),
		Content:     NewContentHandler(contentService),
		Asset:       NewAssetHandler(assetService),
		Publish:     NewPublishHandler(companyService, orchestrator),
		Strategy:    NewStrategyHandler(strategyService),
		Ideas:       NewIdeasHandler(ideasService),
		Integration: NewIntegrationHandler(integrationService),
		Portal:      NewPortalHandler(portalService),
	}
}
