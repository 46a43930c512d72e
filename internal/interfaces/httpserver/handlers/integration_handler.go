package handlers

import (
	"context"

	"github.com/deikotec/socialflow/internal/domain/integrations"
	"github.com/deikotec/socialflow/internal/domain/portal"
)

// IntegrationHandler runs the OAuth connect flows.
type IntegrationHandler struct {
	service *integrations.Service
}

func NewIntegrationHandler(service *integrations.Service) *IntegrationHandler {
	return &IntegrationHandler{service: service}
}

func (h *IntegrationHandler) LoginURL(ctx context.Context, userID, provider, companyID string) (string, error) {
	return h.service.LoginURL(ctx, userID, provider, companyID)
}

func (h *IntegrationHandler) Callback(ctx context.Context, provider string, params integrations.CallbackParams) string {
	return h.service.Callback(ctx, provider, params)
}

// PortalHandler serves the token-scoped client review portal.
type PortalHandler struct {
	service *portal.Service
}

func NewPortalHandler(service *portal.Service) *PortalHandler {
	return &PortalHandler{service: service}
}

func (h *PortalHandler) View(ctx context.Context, token string) (*portal.View, error) {
	return h.service.List(ctx, token)
}

func (h *PortalHandler) Approve(ctx context.Context, token, contentID, feedback string) error {
	return h.service.Approve(ctx, token, contentID, feedback)
}

func (h *PortalHandler) Reject(ctx context.Context, token, contentID, feedback string) error {
	return h.service.Reject(ctx, token, contentID, feedback)
}
