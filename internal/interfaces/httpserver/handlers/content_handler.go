package handlers

import (
	"context"

	"github.com/deikotec/socialflow/internal/domain/content"
)

// ContentHandler invokes content planning use cases.
type ContentHandler struct {
	service *content.Service
}

func NewContentHandler(service *content.Service) *ContentHandler {
	return &ContentHandler{service: service}
}

func (h *ContentHandler) Create(ctx context.Context, userID, companyID string, input content.CreateInput) (*content.Piece, error) {
	return h.service.Create(ctx, userID, companyID, input)
}

func (h *ContentHandler) List(ctx context.Context, userID, companyID string) ([]*content.Piece, error) {
	return h.service.List(ctx, userID, companyID)
}

func (h *ContentHandler) UpdateStatus(ctx context.Context, userID, companyID, contentID string, status content.Status) error {
	return h.service.UpdateStatus(ctx, userID, companyID, contentID, status)
}

func (h *ContentHandler) Notify(ctx context.Context, userID, companyID, contentID, memberID string) (content.Notification, error) {
	return h.service.NotifyTeamMember(ctx, userID, companyID, contentID, memberID)
}
