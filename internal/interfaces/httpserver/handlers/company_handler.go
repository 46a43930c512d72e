package handlers

import (
	"context"

	"github.com/deikotec/socialflow/internal/domain/company"
)

// CompanyHandler invokes company management use cases.
type CompanyHandler struct {
	service *company.Service
}

func NewCompanyHandler(service *company.Service) *CompanyHandler {
	return &CompanyHandler{service: service}
}

func (h *CompanyHandler) Create(ctx context.Context, userID string, input company.CreateInput) (*company.Company, error) {
	return h.service.Create(ctx, userID, input)
}

func (h *CompanyHandler) Get(ctx context.Context, userID, companyID string) (*company.Company, error) {
	return h.service.Get(ctx, userID, companyID)
}

func (h *CompanyHandler) List(ctx context.Context, userID string) ([]*company.Company, error) {
	return h.service.List(ctx, userID)
}

func (h *CompanyHandler) Update(ctx context.Context, userID, companyID string, patch company.Patch) (*company.Company, error) {
	return h.service.Update(ctx, userID, companyID, patch)
}
