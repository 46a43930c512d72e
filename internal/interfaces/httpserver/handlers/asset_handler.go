package handlers

import (
	"context"

	"github.com/deikotec/socialflow/internal/domain/assets"
	"github.com/deikotec/socialflow/internal/infrastructure/metrics"
)

// AssetHandler uploads creative assets.
type AssetHandler struct {
	service *assets.Service
}

func NewAssetHandler(service *assets.Service) *AssetHandler {
	return &AssetHandler{service: service}
}

// Upload stores one asset; size is the multipart part length used for metrics.
func (h *AssetHandler) Upload(ctx context.Context, userID string, input assets.UploadInput, size int64) (assets.UploadResult, error) {
	result, err := h.service.UploadContentAsset(ctx, userID, input)
	status := "success"
	if err != nil {
		status = "failed"
	} else if result.Warning != "" {
		status = "fallback_root"
	}
	metrics.RecordUpload(input.MimeType, status, size)
	return result, err
}
