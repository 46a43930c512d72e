package aiprovider

import (
	"context"
	"fmt"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

func missingKey(ctx context.Context, provider string) error {
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeValidation,
		provider+" API key is required", nil, "d8e0f2a4-6b8c-4d0e-9f5a-7c9d1e3f5b14", map[string]any{"provider": provider})
}

func upstreamError(ctx context.Context, provider, message string, status int, err error) error {
	if message == "" {
		message = fmt.Sprintf("status %d", status)
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		fmt.Sprintf("%s API error: %s", provider, message), err,
		"e9f1a3b5-7c9d-4e1f-8a6b-8d0e2f4a6c25", map[string]any{"provider": provider, "status": status})
}
