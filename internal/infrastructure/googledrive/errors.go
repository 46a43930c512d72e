package googledrive

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// mapError classifies Drive failures into the storage error kinds.
func mapError(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeUnauthorized,
			"Google Drive credential was rejected", fmt.Errorf("%w: %w", platformerrors.ErrRemoteAuth, err),
			"d6e8f0a2-4b6c-4d8e-9f3a-5c7d9e1f3b92", map[string]any{"op": op})
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusNotFound:
			return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeNotFound,
				"Google Drive object not found", fmt.Errorf("%w: %w", platformerrors.ErrStaleReference, err),
				"e7f9a1b3-5c7d-4e9f-8a4b-6d8e0f2a4c03", map[string]any{"op": op})
		case http.StatusUnauthorized, http.StatusForbidden:
			return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeUnauthorized,
				"Google Drive access denied", fmt.Errorf("%w: %w", platformerrors.ErrRemoteAuth, err),
				"f8a0b2c4-6d8e-4f0a-9b5c-7e9f1a3b5d14", map[string]any{"op": op, "status": apiErr.Code})
		}
	}

	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerInfrastructure, platformerrors.ErrorTypeExternal,
		"Google Drive request failed", fmt.Errorf("%w: %w", platformerrors.ErrRemoteAPI, err),
		"a9b1c3d5-7e9f-4a1b-8c6d-8f0a2b4c6e25", map[string]any{"op": op})
}
