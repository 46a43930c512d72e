package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// errorResponse documents the platformerrors body for swagger.
type errorResponse struct {
	Error platformerrors.HTTPErrorDetail `json:"error"`
}

// failureResponse is the result body of publish and upload failures.
type failureResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Google Drive is not connected for this company"`
}

type okResponse struct {
	Success bool `json:"success" example:"true"`
}

// writeFailure answers publish and upload calls with {success:false, error}.
func writeFailure(c *gin.Context, err error, log zerolog.Logger) {
	status := http.StatusInternalServerError
	message := err.Error()
	if pe := platformerrors.GetPlatformError(err); pe != nil {
		platformerrors.LogError(log, pe)
		status = platformerrors.ErrorTypeToHTTPStatus(pe.Type)
		message = pe.Message
	} else {
		log.Error().Err(err).Str("path", c.FullPath()).Msg("unhandled error")
	}
	c.AbortWithStatusJSON(status, failureResponse{Success: false, Error: message})
}
