package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/assets"
	"github.com/deikotec/socialflow/internal/infrastructure/auth"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/handlers"
)

type uploadResponse struct {
	Success bool `json:"success" example:"true"`
	assets.UploadResult
}

func registerPublishRoutes(router gin.IRoutes, handler *handlers.PublishHandler, log zerolog.Logger) {
	router.POST("/content/:contentId/publish", publishContent(handler, log))
}

func registerAssetRoutes(router gin.IRoutes, handler *handlers.AssetHandler, maxBytes int64, log zerolog.Logger) {
	router.POST("/assets", uploadAsset(handler, maxBytes, log))
}

// publishContent godoc
// @Summary      Publish a content piece
// @Description  Publishes to every target platform concurrently. The piece becomes posted when at least one platform succeeds.
// @Tags         publishing
// @Produce      json
// @Param        companyId  path      string  true  "Company ID"
// @Param        contentId  path      string  true  "Content ID"
// @Success      200        {object}  publishing.PublishResult
// @Failure      400        {object}  failureResponse
// @Failure      404        {object}  failureResponse
// @Router       /v1/companies/{companyId}/content/{contentId}/publish [post]
func publishContent(handler *handlers.PublishHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := handler.Publish(c.Request.Context(), auth.UserID(c), c.Param("companyId"), c.Param("contentId"))
		if err != nil {
			writeFailure(c, err, log)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// uploadAsset godoc
// @Summary      Upload a creative asset
// @Description  Stores the file in the company's date folder and links it to the content piece when contentId is set.
// @Tags         assets
// @Accept       multipart/form-data
// @Produce      json
// @Param        companyId  path      string  true   "Company ID"
// @Param        file       formData  file    true   "Asset"
// @Param        contentId  formData  string  false  "Content ID to link"
// @Param        format     formData  string  false  "Content format used as file name prefix"
// @Success      200        {object}  uploadResponse
// @Failure      400        {object}  failureResponse
// @Failure      413        {object}  failureResponse
// @Router       /v1/companies/{companyId}/assets [post]
func uploadAsset(handler *handlers.AssetHandler, maxBytes int64, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		header, err := c.FormFile("file")
		if err != nil {
			status := http.StatusBadRequest
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				status = http.StatusRequestEntityTooLarge
			}
			c.AbortWithStatusJSON(status, failureResponse{Success: false, Error: "file is required: " + err.Error()})
			return
		}
		file, err := header.Open()
		if err != nil {
			writeFailure(c, err, log)
			return
		}
		defer file.Close()

		input := assets.UploadInput{
			CompanyID: c.Param("companyId"),
			ContentID: c.PostForm("contentId"),
			Format:    c.PostForm("format"),
			FileName:  header.Filename,
			MimeType:  header.Header.Get("Content-Type"),
			Body:      file,
		}
		result, err := handler.Upload(c.Request.Context(), auth.UserID(c), input, header.Size)
		if err != nil {
			writeFailure(c, err, log)
			return
		}
		c.JSON(http.StatusOK, uploadResponse{Success: true, UploadResult: result})
	}
}
