package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/interfaces/httpserver/handlers"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// portalResponse is portal.View with content ids exposed.
type portalResponse struct {
	CompanyID   string            `json:"companyId"`
	CompanyName string            `json:"companyName"`
	BrandColor  string            `json:"brandColor,omitempty"`
	Content     []contentResponse `json:"content"`
}

type reviewRequest struct {
	Feedback string `json:"feedback"`
}

func registerPortalRoutes(router gin.IRoutes, handler *handlers.PortalHandler, log zerolog.Logger) {
	router.GET("/portal/:token", getPortal(handler, log))
	router.POST("/portal/:token/content/:contentId/approve", approveContent(handler, log))
	router.POST("/portal/:token/content/:contentId/reject", rejectContent(handler, log))
}

// getPortal godoc
// @Summary      Client review portal
// @Description  Lists content in review, approved or rejected for the company owning the token.
// @Tags         portal
// @Produce      json
// @Param        token  path      string  true  "Portal token"
// @Success      200    {object}  portalResponse
// @Failure      404    {object}  errorResponse
// @Router       /v1/portal/{token} [get]
func getPortal(handler *handlers.PortalHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := handler.View(c.Request.Context(), c.Param("token"))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, portalResponse{
			CompanyID:   view.CompanyID,
			CompanyName: view.CompanyName,
			BrandColor:  view.BrandColor,
			Content:     toContentResponses(view.Content),
		})
	}
}

// approveContent godoc
// @Summary      Approve content
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        token      path      string         true   "Portal token"
// @Param        contentId  path      string         true   "Content ID"
// @Param        body       body      reviewRequest  false  "Optional feedback"
// @Success      200        {object}  okResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/portal/{token}/content/{contentId}/approve [post]
func approveContent(handler *handlers.PortalHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				platformerrors.WriteValidationError(c, err.Error())
				return
			}
		}
		if err := handler.Approve(c.Request.Context(), c.Param("token"), c.Param("contentId"), req.Feedback); err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, okResponse{Success: true})
	}
}

// rejectContent godoc
// @Summary      Reject content
// @Description  Feedback is required.
// @Tags         portal
// @Accept       json
// @Produce      json
// @Param        token      path      string         true  "Portal token"
// @Param        contentId  path      string         true  "Content ID"
// @Param        body       body      reviewRequest  true  "Feedback"
// @Success      200        {object}  okResponse
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/portal/{token}/content/{contentId}/reject [post]
func rejectContent(handler *handlers.PortalHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req reviewRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}
		if err := handler.Reject(c.Request.Context(), c.Param("token"), c.Param("contentId"), req.Feedback); err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, okResponse{Success: true})
	}
}
