package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/content"
	"github.com/deikotec/socialflow/internal/infrastructure/auth"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/handlers"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

type contentResponse struct {
	ID string `json:"id"`
	*content.Piece
}

func toContentResponses(pieces []*content.Piece) []contentResponse {
	out := make([]contentResponse, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, contentResponse{ID: p.ID, Piece: p})
	}
	return out
}

type statusRequest struct {
	Status content.Status `json:"status" binding:"required,contentstatus" example:"review"`
}

type notifyRequest struct {
	MemberID string `json:"memberId" binding:"required"`
}

func registerContentRoutes(router gin.IRoutes, handler *handlers.ContentHandler, log zerolog.Logger) {
	router.GET("/content", listContent(handler, log))
	router.POST("/content", createContent(handler, log))
	router.PATCH("/content/:contentId/status", updateContentStatus(handler, log))
	router.POST("/content/:contentId/notify", notifyTeamMember(handler, log))
}

// listContent godoc
// @Summary      List content
// @Description  Returns the company's content pieces newest first.
// @Tags         content
// @Produce      json
// @Param        companyId  path      string  true  "Company ID"
// @Success      200        {array}   contentResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/companies/{companyId}/content [get]
func listContent(handler *handlers.ContentHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		pieces, err := handler.List(c.Request.Context(), auth.UserID(c), c.Param("companyId"))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, toContentResponses(pieces))
	}
}

// createContent godoc
// @Summary      Plan a content piece
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        companyId  path      string               true  "Company ID"
// @Param        body       body      content.CreateInput  true  "Content"
// @Success      201        {object}  contentResponse
// @Failure      400        {object}  errorResponse
// @Router       /v1/companies/{companyId}/content [post]
func createContent(handler *handlers.ContentHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input content.CreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}
		piece, err := handler.Create(c.Request.Context(), auth.UserID(c), c.Param("companyId"), input)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusCreated, contentResponse{ID: piece.ID, Piece: piece})
	}
}

// updateContentStatus godoc
// @Summary      Move content to another status
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        companyId  path      string         true  "Company ID"
// @Param        contentId  path      string         true  "Content ID"
// @Param        body       body      statusRequest  true  "Status"
// @Success      200        {object}  okResponse
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/companies/{companyId}/content/{contentId}/status [patch]
func updateContentStatus(handler *handlers.ContentHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}
		err := handler.UpdateStatus(c.Request.Context(), auth.UserID(c), c.Param("companyId"), c.Param("contentId"), req.Status)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, okResponse{Success: true})
	}
}

// notifyTeamMember godoc
// @Summary      Assign content and notify a team member
// @Tags         content
// @Accept       json
// @Produce      json
// @Param        companyId  path      string         true  "Company ID"
// @Param        contentId  path      string         true  "Content ID"
// @Param        body       body      notifyRequest  true  "Member"
// @Success      200        {object}  content.Notification
// @Failure      400        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/companies/{companyId}/content/{contentId}/notify [post]
func notifyTeamMember(handler *handlers.ContentHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req notifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}
		n, err := handler.Notify(c.Request.Context(), auth.UserID(c), c.Param("companyId"), c.Param("contentId"), req.MemberID)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, n)
	}
}
