package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/infrastructure/auth"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/handlers"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

type ideasRequest struct {
	Topic string `json:"topic" binding:"required" example:"productividad para freelancers"`
}

type ideaUsedRequest struct {
	IsUsed *bool `json:"isUsed" binding:"required"`
}

func registerIdeasRoutes(router gin.IRoutes, handler *handlers.IdeasHandler, log zerolog.Logger) {
	router.POST("/ideas", generateIdeas(handler, log))
}

func registerStrategyRoutes(router gin.IRoutes, handler *handlers.StrategyHandler, log zerolog.Logger) {
	router.POST("/strategy", generateStrategy(handler, log))
	router.POST("/strategy/monthly", regenerateMonthly(handler, log))
	router.POST("/strategy/ideas/:index/regenerate", regenerateIdea(handler, log))
	router.PATCH("/strategy/ideas/:index", setIdeaUsed(handler, log))
}

// generateIdeas godoc
// @Summary      Draft video ideas for a topic
// @Tags         ai
// @Accept       json
// @Produce      json
// @Param        body  body      ideasRequest  true  "Topic"
// @Success      200   {array}   ai.GeneratedIdea
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /v1/ideas [post]
func generateIdeas(handler *handlers.IdeasHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ideasRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}
		ideas, err := handler.Generate(c.Request.Context(), req.Topic)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, ideas)
	}
}

// generateStrategy godoc
// @Summary      Generate the full content strategy
// @Description  Uses the company's AI provider and, when set, a summary of its website.
// @Tags         strategy
// @Produce      json
// @Param        companyId  path      string  true  "Company ID"
// @Success      200        {object}  strategy.FullStrategy
// @Failure      400        {object}  errorResponse
// @Failure      502        {object}  errorResponse
// @Router       /v1/companies/{companyId}/strategy [post]
func generateStrategy(handler *handlers.StrategyHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := handler.Generate(c.Request.Context(), auth.UserID(c), c.Param("companyId"))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// regenerateMonthly godoc
// @Summary      Regenerate the monthly ideas, calendar and library
// @Tags         strategy
// @Produce      json
// @Param        companyId  path      string  true  "Company ID"
// @Success      200        {object}  strategy.FullStrategy
// @Failure      400        {object}  errorResponse
// @Router       /v1/companies/{companyId}/strategy/monthly [post]
func regenerateMonthly(handler *handlers.StrategyHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := handler.RegenerateMonthly(c.Request.Context(), auth.UserID(c), c.Param("companyId"))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// regenerateIdea godoc
// @Summary      Regenerate one idea
// @Tags         strategy
// @Produce      json
// @Param        companyId  path      string   true  "Company ID"
// @Param        index      path      integer  true  "Idea index"
// @Success      200        {object}  strategy.FullStrategy
// @Failure      404        {object}  errorResponse
// @Router       /v1/companies/{companyId}/strategy/ideas/{index}/regenerate [post]
func regenerateIdea(handler *handlers.StrategyHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := ideaIndex(c)
		if !ok {
			return
		}
		result, err := handler.RegenerateIdea(c.Request.Context(), auth.UserID(c), c.Param("companyId"), index)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// setIdeaUsed godoc
// @Summary      Mark an idea used or unused
// @Tags         strategy
// @Accept       json
// @Produce      json
// @Param        companyId  path      string           true  "Company ID"
// @Param        index      path      integer          true  "Idea index"
// @Param        body       body      ideaUsedRequest  true  "Flag"
// @Success      200        {object}  strategy.FullStrategy
// @Failure      404        {object}  errorResponse
// @Router       /v1/companies/{companyId}/strategy/ideas/{index} [patch]
func setIdeaUsed(handler *handlers.StrategyHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		index, ok := ideaIndex(c)
		if !ok {
			return
		}
		var req ideaUsedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}
		result, err := handler.SetIdeaUsed(c.Request.Context(), auth.UserID(c), c.Param("companyId"), index, *req.IsUsed)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func ideaIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		platformerrors.WriteValidationError(c, "index must be an integer")
		return 0, false
	}
	return index, true
}
