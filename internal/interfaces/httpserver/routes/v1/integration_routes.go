package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/integrations"
	"github.com/deikotec/socialflow/internal/infrastructure/auth"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/handlers"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

type loginResponse struct {
	URL string `json:"url"`
}

func registerIntegrationLoginRoutes(router gin.IRoutes, handler *handlers.IntegrationHandler, log zerolog.Logger) {
	router.GET("/integrations/:provider/login", integrationLogin(handler, log))
}

func registerIntegrationCallbackRoutes(router gin.IRoutes, handler *handlers.IntegrationHandler) {
	router.GET("/integrations/:provider/callback", integrationCallback(handler))
}

// integrationLogin godoc
// @Summary      Start an OAuth connection
// @Description  Returns the consent URL for google, meta or tiktok. The state nonce is valid for 10 minutes.
// @Tags         integrations
// @Produce      json
// @Param        provider   path      string  true  "google, meta or tiktok"
// @Param        companyId  query     string  true  "Company ID"
// @Success      200        {object}  loginResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/integrations/{provider}/login [get]
func integrationLogin(handler *handlers.IntegrationHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		url, err := handler.LoginURL(c.Request.Context(), auth.UserID(c), c.Param("provider"), c.Query("companyId"))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, loginResponse{URL: url})
	}
}

// integrationCallback godoc
// @Summary      OAuth callback
// @Description  Completes the connection and redirects to the dashboard settings page with a success or error code.
// @Tags         integrations
// @Param        provider  path   string  true   "google, meta or tiktok"
// @Param        code      query  string  false  "Authorization code"
// @Param        state     query  string  false  "State nonce"
// @Param        error     query  string  false  "Provider error"
// @Success      302
// @Router       /v1/integrations/{provider}/callback [get]
func integrationCallback(handler *handlers.IntegrationHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var params integrations.CallbackParams
		_ = c.ShouldBindQuery(&params)
		c.Redirect(http.StatusFound, handler.Callback(c.Request.Context(), c.Param("provider"), params))
	}
}
