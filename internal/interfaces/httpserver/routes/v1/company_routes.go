package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/infrastructure/auth"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/handlers"
	"github.com/deikotec/socialflow/internal/utils/platformerrors"
)

// companyResponse exposes the document id next to the company fields.
// Credentials never leave the server; connection flags replace them.
type companyResponse struct {
	ID                 string `json:"id"`
	DriveConnected     bool   `json:"driveConnected"`
	InstagramConnected bool   `json:"instagramConnected"`
	TikTokConnected    bool   `json:"tiktokConnected"`
	AIKeyConfigured    bool   `json:"aiKeyConfigured"`
	*company.Company
}

func toCompanyResponse(c *company.Company) companyResponse {
	redacted := *c
	redacted.DriveRefreshCredential = ""
	redacted.Settings.AIAPIKey = ""
	if ig := c.SocialConnections.Instagram; ig != nil {
		conn := *ig
		conn.AccessToken = ""
		redacted.SocialConnections.Instagram = &conn
	}
	if tt := c.SocialConnections.TikTok; tt != nil {
		conn := *tt
		conn.AccessToken = ""
		conn.RefreshToken = ""
		redacted.SocialConnections.TikTok = &conn
	}
	return companyResponse{
		ID:                 c.ID,
		DriveConnected:     c.DriveRefreshCredential != "",
		InstagramConnected: c.SocialConnections.Instagram.Connected(),
		TikTokConnected:    c.SocialConnections.TikTok.Connected(),
		AIKeyConfigured:    c.Settings.AIAPIKey != "",
		Company:            &redacted,
	}
}

func registerCompanyRoutes(router gin.IRoutes, handler *handlers.CompanyHandler, log zerolog.Logger) {
	router.POST("/companies", createCompany(handler, log))
	router.GET("/companies", listCompanies(handler, log))
	router.GET("/companies/:companyId", getCompany(handler, log))
	router.PATCH("/companies/:companyId", updateCompany(handler, log))
}

// createCompany godoc
// @Summary      Create a company
// @Description  Registers a client company owned by the caller and issues its review portal token.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body      company.CreateInput  true  "Company"
// @Success      201   {object}  companyResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /v1/companies [post]
func createCompany(handler *handlers.CompanyHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input company.CreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}
		result, err := handler.Create(c.Request.Context(), auth.UserID(c), input)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusCreated, toCompanyResponse(result))
	}
}

// listCompanies godoc
// @Summary      List companies
// @Tags         companies
// @Produce      json
// @Success      200  {array}   companyResponse
// @Failure      401  {object}  errorResponse
// @Router       /v1/companies [get]
func listCompanies(handler *handlers.CompanyHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		companies, err := handler.List(c.Request.Context(), auth.UserID(c))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		out := make([]companyResponse, 0, len(companies))
		for _, item := range companies {
			out = append(out, toCompanyResponse(item))
		}
		c.JSON(http.StatusOK, out)
	}
}

// getCompany godoc
// @Summary      Get a company
// @Tags         companies
// @Produce      json
// @Param        companyId  path      string  true  "Company ID"
// @Success      200        {object}  companyResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /v1/companies/{companyId} [get]
func getCompany(handler *handlers.CompanyHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := handler.Get(c.Request.Context(), auth.UserID(c), c.Param("companyId"))
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, toCompanyResponse(result))
	}
}

// updateCompany godoc
// @Summary      Update a company
// @Description  Applies a partial update. settings.aiApiKey is encrypted at rest.
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        companyId  path      string         true  "Company ID"
// @Param        body       body      company.Patch  true  "Fields to change"
// @Success      200        {object}  companyResponse
// @Failure      400        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Router       /v1/companies/{companyId} [patch]
func updateCompany(handler *handlers.CompanyHandler, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch company.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			platformerrors.WriteValidationError(c, err.Error())
			return
		}
		result, err := handler.Update(c.Request.Context(), auth.UserID(c), c.Param("companyId"), patch)
		if err != nil {
			platformerrors.WriteError(c, err, log)
			return
		}
		c.JSON(http.StatusOK, toCompanyResponse(result))
	}
}
