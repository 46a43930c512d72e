package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/infrastructure/auth"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers       *handlers.Provider
	auth           *auth.Validator
	maxUploadBytes int64
	log            zerolog.Logger
}

// NewRoutes builds the v1 route registrar.
func NewRoutes(handlerProvider *handlers.Provider, authValidator *auth.Validator, maxUploadBytes int64, log zerolog.Logger) *Routes {
	registerValidators()
	return &Routes{
		handlers:       handlerProvider,
		auth:           authValidator,
		maxUploadBytes: maxUploadBytes,
		log:            log,
	}
}

// Register attaches all v1 routes under /v1 prefix. Portal and OAuth
// callbacks are public; everything else requires an authenticated user.
func (r *Routes) Register(engine *gin.Engine) {
	public := engine.Group("/v1")
	registerPortalRoutes(public, r.handlers.Portal, r.log)
	registerIntegrationCallbackRoutes(public, r.handlers.Integration)

	protected := engine.Group("/v1", r.auth.Middleware())
	registerIdeasRoutes(protected, r.handlers.Ideas, r.log)
	registerCompanyRoutes(protected, r.handlers.Company, r.log)

	company := protected.Group("/companies/:companyId")
	registerContentRoutes(company, r.handlers.Content, r.log)
	registerPublishRoutes(company, r.handlers.Publish, r.log)
	registerAssetRoutes(company, r.handlers.Asset, r.maxUploadBytes, r.log)
	registerStrategyRoutes(company, r.handlers.Strategy, r.log)
	registerIntegrationLoginRoutes(protected, r.handlers.Integration, r.log)
}
