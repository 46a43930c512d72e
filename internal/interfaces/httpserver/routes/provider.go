package routes

import (
	"github.com/gin-gonic/gin"

	v1 "github.com/deikotec/socialflow/internal/interfaces/httpserver/routes/v1"
)

// Provider aggregates versioned route registrars.
type Provider struct {
	v1 *v1.Routes
}

func NewProvider(v1Routes *v1.Routes) *Provider {
	return &Provider{v1: v1Routes}
}

// Register attaches every API version to engine.
func (p *Provider) Register(engine *gin.Engine) {
	p.v1.Register(engine)
}
