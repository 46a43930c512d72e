//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/deikotec/socialflow/internal/app"
	"github.com/deikotec/socialflow/internal/config"
	"github.com/deikotec/socialflow/internal/infrastructure/auth"
	"github.com/deikotec/socialflow/internal/infrastructure/logger"
)

// BuildApplication assembles the service with Wire.
func BuildApplication(ctx context.Context) (*Application, error) {
	wire.Build(
		config.Load,
		logger.New,
		app.Build,
		newAuthValidator,
		newHTTPServer,
		newCrontab,
		NewApplication,
	)
	return nil, nil
}

func newAuthValidator(ctx context.Context, cfg *config.Config, components *app.Components, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, components.Firebase, log)
}
