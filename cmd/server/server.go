package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/deikotec/socialflow/internal/app"
	"github.com/deikotec/socialflow/internal/config"
	"github.com/deikotec/socialflow/internal/infrastructure/auth"
	"github.com/deikotec/socialflow/internal/infrastructure/crontab"
	"github.com/deikotec/socialflow/internal/infrastructure/logger"
	"github.com/deikotec/socialflow/internal/infrastructure/observability"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/handlers"
	"github.com/deikotec/socialflow/internal/interfaces/httpserver/routes"
	v1 "github.com/deikotec/socialflow/internal/interfaces/httpserver/routes/v1"
)

type Application struct {
	httpServer *httpserver.HttpServer
	crontab    *crontab.Crontab
	components *app.Components
	log        zerolog.Logger
}

func NewApplication(httpServer *httpserver.HttpServer, cron *crontab.Crontab, components *app.Components, log zerolog.Logger) *Application {
	return &Application{
		httpServer: httpServer,
		crontab:    cron,
		components: components,
		log:        log,
	}
}

// @title SocialFlow API
// @version 1.0
// @description Social media content planning, asset storage and publishing for agencies.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the ID token.
func (a *Application) Start(ctx context.Context) error {
	defer func() {
		if err := a.components.Close(); err != nil {
			a.log.Error().Err(err).Msg("close backends")
		}
	}()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return a.crontab.Run(ctx)
	})
	eg.Go(func() error {
		return a.httpServer.Run(ctx)
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize observability")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown telemetry")
		}
	}()

	components, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("assemble services")
	}

	authValidator, err := auth.NewValidator(ctx, cfg, components.Firebase, log)
	if err != nil {
		log.Fatal().Err(err).Msg("initialize auth validator")
	}

	httpServer := newHTTPServer(cfg, log, components, authValidator)
	cron := newCrontab(cfg, components, log)
	application := NewApplication(httpServer, cron, components, log)

	if err := application.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("application stopped with error")
	}

	log.Info().Msg("application exited cleanly")
}

func newHTTPServer(cfg *config.Config, log zerolog.Logger, components *app.Components, authValidator *auth.Validator) *httpserver.HttpServer {
	handlerProvider := handlers.NewProvider(
		components.Company,
		components.Content,
		components.Assets,
		components.Orchestrator,
		components.Strategy,
		components.Ideas,
		components.Integrations,
		components.Portal,
	)
	v1Routes := v1.NewRoutes(handlerProvider, authValidator, cfg.MaxUploadBytes, log)
	return httpserver.New(cfg, log, routes.NewProvider(v1Routes), components.Ready)
}

func newCrontab(cfg *config.Config, components *app.Components, log zerolog.Logger) *crontab.Crontab {
	return crontab.NewCrontab(components.Integrations, cfg.TikTokRefreshCron, log)
}

func loadEnvFiles() {
	paths := []string{".env", "../.env"}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Overload(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
