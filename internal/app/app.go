package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	firebase "firebase.google.com/go/v4"
	"github.com/rs/zerolog"
	"golang.org/x/oauth2"
	gormlogger "gorm.io/gorm/logger"

	"github.com/deikotec/socialflow/internal/config"
	"github.com/deikotec/socialflow/internal/domain/ai"
	"github.com/deikotec/socialflow/internal/domain/assets"
	"github.com/deikotec/socialflow/internal/domain/company"
	"github.com/deikotec/socialflow/internal/domain/content"
	domaindocstore "github.com/deikotec/socialflow/internal/domain/docstore"
	"github.com/deikotec/socialflow/internal/domain/integrations"
	"github.com/deikotec/socialflow/internal/domain/portal"
	"github.com/deikotec/socialflow/internal/domain/publishing"
	"github.com/deikotec/socialflow/internal/domain/strategy"
	"github.com/deikotec/socialflow/internal/infrastructure/aiprovider"
	"github.com/deikotec/socialflow/internal/infrastructure/cache"
	"github.com/deikotec/socialflow/internal/infrastructure/database"
	"github.com/deikotec/socialflow/internal/infrastructure/docstore"
	"github.com/deikotec/socialflow/internal/infrastructure/firebaseapp"
	"github.com/deikotec/socialflow/internal/infrastructure/googledrive"
	"github.com/deikotec/socialflow/internal/infrastructure/instagram"
	"github.com/deikotec/socialflow/internal/infrastructure/mediamirror"
	companyrepo "github.com/deikotec/socialflow/internal/infrastructure/repository/company"
	contentrepo "github.com/deikotec/socialflow/internal/infrastructure/repository/content"
	"github.com/deikotec/socialflow/internal/infrastructure/scraper"
	"github.com/deikotec/socialflow/internal/infrastructure/tiktok"
)

// Cache is the shared OAuth state store and folder locker.
type Cache interface {
	integrations.StateStore
	assets.Locker
}

// Components holds every domain service assembled from configuration.
type Components struct {
	Config       *config.Config
	Firebase     *firebase.App
	Store        domaindocstore.Store
	Companies    *companyrepo.DocstoreRepository
	Contents     *contentrepo.DocstoreRepository
	Cache        Cache
	Company      *company.Service
	Content      *content.Service
	Hierarchy    *assets.HierarchyBuilder
	Assets       *assets.Service
	Orchestrator *publishing.Orchestrator
	Strategy     *strategy.Service
	Ideas        *ai.IdeasService
	Integrations *integrations.Service
	Portal       *portal.Service

	health  []func(ctx context.Context) error
	closers []io.Closer
}

// Build assembles the storage backend, adapters and domain services.
func Build(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Components, error) {
	c := &Components{Config: cfg}

	if cfg.DocumentStore == config.DocumentStoreFirestore || cfg.AuthMode == config.AuthModeFirebase {
		fbApp, err := firebaseapp.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.Firebase = fbApp
	}

	store, err := c.documentStore(ctx, log)
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Store = store
	c.Companies = companyrepo.NewDocstoreRepository(store)
	c.Contents = contentrepo.NewDocstoreRepository(store)

	if err := c.buildCache(log); err != nil {
		c.Close()
		return nil, err
	}

	driveConfig := googledrive.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthCallbackURL(integrations.ProviderGoogle))
	driveStorage, err := googledrive.NewStorage(driveConfig, cfg.DriveAPIEndpoint, log)
	if err != nil {
		c.Close()
		return nil, err
	}

	c.Company = company.NewService(c.Companies, cfg.SecretsEncryptionKey, log)
	c.Content = content.NewService(c.Contents, c.Company, log)

	resolver := assets.NewResolver(driveStorage)
	c.Hierarchy = assets.NewHierarchyBuilder(resolver, c.Companies, c.Cache, cfg.AppName, cfg.FolderLocation(), log)
	c.Assets = assets.NewService(c.Company, c.Contents, c.Hierarchy, assets.NewUploader(driveStorage, log), log)

	mirror, err := newMediaMirror(ctx, cfg, log)
	if err != nil {
		c.Close()
		return nil, err
	}
	media := publishing.NewMediaURLResolver(cfg.DriveDownloadHost, driveStorage, mirror, log)
	publishers := map[string]publishing.SocialPublisher{
		content.PlatformInstagram: instagram.NewClient(cfg.MetaGraphURL, cfg.PlatformHTTPTimeout),
		content.PlatformTikTok:    tiktok.NewClient(cfg.TikTokAPIURL, cfg.PlatformHTTPTimeout),
	}
	c.Orchestrator = publishing.NewOrchestrator(c.Companies, c.Contents, publishers, media, publishing.Options{
		PollAttempts: cfg.PublishPollAttempts,
		PollInterval: cfg.PublishPollInterval,
	}, log)

	gemini := aiprovider.NewGemini(cfg.GeminiAPIURL, cfg.GeminiModel, cfg.GoogleAPIKey, cfg.AIMaxTokens, cfg.AIRequestTimeout)
	registry := ai.NewRegistry(
		gemini,
		aiprovider.NewClaude(cfg.ClaudeAPIURL, cfg.ClaudeModel, cfg.AIMaxTokens, cfg.AIRequestTimeout),
		aiprovider.NewOpenAI(cfg.OpenAIBaseURL, cfg.OpenAIModel, cfg.AIMaxTokens, cfg.AIRequestTimeout),
	)
	c.Strategy = strategy.NewService(c.Company, c.Companies, registry, scraper.New(cfg.ScrapeTimeout), log)
	c.Ideas = ai.NewIdeasService(gemini, log)

	c.Integrations = integrations.NewService(c.Company, c.Companies,
		driveOAuth(cfg, driveConfig), metaOAuth(cfg), tiktokOAuth(cfg), c.Cache,
		integrations.Options{DashboardURL: cfg.DashboardURL, CallbackURL: cfg.OAuthCallbackURL}, log)
	c.Portal = portal.NewService(c.Companies, c.Contents, log)

	return c, nil
}

func (c *Components) documentStore(ctx context.Context, log zerolog.Logger) (domaindocstore.Store, error) {
	cfg := c.Config
	switch cfg.DocumentStore {
	case config.DocumentStoreFirestore:
		client, err := c.Firebase.Firestore(ctx)
		if err != nil {
			return nil, fmt.Errorf("open firestore: %w", err)
		}
		store := docstore.NewFirestoreStore(client)
		c.closers = append(c.closers, store)
		log.Info().Str("project", cfg.FirebaseProjectID).Msg("Using Firestore document store")
		return store, nil
	case config.DocumentStorePostgres:
		dbConfig := database.ConfigFrom(cfg)
		dbConfig.LogLevel = gormlogger.Warn
		db, err := database.Connect(dbConfig)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := database.AutoMigrate(ctx, db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("retrieve sql db: %w", err)
		}
		c.closers = append(c.closers, sqlDB)
		c.health = append(c.health, sqlDB.PingContext)
		log.Info().Msg("Using PostgreSQL document store")
		return docstore.NewPostgresStore(db), nil
	default:
		log.Warn().Msg("Using in-memory document store; data is lost on restart")
		return docstore.NewMemoryStore(), nil
	}
}

func (c *Components) buildCache(log zerolog.Logger) error {
	if strings.TrimSpace(c.Config.RedisURL) == "" {
		c.Cache = cache.NewMemoryCache()
		return nil
	}
	redisCache, err := cache.NewRedisCache(c.Config.RedisURL, log)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	c.Cache = redisCache
	c.closers = append(c.closers, redisCache)
	c.health = append(c.health, redisCache.HealthCheck)
	return nil
}

// Ready reports whether every backing service answers.
func (c *Components) Ready(ctx context.Context) error {
	for _, check := range c.health {
		if err := check(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Close releases backend connections.
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}

func newMediaMirror(ctx context.Context, cfg *config.Config, log zerolog.Logger) (publishing.MediaMirror, error) {
	switch cfg.MediaMirror {
	case config.MediaMirrorS3:
		mirror, err := mediamirror.NewS3Mirror(ctx, cfg, log)
		if err != nil {
			return nil, fmt.Errorf("init s3 media mirror: %w", err)
		}
		return mirror, nil
	case config.MediaMirrorLocal:
		baseURL := cfg.LocalStorageBaseURL
		if baseURL == "" {
			baseURL = strings.TrimRight(cfg.PublicBaseURL, "/") + "/media"
		}
		mirror, err := mediamirror.NewLocalMirror(cfg.LocalStoragePath, baseURL, log)
		if err != nil {
			return nil, fmt.Errorf("init local media mirror: %w", err)
		}
		return mirror, nil
	default:
		return nil, nil
	}
}

// The OAuth constructors return untyped nil for unconfigured providers so the
// integrations service sees a nil interface.

func driveOAuth(cfg *config.Config, driveConfig *oauth2.Config) integrations.DriveOAuth {
	if cfg.GoogleClientID == "" {
		return nil
	}
	return googledrive.NewOAuth(driveConfig)
}

func metaOAuth(cfg *config.Config) integrations.MetaOAuth {
	if cfg.MetaClientID == "" {
		return nil
	}
	return instagram.NewOAuthClient(cfg.MetaGraphURL, cfg.MetaDialogURL, cfg.MetaClientID, cfg.MetaClientSecret, cfg.PlatformHTTPTimeout)
}

func tiktokOAuth(cfg *config.Config) integrations.TikTokOAuth {
	if cfg.TikTokClientKey == "" {
		return nil
	}
	return tiktok.NewOAuthClient(cfg.TikTokAPIURL, cfg.TikTokAuthURL, cfg.TikTokClientKey, cfg.TikTokClientSecret, cfg.PlatformHTTPTimeout)
}
