package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	sentryslog "github.com/getsentry/sentry-go/slog"
	"github.com/lmittmann/tint"

	"github.com/senalmaq/storefront/internal/cache"
	"github.com/senalmaq/storefront/internal/config"
	"github.com/senalmaq/storefront/internal/db"
	"github.com/senalmaq/storefront/internal/handlers"
	"github.com/senalmaq/storefront/internal/logging"
	"github.com/senalmaq/storefront/internal/media"
	"github.com/senalmaq/storefront/internal/observability"
	"github.com/senalmaq/storefront/internal/services"
	"github.com/senalmaq/storefront/internal/session"
)

type App struct {
	Config         *config.Config
	Logger         *slog.Logger
	Firestore      *firestore.Client
	CacheProvider  cache.Provider
	SessionManager *session.Manager
	CatalogService *services.CatalogService
	SocialService  *services.SocialService
	Handlers       *handlers.Handlers

	watchCancel context.CancelFunc
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := observability.Init(cfg.SentryDSN, cfg.Environment, ""); err != nil {
		return nil, err
	}

	logger := newLogger(cfg)

	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	client, err := db.Connect(startupCtx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
	if err != nil {
		return nil, err
	}

	cacheProvider, err := cache.NewProvider(cache.Config{
		Provider:              cfg.CacheProvider,
		RedisConnectionString: cfg.RedisConnectionString,
	})
	if err != nil {
		closeFirestore(logger, client)
		return nil, fmt.Errorf("failed to initialize cache provider: %w", err)
	}

	sessionStore, err := session.NewStore(startupCtx, session.Config{
		Provider:              cfg.SessionStoreProvider,
		RedisConnectionString: cfg.RedisConnectionString,
	})
	if err != nil {
		closeCacheProvider(logger, cacheProvider)
		closeFirestore(logger, client)
		return nil, fmt.Errorf("failed to initialize session store: %w", err)
	}
	sessionManager := session.NewManager(sessionStore, cfg.SecureCookies)

	teardown := func() {
		closeSessionManager(logger, sessionManager)
		closeCacheProvider(logger, cacheProvider)
		closeFirestore(logger, client)
	}

	productStore, err := db.NewProductStore(client, logger.With("component", "product_store"))
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize product store: %w", err)
	}
	categoryStore, err := db.NewCategoryStore(client, logger.With("component", "category_store"))
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize category store: %w", err)
	}
	socialStore, err := db.NewSocialStore(client, logger.With("component", "social_store"))
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize social store: %w", err)
	}

	catalogService, err := services.NewCatalogService(productStore, categoryStore, cacheProvider, logger.With("component", "catalog_service"))
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize catalog service: %w", err)
	}
	socialService, err := services.NewSocialService(socialStore, logger.With("component", "social_service"))
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize social service: %w", err)
	}
	checkoutService := services.NewCheckoutService(cfg, logger.With("component", "checkout_service"))
	authService, err := services.NewAuthService(cfg, logger.With("component", "auth_service"))
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize auth service: %w", err)
	}

	var uploader *media.Uploader
	if cfg.CloudinaryURL != "" {
		uploader, err = media.NewUploader(cfg.CloudinaryURL, logger.With("component", "media_uploader"))
		if err != nil {
			teardown()
			return nil, fmt.Errorf("failed to initialize media uploader: %w", err)
		}
	}

	adminService, err := services.NewAdminService(productStore, catalogService, uploader, logger.With("component", "admin_service"))
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize admin service: %w", err)
	}

	h, err := handlers.New(handlers.Dependencies{
		Config:          cfg,
		CatalogService:  catalogService,
		SocialService:   socialService,
		CheckoutService: checkoutService,
		AuthService:     authService,
		AdminService:    adminService,
		SessionManager:  sessionManager,
		Logger:          logger,
	})
	if err != nil {
		teardown()
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	watchCtx, watchCancel := context.WithCancel(context.Background())
	catalogService.Start(watchCtx)
	socialService.Start(watchCtx)

	return &App{
		Config:         cfg,
		Logger:         logger,
		Firestore:      client,
		CacheProvider:  cacheProvider,
		SessionManager: sessionManager,
		CatalogService: catalogService,
		SocialService:  socialService,
		Handlers:       h,
		watchCancel:    watchCancel,
	}, nil
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.watchCancel != nil {
		a.watchCancel()
	}
	if a.CatalogService != nil {
		a.CatalogService.Stop()
	}
	if a.SocialService != nil {
		a.SocialService.Stop()
	}
	if a.SessionManager != nil {
		closeSessionManager(a.Logger, a.SessionManager)
	}
	if a.CacheProvider != nil {
		closeCacheProvider(a.Logger, a.CacheProvider)
	}
	if a.Firestore != nil {
		closeFirestore(a.Logger, a.Firestore)
	}
	observability.Flush(2 * time.Second)
}

func newLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var base slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.LogFormat)) {
	case "json":
		base = slog.NewJSONHandler(os.Stdout, opts)
	default:
		base = tint.NewHandler(os.Stdout, &tint.Options{Level: cfg.LogLevel})
	}

	if cfg.SentryDSN == "" {
		return slog.New(base)
	}

	sentryHandler := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   []slog.Level{slog.LevelWarn, slog.LevelInfo},
	}.NewSentryHandler(context.Background())
	return slog.New(logging.Fanout(base, sentryHandler))
}

func closeSessionManager(logger *slog.Logger, manager *session.Manager) {
	if manager == nil {
		return
	}
	if err := manager.Close(); err != nil && logger != nil {
		logger.Warn("failed to close session manager", "error", err)
	}
}

func closeCacheProvider(logger *slog.Logger, provider cache.Provider) {
	if provider == nil {
		return
	}
	if err := provider.Close(); err != nil && logger != nil {
		logger.Warn("failed to close cache provider", "error", err)
	}
}

func closeFirestore(logger *slog.Logger, client *firestore.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil && logger != nil {
		logger.Warn("failed to close firestore client", "error", err)
	}
}
