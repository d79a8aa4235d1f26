package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"event-storefront/internal/apiclient"
	"event-storefront/internal/cache"
	"event-storefront/internal/config"
	"event-storefront/internal/handlers"
	"event-storefront/internal/logging"
	"event-storefront/internal/middleware"
	"event-storefront/internal/server"
	"event-storefront/internal/services"
	"event-storefront/internal/utils"
	"event-storefront/internal/validation"

	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

const (
	rateLimiterIdleTTL  = 10 * time.Minute
	memorySweepInterval = time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.New(cfg.Server.Env)
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.IsProduction() && cfg.Session.Secret == "your-secret-key-change-in-production" {
		return errors.New("SESSION_SECRET must be set in production")
	}

	store, closeCache, err := newCache(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	api := apiclient.New(cfg.API.BaseURL, cfg.API.Timeout, logger.Named("api"))
	loc := cfg.Location()
	utils.SetDisplayLocation(loc)
	validator := validation.New(loc)
	images := services.NewImageService(cfg.Uploads.MaxImageEdge, cfg.Uploads.MaxProofBytes)

	catalog := services.NewCatalogService(api, store, services.CacheTTL{
		Categories: cfg.Cache.CategoriesTTL,
		Events:     cfg.Cache.EventsTTL,
		Promotions: cfg.Cache.PromotionsTTL,
		Reviews:    cfg.Cache.ReviewsTTL,
	}, cfg.Catalog.PageSize, cfg.Catalog.OrganizerReviews, logger)
	purchase := services.NewPurchaseService(api, logger)
	transactions := services.NewTransactionService(api, images, logger)
	reviews := services.NewReviewService(api, store, logger)
	organizer := services.NewOrganizerService(api, catalog, images, store, loc, logger)
	auth := services.NewAuthService(api, logger)

	sessions := middleware.NewSessionManager(
		middleware.NewCookieStore(cfg.Session.Secret, cfg.Session.MaxAge, cfg.Session.Secure),
		store,
		cfg.Session.MaxAge,
		logger,
	)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, rateLimiterIdleTTL)
	go limiter.Run(ctx)

	router := server.NewRouter(server.Handlers{
		Public:       handlers.NewPublicHandler(catalog, sessions, cfg.Catalog, logger),
		Purchase:     handlers.NewPurchaseHandler(catalog, purchase, transactions, sessions, logger),
		Transactions: handlers.NewTransactionHandler(transactions, catalog, sessions, cfg.Uploads.MaxProofBytes, logger),
		Reviews:      handlers.NewReviewHandler(reviews, validator, sessions, logger),
		Organizer:    handlers.NewOrganizerHandler(organizer, validator, sessions, cfg.Uploads.MaxProofBytes, logger),
		Auth:         handlers.NewAuthHandler(auth, validator, sessions, logger),
		Health:       handlers.NewHealthHandler(version),
	}, server.Options{
		Sessions:       sessions,
		RateLimiter:    limiter,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		MaxBodyBytes:   cfg.Uploads.MaxProofBytes + 1<<20,
		StaticDir:      cfg.Server.StaticDir,
		TrustProxy:     cfg.Server.TrustProxy,
		Log:            logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("storefront listening",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Server.Env),
			zap.String("api", cfg.API.BaseURL),
			zap.String("cache", cfg.Cache.Driver),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

// newCache returns the configured cache and its close func. A Redis cache
// that cannot be reached falls back to memory.
func newCache(ctx context.Context, cfg *config.Config, logger *zap.Logger) (cache.Cache, func(), error) {
	if cfg.Cache.Driver != "redis" {
		return newMemoryCache(ctx), func() {}, nil
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rc, err := cache.NewRedisFromURL(pingCtx, cfg.Cache.RedisURL, "storefront")
	if err != nil {
		if cfg.IsProduction() {
			return nil, nil, err
		}
		logger.Warn("redis unavailable, using in-memory cache", zap.Error(err))
		return newMemoryCache(ctx), func() {}, nil
	}

	return rc, func() {
		if err := rc.Close(); err != nil {
			logger.Warn("failed to close redis", zap.Error(err))
		}
	}, nil
}

func newMemoryCache(ctx context.Context) *cache.Memory {
	mem := cache.NewMemory()
	go mem.Run(ctx, memorySweepInterval)
	return mem
}
