package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"hairconnect/internal/adapter/api"
	"hairconnect/internal/adapter/api/handler"
	apimiddleware "hairconnect/internal/adapter/api/middleware"
	"hairconnect/internal/adapter/api/router"
	"hairconnect/internal/domain/service"
	"hairconnect/internal/infrastructure/cache"
	"hairconnect/internal/infrastructure/ratelimit"
	"hairconnect/internal/infrastructure/scheduler"
	"hairconnect/internal/infrastructure/websocket"
	"hairconnect/internal/usecase"
	"hairconnect/pkg/config"
	"hairconnect/pkg/logger"
)

func main() {
	err := run()
	if err != nil {
		logger.Error("%v", err)
	}
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// run serves the API until a signal arrives or startup fails.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Init(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := openStores(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open data stores: %w", err)
	}
	defer data.Close()

	uploader, err := newUploader(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize file storage: %w", err)
	}
	if uploader != nil {
		defer uploader.Close()
	}

	verifier := newTokenVerifier(ctx, cfg)

	healthChecks := map[string]handler.Pinger{}

	// appCache stays a nil interface when Redis is off; consumers check for that.
	var appCache service.Cache
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without cache: %v", err)
		} else {
			defer redisCache.Close()
			appCache = redisCache
			healthChecks["redis"] = redisCache
		}
	}

	var identities usecase.IdentityResolver = usecase.NewStoreIdentityResolver(data.hairdressers, data.chatUsers)
	if appCache != nil {
		identities = usecase.NewCachedIdentityResolver(identities, appCache)
	}

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	chatRateLimiter := ratelimit.NewRateLimiter()
	chatRateLimiter.StartCleanupRoutine(ctx)

	linkTTL := time.Duration(cfg.JWTExpiry) * time.Second

	listingUseCase := usecase.NewListingUseCase(data.hairdressers, data.locations, usecase.DefaultOverrideRules(cfg.ListingOverrideEmails))
	hairdresserUseCase := usecase.NewHairdresserUseCase(data.hairdressers, data.locations, uploader, cfg.JWTSecret, linkTTL)
	verificationUseCase := usecase.NewVerificationUseCase(data.hairdressers, uploader)
	paymentUseCase := usecase.NewPaymentUseCase(data.hairdressers, newPaymentGateway(cfg), cfg.ClientBaseURL)
	chatUseCase := usecase.NewChatUseCase(data.chats, identities, chatRateLimiter, wsManager)
	chatUserUseCase := usecase.NewChatUserUseCase(data.chatUsers)
	locationUseCase := usecase.NewLocationUseCase(data.locations)
	maintenanceUseCase := usecase.NewMaintenanceUseCase(data.hairdressers)

	sitemapUseCase := usecase.NewSitemapUseCase(data.hairdressers, appCache, cfg.ClientBaseURL)

	wsManager.SetReadMarker(chatUseCase)

	jobs := scheduler.NewScheduler()
	if err := jobs.Add("sitemap-refresh", cfg.SitemapCron, func(ctx context.Context) error {
		_, err := sitemapUseCase.Refresh(ctx)
		return err
	}); err != nil {
		return fmt.Errorf("invalid SITEMAP_CRON %q: %w", cfg.SitemapCron, err)
	}
	if err := jobs.Add("normalize-services", cfg.NormalizeCron, func(ctx context.Context) error {
		report, err := maintenanceUseCase.NormalizeStoredServices(ctx)
		if err != nil {
			return err
		}
		logger.Info("Service normalization: scanned=%d rewritten=%d failed=%d", report.Scanned, report.Rewritten, report.Failed)
		return nil
	}); err != nil {
		return fmt.Errorf("invalid NORMALIZE_CRON %q: %w", cfg.NormalizeCron, err)
	}
	jobs.Start()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, handler.UserIDHeader},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowCredentials: true,
	}))
	e.Use(apimiddleware.RequestLogger())
	e.Use(apimiddleware.GeneralRateLimit())
	e.Validator = api.NewValidator()

	router.Setup(e, router.Handlers{
		Location:     handler.NewLocationHandler(locationUseCase),
		Hairdresser:  handler.NewHairdresserHandler(hairdresserUseCase, listingUseCase),
		Verification: handler.NewVerificationHandler(verificationUseCase),
		Admin:        handler.NewAdminHandler(verificationUseCase, maintenanceUseCase, sitemapUseCase),
		Payment:      handler.NewPaymentHandler(paymentUseCase),
		Chat:         handler.NewChatHandler(chatUseCase),
		Auth:         handler.NewAuthHandler(chatUserUseCase),
		WebSocket:    handler.NewWebSocketHandler(wsManager, cfg.CORSOrigins),
		Sitemap:      handler.NewSitemapHandler(sitemapUseCase),
		Health:       handler.NewHealthHandler(healthChecks),
	}, router.Middlewares{
		Auth:          apimiddleware.NewAuthMiddleware(verifier),
		Admin:         apimiddleware.NewAdminMiddleware(cfg.AdminUIDs),
		SecureCookies: cfg.IsProduction(),
	})

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("Starting server on port %s (data backend: %s)", cfg.ServerPort, cfg.DataBackend)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	jobs.Stop(shutdownCtx)
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}

	select {
	case err := <-serverErr:
		return fmt.Errorf("server stopped: %w", err)
	default:
		return nil
	}
}
