package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MrsLondon/vivahub-api/config"
	"github.com/MrsLondon/vivahub-api/internal/cart"
	"github.com/MrsLondon/vivahub-api/internal/handler"
	authHandler "github.com/MrsLondon/vivahub-api/internal/handler/auth"
	bookingHandler "github.com/MrsLondon/vivahub-api/internal/handler/booking"
	cartHandler "github.com/MrsLondon/vivahub-api/internal/handler/cart"
	catalogHandler "github.com/MrsLondon/vivahub-api/internal/handler/catalog"
	reviewHandler "github.com/MrsLondon/vivahub-api/internal/handler/review"
	salonHandler "github.com/MrsLondon/vivahub-api/internal/handler/salon"
	"github.com/MrsLondon/vivahub-api/internal/middleware"
	"github.com/MrsLondon/vivahub-api/internal/repository/postgres"
	"github.com/MrsLondon/vivahub-api/internal/router"
	authService "github.com/MrsLondon/vivahub-api/internal/service/auth"
	bookingService "github.com/MrsLondon/vivahub-api/internal/service/booking"
	catalogService "github.com/MrsLondon/vivahub-api/internal/service/catalog"
	checkoutService "github.com/MrsLondon/vivahub-api/internal/service/checkout"
	reviewService "github.com/MrsLondon/vivahub-api/internal/service/review"
	salonService "github.com/MrsLondon/vivahub-api/internal/service/salon"
	"github.com/MrsLondon/vivahub-api/pkg/auth"
	"github.com/MrsLondon/vivahub-api/pkg/logger"
	"github.com/MrsLondon/vivahub-api/pkg/metrics"
	"github.com/MrsLondon/vivahub-api/pkg/security"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("vivahub")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Repositories
	base := postgres.NewBaseRepository(db)
	userRepo := postgres.NewUserRepository(base)
	salonRepo := postgres.NewSalonRepository(base)
	serviceRepo := postgres.NewServiceRepository(base)
	bookingRepo := postgres.NewBookingRepository(base)
	reviewRepo := postgres.NewReviewRepository(base)
	tokenRepo := postgres.NewTokenRepository(base)
	outboxRepo := postgres.NewOutboxRepository(base)

	// Services
	jwtSvc := auth.NewJWTService(cfg.JWT)
	hasher := security.NewBcryptHasher(0)
	authSvc := authService.NewService(userRepo, tokenRepo, outboxRepo, jwtSvc, hasher)
	salonSvc := salonService.NewService(salonRepo, serviceRepo)
	catalogSvc := catalogService.NewService(serviceRepo, salonRepo)
	bookingSvc := bookingService.NewService(bookingRepo, serviceRepo, salonRepo, userRepo, appMetrics)
	reviewSvc := reviewService.NewService(reviewRepo, bookingRepo)

	carts := cart.NewStore(cart.Config{
		TTL:             cfg.Cart.TTL,
		CleanupInterval: cfg.Cart.CleanupInterval,
	})
	checkoutSvc := checkoutService.NewService(carts, bookingSvc, appLogger, appMetrics)

	// Middleware and handlers
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	h := handler.NewHandler(db)
	authH := authHandler.NewHandler(authSvc)
	salonH := salonHandler.NewHandler(salonSvc)
	catalogH := catalogHandler.NewHandler(catalogSvc)
	bookingH := bookingHandler.NewHandler(bookingSvc, salonSvc)
	cartH := cartHandler.NewHandler(carts, catalogSvc, checkoutSvc)
	reviewH := reviewHandler.NewHandler(reviewSvc)

	r := router.NewRouter(
		authMiddleware,
		h,
		authH,
		salonH,
		catalogH,
		bookingH,
		cartH,
		reviewH,
		router.Config{
			RateLimitEnabled: cfg.RateLimit.Enabled,
			RateLimitRPS:     cfg.RateLimit.RequestsPerSecond,
			RateLimitBurst:   cfg.RateLimit.Burst,
			RequestTimeout:   cfg.Server.RequestTimeout,
			CORSConfig:       corsConfig(cfg.CORS),
			MetricsPrefix:    "vivahub_http",
		},
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server stopped")
}

func corsConfig(cfg config.CORSConfig) middleware.CORSConfig {
	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	if len(cfg.AllowedMethods) > 0 {
		corsCfg.AllowMethods = cfg.AllowedMethods
	}
	if len(cfg.AllowedHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.AllowedHeaders
	}
	return corsCfg
}
