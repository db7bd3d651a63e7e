package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dafibh/paydue/paydue-backend/db"
	"github.com/dafibh/paydue/paydue-backend/internal/config"
	"github.com/dafibh/paydue/paydue-backend/internal/handler"
	"github.com/dafibh/paydue/paydue-backend/internal/middleware"
	"github.com/dafibh/paydue/paydue-backend/internal/notify"
	"github.com/dafibh/paydue/paydue-backend/internal/repository/identity"
	"github.com/dafibh/paydue/paydue-backend/internal/repository/postgres"
	"github.com/dafibh/paydue/paydue-backend/internal/repository/storage"
	"github.com/dafibh/paydue/paydue-backend/internal/service"
	"github.com/dafibh/paydue/paydue-backend/internal/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// @title Paydue API
// @version 1.0
// @description Personal debt and EMI tracker: payables, due dates, payments and insights.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.MigrateOnStart {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatal().Err(err).Msg("Failed to run migrations")
		}
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Connected to database")

	// Repositories
	userRepo := postgres.NewUserRepository(pool)
	payableRepo := postgres.NewPayableRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	identityProvider := identity.NewGoTrueProvider(cfg.Supabase)

	// Photo storage is optional; uploads answer 503 without it
	var photoStore storage.PhotoStore
	if cfg.S3.Enabled() {
		s3Store, err := storage.NewS3PhotoStore(context.Background(), cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize S3 storage, photo uploads disabled")
		} else {
			photoStore = s3Store
			log.Info().Str("bucket", cfg.S3.Bucket).Msg("Photo storage enabled")
		}
	} else {
		log.Info().Msg("S3 not configured, photo uploads disabled")
	}

	// Services
	authService := service.NewAuthService(identityProvider, userRepo)
	profileService := service.NewProfileService(userRepo, service.NewImageService(photoStore))
	payableService := service.NewPayableService(payableRepo, paymentRepo)
	paymentService := service.NewPaymentService(payableRepo, paymentRepo)
	dashboardService := service.NewDashboardService(payableRepo, paymentRepo, cfg.UpcomingHorizonDays)
	insightService := service.NewInsightService(payableRepo)
	chartService := service.NewChartService(paymentRepo)
	exportService := service.NewExportService(payableRepo, paymentRepo)

	hub := websocket.NewHub()
	payableService.SetEventPublisher(hub)
	paymentService.SetEventPublisher(hub)
	profileService.SetEventPublisher(hub)

	// Auth
	tokenValidator, err := middleware.NewTokenValidator(cfg.Auth, cfg.Supabase.URL+"/auth/v1")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create token validator")
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenValidator)
	authLimiter := middleware.NewRateLimiterWithConfig(cfg.Auth.RateLimitPerMin, cfg.Auth.RateLimitBurst)
	defer authLimiter.Stop()

	// Reminders run only with a schedule and a mail relay
	var reminderWorker *service.ReminderWorker
	if cfg.Reminder.Cron != "" && cfg.SMTP.Enabled() {
		location, err := time.LoadLocation(cfg.Reminder.Timezone)
		if err != nil {
			log.Fatal().Err(err).Str("timezone", cfg.Reminder.Timezone).Msg("Invalid reminder timezone")
		}
		reminderWorker, err = service.NewReminderWorker(
			userRepo,
			payableRepo,
			paymentRepo,
			notify.NewSMTPSender(cfg.SMTP),
			log.Logger,
			service.ReminderWorkerConfig{
				Schedule:  cfg.Reminder.Cron,
				DaysAhead: cfg.Reminder.Days,
				Location:  location,
			},
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create reminder worker")
		}
		reminderWorker.Start()
	}

	handlers := handler.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Profile:   handler.NewProfileHandler(profileService),
		Payable:   handler.NewPayableHandler(payableService),
		Payment:   handler.NewPaymentHandler(paymentService, payableService),
		Month:     handler.NewMonthHandler(dashboardService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Insight:   handler.NewInsightHandler(insightService),
		Chart:     handler.NewChartHandler(chartService),
		Export:    handler.NewExportHandler(exportService),
		WebSocket: handler.NewWebSocketHandler(hub, websocket.NewJWTValidator(tokenValidator), cfg.CORSOrigins),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	e.Use(zerologMiddleware())
	e.Use(echomiddleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/swagger/openapi3.json", handler.ServeOpenAPI3Spec)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	handler.RegisterRoutes(e, authMiddleware, authLimiter, handlers)

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if reminderWorker != nil {
		reminderWorker.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// zerologMiddleware logs each request with zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			event := log.Info()
			if res.Status >= http.StatusInternalServerError {
				event = log.Error()
			}
			event.
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
