package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Henry-Tercero-MH/Generador-Facturas/docs" // Swagger docs
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/cache"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/config"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/database"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/handlers"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/jobs"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/middleware"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/repository"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/services"
	"github.com/Henry-Tercero-MH/Generador-Facturas/internal/storage"
	"github.com/Henry-Tercero-MH/Generador-Facturas/pkg/logger"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

// @title Recibos API
// @version 1.0
// @description REST API to issue quetzal receipts with the amount written in Spanish words

// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Setup(cfg.Environment, cfg.LogLevel)

	// Initialize Sentry (GlitchTip) when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
			Release:          "recibos-api@" + version,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	if cfg.EnableEmailNotifications && (cfg.ResendAPIKey == "" || cfg.FromEmail == "") {
		logger.Warn("Receipt email enabled but RESEND_API_KEY or FROM_EMAIL not set; sending will fail")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, cfg.IsProduction())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	store, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	logger.Info("Initialized local storage", "path", cfg.StoragePath)

	docCache, closeCache := newDocumentCache(cfg)
	defer closeCache()

	repos := repository.NewRepositories(db)

	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	svcs, err := services.NewServices(repos, worker, store, docCache, cfg, db)
	if err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := svcs.Auth.SeedAdmin(seedCtx); err != nil {
		logger.Error("Failed to seed admin user", "error", err)
	}
	seedCancel()

	loginLimiter := middleware.NewIPRateLimiter(cfg.LoginRatePerMinute)

	scheduleJobs(worker, svcs, loginLimiter)

	h := handlers.NewHandlers(svcs, version)
	router := setupRouter(h, cfg, loginLimiter)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	// Pending receipt emails and audit rows are drained here
	worker.Shutdown()
	logger.Info("Background worker stopped")

	if err := database.Close(db); err != nil {
		logger.Error("Failed to close database", "error", err)
	}

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

// newDocumentCache uses Redis when REDIS_ADDR is set and falls back to process memory
func newDocumentCache(cfg *config.Config) (cache.Cache, func()) {
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		rc, err := cache.NewRedisCache(ctx, cfg.RedisAddr, "recibos:")
		if err == nil {
			logger.Info("Using Redis document cache", "addr", cfg.RedisAddr)
			return rc, func() { _ = rc.Close() }
		}
		logger.Warn("Redis unavailable, using in-memory document cache", "addr", cfg.RedisAddr, "error", err)
	}
	return cache.NewMemoryCache(256), func() {}
}

func setupRouter(h *handlers.Handlers, cfg *config.Config, loginLimiter *middleware.IPRateLimiter) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", h.Health.Index)

		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(loginLimiter), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
			auth.POST("/logout", h.Auth.Logout)
		}

		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		{
			protected.GET("/amount_in_words", h.Amount.Show)

			receipts := protected.Group("/receipts")
			{
				receipts.GET("", h.Receipt.Index)
				receipts.POST("", h.Receipt.Create)
				// Static route first so "export" is not matched as :receipt_id
				receipts.GET("/export", h.Receipt.Export)
				receipts.GET("/:receipt_id", h.Receipt.Show)
				receipts.PUT("/:receipt_id", h.Receipt.Update)
				receipts.POST("/:receipt_id/void", h.Receipt.Void)
				receipts.POST("/:receipt_id/restore", h.Receipt.Restore)
				receipts.GET("/:receipt_id/pdf", h.Receipt.PDF)
				receipts.GET("/:receipt_id/print", h.Receipt.Print)
				receipts.GET("/:receipt_id/whatsapp", h.Receipt.WhatsApp)
				receipts.POST("/:receipt_id/email", h.Receipt.Email)
			}

			protected.GET("/audits", middleware.RequireAdmin(), h.Audit.Index)
			protected.GET("/jobs/status", h.Job.Status)
		}
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services, loginLimiter *middleware.IPRateLimiter) {
	worker.ScheduleEvery("refresh-token-cleanup", 1*time.Hour, func(ctx context.Context) error {
		return svcs.Auth.CleanupExpiredTokens(ctx)
	})

	worker.ScheduleEvery("login-limiter-cleanup", 10*time.Minute, func(ctx context.Context) error {
		if removed := loginLimiter.Cleanup(); removed > 0 {
			logger.Debug("Pruned idle login limiters", "count", removed)
		}
		return nil
	})

	logger.Info("Scheduled recurring jobs")
}
