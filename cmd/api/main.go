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

	"debtplanner/internal/cache"
	"debtplanner/internal/config"
	"debtplanner/internal/database"
	"debtplanner/internal/handlers"
	"debtplanner/internal/logger"
	"debtplanner/internal/metrics"
	"debtplanner/internal/middleware"
	"debtplanner/internal/services"
	"debtplanner/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "debtplanner/internal/docs" // Import swagger docs
)

// @title           Debt Planner API
// @version         1.0
// @description     Debt Planner tracks a user's debts and simulates month-by-month payoff plans using the avalanche, snowball or balance-ratio strategy.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.SetLevel(appConfig.LogLevel); err != nil {
		log.Warnw("ignoring invalid LOG_LEVEL", "level", appConfig.LogLevel, "error", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()
	m := metrics.New()
	planCache, closeCache := newPlanCache(appConfig)
	defer closeCache()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	debtService := services.NewDebtService(db)
	paymentService := services.NewPaymentService(db)
	fundingService := services.NewFundingService(db)
	auditService := services.NewAuditService(db)
	plannerService := services.NewPlannerService(db, services.PlannerConfig{
		HorizonMonths:              appConfig.SimulationHorizonMonths,
		MaxMonthlyInterestFraction: appConfig.MaxMonthlyInterestFraction,
		LargeBalanceThreshold:      appConfig.LargeBalanceThreshold,
		Cache:                      planCache,
		CacheTTL:                   appConfig.PlanCacheTTL,
		Metrics:                    m,
	})
	snapshotService := services.NewPlanSnapshotService(db, plannerService, m)

	// Initialize handlers
	h := handlers.Handlers{
		Auth:     handlers.NewAuthHandler(userService, auditService),
		Debt:     handlers.NewDebtHandler(debtService, plannerService, auditService),
		Payment:  handlers.NewPaymentHandler(paymentService, auditService),
		Funding:  handlers.NewFundingHandler(fundingService, auditService),
		Plan:     handlers.NewPlanHandler(plannerService, snapshotService, auditService),
		Pipeline: handlers.NewPipelineHandler(fundingService, snapshotService, m),
	}

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging(m))
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(m.Handler()))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "unreachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	handlers.RegisterRoutes(router.Group("/api/v1"), h, appConfig.PipelineAPIKey)

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Starting Debt Planner server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newPlanCache returns redis when REDIS_ADDR is set and reachable, otherwise
// an in-process cache.
func newPlanCache(cfg *config.Config) (cache.PlanCache, func()) {
	log := logger.Named("cache")
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, using in-memory plan cache")
		return cache.NewMemoryCache(cache.DefaultMemoryEntries), func() {}
	}

	rc := cache.NewRedisCache(cache.RedisOptions{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Prefix:   "debtplanner:",
	})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rc.Ping(ctx); err != nil {
		log.Warnw("redis unreachable, using in-memory plan cache", "addr", cfg.RedisAddr, "error", err)
		_ = rc.Close()
		return cache.NewMemoryCache(cache.DefaultMemoryEntries), func() {}
	}

	log.Infow("using redis plan cache", "addr", cfg.RedisAddr)
	return rc, func() {
		if err := rc.Close(); err != nil {
			log.Warnw("failed to close redis", "error", err)
		}
	}
}
