package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/warbandhq/chapter-registry/internal/api"
	"github.com/warbandhq/chapter-registry/internal/config"
	"github.com/warbandhq/chapter-registry/internal/db"
	"github.com/warbandhq/chapter-registry/internal/middleware"
	"github.com/warbandhq/chapter-registry/internal/observ"
	"github.com/warbandhq/chapter-registry/internal/repository/postgres"
	"github.com/warbandhq/chapter-registry/internal/service"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := observ.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	// Startup has no request deadline; Background() is the right root here.
	database, err := db.New(context.Background(), cfg.DatabaseURL, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if err := database.InitSchema(context.Background()); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}

	// Repositories share the pool; the pool is goroutine-safe. Assigning
	// through the service constructors proves the stores satisfy the
	// repository interfaces at compile time.
	pool := database.Pool()
	userRepo := postgres.NewUserStore(pool)
	chapterRepo := postgres.NewChapterStore(pool)
	membershipRepo := postgres.NewMembershipStore(pool)

	users := service.NewUsers(userRepo)
	chapters := service.NewChapters(chapterRepo)
	memberships := service.NewMemberships(membershipRepo, userRepo, chapterRepo)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics())

	var isShuttingDown atomic.Bool

	// Ops endpoints live outside /api so load balancers can reach them
	// without knowing the API surface.
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/ready", func(c *gin.Context) {
		if isShuttingDown.Load() {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "shutting_down"})
			return
		}
		if err := database.Health(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "database_unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := engine.Group("/api")
	api.NewUserHandler(users, logger).RegisterRoutes(apiGroup)
	api.NewChapterHandler(chapters, logger).RegisterRoutes(apiGroup)
	api.NewMembershipHandler(memberships, logger).RegisterRoutes(apiGroup)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	go func() {
		logger.Info("starting chapter registry",
			zap.String("port", cfg.Port),
			zap.String("env", cfg.Env),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	<-ctx.Done()
	logger.Info("shutdown signal received")

	// Fail readiness before stopping the listener so load balancers drain
	// traffic instead of hitting a closed port.
	isShuttingDown.Store(true)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown", zap.Error(err))
	} else {
		logger.Info("HTTP server shutdown complete")
	}

	return nil
}
