package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gasikara/database"
	"gasikara/internal/api/handler"
	"gasikara/internal/api/middleware"
	"gasikara/internal/api/repository"
	"gasikara/internal/api/service"
	"gasikara/internal/config"
)

const apiVersion = "1.0.0"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)

	gormDB, sqlDB, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer sqlDB.Close()

	// Redis is optional: without it visitor counters degrade to no-ops.
	visitors, err := repository.NewVisitorRepository(cfg.RedisURL, cfg.RedisPassword)
	if err != nil {
		logger.Warn("redis unavailable, visitor counters disabled", "error", err)
		visitors = nil
	} else {
		defer visitors.Close()
	}

	// Repositories
	gameRepo := repository.NewGameRepository(sqlDB)
	adminRepo := repository.NewAdminRepository(gormDB)
	refreshTokenRepo := repository.NewRefreshTokenRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	statsRepo := repository.NewStatsRepository(gormDB)

	// Services
	gameService := service.NewGameService(gameRepo)
	authService := service.NewAuthService(adminRepo, refreshTokenRepo, cfg)
	statsService := service.NewStatsService(gameRepo, statsRepo, visitors)

	// Handlers
	gameHandler := handler.NewGameHandler(gameService, logger, cfg.DownloadStrict404)
	authHandler := handler.NewAuthHandler(authService, logger, int(cfg.AccessTokenTTL.Seconds()))
	adminHandler := handler.NewAdminHandler(statsService, logger)
	categoryHandler := handler.NewCategoryHandler(categoryRepo, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORS(cfg.FrontendURL))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow).Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "Gasikara Soma Gaming Platform - Serveur en ligne",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"version":   apiVersion,
		})
	})

	api := r.Group("/api")
	api.Use(middleware.VisitorCounter(visitors, logger))

	api.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Gasikara Soma Gaming Platform API",
			"version":     apiVersion,
			"description": "API pour la plateforme gaming Gasikara Soma",
			"endpoints": gin.H{
				"games":      "/api/games",
				"categories": "/api/categories",
				"admin":      "/api/admin",
				"auth":       "/api/auth",
			},
		})
	})

	gameHandler.RegisterRoutes(api.Group("/games"))
	categoryHandler.RegisterRoutes(api.Group("/categories"))
	authHandler.RegisterRoutes(api.Group("/auth"))

	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.AuthMiddleware(authService), middleware.RequireAdmin())
	adminHandler.RegisterRoutes(adminGroup)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		logger.Info("server listening", "port", cfg.HTTPPort, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
