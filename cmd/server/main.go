package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddle/jwtplay/internal/config"
	"github.com/boddle/jwtplay/internal/database"
	"github.com/boddle/jwtplay/internal/middleware"
	"github.com/boddle/jwtplay/internal/playground"
	"github.com/boddle/jwtplay/internal/ratelimit"
	apperrors "github.com/boddle/jwtplay/pkg/errors"
	"github.com/boddle/jwtplay/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting JWT playground API", zap.String("env", cfg.Env))

	playgroundHandler := playground.NewHandler(playground.NewService(logger))

	// Connect to Redis when rate limiting is configured
	var limiter middleware.RequestLimiter
	if cfg.RateLimitEnabled() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		redisClient, err := database.NewRedisClient(ctx, cfg.RedisURL)
		cancel()
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
		logger.Info("Connected to Redis",
			zap.Duration("window", cfg.RateLimit.Window),
			zap.Int("max_requests", cfg.RateLimit.MaxRequests),
		)

		limiter = ratelimit.NewLimiter(redisClient.Client, cfg.RateLimit.Window, cfg.RateLimit.MaxRequests)
		playgroundHandler.WithHealthCheck("redis", redisClient.Health)
	} else {
		logger.Warn("REDIS_URL not set, rate limiting disabled")
	}

	// Set up Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := newRouter(cfg, logger, playgroundHandler, limiter)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("Server stopped")
}

// newRouter builds the gin engine. limiter may be nil.
func newRouter(cfg *config.Config, logger *zap.Logger, playgroundHandler *playground.Handler, limiter middleware.RequestLimiter) *gin.Engine {
	router := gin.New()

	// Global middleware
	allowedOrigins := middleware.ParseAllowedOrigins(cfg.CORS.AllowedOrigins)
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Metrics())

	// Public routes
	router.GET("/health", playgroundHandler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/")
	api.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	if limiter != nil {
		api.Use(middleware.RateLimit(limiter, logger))
	}
	playgroundHandler.Register(api)

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.ErrNotFound)
	})

	return router
}
