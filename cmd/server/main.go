// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fraud-check/internal/client"
	"fraud-check/internal/config"
	"fraud-check/internal/handler"
	"fraud-check/internal/metrics"
	"fraud-check/internal/service"
	"fraud-check/pkg/logger"
	"fraud-check/pkg/middleware"
	"fraud-check/pkg/ratelimit"
	"fraud-check/pkg/redis"
)

const serviceName = "fraud-check"

func main() {
	cfg := mustLoadConfig(logger.NewLogger(serviceName))

	log := logger.New(serviceName, cfg.IsProduction())
	defer log.Sync()

	// Initialize oracle client
	oracle := client.NewOracleClient(cfg.FraudAPIURL, cfg.OracleTimeout, log)

	// Initialize services
	controller := service.NewSubmissionController(
		service.NewRequestBuilder(cfg.IncludeTime, time.Now),
		oracle,
		service.NewFailSafePolicy(cfg.FailSafePolicy),
		metrics.New(prometheus.DefaultRegisterer),
		log,
	)

	// Initialize rate limiting
	limiter, closeLimiter := newRateLimitStore(cfg, log)
	defer closeLimiter()

	// Initialize handlers
	checkHandler := handler.NewCheckHandler(controller, log)

	// Setup router
	router := setupRouter(checkHandler, limiter, cfg, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.OracleTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting fraud check service",
			zap.String("port", cfg.Port),
			zap.String("oracle", cfg.FraudAPIURL),
			zap.String("fail_safe_policy", string(cfg.FailSafePolicy)),
			zap.Bool("include_time", cfg.IncludeTime))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}
	controller.Wait()

	log.Info("server exited")
}

// mustLoadConfig exits through log.Fatal when the environment is invalid.
func mustLoadConfig(log *zap.Logger) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}
	return cfg
}

func setupRouter(handler *handler.CheckHandler, limiter ratelimit.Store, cfg *config.Config, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORSOrigin))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": serviceName})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimiter(limiter, log))
	{
		checks := v1.Group("/checks")
		{
			checks.POST("", handler.SubmitCheck)
			checks.GET("/current", handler.GetCurrentState)
		}
	}

	return router
}

func newRateLimitStore(cfg *config.Config, log *zap.Logger) (ratelimit.Store, func()) {
	if cfg.RedisURL == "" {
		store := ratelimit.NewMemoryStore(cfg.RateLimit, cfg.RateLimitWindow)
		return store, store.Stop
	}

	redisClient := redis.NewRedisClient(cfg.RedisURL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(ctx); err != nil {
		log.Warn("redis unavailable at startup, rate limiter will let requests through until it recovers",
			zap.String("addr", cfg.RedisURL), zap.Error(err))
	}

	return ratelimit.NewRedisStore(redisClient, cfg.RateLimit, cfg.RateLimitWindow), func() {
		if err := redisClient.Close(); err != nil {
			log.Error("failed to close redis client", zap.Error(err))
		}
	}
}
