// cmd/oracle-stub/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fraud-check/internal/oracle"
	"fraud-check/pkg/logger"
	"fraud-check/pkg/middleware"
)

func main() {
	log := logger.NewDevelopmentLogger("fraud-oracle-stub")
	defer log.Sync()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("invalid configuration", zap.Error(err))
	}

	handler := oracle.NewHandler(oracle.NewModel(cfg.Threshold), prometheus.DefaultRegisterer, log)
	router := setupRouter(handler, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("starting fraud oracle stub",
			zap.String("port", cfg.Port),
			zap.Float64("threshold", cfg.Threshold))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("server forced to shutdown", zap.Error(err))
	}

	log.Info("server exited")
}

func setupRouter(handler *oracle.Handler, log *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.POST("/predict/", handler.Predict)

	return router
}

type Config struct {
	Port      string
	Threshold float64
}

func loadConfig() (*Config, error) {
	threshold, err := strconv.ParseFloat(getEnv("FRAUD_THRESHOLD", "0.5"), 64)
	if err != nil || threshold < 0 || threshold > 1 {
		return nil, fmt.Errorf("FRAUD_THRESHOLD must be a number in [0, 1], got %q", os.Getenv("FRAUD_THRESHOLD"))
	}

	return &Config{
		Port:      getEnv("PORT", "8000"),
		Threshold: threshold,
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
