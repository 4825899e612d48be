package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sujayx07/TruthScope/internal/adapter/httpapi"
	"github.com/sujayx07/TruthScope/internal/di"
	"github.com/sujayx07/TruthScope/internal/infra"
	"github.com/sujayx07/TruthScope/internal/infra/config"
	"github.com/sujayx07/TruthScope/internal/infra/logger"
)

func main() {
	// 1. Configuration
	cfg := config.Load()

	// 2. Logger
	log := logger.NewWithOTel(cfg.Env == "production")
	log.Info("starting truthscope analysis backend", "env", cfg.Env, "model", cfg.GeminiModel)

	if missing := cfg.MissingSettings(); len(missing) > 0 {
		log.Warn("analysis collaborators are not fully configured", "missing", missing)
	}

	// 3. Database
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	pool, err := infra.NewPostgresDB(ctx, dsn, infra.PoolConfig{
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	cancel()
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// 4. Application components
	components := di.NewApplicationComponents(cfg, pool, log)
	handler := httpapi.NewHandler(
		components.AnalyzeArticle,
		components.TopHeadlines,
		components.AnalysisResults,
		components.ModelName,
		pool.Ping,
		log,
	)

	// 5. HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency_ms", v.Latency.Milliseconds(),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/", handler.Index)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/readyz", func(c echo.Context) error {
		if err := pool.Ping(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "database unreachable"})
		}
		return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
	})

	limiter := httpapi.NewTierLimiter(cfg.FreeTierRate, cfg.FreeTierBurst)
	v1 := e.Group("/v1", httpapi.Auth(components.Users, log), limiter.Middleware())
	v1.POST("/analyze", handler.Analyze)
	v1.GET("/analysis", handler.CachedAnalysis)
	v1.GET("/news", handler.TopHeadlines)

	// 6. Serve with graceful shutdown
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
	}
}
