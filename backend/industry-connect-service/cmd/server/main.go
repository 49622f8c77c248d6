package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/api"
	"github.com/anaghasb/CC-phase2-integration/backend/industry-connect-service/internal/db"
	"github.com/anaghasb/CC-phase2-integration/internal/config"
	"github.com/anaghasb/CC-phase2-integration/internal/logging"
	"github.com/anaghasb/CC-phase2-integration/internal/metrics"
	"github.com/anaghasb/CC-phase2-integration/internal/middleware"
	"github.com/anaghasb/CC-phase2-integration/internal/tracing"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const serviceName = "industry-connect-service"

func main() {
	// Load environment variables from .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Ensure all log output goes to stdout
	log.SetOutput(os.Stdout)

	cfg, err := config.LoadIndustry()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logging.Configure(serviceName, cfg.Server.LogLevel)
	logging.LogKV("info", "service starting", map[string]interface{}{
		"git_sha":    os.Getenv("GIT_SHA"),
		"build_time": os.Getenv("BUILD_TIME"),
		"port":       cfg.Port,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, serviceName, cfg.Server.OTLPEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialise tracing: %v", err)
	}

	database, err := db.NewDatabase(ctx, cfg.Server.DatabaseURL, db.Options{
		MaxConns:     cfg.Server.DBMaxConnections,
		MaxRetries:   cfg.Server.DBConnectRetries,
		InitialDelay: cfg.Server.DBRetryDelay,
	})
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	defer database.Close()

	if err := database.Init(ctx); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	handler := api.NewHandler(database)
	router := setupRouter(cfg.Server, handler)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           tracing.Handler(router, serviceName),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.LogKV("info", "server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logging.LogKV("info", "shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogKV("error", "server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logging.LogKV("warn", "tracer shutdown failed", map[string]interface{}{"error": err.Error()})
	}
}

func setupRouter(cfg config.ServerEnvironment, handler *api.Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.GinMode == "" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(logging.JSONLogger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst))
	router.Use(metrics.HTTPMetrics())

	// Health and readiness endpoints
	router.GET("/live", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/ready", handler.Health)
	router.GET("/health", handler.Health)
	router.GET("/metrics", metrics.Handler())

	handler.RegisterRoutes(router)

	// Root endpoint for basic info
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"version": "1.0.0",
			"status":  "running",
		})
	})

	return router
}
