package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"

	"campus-experiment/clubdesk/internal/api"
	"campus-experiment/clubdesk/internal/auth"
	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/config"
	"campus-experiment/clubdesk/internal/db"
	"campus-experiment/clubdesk/internal/logging"
	"campus-experiment/clubdesk/internal/metrics"
	"campus-experiment/clubdesk/internal/middleware"
	"campus-experiment/clubdesk/internal/workers"
)

func RegisterRoutes(cfg config.App, cache common.CacheInterface, redisClient *redis.Client, upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.Default()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))

	middleware.ConfigureRateLimit(cfg.RateLimitPerSec)
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, redisClient, upSince))

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(cfg, cache)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	verifier := auth.NewTokenVerifier(cfg.JWTSigningKey, cfg.JWTIssuer)

	// Background refresh of club wallet balances
	workers.InitWorkers(deps.Provider, cache, cfg.WalletRefresh)

	RegisterAPIRoutes(r, verifier, handlers)

	return r
}
