package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"campus-experiment/clubdesk/internal/common"
	"campus-experiment/clubdesk/internal/config"
	"campus-experiment/clubdesk/internal/db"
	"campus-experiment/clubdesk/internal/db/repositories"
	"campus-experiment/clubdesk/internal/logging"
	"campus-experiment/clubdesk/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()

	// Initialize structured logging
	if err := logging.Init(cfg.Env); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Clubdesk starting up",
		"environment", cfg.Env,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	// Connect to DB with sqlx
	if err := db.InitPostgres(cfg.DatabaseURL); err != nil {
		logging.Error("Failed to connect to Postgres (sqlx)", "error", err.Error())
		log.Fatalf("failed to connect to Postgres (sqlx): %v", err)
	}
	logging.Info("Connected to Postgres (sqlx)")

	// Connect to DB with GORM
	if _, err := db.InitPostgresORM(cfg.DatabaseURL); err != nil {
		logging.Error("Failed to connect to Postgres (GORM)", "error", err.Error())
		log.Fatalf("failed to connect to Postgres (GORM): %v", err)
	}
	logging.Info("Connected to Postgres (GORM)")

	if err := repositories.NewPrefsRepository(db.DB).EnsureSchema(context.Background()); err != nil {
		log.Fatalf("failed to ensure prefs schema: %v", err)
	}

	// Cache: Redis when configured, in-process otherwise
	var cache common.CacheInterface
	var redisClient *redis.Client
	if client, err := common.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword); err != nil {
		logging.Warn("Redis unavailable, falling back to in-process cache", "error", err.Error())
		cache = common.NewCacheService(cfg.MemberCacheTTL, 10*time.Minute)
	} else {
		redisClient = client
		cache = common.NewRedisCacheService(client)
		logging.Info("Connected to Redis", "addr", cfg.RedisAddr)
	}
	defer cache.Close()

	upSince := time.Now()

	// Initialize router with Chi
	router := routes.RegisterRoutes(cfg, cache, redisClient, upSince)

	// Setup metrics endpoint outside of Chi router
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	addr := ":" + cfg.HTTPPort
	logging.Info("Server starting",
		"port", cfg.HTTPPort,
		"environment", cfg.Env,
	)

	log.Printf("Starting server on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
