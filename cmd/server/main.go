package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/AnshRaj112/mindfulspace-backend/internal/config"
	"github.com/AnshRaj112/mindfulspace-backend/internal/database"
	"github.com/AnshRaj112/mindfulspace-backend/internal/logging"
	"github.com/AnshRaj112/mindfulspace-backend/internal/metrics"
	"github.com/AnshRaj112/mindfulspace-backend/internal/routes"
	"github.com/AnshRaj112/mindfulspace-backend/internal/services"
	"github.com/AnshRaj112/mindfulspace-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Connect to PostgreSQL, or keep everything in memory for local development
	var st store.Store
	if cfg.DatabaseURL != "" {
		logger.Info("Connecting to PostgreSQL...")
		db, err := database.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
		}
		st = store.NewPostgresStore(db)
	} else {
		logger.Warn("DATABASE_URL not set; using in-memory store, data is lost on restart")
		st = store.NewMemoryStore()
	}
	defer st.Close()

	// Connect to Redis for sessions, or fall back to an in-process cache
	var redisClient *redis.Client
	if cfg.RedisURI != "" {
		logger.Info("Connecting to Redis...")
		redisClient, err = database.ConnectRedis(ctx, cfg.RedisURI, logger)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
	} else {
		logger.Warn("REDIS_URI not set; sessions are kept in process")
	}
	sessions := services.NewSessionManager(services.NewCache(redisClient), cfg.SessionSecret, cfg.SessionTTL)

	if cfg.IsProduction() && cfg.SessionSecret == "mindful-space-secret-key-change-in-production" {
		logger.Warn("SESSION_SECRET is the default value; set a real secret")
	}

	r := routes.NewRouter(routes.Deps{
		Config:   cfg,
		Store:    st,
		Sessions: sessions,
		Logger:   logger,
		Metrics:  metrics.New(),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("MindfulSpace backend running", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}
