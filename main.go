package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/upsc-prep/question-bank-service/internal/cache"
	"github.com/upsc-prep/question-bank-service/internal/config"
	"github.com/upsc-prep/question-bank-service/internal/events"
	"github.com/upsc-prep/question-bank-service/internal/handlers"
	"github.com/upsc-prep/question-bank-service/internal/repositories/recordstore"
	"github.com/upsc-prep/question-bank-service/internal/services"
	"github.com/upsc-prep/question-bank-service/internal/storage"
	"github.com/upsc-prep/question-bank-service/internal/utils"
	"github.com/upsc-prep/question-bank-service/internal/validator"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize storage backend
	var store storage.RecordStore
	switch cfg.StorageBackend {
	case config.BackendMemory:
		store = storage.NewMemStore()
	default:
		store, err = storage.NewFileStore(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to initialize file storage: %v", err)
		}
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: invalid REDIS_URL, caching disabled: %v", err)
		} else {
			redisClient = redis.NewClient(opts)
			if err := redisClient.Ping(context.Background()).Err(); err != nil {
				log.Printf("Warning: Redis unreachable, caching disabled: %v", err)
				redisClient.Close()
				redisClient = nil
			}
		}
	}
	caches := cache.NewManager(redisClient)

	// Initialize event publisher
	var publisher events.Publisher
	var publisherCloser interface{ Close() error }
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPub, err := events.NewKafkaPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
		publisher = kafkaPub
		publisherCloser = kafkaPub
	} else {
		chanPub := events.NewGoChannelPublisher(slogLogger)
		publisher = chanPub
		publisherCloser = chanPub
	}

	// Initialize repositories and services
	repos := recordstore.NewFactory(store, caches, slogLogger)
	serviceManager := services.NewServiceManager(repos, caches, publisher, slogLogger, validator.New())

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger, func(c *gin.Context) {
		cacheStatus := "ok"
		if err := caches.HealthCheck(c.Request.Context()); err != nil {
			cacheStatus = "unavailable"
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cacheStatus})
	})

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment, "storage", cfg.StorageBackend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := publisherCloser.Close(); err != nil {
		log.Printf("Failed to close event publisher: %v", err)
	}

	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
