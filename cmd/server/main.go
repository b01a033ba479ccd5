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
	"go.uber.org/zap"

	"github.com/furrybuddy/service-adoption/internal/config"
	"github.com/furrybuddy/service-adoption/internal/events"
	"github.com/furrybuddy/service-adoption/internal/handler"
	"github.com/furrybuddy/service-adoption/internal/logger"
	"github.com/furrybuddy/service-adoption/internal/middleware"
	"github.com/furrybuddy/service-adoption/internal/state"
	"github.com/furrybuddy/service-adoption/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "service-adoption")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting service-adoption",
		zap.String("port", cfg.Port),
		zap.String("store_driver", cfg.StoreDriver),
	)

	// Open the durable store
	var st store.Store
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		st, err = store.OpenPostgres(store.PostgresConfig{
			Host:     cfg.DBConfig.Host,
			Port:     cfg.DBConfig.Port,
			User:     cfg.DBConfig.User,
			Password: cfg.DBConfig.Password,
			DBName:   cfg.DBConfig.DBName,
			SSLMode:  cfg.DBConfig.SSLMode,
		}, log)
	case config.DriverSQLite:
		st, err = store.OpenSQLite(cfg.SQLitePath, log)
	}
	if err != nil {
		log.Fatal("failed to open durable store", zap.Error(err))
	}
	defer func() { _ = st.Close() }()

	// Initialize event publisher
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaConfig.Brokers) > 0 {
		kafkaPublisher := events.NewKafkaPublisher(cfg.KafkaConfig.Brokers, log)
		defer func() { _ = kafkaPublisher.Close() }()
		publisher = kafkaPublisher
	}

	// Initialize application state
	appState := state.New(st, publisher, log)

	initCtx, initCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer initCancel()
	if err := appState.Init(initCtx); err != nil {
		log.Fatal("failed to rehydrate state", zap.Error(err))
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "service-adoption"})
	})

	// Register routes
	handler.NewPetHandler(appState).RegisterRoutes(&router.RouterGroup)
	handler.NewPetOwnerHandler(appState).RegisterRoutes(&router.RouterGroup)
	handler.NewAdopterHandler(appState).RegisterRoutes(&router.RouterGroup)
	handler.NewAdvertisementHandler(appState).RegisterRoutes(&router.RouterGroup)
	handler.NewAdoptionRequestHandler(appState).RegisterRoutes(&router.RouterGroup)
	handler.NewServiceHandler(appState).RegisterRoutes(&router.RouterGroup)

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down service-adoption...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("service-adoption stopped")
}
