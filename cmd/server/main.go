package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "dronehub-backend/internal/api/http"
	"dronehub-backend/internal/cache"
	"dronehub-backend/internal/cartgateway"
	"dronehub-backend/internal/config"
	"dronehub-backend/internal/i18n"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/offer"
	"dronehub-backend/internal/repository/postgres"
	"dronehub-backend/internal/security"
	"dronehub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Dronehub Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "time_zone", cfg.Store.TimeZone)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := postgres.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(db.DB); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			log.Fatalf("Failed to apply migrations: %v", err)
		}
		logger.Info("Database migrations applied")
	}

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize product cache (optional)
	var productCache service.ProductCache
	if addr := cfg.GetRedisAddress(); addr != "" {
		redisClient, err := cache.NewRedisClient(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, product cache disabled", "address", addr, "error", err)
		} else {
			defer redisClient.Close()
			productCache = cache.NewProductCache(redisClient, cfg.CacheTTL())
			logger.Info("Product cache enabled", "address", addr, "ttl", cfg.CacheTTL())
		}
	}

	// Initialize localization and offer evaluation
	texts, err := i18n.NewCatalog()
	if err != nil {
		logger.Error("Failed to load translations", "error", err)
		log.Fatalf("Failed to load translations: %v", err)
	}
	formatter := i18n.NewFormatter()
	evaluator := offer.NewEvaluator(
		offer.WithLocation(cfg.Location()),
		offer.WithFormatter(formatter),
		offer.WithDayCounter(texts),
	)

	// Initialize Services
	cartClient := cartgateway.NewClient(cfg.Cart.BaseURL, cfg.Cart.PublishableKey, time.Duration(cfg.Cart.TimeoutSeconds)*time.Second)
	droneSvc := service.NewDroneService(store.DroneRepository, store.ProductRepository, productCache)
	storefrontSvc := service.NewStorefrontService(
		store.ProductRepository,
		store.RegionRepository,
		productCache,
		cartClient,
		evaluator,
		texts,
		formatter,
		cfg.Store.PageSize,
	)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	router := httpapi.NewRouter(httpapi.Dependencies{
		Storefront:   storefrontSvc,
		Drones:       droneSvc,
		TokenManager: tokenManager,
		Health:       store,
	})

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}
