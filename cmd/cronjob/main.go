package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"dronehub-backend/internal/cache"
	"dronehub-backend/internal/cartgateway"
	"dronehub-backend/internal/config"
	"dronehub-backend/internal/i18n"
	"dronehub-backend/internal/jobs"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/offer"
	"dronehub-backend/internal/repository/postgres"
	"dronehub-backend/internal/scheduler"
	"dronehub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'warm-product-cache', 'audit-drone-config', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Dronehub Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := postgres.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	var productCache service.ProductCache
	if addr := cfg.GetRedisAddress(); addr != "" {
		redisClient, err := cache.NewRedisClient(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("Redis unavailable, cache warming disabled", "address", addr, "error", err)
		} else {
			defer redisClient.Close()
			productCache = cache.NewProductCache(redisClient, cfg.CacheTTL())
		}
	}

	texts, err := i18n.NewCatalog()
	if err != nil {
		log.Fatalf("Failed to load translations: %v", err)
	}

	// Initialize Services
	storefrontSvc := service.NewStorefrontService(
		store.ProductRepository,
		store.RegionRepository,
		productCache,
		cartgateway.NewClient(cfg.Cart.BaseURL, cfg.Cart.PublishableKey, time.Duration(cfg.Cart.TimeoutSeconds)*time.Second),
		offer.NewEvaluator(offer.WithLocation(cfg.Location())),
		texts,
		i18n.NewFormatter(),
		cfg.Store.PageSize,
	)

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(
		&jobs.Repositories{
			Drones:     store.DroneRepository,
			Currencies: store.StoreCurrencyRepository,
		},
		&jobs.Services{Storefront: storefrontSvc},
		cfg,
	)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "warm-product-cache":
		jobRunner.WarmProductCache()
	case "audit-drone-config":
		jobRunner.AuditDroneConfig()
	case "all":
		jobRunner.RunAll()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - warm-product-cache\n")
		fmt.Printf("  - audit-drone-config\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
