package main

import (
	"context"
	"flag"
	"log"
	"time"

	_ "github.com/lib/pq"

	"dronehub-backend/internal/config"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/repository/postgres"
	"dronehub-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	migrate := flag.Bool("migrate", true, "Apply database migrations before seeding")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Seeding Dronehub store data...", "database", cfg.Database.Database)

	db, err := postgres.Open(cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if *migrate {
		if err := postgres.Migrate(db.DB); err != nil {
			logger.Error("Failed to apply migrations", "error", err)
			log.Fatalf("Failed to apply migrations: %v", err)
		}
	}

	store := postgres.NewStore(db)
	droneSvc := service.NewDroneService(store.DroneRepository, store.ProductRepository, nil)
	seedSvc := service.NewSeedService(service.SeedRepositories{
		SalesChannels:  store.SalesChannelRepository,
		Currencies:     store.StoreCurrencyRepository,
		Regions:        store.RegionRepository,
		StockLocations: store.StockLocationRepository,
		Categories:     store.CategoryRepository,
		Products:       store.ProductRepository,
		Inventory:      store.InventoryRepository,
	}, droneSvc)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	report, err := seedSvc.Seed(ctx)
	if err != nil {
		logger.Error("Seeding failed", "error", err)
		log.Fatalf("Seeding failed: %v", err)
	}
	if report.Empty() {
		logger.Info("Store already seeded, nothing to do")
		return
	}
	logger.Info("Finished seeding store data",
		"sales_channels", report.SalesChannels,
		"currencies", report.Currencies,
		"regions", report.Regions,
		"stock_locations", report.StockLocations,
		"categories", report.Categories,
		"products", report.Products,
		"drones", report.Drones,
		"inventory_levels", report.InventoryLevels)
}
