package service

import (
	"context"
	"fmt"

	"dronehub-backend/internal/catalog"
	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/repository"
)

type droneService struct {
	droneRepo   repository.DroneRepository
	productRepo repository.ProductRepository
	cache       ProductCache
}

// NewDroneService builds the drone workflow service. cache may be nil.
func NewDroneService(droneRepo repository.DroneRepository, productRepo repository.ProductRepository, cache ProductCache) DroneService {
	return &droneService{
		droneRepo:   droneRepo,
		productRepo: productRepo,
		cache:       cache,
	}
}

// parseDroneInput validates the raw drone data. Missing input means a
// sale-only drone with no rates or translations.
func parseDroneInput(in *DroneInput) (*domain.Drone, error) {
	if in == nil {
		in = &DroneInput{}
	}
	method, err := catalog.ParseMarketingMethod(in.MarketingMethod)
	if err != nil {
		return nil, err
	}
	rates, err := catalog.ParseRentalRates(in.RentalPerDayPrices)
	if err != nil {
		return nil, err
	}
	translations, err := catalog.ParseTranslations(in.Translations)
	if err != nil {
		return nil, err
	}
	return &domain.Drone{
		MarketingMethod:  method,
		RentalDailyRates: rates,
		Translations:     translations,
	}, nil
}

// CreateDroneFromProduct creates a drone record and links it to the product.
// If the link cannot be created the drone is deleted again.
func (s *droneService) CreateDroneFromProduct(ctx context.Context, productID string, in *DroneInput) (*domain.Drone, error) {
	logger.EnterMethod("droneService.CreateDroneFromProduct", "productID", productID)

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		logger.ExitMethodWithError("droneService.CreateDroneFromProduct", err, "productID", productID)
		return nil, err
	}

	drone, err := parseDroneInput(in)
	if err != nil {
		logger.ExitMethodRejected("droneService.CreateDroneFromProduct", err, "productID", productID)
		return nil, err
	}

	if err := s.droneRepo.Create(ctx, drone); err != nil {
		logger.ExitMethodWithError("droneService.CreateDroneFromProduct", err, "productID", productID)
		return nil, fmt.Errorf("failed to create drone: %w", err)
	}

	if err := s.droneRepo.LinkProduct(ctx, drone.ID, productID); err != nil {
		if delErr := s.droneRepo.Delete(ctx, drone.ID); delErr != nil {
			logger.Error("Failed to delete drone after link failure", "droneID", drone.ID, "error", delErr)
		}
		logger.ExitMethodWithError("droneService.CreateDroneFromProduct", err, "productID", productID, "droneID", drone.ID)
		return nil, fmt.Errorf("failed to link drone to product %s: %w", productID, err)
	}
	drone.ProductID = productID

	s.invalidate(ctx, product.Handle)

	logger.ExitMethod("droneService.CreateDroneFromProduct", "productID", productID, "droneID", drone.ID, "method", drone.MarketingMethod)
	return drone, nil
}

// HandleProductsCreated applies the same drone data to every newly created
// product. Nothing happens when no drone data came with the products.
func (s *droneService) HandleProductsCreated(ctx context.Context, productIDs []string, additional *DroneInput) ([]domain.Drone, error) {
	if additional == nil {
		logger.Debug("No drone data on created products, skipping", "count", len(productIDs))
		return nil, nil
	}

	drones := make([]domain.Drone, 0, len(productIDs))
	for _, id := range productIDs {
		drone, err := s.CreateDroneFromProduct(ctx, id, additional)
		if err != nil {
			return drones, err
		}
		drones = append(drones, *drone)
	}
	return drones, nil
}

func (s *droneService) DeleteDrone(ctx context.Context, id string) error {
	logger.EnterMethod("droneService.DeleteDrone", "droneID", id)

	drone, err := s.droneRepo.GetByID(ctx, id)
	if err != nil {
		logger.ExitMethodWithError("droneService.DeleteDrone", err, "droneID", id)
		return err
	}
	if err := s.droneRepo.Delete(ctx, id); err != nil {
		logger.ExitMethodWithError("droneService.DeleteDrone", err, "droneID", id)
		return err
	}

	if drone.ProductID != "" {
		if product, err := s.productRepo.GetByID(ctx, drone.ProductID); err == nil {
			s.invalidate(ctx, product.Handle)
		}
	}

	logger.ExitMethod("droneService.DeleteDrone", "droneID", id)
	return nil
}

func (s *droneService) invalidate(ctx context.Context, handle string) {
	if s.cache == nil {
		return
	}
	err := s.cache.Invalidate(ctx, handle)
	logger.CacheResult("invalidate", handle, false, err)
}
