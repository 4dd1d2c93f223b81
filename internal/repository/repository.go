package repository

import (
	"context"

	"dronehub-backend/internal/domain"
)

type DroneRepository interface {
	Create(ctx context.Context, drone *domain.Drone) error
	GetByID(ctx context.Context, id string) (*domain.Drone, error)
	GetByProductID(ctx context.Context, productID string) (*domain.Drone, error)
	List(ctx context.Context) ([]domain.Drone, error)
	Delete(ctx context.Context, id string) error

	// Product link (1:1)
	LinkProduct(ctx context.Context, droneID, productID string) error
}

// ProductFilter narrows a product listing. Zero values match everything.
type ProductFilter struct {
	CategoryID string
	Status     domain.ProductStatus
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByHandle(ctx context.Context, handle string) (*domain.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}

type RegionRepository interface {
	Create(ctx context.Context, region *domain.Region) error
	List(ctx context.Context) ([]domain.Region, error)
	GetByCountry(ctx context.Context, countryCode string) (*domain.Region, error)
}

type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	GetByName(ctx context.Context, name string) (*domain.Category, error)
}

type SalesChannelRepository interface {
	Create(ctx context.Context, channel *domain.SalesChannel) error
	GetByName(ctx context.Context, name string) (*domain.SalesChannel, error)
}

type StoreCurrencyRepository interface {
	List(ctx context.Context) ([]domain.StoreCurrency, error)
	Upsert(ctx context.Context, currency domain.StoreCurrency) error
}

type StockLocationRepository interface {
	Create(ctx context.Context, location *domain.StockLocation) error
	GetByName(ctx context.Context, name string) (*domain.StockLocation, error)
}

type InventoryRepository interface {
	SetLevel(ctx context.Context, level domain.InventoryLevel) error
	ListLevelsByLocation(ctx context.Context, locationID string) ([]domain.InventoryLevel, error)
}
