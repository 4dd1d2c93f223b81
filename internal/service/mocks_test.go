package service_test

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"dronehub-backend/internal/cartgateway"
	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/repository"
	"dronehub-backend/internal/service"
)

// MockDroneRepo
type MockDroneRepo struct {
	mock.Mock
}

func (m *MockDroneRepo) Create(ctx context.Context, drone *domain.Drone) error {
	args := m.Called(ctx, drone)
	return args.Error(0)
}
func (m *MockDroneRepo) GetByID(ctx context.Context, id string) (*domain.Drone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Drone), args.Error(1)
}
func (m *MockDroneRepo) GetByProductID(ctx context.Context, productID string) (*domain.Drone, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Drone), args.Error(1)
}
func (m *MockDroneRepo) List(ctx context.Context) ([]domain.Drone, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Drone), args.Error(1)
}
func (m *MockDroneRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockDroneRepo) LinkProduct(ctx context.Context, droneID, productID string) error {
	args := m.Called(ctx, droneID, productID)
	return args.Error(0)
}

// MockProductRepo
type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) Create(ctx context.Context, product *domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}
func (m *MockProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) GetByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductRepo) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Product), args.Error(1)
}

// MockRegionRepo
type MockRegionRepo struct {
	mock.Mock
}

func (m *MockRegionRepo) Create(ctx context.Context, region *domain.Region) error {
	args := m.Called(ctx, region)
	return args.Error(0)
}
func (m *MockRegionRepo) List(ctx context.Context) ([]domain.Region, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Region), args.Error(1)
}
func (m *MockRegionRepo) GetByCountry(ctx context.Context, countryCode string) (*domain.Region, error) {
	args := m.Called(ctx, countryCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Region), args.Error(1)
}

// MockCategoryRepo
type MockCategoryRepo struct {
	mock.Mock
}

func (m *MockCategoryRepo) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}
func (m *MockCategoryRepo) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

// MockSalesChannelRepo
type MockSalesChannelRepo struct {
	mock.Mock
}

func (m *MockSalesChannelRepo) Create(ctx context.Context, channel *domain.SalesChannel) error {
	args := m.Called(ctx, channel)
	return args.Error(0)
}
func (m *MockSalesChannelRepo) GetByName(ctx context.Context, name string) (*domain.SalesChannel, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SalesChannel), args.Error(1)
}

// MockStoreCurrencyRepo
type MockStoreCurrencyRepo struct {
	mock.Mock
}

func (m *MockStoreCurrencyRepo) List(ctx context.Context) ([]domain.StoreCurrency, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.StoreCurrency), args.Error(1)
}
func (m *MockStoreCurrencyRepo) Upsert(ctx context.Context, currency domain.StoreCurrency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// MockStockLocationRepo
type MockStockLocationRepo struct {
	mock.Mock
}

func (m *MockStockLocationRepo) Create(ctx context.Context, location *domain.StockLocation) error {
	args := m.Called(ctx, location)
	return args.Error(0)
}
func (m *MockStockLocationRepo) GetByName(ctx context.Context, name string) (*domain.StockLocation, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StockLocation), args.Error(1)
}

// MockInventoryRepo
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) SetLevel(ctx context.Context, level domain.InventoryLevel) error {
	args := m.Called(ctx, level)
	return args.Error(0)
}
func (m *MockInventoryRepo) ListLevelsByLocation(ctx context.Context, locationID string) ([]domain.InventoryLevel, error) {
	args := m.Called(ctx, locationID)
	return args.Get(0).([]domain.InventoryLevel), args.Error(1)
}

// MockProductCache
type MockProductCache struct {
	mock.Mock
}

func (m *MockProductCache) Get(ctx context.Context, handle string) (*domain.Product, error) {
	args := m.Called(ctx, handle)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}
func (m *MockProductCache) Set(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}
func (m *MockProductCache) Invalidate(ctx context.Context, handles ...string) error {
	args := m.Called(ctx, handles)
	return args.Error(0)
}

// MockCartGateway
type MockCartGateway struct {
	mock.Mock
}

func (m *MockCartGateway) AddLineItem(ctx context.Context, cartID string, item cartgateway.LineItem) (json.RawMessage, error) {
	args := m.Called(ctx, cartID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockDroneService
type MockDroneService struct {
	mock.Mock
}

func (m *MockDroneService) CreateDroneFromProduct(ctx context.Context, productID string, in *service.DroneInput) (*domain.Drone, error) {
	args := m.Called(ctx, productID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Drone), args.Error(1)
}
func (m *MockDroneService) HandleProductsCreated(ctx context.Context, productIDs []string, additional *service.DroneInput) ([]domain.Drone, error) {
	args := m.Called(ctx, productIDs, additional)
	return args.Get(0).([]domain.Drone), args.Error(1)
}
func (m *MockDroneService) DeleteDrone(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
