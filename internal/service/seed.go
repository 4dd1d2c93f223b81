package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/repository"
)

const (
	seedSalesChannel   = "Drone hub Channel"
	seedStockLocation  = "European Warehouse"
	seedCategory       = "Drones"
	seedStockedPerItem = 100
)

// SeedReport counts the records a seed run created.
type SeedReport struct {
	SalesChannels   int `json:"sales_channels"`
	Currencies      int `json:"currencies"`
	Regions         int `json:"regions"`
	StockLocations  int `json:"stock_locations"`
	Categories      int `json:"categories"`
	Products        int `json:"products"`
	Drones          int `json:"drones"`
	InventoryLevels int `json:"inventory_levels"`
}

// Empty reports whether the run created nothing.
func (r *SeedReport) Empty() bool {
	return *r == SeedReport{}
}

// SeedRepositories groups the stores the seed writes to.
type SeedRepositories struct {
	SalesChannels  repository.SalesChannelRepository
	Currencies     repository.StoreCurrencyRepository
	Regions        repository.RegionRepository
	StockLocations repository.StockLocationRepository
	Categories     repository.CategoryRepository
	Products       repository.ProductRepository
	Inventory      repository.InventoryRepository
}

type seedService struct {
	repos  SeedRepositories
	drones DroneService
}

func NewSeedService(repos SeedRepositories, drones DroneService) SeedService {
	return &seedService{repos: repos, drones: drones}
}

type seedProduct struct {
	title       string
	handle      string
	description string
	frTitle     string
	frDesc      string
	eur, usd    int64
}

var seedProducts = []seedProduct{
	{
		title:       "Drone Pro X1",
		handle:      "drone-pro-x1",
		description: "Experience the next level of drone technology with the Drone Pro X1. Equipped with advanced features and superior performance.",
		frTitle:     "Drone Pro X1",
		frDesc:      "Découvrez la nouvelle génération de drones avec le Drone Pro X1. Des fonctions avancées et des performances supérieures.",
		eur:         3000,
		usd:         3200,
	},
	{
		title:       "Drone Lite A2",
		handle:      "drone-lite-a2",
		description: "Reimagine the feeling of a classic drone. With our Drone Lite A2, everyday essentials no longer have to be ordinary.",
		frTitle:     "Drone Lite A2",
		frDesc:      "Réinventez la sensation d'un drone classique. Avec notre Drone Lite A2, l'essentiel du quotidien n'a plus rien d'ordinaire.",
		eur:         1500,
		usd:         1600,
	},
	{
		title:       "Drone Mini S",
		handle:      "drone-mini-s",
		description: "Reimagine the feeling of classic drones. With our Drone Mini S, everyday essentials no longer have to be ordinary.",
		frTitle:     "Drone Mini S",
		frDesc:      "Réinventez la sensation des drones classiques. Avec notre Drone Mini S, l'essentiel du quotidien n'a plus rien d'ordinaire.",
		eur:         1000,
		usd:         1200,
	},
	{
		title:       "Drone Camera Pro",
		handle:      "drone-camera-pro",
		description: "Reimagine the feeling of classic cameras. With our Drone Camera Pro, everyday essentials no longer have to be ordinary.",
		frTitle:     "Drone Caméra Pro",
		frDesc:      "Réinventez la sensation des caméras classiques. Avec notre Drone Caméra Pro, l'essentiel du quotidien n'a plus rien d'ordinaire.",
		eur:         2000,
		usd:         2200,
	},
}

var seedRegions = []domain.Region{
	{Name: "Eurozone", CurrencyCode: "eur", Countries: []string{"fr", "de", "es", "it", "gb"}},
	{Name: "United States", CurrencyCode: "usd", Countries: []string{"us"}},
}

// Seed loads the demo store. Each step only writes what is missing, so
// running it twice creates nothing the second time.
func (s *seedService) Seed(ctx context.Context) (*SeedReport, error) {
	logger.EnterMethod("seedService.Seed")
	report := &SeedReport{}

	steps := []struct {
		name string
		run  func(context.Context, *SeedReport) error
	}{
		{"sales channel", s.seedSalesChannel},
		{"store currencies", s.seedCurrencies},
		{"regions", s.seedRegions},
		{"stock location", s.seedStockLocation},
		{"category", s.seedCategory},
		{"products", s.seedProducts},
		{"inventory levels", s.seedInventory},
	}
	for _, step := range steps {
		logger.Info("Seeding " + step.name)
		if err := step.run(ctx, report); err != nil {
			err = fmt.Errorf("seed %s: %w", step.name, err)
			logger.ExitMethodWithError("seedService.Seed", err)
			return report, err
		}
	}

	logger.ExitMethod("seedService.Seed", "products", report.Products, "drones", report.Drones, "inventoryLevels", report.InventoryLevels)
	return report, nil
}

func (s *seedService) seedSalesChannel(ctx context.Context, report *SeedReport) error {
	_, err := s.repos.SalesChannels.GetByName(ctx, seedSalesChannel)
	if err == nil {
		logger.Info("Sales channel already exists, skipping", "name", seedSalesChannel)
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err := s.repos.SalesChannels.Create(ctx, &domain.SalesChannel{Name: seedSalesChannel}); err != nil {
		return err
	}
	report.SalesChannels++
	return nil
}

func (s *seedService) seedCurrencies(ctx context.Context, report *SeedReport) error {
	existing, err := s.repos.Currencies.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("Store currencies already configured, skipping", "count", len(existing))
		return nil
	}
	for _, c := range []domain.StoreCurrency{
		{CurrencyCode: "eur", IsDefault: true},
		{CurrencyCode: "usd"},
	} {
		if err := s.repos.Currencies.Upsert(ctx, c); err != nil {
			return err
		}
		report.Currencies++
	}
	return nil
}

func (s *seedService) seedRegions(ctx context.Context, report *SeedReport) error {
	existing, err := s.repos.Regions.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		logger.Info("Regions already exist, skipping", "count", len(existing))
		return nil
	}
	for _, tmpl := range seedRegions {
		region := tmpl
		region.Countries = append([]string(nil), tmpl.Countries...)
		if err := s.repos.Regions.Create(ctx, &region); err != nil {
			return err
		}
		report.Regions++
	}
	return nil
}

func (s *seedService) stockLocation(ctx context.Context) (*domain.StockLocation, error) {
	return s.repos.StockLocations.GetByName(ctx, seedStockLocation)
}

func (s *seedService) seedStockLocation(ctx context.Context, report *SeedReport) error {
	_, err := s.stockLocation(ctx)
	if err == nil {
		logger.Info("Stock location already exists, skipping", "name", seedStockLocation)
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	loc := &domain.StockLocation{Name: seedStockLocation, City: "france", CountryCode: "fr"}
	if err := s.repos.StockLocations.Create(ctx, loc); err != nil {
		return err
	}
	report.StockLocations++
	return nil
}

func (s *seedService) seedCategory(ctx context.Context, report *SeedReport) error {
	_, err := s.repos.Categories.GetByName(ctx, seedCategory)
	if err == nil {
		logger.Info("Category already exists, skipping", "name", seedCategory)
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	if err := s.repos.Categories.Create(ctx, &domain.Category{Name: seedCategory, IsActive: true}); err != nil {
		return err
	}
	report.Categories++
	return nil
}

// seedProducts creates each missing product by handle, then gives every
// product without one its drone record. A run interrupted halfway is
// completed by the next run.
func (s *seedService) seedProducts(ctx context.Context, report *SeedReport) error {
	category, err := s.repos.Categories.GetByName(ctx, seedCategory)
	if err != nil {
		return err
	}

	rates, err := json.Marshal(map[string]int{"eur": 50, "usd": 75})
	if err != nil {
		return err
	}

	for _, sp := range seedProducts {
		product, err := s.repos.Products.GetByHandle(ctx, sp.handle)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrNotFound):
			product = newSeedProduct(sp, category.ID)
			if err := s.repos.Products.Create(ctx, product); err != nil {
				return fmt.Errorf("product %s: %w", sp.handle, err)
			}
			report.Products++
		default:
			return fmt.Errorf("product %s: %w", sp.handle, err)
		}

		if product.Drone != nil {
			continue
		}
		translations, err := json.Marshal(map[domain.Locale]domain.Translation{
			domain.LocaleEN: {Title: sp.title, Description: sp.description},
			domain.LocaleFR: {Title: sp.frTitle, Description: sp.frDesc},
		})
		if err != nil {
			return err
		}
		if _, err := s.drones.CreateDroneFromProduct(ctx, product.ID, &DroneInput{
			MarketingMethod:    string(domain.MarketingMethodSaleAndRent),
			RentalPerDayPrices: rates,
			Translations:       translations,
		}); err != nil {
			return fmt.Errorf("drone for %s: %w", sp.handle, err)
		}
		report.Drones++
	}

	if report.Products == 0 && report.Drones == 0 {
		logger.Info("Products already exist, skipping", "count", len(seedProducts))
	}
	return nil
}

func newSeedProduct(sp seedProduct, categoryID string) *domain.Product {
	const optionTitle = "Default option"
	sku := strings.ToUpper(sp.handle) + "-DEFAULT"
	return &domain.Product{
		Handle:      sp.handle,
		Title:       sp.title,
		Description: sp.description,
		Status:      domain.ProductStatusPublished,
		WeightGrams: 400,
		CategoryIDs: []string{categoryID},
		Options:     []domain.ProductOption{{Title: optionTitle, Values: []string{"Default"}}},
		Variants: []domain.Variant{{
			Title:           "Default Variant",
			SKU:             sku,
			Options:         map[string]string{optionTitle: "Default"},
			ManageInventory: true,
			Prices: map[domain.CurrencyCode]decimal.Decimal{
				"eur": decimal.NewFromInt(sp.eur),
				"usd": decimal.NewFromInt(sp.usd),
			},
		}},
	}
}

func (s *seedService) seedInventory(ctx context.Context, report *SeedReport) error {
	loc, err := s.stockLocation(ctx)
	if err != nil {
		return err
	}
	levels, err := s.repos.Inventory.ListLevelsByLocation(ctx, loc.ID)
	if err != nil {
		return err
	}
	stocked := make(map[string]bool, len(levels))
	for _, l := range levels {
		stocked[l.VariantID] = true
	}

	products, err := s.repos.Products.List(ctx, repository.ProductFilter{})
	if err != nil {
		return err
	}
	for _, p := range products {
		for _, v := range p.Variants {
			if stocked[v.ID] {
				continue
			}
			if err := s.repos.Inventory.SetLevel(ctx, domain.InventoryLevel{
				VariantID:       v.ID,
				LocationID:      loc.ID,
				StockedQuantity: seedStockedPerItem,
			}); err != nil {
				return err
			}
			report.InventoryLevels++
		}
	}
	if report.InventoryLevels == 0 {
		logger.Info("Inventory levels already set, skipping", "location", loc.Name)
	}
	return nil
}
