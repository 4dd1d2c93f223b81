package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/repository"
)

type categoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepository(db *sqlx.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO categories (id, name, is_active) VALUES ($1, $2, $3)`, c.ID, c.Name, c.IsActive)
	return err
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*domain.Category, error) {
	var c domain.Category
	if err := r.db.GetContext(ctx, &c, `SELECT id, name, is_active FROM categories WHERE name = $1`, name); err != nil {
		return nil, notFound(err, "category")
	}
	return &c, nil
}

type salesChannelRepository struct {
	db *sqlx.DB
}

func NewSalesChannelRepository(db *sqlx.DB) repository.SalesChannelRepository {
	return &salesChannelRepository{db: db}
}

func (r *salesChannelRepository) Create(ctx context.Context, ch *domain.SalesChannel) error {
	if ch.ID == "" {
		ch.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO sales_channels (id, name) VALUES ($1, $2)`, ch.ID, ch.Name)
	return err
}

func (r *salesChannelRepository) GetByName(ctx context.Context, name string) (*domain.SalesChannel, error) {
	var ch domain.SalesChannel
	if err := r.db.GetContext(ctx, &ch, `SELECT id, name FROM sales_channels WHERE name = $1`, name); err != nil {
		return nil, notFound(err, "sales channel")
	}
	return &ch, nil
}

type storeCurrencyRepository struct {
	db *sqlx.DB
}

func NewStoreCurrencyRepository(db *sqlx.DB) repository.StoreCurrencyRepository {
	return &storeCurrencyRepository{db: db}
}

func (r *storeCurrencyRepository) List(ctx context.Context) ([]domain.StoreCurrency, error) {
	var out []domain.StoreCurrency
	err := r.db.SelectContext(ctx, &out, `SELECT currency_code, is_default FROM store_currencies ORDER BY currency_code`)
	return out, err
}

// Upsert adds the currency or updates its default flag. Setting a new
// default clears the flag on every other currency.
func (r *storeCurrencyRepository) Upsert(ctx context.Context, c domain.StoreCurrency) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if c.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE store_currencies SET is_default = FALSE WHERE currency_code <> $1`, string(c.CurrencyCode)); err != nil {
			return err
		}
	}
	query := `INSERT INTO store_currencies (currency_code, is_default) VALUES ($1, $2)
	          ON CONFLICT (currency_code) DO UPDATE SET is_default = EXCLUDED.is_default`
	if _, err := tx.ExecContext(ctx, query, string(c.CurrencyCode), c.IsDefault); err != nil {
		return err
	}
	return tx.Commit()
}

type stockLocationRepository struct {
	db *sqlx.DB
}

func NewStockLocationRepository(db *sqlx.DB) repository.StockLocationRepository {
	return &stockLocationRepository{db: db}
}

func (r *stockLocationRepository) Create(ctx context.Context, l *domain.StockLocation) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO stock_locations (id, name, city, country_code) VALUES ($1, $2, $3, $4)`,
		l.ID, l.Name, l.City, l.CountryCode)
	return err
}

func (r *stockLocationRepository) GetByName(ctx context.Context, name string) (*domain.StockLocation, error) {
	var l domain.StockLocation
	if err := r.db.GetContext(ctx, &l, `SELECT id, name, city, country_code FROM stock_locations WHERE name = $1`, name); err != nil {
		return nil, notFound(err, "stock location")
	}
	return &l, nil
}

type inventoryRepository struct {
	db *sqlx.DB
}

func NewInventoryRepository(db *sqlx.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) SetLevel(ctx context.Context, level domain.InventoryLevel) error {
	query := `INSERT INTO inventory_levels (variant_id, location_id, stocked_quantity) VALUES ($1, $2, $3)
	          ON CONFLICT (variant_id, location_id) DO UPDATE SET stocked_quantity = EXCLUDED.stocked_quantity`
	_, err := r.db.ExecContext(ctx, query, level.VariantID, level.LocationID, level.StockedQuantity)
	return err
}

func (r *inventoryRepository) ListLevelsByLocation(ctx context.Context, locationID string) ([]domain.InventoryLevel, error) {
	var out []domain.InventoryLevel
	query := `SELECT variant_id, location_id, stocked_quantity FROM inventory_levels WHERE location_id = $1`
	err := r.db.SelectContext(ctx, &out, query, locationID)
	return out, err
}
