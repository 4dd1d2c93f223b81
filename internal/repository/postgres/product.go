package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/repository"
)

const productColumns = `id, handle, title, description, status, weight_grams, category_ids, options, created_at`

type productRow struct {
	ID          string         `db:"id"`
	Handle      string         `db:"handle"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Status      string         `db:"status"`
	WeightGrams int            `db:"weight_grams"`
	CategoryIDs pq.StringArray `db:"category_ids"`
	Options     []byte         `db:"options"`
	CreatedAt   time.Time      `db:"created_at"`
}

type variantRow struct {
	ID                string `db:"id"`
	ProductID         string `db:"product_id"`
	Title             string `db:"title"`
	SKU               string `db:"sku"`
	Options           []byte `db:"options"`
	ManageInventory   bool   `db:"manage_inventory"`
	AllowBackorder    bool   `db:"allow_backorder"`
	InventoryQuantity int    `db:"inventory_quantity"`
}

type priceRow struct {
	VariantID    string          `db:"variant_id"`
	CurrencyCode string          `db:"currency_code"`
	Amount       decimal.Decimal `db:"amount"`
}

type productRepository struct {
	db *sqlx.DB
}

func NewProductRepository(db *sqlx.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

// Create inserts the product with its variants and prices in one transaction.
func (r *productRepository) Create(ctx context.Context, p *domain.Product) error {
	logger.EnterMethod("productRepository.Create", "handle", p.Handle)

	options, err := json.Marshal(p.Options)
	if err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = domain.ProductStatusDraft
	}
	p.CreatedAt = time.Now().UTC()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO products (id, handle, title, description, status, weight_grams, category_ids, options, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	logger.DatabaseCall("INSERT", query, "productID", p.ID)
	if _, err := tx.ExecContext(ctx, query, p.ID, p.Handle, p.Title, p.Description, string(p.Status),
		p.WeightGrams, pq.Array(p.CategoryIDs), string(options), p.CreatedAt); err != nil {
		logger.ExitMethodWithError("productRepository.Create", err, "handle", p.Handle)
		return err
	}

	for i := range p.Variants {
		v := &p.Variants[i]
		if v.ID == "" {
			v.ID = uuid.NewString()
		}
		v.ProductID = p.ID
		vopts, err := json.Marshal(v.Options)
		if err != nil {
			return err
		}
		query := `INSERT INTO product_variants (id, product_id, title, sku, options, manage_inventory, allow_backorder)
		          VALUES ($1, $2, $3, $4, $5, $6, $7)`
		if _, err := tx.ExecContext(ctx, query, v.ID, p.ID, v.Title, v.SKU, string(vopts), v.ManageInventory, v.AllowBackorder); err != nil {
			logger.ExitMethodWithError("productRepository.Create", err, "variant", v.Title)
			return err
		}
		for _, code := range sortedCurrencies(v.Prices) {
			query := `INSERT INTO variant_prices (variant_id, currency_code, amount) VALUES ($1, $2, $3)`
			if _, err := tx.ExecContext(ctx, query, v.ID, string(code), v.Prices[code].String()); err != nil {
				logger.ExitMethodWithError("productRepository.Create", err, "variant", v.Title, "currency", code)
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.ExitMethod("productRepository.Create", "productID", p.ID, "variants", len(p.Variants))
	return nil
}

func sortedCurrencies(prices map[domain.CurrencyCode]decimal.Decimal) []domain.CurrencyCode {
	codes := make([]domain.CurrencyCode, 0, len(prices))
	for code := range prices {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

func (r *productRepository) GetByHandle(ctx context.Context, handle string) (*domain.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE handle = $1`, handle)
}

func (r *productRepository) getOne(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var row productRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		return nil, notFound(err, "product")
	}
	products, err := r.hydrate(ctx, []productRow{row})
	if err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]domain.Product, error) {
	logger.EnterMethod("productRepository.List", "categoryID", filter.CategoryID, "status", filter.Status)

	query := `SELECT ` + productColumns + ` FROM products
	          WHERE ($1 = '' OR $1 = ANY(category_ids)) AND ($2 = '' OR status = $2)
	          ORDER BY created_at DESC`
	var rows []productRow
	if err := r.db.SelectContext(ctx, &rows, query, filter.CategoryID, string(filter.Status)); err != nil {
		logger.ExitMethodWithError("productRepository.List", err)
		return nil, err
	}

	products, err := r.hydrate(ctx, rows)
	if err != nil {
		logger.ExitMethodWithError("productRepository.List", err)
		return nil, err
	}

	logger.ExitMethod("productRepository.List", "count", len(products))
	return products, nil
}

// hydrate loads variants, prices, stock and drone records for the given rows.
func (r *productRepository) hydrate(ctx context.Context, rows []productRow) ([]domain.Product, error) {
	if len(rows) == 0 {
		return []domain.Product{}, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var variants []variantRow
	vq := `SELECT v.id, v.product_id, v.title, v.sku, v.options, v.manage_inventory, v.allow_backorder,
	              COALESCE((SELECT SUM(il.stocked_quantity) FROM inventory_levels il WHERE il.variant_id = v.id), 0) AS inventory_quantity
	       FROM product_variants v WHERE v.product_id = ANY($1) ORDER BY v.id`
	if err := r.db.SelectContext(ctx, &variants, vq, pq.Array(ids)); err != nil {
		return nil, err
	}

	var prices []priceRow
	priceQuery := `SELECT p.variant_id, p.currency_code, p.amount
	        FROM variant_prices p JOIN product_variants v ON v.id = p.variant_id
	        WHERE v.product_id = ANY($1)`
	if err := r.db.SelectContext(ctx, &prices, priceQuery, pq.Array(ids)); err != nil {
		return nil, err
	}

	var drones []droneRow
	dq := `SELECT d.id, pd.product_id, d.marketing_method,
	              d.rental_per_day_prices, d.translations, d.created_at
	       FROM product_drones pd JOIN drones d ON d.id = pd.drone_id
	       WHERE pd.product_id = ANY($1)`
	if err := r.db.SelectContext(ctx, &drones, dq, pq.Array(ids)); err != nil {
		return nil, err
	}

	pricesByVariant := make(map[string]map[domain.CurrencyCode]decimal.Decimal)
	for _, p := range prices {
		code, err := domain.ParseCurrencyCode(p.CurrencyCode)
		if err != nil {
			return nil, fmt.Errorf("variant %s: %w", p.VariantID, err)
		}
		if pricesByVariant[p.VariantID] == nil {
			pricesByVariant[p.VariantID] = make(map[domain.CurrencyCode]decimal.Decimal)
		}
		pricesByVariant[p.VariantID][code] = p.Amount
	}

	variantsByProduct := make(map[string][]domain.Variant)
	for _, v := range variants {
		opts := map[string]string{}
		if len(v.Options) > 0 {
			if err := json.Unmarshal(v.Options, &opts); err != nil {
				return nil, fmt.Errorf("variant %s options: %w", v.ID, err)
			}
		}
		variantsByProduct[v.ProductID] = append(variantsByProduct[v.ProductID], domain.Variant{
			ID:                v.ID,
			ProductID:         v.ProductID,
			Title:             v.Title,
			SKU:               v.SKU,
			Options:           opts,
			ManageInventory:   v.ManageInventory,
			AllowBackorder:    v.AllowBackorder,
			InventoryQuantity: v.InventoryQuantity,
			Prices:            pricesByVariant[v.ID],
		})
	}

	dronesByProduct := make(map[string]*domain.Drone)
	for _, d := range drones {
		drone, err := d.toDomain()
		if err != nil {
			return nil, err
		}
		dronesByProduct[d.ProductID] = drone
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		var options []domain.ProductOption
		if len(row.Options) > 0 {
			if err := json.Unmarshal(row.Options, &options); err != nil {
				return nil, fmt.Errorf("product %s options: %w", row.ID, err)
			}
		}
		products = append(products, domain.Product{
			ID:          row.ID,
			Handle:      row.Handle,
			Title:       row.Title,
			Description: row.Description,
			Status:      domain.ProductStatus(row.Status),
			WeightGrams: row.WeightGrams,
			CategoryIDs: []string(row.CategoryIDs),
			Options:     options,
			Variants:    variantsByProduct[row.ID],
			Drone:       dronesByProduct[row.ID],
			CreatedAt:   row.CreatedAt,
		})
	}
	return products, nil
}
