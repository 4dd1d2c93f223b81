package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dronehub-backend/internal/catalog"
	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/repository"
)

const droneColumns = `d.id, COALESCE(pd.product_id, '') AS product_id, d.marketing_method,
		d.rental_per_day_prices, d.translations, d.created_at`

type droneRow struct {
	ID              string    `db:"id"`
	ProductID       string    `db:"product_id"`
	MarketingMethod string    `db:"marketing_method"`
	RentalRates     []byte    `db:"rental_per_day_prices"`
	Translations    []byte    `db:"translations"`
	CreatedAt       time.Time `db:"created_at"`
}

// toDomain validates the stored JSON documents on the way in.
func (r droneRow) toDomain() (*domain.Drone, error) {
	method, err := catalog.ParseMarketingMethod(r.MarketingMethod)
	if err != nil {
		return nil, fmt.Errorf("drone %s: %w", r.ID, err)
	}
	rates, err := catalog.ParseRentalRates(r.RentalRates)
	if err != nil {
		return nil, fmt.Errorf("drone %s: %w", r.ID, err)
	}
	translations, err := catalog.ParseTranslations(r.Translations)
	if err != nil {
		return nil, fmt.Errorf("drone %s: %w", r.ID, err)
	}
	return &domain.Drone{
		ID:               r.ID,
		ProductID:        r.ProductID,
		MarketingMethod:  method,
		RentalDailyRates: rates,
		Translations:     translations,
		CreatedAt:        r.CreatedAt,
	}, nil
}

type droneRepository struct {
	db *sqlx.DB
}

func NewDroneRepository(db *sqlx.DB) repository.DroneRepository {
	return &droneRepository{db: db}
}

func (r *droneRepository) Create(ctx context.Context, d *domain.Drone) error {
	logger.EnterMethod("droneRepository.Create", "method", d.MarketingMethod)

	method, err := catalog.ParseMarketingMethod(string(d.MarketingMethod))
	if err != nil {
		logger.ExitMethodWithError("droneRepository.Create", err)
		return err
	}
	rates, err := catalog.MarshalRentalRates(d.RentalDailyRates)
	if err != nil {
		return err
	}
	translations, err := catalog.MarshalTranslations(d.Translations)
	if err != nil {
		return err
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.MarketingMethod = method
	d.CreatedAt = time.Now().UTC()

	query := `INSERT INTO drones (id, marketing_method, rental_per_day_prices, translations, created_at)
	          VALUES ($1, $2, $3, $4, $5)`
	logger.DatabaseCall("INSERT", query, "droneID", d.ID)
	res, err := r.db.ExecContext(ctx, query, d.ID, string(d.MarketingMethod), nullJSON(rates), nullJSON(translations), d.CreatedAt)
	if err != nil {
		logger.DatabaseResult("INSERT", 0, err)
		return err
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("INSERT", n, nil)

	logger.ExitMethod("droneRepository.Create", "droneID", d.ID)
	return nil
}

func (r *droneRepository) get(ctx context.Context, where string, arg any) (*domain.Drone, error) {
	query := `SELECT ` + droneColumns + `
	          FROM drones d LEFT JOIN product_drones pd ON pd.drone_id = d.id
	          WHERE ` + where
	var row droneRow
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		return nil, notFound(err, "drone")
	}
	return row.toDomain()
}

func (r *droneRepository) GetByID(ctx context.Context, id string) (*domain.Drone, error) {
	return r.get(ctx, "d.id = $1", id)
}

func (r *droneRepository) GetByProductID(ctx context.Context, productID string) (*domain.Drone, error) {
	return r.get(ctx, "pd.product_id = $1", productID)
}

func (r *droneRepository) List(ctx context.Context) ([]domain.Drone, error) {
	query := `SELECT ` + droneColumns + `
	          FROM drones d LEFT JOIN product_drones pd ON pd.drone_id = d.id
	          ORDER BY d.created_at`
	var rows []droneRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}

	drones := make([]domain.Drone, 0, len(rows))
	for _, row := range rows {
		d, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		drones = append(drones, *d)
	}
	return drones, nil
}

// Delete removes the drone; its product link goes with it.
func (r *droneRepository) Delete(ctx context.Context, id string) error {
	logger.EnterMethod("droneRepository.Delete", "droneID", id)

	res, err := r.db.ExecContext(ctx, `DELETE FROM drones WHERE id = $1`, id)
	if err != nil {
		logger.ExitMethodWithError("droneRepository.Delete", err, "droneID", id)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("drone %s: %w", id, domain.ErrNotFound)
	}

	logger.ExitMethod("droneRepository.Delete", "droneID", id)
	return nil
}

func (r *droneRepository) LinkProduct(ctx context.Context, droneID, productID string) error {
	logger.EnterMethod("droneRepository.LinkProduct", "droneID", droneID, "productID", productID)

	query := `INSERT INTO product_drones (product_id, drone_id) VALUES ($1, $2)`
	if _, err := r.db.ExecContext(ctx, query, productID, droneID); err != nil {
		logger.ExitMethodWithError("droneRepository.LinkProduct", err, "droneID", droneID)
		return err
	}

	logger.ExitMethod("droneRepository.LinkProduct", "droneID", droneID, "productID", productID)
	return nil
}
