package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/logger"
	"dronehub-backend/internal/repository"
)

type regionRepository struct {
	db *sqlx.DB
}

func NewRegionRepository(db *sqlx.DB) repository.RegionRepository {
	return &regionRepository{db: db}
}

func (r *regionRepository) Create(ctx context.Context, region *domain.Region) error {
	logger.EnterMethod("regionRepository.Create", "name", region.Name, "currency", region.CurrencyCode)

	if region.ID == "" {
		region.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO regions (id, name, currency_code) VALUES ($1, $2, $3)`
	if _, err := tx.ExecContext(ctx, query, region.ID, region.Name, string(region.CurrencyCode)); err != nil {
		logger.ExitMethodWithError("regionRepository.Create", err, "name", region.Name)
		return err
	}
	for i, cc := range region.Countries {
		region.Countries[i] = strings.ToLower(cc)
		query := `INSERT INTO region_countries (country_code, region_id) VALUES ($1, $2)`
		if _, err := tx.ExecContext(ctx, query, region.Countries[i], region.ID); err != nil {
			logger.ExitMethodWithError("regionRepository.Create", err, "country", cc)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	logger.ExitMethod("regionRepository.Create", "regionID", region.ID)
	return nil
}

func (r *regionRepository) List(ctx context.Context) ([]domain.Region, error) {
	var regions []domain.Region
	if err := r.db.SelectContext(ctx, &regions, `SELECT id, name, currency_code FROM regions ORDER BY name`); err != nil {
		return nil, err
	}
	if len(regions) == 0 {
		return regions, nil
	}

	ids := make([]string, len(regions))
	for i := range regions {
		ids[i] = regions[i].ID
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT region_id, country_code FROM region_countries WHERE region_id = ANY($1) ORDER BY country_code`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	countries := make(map[string][]string)
	for rows.Next() {
		var regionID, cc string
		if err := rows.Scan(&regionID, &cc); err != nil {
			return nil, err
		}
		countries[regionID] = append(countries[regionID], cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range regions {
		regions[i].Countries = countries[regions[i].ID]
	}
	return regions, nil
}

func (r *regionRepository) GetByCountry(ctx context.Context, countryCode string) (*domain.Region, error) {
	cc := strings.ToLower(strings.TrimSpace(countryCode))

	var region domain.Region
	query := `SELECT r.id, r.name, r.currency_code
	          FROM regions r JOIN region_countries rc ON rc.region_id = r.id
	          WHERE rc.country_code = $1`
	if err := r.db.GetContext(ctx, &region, query, cc); err != nil {
		return nil, notFound(err, "region for "+cc)
	}

	if err := r.db.SelectContext(ctx, &region.Countries,
		`SELECT country_code FROM region_countries WHERE region_id = $1 ORDER BY country_code`, region.ID); err != nil {
		return nil, err
	}
	return &region, nil
}
