package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"dronehub-backend/internal/domain"
	"dronehub-backend/internal/repository"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

type Store struct {
	db *sqlx.DB
	repository.DroneRepository
	repository.ProductRepository
	repository.RegionRepository
	repository.CategoryRepository
	repository.SalesChannelRepository
	repository.StoreCurrencyRepository
	repository.StockLocationRepository
	repository.InventoryRepository
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{
		db:                      db,
		DroneRepository:         NewDroneRepository(db),
		ProductRepository:       NewProductRepository(db),
		RegionRepository:        NewRegionRepository(db),
		CategoryRepository:      NewCategoryRepository(db),
		SalesChannelRepository:  NewSalesChannelRepository(db),
		StoreCurrencyRepository: NewStoreCurrencyRepository(db),
		StockLocationRepository: NewStockLocationRepository(db),
		InventoryRepository:     NewInventoryRepository(db),
	}
}

// Ping checks the database connection
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Open connects to Postgres and verifies the connection
func Open(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// Migrate applies the embedded schema migrations
func Migrate(db *sql.DB) error {
	source, err := iofs.New(migrationFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}

	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migration instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// notFound turns sql.ErrNoRows into domain.ErrNotFound
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
	}
	return err
}

// nullJSON stores nil documents as SQL NULL
func nullJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
