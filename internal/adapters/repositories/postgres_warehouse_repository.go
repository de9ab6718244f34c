package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/platform/obs"
)

// Postgres-backed implementation of the WarehouseRepository port.
type PostgresWarehouseRepository struct{ DB *sql.DB }

func NewPostgresWarehouseRepository(db *sql.DB) *PostgresWarehouseRepository {
	return &PostgresWarehouseRepository{DB: db}
}

// ListAll returns every depot, ordered by name for stable output.
func (s *PostgresWarehouseRepository) ListAll(ctx context.Context) (_ []domain.Warehouse, err error) {
	defer obs.Time(ctx, "warehouses.ListAll")(&err)

	if s.DB == nil {
		return nil, errors.New("warehouse repository: DB is nil")
	}

	query := `
	SELECT warehouse_id, name, label, lat, lng
	FROM warehouses
	ORDER BY name;
	`

	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list warehouses: query: %w", err)
	}
	defer rows.Close()

	warehouses := make([]domain.Warehouse, 0, 8)
	for rows.Next() {
		var w domain.Warehouse
		if err := rows.Scan(&w.ID, &w.Name, &w.Location.Label, &w.Location.Lat, &w.Location.Lng); err != nil {
			return nil, fmt.Errorf("list warehouses: scan row: %w", err)
		}
		warehouses = append(warehouses, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list warehouses: row iteration: %w", err)
	}

	return warehouses, nil
}

// Create persists a new depot. A missing ID is filled in.
func (s *PostgresWarehouseRepository) Create(ctx context.Context, warehouse *domain.Warehouse) (err error) {
	defer obs.Time(ctx, "warehouses.Create")(&err)

	if s.DB == nil {
		return errors.New("warehouse repository: DB is nil")
	}
	if warehouse == nil {
		return errors.New("create warehouse: warehouse is nil")
	}
	if strings.TrimSpace(warehouse.Name) == "" {
		return fmt.Errorf("create warehouse: name is required: %w", domain.ErrInvalidInput)
	}
	if err := warehouse.Location.Validate(); err != nil {
		return fmt.Errorf("create warehouse: location: %w", err)
	}

	if warehouse.ID == "" {
		warehouse.ID = uuid.NewString()
	}

	query := `
	INSERT INTO warehouses (warehouse_id, name, label, lat, lng)
	VALUES ($1, $2, $3, $4, $5);
	`

	_, err = s.DB.ExecContext(ctx, query,
		warehouse.ID, warehouse.Name,
		warehouse.Location.Label, warehouse.Location.Lat, warehouse.Location.Lng,
	)
	if err != nil {
		return fmt.Errorf("create warehouse: insert: %w", err)
	}

	return nil
}
