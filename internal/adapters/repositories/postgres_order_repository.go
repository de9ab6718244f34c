package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/platform/obs"
	"eco-delivery-service/internal/ports"
)

// Postgres-backed implementation of the OrderRepository port.
type PostgresOrderRepository struct{ DB *sql.DB }

func NewPostgresOrderRepository(db *sql.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{DB: db}
}

// CreateOrder persists a new order. A missing ID or CreatedAt is filled in.
func (s *PostgresOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (err error) {
	defer obs.Time(ctx, "orders.Create")(&err)

	if s.DB == nil {
		return errors.New("order repository: DB is nil")
	}
	if order == nil {
		return errors.New("create order: order is nil")
	}
	if strings.TrimSpace(order.WarehouseID) == "" {
		return fmt.Errorf("create order: warehouse id is required: %w", domain.ErrInvalidInput)
	}

	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}

	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("create order: marshal items: %w", err)
	}

	query := `
	INSERT INTO orders (
		order_id, customer_name, label, lat, lng, items, total_amount,
		time_slot, created_at, warehouse_id,
		product_co2_g, estimated_co2_g, actual_co2_g, co2_saved_g
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`

	_, err = s.DB.ExecContext(ctx, query,
		order.ID, order.CustomerName,
		order.Address.Label, order.Address.Lat, order.Address.Lng,
		items, order.TotalAmount,
		string(order.TimeSlot), order.CreatedAt, order.WarehouseID,
		order.ProductCO2G, order.EstimatedCO2gIfAlone,
		order.ActualCO2gInCluster, order.CO2SavedG,
	)
	if err != nil {
		return fmt.Errorf("create order: insert: %w", err)
	}

	return nil
}

// UpdateEmissions records the batched allocation for an existing order.
func (s *PostgresOrderRepository) UpdateEmissions(ctx context.Context, orderID string, actualCO2g, co2SavedG float64) (err error) {
	defer obs.Time(ctx, "orders.UpdateEmissions")(&err)

	if s.DB == nil {
		return errors.New("order repository: DB is nil")
	}

	query := `
	UPDATE orders
	SET actual_co2_g = $2,
		co2_saved_g = $3
	WHERE order_id = $1;
	`

	res, err := s.DB.ExecContext(ctx, query, orderID, actualCO2g, co2SavedG)
	if err != nil {
		return fmt.Errorf("update emissions: exec: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update emissions: rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update emissions: order %q: %w", orderID, domain.ErrNotFound)
	}

	return nil
}

// ListOrders returns orders matching the filter, newest first.
func (s *PostgresOrderRepository) ListOrders(ctx context.Context, filter ports.OrderFilter) (_ []domain.Order, err error) {
	defer obs.Time(ctx, "orders.List")(&err)

	if s.DB == nil {
		return nil, errors.New("order repository: DB is nil")
	}

	var (
		conds []string
		args  []any
	)
	if filter.TimeSlot != nil {
		args = append(args, string(*filter.TimeSlot))
		conds = append(conds, fmt.Sprintf("time_slot = $%d", len(args)))
	}
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.WarehouseID != nil {
		args = append(args, *filter.WarehouseID)
		conds = append(conds, fmt.Sprintf("warehouse_id = $%d", len(args)))
	}

	query := `
	SELECT
		order_id, customer_name, label, lat, lng, items, total_amount,
		time_slot, created_at, warehouse_id,
		product_co2_g, estimated_co2_g, actual_co2_g, co2_saved_g
	FROM orders
	`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC;"

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: query: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0, 32)
	for rows.Next() {
		var (
			o        domain.Order
			slot     string
			rawItems []byte
		)
		err := rows.Scan(
			&o.ID, &o.CustomerName,
			&o.Address.Label, &o.Address.Lat, &o.Address.Lng,
			&rawItems, &o.TotalAmount,
			&slot, &o.CreatedAt, &o.WarehouseID,
			&o.ProductCO2G, &o.EstimatedCO2gIfAlone,
			&o.ActualCO2gInCluster, &o.CO2SavedG,
		)
		if err != nil {
			return nil, fmt.Errorf("list orders: scan row: %w", err)
		}

		o.TimeSlot = domain.TimeSlot(slot)
		if len(rawItems) > 0 {
			if err := json.Unmarshal(rawItems, &o.Items); err != nil {
				return nil, fmt.Errorf("list orders: unmarshal items for %q: %w", o.ID, err)
			}
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: row iteration: %w", err)
	}

	return orders, nil
}
