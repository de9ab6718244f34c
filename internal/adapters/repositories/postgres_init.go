package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createWarehousesQuery := `
	CREATE TABLE IF NOT EXISTS warehouses (
		warehouse_id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		label TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL
	);
	`

	createOrdersQuery := `
	CREATE TABLE IF NOT EXISTS orders (
		order_id TEXT PRIMARY KEY,
		customer_name TEXT NOT NULL,
		label TEXT NOT NULL,
		lat DOUBLE PRECISION NOT NULL,
		lng DOUBLE PRECISION NOT NULL,
		items JSONB NOT NULL DEFAULT '[]',
		total_amount DOUBLE PRECISION NOT NULL DEFAULT 0,
		time_slot TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		warehouse_id TEXT NOT NULL REFERENCES warehouses(warehouse_id),
		product_co2_g DOUBLE PRECISION NOT NULL DEFAULT 0,
		estimated_co2_g DOUBLE PRECISION NOT NULL DEFAULT 0,
		actual_co2_g DOUBLE PRECISION NOT NULL DEFAULT 0,
		co2_saved_g DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createOrdersIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_orders_slot_created
	ON orders(time_slot, created_at);
	`

	createRewardsQuery := `
	CREATE TABLE IF NOT EXISTS rewards (
		id INTEGER PRIMARY KEY DEFAULT 1 CHECK (id = 1),
		coins BIGINT NOT NULL DEFAULT 0
	);
	`

	seedRewardsRowQuery := `
	INSERT INTO rewards (id, coins) VALUES (1, 0)
	ON CONFLICT (id) DO NOTHING;
	`

	createZoneCacheQuery := `
	CREATE TABLE IF NOT EXISTS zone_cache (
		cache_key TEXT PRIMARY KEY,
		zone_count INTEGER NOT NULL,
		cached_at TIMESTAMPTZ NOT NULL
	);
	`

	statements := []string{
		createWarehousesQuery,
		createOrdersQuery,
		createOrdersIndexQuery,
		createRewardsQuery,
		seedRewardsRowQuery,
		createZoneCacheQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type WarehouseSeed struct {
	Name    string `json:"name"`
	Address struct {
		Label string  `json:"label"`
		Lat   float64 `json:"lat"`
		Lng   float64 `json:"lng"`
	} `json:"address"`
}

// Populate the warehouses table from a JSON seed file. Existing rows are
// left untouched; seeding is keyed by warehouse name.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed warehouses: read %q: %w", jsonPath, err)
	}

	var data []WarehouseSeed
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("seed warehouses: parse json: %w", err)
	}

	for i, w := range data {
		if strings.TrimSpace(w.Name) == "" {
			return fmt.Errorf("seed warehouses: item at index %d: name cannot be empty", i+1)
		}
		if w.Address.Lat < -90 || w.Address.Lat > 90 || w.Address.Lng < -180 || w.Address.Lng > 180 {
			return fmt.Errorf("seed warehouses: item %q: coordinates out of range", w.Name)
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed warehouses: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO warehouses (warehouse_id, name, label, lat, lng)
	SELECT $1, $2, $3, $4, $5
	WHERE NOT EXISTS (SELECT 1 FROM warehouses WHERE name = $2);
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed warehouses: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, w := range data {
		if _, err := stmt.Exec(uuid.NewString(), w.Name, w.Address.Label, w.Address.Lat, w.Address.Lng); err != nil {
			return fmt.Errorf("seed warehouses: insert %q: %w", w.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed warehouses: commit tx: %w", err)
	}

	return nil
}
