package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"eco-delivery-service/internal/adapters/directions"
	"eco-delivery-service/internal/adapters/places"
	"eco-delivery-service/internal/adapters/repositories"
	"eco-delivery-service/internal/api"
	"eco-delivery-service/internal/cache"
	"eco-delivery-service/internal/config"
	"eco-delivery-service/internal/emissions"
	"eco-delivery-service/internal/logging"
	"eco-delivery-service/internal/metrics"
	"eco-delivery-service/internal/platform/db"
	"eco-delivery-service/internal/ports"
	"eco-delivery-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (Postgres, Google Maps, Redis) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	if err := logging.Init(cfg.AppEnv); err != nil {
		panic(fmt.Sprintf("init logging: %v", err))
	}
	defer logging.Close()
	log := logging.L()

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	database, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalw("open database", "error", err)
	}
	defer database.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(database, cfg.SeedPath); err != nil {
		log.Fatalw("init and seed", "error", err)
	}

	reg := metrics.NewRegistry()

	dirProvider, placesProvider := buildProviders(cfg)
	zones := buildZoneCache(cfg, database)

	model := emissions.NewModel(cfg.EmissionRates, cfg.DefaultRate)
	routeMetrics := services.NewRouteMetricsService(dirProvider, placesProvider, model, zones, services.RouteMetricsConfig{
		SampleCount: cfg.POISampleCount,
		POIRadiusM:  cfg.POIRadiusM,
		Categories:  cfg.POICategories,
		Workers:     cfg.POIWorkers,
		Vehicle:     cfg.DefaultVehicle,
	})
	planner := services.NewEcoRoutePlanner(routeMetrics, nil)

	orderRepo := repositories.NewPostgresOrderRepository(database)
	warehouseRepo := repositories.NewPostgresWarehouseRepository(database)
	rewardsRepo := repositories.NewPostgresRewardsRepository(database)

	checkout := services.NewCheckoutService(orderRepo, warehouseRepo, rewardsRepo, planner, services.CheckoutConfig{
		BatchRadiusM: cfg.BatchRadiusM,
		CoinsPer100G: cfg.CoinsPer100G,
	}, reg)
	recommender := services.NewSlotRecommender(orderRepo, warehouseRepo, planner, cfg.BatchRadiusM)
	clusters := services.NewClusterService(orderRepo, warehouseRepo, nil, cfg.BatchRadiusM)

	router := api.NewRouter(
		api.Services{Checkout: checkout, Slots: recommender, Clusters: clusters},
		api.Repos{Orders: orderRepo, Warehouses: warehouseRepo, Rewards: rewardsRepo},
		reg,
	)

	// Timeouts are tuned for cold-cache route planning (external API latency).
	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Infow("server listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatalw("server stopped", "error", srv.ListenAndServe())
}

// buildProviders returns the routing and places backends. Without an API key
// the server falls back to the deterministic offline provider so local runs
// work end to end; places sampling is disabled in that mode.
func buildProviders(cfg config.Config) (ports.DirectionsProvider, ports.PlacesProvider) {
	if strings.TrimSpace(cfg.GoogleAPIKey) == "" {
		logging.L().Warn("GOOGLE_API_KEY not set, using offline mock routing")
		return &directions.MockDirectionsProvider{}, nil
	}

	dir, err := directions.NewGoogleDirectionsProvider(cfg.GoogleAPIKey, cfg.HTTPTimeout)
	if err != nil {
		logging.L().Fatalw("init directions provider", "error", err)
	}
	pl, err := places.NewGooglePlacesProvider(cfg.GoogleAPIKey, cfg.HTTPTimeout)
	if err != nil {
		logging.L().Fatalw("init places provider", "error", err)
	}
	return dir, pl
}

// buildZoneCache selects the zone-count cache backend: in-process by default,
// Redis for multi-instance deployments, Postgres when persistence across
// restarts matters more than latency.
func buildZoneCache(cfg config.Config, database *sql.DB) cache.ZoneCountCache {
	switch cfg.CacheBackend {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
		})
		return cache.NewRedisZoneCache(client, cfg.CacheTTL)
	case "postgres":
		return cache.NewSQLZoneCache(database, cfg.CacheTTL)
	default:
		return cache.NewMemoryZoneCache(cfg.CacheTTL)
	}
}

func initAndSeed(database *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(database); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(database, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
