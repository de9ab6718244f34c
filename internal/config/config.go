package config

import (
	"os"
	"time"

	"github.com/spf13/cast"

	"eco-delivery-service/internal/domain"
)

// Config carries every tunable the services need, loaded once at startup and
// injected into constructors. Nothing here is a hidden global.
type Config struct {
	AppEnv string
	Port   int

	DatabaseURL string
	SeedPath    string

	GoogleAPIKey string

	// Redis is used for the shared zone-count cache when CacheBackend is
	// "redis"; the default is an in-process cache.
	CacheBackend string
	RedisAddr    string
	RedisPass    string

	// Batching and routing tunables.
	BatchRadiusM   float64
	POISampleCount int
	POIRadiusM     int
	POICategories  []string
	POIWorkers     int
	CoinsPer100G   float64

	DefaultVehicle domain.VehicleType
	EmissionRates  map[domain.VehicleType]float64
	DefaultRate    float64

	HTTPTimeout   time.Duration
	CacheTTL      time.Duration
	WriteTimeout  time.Duration
	RequestPerMin int
}

// Load reads the environment (optionally via a .env file loaded by the
// caller) and applies defaults.
func Load() Config {
	cfg := Config{}

	cfg.AppEnv = cast.ToString(getOrDefault("APP_ENV", "development"))
	cfg.Port = cast.ToInt(getOrDefault("PORT", 8080))

	cfg.DatabaseURL = cast.ToString(getOrDefault("DATABASE_URL", ""))
	cfg.SeedPath = cast.ToString(getOrDefault("SEED_PATH", "data/seeds/warehouses.json"))

	cfg.GoogleAPIKey = cast.ToString(getOrDefault("GOOGLE_API_KEY", ""))

	cfg.CacheBackend = cast.ToString(getOrDefault("CACHE_BACKEND", "memory"))
	cfg.RedisAddr = cast.ToString(getOrDefault("REDIS_ADDR", "localhost:6379"))
	cfg.RedisPass = cast.ToString(getOrDefault("REDIS_PASSWORD", ""))

	cfg.BatchRadiusM = cast.ToFloat64(getOrDefault("BATCH_RADIUS_M", 1000))
	cfg.POISampleCount = cast.ToInt(getOrDefault("POI_SAMPLES", 10))
	cfg.POIRadiusM = cast.ToInt(getOrDefault("POI_RADIUS_M", 100))
	cfg.POICategories = []string{"school", "hospital", "shopping_mall", "place_of_worship"}
	cfg.POIWorkers = cast.ToInt(getOrDefault("POI_WORKERS", 5))
	cfg.CoinsPer100G = cast.ToFloat64(getOrDefault("COINS_PER_100G", 1))

	cfg.DefaultVehicle = domain.VehicleUnspecified
	cfg.EmissionRates = nil // emissions.NewModel substitutes the built-in table
	cfg.DefaultRate = cast.ToFloat64(getOrDefault("EMISSION_RATE_G_PER_KM", 120))

	cfg.HTTPTimeout = time.Duration(cast.ToInt(getOrDefault("HTTP_TIMEOUT_SEC", 10))) * time.Second
	cfg.CacheTTL = time.Duration(cast.ToInt(getOrDefault("CACHE_TTL_SEC", 3600))) * time.Second
	cfg.WriteTimeout = time.Duration(cast.ToInt(getOrDefault("WRITE_TIMEOUT_SEC", 120))) * time.Second
	cfg.RequestPerMin = cast.ToInt(getOrDefault("REQUESTS_PER_MIN", 120))

	return cfg
}

// Get returns an environment value with a fallback, for callers that need a
// single key without the full Config.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getOrDefault(key string, defaultValue interface{}) interface{} {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
