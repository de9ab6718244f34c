package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"eco-delivery-service/internal/api/handlers"
	"eco-delivery-service/internal/metrics"
	"eco-delivery-service/internal/ports"
)

// Services bundles the application services the router exposes.
type Services struct {
	Checkout handlers.CheckoutPlacer
	Slots    handlers.SlotSuggester
	Clusters handlers.ClusterLister
}

// Repos bundles the repositories served directly by read/admin endpoints.
type Repos struct {
	Orders     ports.OrderRepository
	Warehouses ports.WarehouseRepository
	Rewards    ports.RewardsRepository
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(svcs Services, repos Repos, reg *metrics.Registry) http.Handler {
	r := chi.NewRouter()

	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware)
	if reg != nil {
		r.Use(metricsMiddleware(reg))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		MaxAge:         300,
	}))

	checkout := &handlers.CheckoutHandler{Service: svcs.Checkout}
	slots := &handlers.SlotHandler{Service: svcs.Slots}
	clusters := &handlers.ClusterHandler{Service: svcs.Clusters}
	orders := &handlers.OrderHandler{Repo: repos.Orders}
	warehouses := &handlers.WarehouseHandler{Repo: repos.Warehouses}
	rewards := &handlers.RewardsHandler{Repo: repos.Rewards}

	r.Get("/health", handlers.Health)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/checkout", checkout.Checkout)
	r.Post("/suggest-slot", slots.Suggest)
	r.Get("/clusters", clusters.List)
	r.Get("/orders", orders.List)
	r.Get("/warehouses", warehouses.List)
	r.Post("/warehouses", warehouses.Create)
	r.Get("/rewards", rewards.Balance)
	r.Post("/rewards/redeem", rewards.Redeem)

	return r
}
