package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds the service's Prometheus metrics.
type Registry struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Business metrics
	OrdersCreatedTotal    prometheus.Counter
	OrdersBatchedTotal    prometheus.Counter
	CO2SavedGramsTotal    prometheus.Counter
	CoinsGrantedTotal     prometheus.Counter
	RoutingFallbacksTotal prometheus.Counter
}

// NewRegistry initializes and registers all metrics on the default
// Prometheus registerer.
func NewRegistry() *Registry {
	return &Registry{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecodelivery_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ecodelivery_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ecodelivery_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		OrdersCreatedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ecodelivery_orders_created_total",
			Help: "Total orders created at checkout",
		}),
		OrdersBatchedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ecodelivery_orders_batched_total",
			Help: "Total orders that joined a delivery batch with at least one peer",
		}),
		CO2SavedGramsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ecodelivery_co2_saved_grams_total",
			Help: "Cumulative CO2 grams saved by batching across all orders",
		}),
		CoinsGrantedTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ecodelivery_coins_granted_total",
			Help: "Cumulative GreenCoins granted",
		}),
		RoutingFallbacksTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ecodelivery_routing_fallbacks_total",
			Help: "Checkouts that fell back to solo delivery because routing was unavailable",
		}),
	}
}
