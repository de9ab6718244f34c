package directions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"eco-delivery-service/internal/adapters/httputil"
	"eco-delivery-service/internal/domain"
	"eco-delivery-service/internal/platform/obs"
	"eco-delivery-service/internal/ports"
)

// GoogleDirectionsProvider implements DirectionsProvider using the Google
// Directions API.
//
// It coordinates:
//   - Ordered-waypoint route requests (no provider-side re-optimization)
//   - Traffic-aware durations (departure_time=now, best_guess)
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type GoogleDirectionsProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewGoogleDirectionsProvider(apiKey string, timeout time.Duration) (*GoogleDirectionsProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google api key is empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &GoogleDirectionsProvider{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
	}, nil
}

type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		OverviewPolyline struct {
			Points string `json:"points"`
		} `json:"overview_polyline"`
		Legs []struct {
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
			Duration struct {
				Value int `json:"value"`
			} `json:"duration"`
			DurationInTraffic *struct {
				Value int `json:"value"`
			} `json:"duration_in_traffic"`
			StartLocation struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"start_location"`
			EndLocation struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"end_location"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route requests origin -> waypoints (in order) -> destination.
func (g *GoogleDirectionsProvider) Route(
	ctx context.Context,
	origin, destination domain.Coordinate,
	waypoints []domain.Coordinate,
) (_ ports.DirectionsResult, err error) {
	defer obs.Time(ctx, "google.directions.Route")(&err)

	if err := origin.Validate(); err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("directions: origin: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("directions: destination: %w", err)
	}
	for i, wp := range waypoints {
		if err := wp.Validate(); err != nil {
			return ports.DirectionsResult{}, fmt.Errorf("directions: waypoint %d: %w", i, err)
		}
	}

	endpoint := g.baseURL + "/maps/api/directions/json"

	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		q := url.Values{}
		q.Set("origin", formatCoord(origin))
		q.Set("destination", formatCoord(destination))
		if len(waypoints) > 0 {
			parts := make([]string, 0, len(waypoints))
			for _, wp := range waypoints {
				parts = append(parts, formatCoord(wp))
			}
			q.Set("waypoints", strings.Join(parts, "|"))
		}
		q.Set("departure_time", "now")
		q.Set("traffic_model", "best_guess")
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()

		return req, nil
	}

	resp, err := httputil.DoWithRetry(ctx, g.session, makeReq)
	if err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("directions request: %w: %w", domain.ErrRoutingUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.DirectionsResult{}, fmt.Errorf("decode directions response: %w: %w", domain.ErrRoutingUnavailable, err)
	}

	if decoded.Status != "OK" || len(decoded.Routes) == 0 {
		return ports.DirectionsResult{}, fmt.Errorf("directions status %q: %w", decoded.Status, domain.ErrRoutingUnavailable)
	}

	route := decoded.Routes[0]
	out := ports.DirectionsResult{
		Legs:             make([]ports.DirectionsLeg, 0, len(route.Legs)),
		OverviewPolyline: route.OverviewPolyline.Points,
	}

	for _, leg := range route.Legs {
		l := ports.DirectionsLeg{
			DistanceMeters:  leg.Distance.Value,
			DurationSeconds: leg.Duration.Value,
			Start:           domain.Coordinate{Lat: leg.StartLocation.Lat, Lng: leg.StartLocation.Lng},
			End:             domain.Coordinate{Lat: leg.EndLocation.Lat, Lng: leg.EndLocation.Lng},
		}
		if leg.DurationInTraffic != nil {
			v := leg.DurationInTraffic.Value
			l.TrafficDurationSeconds = &v
		}
		out.Legs = append(out.Legs, l)
	}

	return out, nil
}

func formatCoord(c domain.Coordinate) string {
	return fmt.Sprintf("%f,%f", c.Lat, c.Lng)
}
