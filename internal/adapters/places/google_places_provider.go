package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"eco-delivery-service/internal/adapters/httputil"
	"eco-delivery-service/internal/domain"
)

// GooglePlacesProvider implements PlacesProvider using the Google Places
// nearby search API. Safe for concurrent use.
type GooglePlacesProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewGooglePlacesProvider(apiKey string, timeout time.Duration) (*GooglePlacesProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("google api key is empty")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &GooglePlacesProvider{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com",
	}, nil
}

type nearbyResponse struct {
	Status  string            `json:"status"`
	Results []json.RawMessage `json:"results"`
}

// NearbyCount returns the number of places of the given category within
// radiusM meters of point. ZERO_RESULTS is a normal empty outcome.
func (g *GooglePlacesProvider) NearbyCount(
	ctx context.Context,
	point domain.Coordinate,
	radiusM int,
	category string,
) (int, error) {
	if err := point.Validate(); err != nil {
		return 0, fmt.Errorf("nearby count: point: %w", err)
	}
	if radiusM <= 0 || strings.TrimSpace(category) == "" {
		return 0, fmt.Errorf("nearby count: radius and category are required: %w", domain.ErrInvalidInput)
	}

	endpoint := g.baseURL + "/maps/api/place/nearbysearch/json"

	makeReq := func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}

		q := url.Values{}
		q.Set("location", fmt.Sprintf("%f,%f", point.Lat, point.Lng))
		q.Set("radius", strconv.Itoa(radiusM))
		q.Set("type", category)
		q.Set("key", g.apiKey)
		req.URL.RawQuery = q.Encode()

		return req, nil
	}

	resp, err := httputil.DoWithRetry(ctx, g.session, makeReq)
	if err != nil {
		return 0, fmt.Errorf("nearby request: %w: %w", domain.ErrRoutingUnavailable, err)
	}
	defer resp.Body.Close()

	var decoded nearbyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, fmt.Errorf("decode nearby response: %w: %w", domain.ErrRoutingUnavailable, err)
	}

	switch decoded.Status {
	case "OK":
		return len(decoded.Results), nil
	case "ZERO_RESULTS":
		return 0, nil
	}
	return 0, fmt.Errorf("nearby status %q: %w", decoded.Status, domain.ErrRoutingUnavailable)
}
