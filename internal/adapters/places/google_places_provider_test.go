package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eco-delivery-service/internal/domain"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *GooglePlacesProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	p, err := NewGooglePlacesProvider("test-key", 2*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p.baseURL = srv.URL
	return p
}

func TestNearbyCount(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("type"); got != "school" {
			t.Errorf("type = %q, want school", got)
		}
		w.Write([]byte(`{"status": "OK", "results": [{}, {}, {}]}`))
	})

	n, err := p.NearbyCount(context.Background(), domain.Coordinate{Lat: 1, Lng: 1}, 100, "school")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 3 {
		t.Errorf("count = %d, want 3", n)
	}
}

func TestNearbyCountZeroResults(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	})

	n, err := p.NearbyCount(context.Background(), domain.Coordinate{}, 100, "hospital")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 0 {
		t.Errorf("count = %d, want 0", n)
	}
}

func TestNearbyCountErrorStatus(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "results": []}`))
	})

	_, err := p.NearbyCount(context.Background(), domain.Coordinate{}, 100, "school")
	if !errors.Is(err, domain.ErrRoutingUnavailable) {
		t.Errorf("err = %v, want ErrRoutingUnavailable", err)
	}
}

func TestNearbyCountInvalidInput(t *testing.T) {
	p := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("backend should not be called for invalid input")
	})

	if _, err := p.NearbyCount(context.Background(), domain.Coordinate{}, 0, "school"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if _, err := p.NearbyCount(context.Background(), domain.Coordinate{}, 100, " "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}
