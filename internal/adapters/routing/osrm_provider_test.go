package routing

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"route-view-service/internal/domain"
)

func TestFetchRoutePathAxisRoundTrip(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"code":"Ok","routes":[{"geometry":{"coordinates":[[139.1,35.1],[139.2,35.2]]}}]}`))
	}))
	defer srv.Close()

	p, err := NewOSRMRouteProvider(srv.URL, "driving", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waypoints := []domain.Coordinates{
		{Lat: 35.0, Lng: 139.0},
		{Lat: 35.1, Lng: 139.1},
	}

	path, err := p.FetchRoutePath(context.Background(), waypoints)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Request carries lng,lat pairs separated by ";".
	if want := "/route/v1/driving/139.000000,35.000000;139.100000,35.100000"; gotPath != want {
		t.Fatalf("request path = %q, want %q", gotPath, want)
	}
	if !strings.Contains(gotQuery, "overview=full") || !strings.Contains(gotQuery, "geometries=geojson") {
		t.Fatalf("query = %q, missing overview/geometries", gotQuery)
	}

	// Response geometry comes back converted to (lat, lng).
	want := []domain.Coordinates{
		{Lat: 35.1, Lng: 139.1},
		{Lat: 35.2, Lng: 139.2},
	}
	if len(path) != len(want) {
		t.Fatalf("path length = %d, want %d", len(path), len(want))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path[%d] = %v, want %v", i, path[i], want[i])
		}
	}
}

func TestFetchRoutePathNonOkStatusIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"NoRoute","routes":[]}`))
	}))
	defer srv.Close()

	p, _ := NewOSRMRouteProvider(srv.URL, "driving", nil)

	_, err := p.FetchRoutePath(context.Background(), []domain.Coordinates{{Lat: 35, Lng: 139}, {Lat: 36, Lng: 140}})
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestFetchRoutePathMissingGeometryIsProtocolError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":"Ok","routes":[{"geometry":{"coordinates":[]}}]}`))
	}))
	defer srv.Close()

	p, _ := NewOSRMRouteProvider(srv.URL, "driving", nil)

	_, err := p.FetchRoutePath(context.Background(), []domain.Coordinates{{Lat: 35, Lng: 139}, {Lat: 36, Lng: 140}})
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		t.Fatalf("expected ProtocolError, got %v", err)
	}
}

func TestFetchRoutePathHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p, _ := NewOSRMRouteProvider(srv.URL, "driving", nil)

	_, err := p.FetchRoutePath(context.Background(), []domain.Coordinates{{Lat: 35, Lng: 139}, {Lat: 36, Lng: 140}})
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
}

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]domain.Coordinates
}

func (m *memoryCache) Get(ctx context.Context, key string) ([]domain.Coordinates, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.data[key]
	return p, ok, nil
}

func (m *memoryCache) Put(ctx context.Context, key string, path []domain.Coordinates) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = make(map[string][]domain.Coordinates)
	}
	m.data[key] = path
	return nil
}

func TestFetchRoutePathUsesCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"code":"Ok","routes":[{"geometry":{"coordinates":[[139.1,35.1],[139.2,35.2]]}}]}`))
	}))
	defer srv.Close()

	p, _ := NewOSRMRouteProvider(srv.URL, "driving", &memoryCache{})

	waypoints := []domain.Coordinates{{Lat: 35.0, Lng: 139.0}, {Lat: 35.2, Lng: 139.2}}

	if _, err := p.FetchRoutePath(context.Background(), waypoints); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.FetchRoutePath(context.Background(), waypoints); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if hits != 1 {
		t.Fatalf("server hits = %d, want 1 (second fetch should be cached)", hits)
	}
}

func TestFetchRoutePathRejectsDegenerateWaypointLists(t *testing.T) {
	p, _ := NewOSRMRouteProvider("http://localhost:5000", "driving", nil)

	if _, err := p.FetchRoutePath(context.Background(), []domain.Coordinates{{Lat: 35, Lng: 139}}); err == nil {
		t.Fatal("expected error for single waypoint")
	}
}
