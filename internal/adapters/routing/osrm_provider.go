package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"route-view-service/internal/domain"
	"route-view-service/internal/platform/obs"
	"route-view-service/internal/ports"
)

// Status literal OSRM uses for a usable response; anything else is a
// routing failure.
const statusOK = "Ok"

// OSRMRouteProvider implements RoutePathProvider against an OSRM-style
// route endpoint.
//
// It coordinates:
//   - Waypoint encoding in the provider's lng,lat axis order
//   - Optional persistent geometry caching
//   - Axis conversion of returned GeoJSON geometry back to (lat, lng)
//
// The provider is safe for concurrent use.
type OSRMRouteProvider struct {
	session *http.Client
	baseURL string
	profile string
	cache   ports.RouteGeometryCache
}

func NewOSRMRouteProvider(baseURL, profile string, cache ports.RouteGeometryCache) (*OSRMRouteProvider, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("OSRM base URL is empty")
	}
	if profile == "" {
		profile = "driving"
	}

	provider := &OSRMRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: profile,
		cache:   cache,
	}

	return provider, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"routes"`
}

// FetchRoutePath resolves the full road geometry through the waypoints.
func (p *OSRMRouteProvider) FetchRoutePath(
	ctx context.Context,
	waypoints []domain.Coordinates,
) (_ []domain.Coordinates, err error) {
	defer obs.Time(ctx, "osrm.FetchRoutePath")(&err)

	if len(waypoints) < 2 {
		return nil, errors.New("fetch route path: need at least two waypoints")
	}

	key := waypointKey(waypoints)

	// Check the persistent geometry cache before issuing the external call.
	if p.cache != nil {
		path, ok, err := p.cache.Get(ctx, key)
		if err != nil {
			log.Printf("op=route.cache.get err=%v", err)
		} else if ok {
			return path, nil
		}
	}

	endpoint := fmt.Sprintf(
		"%s/route/v1/%s/%s?overview=full&geometries=geojson",
		p.baseURL, p.profile, key,
	)

	req, err := p.newRequest(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetch route path: %w", err)
	}

	resp, err := p.do(req)
	if err != nil {
		return nil, fmt.Errorf("route request failed: %w", err)
	}
	defer resp.Body.Close()

	var or osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("decode route response: %v", err)}
	}

	if or.Code != statusOK {
		return nil, &ProtocolError{Reason: fmt.Sprintf("status %q", or.Code)}
	}
	if len(or.Routes) == 0 {
		return nil, &ProtocolError{Reason: "no routes in response"}
	}

	coords := or.Routes[0].Geometry.Coordinates
	if len(coords) == 0 {
		return nil, &ProtocolError{Reason: "route has no geometry"}
	}

	// GeoJSON carries [lng, lat]; the engine draws (lat, lng).
	path := make([]domain.Coordinates, 0, len(coords))
	for _, pair := range coords {
		if len(pair) < 2 {
			return nil, &ProtocolError{Reason: "malformed geometry coordinate"}
		}
		path = append(path, domain.Coordinates{Lat: pair[1], Lng: pair[0]})
	}

	if p.cache != nil {
		if err := p.cache.Put(ctx, key, path); err != nil {
			log.Printf("op=route.cache.put err=%v", err)
		}
	}

	return path, nil
}

// waypointKey encodes waypoints as lng,lat pairs separated by ";",
// which doubles as the OSRM URL path segment and the cache key.
func waypointKey(waypoints []domain.Coordinates) string {
	parts := make([]string, 0, len(waypoints))
	for _, w := range waypoints {
		parts = append(parts, fmt.Sprintf("%.6f,%.6f", w.Lng, w.Lat))
	}
	return strings.Join(parts, ";")
}
