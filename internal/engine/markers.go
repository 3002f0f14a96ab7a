package engine

import (
	"fmt"
	"math"

	"route-view-service/internal/domain"
)

const (
	// Stops whose coordinates agree at this precision (~1 m) are treated
	// as sharing a point and spread apart for display.
	coordKeyFormat = "%.5f,%.5f"

	// Radius of the displacement circle for co-located stops.
	spreadRadiusMeters = 13.0

	metersPerDegreeLat = 111320.0
)

// PlacedMarker pairs a stop with the coordinate it should be rendered
// at. RenderAt may differ from the stop's true coordinate when several
// stops share a point; routing always uses the true coordinate.
type PlacedMarker struct {
	Stop     domain.Stop
	RenderAt domain.Coordinates
}

// PlaceMarkers resolves collision-free rendering coordinates for every
// stop with a known location. Stops that alone occupy a point render at
// their true coordinate; groups sharing a point are displaced onto a
// circle around it, at angles evenly spaced by group position.
func PlaceMarkers(stops []domain.Stop) []PlacedMarker {
	groups := make(map[string][]int)
	order := make([]string, 0, len(stops))

	placeable := make([]domain.Stop, 0, len(stops))
	for _, st := range stops {
		if !st.HasCoord() {
			continue
		}
		idx := len(placeable)
		placeable = append(placeable, st)

		key := fmt.Sprintf(coordKeyFormat, st.Coord.Lat, st.Coord.Lng)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], idx)
	}

	out := make([]PlacedMarker, len(placeable))
	for _, key := range order {
		members := groups[key]
		if len(members) == 1 {
			st := placeable[members[0]]
			out[members[0]] = PlacedMarker{Stop: st, RenderAt: *st.Coord}
			continue
		}

		for pos, idx := range members {
			st := placeable[idx]
			angle := 2 * math.Pi * float64(pos) / float64(len(members))
			out[idx] = PlacedMarker{Stop: st, RenderAt: offsetCoord(*st.Coord, spreadRadiusMeters, angle)}
		}
	}

	return out
}

// offsetCoord displaces a coordinate by the given distance and bearing
// using an equirectangular approximation, which is plenty at 13 m.
func offsetCoord(c domain.Coordinates, meters, angle float64) domain.Coordinates {
	dLat := meters * math.Cos(angle) / metersPerDegreeLat
	dLng := meters * math.Sin(angle) / (metersPerDegreeLat * math.Cos(c.Lat*math.Pi/180))
	return domain.Coordinates{Lat: c.Lat + dLat, Lng: c.Lng + dLng}
}
