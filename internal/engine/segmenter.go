package engine

import (
	"route-view-service/internal/domain"
	"route-view-service/internal/ports"
)

// Identifies which leg of the route a segment represents.
type SegmentKind string

const (
	SegmentCompleted SegmentKind = "completed"
	SegmentPending   SegmentKind = "pending"
	SegmentReturn    SegmentKind = "return"
)

// One drawable leg of the route: an ordered waypoint list plus the
// fixed style its kind carries.
type Segment struct {
	Kind      SegmentKind
	Waypoints []domain.Coordinates
	Style     ports.PathStyle
}

// Fixed per-kind styles. The fallback straight line reuses the same
// style at one step lower weight.
var segmentStyles = map[SegmentKind]ports.PathStyle{
	SegmentCompleted: {Color: "#2e7d32", Weight: 5, Opacity: 0.8},
	SegmentPending:   {Color: "#1565c0", Weight: 5, Opacity: 0.8},
	SegmentReturn:    {Color: "#757575", Weight: 4, Opacity: 0.6, DashArray: "6 10"},
}

// CompletedPrefix returns the length of the maximal leading run of
// completed stops. A completed stop after a non-completed one does not
// extend the prefix; the visit order is what is being measured.
func CompletedPrefix(stops []domain.Stop) int {
	k := 0
	for _, st := range stops {
		if st.Status != domain.StatusCompleted {
			break
		}
		k++
	}
	return k
}

// BuildSegments splits a snapshot into up to three waypoint lists:
// the completed leg (start through the completed prefix), the pending
// leg (last completed stop, or start, through the remainder) and the
// return leg (last stop back to start). Stops without coordinates are
// excluded before the prefix is computed. Lists with fewer than two
// waypoints describe nothing drivable and are dropped.
func BuildSegments(snap domain.RouteSnapshot) []Segment {
	stops := snap.RoutableStops()
	n := len(stops)
	k := CompletedPrefix(stops)

	var segs []Segment
	add := func(kind SegmentKind, wps []domain.Coordinates) {
		if len(wps) < 2 {
			return
		}
		segs = append(segs, Segment{Kind: kind, Waypoints: wps, Style: segmentStyles[kind]})
	}

	if k > 0 {
		wps := make([]domain.Coordinates, 0, k+1)
		if snap.Start != nil {
			wps = append(wps, snap.Start.Coord)
		}
		for _, st := range stops[:k] {
			wps = append(wps, *st.Coord)
		}
		add(SegmentCompleted, wps)
	}

	if k < n {
		wps := make([]domain.Coordinates, 0, n-k+1)
		switch {
		case k > 0:
			wps = append(wps, *stops[k-1].Coord)
		case snap.Start != nil:
			wps = append(wps, snap.Start.Coord)
		}
		for _, st := range stops[k:] {
			wps = append(wps, *st.Coord)
		}
		add(SegmentPending, wps)
	}

	if snap.Start != nil && n > 0 {
		add(SegmentReturn, []domain.Coordinates{*stops[n-1].Coord, snap.Start.Coord})
	}

	return segs
}
