package engine

import (
	"testing"

	"route-view-service/internal/domain"
)

func TestCompletedPrefixStopsAtFirstNonCompleted(t *testing.T) {
	stops := []domain.Stop{
		{ID: "s1", Sequence: 1, Status: domain.StatusCompleted},
		{ID: "s2", Sequence: 2, Status: domain.StatusPending},
		{ID: "s3", Sequence: 3, Status: domain.StatusCompleted},
	}

	// The later completed stop must not extend the prefix.
	if k := CompletedPrefix(stops); k != 1 {
		t.Fatalf("k = %d, want 1", k)
	}
}

func TestCompletedPrefixBounds(t *testing.T) {
	if k := CompletedPrefix(nil); k != 0 {
		t.Fatalf("empty: k = %d, want 0", k)
	}

	all := []domain.Stop{
		{ID: "s1", Sequence: 1, Status: domain.StatusCompleted},
		{ID: "s2", Sequence: 2, Status: domain.StatusCompleted},
	}
	if k := CompletedPrefix(all); k != 2 {
		t.Fatalf("all completed: k = %d, want 2", k)
	}
}

func TestBuildSegmentsEndToEnd(t *testing.T) {
	snap := domain.RouteSnapshot{
		Start: &domain.StartLocation{Coord: domain.Coordinates{Lat: 35.0, Lng: 139.0}},
		Stops: []domain.Stop{
			{ID: "s1", Sequence: 1, Status: domain.StatusCompleted, Coord: coord(35.1, 139.1)},
			{ID: "s2", Sequence: 2, Status: domain.StatusCompleted, Coord: coord(35.2, 139.2)},
			{ID: "s3", Sequence: 3, Status: domain.StatusPending, Coord: coord(35.3, 139.3)},
		},
	}

	segs := BuildSegments(snap)
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}

	completed := segs[0]
	if completed.Kind != SegmentCompleted {
		t.Fatalf("first segment kind = %s, want completed", completed.Kind)
	}
	wantCompleted := []domain.Coordinates{
		{Lat: 35.0, Lng: 139.0},
		{Lat: 35.1, Lng: 139.1},
		{Lat: 35.2, Lng: 139.2},
	}
	assertWaypoints(t, completed.Waypoints, wantCompleted)

	pending := segs[1]
	if pending.Kind != SegmentPending {
		t.Fatalf("second segment kind = %s, want pending", pending.Kind)
	}
	wantPending := []domain.Coordinates{
		{Lat: 35.2, Lng: 139.2},
		{Lat: 35.3, Lng: 139.3},
	}
	assertWaypoints(t, pending.Waypoints, wantPending)

	ret := segs[2]
	if ret.Kind != SegmentReturn {
		t.Fatalf("third segment kind = %s, want return", ret.Kind)
	}
	wantReturn := []domain.Coordinates{
		{Lat: 35.3, Lng: 139.3},
		{Lat: 35.0, Lng: 139.0},
	}
	assertWaypoints(t, ret.Waypoints, wantReturn)
}

func TestBuildSegmentsWaypointCounts(t *testing.T) {
	const n = 4

	for k := 0; k <= n; k++ {
		stops := make([]domain.Stop, 0, n)
		for i := 0; i < n; i++ {
			status := domain.StatusPending
			if i < k {
				status = domain.StatusCompleted
			}
			stops = append(stops, domain.Stop{
				ID:       string(rune('a' + i)),
				Sequence: i + 1,
				Status:   status,
				Coord:    coord(35.0+float64(i)/10, 139.0+float64(i)/10),
			})
		}

		snap := domain.RouteSnapshot{
			Start: &domain.StartLocation{Coord: domain.Coordinates{Lat: 34.9, Lng: 138.9}},
			Stops: stops,
		}

		byKind := map[SegmentKind][]domain.Coordinates{}
		for _, seg := range BuildSegments(snap) {
			byKind[seg.Kind] = seg.Waypoints
		}

		if k > 0 {
			if got := len(byKind[SegmentCompleted]); got != k+1 {
				t.Fatalf("k=%d: completed waypoints = %d, want %d", k, got, k+1)
			}
		} else if _, ok := byKind[SegmentCompleted]; ok {
			t.Fatalf("k=0: unexpected completed segment")
		}

		if k < n {
			if got := len(byKind[SegmentPending]); got != (n-k)+1 {
				t.Fatalf("k=%d: pending waypoints = %d, want %d", k, got, (n-k)+1)
			}
		} else if _, ok := byKind[SegmentPending]; ok {
			t.Fatalf("k=n: unexpected pending segment")
		}

		if got := len(byKind[SegmentReturn]); got != 2 {
			t.Fatalf("k=%d: return waypoints = %d, want 2", k, got)
		}
	}
}

func TestBuildSegmentsDropsDegenerateLists(t *testing.T) {
	// One pending stop and no start: every candidate list has a single
	// waypoint, so nothing is requested.
	snap := domain.RouteSnapshot{
		Stops: []domain.Stop{
			{ID: "s1", Sequence: 1, Status: domain.StatusPending, Coord: coord(35.1, 139.1)},
		},
	}

	if segs := BuildSegments(snap); len(segs) != 0 {
		t.Fatalf("expected no segments, got %d", len(segs))
	}
}

func TestBuildSegmentsExcludesStopsWithoutCoordinates(t *testing.T) {
	snap := domain.RouteSnapshot{
		Start: &domain.StartLocation{Coord: domain.Coordinates{Lat: 35.0, Lng: 139.0}},
		Stops: []domain.Stop{
			{ID: "s1", Sequence: 1, Status: domain.StatusCompleted, Coord: coord(35.1, 139.1)},
			{ID: "s2", Sequence: 2, Status: domain.StatusCompleted}, // no coordinates
			{ID: "s3", Sequence: 3, Status: domain.StatusPending, Coord: coord(35.3, 139.3)},
		},
	}

	byKind := map[SegmentKind][]domain.Coordinates{}
	for _, seg := range BuildSegments(snap) {
		byKind[seg.Kind] = seg.Waypoints
	}

	// s2 vanishes: completed leg is start->s1, pending leg s1->s3.
	if got := len(byKind[SegmentCompleted]); got != 2 {
		t.Fatalf("completed waypoints = %d, want 2", got)
	}
	assertWaypoints(t, byKind[SegmentPending], []domain.Coordinates{
		{Lat: 35.1, Lng: 139.1},
		{Lat: 35.3, Lng: 139.3},
	})
}

func TestBuildSegmentsNoStart(t *testing.T) {
	snap := domain.RouteSnapshot{
		Stops: []domain.Stop{
			{ID: "s1", Sequence: 1, Status: domain.StatusPending, Coord: coord(35.1, 139.1)},
			{ID: "s2", Sequence: 2, Status: domain.StatusPending, Coord: coord(35.2, 139.2)},
		},
	}

	segs := BuildSegments(snap)
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0].Kind != SegmentPending {
		t.Fatalf("kind = %s, want pending", segs[0].Kind)
	}
	if len(segs[0].Waypoints) != 2 {
		t.Fatalf("pending waypoints = %d, want 2", len(segs[0].Waypoints))
	}
}

func assertWaypoints(t *testing.T, got, want []domain.Coordinates) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("waypoint count = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("waypoint %d = %v, want %v", i, got[i], want[i])
		}
	}
}
