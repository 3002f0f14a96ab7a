package domain

import "slices"

// Optional depot/office the route departs from and returns to.
type StartLocation struct {
	Coord Coordinates
	Name  string
}

// RouteSnapshot is the caller-supplied view of one route at one point in
// time. The engine never mutates a snapshot; it only derives drawing
// state from it. A fresh snapshot is supplied wholesale on every refresh.
type RouteSnapshot struct {
	Stops []Stop
	Start *StartLocation
}

// StopsInSequence returns the stops ordered by their Sequence field.
// Ties break on ID so the ordering is deterministic.
func (s RouteSnapshot) StopsInSequence() []Stop {
	out := slices.Clone(s.Stops)
	slices.SortFunc(out, func(a, b Stop) int {
		if a.Sequence != b.Sequence {
			return a.Sequence - b.Sequence
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

// RoutableStops returns the stops with known coordinates, in sequence
// order. Only these participate in segmentation and marker placement.
func (s RouteSnapshot) RoutableStops() []Stop {
	ordered := s.StopsInSequence()
	out := make([]Stop, 0, len(ordered))
	for _, st := range ordered {
		if st.HasCoord() {
			out = append(out, st)
		}
	}
	return out
}
